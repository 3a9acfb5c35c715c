// Package allocator assigns project slots to users by greedy preference matching.
//
// Users are processed once, in descending score order. Each user receives the
// best-ranked project on their preference list that still has a free slot at
// the moment they are processed. Decisions are never revisited, so the result
// is a greedy approximation rather than a rank-optimal assignment.
//
// # Determinism
//
// Equal scores are ordered by a fixed tie-break rule (identifier ascending by
// default, or input order). Identical inputs always produce identical results
// and identical fingerprints:
//
//	res, err := allocator.Allocate(users, projects, prefs, allocator.Options{})
//	fmt.Println(allocator.Fingerprint(res))
//
// # Capacity
//
// Capacities are copied into a map owned by the call and returned as
// Result.Remaining. Caller slices and maps are never mutated.
//
// # Improvement pass
//
// ImproveOnce performs a single round of pairwise local search over the
// assigned users and applies the best exchange that lowers the pair's summed
// rank. It does not iterate to a fixed point.
package allocator
