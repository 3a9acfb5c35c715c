// Package fixtures provides test data factories for allocation tests.
//
// NewInstance builds a reproducible allocation input from a seed. Factory
// inserts archived runs straight into a test database so that read paths can
// be exercised independently of RunRepository.Create:
//
//	inst := fixtures.NewInstance(func(o *fixtures.InstanceOpts) { o.Users = 40 })
//	f := fixtures.New(tdb.DB)
//	run := f.CreateRun(t)
package fixtures
