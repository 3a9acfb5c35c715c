package allocator

import (
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/forgo/gradproj/internal/model"
)

// Fingerprint returns a BLAKE2b-256 digest of the result's canonical form.
// Two runs over identical input and tie-break rule share a fingerprint.
func Fingerprint(result *model.Result) string {
	var sb strings.Builder
	for _, a := range result.Assignments {
		sb.WriteString("A\t")
		sb.WriteString(a.UserID)
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatFloat(a.Score, 'g', -1, 64))
		sb.WriteByte('\t')
		sb.WriteString(a.ProjectID)
		sb.WriteByte('\t')
		sb.WriteString(strconv.Itoa(a.Rank))
		sb.WriteByte('\t')
		sb.WriteString(strings.Join(a.RejectedBefore, ";"))
		sb.WriteByte('\n')
	}
	for _, id := range result.Unassigned {
		sb.WriteString("U\t")
		sb.WriteString(id)
		sb.WriteByte('\n')
	}
	sum := blake2b.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
