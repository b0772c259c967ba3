package list

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// NormalizeName is the key used for name uniqueness: NFKC, case folded,
// trimmed, with runs of whitespace collapsed to one space.
func NormalizeName(name string) string {
	folded := folder.String(norm.NFKC.String(name))
	return strings.Join(strings.Fields(folded), " ")
}
