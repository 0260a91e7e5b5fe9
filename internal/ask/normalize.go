package ask

import "strings"

var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"’", "'", // right single quote
)

// Normalize folds a question to its duplicate-comparison form: lower case,
// trimmed, single-spaced, curly quotes replaced with ASCII ones. Two questions
// are verbatim duplicates iff their normalized forms are equal.
func Normalize(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = quoteReplacer.Replace(q)
	return strings.Join(strings.Fields(q), " ")
}
