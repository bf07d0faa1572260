package rt

import "strings"

// UnescapeTextLiteral reverses the embedded ABC text literal escaping
// documented in spec.md §6: within the literal's body, a line feed
// followed by a space collapses to a line feed. The opening `"` and
// the terminating `LF ~` are the parser collaborator's concern, not
// this helper's — it only undoes the one escaping rule applied to the
// body text in between.
func UnescapeTextLiteral(body string) string {
	return strings.ReplaceAll(body, "\n ", "\n")
}
