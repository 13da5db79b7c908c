package scan

import "strings"

// ParseExtensions parses free-form extension text into a normalized list.
// Tokens are split on comma, semicolon, space, tab and newline, trimmed,
// prefixed with a leading dot when absent, lowercased and de-duplicated
// preserving first occurrence. Empty tokens are discarded.
func ParseExtensions(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})

	seen := make(map[string]bool, len(tokens))
	var exts []string
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || tok == "." {
			continue
		}
		if !strings.HasPrefix(tok, ".") {
			tok = "." + tok
		}
		tok = strings.ToLower(tok)
		if seen[tok] {
			continue
		}
		seen[tok] = true
		exts = append(exts, tok)
	}
	return exts
}

// FormatExtensions renders a normalized extension list back into its
// canonical display form. ParseExtensions(FormatExtensions(exts)) yields
// exts again.
func FormatExtensions(exts []string) string {
	return strings.Join(exts, ", ")
}
