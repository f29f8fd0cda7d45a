package compiler

import "strings"

// Translate rewrites source so every keyword spelled per the from table is
// respelled per the to table. from maps spelling to canonical keyword, to
// maps canonical keyword to spelling. Only keyword tokens are touched;
// identifiers, string literals and layout pass through byte for byte.
func Translate(source string, from map[string]string, to map[string]string) string {
	tokens, _ := Tokenize(source, from)

	var b strings.Builder
	b.Grow(len(source))
	last := 0
	for _, tok := range tokens {
		if !tok.Type.IsKeywordType() {
			continue
		}
		canonical, ok := from[tok.Literal]
		if !ok {
			continue
		}
		target, ok := to[canonical]
		if !ok {
			continue
		}
		b.WriteString(source[last:tok.Offset])
		b.WriteString(target)
		last = tok.Offset + len(tok.Literal)
	}
	b.WriteString(source[last:])
	return b.String()
}
