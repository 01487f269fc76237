package dialectcsv

// tokenKind discriminates what the lexer produced on a given Next call.
type tokenKind int

const (
	tokenField tokenKind = iota
	tokenEndOfRecord
	tokenComment
	tokenEOF
)

// token is a reusable scratch value: the lexer clears and refills one
// instance per call rather than allocating per field, mirroring the
// teacher's token-reuse pattern (sqlparser/scanner.go's Scanner keeps a
// single reusable token buffer across Next() calls rather than allocating a
// new Token struct per lexeme).
//
// content holds the decoded field text (quotes stripped, escapes
// collapsed). raw holds the literal source text of the field exactly as it
// appeared on the wire (quotes and escape sequences intact). Null-sentinel
// detection (spec §8.2 S5) compares raw against the dialect's nullString,
// never content — the MySQL escape table collapses a literal `\\N` down to
// the two-character text "\N", which must NOT be confused with the raw,
// unescaped `\N` that spells the null sentinel itself. Comparing raw sides
// of that table keeps the two distinguishable, and the same field also
// naturally explains PostgreSQL CSV's null convention: an empty quoted
// field's raw text, quotes included, is exactly `""`.
type token struct {
	kind tokenKind

	content []rune
	raw     []rune

	// comment holds the decoded body of a tokenComment token.
	comment string
}

func (t *token) reset(kind tokenKind) {
	t.kind = kind
	t.content = t.content[:0]
	t.raw = t.raw[:0]
	t.comment = ""
}

func (t *token) appendRune(r rune) {
	t.content = append(t.content, r)
}

func (t *token) appendRaw(r rune) {
	t.raw = append(t.raw, r)
}

// Text returns the decoded field content.
func (t *token) Text() string { return string(t.content) }

// RawText returns the literal source text of the field.
func (t *token) RawText() string { return string(t.raw) }
