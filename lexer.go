package dialectcsv

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/csvtools/dialectcsv/internal/debugutil"
)

// lexer is the token-producing state machine of spec §4.2, grounded on the
// teacher's sqlparser.Scanner (scanner.go): a single forward-only cursor
// over a character reader, switching between unquoted and quoted scan
// modes and reporting fatal errors tagged with the reader's line/position,
// exactly as sqlparser.Scanner.error does for its own token stream.
type lexer struct {
	r      *charReader
	f      Format
	delim  []rune
	firstEOL string
	log    logrus.FieldLogger

	// atRecordStart tracks whether the next field scan begins a fresh
	// record: true initially, after an end-of-record token, and after a
	// comment token. Comment-marker recognition and empty-line absorption
	// are both gated on this rather than re-deriving it from reader state,
	// since a just-emitted COMMENT or EORECORD token is the authoritative
	// signal the spec names (§4.2.1).
	atRecordStart bool
}

func newLexer(r *charReader, f Format, log logrus.FieldLogger) *lexer {
	return &lexer{r: r, f: f, delim: []rune(f.delimiter), atRecordStart: true, log: log}
}

func (lx *lexer) FirstEndOfLine() (string, bool) {
	return lx.firstEOL, lx.firstEOL != ""
}

func (lx *lexer) recordFirstEOL(s string) {
	if lx.firstEOL == "" {
		lx.firstEOL = s
	}
}

// consumeTerminator consumes CR, LF, or CRLF at the current position
// (caller must have confirmed the next character is CR or LF) and returns
// which form it was, tracking firstEndOfLine per §6.1.
func (lx *lexer) consumeTerminator() string {
	c := lx.r.read()
	if c == CR {
		if lx.r.peek() == LF {
			lx.r.read()
			lx.recordFirstEOL("\r\n")
			return "\r\n"
		}
		lx.recordFirstEOL("\r")
		return "\r"
	}
	lx.recordFirstEOL("\n")
	return "\n"
}

// matchDelimiter reports whether the delimiter string starts at the
// current position, consuming it if so. Multi-character delimiters look
// ahead without consuming on a partial match, per §4.2.2 rule 1.
func (lx *lexer) matchDelimiter() bool {
	for i, want := range lx.delim {
		if lx.r.peekAt(i) != want {
			return false
		}
	}
	for range lx.delim {
		lx.r.read()
	}
	return true
}

func (lx *lexer) fatal(format string, args ...any) error {
	pos := Pos{Line: lx.r.getLineNumber(), Col: int(lx.r.getPosition())}
	return newLexError(pos, format, args...)
}

// escapeTranslate implements the escape table of §4.2.2 rule 3: r/n/t/b/f
// map to their control characters; everything else (including the escape
// character itself, the quote character, the delimiter, CR, LF, and the
// MySQL null-marker's 'N') passes through verbatim. The caller is
// responsible for stripping the escape character itself from the decoded
// content — only the translated/passthrough character is appended.
func escapeTranslate(next rune) rune {
	switch next {
	case 'r':
		return CR
	case 'n':
		return LF
	case 't':
		return TAB
	case 'b':
		return Backspace
	case 'f':
		return FormFeed
	default:
		return next
	}
}

// Next scans and returns the next token, reusing tok's buffers.
func (lx *lexer) Next(tok *token) error {
	tok.reset(tokenField)

	if lx.atRecordStart && lx.f.ignoreEmptyLines {
		for {
			c := lx.r.peek()
			if c != CR && c != LF {
				break
			}
			lx.consumeTerminator()
		}
	}

	if lx.r.peek() == EOF {
		tok.kind = tokenEOF
		return nil
	}

	if lx.atRecordStart && lx.f.hasComment && lx.r.peek() == lx.f.commentChar {
		return lx.scanComment(tok)
	}

	err := lx.scanField(tok)
	debugutil.DPrint("token kind=%d text=%q raw=%q line=%d\n", tok.kind, tok.Text(), tok.RawText(), lx.r.getLineNumber())
	return err
}

// scanField implements the unquoted field scan of §4.2.2, including the
// deferred quote-start check of rule 4 and the leading/trailing-space
// holding area of rules 5-6.
func (lx *lexer) scanField(tok *token) error {
	quoteChar, hasQuote := lx.f.QuoteChar()

	if hasQuote {
		if lx.f.ignoreSurrSpaces {
			var leading []rune
			for {
				c := lx.r.peek()
				if c != SP && c != TAB {
					break
				}
				leading = append(leading, lx.r.read())
			}
			if lx.r.peek() == quoteChar {
				lx.r.read()
				tok.appendRaw(quoteChar)
				lx.atRecordStart = false
				return lx.scanQuoted(tok)
			}
			for _, r := range leading {
				tok.appendRune(r)
				tok.appendRaw(r)
			}
		} else if lx.r.peek() == quoteChar {
			lx.r.read()
			tok.appendRaw(quoteChar)
			lx.atRecordStart = false
			return lx.scanQuoted(tok)
		}
	}

	lx.atRecordStart = false
	escapeChar, hasEscape := lx.f.EscapeChar()

	for {
		c := lx.r.peek()
		switch {
		case c == EOF:
			lx.finishTrim(tok)
			tok.kind = tokenEOF
			return nil

		case lx.matchDelimiter():
			lx.finishTrim(tok)
			tok.kind = tokenField
			return nil

		case c == CR || c == LF:
			lx.consumeTerminator()
			lx.finishTrim(tok)
			tok.kind = tokenEndOfRecord
			lx.atRecordStart = true
			return nil

		case hasEscape && c == escapeChar:
			lx.r.read()
			tok.appendRaw(escapeChar)
			nc := lx.r.peek()
			if nc == EOF {
				return lx.fatal("escape character at end of input")
			}
			lx.r.read()
			tok.appendRaw(nc)
			tok.appendRune(escapeTranslate(nc))

		default:
			lx.r.read()
			tok.appendRune(c)
			tok.appendRaw(c)
		}
	}
}

// finishTrim applies the ignoreSurroundingSpaces trailing (and, by virtue
// of rule 5's deferred leading spaces having been appended as ordinary
// content above, leading) trim to the decoded content only. The raw buffer
// is left untouched since it exists solely for null-sentinel comparison
// against configured nullStrings, none of which carry surrounding
// whitespace in the predefined dialects.
func (lx *lexer) finishTrim(tok *token) {
	if !lx.f.ignoreSurrSpaces {
		return
	}
	s := tok.content
	start := 0
	for start < len(s) && (s[start] == SP || s[start] == TAB) {
		start++
	}
	end := len(s)
	for end > start && (s[end-1] == SP || s[end-1] == TAB) {
		end--
	}
	tok.content = append(tok.content[:0], s[start:end]...)
}

// scanQuoted implements the quoted field scan of §4.2.3.
func (lx *lexer) scanQuoted(tok *token) error {
	quoteChar, _ := lx.f.QuoteChar()
	escapeChar, hasEscape := lx.f.EscapeChar()
	distinctEscape := hasEscape && escapeChar != quoteChar

	for {
		c := lx.r.peek()
		switch {
		case c == EOF:
			if lx.f.lenientEOF {
				lx.log.WithField("line", lx.r.getLineNumber()).Warn("lenient EOF reached inside quoted field")
				tok.kind = tokenEOF
				return nil
			}
			return lx.fatal("unexpected end of file inside quoted field")

		case c == quoteChar:
			lx.r.read()
			tok.appendRaw(quoteChar)
			if lx.r.peek() == quoteChar {
				lx.r.read()
				tok.appendRaw(quoteChar)
				tok.appendRune(quoteChar)
				continue
			}
			return lx.afterClosingQuote(tok)

		case distinctEscape && c == escapeChar:
			lx.r.read()
			tok.appendRaw(escapeChar)
			nc := lx.r.peek()
			if nc == EOF {
				return lx.fatal("escape character at end of input")
			}
			lx.r.read()
			tok.appendRaw(nc)
			tok.appendRune(escapeTranslate(nc))

		default:
			// line terminators inside quotes are content; the reader's own
			// line counter still advances across them (§4.2.3 rule 8).
			lx.r.read()
			tok.appendRune(c)
			tok.appendRaw(c)
		}
	}
}

// afterClosingQuote implements §4.2.3 rules 3-6: what follows a closing
// quote determines whether the field ends cleanly, whitespace is
// swallowed first, or trailingData kicks in.
func (lx *lexer) afterClosingQuote(tok *token) error {
	var ws []rune
	for {
		c := lx.r.peek()
		if c != SP && c != TAB {
			break
		}
		ws = append(ws, lx.r.read())
	}

	switch {
	case lx.r.peek() == EOF:
		for _, r := range ws {
			tok.appendRaw(r)
		}
		tok.kind = tokenEOF
		return nil

	case lx.matchDelimiter():
		for _, r := range ws {
			tok.appendRaw(r)
		}
		tok.kind = tokenField
		return nil

	case lx.r.peek() == CR || lx.r.peek() == LF:
		lx.consumeTerminator()
		for _, r := range ws {
			tok.appendRaw(r)
		}
		tok.kind = tokenEndOfRecord
		lx.atRecordStart = true
		return nil
	}

	if !lx.f.trailingData {
		return lx.fatal("extraneous data after closing quote")
	}
	lx.log.WithField("line", lx.r.getLineNumber()).Warn("trailing data after closing quote absorbed into field")
	for _, r := range ws {
		tok.appendRune(r)
		tok.appendRaw(r)
	}
	return lx.scanTrailingData(tok)
}

// scanTrailingData concatenates everything up to the next delimiter or
// terminator as literal content, with no further escape or quote
// interpretation — per §4.2.3 rule 6's "concatenate everything up to the
// next delimiter/terminator as part of the field".
func (lx *lexer) scanTrailingData(tok *token) error {
	for {
		c := lx.r.peek()
		switch {
		case c == EOF:
			tok.kind = tokenEOF
			return nil
		case lx.matchDelimiter():
			tok.kind = tokenField
			return nil
		case c == CR || c == LF:
			lx.consumeTerminator()
			tok.kind = tokenEndOfRecord
			lx.atRecordStart = true
			return nil
		default:
			lx.r.read()
			tok.appendRune(c)
			tok.appendRaw(c)
		}
	}
}

// scanComment implements §4.2.4: read through the next terminator or EOF,
// trim at most one leading space, emit the body.
func (lx *lexer) scanComment(tok *token) error {
	lx.r.read() // consume the comment marker itself
	body, _ := lx.r.readLine()
	body = strings.TrimPrefix(body, " ")
	tok.kind = tokenComment
	tok.comment = body
	lx.atRecordStart = true
	return nil
}
