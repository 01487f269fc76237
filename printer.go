package dialectcsv

import (
	"bufio"
	"encoding/base64"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Printer serializes records to a character sink under the dialect-faithful
// rules of spec §4.4. Grounded on the teacher's internal/utils print.go
// writer helpers (sqlparser/internal/utils/print.go), which stream
// formatted text to an io.Writer incrementally rather than building the
// whole output in memory first — the same discipline the streaming-input
// paths here need to honor.
type Printer struct {
	sink io.Writer
	f    Format

	recordCount int64
	closed      bool

	log logrus.FieldLogger
}

// PrinterOption configures optional Printer behavior.
type PrinterOption func(*Printer)

// WithPrinterLogger attaches a structured logger for I/O diagnostics.
func WithPrinterLogger(l logrus.FieldLogger) PrinterOption {
	return func(p *Printer) { p.log = l }
}

// NewPrinter constructs a Printer over sink under Format f, writing header
// comments and the header row immediately, per §4.4 "Accepts a character
// sink and a Format. On construction...".
func NewPrinter(sink io.Writer, f Format, opts ...PrinterOption) (*Printer, error) {
	p := &Printer{sink: sink, f: f, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.writePreamble(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Printer) writePreamble() error {
	if marker, hasComment := p.f.CommentMarker(); hasComment {
		for _, line := range p.f.headerComments {
			if err := p.writeRaw(string(marker) + " " + line); err != nil {
				return err
			}
			if err := p.writeRecordSeparator(); err != nil {
				return err
			}
		}
	}
	if p.f.header.isExplicit() && !p.f.SkipHeaderRecord() {
		return p.PrintRecord(textValues(p.f.header.names)...)
	}
	return nil
}

// PrintStrings is a convenience over PrintRecord for plain, non-null
// string fields.
func (p *Printer) PrintStrings(values ...string) error {
	return p.PrintRecord(textValues(values)...)
}

// PrintRecord writes one record: each field per §4.4's per-field rules,
// then (if configured) a trailing delimiter, then the record separator.
func (p *Printer) PrintRecord(values ...FieldValue) error {
	if p.closed {
		return newUsageError("printer is closed")
	}
	for i, v := range values {
		if i > 0 {
			if err := p.writeRaw(p.f.delimiter); err != nil {
				return err
			}
		}
		if err := p.writeField(v, i == 0); err != nil {
			return err
		}
	}
	if p.f.trailingDelimiter {
		if err := p.writeRaw(p.f.delimiter); err != nil {
			return err
		}
	}
	if err := p.writeRecordSeparator(); err != nil {
		return err
	}
	p.recordCount++
	return nil
}

// RecordCount reports how many records have been written so far.
func (p *Printer) RecordCount() int64 { return p.recordCount }

func (p *Printer) writeRecordSeparator() error {
	sep, has := p.f.RecordSeparator()
	if !has {
		return nil
	}
	return p.writeRaw(sep)
}

func (p *Printer) writeField(v FieldValue, isFirstField bool) error {
	switch v.kind {
	case fvNull:
		return p.writeNull()
	case fvCharStream:
		return p.writeCharStream(v.stream)
	case fvByteStream:
		return p.writeByteStream(v.stream)
	}

	value := v.text
	if p.f.trim {
		value = strings.TrimFunc(value, isTrimmable)
	}

	if p.f.quoteMode == QuoteNone {
		return p.writeEscaped(value)
	}

	_, hasQuote := p.f.QuoteChar()
	if !hasQuote {
		if _, hasEscape := p.f.EscapeChar(); hasEscape {
			return p.writeEscaped(value)
		}
		return p.writeRaw(value)
	}

	isNumeric := v.kind == fvNumber
	if p.needsQuote(value, isFirstField, isNumeric) {
		return p.writeQuoted(value)
	}
	return p.writeRaw(value)
}

func (p *Printer) writeNull() error {
	null, hasNull := p.f.NullString()
	if !hasNull {
		null = ""
	}
	if p.f.quoteMode == QuoteAll {
		if _, hasQuote := p.f.QuoteChar(); hasQuote {
			return p.writeQuoted(null)
		}
	}
	return p.writeRaw(null)
}

// needsQuote implements the per-field quoting decision table of §4.4
// rule 4.
func (p *Printer) needsQuote(value string, isFirstField, isNumeric bool) bool {
	switch p.f.quoteMode {
	case QuoteAll, QuoteAllNonNull:
		return true
	case QuoteNonNumeric:
		return !isNumeric
	case QuoteNone:
		return false
	case QuoteMinimal:
		return p.needsMinimalQuote(value, isFirstField)
	default:
		return false
	}
}

func (p *Printer) needsMinimalQuote(value string, isFirstField bool) bool {
	if isFirstField && value == "" {
		return true
	}
	if value == "" {
		return false
	}
	runes := []rune(value)
	if runes[0] <= '#' {
		return true
	}
	if isTrimmable(runes[len(runes)-1]) {
		return true
	}
	quoteChar, _ := p.f.QuoteChar()
	escapeChar, hasEscape := p.f.EscapeChar()
	for _, r := range runes {
		if r == quoteChar || r == CR || r == LF {
			return true
		}
		if hasEscape && r == escapeChar {
			return true
		}
	}
	return strings.Contains(value, p.f.delimiter)
}

// writeQuoted implements §4.4 rule 5: frame the value in quote characters,
// doubling every occurrence of the quote char (and of the escape char when
// it differs from the quote char).
func (p *Printer) writeQuoted(value string) error {
	quoteChar, _ := p.f.QuoteChar()
	escapeChar, hasEscape := p.f.EscapeChar()

	var sb strings.Builder
	sb.WriteRune(quoteChar)
	for _, r := range value {
		if r == quoteChar {
			sb.WriteRune(quoteChar)
		} else if hasEscape && escapeChar != quoteChar && r == escapeChar {
			sb.WriteRune(escapeChar)
		}
		sb.WriteRune(r)
	}
	sb.WriteRune(quoteChar)
	return p.writeRaw(sb.String())
}

// writeEscaped implements §4.4 rule 6: escape CR, LF, the escape char
// itself, and every character that appears in the delimiter string.
func (p *Printer) writeEscaped(value string) error {
	escapeChar, _ := p.f.EscapeChar()
	delimRunes := map[rune]bool{}
	for _, r := range p.f.delimiter {
		delimRunes[r] = true
	}

	var sb strings.Builder
	for _, r := range value {
		switch {
		case r == CR:
			sb.WriteRune(escapeChar)
			sb.WriteRune('r')
		case r == LF:
			sb.WriteRune(escapeChar)
			sb.WriteRune('n')
		case r == escapeChar:
			sb.WriteRune(escapeChar)
			sb.WriteRune(escapeChar)
		case delimRunes[r]:
			sb.WriteRune(escapeChar)
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return p.writeRaw(sb.String())
}

// writeCharStream copies r to the sink one rune at a time without buffering
// the whole value, per §4.4 "Streaming inputs". When a quote character is
// configured the value is always quoted, whatever the quote mode, doubling
// the quote (and a distinct escape) character; otherwise, when an escape
// character is configured, CR, LF, the escape character and the delimiter's
// characters are escaped as in writeEscaped; otherwise it is copied as is.
func (p *Printer) writeCharStream(r io.Reader) error {
	quoteChar, hasQuote := p.f.QuoteChar()
	escapeChar, hasEscape := p.f.EscapeChar()
	br := bufio.NewReader(r)

	if hasQuote {
		if err := p.writeRaw(string(quoteChar)); err != nil {
			return err
		}
		for {
			c, _, err := br.ReadRune()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if c == quoteChar {
				if err := p.writeRaw(string(quoteChar)); err != nil {
					return err
				}
			} else if hasEscape && escapeChar != quoteChar && c == escapeChar {
				if err := p.writeRaw(string(escapeChar)); err != nil {
					return err
				}
			}
			if err := p.writeRaw(string(c)); err != nil {
				return err
			}
		}
		return p.writeRaw(string(quoteChar))
	}

	if hasEscape {
		delimRunes := map[rune]bool{}
		for _, d := range p.f.delimiter {
			delimRunes[d] = true
		}
		for {
			c, _, err := br.ReadRune()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			switch c {
			case CR:
				if err := p.writeRaw(string(escapeChar) + "r"); err != nil {
					return err
				}
			case LF:
				if err := p.writeRaw(string(escapeChar) + "n"); err != nil {
					return err
				}
			case escapeChar:
				if err := p.writeRaw(string(escapeChar) + string(escapeChar)); err != nil {
					return err
				}
			default:
				out := string(c)
				if delimRunes[c] {
					out = string(escapeChar) + out
				}
				if err := p.writeRaw(out); err != nil {
					return err
				}
			}
		}
	}

	_, err := io.Copy(p.sink, br)
	return err
}

// writeByteStream base64-encodes r directly to the sink between quotes,
// per §4.4 "An input of raw bytes is base64-encoded between quotes."
func (p *Printer) writeByteStream(r io.Reader) error {
	quoteChar, hasQuote := p.f.QuoteChar()
	if hasQuote {
		if err := p.writeRaw(string(quoteChar)); err != nil {
			return err
		}
	}
	enc := base64.NewEncoder(base64.StdEncoding, p.sink)
	if _, err := io.Copy(enc, r); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if hasQuote {
		return p.writeRaw(string(quoteChar))
	}
	return nil
}

func (p *Printer) writeRaw(s string) error {
	_, err := io.WriteString(p.sink, s)
	if err != nil {
		p.log.WithError(err).WithField("record", p.recordCount).Warn("write to sink failed")
	}
	return err
}

// Close flushes (if autoFlush) and closes the underlying sink exactly
// once, per §4.4 "Close".
func (p *Printer) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.f.autoFlush {
		if f, ok := p.sink.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	if c, ok := p.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
