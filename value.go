package dialectcsv

import "io"

type fieldValueKind int

const (
	fvText fieldValueKind = iota
	fvNull
	fvNumber
	fvCharStream
	fvByteStream
)

// FieldValue is the small tagged variant DESIGN NOTES calls for under
// "Polymorphic field input to the printer": a field handed to Printer may
// be ordinary text, an explicit null, a pre-formatted number (exempted
// from NON_NUMERIC quoting), a streaming character producer, or a raw byte
// stream (base64-encoded on the wire). The Printer dispatches on Kind
// rather than on a Go interface hierarchy, matching the closed, known set
// of input shapes the spec enumerates.
type FieldValue struct {
	kind   fieldValueKind
	text   string
	stream io.Reader
}

// Text wraps an ordinary string field value.
func Text(s string) FieldValue { return FieldValue{kind: fvText, text: s} }

// Null represents the null value; the Printer renders it as the
// configured null-string (or the empty string when none is configured).
func Null() FieldValue { return FieldValue{kind: fvNull} }

// Number wraps a pre-formatted numeric literal; under QuoteNonNumeric this
// value is never quoted regardless of its textual content.
func Number(numericLiteral string) FieldValue { return FieldValue{kind: fvNumber, text: numericLiteral} }

// CharStream wraps a streaming character producer. Its content is copied
// directly to the sink without being buffered in memory, with quoting or
// escaping applied on the fly.
func CharStream(r io.Reader) FieldValue { return FieldValue{kind: fvCharStream, stream: r} }

// ByteStream wraps a raw byte producer, written base64-encoded between
// quotes without buffering the whole value in memory.
func ByteStream(r io.Reader) FieldValue { return FieldValue{kind: fvByteStream, stream: r} }

func textValues(ss []string) []FieldValue {
	out := make([]FieldValue, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}
