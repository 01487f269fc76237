package dialectcsv

import (
	"fmt"
	"reflect"
)

// QuoteMode governs when the Printer wraps a field in the quote character.
type QuoteMode int

const (
	// QuoteAll always quotes every field, including the null string.
	QuoteAll QuoteMode = iota + 1
	// QuoteAllNonNull always quotes every non-null field; the null string
	// itself is written unquoted.
	QuoteAllNonNull
	// QuoteMinimal quotes only when a field requires it to round-trip.
	QuoteMinimal
	// QuoteNonNumeric quotes every field whose original value is not a
	// numeric type.
	QuoteNonNumeric
	// QuoteNone never quotes; special characters are escaped instead. This
	// mode requires an escape character.
	QuoteNone
)

func (m QuoteMode) String() string {
	switch m {
	case QuoteAll:
		return "ALL"
	case QuoteAllNonNull:
		return "ALL_NON_NULL"
	case QuoteMinimal:
		return "MINIMAL"
	case QuoteNonNumeric:
		return "NON_NUMERIC"
	case QuoteNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// DuplicateHeaderMode governs how repeated names in an explicit header list
// are handled at parser construction.
type DuplicateHeaderMode int

const (
	// AllowAllDuplicates permits any number of duplicate (including empty)
	// header names.
	AllowAllDuplicates DuplicateHeaderMode = iota + 1
	// AllowEmptyDuplicates permits duplicate empty names but rejects
	// duplicate non-empty names.
	AllowEmptyDuplicates
	// DisallowDuplicates rejects any duplicate header name, empty or not.
	DisallowDuplicates
)

func (m DuplicateHeaderMode) String() string {
	switch m {
	case AllowAllDuplicates:
		return "ALLOW_ALL"
	case AllowEmptyDuplicates:
		return "ALLOW_EMPTY"
	case DisallowDuplicates:
		return "DISALLOW"
	default:
		return "UNKNOWN"
	}
}

// headerKind discriminates the three states of Format's header field.
type headerKind int

const (
	headerUnset headerKind = iota
	headerAuto
	headerExplicit
)

// HeaderSpec is the resolved shape of Format's "header" field: either
// unset (no header processing at all), auto (detect from the first
// record), or an explicit ordered list of column names.
type HeaderSpec struct {
	kind  headerKind
	names []string
}

// HeaderUnset means the parser performs no header processing; name-indexed
// field access is unavailable.
func HeaderUnset() HeaderSpec { return HeaderSpec{kind: headerUnset} }

// HeaderAuto means the parser consumes the first non-comment record as the
// header names (skipHeaderRecord is implied).
func HeaderAuto() HeaderSpec { return HeaderSpec{kind: headerAuto} }

// HeaderNames declares an explicit, ordered list of header names.
func HeaderNames(names ...string) HeaderSpec {
	cp := make([]string, len(names))
	copy(cp, names)
	return HeaderSpec{kind: headerExplicit, names: cp}
}

func (h HeaderSpec) isUnset() bool    { return h.kind == headerUnset }
func (h HeaderSpec) isAuto() bool     { return h.kind == headerAuto }
func (h HeaderSpec) isExplicit() bool { return h.kind == headerExplicit }

// Format is an immutable, validated dialect configuration. Values are
// produced exclusively by Builder.Build (or one of the predefined Dialects)
// and are safe to share across parsers/printers without synchronization,
// mirroring the teacher's "global predefined dialects" design note.
type Format struct {
	delimiter   string
	quoteChar   rune // 0 when absent
	hasQuote    bool
	escapeChar  rune
	hasEscape   bool
	commentChar rune
	hasComment  bool

	recordSeparator string
	hasRecordSep    bool

	nullString string
	hasNull    bool

	header            HeaderSpec
	headerComments    []string
	skipHeaderRecord  bool
	explicitSkipSet   bool
	ignoreSurrSpaces  bool
	ignoreEmptyLines  bool
	ignoreHeaderCase  bool
	trim              bool
	trailingDelimiter bool
	quoteMode         QuoteMode
	duplicateMode     DuplicateHeaderMode
	allowMissingCols  bool
	lenientEOF        bool
	trailingData      bool
	autoFlush         bool
}

// Delimiter returns the configured field delimiter (never empty).
func (f Format) Delimiter() string { return f.delimiter }

// QuoteChar returns the quote character and whether quoting is enabled.
func (f Format) QuoteChar() (rune, bool) { return f.quoteChar, f.hasQuote }

// EscapeChar returns the escape character and whether escaping is enabled.
func (f Format) EscapeChar() (rune, bool) { return f.escapeChar, f.hasEscape }

// CommentMarker returns the comment character and whether comments are
// recognized.
func (f Format) CommentMarker() (rune, bool) { return f.commentChar, f.hasComment }

// RecordSeparator returns the output-only record separator and whether one
// is configured (absent means the Printer writes nothing after each
// record's delimiter-joined fields).
func (f Format) RecordSeparator() (string, bool) { return f.recordSeparator, f.hasRecordSep }

// NullString returns the configured null sentinel and whether one is set.
func (f Format) NullString() (string, bool) { return f.nullString, f.hasNull }

// Header returns the header specification.
func (f Format) Header() HeaderSpec { return f.header }

// HeaderComments returns the lines written before the header on output.
func (f Format) HeaderComments() []string { return append([]string(nil), f.headerComments...) }

// SkipHeaderRecord reports whether the first input record is discarded
// (only meaningful with an explicit header; auto-detect always skips).
func (f Format) SkipHeaderRecord() bool {
	if f.header.isAuto() {
		return true
	}
	return f.skipHeaderRecord
}

func (f Format) IgnoreSurroundingSpaces() bool { return f.ignoreSurrSpaces }
func (f Format) IgnoreEmptyLines() bool        { return f.ignoreEmptyLines }
func (f Format) IgnoreHeaderCase() bool        { return f.ignoreHeaderCase }
func (f Format) Trim() bool                    { return f.trim }
func (f Format) TrailingDelimiter() bool       { return f.trailingDelimiter }
func (f Format) QuoteMode() QuoteMode          { return f.quoteMode }
func (f Format) DuplicateHeaderMode() DuplicateHeaderMode { return f.duplicateMode }
func (f Format) AllowMissingColumnNames() bool { return f.allowMissingCols }
func (f Format) LenientEOF() bool              { return f.lenientEOF }
func (f Format) TrailingData() bool            { return f.trailingData }
func (f Format) AutoFlush() bool               { return f.autoFlush }

// Builder returns a new Builder seeded with this Format's values, for
// deriving a variant dialect — e.g. RFC4180.Builder().WithNullString("NULL").
func (f Format) Builder() *Builder {
	b := &Builder{f: f}
	return b
}

// Equal reports whether two formats carry the exact same tuple of
// configuration values. Format holds slices (header comments and header
// names), so it cannot be compared with `==`; Equal compares those slices
// element by element and the remaining fields with reflect.DeepEqual.
func (f Format) Equal(other Format) bool {
	if len(f.headerComments) != len(other.headerComments) {
		return false
	}
	for i := range f.headerComments {
		if f.headerComments[i] != other.headerComments[i] {
			return false
		}
	}
	if f.header.kind != other.header.kind || len(f.header.names) != len(other.header.names) {
		return false
	}
	for i := range f.header.names {
		if f.header.names[i] != other.header.names[i] {
			return false
		}
	}
	lhs := f
	rhs := other
	lhs.headerComments, rhs.headerComments = nil, nil
	lhs.header.names, rhs.header.names = nil, nil
	return reflect.DeepEqual(lhs, rhs)
}

// GoString implements fmt.GoStringer, giving %#v and debug tools
// (csvfmt dialects --describe uses alecthomas/repr instead, but this keeps plain
// fmt.Printf("%#v", format) useful too) a readable dump.
func (f Format) GoString() string {
	return fmt.Sprintf(
		"Format{delimiter:%q quote:%s escape:%s comment:%s recordSeparator:%q quoteMode:%s duplicateHeaderMode:%s}",
		f.delimiter, optRune(f.quoteChar, f.hasQuote), optRune(f.escapeChar, f.hasEscape),
		optRune(f.commentChar, f.hasComment), f.recordSeparator, f.quoteMode, f.duplicateMode,
	)
}

func optRune(r rune, ok bool) string {
	if !ok {
		return "<none>"
	}
	return fmt.Sprintf("%q", r)
}
