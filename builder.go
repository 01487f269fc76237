package dialectcsv

import "strings"

// Builder is a mutable, fluent configuration surface for Format, mirroring
// the teacher's pattern of a validating finalizer over a mutable struct
// (DESIGN NOTES: "Builder of an immutable value" -> mutable config struct +
// validating Build()). Each mutator returns the Builder so calls chain; the
// zero Builder has an empty delimiter, so its Build fails; start from
// NewBuilder or Format.Builder.
type Builder struct {
	f Format
}

// NewBuilder returns a Builder seeded with sane defaults: comma delimiter,
// double-quote quoting, CRLF record separator, MINIMAL quoting, no header.
func NewBuilder() *Builder {
	return &Builder{f: Format{
		delimiter:       ",",
		quoteChar:       '"',
		hasQuote:        true,
		recordSeparator: "\r\n",
		hasRecordSep:    true,
		quoteMode:       QuoteMinimal,
		duplicateMode:   AllowAllDuplicates,
	}}
}

func (b *Builder) WithDelimiter(delim string) *Builder {
	b.f.delimiter = delim
	return b
}

func (b *Builder) WithQuoteChar(q rune) *Builder {
	b.f.quoteChar, b.f.hasQuote = q, true
	return b
}

func (b *Builder) WithoutQuoting() *Builder {
	b.f.quoteChar, b.f.hasQuote = 0, false
	return b
}

func (b *Builder) WithEscapeChar(e rune) *Builder {
	b.f.escapeChar, b.f.hasEscape = e, true
	return b
}

func (b *Builder) WithoutEscaping() *Builder {
	b.f.escapeChar, b.f.hasEscape = 0, false
	return b
}

func (b *Builder) WithCommentMarker(c rune) *Builder {
	b.f.commentChar, b.f.hasComment = c, true
	return b
}

func (b *Builder) WithoutComments() *Builder {
	b.f.commentChar, b.f.hasComment = 0, false
	return b
}

func (b *Builder) WithRecordSeparator(sep string) *Builder {
	b.f.recordSeparator, b.f.hasRecordSep = sep, true
	return b
}

// WithoutRecordSeparator makes the Printer write nothing after a record's
// delimiter-joined fields, so consecutive records are not separated
// (spec §6.2).
func (b *Builder) WithoutRecordSeparator() *Builder {
	b.f.recordSeparator, b.f.hasRecordSep = "", false
	return b
}

func (b *Builder) WithNullString(n string) *Builder {
	b.f.nullString, b.f.hasNull = n, true
	return b
}

func (b *Builder) WithoutNullString() *Builder {
	b.f.nullString, b.f.hasNull = "", false
	return b
}

func (b *Builder) WithHeader(h HeaderSpec) *Builder {
	b.f.header = h
	return b
}

func (b *Builder) WithHeaderComments(lines ...string) *Builder {
	b.f.headerComments = append([]string(nil), lines...)
	return b
}

func (b *Builder) WithSkipHeaderRecord(skip bool) *Builder {
	b.f.skipHeaderRecord, b.f.explicitSkipSet = skip, true
	return b
}

func (b *Builder) WithIgnoreSurroundingSpaces(v bool) *Builder {
	b.f.ignoreSurrSpaces = v
	return b
}

func (b *Builder) WithIgnoreEmptyLines(v bool) *Builder {
	b.f.ignoreEmptyLines = v
	return b
}

func (b *Builder) WithIgnoreHeaderCase(v bool) *Builder {
	b.f.ignoreHeaderCase = v
	return b
}

func (b *Builder) WithTrim(v bool) *Builder {
	b.f.trim = v
	return b
}

func (b *Builder) WithTrailingDelimiter(v bool) *Builder {
	b.f.trailingDelimiter = v
	return b
}

func (b *Builder) WithQuoteMode(m QuoteMode) *Builder {
	b.f.quoteMode = m
	return b
}

func (b *Builder) WithDuplicateHeaderMode(m DuplicateHeaderMode) *Builder {
	b.f.duplicateMode = m
	return b
}

func (b *Builder) WithAllowMissingColumnNames(v bool) *Builder {
	b.f.allowMissingCols = v
	return b
}

func (b *Builder) WithLenientEOF(v bool) *Builder {
	b.f.lenientEOF = v
	return b
}

func (b *Builder) WithTrailingData(v bool) *Builder {
	b.f.trailingData = v
	return b
}

func (b *Builder) WithAutoFlush(v bool) *Builder {
	b.f.autoFlush = v
	return b
}

// Build validates the accumulated configuration and returns an immutable
// Format. The Builder instance remains usable afterwards (callers may keep
// tweaking it and Build again), but per the error-handling design a failed
// Build leaves the Builder's field values untouched — only the returned
// error needs fixing before retrying.
func (b *Builder) Build() (Format, error) {
	f := b.f

	if f.delimiter == "" {
		return Format{}, newConfigError("delimiter must not be empty")
	}
	if strings.ContainsAny(f.delimiter, "\r\n") {
		return Format{}, newConfigError("delimiter must not contain a line break")
	}

	distinct := map[rune]string{}
	check := func(r rune, ok bool, name string, allowSharedWith ...string) error {
		if !ok {
			return nil
		}
		if isLineBreak(r) {
			return newConfigError("%s must not be a line-break character", name)
		}
		if other, taken := distinct[r]; taken {
			for _, allowed := range allowSharedWith {
				if other == allowed {
					return nil
				}
			}
			return newConfigError("%s and %s must not both be %q", name, other, r)
		}
		distinct[r] = name
		return nil
	}
	if err := check(f.quoteChar, f.hasQuote, "quoteChar"); err != nil {
		return Format{}, err
	}
	// quoteChar and escapeChar are allowed to coincide (MONGODB_CSV/TSV of
	// §6.3 both use '"' for each); every other pair must stay distinct.
	if err := check(f.escapeChar, f.hasEscape, "escapeChar", "quoteChar"); err != nil {
		return Format{}, err
	}
	if err := check(f.commentChar, f.hasComment, "commentMarker"); err != nil {
		return Format{}, err
	}
	// the delimiter is compared against distinct chars only when it is
	// itself a single rune; multi-char delimiters cannot collide with a
	// single special character by construction.
	if delimRunes := []rune(f.delimiter); len(delimRunes) == 1 {
		if err := check(delimRunes[0], true, "delimiter"); err != nil {
			return Format{}, err
		}
	}

	if f.quoteMode == QuoteNone && !f.hasEscape {
		return Format{}, newConfigError("quoteMode NONE requires an escape character")
	}

	if f.header.isExplicit() && f.duplicateMode != AllowAllDuplicates {
		seen := map[string]int{}
		for _, name := range f.header.names {
			seen[name]++
		}
		for name, count := range seen {
			if count <= 1 {
				continue
			}
			if name == "" && f.duplicateMode == AllowEmptyDuplicates {
				continue
			}
			return Format{}, newConfigError("duplicate header name %q in %v", name, f.header.names)
		}
	}

	if !f.explicitSkipSet && f.header.isExplicit() {
		// default: do not implicitly skip a data record for an explicit
		// header unless the caller asked for it.
		f.skipHeaderRecord = false
	}

	return f, nil
}

// MustBuild is Build that panics on a configuration error; used only for
// the predefined dialects, which are constructed once at init time from
// literal, known-good configuration.
func (b *Builder) MustBuild() Format {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}
