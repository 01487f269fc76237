// Package config loads user-defined dialects from a sibling YAML file,
// the ambient-configuration surface described in SPEC_FULL.md §9.3.
// Grounded on the teacher's cli/cmd/config.go Config/LoadConfig pair: a
// package-level struct unmarshaled from YAML with gopkg.in/yaml.v3, found
// relative to the current directory.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/csvtools/dialectcsv"
)

// DialectSpec is the YAML shape of one custom dialect entry. Unset string
// fields leave the corresponding Format setting untouched from its base;
// Extends names a predefined dialect (see dialectcsv.Dialects) to start
// from, defaulting to "DEFAULT".
type DialectSpec struct {
	Extends                 string  `yaml:"extends"`
	Delimiter               string  `yaml:"delimiter"`
	Quote                   string  `yaml:"quote"`
	NoQuote                 bool    `yaml:"noQuote"`
	Escape                  string  `yaml:"escape"`
	NoEscape                bool    `yaml:"noEscape"`
	Comment                 string  `yaml:"comment"`
	NoComment               bool    `yaml:"noComment"`
	RecordSeparator         *string `yaml:"recordSeparator"`
	NullString              *string `yaml:"nullString"`
	HeaderNames             []string `yaml:"headerNames"`
	SkipHeaderRecord        *bool   `yaml:"skipHeaderRecord"`
	IgnoreSurroundingSpaces bool    `yaml:"ignoreSurroundingSpaces"`
	IgnoreEmptyLines        bool    `yaml:"ignoreEmptyLines"`
	IgnoreHeaderCase        bool    `yaml:"ignoreHeaderCase"`
	Trim                    bool    `yaml:"trim"`
	TrailingDelimiter       bool    `yaml:"trailingDelimiter"`
	QuoteMode               string  `yaml:"quoteMode"`
	DuplicateHeaderMode     string  `yaml:"duplicateHeaderMode"`
	AllowMissingColumnNames *bool   `yaml:"allowMissingColumnNames"`
	LenientEOF              bool    `yaml:"lenientEof"`
	TrailingData            bool    `yaml:"trailingData"`
	AutoFlush               bool    `yaml:"autoFlush"`
}

// DialectFile is the top-level document: a named collection of custom
// dialects, keyed by the name consumers will look them up by (e.g. from
// cmd/csvfmt's --dialect flag).
type DialectFile struct {
	Dialects map[string]DialectSpec `yaml:"dialects"`
}

// Load reads and parses a dialect file from path.
func Load(path string) (DialectFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DialectFile{}, err
	}
	var result DialectFile
	if err := yaml.Unmarshal(raw, &result); err != nil {
		return DialectFile{}, fmt.Errorf("parsing dialect file %s: %w", path, err)
	}
	return result, nil
}

// Resolve builds a dialectcsv.Format from this spec, validating via
// Builder.Build.
func (d DialectSpec) Resolve() (dialectcsv.Format, error) {
	base := dialectcsv.DEFAULT
	if d.Extends != "" {
		b, ok := dialectcsv.Dialects[d.Extends]
		if !ok {
			return dialectcsv.Format{}, fmt.Errorf("unknown base dialect %q", d.Extends)
		}
		base = b
	}

	b := base.Builder()
	if d.Delimiter != "" {
		b.WithDelimiter(d.Delimiter)
	}
	switch {
	case d.NoQuote:
		b.WithoutQuoting()
	case d.Quote != "":
		b.WithQuoteChar([]rune(d.Quote)[0])
	}
	switch {
	case d.NoEscape:
		b.WithoutEscaping()
	case d.Escape != "":
		b.WithEscapeChar([]rune(d.Escape)[0])
	}
	switch {
	case d.NoComment:
		b.WithoutComments()
	case d.Comment != "":
		b.WithCommentMarker([]rune(d.Comment)[0])
	}
	if d.RecordSeparator != nil {
		if *d.RecordSeparator == "" {
			b.WithoutRecordSeparator()
		} else {
			b.WithRecordSeparator(*d.RecordSeparator)
		}
	}
	if d.NullString != nil {
		if *d.NullString == "" {
			b.WithoutNullString()
		} else {
			b.WithNullString(*d.NullString)
		}
	}
	if len(d.HeaderNames) > 0 {
		b.WithHeader(dialectcsv.HeaderNames(d.HeaderNames...))
	}
	if d.SkipHeaderRecord != nil {
		b.WithSkipHeaderRecord(*d.SkipHeaderRecord)
	}
	b.WithIgnoreSurroundingSpaces(d.IgnoreSurroundingSpaces)
	b.WithIgnoreEmptyLines(d.IgnoreEmptyLines)
	b.WithIgnoreHeaderCase(d.IgnoreHeaderCase)
	b.WithTrim(d.Trim)
	b.WithTrailingDelimiter(d.TrailingDelimiter)
	if d.QuoteMode != "" {
		mode, err := parseQuoteMode(d.QuoteMode)
		if err != nil {
			return dialectcsv.Format{}, err
		}
		b.WithQuoteMode(mode)
	}
	if d.DuplicateHeaderMode != "" {
		mode, err := parseDuplicateHeaderMode(d.DuplicateHeaderMode)
		if err != nil {
			return dialectcsv.Format{}, err
		}
		b.WithDuplicateHeaderMode(mode)
	}
	if d.AllowMissingColumnNames != nil {
		b.WithAllowMissingColumnNames(*d.AllowMissingColumnNames)
	}
	b.WithLenientEOF(d.LenientEOF)
	b.WithTrailingData(d.TrailingData)
	b.WithAutoFlush(d.AutoFlush)

	return b.Build()
}

func parseQuoteMode(s string) (dialectcsv.QuoteMode, error) {
	switch s {
	case "ALL":
		return dialectcsv.QuoteAll, nil
	case "ALL_NON_NULL":
		return dialectcsv.QuoteAllNonNull, nil
	case "MINIMAL":
		return dialectcsv.QuoteMinimal, nil
	case "NON_NUMERIC":
		return dialectcsv.QuoteNonNumeric, nil
	case "NONE":
		return dialectcsv.QuoteNone, nil
	default:
		return 0, fmt.Errorf("unknown quoteMode %q", s)
	}
}

func parseDuplicateHeaderMode(s string) (dialectcsv.DuplicateHeaderMode, error) {
	switch s {
	case "ALLOW_ALL":
		return dialectcsv.AllowAllDuplicates, nil
	case "ALLOW_EMPTY":
		return dialectcsv.AllowEmptyDuplicates, nil
	case "DISALLOW":
		return dialectcsv.DisallowDuplicates, nil
	default:
		return 0, fmt.Errorf("unknown duplicateHeaderMode %q", s)
	}
}
