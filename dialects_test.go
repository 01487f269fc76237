package dialectcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredefinedDialectsMatchTable(t *testing.T) {
	type expect struct {
		delim        string
		quote        rune
		hasQuote     bool
		escape       rune
		hasEscape    bool
		recordSep    string
		nullString   string
		hasNull      bool
		ignoreEmpty  bool
		quoteMode    QuoteMode
	}

	cases := map[string]expect{
		"DEFAULT":             {delim: ",", quote: '"', hasQuote: true, recordSep: "\r\n", ignoreEmpty: true, quoteMode: QuoteMinimal},
		"RFC4180":             {delim: ",", quote: '"', hasQuote: true, recordSep: "\r\n", quoteMode: QuoteMinimal},
		"TDF":                 {delim: "\t", quote: '"', hasQuote: true, recordSep: "\r\n", ignoreEmpty: true, quoteMode: QuoteMinimal},
		"MYSQL":               {delim: "\t", hasQuote: false, escape: '\\', hasEscape: true, recordSep: "\n", nullString: `\N`, hasNull: true, quoteMode: QuoteAllNonNull},
		"POSTGRESQL_TEXT":     {delim: "\t", hasQuote: false, escape: '\\', hasEscape: true, recordSep: "\n", nullString: `\N`, hasNull: true, quoteMode: QuoteAllNonNull},
		"POSTGRESQL_CSV":      {delim: ",", quote: '"', hasQuote: true, recordSep: "\n", nullString: `""`, hasNull: true, quoteMode: QuoteAllNonNull},
		"INFORMIX_UNLOAD":     {delim: "|", quote: '"', hasQuote: true, escape: '\\', hasEscape: true, recordSep: "\n", ignoreEmpty: true, quoteMode: QuoteMinimal},
		"INFORMIX_UNLOAD_CSV": {delim: ",", quote: '"', hasQuote: true, recordSep: "\n", ignoreEmpty: true, quoteMode: QuoteMinimal},
		"MONGODB_CSV":         {delim: ",", quote: '"', hasQuote: true, escape: '"', hasEscape: true, recordSep: "\r\n", ignoreEmpty: true, quoteMode: QuoteMinimal},
		"MONGODB_TSV":         {delim: "\t", quote: '"', hasQuote: true, escape: '"', hasEscape: true, recordSep: "\r\n", ignoreEmpty: true, quoteMode: QuoteMinimal},
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			f, ok := Dialects[name]
			assert.True(t, ok)

			assert.Equal(t, want.delim, f.Delimiter())
			q, hasQuote := f.QuoteChar()
			assert.Equal(t, want.hasQuote, hasQuote)
			if want.hasQuote {
				assert.Equal(t, want.quote, q)
			}
			e, hasEscape := f.EscapeChar()
			assert.Equal(t, want.hasEscape, hasEscape)
			if want.hasEscape {
				assert.Equal(t, want.escape, e)
			}
			sep, _ := f.RecordSeparator()
			assert.Equal(t, want.recordSep, sep)
			n, hasNull := f.NullString()
			assert.Equal(t, want.hasNull, hasNull)
			if want.hasNull {
				assert.Equal(t, want.nullString, n)
			}
			assert.Equal(t, want.ignoreEmpty, f.IgnoreEmptyLines())
			assert.Equal(t, want.quoteMode, f.QuoteMode())
		})
	}
}

func TestExcelDialectLeniency(t *testing.T) {
	assert.True(t, EXCEL.AllowMissingColumnNames())
	assert.True(t, EXCEL.TrailingData())
	assert.True(t, EXCEL.LenientEOF())
}

func TestOracleDialectTrimsAndUsesSystemEOL(t *testing.T) {
	assert.True(t, ORACLE.Trim())
	sep, _ := ORACLE.RecordSeparator()
	assert.Equal(t, systemLineSeparator, sep)
	n, ok := ORACLE.NullString()
	assert.True(t, ok)
	assert.Equal(t, `\N`, n)
}

func TestMongoDBCSVNeverSkipsHeaderRecord(t *testing.T) {
	assert.False(t, MONGODB_CSV.SkipHeaderRecord())
}

func TestDialectNamesCoversAllDialects(t *testing.T) {
	names := DialectNames()
	assert.Len(t, names, len(Dialects))
	for _, n := range names {
		_, ok := Dialects[n]
		assert.True(t, ok, "name %q from DialectNames missing in Dialects", n)
	}
}
