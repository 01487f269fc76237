package dialectcsv

// Predefined dialects, built once from the Builder at package init and
// shared without synchronization, per the teacher's "global predefined
// dialects" design note (constants built once, read-only thereafter). See
// spec §6.3 for the authoritative table these are transcribed from.
var (
	// DEFAULT: comma/quote, CRLF, blank lines dropped, duplicate headers
	// allowed outright.
	DEFAULT = NewBuilder().
		WithIgnoreEmptyLines(true).
		MustBuild()

	// RFC4180: the strict standard — comma/quote, CRLF, blank lines kept
	// as one-field empty records.
	RFC4180 = NewBuilder().MustBuild()

	// EXCEL: like RFC4180 but forgiving of missing header names, trailing
	// data after a closing quote, and EOF inside an open quote.
	EXCEL = NewBuilder().
		WithAllowMissingColumnNames(true).
		WithTrailingData(true).
		WithLenientEOF(true).
		MustBuild()

	// TDF: tab-delimited, surrounding spaces trimmed, blank lines dropped.
	TDF = NewBuilder().
		WithDelimiter("\t").
		WithIgnoreSurroundingSpaces(true).
		WithIgnoreEmptyLines(true).
		MustBuild()

	// MYSQL: MySQL's SELECT ... INTO OUTFILE / LOAD DATA text format —
	// tab-delimited, backslash-escaped, no quoting, \N for null.
	MYSQL = NewBuilder().
		WithDelimiter("\t").
		WithoutQuoting().
		WithEscapeChar('\\').
		WithRecordSeparator("\n").
		WithNullString(`\N`).
		WithQuoteMode(QuoteAllNonNull).
		MustBuild()

	// POSTGRESQL_TEXT: PostgreSQL's COPY ... TEXT format — same shape as
	// MYSQL (tab/backslash/\N), LF records.
	POSTGRESQL_TEXT = NewBuilder().
		WithDelimiter("\t").
		WithoutQuoting().
		WithEscapeChar('\\').
		WithRecordSeparator("\n").
		WithNullString(`\N`).
		WithQuoteMode(QuoteAllNonNull).
		MustBuild()

	// POSTGRESQL_CSV: PostgreSQL's COPY ... CSV format — comma/quote, LF
	// records, null represented as an empty quoted field.
	POSTGRESQL_CSV = NewBuilder().
		WithRecordSeparator("\n").
		WithNullString(`""`).
		WithQuoteMode(QuoteAllNonNull).
		MustBuild()

	// ORACLE: SQL*Loader-friendly — comma/quote/backslash, system EOL,
	// \N for null, MINIMAL quoting, values trimmed.
	ORACLE = NewBuilder().
		WithEscapeChar('\\').
		WithRecordSeparator(systemLineSeparator).
		WithNullString(`\N`).
		WithQuoteMode(QuoteMinimal).
		WithTrim(true).
		MustBuild()

	// INFORMIX_UNLOAD: Informix's UNLOAD statement — pipe-delimited,
	// quote/backslash, LF records, blank lines dropped.
	INFORMIX_UNLOAD = NewBuilder().
		WithDelimiter("|").
		WithEscapeChar('\\').
		WithRecordSeparator("\n").
		WithIgnoreEmptyLines(true).
		MustBuild()

	// INFORMIX_UNLOAD_CSV: the comma-delimited sibling of INFORMIX_UNLOAD.
	INFORMIX_UNLOAD_CSV = NewBuilder().
		WithRecordSeparator("\n").
		WithIgnoreEmptyLines(true).
		MustBuild()

	// MONGODB_CSV: mongoexport's CSV format — comma/quote, the quote
	// character doubles as its own escape, CRLF, header is never skipped
	// since mongoexport's header is meant to be read back as data too in
	// some pipelines.
	MONGODB_CSV = NewBuilder().
		WithEscapeChar('"').
		WithIgnoreEmptyLines(true).
		WithQuoteMode(QuoteMinimal).
		WithSkipHeaderRecord(false).
		MustBuild()

	// MONGODB_TSV: the tab-delimited sibling of MONGODB_CSV.
	MONGODB_TSV = NewBuilder().
		WithDelimiter("\t").
		WithEscapeChar('"').
		WithIgnoreEmptyLines(true).
		WithQuoteMode(QuoteMinimal).
		MustBuild()
)

// Dialects lists every predefined dialect by name, in the order of spec
// §6.3's table; used by `csvfmt dialects` and by config.DialectFile lookups.
var Dialects = map[string]Format{
	"DEFAULT":              DEFAULT,
	"RFC4180":              RFC4180,
	"EXCEL":                EXCEL,
	"TDF":                  TDF,
	"MYSQL":                MYSQL,
	"POSTGRESQL_TEXT":      POSTGRESQL_TEXT,
	"POSTGRESQL_CSV":       POSTGRESQL_CSV,
	"ORACLE":               ORACLE,
	"INFORMIX_UNLOAD":      INFORMIX_UNLOAD,
	"INFORMIX_UNLOAD_CSV":  INFORMIX_UNLOAD_CSV,
	"MONGODB_CSV":          MONGODB_CSV,
	"MONGODB_TSV":          MONGODB_TSV,
}

// DialectNames returns the predefined dialect names in the canonical order
// of spec §6.3's table (map iteration order is unspecified in Go, so
// callers that need a stable listing — e.g. `csvfmt dialects` — should use
// this rather than ranging over Dialects directly).
func DialectNames() []string {
	return []string{
		"DEFAULT", "RFC4180", "EXCEL", "TDF", "MYSQL", "POSTGRESQL_TEXT",
		"POSTGRESQL_CSV", "ORACLE", "INFORMIX_UNLOAD", "INFORMIX_UNLOAD_CSV",
		"MONGODB_CSV", "MONGODB_TSV",
	}
}
