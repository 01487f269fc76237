package dialectcsv

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterQuoteAllQuotesEverythingIncludingNull(t *testing.T) {
	f, err := DEFAULT.Builder().WithQuoteMode(QuoteAll).WithNullString("NULL").Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("a"), Null(), Text("")))
	require.NoError(t, p.Close())

	assert.Equal(t, "\"a\",\"NULL\",\"\"\r\n", buf.String())
}

func TestPrinterQuoteAllNonNullLeavesNullBare(t *testing.T) {
	f, err := DEFAULT.Builder().WithQuoteMode(QuoteAllNonNull).WithNullString("NULL").Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("a"), Null()))
	require.NoError(t, p.Close())

	assert.Equal(t, "\"a\",NULL\r\n", buf.String())
}

func TestPrinterQuoteNonNumericQuotesOnlyNonNumbers(t *testing.T) {
	f, err := DEFAULT.Builder().WithQuoteMode(QuoteNonNumeric).Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("a"), Number("42")))
	require.NoError(t, p.Close())

	assert.Equal(t, "\"a\",42\r\n", buf.String())
}

func TestPrinterQuoteNoneEscapesInstead(t *testing.T) {
	f, err := NewBuilder().
		WithQuoteMode(QuoteNone).
		WithEscapeChar('\\').
		Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("a,b"), Text(`c\d`)))
	require.NoError(t, p.Close())

	assert.Equal(t, "a\\,b,c\\\\d\r\n", buf.String())
}

func TestPrinterQuoteMinimalQuotesOnlyWhenNeeded(t *testing.T) {
	var buf strings.Builder
	p, err := NewPrinter(&buf, RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("plain"), Text("has,comma"), Text(`has"quote`), Text("")))
	require.NoError(t, p.Close())

	assert.Equal(t, "plain,\"has,comma\",\"has\"\"quote\",\r\n", buf.String())
}

func TestPrinterQuoteDoublingInvariant(t *testing.T) {
	var buf strings.Builder
	p, err := NewPrinter(&buf, RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text(`a"b"c`)))
	require.NoError(t, p.Close())

	assert.Equal(t, "\"a\"\"b\"\"c\"\r\n", buf.String())
}

func TestPrinterCharStreamStreamsWithoutBuffering(t *testing.T) {
	var buf strings.Builder
	p, err := NewPrinter(&buf, RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(CharStream(strings.NewReader(`has,"quote`))))
	require.NoError(t, p.Close())

	assert.Equal(t, "\"has,\"\"quote\"\r\n", buf.String())
}

func TestPrinterByteStreamBase64Encodes(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	var buf strings.Builder
	p, err := NewPrinter(&buf, RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(ByteStream(strings.NewReader(string(payload)))))
	require.NoError(t, p.Close())

	want := `"` + base64.StdEncoding.EncodeToString(payload) + `"` + "\r\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinterTrailingDelimiter(t *testing.T) {
	f, err := RFC4180.Builder().WithTrailingDelimiter(true).Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("a"), Text("b")))
	require.NoError(t, p.Close())

	assert.Equal(t, "a,b,\r\n", buf.String())
}

func TestPrinterExplicitHeaderWrittenOnConstruction(t *testing.T) {
	f, err := RFC4180.Builder().WithHeader(HeaderNames("id", "name")).Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("1"), Text("alice")))
	require.NoError(t, p.Close())

	assert.Equal(t, "id,name\r\n1,alice\r\n", buf.String())
}

func TestPrinterSkipHeaderRecordSuppressesHeaderRow(t *testing.T) {
	f, err := RFC4180.Builder().WithHeader(HeaderNames("id", "name")).WithSkipHeaderRecord(true).Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("1"), Text("alice")))
	require.NoError(t, p.Close())

	assert.Equal(t, "1,alice\r\n", buf.String())
}

func TestPrinterHeaderCommentsPrefixedByMarker(t *testing.T) {
	f, err := RFC4180.Builder().
		WithCommentMarker('#').
		WithHeaderComments("generated by tests").
		Build()
	require.NoError(t, err)

	var buf strings.Builder
	p, err := NewPrinter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("a")))
	require.NoError(t, p.Close())

	assert.Equal(t, "# generated by tests\r\na\r\n", buf.String())
}

func TestPrinterClosedRejectsFurtherWrites(t *testing.T) {
	var buf strings.Builder
	p, err := NewPrinter(&buf, RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.Close())

	err = p.PrintRecord(Text("a"))
	require.Error(t, err)
	var csvErr Error
	require.ErrorAs(t, err, &csvErr)
	assert.Equal(t, UsageError, csvErr.Kind)
}

func TestPrinterRecordCount(t *testing.T) {
	var buf strings.Builder
	p, err := NewPrinter(&buf, RFC4180)
	require.NoError(t, err)
	require.NoError(t, p.PrintRecord(Text("a")))
	require.NoError(t, p.PrintRecord(Text("b")))
	assert.Equal(t, int64(2), p.RecordCount())
	require.NoError(t, p.Close())
}
