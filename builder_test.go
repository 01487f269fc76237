package dialectcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	f, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, ",", f.Delimiter())
	q, hasQuote := f.QuoteChar()
	assert.True(t, hasQuote)
	assert.Equal(t, '"', q)
	sep, hasSep := f.RecordSeparator()
	assert.True(t, hasSep)
	assert.Equal(t, "\r\n", sep)
	assert.Equal(t, QuoteMinimal, f.QuoteMode())
}

func TestBuilderRejectsEmptyDelimiter(t *testing.T) {
	_, err := NewBuilder().WithDelimiter("").Build()
	require.Error(t, err)
	var csvErr Error
	require.ErrorAs(t, err, &csvErr)
	assert.Equal(t, ConfigError, csvErr.Kind)
}

func TestBuilderRejectsLineBreakDelimiter(t *testing.T) {
	_, err := NewBuilder().WithDelimiter("\n").Build()
	require.Error(t, err)
}

func TestBuilderRejectsCollidingSpecialChars(t *testing.T) {
	test := func(name string, build func(*Builder) *Builder) func(*testing.T) {
		return func(t *testing.T) {
			_, err := build(NewBuilder()).Build()
			require.Error(t, err)
		}
	}

	t.Run("escape==comment", test("", func(b *Builder) *Builder {
		return b.WithEscapeChar('#').WithCommentMarker('#')
	}))
	t.Run("quote==comment", test("", func(b *Builder) *Builder {
		return b.WithQuoteChar('#').WithCommentMarker('#')
	}))
	t.Run("delimiter==quote", test("", func(b *Builder) *Builder {
		return b.WithDelimiter(`"`)
	}))
}

func TestBuilderQuoteNoneRequiresEscape(t *testing.T) {
	_, err := NewBuilder().WithQuoteMode(QuoteNone).Build()
	require.Error(t, err)

	f, err := NewBuilder().WithQuoteMode(QuoteNone).WithEscapeChar('\\').Build()
	require.NoError(t, err)
	assert.Equal(t, QuoteNone, f.QuoteMode())
}

func TestBuilderDuplicateHeaderValidation(t *testing.T) {
	_, err := NewBuilder().
		WithHeader(HeaderNames("a", "b", "a")).
		WithDuplicateHeaderMode(DisallowDuplicates).
		Build()
	require.Error(t, err)

	_, err = NewBuilder().
		WithHeader(HeaderNames("a", "b", "a")).
		WithDuplicateHeaderMode(AllowAllDuplicates).
		Build()
	require.NoError(t, err)

	_, err = NewBuilder().
		WithHeader(HeaderNames("a", "", "")).
		WithDuplicateHeaderMode(AllowEmptyDuplicates).
		Build()
	require.NoError(t, err)

	_, err = NewBuilder().
		WithHeader(HeaderNames("a", "a", "")).
		WithDuplicateHeaderMode(AllowEmptyDuplicates).
		Build()
	require.Error(t, err)
}

func TestFormatEqual(t *testing.T) {
	a, err := NewBuilder().WithHeaderComments("x", "y").Build()
	require.NoError(t, err)
	b, err := NewBuilder().WithHeaderComments("x", "y").Build()
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := NewBuilder().WithHeaderComments("x", "z").Build()
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestFormatBuilderRoundTrip(t *testing.T) {
	base := RFC4180
	derived, err := base.Builder().WithNullString("NULL").Build()
	require.NoError(t, err)
	n, ok := derived.NullString()
	assert.True(t, ok)
	assert.Equal(t, "NULL", n)
	assert.Equal(t, base.Delimiter(), derived.Delimiter())
}
