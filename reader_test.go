package dialectcsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharReaderReadAndPeek(t *testing.T) {
	r := newCharReader(strings.NewReader("ab"))

	assert.Equal(t, 'a', r.peek())
	assert.Equal(t, 'b', r.peekAt(1))
	assert.Equal(t, EOF, r.peekAt(2))

	assert.Equal(t, 'a', r.read())
	assert.Equal(t, 'a', r.getLastChar())
	assert.Equal(t, 'b', r.read())
	assert.Equal(t, EOF, r.read())
	assert.Equal(t, EOF, r.getLastChar())
}

func TestCharReaderLineCountingCRLF(t *testing.T) {
	r := newCharReader(strings.NewReader("a\r\nb\nc\rd"))

	assert.Equal(t, 1, r.getLineNumber())
	r.read() // a
	assert.Equal(t, 1, r.getLineNumber())
	r.read() // CR
	assert.Equal(t, 1, r.getLineNumber())
	r.read() // LF, part of the same CRLF terminator, must not bump again
	assert.Equal(t, 1, r.getLineNumber())
	r.read() // b
	assert.Equal(t, 2, r.getLineNumber())
	r.read() // LF
	assert.Equal(t, 2, r.getLineNumber())
	r.read() // c
	assert.Equal(t, 3, r.getLineNumber())
	r.read() // CR
	assert.Equal(t, 3, r.getLineNumber())
	r.read() // d
	assert.Equal(t, 4, r.getLineNumber())
}

func TestCharReaderMarkReset(t *testing.T) {
	r := newCharReader(strings.NewReader("abcdef"))

	assert.Equal(t, 'a', r.read())
	r.mark(10)
	assert.Equal(t, 'b', r.read())
	assert.Equal(t, 'c', r.read())
	require.NoError(t, r.reset())
	assert.Equal(t, 'b', r.read())
	r.unmark()
	assert.Equal(t, 'c', r.read())
}

func TestCharReaderResetWithoutMarkIsUsageError(t *testing.T) {
	r := newCharReader(strings.NewReader("abc"))
	err := r.reset()
	require.Error(t, err)
	var csvErr Error
	require.ErrorAs(t, err, &csvErr)
	assert.Equal(t, UsageError, csvErr.Kind)
}

func TestCharReaderGetPositionTracksRunesConsumed(t *testing.T) {
	r := newCharReader(strings.NewReader("xyz"))
	assert.Equal(t, int64(0), r.getPosition())
	r.read()
	assert.Equal(t, int64(1), r.getPosition())
	r.read()
	r.read()
	assert.Equal(t, int64(3), r.getPosition())
}

func TestCharReaderReadLine(t *testing.T) {
	r := newCharReader(strings.NewReader("first\r\nsecond\nthird"))

	line, ok := r.readLine()
	assert.True(t, ok)
	assert.Equal(t, "first", line)

	line, ok = r.readLine()
	assert.True(t, ok)
	assert.Equal(t, "second", line)

	line, ok = r.readLine()
	assert.True(t, ok)
	assert.Equal(t, "third", line)

	_, ok = r.readLine()
	assert.False(t, ok)
}

func TestCharReaderReadBulk(t *testing.T) {
	r := newCharReader(strings.NewReader("hello"))
	buf := make([]rune, 3)
	n, err := r.readBulk(buf, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "hel", string(buf))

	buf2 := make([]rune, 10)
	n, err = r.readBulk(buf2, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "lo", string(buf2[:n]))

	n, err = r.readBulk(buf2, 0, 1)
	require.Error(t, err)
	assert.Equal(t, 0, n)
}
