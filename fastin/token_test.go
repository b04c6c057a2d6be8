package fastin

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Neumenon/fastin/source"
)

func TestByte(t *testing.T) {
	r := newTestReader(" a\tbc\n")

	for _, want := range []byte("abc") {
		c, err := r.Byte()
		require.NoError(t, err)
		require.Equal(t, want, c)
	}

	c, err := r.Byte()
	require.ErrorIs(t, err, io.EOF)
	require.Zero(t, c)
}

func TestToken_Words(t *testing.T) {
	for _, chunk := range []int{0, 1, 4} {
		r := NewSourceReader(source.NewChunked([]byte("  hello   world\r\n#!$\n"), chunk))

		tok, err := r.Token()
		require.NoError(t, err)
		require.Equal(t, "hello", string(tok))

		text, err := r.Text()
		require.NoError(t, err)
		require.Equal(t, "world", text)

		text, err = r.Text()
		require.NoError(t, err)
		require.Equal(t, "#!$", text)

		tok, err = r.Token()
		require.ErrorIs(t, err, io.EOF)
		require.Nil(t, tok)
	}
}

func TestToken_FreshCopy(t *testing.T) {
	input := []byte("abc def")
	r := NewSourceReader(source.NewChunked(input, 0))

	tok, err := r.Token()
	require.NoError(t, err)
	tok[0] = 'X'
	require.Equal(t, "abc def", string(input))
}

func TestAppendToken_ReusesBuffer(t *testing.T) {
	r := newTestReader(strings.Repeat("token ", 100))
	buf := make([]byte, 0, 16)

	allocs := testing.AllocsPerRun(50, func() {
		var err error
		buf, err = r.AppendToken(buf[:0])
		if err != nil {
			t.Fatal(err)
		}
	})
	require.Zero(t, allocs)
	require.Equal(t, "token", string(buf))
}

func TestAppendToken_SourceFailureLeavesDst(t *testing.T) {
	boom := io.ErrUnexpectedEOF
	r := NewSourceReader(source.NewChunked([]byte("abcdef"), 2).FailWith(boom))

	got, err := r.AppendToken([]byte("pre:"))
	require.ErrorIs(t, err, ErrSource)
	require.ErrorIs(t, err, boom)
	require.Equal(t, "pre:", string(got))
}

func TestMore(t *testing.T) {
	r := newTestReader("1 2 3 \n")
	sum := 0
	for r.More() {
		sum += r.Int()
	}
	require.Equal(t, 6, sum)
	require.True(t, r.EOF())
	require.NoError(t, r.Err())
}

func TestMixedTokens(t *testing.T) {
	r := newTestReader("Alice 30 1.75 y\n")

	name, err := r.Text()
	require.NoError(t, err)
	age := r.Uint8()
	height := r.Float32()
	flag, err := r.Byte()
	require.NoError(t, err)

	require.Equal(t, "Alice", name)
	require.Equal(t, uint8(30), age)
	require.Equal(t, float32(1.75), height)
	require.Equal(t, byte('y'), flag)
	require.NoError(t, r.Err())
}

func TestNewReader_UsesSourceDirectly(t *testing.T) {
	src := source.NewChunked([]byte("1 22 333"), 1)
	r := NewReader(src)

	xs, err := Slice[int](r, 3)
	require.NoError(t, err)
	require.Equal(t, []int{1, 22, 333}, xs)
	require.Zero(t, src.Remaining())
}

func TestNewReader_UsesInputBuffer(t *testing.T) {
	in, err := source.NewInput(strings.NewReader("4 5\n"))
	require.NoError(t, err)
	defer in.Close()

	r := NewReader(in, WithBufferSize(16))
	require.Same(t, in, r.src)

	xs, err := Slice[int](r, 2)
	require.NoError(t, err)
	require.Equal(t, []int{4, 5}, xs)
}
