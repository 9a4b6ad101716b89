package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	p := WriteFile(t, "x.bin", []byte{1, 2, 3})
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestPatternIsDeterministic(t *testing.T) {
	assert.Equal(t, Pattern(7, 64), Pattern(7, 64))
	assert.NotEqual(t, Pattern(7, 64), Pattern(8, 64))
	assert.Len(t, Pattern(1, 10), 10)
}

func TestBuilder(t *testing.T) {
	var b Builder
	b.U8(1).U16(0x0302).U32(0x07060504).CString("a").WString('b')
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 'a', 0, 'b', 0, 0, 0}, b.Bytes())

	var c Builder
	c.U64(1).Raw([]byte{9})
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 9}, c.Bytes())
}
