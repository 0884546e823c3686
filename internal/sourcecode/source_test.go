package sourcecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetConversions(t *testing.T) {
	f := NewFile("test.py", "ab\ncd\nef\n")

	t.Run("offset of a position", func(t *testing.T) {
		assert.EqualValues(t, 0, f.OffsetOf(1, 0))
		assert.EqualValues(t, 1, f.OffsetOf(1, 1))
		assert.EqualValues(t, 3, f.OffsetOf(2, 0))
		assert.EqualValues(t, 7, f.OffsetOf(3, 1))
	})

	t.Run("position of an offset", func(t *testing.T) {
		line, col := f.LineColumnOf(0)
		assert.EqualValues(t, 1, line)
		assert.EqualValues(t, 0, col)

		line, col = f.LineColumnOf(4)
		assert.EqualValues(t, 2, line)
		assert.EqualValues(t, 1, col)
	})

	t.Run("round trip", func(t *testing.T) {
		for _, offset := range []int32{0, 1, 2, 3, 4, 5, 6, 7} {
			line, col := f.LineColumnOf(offset)
			assert.Equal(t, offset, f.OffsetOf(line, col))
		}
	})

	t.Run("multi byte runes count as one column", func(t *testing.T) {
		g := NewFile("test.py", "é = 1\n")
		line, col := g.LineColumnOf(2)
		assert.EqualValues(t, 1, line)
		assert.EqualValues(t, 2, col)
	})
}

func TestLineCut(t *testing.T) {
	f := NewFile("test.py", "ab\ncd\nef\n")

	before, after := f.LineCut(4)
	assert.Equal(t, "c", before)
	assert.Equal(t, "d", after)

	before, after = f.LineCut(0)
	assert.Equal(t, "", before)
	assert.Equal(t, "ab", after)

	//an offset past the end clamps to the last line
	before, after = f.LineCut(100)
	assert.Equal(t, "", before)
	assert.Equal(t, "", after)
}

func TestPositionRangeString(t *testing.T) {
	r := PositionRange{SourceName: "test.py", StartLine: 3, StartColumn: 4, EndLine: 3, EndColumn: 9}
	assert.Equal(t, "test.py:3:4", r.String())
}
