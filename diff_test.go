package flechtwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func frameOf(lines ...string) *PixelMap {
	h := len(lines)
	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(line)))
	}
	m := NewPixelMap(w, h, NamedColor("white"), NamedColor("black"))
	for y, line := range lines {
		m.Text(0, y, line, NamedColor("white"), NamedColor("black"))
	}
	return m
}

// Identical frames produce zero writes.
func TestDiffMinimality(t *testing.T) {
	a := frameOf("hello", "world")
	b := frameOf("hello", "world")
	assert.Empty(t, Diff(a, b))
}

func TestDiffSingleCell(t *testing.T) {
	a := frameOf("hello")
	b := frameOf("hxllo")
	writes := Diff(a, b)
	assert.Len(t, writes, 1)
	assert.Equal(t, 1, writes[0].X)
	assert.Equal(t, []string{"x"}, writes[0].Glyphs)
}

// Adjacent changed cells with one style batch into one write.
func TestDiffRunBatching(t *testing.T) {
	a := frameOf("     ")
	b := frameOf(" OK  ")
	writes := Diff(a, b)
	assert.Len(t, writes, 1)
	assert.Equal(t, []string{"O", "K"}, writes[0].Glyphs)
	assert.Equal(t, 1, writes[0].X)
	assert.Equal(t, 0, writes[0].Y)
}

func TestDiffRunBreaksOnStyleChange(t *testing.T) {
	a := frameOf("  ")
	b := frameOf("ab")
	b.Set(1, 0, Pixel{Glyph: "b", Fg: NamedColor("red"), Bg: NamedColor("black")})
	writes := Diff(a, b)
	assert.Len(t, writes, 2)
}

// A size change rewrites the whole frame, as does a nil previous frame.
func TestDiffFullRewrite(t *testing.T) {
	a := frameOf("ab")
	b := frameOf("abc")
	writes := Diff(a, b)
	total := 0
	for _, w := range writes {
		total += len(w.Glyphs)
	}
	assert.Equal(t, 3, total)

	writes = Diff(nil, b)
	total = 0
	for _, w := range writes {
		total += len(w.Glyphs)
	}
	assert.Equal(t, 3, total)
}

func TestFlushRetriesOnceOnWriteFailure(t *testing.T) {
	term := NewFakeTerminal(5, 1)
	frame := frameOf("hi")
	term.FailApply = 1
	err := Flush(term, Diff(nil, frame), frame)
	assert.NoError(t, err, "single failure retries with a full redraw")
	assert.Equal(t, "h", term.Glyph(0, 0))

	term.FailApply = 2
	err = Flush(term, Diff(nil, frame), frame)
	assert.ErrorIs(t, err, ErrWriteFailed, "second failure is fatal")
}
