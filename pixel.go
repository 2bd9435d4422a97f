package flechtwerk

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Pixel is one styled terminal cell. Glyph is a full grapheme cluster, so
// combining characters stay together when maps are merged and diffed.
type Pixel struct {
	Glyph     string
	Fg, Bg    Color
	Underline bool
}

// EmptyPixel returns a blank cell in the given colors.
func EmptyPixel(fg, bg Color) Pixel {
	return Pixel{Glyph: " ", Fg: fg, Bg: bg}
}

// PixelMap is a column-major grid of pixels: the outer index is x, the
// inner index is y. Widgets produce one per frame as their rendered form
// and layouts merge child maps into their own.
type PixelMap struct {
	cells [][]Pixel
}

// NewPixelMap creates a w by h map filled with blank cells in the given
// colors.
func NewPixelMap(w, h int, fg, bg Color) *PixelMap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cells := make([][]Pixel, w)
	for x := range cells {
		cells[x] = make([]Pixel, h)
		for y := range cells[x] {
			cells[x][y] = EmptyPixel(fg, bg)
		}
	}
	return &PixelMap{cells: cells}
}

// Size returns the width and height of the map. A map with zero columns
// has height 0.
func (m *PixelMap) Size() (int, int) {
	if len(m.cells) == 0 {
		return 0, 0
	}
	return len(m.cells), len(m.cells[0])
}

// Get returns the pixel at (x, y). Out-of-range coordinates return a
// blank default pixel.
func (m *PixelMap) Get(x, y int) Pixel {
	if x < 0 || x >= len(m.cells) || y < 0 || y >= len(m.cells[x]) {
		return EmptyPixel(Color{}, Color{})
	}
	return m.cells[x][y]
}

// Set writes the pixel at (x, y). Writes outside the map are clipped.
func (m *PixelMap) Set(x, y int, p Pixel) {
	if x < 0 || x >= len(m.cells) || y < 0 || y >= len(m.cells[x]) {
		return
	}
	m.cells[x][y] = p
}

// Blit copies src onto the map with its top-left corner at (x, y),
// clipping at the map edges.
func (m *PixelMap) Blit(src *PixelMap, x, y int) {
	sw, sh := src.Size()
	for sx := 0; sx < sw; sx++ {
		for sy := 0; sy < sh; sy++ {
			m.Set(x+sx, y+sy, src.cells[sx][sy])
		}
	}
}

// Crop returns a copy of the w by h window of the map starting at (x, y).
// Areas outside the source are filled with blank cells.
func (m *PixelMap) Crop(x, y, w, h int) *PixelMap {
	out := NewPixelMap(w, h, Color{}, Color{})
	for ox := 0; ox < w; ox++ {
		for oy := 0; oy < h; oy++ {
			out.cells[ox][oy] = m.Get(x+ox, y+oy)
		}
	}
	return out
}

// Text writes a string into the map starting at (x, y), splitting it into
// grapheme clusters so wide or combining characters occupy single cells.
// Returns the number of cells written.
func (m *PixelMap) Text(x, y int, text string, fg, bg Color) int {
	n := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		m.Set(x+n, y, Pixel{Glyph: gr.Str(), Fg: fg, Bg: bg})
		n++
	}
	return n
}

// Equal reports whether two maps have identical size and cells.
func (m *PixelMap) Equal(other *PixelMap) bool {
	mw, mh := m.Size()
	ow, oh := other.Size()
	if mw != ow || mh != oh {
		return false
	}
	for x := 0; x < mw; x++ {
		for y := 0; y < mh; y++ {
			if m.cells[x][y] != other.cells[x][y] {
				return false
			}
		}
	}
	return true
}

// String renders the glyphs of the map as lines of text, for debugging
// and test assertions. Styles are not included.
func (m *PixelMap) String() string {
	w, h := m.Size()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sb.WriteString(m.cells[x][y].Glyph)
		}
		if y < h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// TextWidth returns the number of terminal cells the string occupies,
// counting grapheme clusters.
func TextWidth(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
