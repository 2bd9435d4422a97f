package flechtwerk

import (
	"strings"

	"github.com/mbndr/figlet4go"
)

// labelLines returns the lines a label displays. Banner labels render
// their text through figlet into large ASCII-art glyphs.
func labelLines(s *State) []string {
	text := s.Label.Text.Get()
	if s.Label.Banner.Get() {
		renderer := figlet4go.NewAsciiRender()
		if banner, err := renderer.Render(text); err == nil {
			return strings.Split(strings.TrimRight(banner, "\n"), "\n")
		}
	}
	return strings.Split(text, "\n")
}

func labelContentSize(s *State) (int, int) {
	lines := labelLines(s)
	width := 0
	for _, line := range lines {
		width = max(width, TextWidth(line))
	}
	return width, len(lines)
}

func renderLabel(s *State) *PixelMap {
	lines := labelLines(s)
	w, h := labelContentSize(s)
	fg, bg := effectiveColors(s)
	m := NewPixelMap(w, h, fg, bg)
	for y, line := range lines {
		m.Text(0, y, line, fg, bg)
	}
	return m
}
