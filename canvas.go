package flechtwerk

func canvasContentSize(s *State) (int, int) {
	width := 0
	for _, line := range s.Canvas.Lines {
		width = max(width, TextWidth(line))
	}
	return width, len(s.Canvas.Lines)
}

func renderCanvas(s *State) *PixelMap {
	fg, bg := effectiveColors(s)
	w, h := canvasContentSize(s)
	m := NewPixelMap(w, h, fg, bg)
	for y, line := range s.Canvas.Lines {
		m.Text(0, y, line, fg, bg)
	}
	return m
}
