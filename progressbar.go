package flechtwerk

func progressBarContentSize(_ *State) (int, int) {
	return 20, 1
}

func renderProgressBar(s *State) *PixelMap {
	p := s.ProgressBar
	fg, bg := effectiveColors(s)
	w, _ := progressBarContentSize(s)
	if s.EffWidth > 0 {
		w = s.EffWidth
	}
	m := NewPixelMap(w, 1, fg, bg)
	limit := max(1, p.Max.Get())
	value := min(max(0, p.Value.Get()), limit)
	filled := w * value / limit
	for x := 0; x < w; x++ {
		glyph := "░"
		if x < filled {
			glyph = "█"
		}
		m.Set(x, 0, Pixel{Glyph: glyph, Fg: fg, Bg: bg})
	}
	return m
}
