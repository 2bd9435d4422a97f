package flechtwerk

// Diff compares two frames cell by cell and returns the minimal write
// runs that transform prev into next. Adjacent changed cells on a row
// sharing one style batch into a single write. A nil previous frame or a
// size change rewrites the whole frame.
func Diff(prev, next *PixelMap) []Write {
	w, h := next.Size()
	full := prev == nil
	if !full {
		pw, ph := prev.Size()
		full = pw != w || ph != h
	}

	writes := make([]Write, 0)
	for y := 0; y < h; y++ {
		inRun := false
		for x := 0; x < w; x++ {
			p := next.Get(x, y)
			if !full && prev.Get(x, y) == p {
				inRun = false
				continue
			}
			if inRun && sameStyle(writes[len(writes)-1], p) {
				writes[len(writes)-1].Glyphs = append(writes[len(writes)-1].Glyphs, p.Glyph)
				continue
			}
			writes = append(writes, Write{
				X: x, Y: y,
				Glyphs:    []string{p.Glyph},
				Fg:        p.Fg,
				Bg:        p.Bg,
				Underline: p.Underline,
			})
			inRun = true
		}
	}
	return writes
}

func sameStyle(w Write, p Pixel) bool {
	return w.Fg == p.Fg && w.Bg == p.Bg && w.Underline == p.Underline
}

// Flush applies the writes to the terminal, saving and restoring the
// cursor around the batch. A failed write is retried once with a full
// redraw; a second failure is fatal and returned to the caller.
func Flush(term Terminal, writes []Write, frame *PixelMap) error {
	term.HideCursor()
	for _, w := range writes {
		if err := term.Apply(w); err != nil {
			logger.Add("flush", "warn", "terminal write failed, retrying with full redraw")
			return retryFlush(term, frame)
		}
	}
	return term.Show()
}

func retryFlush(term Terminal, frame *PixelMap) error {
	term.Clear()
	for _, w := range Diff(nil, frame) {
		if err := term.Apply(w); err != nil {
			return err
		}
	}
	return term.Show()
}
