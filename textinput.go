package flechtwerk

import (
	"github.com/atotto/clipboard"
	"github.com/rivo/uniseg"
)

func textInputContentSize(s *State) (int, int) {
	return max(10, TextWidth(s.TextInput.Text.Get())+1), 1
}

// graphemes splits the text into grapheme clusters; the cursor position
// is an index into this slice.
func graphemes(text string) []string {
	out := make([]string, 0, len(text))
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

func renderTextInput(s *State) *PixelMap {
	in := s.TextInput
	fg, bg := effectiveColors(s)
	w := s.EffWidth
	if w <= 0 {
		w, _ = textInputContentSize(s)
	}
	m := NewPixelMap(w, 1, fg, bg)

	clusters := graphemes(in.Text.Get())
	cursor := min(max(0, in.CursorPos.Get()), len(clusters))

	// Keep the cursor inside the view window.
	if cursor < in.View {
		in.View = cursor
	}
	if cursor-in.View >= w {
		in.View = cursor - w + 1
	}
	selStart, selEnd := in.SelStart.Get(), in.SelEnd.Get()
	for x := 0; x < w; x++ {
		i := in.View + x
		if i >= len(clusters) {
			break
		}
		cellFg, cellBg := fg, bg
		if selEnd > selStart && i >= selStart && i < selEnd {
			cellFg, cellBg = s.SelectionFg.Get(), s.SelectionBg.Get()
		}
		m.Set(x, 0, Pixel{Glyph: clusters[i], Fg: cellFg, Bg: cellBg})
	}
	return m
}

// textInputCursor returns the cursor cell relative to the content area.
func textInputCursor(s *State) (int, int) {
	in := s.TextInput
	clusters := graphemes(in.Text.Get())
	cursor := min(max(0, in.CursorPos.Get()), len(clusters))
	return cursor - in.View, 0
}

// insertText inserts text at the cursor, honoring max_length.
func insertText(ui *UI, path string, s *State, text string) bool {
	in := s.TextInput
	clusters := graphemes(in.Text.Get())
	insert := graphemes(text)
	room := in.MaxLength.Get() - len(clusters)
	if room <= 0 {
		return true
	}
	if len(insert) > room {
		insert = insert[:room]
	}
	cursor := min(max(0, in.CursorPos.Get()), len(clusters))
	merged := make([]string, 0, len(clusters)+len(insert))
	merged = append(merged, clusters[:cursor]...)
	merged = append(merged, insert...)
	merged = append(merged, clusters[cursor:]...)
	joined := ""
	for _, c := range merged {
		joined += c
	}
	in.Text.Set(joined)
	in.CursorPos.Set(cursor + len(insert))
	ui.scheduler.UpdateWidget(path)
	ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnValueChange })
	return true
}

func handleTextInput(ui *UI, widget *Widget, s *State, ev Event) bool {
	in := s.TextInput
	path := widget.Path()
	update := func() {
		ui.scheduler.UpdateWidget(path)
		ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnValueChange })
	}
	switch ev := ev.(type) {
	case PasteEvent:
		return insertText(ui, path, s, ev.Text)
	case KeyEvent:
		clusters := graphemes(in.Text.Get())
		cursor := min(max(0, in.CursorPos.Get()), len(clusters))
		switch ev.Key {
		case KeyRune:
			return insertText(ui, path, s, string(ev.Rune))
		case KeyCtrlV:
			if text, err := clipboard.ReadAll(); err == nil && text != "" {
				return insertText(ui, path, s, text)
			}
			return true
		case KeyBackspace:
			if cursor > 0 {
				joined := ""
				for i, c := range clusters {
					if i != cursor-1 {
						joined += c
					}
				}
				in.Text.Set(joined)
				in.CursorPos.Set(cursor - 1)
				update()
			}
			return true
		case KeyDelete:
			if cursor < len(clusters) {
				joined := ""
				for i, c := range clusters {
					if i != cursor {
						joined += c
					}
				}
				in.Text.Set(joined)
				update()
			}
			return true
		case KeyLeft:
			in.CursorPos.Set(max(0, cursor-1))
			ui.scheduler.UpdateWidget(path)
			return true
		case KeyRight:
			in.CursorPos.Set(min(len(clusters), cursor+1))
			ui.scheduler.UpdateWidget(path)
			return true
		case KeyHome:
			in.CursorPos.Set(0)
			in.SelStart.Set(0)
			in.SelEnd.Set(0)
			ui.scheduler.UpdateWidget(path)
			return true
		case KeyEnd:
			in.CursorPos.Set(len(clusters))
			ui.scheduler.UpdateWidget(path)
			return true
		case KeyEnter:
			ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnKeyboardEnter })
			return true
		}
	}
	return false
}
