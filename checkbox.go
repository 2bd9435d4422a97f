package flechtwerk

func checkboxContentSize(_ *State) (int, int) {
	return 3, 1
}

func renderCheckbox(s *State) *PixelMap {
	fg, bg := effectiveColors(s)
	m := NewPixelMap(3, 1, fg, bg)
	glyph := " "
	if s.Checkbox.Active.Get() {
		glyph = "X"
	}
	m.Text(0, 0, "["+glyph+"]", fg, bg)
	return m
}

// toggleCheckbox flips the active state and fires on_value_change.
func toggleCheckbox(ui *UI, path string, s *State) bool {
	s.Checkbox.Active.Set(!s.Checkbox.Active.Get())
	ui.scheduler.UpdateWidget(path)
	ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnValueChange })
	return true
}

func handleCheckbox(ui *UI, widget *Widget, s *State, ev Event) bool {
	key, ok := ev.(KeyEvent)
	if !ok {
		return false
	}
	if key.Key == KeyEnter || (key.Key == KeyRune && key.Rune == ' ') {
		return toggleCheckbox(ui, widget.Path(), s)
	}
	return false
}
