package flechtwerk

func radioContentSize(_ *State) (int, int) {
	return 3, 1
}

func renderRadio(s *State) *PixelMap {
	fg, bg := effectiveColors(s)
	m := NewPixelMap(3, 1, fg, bg)
	glyph := " "
	if s.RadioButton.Active.Get() {
		glyph = "*"
	}
	m.Text(0, 0, "("+glyph+")", fg, bg)
	return m
}

// activateRadio makes this button the active member of its group: every
// other member is deactivated in the same frame, so at most one member
// of a group is ever active. Activating an already active button is a
// no-op and fires no callbacks.
func activateRadio(ui *UI, path string, s *State) bool {
	if s.RadioButton.Active.Get() {
		return true
	}
	group := s.RadioButton.Group.Get()
	for _, other := range ui.states.Paths() {
		os := ui.states.Get(other)
		if os == nil || os.RadioButton == nil || other == path {
			continue
		}
		if os.RadioButton.Group.Get() == group && os.RadioButton.Active.Get() {
			os.RadioButton.Active.Set(false)
			ui.scheduler.UpdateWidget(other)
			ui.invokeCallback(other, func(c *CallbackConfig) Callback { return c.OnValueChange })
		}
	}
	s.RadioButton.Active.Set(true)
	ui.scheduler.UpdateWidget(path)
	ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnValueChange })
	return true
}

func handleRadio(ui *UI, widget *Widget, s *State, ev Event) bool {
	key, ok := ev.(KeyEvent)
	if !ok {
		return false
	}
	if key.Key == KeyEnter || (key.Key == KeyRune && key.Rune == ' ') {
		return activateRadio(ui, widget.Path(), s)
	}
	return false
}
