package flechtwerk

// dropdownContentSize is the collapsed footprint: the widest option (or
// the current choice) plus the indicator. Dropped-down height grows by
// one row per visible option.
func dropdownContentSize(s *State) (int, int) {
	d := s.Dropdown
	width := TextWidth(d.Choice.Get())
	for _, option := range d.Options {
		width = max(width, TextWidth(option))
	}
	width += 2
	height := 1
	if d.DroppedDown.Get() {
		height += len(dropdownRows(s))
	}
	return width, height
}

// dropdownRows lists the selectable rows of the open dropdown: an empty
// entry first when allow_none is set, then the options.
func dropdownRows(s *State) []string {
	rows := make([]string, 0, len(s.Dropdown.Options)+1)
	if s.Dropdown.AllowNone.Get() {
		rows = append(rows, "")
	}
	return append(rows, s.Dropdown.Options...)
}

func renderDropdown(s *State) *PixelMap {
	d := s.Dropdown
	fg, bg := effectiveColors(s)
	w, h := dropdownContentSize(s)
	m := NewPixelMap(w, h, fg, bg)
	m.Text(0, 0, d.Choice.Get(), fg, bg)
	m.Text(w-1, 0, "▼", fg, bg)
	if d.DroppedDown.Get() {
		hovered := d.HoveredRow.Get()
		for i, row := range dropdownRows(s) {
			rowFg, rowBg := fg, bg
			if i == hovered {
				rowFg, rowBg = s.SelectionFg.Get(), s.SelectionBg.Get()
			}
			for x := 0; x < w; x++ {
				m.Set(x, i+1, EmptyPixel(rowFg, rowBg))
			}
			m.Text(0, i+1, row, rowFg, rowBg)
		}
	}
	return m
}

// chooseDropdown commits the hovered row as the new choice, collapses
// the dropdown and fires on_value_change.
func chooseDropdown(ui *UI, path string, s *State) {
	rows := dropdownRows(s)
	hovered := s.Dropdown.HoveredRow.Get()
	if hovered >= 0 && hovered < len(rows) {
		s.Dropdown.Choice.Set(rows[hovered])
	}
	s.Dropdown.DroppedDown.Set(false)
	ui.Relayout()
	ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnValueChange })
}

func handleDropdown(ui *UI, widget *Widget, s *State, ev Event) bool {
	d := s.Dropdown
	path := widget.Path()
	switch ev := ev.(type) {
	case KeyEvent:
		if !d.DroppedDown.Get() {
			if ev.Key == KeyEnter || (ev.Key == KeyRune && ev.Rune == ' ') {
				d.DroppedDown.Set(true)
				d.HoveredRow.Set(0)
				ui.Relayout()
				return true
			}
			return false
		}
		switch ev.Key {
		case KeyUp:
			d.HoveredRow.Set(max(0, d.HoveredRow.Get()-1))
			ui.scheduler.UpdateWidget(path)
			return true
		case KeyDown:
			d.HoveredRow.Set(min(len(dropdownRows(s))-1, d.HoveredRow.Get()+1))
			ui.scheduler.UpdateWidget(path)
			return true
		case KeyEnter:
			chooseDropdown(ui, path, s)
			return true
		case KeyEsc:
			d.DroppedDown.Set(false)
			ui.Relayout()
			return true
		}
	case MouseEvent:
		if ev.Kind != MousePress {
			if d.DroppedDown.Get() && ev.Kind == MouseMove {
				row := ev.Y - s.AbsY - 1
				if row >= 0 && row < len(dropdownRows(s)) {
					d.HoveredRow.Set(row)
					ui.scheduler.UpdateWidget(path)
				}
			}
			return false
		}
		if !d.DroppedDown.Get() {
			d.DroppedDown.Set(true)
			d.HoveredRow.Set(0)
			ui.Relayout()
			return true
		}
		row := ev.Y - s.AbsY - 1
		if row >= 0 && row < len(dropdownRows(s)) {
			d.HoveredRow.Set(row)
			chooseDropdown(ui, path, s)
		} else {
			d.DroppedDown.Set(false)
			ui.Relayout()
		}
		return true
	}
	return false
}
