package flechtwerk

// Slider invariants: value stays in [min, max], value-min is a multiple
// of step, and min < max with both on the step grid. Violations coming
// from declarative files or setters are normalized on the next access.

func sliderContentSize(_ *State) (int, int) {
	return 20, 1
}

func renderSlider(s *State) *PixelMap {
	sl := s.Slider
	fg, bg := effectiveColors(s)
	w, _ := sliderContentSize(s)
	if s.EffWidth > 0 {
		w = s.EffWidth
	}
	m := NewPixelMap(w, 1, fg, bg)
	for x := 0; x < w; x++ {
		m.Set(x, 0, Pixel{Glyph: "─", Fg: fg, Bg: bg})
	}
	lo, hi := sl.Min.Get(), sl.Max.Get()
	if hi > lo {
		knob := (w - 1) * (sl.Value.Get() - lo) / (hi - lo)
		m.Set(knob, 0, Pixel{Glyph: "█", Fg: fg, Bg: bg})
	}
	return m
}

// adjustSlider moves the value by the given number of steps, clamping at
// the bounds, and fires on_value_change when the value moved.
func adjustSlider(ui *UI, path string, s *State, steps int) bool {
	sl := s.Slider
	value := sl.Value.Get() + steps*sl.Step.Get()
	value = min(max(value, sl.Min.Get()), sl.Max.Get())
	if value == sl.Value.Get() {
		return true
	}
	sl.Value.Set(value)
	ui.scheduler.UpdateWidget(path)
	ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnValueChange })
	return true
}

func handleSlider(ui *UI, widget *Widget, s *State, ev Event) bool {
	switch ev := ev.(type) {
	case KeyEvent:
		switch ev.Key {
		case KeyLeft:
			return adjustSlider(ui, widget.Path(), s, -1)
		case KeyRight:
			return adjustSlider(ui, widget.Path(), s, 1)
		case KeyHome:
			s.Slider.Value.Set(s.Slider.Min.Get())
			ui.scheduler.UpdateWidget(widget.Path())
			return true
		case KeyEnd:
			s.Slider.Value.Set(s.Slider.Max.Get())
			ui.scheduler.UpdateWidget(widget.Path())
			return true
		}
	case MouseEvent:
		switch ev.Kind {
		case MouseWheelUp:
			return adjustSlider(ui, widget.Path(), s, 1)
		case MouseWheelDown:
			return adjustSlider(ui, widget.Path(), s, -1)
		case MousePress:
			w := max(1, s.EffWidth-1)
			lo, hi := s.Slider.Min.Get(), s.Slider.Max.Get()
			rel := min(max(0, ev.X-s.AbsX), w)
			raw := lo + rel*(hi-lo)/w
			step := max(1, s.Slider.Step.Get())
			snapped := lo + (raw-lo+step/2)/step*step
			return adjustSlider(ui, widget.Path(), s, (snapped-s.Slider.Value.Get())/step)
		}
	}
	return false
}
