package flechtwerk

import "time"

// flashDuration is how long a pressed button shows the flash colors.
const flashDuration = 150 * time.Millisecond

func buttonContentSize(s *State) (int, int) {
	return TextWidth(s.Button.Text.Get()) + 2, 1
}

func renderButton(s *State) *PixelMap {
	fg, bg := effectiveColors(s)
	w, _ := buttonContentSize(s)
	m := NewPixelMap(w, 1, fg, bg)
	m.Text(1, 0, s.Button.Text.Get(), fg, bg)
	return m
}

// pressButton runs the press feedback and the on_press callback: the
// button flashes for a short moment, then reverts.
func pressButton(ui *UI, path string, s *State) bool {
	s.Button.Flashing.Set(true)
	ui.scheduler.ScheduleOnce(path, func(ctx *Context) bool {
		if state := ctx.States.Get(ctx.Path); state != nil && state.Button != nil {
			state.Button.Flashing.Set(false)
			ctx.Scheduler.UpdateWidget(ctx.Path)
		}
		return false
	}, flashDuration)
	ui.scheduler.UpdateWidget(path)
	ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnPress })
	return true
}

// handleButton processes key events for a selected button.
func handleButton(ui *UI, widget *Widget, s *State, ev Event) bool {
	key, ok := ev.(KeyEvent)
	if !ok {
		return false
	}
	if key.Key == KeyEnter || (key.Key == KeyRune && key.Rune == ' ') {
		return pressButton(ui, widget.Path(), s)
	}
	return false
}
