// Package select.go implements the keyboard selection model: selectable
// widgets carry a selection_order integer; Tab moves to the next widget
// with a strictly greater order, wrapping to the smallest, Shift-Tab to
// the previous, wrapping to the largest. Disabled widgets are skipped and
// radio buttons of one group travel as a unit.

package flechtwerk

import "sort"

type selectable struct {
	widget *Widget
	order  int
	seq    int
}

// selectables collects the eligible widgets of the current scope in
// selection order; ties keep document order.
func (ui *UI) selectables() []selectable {
	out := make([]selectable, 0)
	seq := 0
	collect(ui.scope(), ui.states, func(w *Widget) {
		s := ui.states.Get(w.Path())
		if s == nil || !s.Selectable.Get() || s.Disabled.Get() {
			return
		}
		out = append(out, selectable{w, s.SelectionOrder.Get(), seq})
		seq++
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].order == out[j].order {
			return out[i].seq < out[j].seq
		}
		return out[i].order < out[j].order
	})
	return out
}

// collect traverses only the visible widgets of the scope.
func collect(widget *Widget, states *StateTree, fn func(*Widget)) {
	fn(widget)
	for _, child := range visibleChildren(widget, states.Get(widget.Path())) {
		collect(child, states, fn)
	}
}

// selectedWidget returns the currently selected widget, or nil.
func (ui *UI) selectedWidget() *Widget {
	if ui.selected == "" {
		return nil
	}
	return ui.scope().FindPath(ui.selected)
}

// Select makes the widget the selection target, firing on_deselect on the
// previous widget and on_select on the new one.
func (ui *UI) Select(widget *Widget) {
	path := ""
	if widget != nil {
		path = widget.Path()
	}
	if path == ui.selected {
		return
	}
	if ui.selected != "" {
		if s := ui.states.Get(ui.selected); s != nil {
			s.Selected.Set(false)
		}
		ui.invokeCallback(ui.selected, func(c *CallbackConfig) Callback { return c.OnDeselect })
		ui.scheduler.UpdateWidget(ui.selected)
	}
	ui.selected = path
	if path != "" {
		if s := ui.states.Get(path); s != nil {
			s.Selected.Set(true)
		}
		ui.invokeCallback(path, func(c *CallbackConfig) Callback { return c.OnSelect })
		ui.scheduler.UpdateWidget(path)
	}
}

// SelectNext moves the selection to the next eligible widget, wrapping
// to the first.
func (ui *UI) SelectNext() { ui.cycle(1) }

// SelectPrevious moves the selection to the previous eligible widget,
// wrapping to the last.
func (ui *UI) SelectPrevious() { ui.cycle(-1) }

func (ui *UI) cycle(direction int) {
	candidates := ui.selectables()
	if len(candidates) == 0 {
		return
	}
	current := -1
	for i, c := range candidates {
		if c.widget.Path() == ui.selected {
			current = i
			break
		}
	}
	group := ui.radioGroup(ui.selected)

	n := len(candidates)
	for step := 1; step <= n; step++ {
		i := (current + direction*step + n*step) % n
		candidate := candidates[i]
		// Radio buttons of the selected widget's group act as a unit:
		// keep moving until the group changes.
		if group != "" && ui.radioGroup(candidate.widget.Path()) == group {
			continue
		}
		ui.Select(candidate.widget)
		return
	}
}

// radioGroup returns the group of a radio button path, or "".
func (ui *UI) radioGroup(path string) string {
	if path == "" {
		return ""
	}
	s := ui.states.Get(path)
	if s == nil || s.RadioButton == nil {
		return ""
	}
	return s.RadioButton.Group.Get()
}

// selectFirst selects the first eligible widget of the scope, used when a
// modal opens or the previous selection disappeared.
func (ui *UI) selectFirst() {
	candidates := ui.selectables()
	if len(candidates) > 0 {
		ui.Select(candidates[0].widget)
	} else {
		ui.Select(nil)
	}
}
