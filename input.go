// Package input.go implements the input dispatcher: global shortcuts,
// modal-first routing, mouse hit-testing with hover tracking, and key
// delivery to the selected widget with fall-through to the enclosing
// layouts' key maps.

package flechtwerk

// dispatch routes one input event. The order follows the framework's
// contract: global shortcuts first, then the topmost modal, then mouse
// hit-testing or the selected widget. Events a modal does not consume are
// dropped; non-modal widgets are inert while a modal is open.
func (ui *UI) dispatch(ev Event) {
	switch ev := ev.(type) {
	case ResizeEvent:
		ui.resize(ev.Width, ev.Height)
		return
	case KeyEvent:
		switch ev.Key {
		case KeyEsc:
			if len(ui.modals) > 0 {
				if err := ui.DismissModal(); err == nil {
					return
				}
			}
		case KeyTab:
			ui.SelectNext()
			return
		case KeyBacktab:
			ui.SelectPrevious()
			return
		case KeyCtrlC:
			ui.Stop()
			return
		}
		ui.dispatchKey(ev)
	case MouseEvent:
		ui.dispatchMouse(ev)
	case PasteEvent:
		if widget := ui.selectedWidget(); widget != nil {
			s := ui.states.Get(widget.Path())
			if s != nil && !s.Disabled.Get() {
				handleWidget(ui, widget, s, ev)
			}
		}
	}
}

// scope returns the widget subtree events are restricted to: the topmost
// modal if one is open, the root otherwise.
func (ui *UI) scope() *Widget {
	if len(ui.modals) > 0 {
		return ui.modals[len(ui.modals)-1]
	}
	return ui.root
}

// dispatchKey offers the event to the selected widget; unconsumed events
// fall through the ancestor chain's key maps.
func (ui *UI) dispatchKey(ev KeyEvent) {
	widget := ui.selectedWidget()
	if widget != nil {
		s := ui.states.Get(widget.Path())
		if s != nil && !s.Disabled.Get() && handleWidget(ui, widget, s, ev) {
			return
		}
	}

	// Fall through to the key maps of the widget and its layouts.
	for current := widget; current != nil; current = current.Parent() {
		config := ui.callbackFor(current.Path())
		if config == nil || config.Keymap == nil {
			continue
		}
		if fn, ok := config.Keymap[ev.Key]; ok {
			consumed := runProtected(current.Path(), func() bool {
				return fn(ui.context(current.Path(), -1, -1), ev)
			})
			if consumed {
				return
			}
		}
	}
}

// dispatchMouse hit-tests the deepest widget under the pointer, tracks
// hover transitions and routes presses.
func (ui *UI) dispatchMouse(ev MouseEvent) {
	target := hitTest(ui.scope(), ui.states, ev.X, ev.Y)

	// Hover transitions.
	targetPath := ""
	if target != nil {
		targetPath = target.Path()
	}
	if targetPath != ui.hovered {
		if ui.hovered != "" {
			ui.invokeCallbackAt(ui.hovered, ev.X, ev.Y,
				func(c *CallbackConfig) Callback { return c.OnHoverExit })
			ui.scheduler.UpdateWidget(ui.hovered)
		}
		ui.hovered = targetPath
		if targetPath != "" {
			ui.invokeCallbackAt(targetPath, ev.X, ev.Y,
				func(c *CallbackConfig) Callback { return c.OnHover })
			ui.scheduler.UpdateWidget(targetPath)
		}
	}
	if target == nil {
		return
	}
	s := ui.states.Get(target.Path())
	if s == nil || s.Disabled.Get() {
		return
	}

	switch ev.Kind {
	case MousePress:
		if s.Selectable.Get() {
			ui.Select(target)
		}
		consumed := handleWidget(ui, target, s, ev)
		if target.Kind() != KindButton {
			ui.invokeCallbackAt(target.Path(), ev.X, ev.Y,
				func(c *CallbackConfig) Callback { return c.OnPress })
		} else if !consumed {
			pressButton(ui, target.Path(), s)
		}
	case MouseWheelUp, MouseWheelDown:
		if handleWidget(ui, target, s, ev) {
			return
		}
		ui.scrollAncestors(target, ev)
	default:
		handleWidget(ui, target, s, ev)
	}
}

// scrollAncestors sends a wheel event to the nearest scroll-enabled
// layout above the target.
func (ui *UI) scrollAncestors(target *Widget, ev MouseEvent) {
	for current := target; current != nil; current = current.Parent() {
		s := ui.states.Get(current.Path())
		if s == nil || s.Layout == nil {
			continue
		}
		if s.Layout.ScrollYEnabled.Get() {
			delta := 1
			if ev.Kind == MouseWheelUp {
				delta = -1
			}
			s.Layout.ScrollY.Set(s.Layout.ScrollY.Get() + delta)
			ui.Relayout()
			return
		}
	}
}

// hitTest returns the deepest visible widget whose absolute rectangle
// contains the point.
func hitTest(widget *Widget, states *StateTree, x, y int) *Widget {
	s := states.Get(widget.Path())
	if s == nil {
		return nil
	}
	if x < s.AbsX || y < s.AbsY || x >= s.AbsX+s.Width.Get() || y >= s.AbsY+s.Height.Get() {
		return nil
	}
	for _, child := range visibleChildren(widget, s) {
		if found := hitTest(child, states, x, y); found != nil {
			return found
		}
	}
	return widget
}

// handleWidget dispatches an event to the kind-specific handler of the
// widget.
func handleWidget(ui *UI, widget *Widget, s *State, ev Event) bool {
	switch widget.Kind() {
	case KindButton:
		if _, ok := ev.(KeyEvent); ok {
			return handleButton(ui, widget, s, ev)
		}
		return false
	case KindCheckbox:
		if m, ok := ev.(MouseEvent); ok {
			if m.Kind == MousePress {
				return toggleCheckbox(ui, widget.Path(), s)
			}
			return false
		}
		return handleCheckbox(ui, widget, s, ev)
	case KindRadioButton:
		if m, ok := ev.(MouseEvent); ok {
			if m.Kind == MousePress {
				return activateRadio(ui, widget.Path(), s)
			}
			return false
		}
		return handleRadio(ui, widget, s, ev)
	case KindDropdown:
		return handleDropdown(ui, widget, s, ev)
	case KindSlider:
		return handleSlider(ui, widget, s, ev)
	case KindTextInput:
		return handleTextInput(ui, widget, s, ev)
	case KindLayout:
		return handleLayoutKeys(ui, widget, s, ev)
	}
	return false
}

// handleLayoutKeys lets screen and tab layouts switch pages with the
// page keys when one of their descendants is selected.
func handleLayoutKeys(ui *UI, widget *Widget, s *State, ev Event) bool {
	key, ok := ev.(KeyEvent)
	if !ok || s.Layout == nil || s.Layout.Mode.Get() != ModeTab {
		return false
	}
	children := widget.Children()
	if len(children) == 0 {
		return false
	}
	current := 0
	if active := activeTab(widget, s); active != nil {
		for i, child := range children {
			if child == active {
				current = i
			}
		}
	}
	switch key.Key {
	case KeyPgDn:
		s.Layout.ActiveTab.Set(children[(current+1)%len(children)].ID())
	case KeyPgUp:
		s.Layout.ActiveTab.Set(children[(current+len(children)-1)%len(children)].ID())
	default:
		return false
	}
	ui.Relayout()
	return true
}
