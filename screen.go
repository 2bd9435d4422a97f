package flechtwerk

// layoutScreen treats children as alternative full-size pages: exactly
// one, the active screen, is composed and receives input. Inactive pages
// keep their previous geometry but are skipped by rendering and
// hit-testing.
func layoutScreen(widget *Widget, s *State, states *StateTree, availW, availH int) {
	active := activeScreen(widget, s)
	if active == nil {
		return
	}
	cs := states.Get(active.Path())
	if cs == nil {
		return
	}
	cs.Width.Set(availW)
	cs.Height.Set(availH)
	computeEffective(cs, availW, availH)
	cs.X.Set(0)
	cs.Y.Set(0)
	contentExtents(widget, s, states)
}

// activeScreen resolves the active_screen id, defaulting to the first
// child.
func activeScreen(widget *Widget, s *State) *Widget {
	children := widget.Children()
	if len(children) == 0 {
		return nil
	}
	want := s.Layout.ActiveScreen.Get()
	for _, child := range children {
		if child.ID() == want {
			return child
		}
	}
	return children[0]
}

// layoutTab is the screen mode with an implicit one-line tab header
// strip: one button per child across the top, the active page below.
func layoutTab(widget *Widget, s *State, states *StateTree, availW, availH int) {
	active := activeTab(widget, s)
	if active == nil {
		return
	}
	pageH := max(0, availH-1)
	cs := states.Get(active.Path())
	if cs == nil {
		return
	}
	cs.Width.Set(availW)
	cs.Height.Set(pageH)
	computeEffective(cs, availW, pageH)
	cs.X.Set(0)
	cs.Y.Set(1)
	contentExtents(widget, s, states)
}

// activeTab resolves the active_tab id, defaulting to the first child.
func activeTab(widget *Widget, s *State) *Widget {
	children := widget.Children()
	if len(children) == 0 {
		return nil
	}
	want := s.Layout.ActiveTab.Get()
	for _, child := range children {
		if child.ID() == want {
			return child
		}
	}
	return children[0]
}

// visibleChildren returns the children rendering and input should see:
// all of them for most modes, only the active page for screen and tab
// layouts.
func visibleChildren(widget *Widget, s *State) []*Widget {
	if s == nil || s.Layout == nil {
		return widget.Children()
	}
	switch s.Layout.Mode.Get() {
	case ModeScreen:
		if active := activeScreen(widget, s); active != nil {
			return []*Widget{active}
		}
		return nil
	case ModeTab:
		if active := activeTab(widget, s); active != nil {
			return []*Widget{active}
		}
		return nil
	}
	return widget.Children()
}
