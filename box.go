package flechtwerk

// layoutBox places children sequentially along the main axis, consuming
// the remaining space, and aligns them on the cross axis by their halign
// or valign.
//
// When every child carries the default full-size hint on the flow axis
// and no other size control, the space is equalised: each child receives
// floor(avail/n) and the last child takes the remainder.
func layoutBox(widget *Widget, s *State, states *StateTree, availW, availH int) {
	children := widget.Children()
	if len(children) == 0 {
		contentExtents(widget, s, states)
		return
	}
	horizontal := s.Layout.Orientation.Get() == Horizontal

	equalised, _ := equalise(children, states, horizontal, availW, availH)

	// Pass 1: sizes; equalised children get their share forced on the
	// flow axis, their hints stay untouched.
	for i, child := range children {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		forceW, forceH := -1, -1
		if equalised != nil {
			if horizontal {
				forceW = equalised[i]
			} else {
				forceH = equalised[i]
			}
		}
		resolveSizeForced(child, cs, states, availW, availH, forceW, forceH)
	}

	// Pass 2: positions along the flow axis, alignment across.
	offset := 0
	for _, child := range children {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		if horizontal {
			cs.X.Set(offset)
			cs.Y.Set(alignCrossV(cs.VAlign.Get(), availH, cs.Height.Get()))
			offset += cs.Width.Get()
		} else {
			cs.Y.Set(offset)
			cs.X.Set(alignCrossH(cs.HAlign.Get(), availW, cs.Width.Get()))
			offset += cs.Height.Get()
		}
	}
	contentExtents(widget, s, states)
}

// equalise checks whether every child still has the default hint on the
// flow axis and, if so, returns the equal division of the available
// space. Any asymmetry (explicit hints, auto scaling, no-hint children)
// disables the behaviour.
func equalise(children []*Widget, states *StateTree, horizontal bool, availW, availH int) ([]int, bool) {
	avail := availH
	if horizontal {
		avail = availW
	}
	if avail >= infiniteAxis {
		return nil, false
	}
	for _, child := range children {
		cs := states.Get(child.Path())
		if cs == nil {
			return nil, false
		}
		var hint SizeHint
		var auto bool
		if horizontal {
			hint, auto = cs.SizeHintX.Get(), cs.AutoScaleX.Get()
		} else {
			hint, auto = cs.SizeHintY.Get(), cs.AutoScaleY.Get()
		}
		if auto || hint.None || hint.Fraction != 1.0 {
			return nil, false
		}
	}
	n := len(children)
	each := avail / n
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = each
	}
	sizes[n-1] = avail - each*(n-1)
	return sizes, true
}
