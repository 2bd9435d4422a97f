package flechtwerk

// layoutStack flows children in two dimensions using one of the eight
// stack orientations: the first axis of the code is the flow direction,
// the second the wrap direction. "lr-tb" packs left-to-right and wraps
// top-to-bottom, "bt-rl" packs bottom-to-top and wraps right-to-left.
// A child that would overflow the flow axis starts the next row or
// column.
func layoutStack(widget *Widget, s *State, states *StateTree, availW, availH int) {
	children := widget.Children()

	// Pass 1: sizes. Stack children keep their natural or explicit
	// sizes; there is no equalisation.
	for _, child := range children {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		hintless := cs.SizeHintX.Get() == DefaultSizeHint() && cs.SizeHintY.Get() == DefaultSizeHint()
		if hintless && !cs.AutoScaleX.Get() && !cs.AutoScaleY.Get() {
			// Full-parent children make no sense in a stack; force the
			// natural size so multiple children can flow.
			nw, nh := naturalSize(child, cs, states)
			resolveSizeForced(child, cs, states, availW, availH, nw, nh)
		} else {
			resolveSize(child, cs, states, availW, availH)
		}
	}

	orientation := s.Layout.Orientation.Get()
	horizontal := true
	switch orientation {
	case StackTBLR, StackTBRL, StackBTLR, StackBTRL:
		horizontal = false
	}

	// Pass 2: flow with wrapping, in natural top-left coordinates.
	type placed struct {
		cs   *State
		x, y int
	}
	placements := make([]placed, 0, len(children))
	mainPos, crossPos, crossMax := 0, 0, 0
	for _, child := range children {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		w, h := cs.Width.Get(), cs.Height.Get()
		if horizontal {
			if mainPos > 0 && mainPos+w > availW {
				mainPos = 0
				crossPos += crossMax
				crossMax = 0
			}
			placements = append(placements, placed{cs, mainPos, crossPos})
			mainPos += w
			crossMax = max(crossMax, h)
		} else {
			if mainPos > 0 && mainPos+h > availH {
				mainPos = 0
				crossPos += crossMax
				crossMax = 0
			}
			placements = append(placements, placed{cs, crossPos, mainPos})
			mainPos += h
			crossMax = max(crossMax, w)
		}
	}

	// Mirror the natural coordinates into the corner the orientation
	// starts from.
	fromRight := orientation == StackRLTB || orientation == StackRLBT ||
		orientation == StackTBRL || orientation == StackBTRL
	fromBottom := orientation == StackLRBT || orientation == StackRLBT ||
		orientation == StackBTLR || orientation == StackBTRL
	for _, p := range placements {
		x, y := p.x, p.y
		if fromRight && availW < infiniteAxis {
			x = availW - x - p.cs.Width.Get()
		}
		if fromBottom && availH < infiniteAxis {
			y = availH - y - p.cs.Height.Get()
		}
		p.cs.X.Set(max(0, x))
		p.cs.Y.Set(max(0, y))
	}
	contentExtents(widget, s, states)
}
