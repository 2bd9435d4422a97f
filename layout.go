package flechtwerk

import "math"

// infiniteAxis is the stand-in extent for scroll-enabled axes: children
// are laid out against it and the result is cropped to the real window.
const infiniteAxis = 1 << 14

// LayoutTree runs the two layout passes over the whole tree: sizes first,
// then positions and absolute positions, both driven from the root.
func LayoutTree(root *Widget, states *StateTree, width, height int) {
	s := states.Get(root.Path())
	if s == nil {
		return
	}
	s.Width.Set(width)
	s.Height.Set(height)
	s.X.Set(0)
	s.Y.Set(0)
	s.AbsX, s.AbsY = 0, 0
	computeEffective(s, width, height)
	layoutChildren(root, states)
}

// computeEffective derives the usable content size from the outer size by
// subtracting border and padding. Negative intermediates clamp to 0.
func computeEffective(s *State, w, h int) {
	top, right, bottom, left := s.PaddingInsets()
	b := s.borderSize()
	s.EffWidth = max(0, w-b-left-right)
	s.EffHeight = max(0, h-b-top-bottom)
}

// layoutChildren sizes and positions the children of a layout widget
// according to its mode, then recurses.
func layoutChildren(widget *Widget, states *StateTree) {
	if widget.Kind() != KindLayout {
		return
	}
	s := states.Get(widget.Path())
	if s == nil || s.Layout == nil {
		return
	}

	availW, availH := s.EffWidth, s.EffHeight
	if s.Layout.ScrollXEnabled.Get() {
		availW = infiniteAxis
	}
	if s.Layout.ScrollYEnabled.Get() {
		availH = infiniteAxis
	}

	switch s.Layout.Mode.Get() {
	case ModeBox:
		layoutBox(widget, s, states, availW, availH)
	case ModeStack:
		layoutStack(widget, s, states, availW, availH)
	case ModeTable:
		layoutTable(widget, s, states, availW, availH)
	case ModeFloat:
		layoutFloat(widget, s, states, availW, availH)
	case ModeScreen:
		layoutScreen(widget, s, states, availW, availH)
	case ModeTab:
		layoutTab(widget, s, states, availW, availH)
	}

	clampScroll(s)
	propagateAbsolute(widget, s, states)

	for _, child := range widget.Children() {
		layoutChildren(child, states)
	}
}

// resolveSize runs the sizing rules for one child against the available
// space: auto scaling wins, then the fractional size hint, then the
// explicit size.
func resolveSize(child *Widget, s *State, states *StateTree, availW, availH int) (int, int) {
	return resolveSizeForced(child, s, states, availW, availH, -1, -1)
}

// resolveSizeForced is resolveSize with per-axis overrides: a
// non-negative forced value bypasses the rules for that axis. Box
// layouts use it for default-hint equalisation without touching the
// children's hints.
func resolveSizeForced(child *Widget, s *State, states *StateTree, availW, availH, forceW, forceH int) (int, int) {
	w, h := s.Width.Get(), s.Height.Get()

	if s.AutoScaleX.Get() || s.AutoScaleY.Get() {
		nw, nh := naturalSize(child, s, states)
		if s.AutoScaleX.Get() {
			w = nw
		}
		if s.AutoScaleY.Get() {
			h = nh
		}
	}
	if !s.AutoScaleX.Get() {
		if hint := s.SizeHintX.Get(); !hint.None {
			if availW >= infiniteAxis {
				// Fractions of an unbounded scroll axis are meaningless;
				// fall back to the natural size.
				w, _ = naturalSize(child, s, states)
			} else {
				w = roundHint(hint.Fraction, availW)
			}
		}
	}
	if !s.AutoScaleY.Get() {
		if hint := s.SizeHintY.Get(); !hint.None {
			if availH >= infiniteAxis {
				_, h = naturalSize(child, s, states)
			} else {
				h = roundHint(hint.Fraction, availH)
			}
		}
	}

	if forceW >= 0 {
		w = forceW
	}
	if forceH >= 0 {
		h = forceH
	}

	if availW < infiniteAxis {
		w = min(w, availW)
	}
	if availH < infiniteAxis {
		h = min(h, availH)
	}
	w, h = max(0, w), max(0, h)

	s.Width.Set(w)
	s.Height.Set(h)
	computeEffective(s, w, h)
	return w, h
}

func roundHint(fraction float64, avail int) int {
	if avail >= infiniteAxis {
		return 0
	}
	return int(math.Round(fraction * float64(avail)))
}

// naturalSize returns the widget's preferred content footprint including
// its border and padding.
func naturalSize(widget *Widget, s *State, states *StateTree) (int, int) {
	cw, ch := contentSize(widget, s, states)
	top, right, bottom, left := s.PaddingInsets()
	b := s.borderSize()
	return cw + b + left + right, ch + b + top + bottom
}

// contentSize asks the widget kind for its natural content dimensions.
func contentSize(widget *Widget, s *State, states *StateTree) (int, int) {
	switch widget.Kind() {
	case KindLabel:
		return labelContentSize(s)
	case KindButton:
		return buttonContentSize(s)
	case KindCheckbox:
		return checkboxContentSize(s)
	case KindRadioButton:
		return radioContentSize(s)
	case KindDropdown:
		return dropdownContentSize(s)
	case KindSlider:
		return sliderContentSize(s)
	case KindProgressBar:
		return progressBarContentSize(s)
	case KindTextInput:
		return textInputContentSize(s)
	case KindCanvas:
		return canvasContentSize(s)
	case KindLayout:
		return layoutContentSize(widget, s, states)
	}
	return 0, 0
}

// layoutContentSize estimates a layout's natural footprint from the
// natural sizes of its children along the current mode's axes.
func layoutContentSize(widget *Widget, s *State, states *StateTree) (int, int) {
	sumW, sumH, maxW, maxH := 0, 0, 0, 0
	for _, child := range widget.Children() {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		w, h := naturalSize(child, cs, states)
		sumW += w
		sumH += h
		maxW = max(maxW, w)
		maxH = max(maxH, h)
	}
	switch s.Layout.Mode.Get() {
	case ModeBox:
		if s.Layout.Orientation.Get() == Horizontal {
			return sumW, maxH
		}
		return maxW, sumH
	case ModeScreen:
		return maxW, maxH
	case ModeTab:
		return maxW, maxH + 1
	default:
		return maxW, maxH
	}
}

// alignCross returns the cross-axis offset of a child inside a slot.
func alignCrossH(a HAlign, slot, size int) int {
	switch a {
	case AlignCenter:
		return max(0, (slot-size)/2)
	case AlignRight:
		return max(0, slot-size)
	}
	return 0
}

func alignCrossV(a VAlign, slot, size int) int {
	switch a {
	case AlignMiddle:
		return max(0, (slot-size)/2)
	case AlignBottom:
		return max(0, slot-size)
	}
	return 0
}

// applyPosHints computes a child position from its pos hints against the
// parent's effective size, falling back to the explicit x, y.
func applyPosHints(s *State, parentW, parentH int) (int, int) {
	x, y := s.X.Get(), s.Y.Get()
	w, h := s.Width.Get(), s.Height.Get()
	if hint := s.PosHintX.Get(); !hint.None {
		base := 0
		switch hint.Anchor {
		case AlignRight:
			base = parentW - w
		case AlignCenter:
			base = (parentW - w) / 2
		}
		x = int(math.Round(float64(base) * hint.Fraction))
	}
	if hint := s.PosHintY.Get(); !hint.None {
		base := 0
		switch hint.Anchor {
		case AlignBottom:
			base = parentH - h
		case AlignMiddle:
			base = (parentH - h) / 2
		}
		y = int(math.Round(float64(base) * hint.Fraction))
	}
	return x, y
}

// clampScroll keeps the scroll offsets inside [0, content - window].
func clampScroll(s *State) {
	l := s.Layout
	if l.ScrollXEnabled.Get() {
		limit := max(0, l.ContentWidth-s.EffWidth)
		l.ScrollX.Set(min(max(0, l.ScrollX.Get()), limit))
	} else {
		l.ScrollX.Set(0)
	}
	if l.ScrollYEnabled.Get() {
		limit := max(0, l.ContentHeight-s.EffHeight)
		l.ScrollY.Set(min(max(0, l.ScrollY.Get()), limit))
	} else {
		l.ScrollY.Set(0)
	}
}

// propagateAbsolute derives the children's absolute screen positions from
// the parent's, its border and padding, and the scroll offsets.
func propagateAbsolute(widget *Widget, s *State, states *StateTree) {
	_, _, _, left := s.PaddingInsets()
	top := s.PaddingTop.Get()
	border := 0
	if s.Border.Enabled.Get() {
		border = 1
	}
	originX := s.AbsX + border + left - s.Layout.ScrollX.Get()
	originY := s.AbsY + border + top - s.Layout.ScrollY.Get()
	for _, child := range widget.Children() {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		cs.AbsX = originX + cs.X.Get()
		cs.AbsY = originY + cs.Y.Get()
	}
}

// contentExtents records how far the children reach, for scroll clamping
// and scrollbar sizing.
func contentExtents(widget *Widget, s *State, states *StateTree) {
	maxX, maxY := 0, 0
	for _, child := range widget.Children() {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		maxX = max(maxX, cs.X.Get()+cs.Width.Get())
		maxY = max(maxY, cs.Y.Get()+cs.Height.Get())
	}
	s.Layout.ContentWidth = maxX
	s.Layout.ContentHeight = maxY
}
