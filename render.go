// Package render.go implements the composition half of the render/diff
// pipeline: every widget produces a pixel map for the frame, layouts
// merge their children's maps with alignment, filler and scroll cropping,
// and borders and padding are applied after content.

package flechtwerk

// Compose renders a widget into a pixel map of its outer size. Kind
// specific content rendering is dispatched through renderContent; the
// shared parts (background, padding, alignment, border) happen here.
func Compose(widget *Widget, states *StateTree) *PixelMap {
	s := states.Get(widget.Path())
	if s == nil {
		return NewPixelMap(0, 0, Color{}, Color{})
	}
	w, h := s.Width.Get(), s.Height.Get()
	fg, bg := effectiveColors(s)
	m := NewPixelMap(w, h, fg, bg)

	content := renderContent(widget, s, states)
	cw, ch := content.Size()

	border := 0
	if s.Border.Enabled.Get() {
		border = 1
	}
	x := border + s.PaddingLeft.Get() + alignCrossH(s.HAlign.Get(), s.EffWidth, cw)
	y := border + s.PaddingTop.Get() + alignCrossV(s.VAlign.Get(), s.EffHeight, ch)
	if cw > s.EffWidth || ch > s.EffHeight {
		content = content.Crop(0, 0, min(cw, s.EffWidth), min(ch, s.EffHeight))
		x = border + s.PaddingLeft.Get()
		y = border + s.PaddingTop.Get()
	}
	m.Blit(content, x, y)

	if border == 1 {
		drawBorder(m, s, w, h)
	}
	return m
}

// effectiveColors picks the state-dependent color pair: disabled wins,
// then button flash, then selection.
func effectiveColors(s *State) (Color, Color) {
	switch {
	case s.Disabled.Get():
		return s.DisabledFg.Get(), s.DisabledBg.Get()
	case s.Button != nil && s.Button.Flashing.Get():
		return s.FlashFg.Get(), s.FlashBg.Get()
	case s.Selected.Get():
		return s.SelectionFg.Get(), s.SelectionBg.Get()
	}
	return s.Fg.Get(), s.Bg.Get()
}

func drawBorder(m *PixelMap, s *State, w, h int) {
	fg, bg := s.Border.Fg.Get(), s.Border.Bg.Get()
	hor := s.Border.Horizontal.Get()
	ver := s.Border.Vertical.Get()
	for x := 1; x < w-1; x++ {
		m.Set(x, 0, Pixel{Glyph: hor, Fg: fg, Bg: bg})
		m.Set(x, h-1, Pixel{Glyph: hor, Fg: fg, Bg: bg})
	}
	for y := 1; y < h-1; y++ {
		m.Set(0, y, Pixel{Glyph: ver, Fg: fg, Bg: bg})
		m.Set(w-1, y, Pixel{Glyph: ver, Fg: fg, Bg: bg})
	}
	m.Set(0, 0, Pixel{Glyph: s.Border.TopLeft.Get(), Fg: fg, Bg: bg})
	m.Set(w-1, 0, Pixel{Glyph: s.Border.TopRight.Get(), Fg: fg, Bg: bg})
	m.Set(0, h-1, Pixel{Glyph: s.Border.BottomLeft.Get(), Fg: fg, Bg: bg})
	m.Set(w-1, h-1, Pixel{Glyph: s.Border.BottomRight.Get(), Fg: fg, Bg: bg})
}

// renderContent produces the widget's inner content map at its effective
// size (layouts may produce larger maps that the caller crops for
// scrolling).
func renderContent(widget *Widget, s *State, states *StateTree) *PixelMap {
	switch widget.Kind() {
	case KindLayout:
		return renderLayout(widget, s, states)
	case KindLabel:
		return renderLabel(s)
	case KindButton:
		return renderButton(s)
	case KindCheckbox:
		return renderCheckbox(s)
	case KindRadioButton:
		return renderRadio(s)
	case KindDropdown:
		return renderDropdown(s)
	case KindSlider:
		return renderSlider(s)
	case KindProgressBar:
		return renderProgressBar(s)
	case KindTextInput:
		return renderTextInput(s)
	case KindCanvas:
		return renderCanvas(s)
	}
	return NewPixelMap(0, 0, Color{}, Color{})
}

// renderLayout composes the visible children into the layout's content
// window: children are laid out against the (possibly unbounded) content
// extent, the result is cropped to the window at the scroll offset, and
// scrollbars are drawn on the trailing edges.
func renderLayout(widget *Widget, s *State, states *StateTree) *PixelMap {
	l := s.Layout
	canvasW := max(s.EffWidth, l.ContentWidth)
	canvasH := max(s.EffHeight, l.ContentHeight)

	fillerFg, fillerBg := s.FillerFg.Get(), s.FillerBg.Get()
	canvas := NewPixelMap(canvasW, canvasH, s.Fg.Get(), s.Bg.Get())
	if l.Fill.Get() {
		symbol := l.FillerSymbol.Get()
		for x := 0; x < canvasW; x++ {
			for y := 0; y < canvasH; y++ {
				canvas.Set(x, y, Pixel{Glyph: symbol, Fg: fillerFg, Bg: fillerBg})
			}
		}
	}

	for _, child := range visibleChildren(widget, s) {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		canvas.Blit(Compose(child, states), cs.X.Get(), cs.Y.Get())
	}

	window := canvas.Crop(l.ScrollX.Get(), l.ScrollY.Get(), s.EffWidth, s.EffHeight)

	if s.Layout.Mode.Get() == ModeTab {
		drawTabHeader(widget, s, window)
	}
	drawScrollbars(s, window)
	return window
}

// drawTabHeader renders one button per page across the top line, the
// active one in the selection colors, the rest in the tab colors.
func drawTabHeader(widget *Widget, s *State, window *PixelMap) {
	active := ""
	if a := activeTab(widget, s); a != nil {
		active = a.ID()
	}
	x := 0
	for _, child := range widget.Children() {
		text := " " + child.ID() + " "
		fg, bg := s.TabFg.Get(), s.TabBg.Get()
		if child.ID() == active {
			fg, bg = s.SelectionFg.Get(), s.SelectionBg.Get()
		}
		x += window.Text(x, 0, text, fg, bg)
		if x >= s.EffWidth {
			break
		}
	}
}

// drawScrollbars draws proportional scrollbars on the trailing edges of
// scroll-enabled windows whose content overflows.
func drawScrollbars(s *State, window *PixelMap) {
	l := s.Layout
	w, h := window.Size()
	if w == 0 || h == 0 {
		return
	}
	fg, bg := s.Border.Fg.Get(), s.Bg.Get()
	if l.ScrollYEnabled.Get() && l.ContentHeight > s.EffHeight {
		thumb := max(1, h*s.EffHeight/l.ContentHeight)
		limit := max(1, l.ContentHeight-s.EffHeight)
		offset := (h - thumb) * l.ScrollY.Get() / limit
		for y := 0; y < h; y++ {
			glyph := "░"
			if y >= offset && y < offset+thumb {
				glyph = "█"
			}
			window.Set(w-1, y, Pixel{Glyph: glyph, Fg: fg, Bg: bg})
		}
	}
	if l.ScrollXEnabled.Get() && l.ContentWidth > s.EffWidth {
		thumb := max(1, w*s.EffWidth/l.ContentWidth)
		limit := max(1, l.ContentWidth-s.EffWidth)
		offset := (w - thumb) * l.ScrollX.Get() / limit
		for x := 0; x < w; x++ {
			glyph := "░"
			if x >= offset && x < offset+thumb {
				glyph = "█"
			}
			window.Set(x, h-1, Pixel{Glyph: glyph, Fg: fg, Bg: bg})
		}
	}
}
