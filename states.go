package flechtwerk

import (
	"fmt"
	"strconv"
	"strings"
)

// LayoutMode selects the placement algorithm of a layout widget.
type LayoutMode string

const (
	ModeBox    LayoutMode = "box"
	ModeStack  LayoutMode = "stack"
	ModeTable  LayoutMode = "table"
	ModeFloat  LayoutMode = "float"
	ModeScreen LayoutMode = "screen"
	ModeTab    LayoutMode = "tab"
)

// ParseLayoutMode parses a layout mode value.
func ParseLayoutMode(raw string) (LayoutMode, error) {
	switch LayoutMode(strings.TrimSpace(raw)) {
	case ModeBox, ModeStack, ModeTable, ModeFloat, ModeScreen, ModeTab:
		return LayoutMode(strings.TrimSpace(raw)), nil
	}
	return "", fmt.Errorf("unknown layout mode %q", raw)
}

// Orientation controls the flow axis of box layouts and the fill order of
// stack layouts. Box layouts use Horizontal or Vertical; stack layouts use
// one of the eight two-letter codes: main axis (lr, rl, tb, bt) combined
// with the cross direction, e.g. "lr-tb" flows left-to-right wrapping
// top-to-bottom.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
	StackLRTB  Orientation = "lr-tb"
	StackRLTB  Orientation = "rl-tb"
	StackLRBT  Orientation = "lr-bt"
	StackRLBT  Orientation = "rl-bt"
	StackTBLR  Orientation = "tb-lr"
	StackTBRL  Orientation = "tb-rl"
	StackBTLR  Orientation = "bt-lr"
	StackBTRL  Orientation = "bt-rl"
)

// ParseOrientation parses an orientation value.
func ParseOrientation(raw string) (Orientation, error) {
	switch Orientation(strings.TrimSpace(raw)) {
	case Horizontal, Vertical, StackLRTB, StackRLTB, StackLRBT, StackRLBT,
		StackTBLR, StackTBRL, StackBTLR, StackBTRL:
		return Orientation(strings.TrimSpace(raw)), nil
	}
	return "", fmt.Errorf("unknown orientation %q", raw)
}

// BorderSet holds the border cells shared by all widgets.
type BorderSet struct {
	Enabled     Property[bool]
	Horizontal  Property[string]
	Vertical    Property[string]
	TopLeft     Property[string]
	TopRight    Property[string]
	BottomLeft  Property[string]
	BottomRight Property[string]
	Fg          Property[Color]
	Bg          Property[Color]
}

// LayoutState is the kind-specific payload of layout widgets.
type LayoutState struct {
	Mode               Property[LayoutMode]
	Orientation        Property[Orientation]
	Rows               Property[int]
	Cols               Property[int]
	ForceDefaultWidth  Property[bool]
	ForceDefaultHeight Property[bool]
	Fill               Property[bool]
	FillerSymbol       Property[string]
	ActiveScreen       Property[string]
	ActiveTab          Property[string]
	ViewPage           Property[int]
	ScrollXEnabled     Property[bool]
	ScrollYEnabled     Property[bool]
	ScrollX            Property[int]
	ScrollY            Property[int]

	// Content extents of the last layout pass; used to clamp scrolling.
	ContentWidth, ContentHeight int
}

// LabelState is the payload of label widgets. Banner labels render their
// text as a figlet banner instead of plain glyphs.
type LabelState struct {
	Text   Property[string]
	Banner Property[bool]
}

// ButtonState is the payload of button widgets. Flashing is set while the
// pressed feedback colors are shown.
type ButtonState struct {
	Text     Property[string]
	Flashing Property[bool]
}

// CheckboxState is the payload of checkbox widgets.
type CheckboxState struct {
	Active Property[bool]
}

// RadioButtonState is the payload of radio button widgets. At most one
// member of a group has Active set; the input dispatcher maintains the
// exclusivity.
type RadioButtonState struct {
	Group  Property[string]
	Active Property[bool]
}

// DropdownState is the payload of dropdown widgets.
type DropdownState struct {
	Options     []string
	Choice      Property[string]
	AllowNone   Property[bool]
	DroppedDown Property[bool]
	HoveredRow  Property[int]
}

// SliderState is the payload of slider widgets. Value stays in [Min, Max]
// and on a multiple of Step.
type SliderState struct {
	Value Property[int]
	Min   Property[int]
	Max   Property[int]
	Step  Property[int]
}

// ProgressBarState is the payload of progress bar widgets.
type ProgressBarState struct {
	Value Property[int]
	Max   Property[int]
}

// TextInputState is the payload of text input widgets.
type TextInputState struct {
	Text      Property[string]
	CursorPos Property[int]
	MaxLength Property[int]
	SelStart  Property[int]
	SelEnd    Property[int]

	// View is the first visible column when the text is wider than the
	// widget. Derived, not a cell.
	View int
}

// CanvasState is the payload of canvas widgets. The content is either
// loaded from a file or painted programmatically.
type CanvasState struct {
	Lines []string
}

// State is the per-widget bundle of reactive cells, the record stored in
// the state tree under the widget's path. Shared cells live flat on the
// record, kind-specific cells in exactly one non-nil payload.
type State struct {
	Path string
	Kind Kind

	// Geometry
	X, Y                   Property[int]
	Width, Height          Property[int]
	SizeHintX, SizeHintY   Property[SizeHint]
	PosHintX               Property[HPosHint]
	PosHintY               Property[VPosHint]
	AutoScaleX, AutoScaleY Property[bool]
	PaddingTop             Property[int]
	PaddingBottom          Property[int]
	PaddingLeft            Property[int]
	PaddingRight           Property[int]
	HAlign                 Property[HAlign]
	VAlign                 Property[VAlign]

	// Style
	Fg, Bg                 Property[Color]
	SelectionFg            Property[Color]
	SelectionBg            Property[Color]
	DisabledFg, DisabledBg Property[Color]
	FlashFg, FlashBg       Property[Color]
	TabFg, TabBg           Property[Color]
	FillerFg, FillerBg     Property[Color]
	Cursor                 Property[string]
	Border                 BorderSet

	// Behaviour
	Disabled       Property[bool]
	Selectable     Property[bool]
	Selected       Property[bool]
	SelectionOrder Property[int]

	// Layout results of the current frame. Derived, not cells.
	AbsX, AbsY          int
	EffWidth, EffHeight int

	// Payloads; exactly one is non-nil, matching Kind.
	Layout      *LayoutState
	Label       *LabelState
	Button      *ButtonState
	Checkbox    *CheckboxState
	RadioButton *RadioButtonState
	Dropdown    *DropdownState
	Slider      *SliderState
	ProgressBar *ProgressBarState
	TextInput   *TextInputState
	Canvas      *CanvasState
}

// NewState creates a state record for the given kind with all cells at
// their defaults.
func NewState(kind Kind) *State {
	s := &State{Kind: kind}
	s.SizeHintX.value = DefaultSizeHint()
	s.SizeHintY.value = DefaultSizeHint()
	s.PosHintX.value = HPosHint{None: true}
	s.PosHintY.value = VPosHint{None: true}
	s.Fg.value = NamedColor("white")
	s.Bg.value = NamedColor("black")
	s.SelectionFg.value = NamedColor("yellow")
	s.SelectionBg.value = NamedColor("blue")
	s.DisabledFg.value = NamedColor("gray")
	s.DisabledBg.value = NamedColor("black")
	s.FlashFg.value = NamedColor("yellow")
	s.FlashBg.value = NamedColor("white")
	s.TabFg.value = NamedColor("white")
	s.TabBg.value = NamedColor("black")
	s.FillerFg.value = NamedColor("white")
	s.FillerBg.value = NamedColor("black")
	s.Border.Horizontal.value = "─"
	s.Border.Vertical.value = "│"
	s.Border.TopLeft.value = "┌"
	s.Border.TopRight.value = "┐"
	s.Border.BottomLeft.value = "└"
	s.Border.BottomRight.value = "┘"
	s.Border.Fg.value = NamedColor("white")
	s.Border.Bg.value = NamedColor("black")

	switch kind {
	case KindLayout:
		s.Layout = &LayoutState{}
		s.Layout.Mode.value = ModeBox
		s.Layout.Orientation.value = Horizontal
		s.Layout.FillerSymbol.value = " "
	case KindLabel:
		s.Label = &LabelState{}
		s.AutoScaleX.value = true
		s.AutoScaleY.value = true
		s.SizeHintX.value = NoSizeHint()
		s.SizeHintY.value = NoSizeHint()
	case KindButton:
		s.Button = &ButtonState{}
		s.Selectable.value = true
		s.AutoScaleX.value = true
		s.AutoScaleY.value = true
		s.SizeHintX.value = NoSizeHint()
		s.SizeHintY.value = NoSizeHint()
		s.Border.Enabled.value = true
	case KindCheckbox:
		s.Checkbox = &CheckboxState{}
		s.Selectable.value = true
		s.AutoScaleX.value = true
		s.AutoScaleY.value = true
		s.SizeHintX.value = NoSizeHint()
		s.SizeHintY.value = NoSizeHint()
	case KindRadioButton:
		s.RadioButton = &RadioButtonState{}
		s.Selectable.value = true
		s.AutoScaleX.value = true
		s.AutoScaleY.value = true
		s.SizeHintX.value = NoSizeHint()
		s.SizeHintY.value = NoSizeHint()
	case KindDropdown:
		s.Dropdown = &DropdownState{}
		s.Dropdown.AllowNone.value = true
		s.Selectable.value = true
		s.AutoScaleY.value = true
		s.SizeHintY.value = NoSizeHint()
	case KindSlider:
		s.Slider = &SliderState{}
		s.Slider.Max.value = 100
		s.Slider.Step.value = 1
		s.Selectable.value = true
		s.AutoScaleY.value = true
		s.SizeHintY.value = NoSizeHint()
	case KindProgressBar:
		s.ProgressBar = &ProgressBarState{}
		s.ProgressBar.Max.value = 100
		s.AutoScaleY.value = true
		s.SizeHintY.value = NoSizeHint()
	case KindTextInput:
		s.TextInput = &TextInputState{}
		s.TextInput.MaxLength.value = 10000
		s.Selectable.value = true
		s.AutoScaleY.value = true
		s.SizeHintY.value = NoSizeHint()
		s.Cursor.value = "bar"
	case KindCanvas:
		s.Canvas = &CanvasState{}
	}
	return s
}

// Cell resolves a declarative property name to the type-erased cell behind
// it, for subscriptions created by property references. Only cells that
// make sense to bind are exposed here.
func (s *State) Cell(name string) (AnyProperty, error) {
	switch name {
	case "x":
		return &s.X, nil
	case "y":
		return &s.Y, nil
	case "width":
		return &s.Width, nil
	case "height":
		return &s.Height, nil
	case "size_hint_x":
		return &s.SizeHintX, nil
	case "size_hint_y":
		return &s.SizeHintY, nil
	case "pos_hint_x":
		return &s.PosHintX, nil
	case "pos_hint_y":
		return &s.PosHintY, nil
	case "auto_scale_x":
		return &s.AutoScaleX, nil
	case "auto_scale_y":
		return &s.AutoScaleY, nil
	case "padding_top":
		return &s.PaddingTop, nil
	case "padding_bottom":
		return &s.PaddingBottom, nil
	case "padding_left":
		return &s.PaddingLeft, nil
	case "padding_right":
		return &s.PaddingRight, nil
	case "halign":
		return &s.HAlign, nil
	case "valign":
		return &s.VAlign, nil
	case "fg":
		return &s.Fg, nil
	case "bg":
		return &s.Bg, nil
	case "selection_fg":
		return &s.SelectionFg, nil
	case "selection_bg":
		return &s.SelectionBg, nil
	case "disabled_fg":
		return &s.DisabledFg, nil
	case "disabled_bg":
		return &s.DisabledBg, nil
	case "flash_fg":
		return &s.FlashFg, nil
	case "flash_bg":
		return &s.FlashBg, nil
	case "tab_fg":
		return &s.TabFg, nil
	case "tab_bg":
		return &s.TabBg, nil
	case "filler_fg":
		return &s.FillerFg, nil
	case "filler_bg":
		return &s.FillerBg, nil
	case "cursor":
		return &s.Cursor, nil
	case "border_enabled":
		return &s.Border.Enabled, nil
	case "border_fg":
		return &s.Border.Fg, nil
	case "border_bg":
		return &s.Border.Bg, nil
	case "disabled":
		return &s.Disabled, nil
	case "selectable":
		return &s.Selectable, nil
	case "selected":
		return &s.Selected, nil
	case "selection_order":
		return &s.SelectionOrder, nil
	}
	switch {
	case s.Label != nil:
		switch name {
		case "text":
			return &s.Label.Text, nil
		case "banner":
			return &s.Label.Banner, nil
		}
	case s.Button != nil:
		switch name {
		case "text":
			return &s.Button.Text, nil
		case "flashing":
			return &s.Button.Flashing, nil
		}
	case s.Checkbox != nil:
		if name == "active" {
			return &s.Checkbox.Active, nil
		}
	case s.RadioButton != nil:
		switch name {
		case "group":
			return &s.RadioButton.Group, nil
		case "active":
			return &s.RadioButton.Active, nil
		}
	case s.Dropdown != nil:
		switch name {
		case "choice":
			return &s.Dropdown.Choice, nil
		case "allow_none":
			return &s.Dropdown.AllowNone, nil
		case "dropped_down":
			return &s.Dropdown.DroppedDown, nil
		case "hovered_row":
			return &s.Dropdown.HoveredRow, nil
		}
	case s.Slider != nil:
		switch name {
		case "value":
			return &s.Slider.Value, nil
		case "min":
			return &s.Slider.Min, nil
		case "max":
			return &s.Slider.Max, nil
		case "step":
			return &s.Slider.Step, nil
		}
	case s.ProgressBar != nil:
		switch name {
		case "value":
			return &s.ProgressBar.Value, nil
		case "max":
			return &s.ProgressBar.Max, nil
		}
	case s.TextInput != nil:
		switch name {
		case "text":
			return &s.TextInput.Text, nil
		case "cursor_pos":
			return &s.TextInput.CursorPos, nil
		case "max_length":
			return &s.TextInput.MaxLength, nil
		}
	case s.Layout != nil:
		switch name {
		case "active_screen":
			return &s.Layout.ActiveScreen, nil
		case "active_tab":
			return &s.Layout.ActiveTab, nil
		case "view_page":
			return &s.Layout.ViewPage, nil
		case "scroll_x":
			return &s.Layout.ScrollX, nil
		case "scroll_y":
			return &s.Layout.ScrollY, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no cell %q", ErrWrongType, s.Kind, name)
}

// Apply parses a raw declarative value and sets the named cell. Returns
// an UnknownProp or BadValue parse error when the name or value does not
// fit the widget kind.
func (s *State) Apply(widget, name, raw string) error {
	raw = strings.TrimSpace(raw)
	bad := func() error {
		return &ParseError{Kind: BadValue, Widget: widget, Name: name, Raw: raw}
	}
	setInt := func(p *Property[int]) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return bad()
		}
		p.Set(n)
		return nil
	}
	setBool := func(p *Property[bool]) error {
		b, err := ParseBool(raw)
		if err != nil {
			return bad()
		}
		p.Set(b)
		return nil
	}
	setColor := func(p *Property[Color]) error {
		c, err := ParseColor(raw)
		if err != nil {
			return bad()
		}
		p.Set(c)
		return nil
	}

	switch name {
	case "x":
		return setInt(&s.X)
	case "y":
		return setInt(&s.Y)
	case "pos":
		x, y, err := ParseIntPair(raw)
		if err != nil {
			return bad()
		}
		s.X.Set(x)
		s.Y.Set(y)
		return nil
	case "width":
		s.SizeHintX.Set(NoSizeHint())
		return setInt(&s.Width)
	case "height":
		s.SizeHintY.Set(NoSizeHint())
		return setInt(&s.Height)
	case "size":
		w, h, err := ParseIntPair(raw)
		if err != nil {
			return bad()
		}
		s.SizeHintX.Set(NoSizeHint())
		s.SizeHintY.Set(NoSizeHint())
		s.Width.Set(w)
		s.Height.Set(h)
		return nil
	case "size_hint_x":
		h, err := ParseSizeHint(raw)
		if err != nil {
			return bad()
		}
		s.SizeHintX.Set(h)
		return nil
	case "size_hint_y":
		h, err := ParseSizeHint(raw)
		if err != nil {
			return bad()
		}
		s.SizeHintY.Set(h)
		return nil
	case "pos_hint_x":
		h, err := ParseHPosHint(raw)
		if err != nil {
			return bad()
		}
		s.PosHintX.Set(h)
		return nil
	case "pos_hint_y":
		h, err := ParseVPosHint(raw)
		if err != nil {
			return bad()
		}
		s.PosHintY.Set(h)
		return nil
	case "auto_scale_x":
		return setBool(&s.AutoScaleX)
	case "auto_scale_y":
		return setBool(&s.AutoScaleY)
	case "padding_top":
		return setInt(&s.PaddingTop)
	case "padding_bottom":
		return setInt(&s.PaddingBottom)
	case "padding_left":
		return setInt(&s.PaddingLeft)
	case "padding_right":
		return setInt(&s.PaddingRight)
	case "halign":
		a, err := ParseHAlign(raw)
		if err != nil {
			return bad()
		}
		s.HAlign.Set(a)
		return nil
	case "valign":
		a, err := ParseVAlign(raw)
		if err != nil {
			return bad()
		}
		s.VAlign.Set(a)
		return nil
	case "fg":
		return setColor(&s.Fg)
	case "bg":
		return setColor(&s.Bg)
	case "selection_fg":
		return setColor(&s.SelectionFg)
	case "selection_bg":
		return setColor(&s.SelectionBg)
	case "disabled_fg":
		return setColor(&s.DisabledFg)
	case "disabled_bg":
		return setColor(&s.DisabledBg)
	case "flash_fg":
		return setColor(&s.FlashFg)
	case "flash_bg":
		return setColor(&s.FlashBg)
	case "tab_fg":
		return setColor(&s.TabFg)
	case "tab_bg":
		return setColor(&s.TabBg)
	case "filler_fg":
		return setColor(&s.FillerFg)
	case "filler_bg":
		return setColor(&s.FillerBg)
	case "cursor":
		s.Cursor.Set(raw)
		return nil
	case "border_enabled":
		return setBool(&s.Border.Enabled)
	case "border_h":
		s.Border.Horizontal.Set(raw)
		return nil
	case "border_v":
		s.Border.Vertical.Set(raw)
		return nil
	case "border_tl":
		s.Border.TopLeft.Set(raw)
		return nil
	case "border_tr":
		s.Border.TopRight.Set(raw)
		return nil
	case "border_bl":
		s.Border.BottomLeft.Set(raw)
		return nil
	case "border_br":
		s.Border.BottomRight.Set(raw)
		return nil
	case "border_fg":
		return setColor(&s.Border.Fg)
	case "border_bg":
		return setColor(&s.Border.Bg)
	case "disabled":
		return setBool(&s.Disabled)
	case "selectable":
		return setBool(&s.Selectable)
	case "selected":
		return setBool(&s.Selected)
	case "selection_order":
		return setInt(&s.SelectionOrder)
	}

	switch {
	case s.Layout != nil:
		switch name {
		case "mode":
			m, err := ParseLayoutMode(raw)
			if err != nil {
				return bad()
			}
			s.Layout.Mode.Set(m)
			return nil
		case "orientation":
			o, err := ParseOrientation(raw)
			if err != nil {
				return bad()
			}
			s.Layout.Orientation.Set(o)
			return nil
		case "rows":
			return setInt(&s.Layout.Rows)
		case "cols":
			return setInt(&s.Layout.Cols)
		case "force_default_size_x":
			return setBool(&s.Layout.ForceDefaultWidth)
		case "force_default_size_y":
			return setBool(&s.Layout.ForceDefaultHeight)
		case "fill":
			return setBool(&s.Layout.Fill)
		case "filler_symbol":
			s.Layout.FillerSymbol.Set(raw)
			return nil
		case "active_screen":
			s.Layout.ActiveScreen.Set(raw)
			return nil
		case "active_tab":
			s.Layout.ActiveTab.Set(raw)
			return nil
		case "view_page":
			return setInt(&s.Layout.ViewPage)
		case "scroll_x_enabled":
			return setBool(&s.Layout.ScrollXEnabled)
		case "scroll_y_enabled":
			return setBool(&s.Layout.ScrollYEnabled)
		}
	case s.Label != nil:
		switch name {
		case "text":
			s.Label.Text.Set(raw)
			return nil
		case "banner":
			return setBool(&s.Label.Banner)
		}
	case s.Button != nil:
		if name == "text" {
			s.Button.Text.Set(raw)
			return nil
		}
	case s.Checkbox != nil:
		if name == "active" {
			return setBool(&s.Checkbox.Active)
		}
	case s.RadioButton != nil:
		switch name {
		case "group":
			s.RadioButton.Group.Set(raw)
			return nil
		case "active":
			return setBool(&s.RadioButton.Active)
		}
	case s.Dropdown != nil:
		switch name {
		case "options":
			options := strings.Split(raw, ",")
			for i := range options {
				options[i] = strings.TrimSpace(options[i])
			}
			s.Dropdown.Options = options
			return nil
		case "choice":
			s.Dropdown.Choice.Set(raw)
			return nil
		case "allow_none":
			return setBool(&s.Dropdown.AllowNone)
		}
	case s.Slider != nil:
		switch name {
		case "value":
			return setInt(&s.Slider.Value)
		case "min":
			return setInt(&s.Slider.Min)
		case "max":
			return setInt(&s.Slider.Max)
		case "step":
			return setInt(&s.Slider.Step)
		}
	case s.ProgressBar != nil:
		switch name {
		case "value":
			return setInt(&s.ProgressBar.Value)
		case "max":
			return setInt(&s.ProgressBar.Max)
		}
	case s.TextInput != nil:
		switch name {
		case "text":
			s.TextInput.Text.Set(raw)
			return nil
		case "cursor_pos":
			return setInt(&s.TextInput.CursorPos)
		case "max_length":
			return setInt(&s.TextInput.MaxLength)
		}
	}

	return &ParseError{Kind: UnknownProp, Widget: widget, Name: name}
}

// PaddingNear and friends read the current padding for layout math.
func (s *State) PaddingInsets() (top, right, bottom, left int) {
	return s.PaddingTop.Get(), s.PaddingRight.Get(), s.PaddingBottom.Get(), s.PaddingLeft.Get()
}

// borderSize returns the size consumed by the border on each axis.
func (s *State) borderSize() int {
	if s.Border.Enabled.Get() {
		return 2
	}
	return 0
}
