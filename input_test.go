package flechtwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const formUI = `
- layout: root
    mode: box
    orientation: vertical
    - button: first
        text: A
        selection_order: 1
    - button: third
        text: C
        selection_order: 3
    - button: second
        text: B
        selection_order: 2
    - label: plain
        text: not selectable
`

// Repeated Tab visits every selectable widget exactly once per cycle, in
// selection order, wrapping to the smallest.
func TestSelectionCycle(t *testing.T) {
	ui, _, _ := testUI(t, formUI, 30, 10)

	visited := make([]string, 0)
	for i := 0; i < 6; i++ {
		visited = append(visited, ui.selected)
		ui.dispatch(KeyEvent{Key: KeyTab})
	}
	assert.Equal(t, []string{
		"/root/first", "/root/second", "/root/third",
		"/root/first", "/root/second", "/root/third",
	}, visited)
}

func TestSelectionBackwards(t *testing.T) {
	ui, _, _ := testUI(t, formUI, 30, 10)
	assert.Equal(t, "/root/first", ui.selected)
	ui.dispatch(KeyEvent{Key: KeyBacktab})
	assert.Equal(t, "/root/third", ui.selected, "wraps to the largest order")
}

func TestDisabledWidgetsSkipped(t *testing.T) {
	ui, _, _ := testUI(t, formUI, 30, 10)
	state, _ := ui.states.GetByID("second")
	state.Disabled.Set(true)

	ui.dispatch(KeyEvent{Key: KeyTab})
	assert.Equal(t, "/root/third", ui.selected)
}

// Setting any radio active clears the other members of its group.
func TestRadioExclusivity(t *testing.T) {
	ui, _, _ := testUI(t, `
- layout: root
    mode: box
    orientation: vertical
    - radio_button: a
        group: g
        active: true
    - radio_button: b
        group: g
    - radio_button: c
        group: g
    - radio_button: other
        group: h
        active: true
`, 30, 10)

	b, _ := ui.states.GetByID("b")
	widget := ui.root.Find("b")
	activateRadio(ui, widget.Path(), b)

	a, _ := ui.states.GetByID("a")
	c, _ := ui.states.GetByID("c")
	other, _ := ui.states.GetByID("other")
	assert.False(t, a.RadioButton.Active.Get())
	assert.True(t, b.RadioButton.Active.Get())
	assert.False(t, c.RadioButton.Active.Get())
	assert.True(t, other.RadioButton.Active.Get(), "other groups stay untouched")
}

func TestCheckboxMouseToggle(t *testing.T) {
	ui, _, _ := testUI(t, `
- layout: root
    mode: box
    - checkbox: c
`, 20, 5)

	state, _ := ui.states.GetByID("c")
	assert.False(t, state.Checkbox.Active.Get())

	ui.dispatch(MouseEvent{Kind: MousePress, X: state.AbsX, Y: state.AbsY})
	assert.True(t, state.Checkbox.Active.Get())
	assert.Equal(t, "/root/c", ui.selected, "click selects the widget")
}

func TestHoverCallbacks(t *testing.T) {
	ui, _, _ := testUI(t, formUI, 30, 10)

	events := make([]string, 0)
	ui.UpdateCallbackConfig("first", &CallbackConfig{
		OnHover:     func(*Context) bool { events = append(events, "enter"); return true },
		OnHoverExit: func(*Context) bool { events = append(events, "exit"); return true },
	})

	first, _ := ui.states.GetByID("first")
	ui.dispatch(MouseEvent{Kind: MouseMove, X: first.AbsX + 1, Y: first.AbsY + 1})
	assert.Equal(t, []string{"enter"}, events)

	// Move somewhere else inside the root.
	ui.dispatch(MouseEvent{Kind: MouseMove, X: 29, Y: 9})
	assert.Equal(t, []string{"enter", "exit"}, events)
}

func TestKeymapFallThrough(t *testing.T) {
	ui, _, _ := testUI(t, formUI, 30, 10)

	got := rune(0)
	ui.UpdateCallbackConfig("root", &CallbackConfig{
		Keymap: map[Key]KeyCallback{
			KeyRune: func(_ *Context, ev KeyEvent) bool {
				got = ev.Rune
				return true
			},
		},
	})

	// A rune the selected button does not consume falls through to the
	// root layout's key map.
	ui.dispatch(KeyEvent{Key: KeyRune, Rune: 'x'})
	assert.Equal(t, 'x', got)
}

func TestDropdownKeyboard(t *testing.T) {
	ui, _, _ := testUI(t, `
- layout: root
    mode: float
    - dropdown: d
        options: one, two
        choice: one
        allow_none: false
`, 20, 8)

	state, _ := ui.states.GetByID("d")
	assert.Equal(t, "/root/d", ui.selected)

	ui.dispatch(KeyEvent{Key: KeyEnter})
	assert.True(t, state.Dropdown.DroppedDown.Get())

	ui.dispatch(KeyEvent{Key: KeyDown})
	ui.dispatch(KeyEvent{Key: KeyEnter})
	assert.False(t, state.Dropdown.DroppedDown.Get())
	assert.Equal(t, "two", state.Dropdown.Choice.Get())
}

func TestTextInputTyping(t *testing.T) {
	ui, _, _ := testUI(t, `
- layout: root
    mode: box
    - text_input: name
        max_length: 5
`, 20, 5)

	state, _ := ui.states.GetByID("name")
	for _, r := range "hello world" {
		ui.dispatch(KeyEvent{Key: KeyRune, Rune: r})
	}
	assert.Equal(t, "hello", state.TextInput.Text.Get(), "max_length bounds the text")

	ui.dispatch(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "hell", state.TextInput.Text.Get())
	assert.Equal(t, 4, state.TextInput.CursorPos.Get())

	ui.dispatch(KeyEvent{Key: KeyHome})
	ui.dispatch(KeyEvent{Key: KeyDelete})
	assert.Equal(t, "ell", state.TextInput.Text.Get())
}

func TestPasteGoesToSelectedInput(t *testing.T) {
	ui, _, _ := testUI(t, `
- layout: root
    mode: box
    - text_input: name
`, 20, 5)

	ui.dispatch(PasteEvent{Text: "pasted"})
	state, _ := ui.states.GetByID("name")
	assert.Equal(t, "pasted", state.TextInput.Text.Get())
}

func TestCtrlCStops(t *testing.T) {
	ui, _, _ := testUI(t, simpleUI, 20, 5)
	ui.dispatch(KeyEvent{Key: KeyCtrlC})
	assert.True(t, ui.scheduler.Stopped())
}

// While a modal is open, clicks outside it do not reach the widgets
// below.
func TestModalBlocksOutsideInput(t *testing.T) {
	ui, _, _ := testUI(t, `
- Dialog: layout
    mode: box
    width: 10
    height: 4
    size_hint_x: none
    size_hint_y: none
    - button: yes
        text: Y
- layout: root
    mode: box
    - checkbox: c
`, 30, 10)

	state, _ := ui.states.GetByID("c")
	_, err := ui.OpenModal("Dialog")
	assert.NoError(t, err)
	step(t, ui)

	ui.dispatch(MouseEvent{Kind: MousePress, X: state.AbsX, Y: state.AbsY})
	assert.False(t, state.Checkbox.Active.Get(), "widgets below a modal are inert")
}
