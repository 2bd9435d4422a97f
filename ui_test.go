package flechtwerk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Pressing a button runs its on_press callback; the label change reaches
// the screen with exactly the changed cells written.
func TestButtonPressUpdatesLabel(t *testing.T) {
	ui, term, _ := testUI(t, `
- layout: root
    mode: box
    orientation: vertical
    - label: status
        text: ..
    - button: b
        text: Go
`, 20, 6)

	err := ui.UpdateCallbackConfig("b", &CallbackConfig{
		OnPress: func(ctx *Context) bool {
			state, err := ctx.States.GetByID("status")
			if err != nil {
				return false
			}
			state.Label.Text.Set("OK")
			ctx.Scheduler.UpdateWidget(state.Path)
			return true
		},
	})
	assert.NoError(t, err)

	// The button is the only selectable widget.
	assert.Equal(t, "/root/b", ui.selected)

	term.ResetWrites()
	ui.dispatch(KeyEvent{Key: KeyEnter})
	step(t, ui)

	state, _ := ui.states.GetByID("status")
	assert.Equal(t, "OK", state.Label.Text.Get())

	// Only the two label cells (and the button's flash colors) changed.
	assert.Equal(t, "O", term.Glyph(0, 0))
	assert.Equal(t, "K", term.Glyph(1, 0))
}

// Slider: Right moves one step up, Left clamps at the minimum.
func TestSliderKeys(t *testing.T) {
	ui, _, _ := testUI(t, `
- layout: root
    mode: box
    - slider: s
        min: 0
        max: 100
        step: 10
        value: 50
`, 30, 4)

	state, _ := ui.states.GetByID("s")
	assert.Equal(t, "/root/s", ui.selected)

	ui.dispatch(KeyEvent{Key: KeyRight})
	assert.Equal(t, 60, state.Slider.Value.Get())

	for i := 0; i < 10; i++ {
		ui.dispatch(KeyEvent{Key: KeyLeft})
	}
	assert.Equal(t, 0, state.Slider.Value.Get(), "value clamps at min")
}

// Opening a modal routes input to it; Esc dismisses it and destroys all
// its state records.
func TestModalLifecycle(t *testing.T) {
	ui, _, _ := testUI(t, `
- Dialog: layout
    mode: box
    orientation: vertical
    - label: message
        text: sure?
    - button: yes
        text: Yes
- layout: root
    mode: box
    - button: open
        text: Open
`, 30, 10)

	path, err := ui.OpenModal("Dialog")
	assert.NoError(t, err)
	assert.Equal(t, "/root/modal0", path)
	assert.NotNil(t, ui.states.Get("/root/modal0/yes"))

	// Selection moved into the modal.
	assert.Equal(t, "/root/modal0/yes", ui.selected)
	step(t, ui)

	ui.dispatch(KeyEvent{Key: KeyEsc})
	step(t, ui)

	for _, p := range ui.states.Paths() {
		assert.NotContains(t, p, "/modal0", "modal records must be destroyed")
	}
	assert.Empty(t, ui.modals)
	assert.Equal(t, "/root/open", ui.selected)
}

func TestDismissWithoutModal(t *testing.T) {
	ui, _, _ := testUI(t, simpleUI, 20, 5)
	assert.ErrorIs(t, ui.DismissModal(), ErrNoModal)
}

// A frame without changes writes nothing to the terminal.
func TestIdleFrameWritesNothing(t *testing.T) {
	ui, term, _ := testUI(t, simpleUI, 20, 5)
	term.ResetWrites()
	step(t, ui)
	step(t, ui)
	assert.Empty(t, term.Writes)
}

// The recurring clock task drives a label through the state tree.
func TestScheduledTaskUpdatesUI(t *testing.T) {
	ui, _, clock := testUI(t, simpleUI, 20, 5)
	ticks := 0
	ui.scheduler.ScheduleRecurring("title", func(ctx *Context) bool {
		ticks++
		state, err := ctx.States.GetByID("title")
		if err != nil {
			return false
		}
		state.Label.Text.Set("tick")
		ctx.Scheduler.UpdateWidget(state.Path)
		return ticks < 2
	}, 50*time.Millisecond)

	clock.Advance(50 * time.Millisecond)
	step(t, ui)
	state, _ := ui.states.GetByID("title")
	assert.Equal(t, "tick", state.Label.Text.Get())
	assert.Equal(t, 1, ticks)

	clock.Advance(time.Second)
	step(t, ui)
	clock.Advance(time.Second)
	step(t, ui)
	assert.Equal(t, 2, ticks, "task cancelled itself after two runs")
}

func TestCreateWidgetAtRuntime(t *testing.T) {
	ui, _, _ := testUI(t, simpleUI, 20, 5)

	widget, states, err := ui.PrepareCreateWidget("label", "extra", "/root")
	assert.NoError(t, err)
	assert.Equal(t, "/root/extra", widget.Path())

	assert.NoError(t, ui.CreateWidget(widget, states))
	assert.NotNil(t, ui.states.Get("/root/extra"))
	assert.NotNil(t, ui.root.Find("extra"))

	// Same id again collides.
	widget2, states2, err := ui.PrepareCreateWidget("label", "extra", "/root")
	assert.NoError(t, err)
	assert.ErrorIs(t, ui.CreateWidget(widget2, states2), ErrIDCollision)

	// Missing parent is rejected.
	widget3, states3, err := ui.PrepareCreateWidget("label", "lost", "/root/nowhere")
	assert.NoError(t, err)
	assert.ErrorIs(t, ui.CreateWidget(widget3, states3), ErrNoSuchParent)
}

func TestRemoveWidgetDetaches(t *testing.T) {
	ui, _, _ := testUI(t, simpleUI, 20, 5)
	assert.NoError(t, ui.RemoveWidget("title"))
	assert.Nil(t, ui.states.Get("/root/title"))
	assert.Nil(t, ui.root.Find("title"))
	assert.ErrorIs(t, ui.RemoveWidget("title"), ErrNoSuchWidget)
}

func TestCallbackConfigSetVersusUpdate(t *testing.T) {
	ui, _, _ := testUI(t, simpleUI, 20, 5)

	pressed, selected := 0, 0
	assert.NoError(t, ui.SetCallbackConfig("ok", &CallbackConfig{
		OnPress: func(*Context) bool { pressed++; return true },
	}))
	assert.NoError(t, ui.UpdateCallbackConfig("ok", &CallbackConfig{
		OnSelect: func(*Context) bool { selected++; return true },
	}))

	// Update keeps the earlier on_press.
	ui.invokeCallback("/root/ok", func(c *CallbackConfig) Callback { return c.OnPress })
	assert.Equal(t, 1, pressed)

	// Set replaces everything.
	assert.NoError(t, ui.SetCallbackConfig("ok", &CallbackConfig{}))
	ui.invokeCallback("/root/ok", func(c *CallbackConfig) Callback { return c.OnPress })
	assert.Equal(t, 1, pressed)

	assert.ErrorIs(t, ui.SetCallbackConfig("ghost", &CallbackConfig{}), ErrNoSuchWidget)
	_ = selected
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitTerminal, ExitCode(ErrInitFailed))
	assert.Equal(t, ExitParse, ExitCode(&ParseError{Kind: BadIndent, Line: 3}))
}
