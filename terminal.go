package flechtwerk

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// Write is one batched terminal write: a run of adjacent cells on the
// same row sharing one style.
type Write struct {
	X, Y      int
	Glyphs    []string
	Fg, Bg    Color
	Underline bool
}

// Terminal is the narrow interface the framework needs from the raw
// terminal: styled cell writes, cursor control, size, raw-mode lifetime
// and the input event stream. The production implementation wraps tcell;
// tests use an in-memory fake that records writes.
type Terminal interface {
	// Init enters raw mode and the alternate screen. It fails with
	// ErrInitFailed when no terminal is attached.
	Init() error

	// Fini leaves raw mode and restores the terminal. Safe to call more
	// than once; Run calls it on every exit path including panics.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (int, int)

	// Apply draws one write run.
	Apply(Write) error

	// ShowCursor places and shows the text cursor.
	ShowCursor(x, y int)

	// HideCursor hides the text cursor.
	HideCursor()

	// Show makes all writes since the last Show visible.
	Show() error

	// Clear erases the screen.
	Clear()

	// Events returns the input event channel. The channel is closed
	// when the terminal is finalized.
	Events() <-chan Event
}

// tcellTerminal is the production terminal driver.
type tcellTerminal struct {
	screen tcell.Screen
	events chan Event
	quit   chan struct{}
}

// NewTerminal creates the tcell-backed terminal driver.
func NewTerminal() Terminal {
	return &tcellTerminal{
		events: make(chan Event, 16),
		quit:   make(chan struct{}),
	}
}

func (t *tcellTerminal) Init() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: stdin is not a terminal", ErrInitFailed)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	screen.EnableMouse()
	screen.EnablePaste()
	screen.Clear()
	t.screen = screen
	go t.poll()
	return nil
}

func (t *tcellTerminal) Fini() {
	if t.screen != nil {
		select {
		case <-t.quit:
		default:
			close(t.quit)
		}
		t.screen.Fini()
		t.screen = nil
	}
}

func (t *tcellTerminal) Size() (int, int) {
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

func (t *tcellTerminal) Apply(w Write) error {
	if t.screen == nil {
		return ErrWriteFailed
	}
	style := tcell.StyleDefault.
		Foreground(w.Fg.Tcell()).
		Background(w.Bg.Tcell()).
		Underline(w.Underline)
	for i, glyph := range w.Glyphs {
		runes := []rune(glyph)
		if len(runes) == 0 {
			runes = []rune{' '}
		}
		t.screen.SetContent(w.X+i, w.Y, runes[0], runes[1:], style)
	}
	return nil
}

func (t *tcellTerminal) ShowCursor(x, y int) {
	if t.screen != nil {
		t.screen.ShowCursor(x, y)
	}
}

func (t *tcellTerminal) HideCursor() {
	if t.screen != nil {
		t.screen.HideCursor()
	}
}

func (t *tcellTerminal) Show() error {
	if t.screen == nil {
		return ErrWriteFailed
	}
	t.screen.Show()
	return nil
}

func (t *tcellTerminal) Clear() {
	if t.screen != nil {
		t.screen.Clear()
	}
}

func (t *tcellTerminal) Events() <-chan Event { return t.events }

// poll runs on its own goroutine, translating tcell events into the
// framework event types until the terminal is finalized.
func (t *tcellTerminal) poll() {
	defer close(t.events)
	for {
		select {
		case <-t.quit:
			return
		default:
		}
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if translated := translate(ev); translated != nil {
			select {
			case t.events <- translated:
			case <-t.quit:
				return
			}
		}
	}
}

// translate maps a tcell event to the framework event model. Unsupported
// events yield nil.
func translate(ev tcell.Event) Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		var mod Modifiers
		if ev.Modifiers()&tcell.ModShift != 0 {
			mod |= ModShift
		}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			mod |= ModCtrl
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			mod |= ModAlt
		}
		switch ev.Key() {
		case tcell.KeyRune:
			return KeyEvent{Key: KeyRune, Rune: ev.Rune(), Mod: mod}
		case tcell.KeyEnter:
			return KeyEvent{Key: KeyEnter, Mod: mod}
		case tcell.KeyEscape:
			return KeyEvent{Key: KeyEsc, Mod: mod}
		case tcell.KeyTab:
			return KeyEvent{Key: KeyTab, Mod: mod}
		case tcell.KeyBacktab:
			return KeyEvent{Key: KeyBacktab, Mod: mod | ModShift}
		case tcell.KeyUp:
			return KeyEvent{Key: KeyUp, Mod: mod}
		case tcell.KeyDown:
			return KeyEvent{Key: KeyDown, Mod: mod}
		case tcell.KeyLeft:
			return KeyEvent{Key: KeyLeft, Mod: mod}
		case tcell.KeyRight:
			return KeyEvent{Key: KeyRight, Mod: mod}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return KeyEvent{Key: KeyBackspace, Mod: mod}
		case tcell.KeyDelete:
			return KeyEvent{Key: KeyDelete, Mod: mod}
		case tcell.KeyHome:
			return KeyEvent{Key: KeyHome, Mod: mod}
		case tcell.KeyEnd:
			return KeyEvent{Key: KeyEnd, Mod: mod}
		case tcell.KeyPgUp:
			return KeyEvent{Key: KeyPgUp, Mod: mod}
		case tcell.KeyPgDn:
			return KeyEvent{Key: KeyPgDn, Mod: mod}
		case tcell.KeyCtrlC:
			return KeyEvent{Key: KeyCtrlC, Mod: mod | ModCtrl}
		case tcell.KeyCtrlV:
			return KeyEvent{Key: KeyCtrlV, Mod: mod | ModCtrl}
		}
		return nil
	case *tcell.EventMouse:
		x, y := ev.Position()
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			return MouseEvent{Kind: MouseWheelUp, X: x, Y: y}
		case ev.Buttons()&tcell.WheelDown != 0:
			return MouseEvent{Kind: MouseWheelDown, X: x, Y: y}
		case ev.Buttons()&tcell.Button1 != 0:
			return MouseEvent{Kind: MousePress, X: x, Y: y}
		default:
			return MouseEvent{Kind: MouseMove, X: x, Y: y}
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		return ResizeEvent{Width: w, Height: h}
	case *tcell.EventPaste:
		return nil
	}
	return nil
}
