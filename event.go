package flechtwerk

// Key identifies a keyboard key. Printable characters arrive as KeyRune
// with the rune set.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeyTab
	KeyBacktab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyCtrlC
	KeyCtrlV
)

// Modifiers is a bit set of modifier keys held during a key event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Event is anything the terminal driver can deliver: key, mouse, resize
// or paste.
type Event interface{ isEvent() }

// KeyEvent is a key press.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Modifiers
}

// MouseKind distinguishes the mouse event variants.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MousePress
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)

// MouseEvent is a mouse action at absolute screen coordinates.
type MouseEvent struct {
	Kind MouseKind
	X, Y int
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

// PasteEvent delivers bracketed-paste text in one piece.
type PasteEvent struct {
	Text string
}

func (KeyEvent) isEvent()    {}
func (MouseEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}
func (PasteEvent) isEvent()  {}
