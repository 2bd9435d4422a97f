package flechtwerk

// FakeTerminal is an in-memory terminal driver for tests. It records
// every write run, keeps a glyph grid that tests can assert on, and lets
// tests inject input events.
type FakeTerminal struct {
	W, H      int
	Cells     map[[2]int]Pixel
	Writes    []Write
	CursorX   int
	CursorY   int
	CursorOn  bool
	Inited    bool
	Finished  bool
	FailApply int // fail the next n Apply calls with ErrWriteFailed
	events    chan Event
}

// NewFakeTerminal creates a fake terminal of the given size.
func NewFakeTerminal(w, h int) *FakeTerminal {
	return &FakeTerminal{
		W: w, H: h,
		Cells:   make(map[[2]int]Pixel),
		CursorX: -1, CursorY: -1,
		events: make(chan Event, 64),
	}
}

func (t *FakeTerminal) Init() error {
	t.Inited = true
	return nil
}

func (t *FakeTerminal) Fini() { t.Finished = true }

func (t *FakeTerminal) Size() (int, int) { return t.W, t.H }

func (t *FakeTerminal) Apply(w Write) error {
	if t.FailApply > 0 {
		t.FailApply--
		return ErrWriteFailed
	}
	t.Writes = append(t.Writes, w)
	for i, glyph := range w.Glyphs {
		t.Cells[[2]int{w.X + i, w.Y}] = Pixel{Glyph: glyph, Fg: w.Fg, Bg: w.Bg, Underline: w.Underline}
	}
	return nil
}

func (t *FakeTerminal) ShowCursor(x, y int) {
	t.CursorX, t.CursorY, t.CursorOn = x, y, true
}

func (t *FakeTerminal) HideCursor() { t.CursorOn = false }

func (t *FakeTerminal) Show() error { return nil }

func (t *FakeTerminal) Clear() { t.Cells = make(map[[2]int]Pixel) }

func (t *FakeTerminal) Events() <-chan Event { return t.events }

// Push injects an input event as if the user had produced it.
func (t *FakeTerminal) Push(ev Event) { t.events <- ev }

// CloseEvents closes the event stream, ending a running loop's input.
func (t *FakeTerminal) CloseEvents() { close(t.events) }

// Glyph returns the glyph last written at (x, y), or a space.
func (t *FakeTerminal) Glyph(x, y int) string {
	if p, ok := t.Cells[[2]int{x, y}]; ok {
		return p.Glyph
	}
	return " "
}

// ResetWrites clears the recorded writes, keeping the cell grid.
func (t *FakeTerminal) ResetWrites() { t.Writes = nil }
