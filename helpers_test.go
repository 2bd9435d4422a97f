package flechtwerk

import (
	"testing"
	"time"
)

// timeout returns a channel that fires after a test deadline.
func timeout(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}

// testUI assembles a running-but-not-looping UI on a fake terminal and a
// fake clock, lays it out and draws the first frame. Tests drive it by
// calling dispatch and frame directly.
func testUI(t *testing.T, source string, w, h int) (*UI, *FakeTerminal, *FakeClock) {
	t.Helper()
	def, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	clock := NewFakeClock()
	scheduler := NewSchedulerWithClock(clock)
	root, states, err := BuildUI(def, scheduler, t.TempDir())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	term := NewFakeTerminal(w, h)
	ui := NewUI(root, states, scheduler, term)
	ui.def = def
	ui.width, ui.height = w, h
	ui.needLayout = true
	if err := ui.frame(); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	ui.selectFirst()
	if err := ui.frame(); err != nil {
		t.Fatalf("second frame: %v", err)
	}
	return ui, term, clock
}

// step advances one frame and fails the test on terminal errors.
func step(t *testing.T, ui *UI) {
	t.Helper()
	if err := ui.frame(); err != nil {
		t.Fatalf("frame: %v", err)
	}
}
