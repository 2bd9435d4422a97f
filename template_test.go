package flechtwerk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func build(t *testing.T, source string) (*Widget, *StateTree, *Scheduler) {
	t.Helper()
	def, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	scheduler := NewSchedulerWithClock(NewFakeClock())
	root, states, err := BuildUI(def, scheduler, t.TempDir())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return root, states, scheduler
}

func TestBuildPaths(t *testing.T) {
	root, states, _ := build(t, simpleUI)
	assert.Equal(t, "/root", root.Path())
	assert.NotNil(t, states.Get("/root/title"))
	assert.NotNil(t, states.Get("/root/ok"))
	assert.Equal(t, states.Len(), 3)
}

func TestTemplateExpansion(t *testing.T) {
	root, states, _ := build(t, `
- Row: layout
    mode: box
    orientation: horizontal
    - label: left
        text: L
    - label: right
        text: R
- layout: root
    mode: box
    - Row: first
    - Row: second
`)
	assert.NotNil(t, root.Find("first"))
	assert.NotNil(t, states.Get("/root/first/left"))
	assert.NotNil(t, states.Get("/root/second/right"))
	assert.Equal(t, KindLayout, root.Find("second").Kind())
}

func TestTemplateReferencingTemplate(t *testing.T) {
	_, states, _ := build(t, `
- Inner: label
    text: nested
- Outer: layout
    mode: box
    - Inner: content
- layout: root
    mode: box
    - Outer: box1
`)
	state := states.Get("/root/box1/content")
	assert.NotNil(t, state)
	assert.Equal(t, "nested", state.Label.Text.Get())
}

func TestTemplateCycle(t *testing.T) {
	def, err := Parse(`
- Loop: layout
    mode: box
    - Loop: again
- layout: root
    mode: box
    - Loop: start
`)
	assert.NoError(t, err)
	_, _, err = BuildUI(def, NewSchedulerWithClock(NewFakeClock()), t.TempDir())
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, CycleInTemplate, parseErr.Kind)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "content.txt"), []byte("from disk\n"), 0o644)
	assert.NoError(t, err)

	def, err := Parse(`
- layout: root
    mode: box
    - label: text
        from_file: content.txt
`)
	assert.NoError(t, err)
	_, states, err := BuildUI(def, NewSchedulerWithClock(NewFakeClock()), dir)
	assert.NoError(t, err)
	state := states.Get("/root/text")
	assert.Equal(t, "from disk", state.Label.Text.Get())
}

func TestPropertyReferenceSubscription(t *testing.T) {
	root, states, scheduler := build(t, `
- layout: root
    mode: box
    - text_input: name
        text: initial
    - label: echo
        text: name.text
`)
	_ = root
	echo := states.Get("/root/echo")
	// The reference takes the source's current value at build time.
	assert.Equal(t, "initial", echo.Label.Text.Get())

	// A change propagates on the next drain.
	states.Get("/root/name").TextInput.Text.Set("typed")
	dirty := scheduler.Drain(states, func(id string) *Context {
		return &Context{Path: id, States: states, Scheduler: scheduler}
	})
	assert.Contains(t, dirty, "/root/echo")
	assert.Equal(t, "typed", echo.Label.Text.Get())
}

func TestUnknownTemplate(t *testing.T) {
	def, err := Parse(`
- layout: root
    mode: box
    - Missing: thing
`)
	assert.NoError(t, err)
	_, _, err = BuildUI(def, NewSchedulerWithClock(NewFakeClock()), t.TempDir())
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, UnknownKind, parseErr.Kind)
}
