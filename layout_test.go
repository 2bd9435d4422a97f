package flechtwerk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Two box children with default hints share an 11-cell parent as {5, 6}:
// each gets floor(11/2), the last child takes the remainder.
func TestBoxEqualisation(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: box
    orientation: horizontal
    - layout: left
        mode: box
    - layout: right
        mode: box
`)
	LayoutTree(root, states, 11, 5)
	left := states.Get("/root/left")
	right := states.Get("/root/right")
	assert.Equal(t, 5, left.Width.Get())
	assert.Equal(t, 6, right.Width.Get())
	assert.Equal(t, 0, left.X.Get())
	assert.Equal(t, 5, right.X.Get())
}

// The sizes of default-hinted box children sum to the parent's effective
// size exactly, for any child count.
func TestBoxSizeHintSum(t *testing.T) {
	for n := 1; n <= 7; n++ {
		var sb strings.Builder
		sb.WriteString("- layout: root\n    mode: box\n    orientation: horizontal\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, "    - layout: c%d\n        mode: box\n", i)
		}
		root, states, _ := build(t, sb.String())
		LayoutTree(root, states, 37, 5)
		sum := 0
		for i := 0; i < n; i++ {
			sum += states.Get(fmt.Sprintf("/root/c%d", i)).Width.Get()
		}
		assert.Equal(t, 37, sum, "n=%d", n)
	}
}

func TestBoxExplicitHintsDisableEqualisation(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: box
    orientation: horizontal
    - layout: narrow
        mode: box
        size_hint_x: 0.25
    - layout: wide
        mode: box
        size_hint_x: 0.75
`)
	LayoutTree(root, states, 40, 5)
	assert.Equal(t, 10, states.Get("/root/narrow").Width.Get())
	assert.Equal(t, 30, states.Get("/root/wide").Width.Get())
}

// No widget may stick out of its parent after layout.
func TestLayoutNonOverflow(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: box
    orientation: vertical
    - layout: row
        mode: box
        orientation: horizontal
        - label: a
            text: hello world
        - button: b
            text: OK
    - layout: grid
        mode: table
        rows: 2
        cols: 2
        - label: g1
            text: one
        - label: g2
            text: two
        - label: g3
            text: three
        - label: g4
            text: four
`)
	LayoutTree(root, states, 30, 10)
	root.Traverse(func(w *Widget) {
		if w.Parent() == nil {
			return
		}
		s := states.Get(w.Path())
		p := states.Get(w.Parent().Path())
		assert.GreaterOrEqual(t, s.AbsX, p.AbsX, w.Path())
		assert.GreaterOrEqual(t, s.AbsY, p.AbsY, w.Path())
		assert.LessOrEqual(t, s.AbsX+s.Width.Get(), p.AbsX+p.Width.Get(), w.Path())
		assert.LessOrEqual(t, s.AbsY+s.Height.Get(), p.AbsY+p.Height.Get(), w.Path())
	})
}

func TestEffectiveSizeClamping(t *testing.T) {
	state := NewState(KindLayout)
	state.Border.Enabled.Set(true)
	state.PaddingLeft.Set(3)
	state.PaddingRight.Set(3)
	computeEffective(state, 4, 4)
	assert.Equal(t, 0, state.EffWidth, "negative intermediate clamps to 0")
	assert.Equal(t, 2, state.EffHeight)
}

func TestStackWrap(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: stack
    orientation: lr-tb
    - label: a
        text: aaaa
    - label: b
        text: bbbb
    - label: c
        text: cccc
`)
	LayoutTree(root, states, 10, 6)
	a, b, c := states.Get("/root/a"), states.Get("/root/b"), states.Get("/root/c")
	assert.Equal(t, 0, a.X.Get())
	assert.Equal(t, 0, a.Y.Get())
	assert.Equal(t, 4, b.X.Get())
	assert.Equal(t, 0, b.Y.Get())
	// The third label would overflow the 10-cell row and wraps.
	assert.Equal(t, 0, c.X.Get())
	assert.Equal(t, 1, c.Y.Get())
}

func TestStackFromBottomRight(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: stack
    orientation: rl-bt
    - label: a
        text: xx
`)
	LayoutTree(root, states, 10, 4)
	a := states.Get("/root/a")
	assert.Equal(t, 8, a.X.Get())
	assert.Equal(t, 3, a.Y.Get())
}

func TestTableForcedCellSize(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: table
    rows: 2
    cols: 2
    force_default_size_x: true
    force_default_size_y: true
    - label: a
        text: a
    - label: b
        text: b
    - label: c
        text: c
    - label: d
        text: d
`)
	LayoutTree(root, states, 20, 10)
	d := states.Get("/root/d")
	assert.Equal(t, 10, d.Width.Get())
	assert.Equal(t, 5, d.Height.Get())
	assert.Equal(t, 10, d.X.Get())
	assert.Equal(t, 5, d.Y.Get())
}

func TestFloatPosHints(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: float
    - label: centered
        text: mid
        pos_hint_x: center
        pos_hint_y: middle
    - label: corner
        text: br
        pos_hint_x: right
        pos_hint_y: bottom
`)
	LayoutTree(root, states, 21, 11)
	mid := states.Get("/root/centered")
	assert.Equal(t, 9, mid.X.Get())
	assert.Equal(t, 5, mid.Y.Get())
	corner := states.Get("/root/corner")
	assert.Equal(t, 19, corner.X.Get())
	assert.Equal(t, 10, corner.Y.Get())
}

func TestScreenShowsOnlyActive(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: screen
    active_screen: second
    - layout: first
        mode: box
        - label: l1
            text: one
    - layout: second
        mode: box
        - label: l2
            text: two
`)
	LayoutTree(root, states, 20, 5)
	visible := visibleChildren(root, states.Get("/root"))
	assert.Len(t, visible, 1)
	assert.Equal(t, "second", visible[0].ID())
	assert.Equal(t, 20, states.Get("/root/second").Width.Get())
}

func TestScrollClamping(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: box
    orientation: vertical
    scroll_y_enabled: true
    - label: tall
        text: a
`)
	tall := states.Get("/root/tall")
	tall.Label.Text.Set(strings.Repeat("line\n", 30) + "line")
	s := states.Get("/root")

	s.Layout.ScrollY.Set(1000)
	LayoutTree(root, states, 10, 10)
	assert.Equal(t, 31, s.Layout.ContentHeight)
	assert.Equal(t, 21, s.Layout.ScrollY.Get(), "offset clamps to content minus window")

	s.Layout.ScrollY.Set(-5)
	LayoutTree(root, states, 10, 10)
	assert.Equal(t, 0, s.Layout.ScrollY.Get())
}

func TestAutoScaleWinsOverSizeHint(t *testing.T) {
	root, states, _ := build(t, `
- layout: root
    mode: box
    orientation: horizontal
    - label: l
        text: four
        auto_scale_x: true
        size_hint_x: 0.9
`)
	LayoutTree(root, states, 40, 5)
	assert.Equal(t, 4, states.Get("/root/l").Width.Get())
}
