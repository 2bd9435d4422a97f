package flechtwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const simpleUI = `
# comment line
- layout: root
    mode: box
    orientation: vertical
    - label: title
        text: hello
    - button: ok
        text: OK
`

func TestParseSimple(t *testing.T) {
	def, err := Parse(simpleUI)
	assert.NoError(t, err)
	assert.Equal(t, "root", def.Root.ID)
	assert.Len(t, def.Root.Children, 2)
	assert.Equal(t, "label", def.Root.Children[0].Type)
	assert.Equal(t, "title", def.Root.Children[0].ID)
	assert.Equal(t, []PropertyLine{{Name: "mode", Value: "box", Line: 4},
		{Name: "orientation", Value: "vertical", Line: 5}}, def.Root.Properties)
}

func TestParseBadIndent(t *testing.T) {
	_, err := Parse("- layout: root\n   mode: box\n")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, BadIndent, parseErr.Kind)
	assert.Equal(t, 2, parseErr.Line)
}

func TestParseIndentJump(t *testing.T) {
	_, err := Parse("- layout: root\n        - label: deep\n")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, BadIndent, parseErr.Kind)
}

func TestParseRootMustBeLayout(t *testing.T) {
	_, err := Parse("- label: root\n    text: x\n")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, UnknownKind, parseErr.Kind)
}

func TestParseSingleRoot(t *testing.T) {
	_, err := Parse("- layout: a\n- layout: b\n")
	assert.Error(t, err)
}

func TestParseTemplatesCollected(t *testing.T) {
	def, err := Parse(`
- Dialog: layout
    border_enabled: true
- layout: root
    mode: box
`)
	assert.NoError(t, err)
	assert.Contains(t, def.Templates, "Dialog")
	assert.Equal(t, "layout", def.Templates["Dialog"].ID)
}

// Round trip: parsing, emitting the canonical form and re-parsing yields
// an identical widget and property tree.
func TestParseRoundTrip(t *testing.T) {
	first, err := Parse(simpleUI)
	assert.NoError(t, err)
	canonical := first.Emit()
	second, err := Parse(canonical)
	assert.NoError(t, err)
	// Line numbers differ between the sources, the trees must not.
	assert.Equal(t, canonical, second.Emit())
	assert.Equal(t, len(first.Root.Children), len(second.Root.Children))
}

func TestIsReference(t *testing.T) {
	tests := []struct {
		raw    string
		target string
		prop   string
		ok     bool
	}{
		{"parent.width", "parent", "width", true},
		{"root.bg", "root", "bg", true},
		{"my_button.text", "my_button", "text", true},
		{"0.5", "", "", false},
		{"10,20,30", "", "", false},
		{"hello", "", "", false},
	}
	for _, test := range tests {
		target, prop, ok := IsReference(test.raw)
		assert.Equal(t, test.ok, ok, test.raw)
		if ok {
			assert.Equal(t, test.target, target)
			assert.Equal(t, test.prop, prop)
		}
	}
}

func TestApplyUnknownProp(t *testing.T) {
	state := NewState(KindLabel)
	err := state.Apply("title", "no_such_prop", "1")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, UnknownProp, parseErr.Kind)
}

func TestApplyBadValue(t *testing.T) {
	state := NewState(KindSlider)
	err := state.Apply("s", "value", "many")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, BadValue, parseErr.Kind)
}

func TestValueParsers(t *testing.T) {
	color, err := ParseColor("255, 0, 0")
	assert.NoError(t, err)
	assert.True(t, color.RGB)
	assert.Equal(t, int32(255), color.R)

	_, err = ParseColor("1,2")
	assert.Error(t, err)

	hint, err := ParseSizeHint("1/3")
	assert.NoError(t, err)
	assert.InDelta(t, 0.333, hint.Fraction, 0.001)

	hint, err = ParseSizeHint("none")
	assert.NoError(t, err)
	assert.True(t, hint.None)

	pos, err := ParseHPosHint("center:0.5")
	assert.NoError(t, err)
	assert.Equal(t, AlignCenter, pos.Anchor)
	assert.InDelta(t, 0.5, pos.Fraction, 0.0001)

	vpos, err := ParseVPosHint("bottom")
	assert.NoError(t, err)
	assert.Equal(t, AlignBottom, vpos.Anchor)
	assert.InDelta(t, 1.0, vpos.Fraction, 0.0001)
}
