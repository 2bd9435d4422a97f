package flechtwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTreeLookup(t *testing.T) {
	tree := NewStateTree()
	tree.Insert("/root", NewState(KindLayout))
	tree.Insert("/root/a", NewState(KindLabel))

	assert.NotNil(t, tree.Get("/root/a"))
	assert.Nil(t, tree.Get("/root/missing"))

	state, err := tree.GetByID("a")
	assert.NoError(t, err)
	assert.Equal(t, "/root/a", state.Path)
}

func TestStateTreeAmbiguousID(t *testing.T) {
	tree := NewStateTree()
	tree.Insert("/root/left/ok", NewState(KindButton))
	tree.Insert("/root/right/ok", NewState(KindButton))

	_, err := tree.GetByID("ok")
	assert.ErrorIs(t, err, ErrAmbiguousID)
}

func TestStateTreeMissingID(t *testing.T) {
	tree := NewStateTree()
	_, err := tree.GetByID("nope")
	assert.ErrorIs(t, err, ErrNoSuchWidget)
}

func TestStateTreeRemoveSubtree(t *testing.T) {
	tree := NewStateTree()
	tree.Insert("/root", NewState(KindLayout))
	tree.Insert("/root/modal0", NewState(KindLayout))
	tree.Insert("/root/modal0/ok", NewState(KindButton))
	tree.Insert("/root/other", NewState(KindLabel))

	removed := tree.RemoveSubtree("/root/modal0")
	assert.Len(t, removed, 2)
	assert.Nil(t, tree.Get("/root/modal0"))
	assert.Nil(t, tree.Get("/root/modal0/ok"))
	assert.NotNil(t, tree.Get("/root/other"))

	_, err := tree.GetByID("ok")
	assert.ErrorIs(t, err, ErrNoSuchWidget)
}

func TestStateTreeResolve(t *testing.T) {
	tree := NewStateTree()
	tree.Insert("/root/b", NewState(KindButton))

	byPath, err := tree.Resolve("/root/b")
	assert.NoError(t, err)
	byID, err2 := tree.Resolve("b")
	assert.NoError(t, err2)
	assert.Same(t, byPath, byID)
}

func TestStateCellAccess(t *testing.T) {
	state := NewState(KindSlider)
	cell, err := state.Cell("value")
	assert.NoError(t, err)
	cell.SetAny(30)
	assert.Equal(t, 30, state.Slider.Value.Get())

	_, err = state.Cell("text")
	assert.Error(t, err)
}
