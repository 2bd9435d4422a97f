package flechtwerk

import (
	"fmt"
	"strings"
)

// StateTree is the authoritative runtime view of the UI: a mapping from
// widget path to state record. Every widget in the widget tree has exactly
// one record here at the same path. Records are additionally indexed by
// bare id for O(1) lookup; looking up an id that occurs more than once
// returns ErrAmbiguousID.
type StateTree struct {
	records map[string]*State
	ids     map[string][]string
}

// NewStateTree creates an empty state tree.
func NewStateTree() *StateTree {
	return &StateTree{
		records: make(map[string]*State),
		ids:     make(map[string][]string),
	}
}

// Get returns the record at the given path, or nil.
func (t *StateTree) Get(path string) *State {
	return t.records[path]
}

// GetByID returns the record whose widget id matches. Ids are the last
// path segment; an id used by more than one widget is an error.
func (t *StateTree) GetByID(id string) (*State, error) {
	paths := t.ids[id]
	switch len(paths) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoSuchWidget, id)
	case 1:
		return t.records[paths[0]], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
}

// Resolve accepts either a full path or a bare id and returns the record.
func (t *StateTree) Resolve(pathOrID string) (*State, error) {
	if strings.HasPrefix(pathOrID, "/") {
		s := t.Get(pathOrID)
		if s == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchWidget, pathOrID)
		}
		return s, nil
	}
	return t.GetByID(pathOrID)
}

// Insert adds a record under the given path. Inserting over an existing
// path replaces the record and is the caller's responsibility to avoid.
func (t *StateTree) Insert(path string, state *State) {
	if _, ok := t.records[path]; ok {
		t.dropID(id(path), path)
	}
	state.Path = path
	t.records[path] = state
	t.ids[id(path)] = append(t.ids[id(path)], path)
}

// Remove deletes the record at the given path. Returns the removed record
// or nil.
func (t *StateTree) Remove(path string) *State {
	state, ok := t.records[path]
	if !ok {
		return nil
	}
	delete(t.records, path)
	t.dropID(id(path), path)
	return state
}

// RemoveSubtree deletes the record at the path and every record below it.
// Returns the removed paths.
func (t *StateTree) RemoveSubtree(path string) []string {
	removed := make([]string, 0)
	for p := range t.records {
		if p == path || strings.HasPrefix(p, path+"/") {
			removed = append(removed, p)
		}
	}
	for _, p := range removed {
		delete(t.records, p)
		t.dropID(id(p), p)
	}
	return removed
}

// Paths returns all record paths. Order is unspecified.
func (t *StateTree) Paths() []string {
	paths := make([]string, 0, len(t.records))
	for p := range t.records {
		paths = append(paths, p)
	}
	return paths
}

// Len returns the number of records.
func (t *StateTree) Len() int {
	return len(t.records)
}

func (t *StateTree) dropID(id, path string) {
	paths := t.ids[id]
	for i, p := range paths {
		if p == path {
			t.ids[id] = append(paths[:i], paths[i+1:]...)
			break
		}
	}
	if len(t.ids[id]) == 0 {
		delete(t.ids, id)
	}
}

// id extracts the last segment of a path.
func id(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
