package flechtwerk

import (
	"strings"
)

// Kind identifies the concrete widget variant a tree node represents.
// Widgets are a tagged variant rather than an interface hierarchy: the
// shared fields live in the flat state record, kind-specific fields in
// the state's payload, and rendering and input handling dispatch on the
// kind.
type Kind string

const (
	KindLayout      Kind = "layout"
	KindLabel       Kind = "label"
	KindButton      Kind = "button"
	KindCheckbox    Kind = "checkbox"
	KindRadioButton Kind = "radio_button"
	KindDropdown    Kind = "dropdown"
	KindSlider      Kind = "slider"
	KindProgressBar Kind = "progress_bar"
	KindTextInput   Kind = "text_input"
	KindCanvas      Kind = "canvas"
)

// KindFromName resolves a declarative-file type name to a widget kind.
// Returns false for unknown names (which may still be template names).
func KindFromName(name string) (Kind, bool) {
	switch Kind(name) {
	case KindLayout, KindLabel, KindButton, KindCheckbox, KindRadioButton,
		KindDropdown, KindSlider, KindProgressBar, KindTextInput, KindCanvas:
		return Kind(name), true
	}
	return "", false
}

// Widget is a node in the widget tree. Every widget is identified by a
// unique path of the form /root/parent/.../id; the parallel state record
// in the state tree is keyed by the same path. Parent links are plain
// pointers, traversals never own their targets.
type Widget struct {
	id       string
	path     string
	kind     Kind
	parent   *Widget
	children []*Widget
}

// NewWidget creates a detached widget node.
func NewWidget(kind Kind, id string) *Widget {
	return &Widget{id: id, kind: kind}
}

// ID returns the widget id, the last path segment.
func (w *Widget) ID() string { return w.id }

// Path returns the full widget path.
func (w *Widget) Path() string { return w.path }

// Kind returns the widget kind.
func (w *Widget) Kind() Kind { return w.kind }

// Parent returns the parent widget, nil for the root.
func (w *Widget) Parent() *Widget { return w.parent }

// Children returns the ordered child list. Only layouts have children.
func (w *Widget) Children() []*Widget { return w.children }

// Add appends a child and links its parent pointer. Paths are not
// re-derived automatically; call PropagatePaths on the root after
// structural mutations.
func (w *Widget) Add(child *Widget) {
	child.parent = w
	w.children = append(w.children, child)
}

// Remove detaches the child with the given id. Returns false if no direct
// child has that id.
func (w *Widget) Remove(id string) bool {
	for i, child := range w.children {
		if child.id == id {
			child.parent = nil
			w.children = append(w.children[:i], w.children[i+1:]...)
			return true
		}
	}
	return false
}

// SetPath overrides the widget path. Used by the template expander when
// materializing subtrees before they are attached.
func (w *Widget) SetPath(path string) { w.path = path }

// PropagatePaths re-derives the path of this widget and every descendant
// from the id chain. Must be called on the root (or a modal subtree root
// with its path pre-set) after any structural mutation.
func (w *Widget) PropagatePaths() {
	if w.parent == nil && w.path == "" {
		w.path = "/" + w.id
	}
	for _, child := range w.children {
		child.path = w.path + "/" + child.id
		child.PropagatePaths()
	}
}

// Find searches the subtree for a widget with the given id and returns
// it, or nil. Depth first, first match wins.
func (w *Widget) Find(id string) *Widget {
	if w.id == id {
		return w
	}
	for _, child := range w.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// FindPath searches the subtree for a widget with the given full path.
func (w *Widget) FindPath(path string) *Widget {
	if w.path == path {
		return w
	}
	if w.path != "" && !strings.HasPrefix(path, w.path+"/") {
		return nil
	}
	for _, child := range w.children {
		if found := child.FindPath(path); found != nil {
			return found
		}
	}
	return nil
}

// Traverse visits the widget and every descendant depth first.
func (w *Widget) Traverse(fn func(*Widget)) {
	fn(w)
	for _, child := range w.children {
		child.Traverse(fn)
	}
}
