package flechtwerk

// layoutFloat positions children absolutely by their own x, y or pos
// hints; children are sized independently and overflow is clipped during
// composition.
func layoutFloat(widget *Widget, s *State, states *StateTree, availW, availH int) {
	for _, child := range widget.Children() {
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		resolveSize(child, cs, states, availW, availH)
		x, y := applyPosHints(cs, availW, availH)
		cs.X.Set(max(0, x))
		cs.Y.Set(max(0, y))
	}
	contentExtents(widget, s, states)
}
