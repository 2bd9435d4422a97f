package flechtwerk

// layoutTable arranges children in a fixed rows by cols grid, one child
// per cell in row-major order. A column's width is the child's fractional
// hint if set, else parent/cols when force_default_size_x is on, else the
// widest natural size requested in that column; rows likewise.
func layoutTable(widget *Widget, s *State, states *StateTree, availW, availH int) {
	children := widget.Children()
	rows, cols := s.Layout.Rows.Get(), s.Layout.Cols.Get()
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = (len(children) + cols - 1) / cols
		if rows == 0 {
			rows = 1
		}
	}

	colWidths := make([]int, cols)
	rowHeights := make([]int, rows)
	forceW := s.Layout.ForceDefaultWidth.Get()
	forceH := s.Layout.ForceDefaultHeight.Get()

	for i, child := range children {
		if i >= rows*cols {
			break
		}
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		row, col := i/cols, i%cols

		w, h := naturalSize(child, cs, states)
		if hint := cs.SizeHintX.Get(); !hint.None && hint.Fraction != 1.0 {
			w = roundHint(hint.Fraction, availW)
		} else if forceW {
			w = availW / cols
		}
		if hint := cs.SizeHintY.Get(); !hint.None && hint.Fraction != 1.0 {
			h = roundHint(hint.Fraction, availH)
		} else if forceH {
			h = availH / rows
		}
		colWidths[col] = max(colWidths[col], w)
		rowHeights[row] = max(rowHeights[row], h)
	}

	colX := make([]int, cols)
	for c := 1; c < cols; c++ {
		colX[c] = colX[c-1] + colWidths[c-1]
	}
	rowY := make([]int, rows)
	for r := 1; r < rows; r++ {
		rowY[r] = rowY[r-1] + rowHeights[r-1]
	}

	for i, child := range children {
		if i >= rows*cols {
			break
		}
		cs := states.Get(child.Path())
		if cs == nil {
			continue
		}
		row, col := i/cols, i%cols
		w, h := colWidths[col], rowHeights[row]
		cs.Width.Set(w)
		cs.Height.Set(h)
		computeEffective(cs, w, h)
		cs.X.Set(colX[col])
		cs.Y.Set(rowY[row])
	}
	contentExtents(widget, s, states)
}
