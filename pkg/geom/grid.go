package geom

// Deltas returns start followed by the cumulative sums of deltas.
func Deltas(start Point, deltas []Point) []Point {
	out := make([]Point, 0, len(deltas)+1)
	out = append(out, start)
	p := start
	for _, d := range deltas {
		p = p.Add(d)
		out = append(out, p)
	}
	return out
}

// HorizontalDeltas is Deltas restricted to horizontal steps.
func HorizontalDeltas(start Point, deltas []float64) []Point {
	out := make([]Point, 0, len(deltas)+1)
	out = append(out, start)
	p := start
	for _, d := range deltas {
		p = p.TranslateX(d)
		out = append(out, p)
	}
	return out
}

// VerticalDeltas is Deltas restricted to vertical steps.
func VerticalDeltas(start Point, deltas []float64) []Point {
	out := make([]Point, 0, len(deltas)+1)
	out = append(out, start)
	p := start
	for _, d := range deltas {
		p = p.TranslateY(d)
		out = append(out, p)
	}
	return out
}

// Grid returns the (rows+1) x (cols+1) lattice of cell corners, row by row
// from the top.
func Grid(topLeft Point, rows, cols int, cellWidth, cellHeight float64) [][]Point {
	if rows < 0 || cols < 0 {
		return nil
	}
	out := make([][]Point, rows+1)
	for i := range out {
		row := make([]Point, cols+1)
		for j := range row {
			row[j] = topLeft.Translate(float64(j)*cellWidth, -float64(i)*cellHeight)
		}
		out[i] = row
	}
	return out
}

// IrregularGrid is Grid with per-column widths and per-row heights.
func IrregularGrid(topLeft Point, columnWidths, rowHeights []float64) [][]Point {
	out := make([][]Point, 0, len(rowHeights)+1)
	p := topLeft
	out = append(out, HorizontalDeltas(p, columnWidths))
	for _, h := range rowHeights {
		p = p.TranslateY(-h)
		out = append(out, HorizontalDeltas(p, columnWidths))
	}
	return out
}
