package models

// Grid is the dense cell matrix of a worksheet. Every row has the same length.
type Grid struct {
	// Rows holds the cells, row-major, 0-based.
	Rows [][]Value
}

// NewGrid allocates a grid of rows x cols empty cells.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{Rows: make([][]Value, rows)}
	for i := range g.Rows {
		g.Rows[i] = make([]Value, cols)
	}
	return g
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int { return len(g.Rows) }

// ColCount returns the number of columns.
func (g *Grid) ColCount() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Cell returns the cell at (row, col). ok is false outside the grid.
func (g *Grid) Cell(row, col int) (v Value, ok bool) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return Value{}, false
	}
	return g.Rows[row][col], true
}

// Set replaces the cell at (row, col). Out-of-range writes are ignored.
func (g *Grid) Set(row, col int, v Value) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return
	}
	g.Rows[row][col] = v
}

// AddImage appends img to the cell at (row, col) after any existing content.
func (g *Grid) AddImage(row, col int, img Image) {
	v, ok := g.Cell(row, col)
	if !ok {
		return
	}
	g.Rows[row][col] = v.Merge(NewValue("", img))
}
