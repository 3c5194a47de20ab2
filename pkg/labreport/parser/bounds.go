package parser

import (
	"strings"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
)

// ImageAnchor is an embedded image and the cell it is anchored to (0-based).
type ImageAnchor struct {
	Row   int
	Col   int
	Image models.Image
}

// gridBounds returns the row and column count needed to cover every
// non-empty text cell and every image anchor.
func gridBounds(rows [][]string, anchors []ImageAnchor) (nRows, nCols int) {
	maxRow, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	for _, a := range anchors {
		if a.Row > maxRow {
			maxRow = a.Row
		}
		if a.Col > maxCol {
			maxCol = a.Col
		}
	}

	if maxRow < 0 || maxCol < 0 {
		return 0, 0
	}
	return maxRow + 1, maxCol + 1
}

// nonEmptyCells returns the non-empty cells of a grid row in column order.
func nonEmptyCells(row []models.Value) []models.Value {
	var out []models.Value
	for _, v := range row {
		if !v.IsEmpty() {
			out = append(out, v)
		}
	}
	return out
}

// joinRow joins the wire form of every non-empty cell with a single space.
func joinRow(row []models.Value) string {
	cells := nonEmptyCells(row)
	parts := make([]string, len(cells))
	for i, v := range cells {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// isBlankRow reports whether every cell of a row is empty.
func isBlankRow(row []models.Value) bool {
	for _, v := range row {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}
