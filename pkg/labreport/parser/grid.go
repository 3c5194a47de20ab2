// Package parser turns report worksheets into the structured lab model.
package parser

import (
	"fmt"
	"strings"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
	"github.com/xuri/excelize/v2"
)

// ExtractGrid reads a sheet into a dense grid of cell values.
//
// Cell text is the formatted value excelize reports, trimmed. Formula cells
// without a cached result are evaluated before the grid bounds are taken, so
// formula-only rows and columns are kept. When includeImages is set, every
// picture is appended to its anchor cell and the grid grows to cover it.
// The anchors are returned in the order they were placed.
func ExtractGrid(f *excelize.File, sheetName string, includeImages bool) (*models.Grid, []ImageAnchor, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, err
	}
	rows = resolveFormulas(f, sheetName, rows)

	var anchors []ImageAnchor
	if includeImages {
		if anchors, err = extractImages(f, sheetName); err != nil {
			return nil, nil, err
		}
	}

	nRows, nCols := gridBounds(rows, anchors)
	grid := models.NewGrid(nRows, nCols)

	for rowIdx := 0; rowIdx < nRows && rowIdx < len(rows); rowIdx++ {
		for colIdx := 0; colIdx < nCols && colIdx < len(rows[rowIdx]); colIdx++ {
			grid.Set(rowIdx, colIdx, models.TextValue(rows[rowIdx][colIdx]))
		}
	}

	for _, a := range anchors {
		grid.AddImage(a.Row, a.Col, a.Image)
	}

	return grid, anchors, nil
}

// maxFormulaScan bounds the cells a recorded sheet dimension may add to the
// formula scan.
const maxFormulaScan = 1 << 16

// resolveFormulas fills blank cells holding a formula with its computed
// value. The scan covers the text rows and the sheet's used range.
func resolveFormulas(f *excelize.File, sheetName string, rows [][]string) [][]string {
	nRows, nCols := len(rows), 0
	for _, row := range rows {
		nCols = max(nCols, len(row))
	}
	if r, c, ok := sheetExtent(f, sheetName); ok && r*c <= maxFormulaScan {
		nRows, nCols = max(nRows, r), max(nCols, c)
	}

	for rowIdx := 0; rowIdx < nRows; rowIdx++ {
		for colIdx := 0; colIdx < nCols; colIdx++ {
			if rowIdx < len(rows) && colIdx < len(rows[rowIdx]) && strings.TrimSpace(rows[rowIdx][colIdx]) != "" {
				continue
			}
			value := evalFormula(f, sheetName, colIdx+1, rowIdx+1)
			if value == "" {
				continue
			}
			for len(rows) <= rowIdx {
				rows = append(rows, nil)
			}
			for len(rows[rowIdx]) <= colIdx {
				rows[rowIdx] = append(rows[rowIdx], "")
			}
			rows[rowIdx][colIdx] = value
		}
	}
	return rows
}

// sheetExtent returns the 1-based bottom-right corner of the sheet's
// recorded dimension (e.g. "A1:C7").
func sheetExtent(f *excelize.File, sheetName string) (rows, cols int, ok bool) {
	dim, err := f.GetSheetDimension(sheetName)
	if err != nil || dim == "" {
		return 0, 0, false
	}
	_, last, found := strings.Cut(dim, ":")
	if !found {
		last = dim
	}
	col, row, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// evalFormula computes a formula cell that has no cached value. Cells without
// a formula, or whose formula cannot be evaluated, yield "".
func evalFormula(f *excelize.File, sheetName string, col, row int) string {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	formula, err := f.GetCellFormula(sheetName, cellName)
	if err != nil || formula == "" {
		return ""
	}
	value, err := f.CalcCellValue(sheetName, cellName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// extractImages collects the pictures of a sheet with their anchor cells.
func extractImages(f *excelize.File, sheetName string) ([]ImageAnchor, error) {
	cells, err := f.GetPictureCells(sheetName)
	if err != nil {
		return nil, fmt.Errorf("list picture cells: %w", err)
	}

	var anchors []ImageAnchor
	for _, cell := range cells {
		col, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil {
			continue
		}
		pics, err := f.GetPictures(sheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("read pictures at %s: %w", cell, err)
		}
		for _, pic := range pics {
			anchors = append(anchors, ImageAnchor{
				Row:   row - 1,
				Col:   col - 1,
				Image: decodeImage(pic.Extension, pic.File),
			})
		}
	}
	return anchors, nil
}
