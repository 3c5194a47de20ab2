package parser

import (
	"log/slog"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
)

// HeaderScanRows is the number of leading rows searched for the title and
// the sample header row.
const HeaderScanRows = 10

// SampleColumn is a non-empty header cell right of the label column.
type SampleColumn struct {
	// Index is the 0-based grid column.
	Index int
	// Name is the header cell text.
	Name string
	// IsComment marks a free-text remark column.
	IsComment bool
}

// Header is the outcome of header detection.
type Header struct {
	// Title is the last banner line seen before the header row.
	Title string
	// RowIndex is the 0-based header row, -1 when none was found.
	RowIndex int
	// Columns lists the sample columns in left-to-right order.
	Columns []SampleColumn
}

// Found reports whether a header row was located.
func (h Header) Found() bool { return h.RowIndex >= 0 }

// LocateHeader finds the report title and the row naming the samples.
func LocateHeader(g *models.Grid, kw Keywords, logger *slog.Logger) Header {
	h := Header{RowIndex: -1}

	limit := min(g.RowCount(), HeaderScanRows)
	for i := 0; i < limit; i++ {
		row := g.Rows[i]
		joined := joinRow(row)
		if joined != "" && kw.IsBanner(joined) {
			h.Title = joined
			logger.Debug("banner row", "row", i, "title", joined)
			continue
		}

		if textCells(row) < 2 {
			continue
		}
		if kw.IsHeaderLabel(row[0].Text()) || h.Title != "" {
			h.RowIndex = i
			break
		}
	}

	if h.RowIndex < 0 {
		for i, row := range g.Rows {
			if textCells(row) >= 2 {
				h.RowIndex = i
				logger.Debug("header row from fallback", "row", i)
				break
			}
		}
	}
	if h.RowIndex < 0 {
		return h
	}

	header := g.Rows[h.RowIndex]
	for col := 1; col < len(header); col++ {
		name := header[col].Text()
		if name == "" {
			continue
		}
		h.Columns = append(h.Columns, SampleColumn{
			Index:     col,
			Name:      name,
			IsComment: kw.IsCommentColumn(name),
		})
	}
	logger.Debug("header row", "row", h.RowIndex, "columns", len(h.Columns))
	return h
}

// textCells counts the cells carrying text. Image-only cells cannot name a
// sample, so they do not make a row a header candidate.
func textCells(row []models.Value) int {
	n := 0
	for _, v := range row {
		if v.Text() != "" {
			n++
		}
	}
	return n
}
