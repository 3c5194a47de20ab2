package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
)

// RowKind is the classification of a row below the header.
type RowKind int

const (
	RowEmpty RowKind = iota
	RowFootnote
	RowSection
	RowTotals
	RowComment
	RowData
	RowContinuation
	// RowIgnored has no label and nothing to continue.
	RowIgnored
)

func (k RowKind) String() string {
	switch k {
	case RowEmpty:
		return "empty"
	case RowFootnote:
		return "footnote"
	case RowSection:
		return "section"
	case RowTotals:
		return "totals"
	case RowComment:
		return "comment"
	case RowData:
		return "data"
	case RowContinuation:
		return "continuation"
	}
	return "ignored"
}

// Classify decides what a row is. The checks run in a fixed order and the
// first match wins. haveParameter tells whether any data row was seen.
func Classify(row []models.Value, cols []SampleColumn, kw Keywords, haveParameter bool) RowKind {
	var first string
	if len(row) > 0 {
		first = row[0].Text()
	}

	switch {
	case first == "" && isBlankRow(row):
		return RowEmpty
	case first != "" && kw.IsFootnote(first):
		return RowFootnote
	case first != "" && kw.IsSectionKeyword(first) && sampleCellsBlank(row, cols):
		return RowSection
	case first != "" && kw.IsTotals(first):
		return RowTotals
	case first != "" && kw.IsCommentRow(first):
		return RowComment
	case first != "":
		return RowData
	case haveParameter:
		return RowContinuation
	}
	return RowIgnored
}

// sampleCellsBlank reports whether every sample cell is empty or a zero.
func sampleCellsBlank(row []models.Value, cols []SampleColumn) bool {
	for _, c := range cols {
		v := cellAt(row, c.Index)
		if v.IsEmpty() {
			continue
		}
		if v.Kind() != models.KindText || !isZeroToken(v.Text()) {
			return false
		}
	}
	return true
}

// isZeroToken reports whether s is a plain number equal to zero ("0", "0.00").
func isZeroToken(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && f == 0
}

func cellAt(row []models.Value, col int) models.Value {
	if col < 0 || col >= len(row) {
		return models.Value{}
	}
	return row[col]
}

// column accumulates the sections of one sample column.
type column struct {
	SampleColumn
	sections []models.Section
	current  models.Section
	comment  *string
	remarks  []string
}

// put adds v under parameter in the open section. A label already present
// gets v appended to its value; empty values are never appended.
func (c *column) put(parameter string, v models.Value) {
	for i := range c.current.Rows {
		if c.current.Rows[i].Parameter == parameter {
			if !v.IsEmpty() {
				c.current.Rows[i].Value = c.current.Rows[i].Value.Merge(v)
			}
			return
		}
	}
	c.current.Rows = append(c.current.Rows, models.ParameterRow{Parameter: parameter, Value: v})
}

// openSection closes the current section, keeping it only if it has rows.
func (c *column) openSection(title string) {
	if len(c.current.Rows) > 0 {
		c.sections = append(c.sections, c.current)
	}
	c.current = models.Section{Title: title}
}

// remark is a comment-column cell waiting to be attached at assembly.
type remark struct {
	row    int
	target int
	text   string
	joined string
}

// accumulator walks the rows below the header.
type accumulator struct {
	kw            Keywords
	logger        *slog.Logger
	cols          []*column
	footnotes     []string
	analysisTypes []string
	lastParameter string
	remarks       []remark
}

func newAccumulator(header Header, kw Keywords, logger *slog.Logger) *accumulator {
	a := &accumulator{kw: kw, logger: logger}
	for _, sc := range header.Columns {
		a.cols = append(a.cols, &column{SampleColumn: sc})
	}
	return a
}

// remarkTarget returns the ordinal of the sample a comment column annotates:
// the nearest non-comment column on its left, else on its right, else -1.
func (a *accumulator) remarkTarget(ordinal int) int {
	for i := ordinal - 1; i >= 0; i-- {
		if !a.cols[i].IsComment {
			return i
		}
	}
	for i := ordinal + 1; i < len(a.cols); i++ {
		if !a.cols[i].IsComment {
			return i
		}
	}
	return -1
}

func (a *accumulator) sampleColumns() []SampleColumn {
	out := make([]SampleColumn, len(a.cols))
	for i, c := range a.cols {
		out[i] = c.SampleColumn
	}
	return out
}

// walk classifies and applies every row from start to the end of the grid.
func (a *accumulator) walk(g *models.Grid, start int) {
	cols := a.sampleColumns()
	for i := start; i < g.RowCount(); i++ {
		row := g.Rows[i]
		kind := Classify(row, cols, a.kw, a.lastParameter != "")
		a.logger.Debug("row", "index", i, "kind", kind)
		a.apply(i, row, kind)
	}
	for _, c := range a.cols {
		c.openSection("")
	}
}

func (a *accumulator) apply(index int, row []models.Value, kind RowKind) {
	first := cellAt(row, 0).Text()

	switch kind {
	case RowFootnote:
		a.footnotes = append(a.footnotes, joinRow(row))

	case RowSection:
		for _, c := range a.cols {
			c.openSection(first)
		}

	case RowTotals:
		for _, c := range a.cols {
			c.put(a.kw.TotalsLabel, cellAt(row, c.Index))
		}

	case RowComment:
		for _, c := range a.cols {
			if v := cellAt(row, c.Index); !v.IsEmpty() {
				s := v.String()
				c.comment = &s
			}
		}

	case RowData:
		a.lastParameter = first
		a.analysisTypes = append(a.analysisTypes, first)
		for _, c := range a.cols {
			c.put(first, cellAt(row, c.Index))
		}
		a.collectRemarks(index, row)

	case RowContinuation:
		for _, c := range a.cols {
			if v := cellAt(row, c.Index); !v.IsEmpty() {
				c.put(a.lastParameter, v)
			}
		}
		a.collectRemarks(index, row)
	}
}

// collectRemarks records the non-empty comment-column cells of a row.
func (a *accumulator) collectRemarks(index int, row []models.Value) {
	var joined string
	for ordinal, c := range a.cols {
		if !c.IsComment {
			continue
		}
		v := cellAt(row, c.Index)
		if v.IsEmpty() {
			continue
		}
		if joined == "" {
			joined = joinRow(row)
		}
		a.remarks = append(a.remarks, remark{
			row:    index,
			target: a.remarkTarget(ordinal),
			text:   v.String(),
			joined: joined,
		})
	}
}

// result assembles the samples, attaching remarks from comment columns.
//
// A remark that itself reads like a footnote turns its source row into a
// footnote, appended after the row-level footnotes. Other remarks become the
// target sample's comment unless a comment row already set one.
func (a *accumulator) result(title string) *models.ParsedResult {
	res := &models.ParsedResult{
		Title:     title,
		Samples:   []models.Sample{},
		Footnotes: append([]string{}, a.footnotes...),
	}

	lastFootnoteRow := -1
	for _, r := range a.remarks {
		if a.kw.IsFootnote(r.text) {
			if r.row != lastFootnoteRow {
				res.Footnotes = append(res.Footnotes, r.joined)
				lastFootnoteRow = r.row
			}
			continue
		}
		if r.target >= 0 {
			t := a.cols[r.target]
			t.remarks = append(t.remarks, r.text)
		}
	}

	for _, c := range a.cols {
		if c.IsComment {
			continue
		}
		comment := c.comment
		if comment == nil && len(c.remarks) > 0 {
			s := strings.Join(c.remarks, models.Separator)
			comment = &s
		}
		sections := c.sections
		if sections == nil {
			sections = []models.Section{}
		}
		res.Samples = append(res.Samples, models.Sample{
			Name:     c.Name,
			Sections: sections,
			Comment:  comment,
		})
	}

	res.AnalysisTypes = dedupe(a.analysisTypes)
	return res
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
