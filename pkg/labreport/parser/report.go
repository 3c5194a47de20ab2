package parser

import (
	"log/slog"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
)

// BuildResult recovers the report structure from a grid. It never fails:
// a sheet without a recognisable table yields a result with no samples.
func BuildResult(g *models.Grid, kw Keywords, logger *slog.Logger) *models.ParsedResult {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	empty := func(title string) *models.ParsedResult {
		return &models.ParsedResult{
			Title:         title,
			Samples:       []models.Sample{},
			Footnotes:     []string{},
			AnalysisTypes: []string{},
		}
	}

	if g == nil || g.RowCount() < 2 {
		return empty("")
	}

	header := LocateHeader(g, kw, logger)
	if !header.Found() {
		logger.Debug("no header row", "rows", g.RowCount())
		return empty(header.Title)
	}

	title := header.Title
	if title == "" {
		title = kw.DefaultTitle
	}

	acc := newAccumulator(header, kw, logger)
	acc.walk(g, header.RowIndex+1)
	return acc.result(title)
}
