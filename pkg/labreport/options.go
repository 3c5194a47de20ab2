// Package labreport extracts structured lab analysis reports from spreadsheets.
package labreport

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/canyalcin1/alis-vz/pkg/labreport/parser"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight extracts cell text only (embedded images are skipped).
	ModeLight Mode = "light"
	// ModeStandard extracts cell text and embedded images.
	ModeStandard Mode = "standard"
)

// Format is the container format of the input buffer.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook (the default).
	FormatXLSX Format = "xlsx"
	// FormatCSV is a delimited text export of a single sheet.
	FormatCSV Format = "csv"
)

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard).
	Mode Mode
	// Format selects the reader. Empty means FormatXLSX.
	Format Format
	// Charset is the CSV character set (e.g. windows-1254). Empty means UTF-8.
	Charset string
	// Keywords overrides the phrase table. If nil, parser.DefaultKeywords is used.
	Keywords *parser.Keywords
	// Logger receives debug output about header and row detection.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode:   ModeStandard,
		Format: FormatXLSX,
	}
}

// ShouldIncludeImages returns whether embedded images are extracted.
func (o Options) ShouldIncludeImages() bool {
	return o.Mode != ModeLight
}

func (o Options) keywords() parser.Keywords {
	if o.Keywords != nil {
		return *o.Keywords
	}
	return parser.DefaultKeywords()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// FormatFromPath picks the reader for a file name by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	}
	return "", ErrUnsupportedFormat
}
