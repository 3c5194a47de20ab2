package labreport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
	"github.com/canyalcin1/alis-vz/pkg/labreport/parser"
	"github.com/xuri/excelize/v2"
)

// Parse extracts the report structure from a spreadsheet buffer.
//
// Only the first worksheet is read. The only error is a buffer that cannot be
// decoded, which matches ErrMalformedWorkbook; every irregularity inside the
// sheet is absorbed into a best-effort result.
func Parse(buf []byte, opts Options) (*models.ParsedResult, error) {
	logger := opts.logger()

	grid, err := readGrid(buf, opts)
	if err != nil {
		logger.Debug("decode failed", "error", err)
		return nil, err
	}

	res := parser.BuildResult(grid, opts.keywords(), logger)
	if res.Empty() {
		logger.Debug("no table recognised", "title", res.Title)
	}
	return res, nil
}

// ParseContext is Parse with cancellation checked around the decode and the
// row walk. A cancelled parse returns ctx.Err() and no result.
func ParseContext(ctx context.Context, buf []byte, opts Options) (*models.ParsedResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := Parse(buf, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ParseFile reads and parses a report file. If opts.Format is empty it is
// chosen from the file extension.
func ParseFile(path string, opts Options) (*models.ParsedResult, error) {
	if opts.Format == "" {
		format, err := FormatFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		opts.Format = format
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(buf, opts)
}

func readGrid(buf []byte, opts Options) (*models.Grid, error) {
	if opts.Format == FormatCSV {
		grid, err := parser.ReadCSVGrid(buf, opts.Charset)
		if err != nil {
			return nil, malformed("", "csv", err)
		}
		return grid, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, malformed("", "workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, malformed("", "workbook", errors.New("no worksheets"))
	}

	// Additional worksheets are ignored.
	grid, _, err := parser.ExtractGrid(f, sheets[0], opts.ShouldIncludeImages())
	if err != nil {
		return nil, malformed(sheets[0], "cells", err)
	}
	return grid, nil
}
