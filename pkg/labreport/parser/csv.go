package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// csvDecoding resolves a WHATWG charset label. UTF-8 needs no decoder and
// yields nil.
func csvDecoding(charset string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	switch name {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", charset, err)
	}
	return enc, nil
}

// ReadCSVGrid reads a delimited text export into a grid.
func ReadCSVGrid(buf []byte, encName string) (*models.Grid, error) {
	enc, err := csvDecoding(encName)
	if err != nil {
		return nil, err
	}
	r := io.Reader(bytes.NewReader(buf))
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		return nil, err
	}
	sep := detectDelimiter(b)

	cr := csv.NewReader(br)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	nRows, nCols := gridBounds(records, nil)
	grid := models.NewGrid(nRows, nCols)
	for rowIdx := 0; rowIdx < nRows; rowIdx++ {
		for colIdx, cell := range records[rowIdx] {
			grid.Set(rowIdx, colIdx, models.TextValue(cell))
		}
	}
	return grid, nil
}

// detectDelimiter picks the candidate separator seen most often in the
// sample, preferring the earlier candidate on ties.
func detectDelimiter(sample []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best, bestCount := ',', 0
	for _, c := range candidates {
		if n := bytes.Count(sample, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
