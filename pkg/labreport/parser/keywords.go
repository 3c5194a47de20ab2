package parser

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Keywords holds every fixed phrase the row heuristics match against.
// Entries are compared after Fold, so they may be written in any case.
type Keywords struct {
	// Banners mark the report title line (matched by substring).
	Banners []string `yaml:"banners"`
	// HeaderLabels are exact first-cell labels of the sample header row.
	HeaderLabels []string `yaml:"header_labels"`
	// HeaderMarker is a substring that also marks the header row's first cell.
	HeaderMarker string `yaml:"header_marker"`
	// CommentColumn marks a header cell as a free-text remark column.
	CommentColumn string `yaml:"comment_column"`
	// FootnotePrefixes start a footnote row.
	FootnotePrefixes []string `yaml:"footnote_prefixes"`
	// SectionKeywords open a new section (matched by substring).
	SectionKeywords []string `yaml:"section_keywords"`
	// TotalsLabel is the exact first-cell label of a totals row.
	TotalsLabel string `yaml:"totals_label"`
	// CommentRowMarkers are substrings of a comment row's first cell.
	CommentRowMarkers []string `yaml:"comment_row_markers"`
	// CommentRowLabels are exact first-cell labels of a comment row.
	CommentRowLabels []string `yaml:"comment_row_labels"`
	// DefaultTitle is used when a table is found but no banner is.
	DefaultTitle string `yaml:"default_title"`
}

// DefaultKeywords returns the phrases used by the lab's report templates.
func DefaultKeywords() Keywords {
	return Keywords{
		Banners:           []string{"analiz laboratuvarı", "iş isteği yanıtı", "is istegi yaniti", "laboratuvarı"},
		HeaderLabels:      []string{"analizler", "analiz"},
		HeaderMarker:      "analiz",
		CommentColumn:     "yorum",
		FootnotePrefixes:  []string{"*", "not:", "dipnot"},
		SectionKeywords:   []string{"solvent kompozisyon", "monomer kompozisyon", "pigment kompozisyon", "kompozisyon"},
		TotalsLabel:       "TOPLAM",
		CommentRowMarkers: []string{"analiz yorum"},
		CommentRowLabels:  []string{"yorum"},
		DefaultTitle:      "Analiz Raporu",
	}
}

// LoadKeywords reads a YAML keyword table. Fields missing from the file keep
// their default values.
func LoadKeywords(path string) (Keywords, error) {
	kw := DefaultKeywords()
	b, err := os.ReadFile(path)
	if err != nil {
		return kw, fmt.Errorf("read keywords: %w", err)
	}
	if err := yaml.Unmarshal(b, &kw); err != nil {
		return kw, fmt.Errorf("parse keywords %s: %w", path, err)
	}
	return kw, nil
}

// Fold lower-cases s with Turkish rules and maps the dotless ı to i, so that
// "ANALİZ", "ANALIZ" and "analiz" all fold to "analiz".
func Fold(s string) string {
	// A Caser keeps state and must not be shared between goroutines.
	lower := cases.Lower(language.Turkish).String(strings.TrimSpace(s))
	return strings.ReplaceAll(lower, "ı", "i")
}

func containsAny(folded string, needles []string) bool {
	for _, n := range needles {
		if n = Fold(n); n != "" && strings.Contains(folded, n) {
			return true
		}
	}
	return false
}

func equalsAny(folded string, labels []string) bool {
	for _, l := range labels {
		if folded == Fold(l) {
			return true
		}
	}
	return false
}

// IsBanner reports whether a joined row looks like the report title line.
func (k Keywords) IsBanner(text string) bool {
	return containsAny(Fold(text), k.Banners)
}

// IsHeaderLabel reports whether a first cell marks the sample header row.
// An empty first cell qualifies too.
func (k Keywords) IsHeaderLabel(first string) bool {
	f := Fold(first)
	if f == "" || equalsAny(f, k.HeaderLabels) {
		return true
	}
	m := Fold(k.HeaderMarker)
	return m != "" && strings.Contains(f, m)
}

// IsCommentColumn reports whether a header cell names a remark column.
func (k Keywords) IsCommentColumn(header string) bool {
	return containsAny(Fold(header), []string{k.CommentColumn})
}

// IsFootnote reports whether text starts like a footnote.
func (k Keywords) IsFootnote(text string) bool {
	f := Fold(text)
	for _, p := range k.FootnotePrefixes {
		if p = Fold(p); p != "" && strings.HasPrefix(f, p) {
			return true
		}
	}
	return false
}

// IsSectionKeyword reports whether a first cell names a composition block.
func (k Keywords) IsSectionKeyword(first string) bool {
	return containsAny(Fold(first), k.SectionKeywords)
}

// IsTotals reports whether a first cell is the totals label.
func (k Keywords) IsTotals(first string) bool {
	t := Fold(k.TotalsLabel)
	return t != "" && Fold(first) == t
}

// IsCommentRow reports whether a first cell introduces per-sample remarks.
func (k Keywords) IsCommentRow(first string) bool {
	f := Fold(first)
	return containsAny(f, k.CommentRowMarkers) || equalsAny(f, k.CommentRowLabels)
}
