package ingest

import (
	"fmt"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
)

// Mask texts shown to users without access to a document.
const (
	MaskedValue   = "***"
	MaskedComment = "*** (İçeriği görmek için erişim talep edin)"
)

// Redact returns a copy of the upload safe to show to a user who has neither
// full-data rights nor an approved access request: lab notes are dropped and
// every title, label, value, comment and footnote is masked. The shape
// (number of sections and rows) is preserved.
func Redact(up *Upload) *Upload {
	out := &Upload{
		Document:  up.Document,
		Samples:   make([]Sample, len(up.Samples)),
		Footnotes: make([]Footnote, len(up.Footnotes)),
	}
	out.Document.Notes = []Note{}

	for i, s := range up.Samples {
		rs := s
		if s.Comment != nil {
			c := MaskedComment
			rs.Comment = &c
		}
		rs.Sections = make([]models.Section, len(s.Sections))
		for si, sec := range s.Sections {
			rsec := models.Section{Rows: make([]models.ParameterRow, len(sec.Rows))}
			if sec.Title != "" {
				rsec.Title = fmt.Sprintf("*** (Gizli Bölüm %d)", si+1)
			}
			for ri := range sec.Rows {
				rsec.Rows[ri] = models.ParameterRow{
					Parameter: fmt.Sprintf("*** (Gizli Analiz %d-%d)", si+1, ri+1),
					Value:     models.TextValue(MaskedValue),
				}
			}
			rs.Sections[si] = rsec
		}
		out.Samples[i] = rs
	}

	for i, f := range up.Footnotes {
		f.Text = MaskedValue
		out.Footnotes[i] = f
	}
	return out
}
