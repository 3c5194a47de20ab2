package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
)

func parsed(title string) *models.ParsedResult {
	comment := "uygun"
	return &models.ParsedResult{
		Title: title,
		Samples: []models.Sample{
			{
				Name: "S1",
				Sections: []models.Section{
					{Rows: []models.ParameterRow{{Parameter: "pH", Value: models.TextValue("7")}}},
					{Title: "Solvent Kompozisyonu", Rows: []models.ParameterRow{
						{Parameter: "Ksilen", Value: models.TextValue("40")},
						{Parameter: "Toluen", Value: models.TextValue("60")},
					}},
				},
				Comment: &comment,
			},
			{Name: "S2", Sections: []models.Section{}},
		},
		Footnotes:     []string{"*Ölçüm ±0.5", "Not: 23 °C"},
		AnalysisTypes: []string{"pH", "Ksilen", "Toluen"},
	}
}

func TestNewUpload(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	up := NewUpload("raporlar/2024-17.xlsx", "u-1", parsed("İş İsteği Yanıtı"), now)

	doc := up.Document
	if doc.ID == "" || doc.Title != "İş İsteği Yanıtı" || doc.UploadedBy != "u-1" {
		t.Errorf("Unexpected document %+v", doc)
	}
	if doc.Status != StatusReady || !doc.UploadedAt.Equal(now) {
		t.Errorf("Expected ready document uploaded at %v, got %s at %v", now, doc.Status, doc.UploadedAt)
	}
	if doc.Metadata.SampleCount != 2 || len(doc.Metadata.AnalysisTypes) != 3 {
		t.Errorf("Unexpected metadata %+v", doc.Metadata)
	}

	if len(up.Samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(up.Samples))
	}
	ids := map[string]bool{doc.ID: true}
	for _, s := range up.Samples {
		if s.DocumentID != doc.ID {
			t.Errorf("Sample %q not linked to document", s.Name)
		}
		if ids[s.ID] {
			t.Errorf("Duplicate id %q", s.ID)
		}
		ids[s.ID] = true
	}

	if len(up.Footnotes) != 2 {
		t.Fatalf("Expected 2 footnotes, got %d", len(up.Footnotes))
	}
	for i, f := range up.Footnotes {
		if f.Order != i || f.DocumentID != doc.ID {
			t.Errorf("footnote %d: unexpected %+v", i, f)
		}
	}
}

func TestNewUploadTitleFallback(t *testing.T) {
	up := NewUpload("/tmp/Numune Raporu.xlsx", "", parsed(""), time.Now())
	if up.Document.Title != "Numune Raporu" {
		t.Errorf("Expected title from file name, got %q", up.Document.Title)
	}
}

func TestAddNote(t *testing.T) {
	up := NewUpload("a.xlsx", "", parsed("x"), time.Now())
	n := up.Document.AddNote("u-2", "Ayşe", "Tekrar ölçülecek", time.Now())
	if len(up.Document.Notes) != 1 || up.Document.Notes[0].ID != n.ID {
		t.Errorf("Expected note to be appended, got %+v", up.Document.Notes)
	}
}

func TestRedact(t *testing.T) {
	up := NewUpload("a.xlsx", "u-1", parsed("Rapor"), time.Now())
	up.Document.AddNote("u-2", "Ayşe", "gizli", time.Now())

	red := Redact(up)

	if len(red.Document.Notes) != 0 {
		t.Errorf("Expected notes to be dropped")
	}
	if len(up.Document.Notes) != 1 {
		t.Errorf("Redact must not modify its input")
	}

	s := red.Samples[0]
	if len(s.Sections) != 2 || len(s.Sections[1].Rows) != 2 {
		t.Fatalf("Expected shape to be preserved, got %+v", s.Sections)
	}
	if s.Sections[0].Title != "" {
		t.Errorf("Expected untitled section to stay untitled, got %q", s.Sections[0].Title)
	}
	if s.Sections[1].Title != "*** (Gizli Bölüm 2)" {
		t.Errorf("Unexpected section title %q", s.Sections[1].Title)
	}
	row := s.Sections[1].Rows[1]
	if row.Parameter != "*** (Gizli Analiz 2-2)" || row.Value.String() != MaskedValue {
		t.Errorf("Unexpected masked row %+v", row)
	}
	if s.Comment == nil || *s.Comment != MaskedComment {
		t.Errorf("Expected masked comment, got %v", s.Comment)
	}
	if red.Samples[1].Comment != nil {
		t.Errorf("Expected missing comment to stay missing")
	}
	if s.Name != "S1" {
		t.Errorf("Expected sample names to stay visible, got %q", s.Name)
	}

	for _, f := range red.Footnotes {
		if f.Text != MaskedValue {
			t.Errorf("Expected masked footnote, got %q", f.Text)
		}
	}
	if strings.Contains(*up.Samples[0].Comment, "***") {
		t.Errorf("Redact must not modify the original comment")
	}
	if up.Samples[0].Sections[1].Rows[0].Parameter != "Ksilen" {
		t.Errorf("Redact must not modify the original sections")
	}
}
