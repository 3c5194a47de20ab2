// Package ingest turns a parsed report into the records the portal stores.
package ingest

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/canyalcin1/alis-vz/pkg/labreport/models"
	"github.com/google/uuid"
)

// StatusReady marks a document whose records are complete.
const StatusReady = "ready"

// Metadata summarizes a document for search and listing.
type Metadata struct {
	SampleCount   int      `json:"sampleCount" yaml:"sampleCount"`
	AnalysisTypes []string `json:"analysisTypes" yaml:"analysisTypes"`
}

// Note is a lab-internal remark appended to a document after upload.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"userId"`
	UserName  string    `json:"userName" yaml:"userName"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Document is the stored header record of an upload.
type Document struct {
	ID         string    `json:"id" yaml:"id"`
	FileName   string    `json:"fileName" yaml:"fileName"`
	Title      string    `json:"title" yaml:"title"`
	UploadedBy string    `json:"uploadedBy" yaml:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`
	Status     string    `json:"status" yaml:"status"`
	Notes      []Note    `json:"notes" yaml:"notes"`
	Metadata   Metadata  `json:"metadata" yaml:"metadata"`
}

// Sample is a stored sample row keyed by its own id.
type Sample struct {
	ID         string           `json:"id" yaml:"id"`
	DocumentID string           `json:"documentId" yaml:"documentId"`
	Name       string           `json:"name" yaml:"name"`
	Sections   []models.Section `json:"sections" yaml:"sections"`
	Comment    *string          `json:"comment" yaml:"comment"`
}

// Footnote is a stored footnote with its position in the report.
type Footnote struct {
	ID         string `json:"id" yaml:"id"`
	DocumentID string `json:"documentId" yaml:"documentId"`
	Text       string `json:"text" yaml:"text"`
	Order      int    `json:"order" yaml:"order"`
}

// Upload holds every record created for one uploaded file.
type Upload struct {
	Document  Document   `json:"document" yaml:"document"`
	Samples   []Sample   `json:"samples" yaml:"samples"`
	Footnotes []Footnote `json:"footnotes" yaml:"footnotes"`
}

// NewUpload builds the records for a parsed file. The document title falls
// back to the file name without its extension when the report has none.
func NewUpload(fileName, uploadedBy string, res *models.ParsedResult, now time.Time) *Upload {
	title := res.Title
	if title == "" {
		base := filepath.Base(fileName)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	doc := Document{
		ID:         uuid.NewString(),
		FileName:   fileName,
		Title:      title,
		UploadedBy: uploadedBy,
		UploadedAt: now,
		Status:     StatusReady,
		Notes:      []Note{},
		Metadata: Metadata{
			SampleCount:   len(res.Samples),
			AnalysisTypes: res.AnalysisTypes,
		},
	}

	up := &Upload{
		Document:  doc,
		Samples:   make([]Sample, 0, len(res.Samples)),
		Footnotes: make([]Footnote, 0, len(res.Footnotes)),
	}
	for _, s := range res.Samples {
		up.Samples = append(up.Samples, Sample{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Name:       s.Name,
			Sections:   s.Sections,
			Comment:    s.Comment,
		})
	}
	for i, text := range res.Footnotes {
		up.Footnotes = append(up.Footnotes, Footnote{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Text:       text,
			Order:      i,
		})
	}
	return up
}

// AddNote appends a lab note to the document.
func (d *Document) AddNote(userID, userName, text string, now time.Time) Note {
	n := Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		CreatedAt: now,
	}
	d.Notes = append(d.Notes, n)
	return n
}
