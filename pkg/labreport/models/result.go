// Package models defines data structures for lab report extraction.
package models

// ParameterRow is one measured parameter and its value for a sample.
type ParameterRow struct {
	// Parameter is the row label from the first column.
	Parameter string `json:"parameter" yaml:"parameter"`
	// Value is the cell content, merged across wrapped or repeated rows.
	Value Value `json:"value" yaml:"value"`
}

// Section groups parameter rows under a heading such as a composition block.
type Section struct {
	// Title is the heading text, empty for the implicit default section.
	Title string `json:"title" yaml:"title"`
	// Rows holds the parameter rows in sheet order.
	Rows []ParameterRow `json:"rows" yaml:"rows"`
}

// Row returns the row labelled parameter, if present.
func (s Section) Row(parameter string) (ParameterRow, bool) {
	for _, r := range s.Rows {
		if r.Parameter == parameter {
			return r, true
		}
	}
	return ParameterRow{}, false
}

// Sample is one column of results in the report.
type Sample struct {
	// Name is the header cell text.
	Name string `json:"name" yaml:"name"`
	// Sections holds the non-empty sections in sheet order.
	Sections []Section `json:"sections" yaml:"sections"`
	// Comment is the free-text remark for the sample (nil if absent).
	Comment *string `json:"comment" yaml:"comment"`
}

// ParsedResult is the structured content recovered from a report spreadsheet.
type ParsedResult struct {
	// Title is the report banner line.
	Title string `json:"title" yaml:"title"`
	// Samples holds one entry per sample column.
	Samples []Sample `json:"samples" yaml:"samples"`
	// Footnotes holds document-level notes in order.
	Footnotes []string `json:"footnotes" yaml:"footnotes"`
	// AnalysisTypes holds the distinct parameter labels in first-seen order.
	AnalysisTypes []string `json:"analysisTypes" yaml:"analysisTypes"`
}

// Empty reports whether no table was recognised in the sheet.
func (r *ParsedResult) Empty() bool {
	return r == nil || len(r.Samples) == 0
}
