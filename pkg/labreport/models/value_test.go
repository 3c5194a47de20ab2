package models

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

var pixel = Image{Format: "png", MIME: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

func TestValueKind(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected Kind
	}{
		{"empty", Value{}, KindEmpty},
		{"blank text", TextValue("   "), KindEmpty},
		{"text", TextValue("12"), KindText},
		{"image", NewValue("", pixel), KindImages},
		{"two images", NewValue("", pixel, pixel), KindImages},
		{"mixed", NewValue("mat", pixel), KindMixed},
	}

	for _, tt := range tests {
		if got := tt.value.Kind(); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestValueString(t *testing.T) {
	marker := "data:image/png;base64,iVBORw=="

	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"empty", Value{}, ""},
		{"trimmed", TextValue("  Viskozite  "), "Viskozite"},
		{"image", NewValue("", pixel), marker},
		{"mixed", NewValue("mat", pixel), "mat ||| " + marker},
		{"two images", NewValue("", pixel, pixel), marker + " ||| " + marker},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, got)
		}
	}
}

func TestValueMerge(t *testing.T) {
	a := TextValue("alkid")
	b := TextValue("poliester")

	merged := a.Merge(b)
	if merged.String() != "alkid ||| poliester" {
		t.Errorf("Expected merged value, got %q", merged.String())
	}
	if a.String() != "alkid" {
		t.Errorf("Merge must not modify the receiver, got %q", a.String())
	}
	if got := a.Merge(Value{}); got.String() != "alkid" {
		t.Errorf("Merging an empty value must be a no-op, got %q", got.String())
	}
	if got := (Value{}).Merge(b); got.String() != "poliester" {
		t.Errorf("Expected 'poliester', got %q", got.String())
	}
	if got := merged.Text(); got != "alkid ||| poliester" {
		t.Errorf("Expected text of merged value, got %q", got)
	}
}

func TestParseValue(t *testing.T) {
	v := NewValue("mat", pixel)
	parsed := ParseValue(v.String())

	if parsed.Kind() != KindMixed {
		t.Fatalf("Expected mixed value, got %v", parsed.Kind())
	}
	imgs := parsed.Images()
	if len(imgs) != 1 || imgs[0].MIME != "image/png" || imgs[0].Format != "png" {
		t.Fatalf("Expected one png image, got %+v", imgs)
	}
	if string(imgs[0].Data) != string(pixel.Data) {
		t.Errorf("Expected image bytes to survive the wire form")
	}
	if parsed.Text() != "mat" {
		t.Errorf("Expected text 'mat', got %q", parsed.Text())
	}

	bad := ParseValue("data:image/png;base64,%%%")
	if bad.Kind() != KindText {
		t.Errorf("Expected undecodable marker to stay text, got %v", bad.Kind())
	}
	if !ParseValue("").IsEmpty() {
		t.Errorf("Expected empty string to parse as empty value")
	}
}

func TestValueEncoding(t *testing.T) {
	row := ParameterRow{Parameter: "Görünüm", Value: NewValue("mat", pixel)}

	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"value":"mat ||| data:image/png;base64,`) {
		t.Errorf("Expected wire form in JSON, got %s", b)
	}

	var back ParameterRow
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if back.Value.String() != row.Value.String() {
		t.Errorf("Expected %q, got %q", row.Value.String(), back.Value.String())
	}

	y, err := yaml.Marshal(row)
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}
	if !strings.Contains(string(y), "data:image/png;base64,") {
		t.Errorf("Expected wire form in YAML, got %s", y)
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid(2, 3)
	if g.RowCount() != 2 || g.ColCount() != 3 {
		t.Fatalf("Expected 2x3 grid, got %dx%d", g.RowCount(), g.ColCount())
	}

	g.Set(1, 2, TextValue("x"))
	g.Set(5, 5, TextValue("ignored"))
	if v, ok := g.Cell(1, 2); !ok || v.String() != "x" {
		t.Errorf("Expected 'x' at (1,2), got %q", v.String())
	}
	if _, ok := g.Cell(2, 0); ok {
		t.Errorf("Expected out-of-range cell to report !ok")
	}

	g.AddImage(1, 2, pixel)
	g.AddImage(1, 2, pixel)
	if v, _ := g.Cell(1, 2); v.Kind() != KindMixed || len(v.Images()) != 2 {
		t.Errorf("Expected text followed by two images, got %v", v.Kind())
	}

	if (&Grid{}).ColCount() != 0 {
		t.Errorf("Expected empty grid to have no columns")
	}
}

func TestParsedResultEmpty(t *testing.T) {
	var res *ParsedResult
	if !res.Empty() {
		t.Errorf("Expected nil result to be empty")
	}
	res = &ParsedResult{Samples: []Sample{{Name: "S1"}}}
	if res.Empty() {
		t.Errorf("Expected result with a sample to be non-empty")
	}
}
