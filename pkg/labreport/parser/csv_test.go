package parser

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
	}{
		{"a,b,c\n1,2,3\n", ','},
		{"Analizler;S1;S2\npH;7,1;8\n", ';'},
		{"a\tb\tc\n", '\t'},
		{"a|b|c\n", '|'},
		{"tek\n", ','},
	}

	for _, tt := range tests {
		if got := detectDelimiter([]byte(tt.input)); got != tt.expected {
			t.Errorf("detectDelimiter(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCSVDecoding(t *testing.T) {
	tests := []struct {
		charset string
		isNil   bool
		wantErr bool
	}{
		{"", true, false},
		{"UTF-8", true, false},
		{" utf8 ", true, false},
		{"windows-1254", false, false},
		{"ISO-8859-9", false, false},
		{"no-such-charset", true, true},
	}

	for _, tt := range tests {
		enc, err := csvDecoding(tt.charset)
		if (err != nil) != tt.wantErr {
			t.Errorf("csvDecoding(%q) error = %v, wantErr %v", tt.charset, err, tt.wantErr)
		}
		if (enc == nil) != tt.isNil {
			t.Errorf("csvDecoding(%q) = %v, expected nil: %v", tt.charset, enc, tt.isNil)
		}
	}
}

func TestReadCSVGrid(t *testing.T) {
	grid, err := ReadCSVGrid([]byte("Analizler;S1;S2\npH; 7,1 ;8\n;;\nNot: x\n"), "")
	if err != nil {
		t.Fatalf("ReadCSVGrid failed: %v", err)
	}
	if grid.RowCount() != 4 || grid.ColCount() != 3 {
		t.Fatalf("Expected 4x3 grid, got %dx%d", grid.RowCount(), grid.ColCount())
	}
	if v, _ := grid.Cell(1, 1); v.String() != "7,1" {
		t.Errorf("Expected trimmed '7,1', got %q", v.String())
	}
	if v, _ := grid.Cell(3, 2); !v.IsEmpty() {
		t.Errorf("Expected short row to be padded, got %q", v.String())
	}
}

func TestReadCSVGridCharset(t *testing.T) {
	raw, err := charmap.Windows1254.NewEncoder().Bytes([]byte("Analizler,Numune\nYoğunluk,1.1\nİnceltme,%5\n"))
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}

	grid, err := ReadCSVGrid(raw, "windows-1254")
	if err != nil {
		t.Fatalf("ReadCSVGrid failed: %v", err)
	}
	if v, _ := grid.Cell(1, 0); v.String() != "Yoğunluk" {
		t.Errorf("Expected 'Yoğunluk', got %q", v.String())
	}
	if v, _ := grid.Cell(2, 0); v.String() != "İnceltme" {
		t.Errorf("Expected 'İnceltme', got %q", v.String())
	}

	if _, err := ReadCSVGrid(raw, "no-such-charset"); err == nil {
		t.Errorf("Expected error for unknown charset")
	}
}
