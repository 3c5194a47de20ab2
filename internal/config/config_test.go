package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Mode != "standard" || c.Output != "json" {
		t.Errorf("Unexpected defaults %+v", c)
	}
	if c.BatchConcurrency != 4 || c.ParseTimeoutSec != 60 {
		t.Errorf("Unexpected batch defaults %+v", c)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LABREPORT_MODE", "light")
	t.Setenv("LABREPORT_BATCH_CONCURRENCY", "0")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Mode != "light" {
		t.Errorf("Expected mode from env, got %q", c.Mode)
	}
	if c.BatchConcurrency != 1 {
		t.Errorf("Expected concurrency to be clamped to 1, got %d", c.BatchConcurrency)
	}
}

func TestSaveLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	in := &Global{
		Mode:             "light",
		Output:           "yaml",
		Pretty:           true,
		Charset:          "windows-1254",
		BatchConcurrency: 8,
		ParseTimeoutSec:  30,
		Uploader:         "lab",
	}
	if err := Save(in, ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".labreport", "config.yaml")); err != nil {
		t.Fatalf("Expected config in home dir: %v", err)
	}

	out, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *out != *in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "lab.yaml")
	if err := os.WriteFile(path, []byte("output: yaml\nkeywords_file: kw.yaml\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Output != "yaml" || c.KeywordsFile != "kw.yaml" || c.Mode != "standard" {
		t.Errorf("Unexpected config %+v", c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing explicit config file")
	}
}
