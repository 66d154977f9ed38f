package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.ClassesFile != "classes.name" || c.ManifestFile != "training.data" || c.TinyManifestFile != "training_tiny.data" {
		t.Fatalf("unexpected file defaults %+v", c)
	}
	if c.ManifestImagePrefix != "data/training_data/" || c.BoxColor != "red" {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if filepath.Base(c.SourceDir) != "input" || filepath.Base(c.DestDir) != "output" {
		t.Fatalf("unexpected dirs src=%q dst=%q", c.SourceDir, c.DestDir)
	}
}

func TestValidate_RestoresDefaults(t *testing.T) {
	c := &Config{TinyClassID: -2, BoxColor: "not-a-color"}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	d := DefaultConfig()
	if c.SourceDir != d.SourceDir || c.ClassesFile != d.ClassesFile || c.ManifestFile != d.ManifestFile {
		t.Fatalf("empty fields not restored: %+v", c)
	}
	if c.TinyClassID != 0 || c.BoxColor != "red" {
		t.Fatalf("tiny=%d color=%q", c.TinyClassID, c.BoxColor)
	}

	c.BoxColor = " Lime "
	_ = c.Validate()
	if c.BoxColor != "lime" {
		t.Fatalf("color not normalised: %q", c.BoxColor)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ClassesFile != "classes.name" {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if c == nil || c.ManifestFile != "training.data" {
		t.Fatalf("expected defaults with error, got %+v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotator.json")
	c := DefaultConfig()
	c.SourceDir = "/data/in"
	c.TinyClassID = 3
	c.DarkMode = true
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *c {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, c)
	}
}

func TestApplyFlags_OverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	base := DefaultConfig()
	base.SourceDir = "/from/file"
	base.DestDir = "/file/out"
	if err := base.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, used, err := ApplyFlags(fs, []string{"-config", path, "-src", "/from/flag", "-debug"})
	if err != nil {
		t.Fatalf("ApplyFlags: %v", err)
	}
	if used != path {
		t.Fatalf("config path %q want %q", used, path)
	}
	if cfg.SourceDir != "/from/flag" || cfg.DestDir != "/file/out" || !cfg.Debug {
		t.Fatalf("unexpected merge %+v", cfg)
	}
}

func TestApplyFlags_BadFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, _, err := ApplyFlags(fs, []string{"-nope"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
