package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := ioutil.WriteFile(path, []byte("Prompt: \"> \"\nEcho: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "> " || cfg.Echo {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.LogLevel != Default().LogLevel {
		t.Fatalf("unset keys must keep their defaults, got %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	want := Default()
	want.LogLevel = "DEBUG"
	if err := Save(path, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := ioutil.WriteFile(path, []byte("Echo: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error")
	}
}
