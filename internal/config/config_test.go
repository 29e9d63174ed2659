package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaultsUnchanged(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"), Defaults())
	if err != nil {
		t.Fatalf("Load: unexpected error for a missing file: %v", err)
	}
	if f != Defaults() {
		t.Errorf("got %+v, want unchanged defaults %+v", f, Defaults())
	}
}

func TestLoadMergesOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	if err := os.WriteFile(path, []byte("lineWidth: 120\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Load(path, Defaults())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.LineWidth != 120 {
		t.Errorf("got LineWidth %d, want 120", f.LineWidth)
	}
	if f.MaxSteps != DefaultMaxSteps {
		t.Errorf("got MaxSteps %d, want unmodified default %d", f.MaxSteps, DefaultMaxSteps)
	}
	if f.ValuePrefix != DefaultValuePrefix {
		t.Errorf("got ValuePrefix %q, want unmodified default %q", f.ValuePrefix, DefaultValuePrefix)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	if err := os.WriteFile(path, []byte("maxSteps: [this is not an int\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path, Defaults())
	if err == nil {
		t.Fatalf("Load: expected an error decoding malformed yaml")
	}
}
