package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", FlagOverrides{Set: map[string]bool{}})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LevThreshold != DefaultLevThreshold {
		t.Errorf("LevThreshold = %d, want %d", cfg.LevThreshold, DefaultLevThreshold)
	}
	if cfg.BlockThreshold != DefaultBlockThreshold {
		t.Errorf("BlockThreshold = %d, want %d", cfg.BlockThreshold, DefaultBlockThreshold)
	}
	if cfg.ReportingMode != ReportingText {
		t.Errorf("ReportingMode = %q, want %q", cfg.ReportingMode, ReportingText)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "superdiff.json")
	if err := os.WriteFile(path, []byte(`{"block_threshold": 25}`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path, FlagOverrides{Set: map[string]bool{}})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.BlockThreshold != 25 {
		t.Errorf("BlockThreshold = %d, want 25", cfg.BlockThreshold)
	}
	if cfg.LineThreshold != DefaultLineThreshold {
		t.Errorf("unset fields should keep their defaults, LineThreshold = %d", cfg.LineThreshold)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "superdiff.json")
	if err := os.WriteFile(path, []byte(`{"block_threshold": 25}`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("SUPERDIFF_BLOCK_THRESHOLD", "40")

	cfg, err := Load(path, FlagOverrides{Set: map[string]bool{}})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.BlockThreshold != 40 {
		t.Errorf("BlockThreshold = %d, want 40 (env should win over file)", cfg.BlockThreshold)
	}
}

func TestLoadFlagOverridesEverything(t *testing.T) {
	t.Setenv("SUPERDIFF_BLOCK_THRESHOLD", "40")

	block := 99
	cfg, err := Load("", FlagOverrides{
		BlockThreshold: &block,
		Set:            map[string]bool{"block-threshold": true},
	})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.BlockThreshold != 99 {
		t.Errorf("BlockThreshold = %d, want 99 (explicit flag should win over env)", cfg.BlockThreshold)
	}
}

func TestLoadUnsetFlagDoesNotOverride(t *testing.T) {
	block := 99
	cfg, err := Load("", FlagOverrides{
		BlockThreshold: &block,
		Set:            map[string]bool{}, // flag has a default value but was never explicitly passed
	})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.BlockThreshold != DefaultBlockThreshold {
		t.Errorf("BlockThreshold = %d, want default %d when flag wasn't explicitly set", cfg.BlockThreshold, DefaultBlockThreshold)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []Configuration{
		{LevThreshold: -1, BlockThreshold: 1, WorkerThreads: 1, ReportingMode: ReportingText},
		{BlockThreshold: 0, WorkerThreads: 1, ReportingMode: ReportingText},
		{BlockThreshold: 1, WorkerThreads: 0, ReportingMode: ReportingText},
		{BlockThreshold: 1, WorkerThreads: 1, ReportingMode: "xml"},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected a validation error for %+v", i, c)
		}
	}
}

func TestLoadMalformedConfigFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{not valid json`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(path, FlagOverrides{Set: map[string]bool{}}); err == nil {
		t.Error("expected an error for malformed config JSON")
	}
}
