package models

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	return path
}

const validConfig = `
sources:
  - https://www.mae.ro/node/2011
base_url: https://www.mae.ro
types:
  HOTARARE: HG
  OTHER: OTHER
months:
  ianuarie: 1
  februarie: 2
mandatory_fields:
  - article_type
  - title
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BaseURL != "https://www.mae.ro" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Types["HOTARARE"] != "HG" {
		t.Errorf("Types[HOTARARE] = %q", cfg.Types["HOTARARE"])
	}
	if cfg.Months["februarie"] != 2 {
		t.Errorf("Months[februarie] = %d", cfg.Months["februarie"])
	}
	// Defaults fill in when omitted.
	if cfg.RowGroupSelector != "table" {
		t.Errorf("RowGroupSelector = %q, want default", cfg.RowGroupSelector)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want default 4", cfg.WorkerCount)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing base_url",
			content: `
types: {HOTARARE: HG, OTHER: OTHER}
months: {ianuarie: 1}
`,
		},
		{
			name: "missing OTHER fallback",
			content: `
base_url: https://www.mae.ro
types: {HOTARARE: HG}
months: {ianuarie: 1}
`,
		},
		{
			name: "month out of range",
			content: `
base_url: https://www.mae.ro
types: {HOTARARE: HG, OTHER: OTHER}
months: {ianuarie: 13}
`,
		},
		{
			name: "empty months table",
			content: `
base_url: https://www.mae.ro
types: {HOTARARE: HG, OTHER: OTHER}
`,
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
