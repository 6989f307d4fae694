package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "zero config takes defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "same prepared and final dir",
			config: Config{
				Paths: PathsConfig{PreparedDir: "out", FinalDir: "out"},
			},
			wantErr: true,
		},
		{
			name: "nested folder name",
			config: Config{
				Paths: PathsConfig{PreparedDir: "a/b"},
			},
			wantErr: true,
		},
		{
			name: "line length too small",
			config: Config{
				Captions: CaptionsConfig{LineLength: 4},
			},
			wantErr: true,
		},
		{
			name: "unknown separator",
			config: Config{
				Captions: CaptionsConfig{SpeakerSeparator: "tab"},
			},
			wantErr: true,
		},
		{
			name: "unknown log format",
			config: Config{
				Logging: LoggingConfig{Format: "xml"},
			},
			wantErr: true,
		},
		{
			name: "empty hook",
			config: Config{
				Hooks: HooksConfig{AfterFinalize: [][]string{{}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Paths.PreparedDir != "prepared" || cfg.Paths.FinalDir != "final" {
		t.Errorf("dirs = %s, %s", cfg.Paths.PreparedDir, cfg.Paths.FinalDir)
	}
	if cfg.Captions.Extension != ".webvtt" {
		t.Errorf("Extension = %v, want .webvtt", cfg.Captions.Extension)
	}
	if cfg.Captions.LineLength != 36 {
		t.Errorf("LineLength = %v, want 36", cfg.Captions.LineLength)
	}
	if cfg.Performance.MaxConcurrent != 1 {
		t.Errorf("MaxConcurrent = %v, want 1", cfg.Performance.MaxConcurrent)
	}
	if !cfg.Watch.AutoFinalize || !cfg.Logging.File {
		t.Error("AutoFinalize and Logging.File should default to true")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
paths:
  prepared_dir: "to_translate"
  state_dir: "state"

captions:
  extension: "vtt"
  line_length: 42
  speaker_separator: "space"

export:
  docx: true

logging:
  level: "debug"
  file: false

hooks:
  after_finalize:
    - ["echo", "{file}"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.PreparedDir != "to_translate" {
		t.Errorf("PreparedDir = %v, want %v", cfg.Paths.PreparedDir, "to_translate")
	}
	if cfg.Paths.FinalDir != "final" {
		t.Errorf("FinalDir = %v, want %v", cfg.Paths.FinalDir, "final")
	}
	if cfg.Captions.Extension != ".vtt" {
		t.Errorf("Extension = %v, want %v", cfg.Captions.Extension, ".vtt")
	}
	if cfg.Captions.LineLength != 42 {
		t.Errorf("LineLength = %v, want %v", cfg.Captions.LineLength, 42)
	}
	if !cfg.Export.Docx || cfg.Logging.File {
		t.Errorf("Export.Docx = %v, Logging.File = %v", cfg.Export.Docx, cfg.Logging.File)
	}
	if len(cfg.Hooks.AfterFinalize) != 1 || cfg.Hooks.AfterFinalize[0][1] != "{file}" {
		t.Errorf("AfterFinalize = %v", cfg.Hooks.AfterFinalize)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
final_dir = "done"

[captions]
line_length = 32

[performance]
max_concurrent = 2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paths.FinalDir != "done" || cfg.Captions.LineLength != 32 || cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("captions:\n  line_lenght: 40\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject unknown fields")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Load(config.example.yaml) error = %v", err)
	}
	if cfg.Captions.LineLength != 36 || cfg.Paths.PreparedDir != "prepared" || !cfg.Watch.AutoFinalize {
		t.Errorf("example config = %+v", cfg)
	}
	if cfg.Paths.StateDir == "" {
		t.Error("StateDir not defaulted")
	}
}
