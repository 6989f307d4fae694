package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths" toml:"paths"`
	Captions    CaptionsConfig    `yaml:"captions" toml:"captions"`
	Export      ExportConfig      `yaml:"export" toml:"export"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	Performance PerformanceConfig `yaml:"performance" toml:"performance"`
	Watch       WatchConfig       `yaml:"watch" toml:"watch"`
	Hooks       HooksConfig       `yaml:"hooks" toml:"hooks"`
}

type PathsConfig struct {
	// PreparedDir and FinalDir are subfolder names created next to each input
	PreparedDir string `yaml:"prepared_dir" toml:"prepared_dir"`
	FinalDir    string `yaml:"final_dir" toml:"final_dir"`
	// StateDir holds the run journal and the run lock
	StateDir string `yaml:"state_dir" toml:"state_dir"`
	LogDir   string `yaml:"log_dir" toml:"log_dir"`
}

type CaptionsConfig struct {
	Extension        string `yaml:"extension" toml:"extension"`
	LineLength       int    `yaml:"line_length" toml:"line_length"`
	SpeakerSeparator string `yaml:"speaker_separator" toml:"speaker_separator"`
}

type ExportConfig struct {
	Docx      bool `yaml:"docx" toml:"docx"`
	Clipboard bool `yaml:"clipboard" toml:"clipboard"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   bool   `yaml:"file" toml:"file"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
}

type WatchConfig struct {
	SettleMillis int  `yaml:"settle_ms" toml:"settle_ms"`
	AutoFinalize bool `yaml:"auto_finalize" toml:"auto_finalize"`
}

// HooksConfig lists commands run after a file is written. Each hook is an
// argv list; the token {file} is replaced by the output path.
type HooksConfig struct {
	AfterPrepare  [][]string `yaml:"after_prepare" toml:"after_prepare"`
	AfterFinalize [][]string `yaml:"after_finalize" toml:"after_finalize"`
}

// Default returns a validated configuration with every default applied
func Default() *Config {
	cfg := &Config{Watch: WatchConfig{AutoFinalize: true}, Logging: LoggingConfig{File: true}}
	// Validate cannot fail on the zero value plus defaults
	_ = cfg.Validate()
	return cfg
}

// Load reads a YAML or TOML configuration file, chosen by extension
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{Watch: WatchConfig{AutoFinalize: true}, Logging: LoggingConfig{File: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.PreparedDir == "" {
		c.Paths.PreparedDir = "prepared"
	}
	if c.Paths.FinalDir == "" {
		c.Paths.FinalDir = "final"
	}
	if c.Paths.PreparedDir == c.Paths.FinalDir {
		return fmt.Errorf("paths.prepared_dir and paths.final_dir must differ")
	}
	if strings.ContainsAny(c.Paths.PreparedDir+c.Paths.FinalDir, `/\`) {
		return fmt.Errorf("paths.prepared_dir and paths.final_dir must be plain folder names")
	}
	if c.Paths.StateDir == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = "."
	}

	if c.Captions.Extension == "" {
		c.Captions.Extension = ".webvtt"
	}
	if !strings.HasPrefix(c.Captions.Extension, ".") {
		c.Captions.Extension = "." + c.Captions.Extension
	}
	if c.Captions.LineLength == 0 {
		c.Captions.LineLength = 36
	}
	if c.Captions.LineLength < 10 {
		return fmt.Errorf("captions.line_length must be at least 10, got %d", c.Captions.LineLength)
	}
	switch c.Captions.SpeakerSeparator {
	case "":
		c.Captions.SpeakerSeparator = "newline"
	case "newline", "space":
	default:
		return fmt.Errorf("captions.speaker_separator must be newline or space, got %q", c.Captions.SpeakerSeparator)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
	switch c.Logging.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("logging.format must be auto, text or json, got %q", c.Logging.Format)
	}

	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Watch.SettleMillis <= 0 {
		c.Watch.SettleMillis = 500
	}

	for _, hook := range append(append([][]string{}, c.Hooks.AfterPrepare...), c.Hooks.AfterFinalize...) {
		if len(hook) == 0 || strings.TrimSpace(hook[0]) == "" {
			return fmt.Errorf("hooks entries need a command")
		}
	}

	return nil
}

func defaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "vttloc")
	}
	return ".vttloc"
}
