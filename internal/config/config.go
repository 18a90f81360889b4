package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for credsweep.
type FileConfig struct {
	OutputRoot    *string `yaml:"output_root"`
	Timeout       *string `yaml:"timeout"`
	LogLevel      *string `yaml:"log_level"`
	LogFile       *string `yaml:"log_file"`
	LogMaxSizeMB  *int    `yaml:"log_max_size_mb"`
	LogMaxBackups *int    `yaml:"log_max_backups"`
	NoColor       *bool   `yaml:"no_color"`
	Progress      *bool   `yaml:"progress"`
	Enable        *string `yaml:"enable"`
	Disable       *string `yaml:"disable"`
}

// Settings is the fully resolved configuration used at runtime.
type Settings struct {
	OutputRoot    string        `validate:"required"`
	Timeout       time.Duration `validate:"gt=0"`
	LogLevel      string        `validate:"oneof=debug info warn error"`
	LogFile       string
	LogMaxSizeMB  int `validate:"gt=0"`
	LogMaxBackups int `validate:"gte=0"`
	NoColor       bool
	Progress      bool
	Enable        string
	Disable       string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		OutputRoot:    "output",
		Timeout:       60 * time.Second,
		LogLevel:      "warn",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		Progress:      true,
	}
}

// CredentialsDir holds report files.
func (s Settings) CredentialsDir() string { return filepath.Join(s.OutputRoot, "credentials") }

// DownloadsDir holds fetched documents.
func (s Settings) DownloadsDir() string { return filepath.Join(s.OutputRoot, "downloaded_docs") }

// Validate checks the resolved settings.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value: %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Apply overlays the non-nil fields of fc onto s.
func (s Settings) Apply(fc FileConfig) (Settings, error) {
	if fc.OutputRoot != nil && *fc.OutputRoot != "" {
		s.OutputRoot = *fc.OutputRoot
	}
	if fc.Timeout != nil && *fc.Timeout != "" {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return s, fmt.Errorf("invalid timeout %q: %w", *fc.Timeout, err)
		}
		s.Timeout = d
	}
	if fc.LogLevel != nil && *fc.LogLevel != "" {
		s.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil {
		s.LogFile = *fc.LogFile
	}
	if fc.LogMaxSizeMB != nil {
		s.LogMaxSizeMB = *fc.LogMaxSizeMB
	}
	if fc.LogMaxBackups != nil {
		s.LogMaxBackups = *fc.LogMaxBackups
	}
	if fc.NoColor != nil {
		s.NoColor = *fc.NoColor
	}
	if fc.Progress != nil {
		s.Progress = *fc.Progress
	}
	if fc.Enable != nil {
		s.Enable = *fc.Enable
	}
	if fc.Disable != nil {
		s.Disable = *fc.Disable
	}
	return s, nil
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory.
// It supports .credsweep.yml/.yaml and credsweep.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".credsweep.yml", ".credsweep.yaml", "credsweep.yml", "credsweep.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "credsweep", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Resolve builds settings from defaults, then the global file, then either
// explicitPath or the local file found in dir.
func Resolve(dir, explicitPath string) (Settings, error) {
	s := Defaults()
	var err error
	if g, gerr := LoadGlobal(); gerr == nil {
		if s, err = s.Apply(g); err != nil {
			return s, err
		}
	}
	if explicitPath != "" {
		fc, lerr := LoadFile(explicitPath)
		if lerr != nil {
			return s, fmt.Errorf("load config %s: %w", explicitPath, lerr)
		}
		return s.Apply(fc)
	}
	if l, lerr := LoadLocal(dir); lerr == nil {
		return s.Apply(l)
	}
	return s, nil
}
