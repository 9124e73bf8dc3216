package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "studyclock/internal/platform/errors"
)

const (
	dataDirName    = ".studyclock"
	configFileName = "config.yaml"

	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Settings is the user-editable part of the configuration, persisted as
// .studyclock/config.yaml.
type Settings struct {
	StudyMinutes float64 `yaml:"study_minutes"`
	BreakMinutes float64 `yaml:"break_minutes"`
	Storage      string  `yaml:"storage"`
	LogLevel     string  `yaml:"log_level"`
	ServeAddr    string  `yaml:"serve_addr"`
}

type Config struct {
	Settings

	BaseDir    string
	DataDir    string
	ConfigPath string
	StoreDir   string
	DBPath     string
	HooksDir   string
	LogPath    string
	NotesDir   string
}

func DefaultSettings() Settings {
	return Settings{
		StudyMinutes: 25,
		BreakMinutes: 5,
		Storage:      StorageFile,
		LogLevel:     "info",
		ServeAddr:    "127.0.0.1:8787",
	}
}

// New derives all paths under dir with default settings.
func New(dir string) (Config, error) {
	if dir == "" {
		return Config{}, fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidInput)
	}
	data := filepath.Join(dir, dataDirName)
	return Config{
		Settings:   DefaultSettings(),
		BaseDir:    dir,
		DataDir:    data,
		ConfigPath: filepath.Join(data, configFileName),
		StoreDir:   filepath.Join(data, "store"),
		DBPath:     filepath.Join(data, "studyclock.db"),
		HooksDir:   data,
		LogPath:    filepath.Join(data, "studyclock.log"),
		NotesDir:   filepath.Join(data, "notes"),
	}, nil
}

// Load is New plus the overrides found in config.yaml, if the file exists.
func Load(dir string) (Config, error) {
	cfg, err := New(dir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg.Settings); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write persists the settings to config.yaml, creating the data dir.
func Write(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := yaml.Marshal(cfg.Settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(cfg.ConfigPath, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if !validPhaseMinutes(c.StudyMinutes) {
		return fmt.Errorf("%w: study_minutes must round to at least one second", apperrors.ErrInvalidInput)
	}
	if !validPhaseMinutes(c.BreakMinutes) {
		return fmt.Errorf("%w: break_minutes must round to at least one second", apperrors.ErrInvalidInput)
	}
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("%w: unknown storage %q", apperrors.ErrInvalidInput, c.Storage)
	}
	return nil
}

func validPhaseMinutes(minutes float64) bool {
	return !math.IsNaN(minutes) && !math.IsInf(minutes, 0) && math.Round(minutes*60) >= 1
}
