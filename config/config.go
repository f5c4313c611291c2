// Package config handles the persistent user configuration and logger setup.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shibukawa/configdir"
	"github.com/spf13/afero"
)

// FileName is the name of the configuration file inside the config folder.
const FileName = "config.json"

// currentVersion is the config layout written by Save.
const currentVersion = 1

// DefaultPath returns the config.json path in the OS config folder.
func DefaultPath() (string, error) {
	dirs := configdir.New("user-none", "ecosmac")
	folders := dirs.QueryFolders(configdir.Global)
	if len(folders) == 0 {
		return "", errors.New("no config folder available")
	}
	return filepath.Join(folders[0].Path, FileName), nil
}

// Load reads the configuration at path. If the file doesn't exist, it
// returns the default configuration. If the file is corrupted, it returns
// an error.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return migrate(cfg), nil
}

// Save writes the configuration to path atomically.
func Save(fs afero.Fs, path string, cfg *Config) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config folder: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// CreateIfMissing writes a default config.json if none exists.
func CreateIfMissing(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return Save(fs, path, Default())
}

// LoadOrCreate writes a default config.json at path if none exists, then
// loads it.
func LoadOrCreate(fs afero.Fs, path string) (*Config, error) {
	if err := CreateIfMissing(fs, path); err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}
	return Load(fs, path)
}

// migrate handles any necessary migrations from older config versions
func migrate(cfg *Config) *Config {
	// Files without a version predate the volume setting
	if cfg.Version == 0 {
		cfg.Version = currentVersion
		if cfg.Volume == 0 {
			cfg.Volume = defaultVolume
		}
	}

	// Ensure defaults for any missing fields
	if cfg.CPUHz == 0 {
		cfg.CPUHz = defaultCPUHz
	}
	if cfg.Profile == "" {
		cfg.Profile = defaultProfile
	}
	if cfg.Scale == 0 {
		cfg.Scale = defaultScale
	}
	if cfg.Palette.On == "" {
		cfg.Palette.On = defaultOnColor
	}
	if cfg.Palette.Off == "" {
		cfg.Palette.Off = defaultOffColor
	}

	return cfg
}
