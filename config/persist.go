package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/logger"
)

// WriteDefault writes a starter config file at path, creating parent
// directories as needed. An existing file is rotated into .back1..3 first
// so a careless init never destroys a hand-edited config.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrapf(err, "failed to create config directory for %s", path)
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to back up existing config")
	}

	defaults := map[string]interface{}{
		"output": map[string]interface{}{
			"dir": "",
		},
		"manifest": map[string]interface{}{
			"time_layout": DefaultManifestTimeLayout,
		},
		"convert": map[string]interface{}{
			"types": []string{},
			"years": []string{},
			"gear":  []string{},
		},
		"log": map[string]interface{}{
			"json":  false,
			"theme": "everforest",
		},
	}

	data, err := toml.Marshal(defaults)
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before a
// config file is overwritten.
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Deletion failures don't block the save.
		logger.Warnw("Failed to delete old config backup", "file", back3, "error", err)
	}
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
