// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate checks struct tags on RomcalcConfig.
var validate = validator.New()

// DefaultPath returns ~/.romcalc/romcalc.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".romcalc", "romcalc.yaml"), nil
}

// Load reads and validates the configuration.
//
// # Description
//
// An empty path means DefaultPath(). A missing default file is not an
// error and yields DefaultConfig(); nothing is written to disk. A missing
// file that was named explicitly is an error. Keys absent from the file
// keep their default values.
//
// # Outputs
//
//   - RomcalcConfig: defaults overlaid with the file's contents
//   - error: read, parse or validation failure
func Load(path string) (RomcalcConfig, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return RomcalcConfig{}, fmt.Errorf("failed to read the config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RomcalcConfig{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return RomcalcConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg RomcalcConfig) error {
	return validate.Struct(cfg)
}

// Write saves cfg as YAML, creating parent directories. Used by
// "romcalc config init".
func Write(path string, cfg RomcalcConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
