// Package config provides the configuration loader for deptree.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/deptree/internal/core/domain"
	"go.trai.ch/deptree/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a FileConfigLoader looking for DefaultFilename.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{Filename: DefaultFilename, logger: logger}
}

// Load searches cwd and its parents for the configuration file. The nearest
// file wins. When none exists an empty configuration is returned.
func (l *FileConfigLoader) Load(cwd string) (*domain.Config, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	for {
		path := filepath.Join(dir, l.Filename)
		info, statErr := os.Stat(path)
		if statErr == nil && info.Mode().IsRegular() {
			l.logger.Debug("using configuration " + path)
			return l.LoadFile(path)
		}
		if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(statErr, "failed to stat config file"), "path", path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return &domain.Config{}, nil
		}
		dir = parent
	}
}

// LoadFile reads the configuration from path.
func (l *FileConfigLoader) LoadFile(path string) (*domain.Config, error) {
	return Load(path)
}

// Load reads a configuration file from the given path.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalid(path, "failed to parse config file "+path+": "+err.Error())
	}

	if file.MaxConcurrency < 0 {
		return nil, invalid(path, "maxConcurrency in "+path+" must not be negative")
	}

	cfg := &domain.Config{
		MaxConcurrency: file.MaxConcurrency,
		FailFast:       file.FailFast,
		Env:            file.Env,
	}
	if file.TimeoutPerManifest != "" {
		d, err := time.ParseDuration(file.TimeoutPerManifest)
		if err != nil || d < 0 {
			return nil, invalid(path, "timeoutPerManifest in "+path+" must be a non-negative duration")
		}
		cfg.TimeoutPerManifest = d
	}
	return cfg, nil
}

func invalid(path, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidInput, msg), "path", path)
}
