package config

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Initialize writes the default configuration and a sample script for the
// host architecture into dir. Existing files are left alone.
func Initialize(dir string, logger *zerolog.Logger) (*Configuration, error) {
	return initialize(afero.NewOsFs(), dir, Machine(), logger)
}

func initialize(fsys afero.Fs, dir, machine string, logger *zerolog.Logger) (*Configuration, error) {
	cfg := Default(dir)
	cfg.configFs = fsys

	rules, err := cfg.ArchRules()
	if err != nil {
		return nil, err
	}
	arch := DetectArch(machine, rules)

	files := []struct {
		path string
		data []byte
	}{
		{filepath.Join(dir, ConfigurationName), defaultConfigData},
		{filepath.Join(dir, cfg.ArchDir, arch), sampleArchScript},
	}

	for _, file := range files {
		exists, err := afero.Exists(fsys, file.path)
		if err != nil {
			return nil, err
		}
		if exists {
			logger.Info().Str("path", file.path).Msg("already exists, skipping")
			continue
		}

		if err := fsys.MkdirAll(filepath.Dir(file.path), 0755); err != nil {
			return nil, eris.Wrapf(err, "couldn't create %s", filepath.Dir(file.path))
		}
		if err := afero.WriteFile(fsys, file.path, file.data, 0644); err != nil {
			return nil, eris.Wrapf(err, "couldn't write %s", file.path)
		}
		logger.Info().Str("path", file.path).Msg("created")
	}

	return LoadFs(fsys, dir)
}
