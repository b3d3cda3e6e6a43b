package config

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs loads the configuration from a directory of fsys.
func LoadFs(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a kbuild.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, eris.Wrapf(err, "couldn't read configuration in %s", path)
	}

	out, err := parseConfig(configContents)
	if err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid configuration")
	}

	out.configFs = fsys
	out.configurationDir = path
	return out, nil
}

// LoadOrDefault loads the configuration in path, or returns the built-in one
// rooted at path when there's no configuration file.
func LoadOrDefault(fsys afero.Fs, path string) (*Configuration, error) {
	if filepath.Base(path) == ConfigurationName {
		return LoadFs(fsys, path)
	}

	exists, err := afero.Exists(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	if exists {
		return LoadFs(fsys, path)
	}

	out := Default(path)
	out.configFs = fsys
	return out, nil
}
