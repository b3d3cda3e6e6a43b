package config

import (
	"path/filepath"

	"github.com/josephlewis42/kbuild/core/logger"
	"github.com/rotisserie/eris"
)

// ParentLogName is the log in LogDir that collects the output of every run.
const ParentLogName = "kbuild.log"

// Paths are the locations a run uses, resolved once from the configuration.
type Paths struct {
	// Base is the directory holding the configuration.
	Base string
	// Config is the configuration file.
	Config string
	// ArchDir holds one script per supported architecture.
	ArchDir string
	// LogDir receives the run logs.
	LogDir string
	// LogFile is this run's log.
	LogFile string
	// ParentLog receives a copy of LogFile when the run ends.
	ParentLog string
}

// ResolvePaths computes the run paths. Relative paths are taken from base,
// which defaults to the configuration directory.
func (c *Configuration) ResolvePaths(base string) (*Paths, error) {
	if base == "" {
		base = c.configurationDir
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}

	out := &Paths{
		Base:    base,
		Config:  filepath.Join(base, ConfigurationName),
		ArchDir: resolve(base, c.ArchDir),
		LogDir:  resolve(base, c.LogDir),
	}

	logName := c.LogName
	if logName == "" {
		if logName, err = logger.LogName(); err != nil {
			return nil, err
		}
	}
	out.LogFile = filepath.Join(out.LogDir, logName)
	out.ParentLog = filepath.Join(out.LogDir, ParentLogName)
	if out.LogFile == out.ParentLog {
		return nil, eris.Errorf("log_name can't be %s, it's used for the parent log", ParentLogName)
	}

	return out, nil
}

// ArchScript is the script for an architecture.
func (p *Paths) ArchScript(arch string) string {
	return filepath.Join(p.ArchDir, arch)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
