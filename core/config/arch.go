package config

import (
	"os"
	"runtime"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
)

// ErrArchNotSupported is returned when there's no script for an architecture.
var ErrArchNotSupported = eris.New("arch not supported yet")

// DetectArch maps a machine name like the output of `uname -m` to an
// architecture name. Every rule is applied in turn to the output of the
// previous one.
func DetectArch(machine string, rules []ArchRule) string {
	arch := machine
	for _, rule := range rules {
		arch = rule.Pattern.ReplaceAllString(arch, rule.Replacement)
	}
	return arch
}

// HostArch detects the architecture of the running machine.
func (c *Configuration) HostArch() (string, error) {
	rules, err := c.ArchRules()
	if err != nil {
		return "", err
	}
	return DetectArch(Machine(), rules), nil
}

// CheckSystem reports whether builds can run on this host.
func CheckSystem() error {
	if runtime.GOOS != "linux" {
		return eris.Errorf("unsupported system %s, only linux can build", runtime.GOOS)
	}
	return nil
}

// SupportedArches lists the architectures that have a script in dir.
func SupportedArches(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	switch {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, eris.Wrapf(err, "couldn't list %s", dir)
	}

	var out []string
	for _, entry := range entries {
		if entry.Mode().IsRegular() {
			out = append(out, entry.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// SupportedArches lists the architectures with a script in the arch directory.
func (c *Configuration) SupportedArches(paths *Paths) ([]string, error) {
	return SupportedArches(c.fs(), paths.ArchDir)
}

// ReadArchScript returns the script for arch, or ErrArchNotSupported.
func (c *Configuration) ReadArchScript(paths *Paths, arch string) (string, error) {
	supported, err := c.SupportedArches(paths)
	if err != nil {
		return "", err
	}

	idx := sort.SearchStrings(supported, arch)
	if idx == len(supported) || supported[idx] != arch {
		return "", eris.Wrapf(ErrArchNotSupported, "no script for %s in %s", arch, paths.ArchDir)
	}

	data, err := afero.ReadFile(c.fs(), paths.ArchScript(arch))
	if err != nil {
		return "", eris.Wrapf(err, "couldn't read script for %s", arch)
	}
	return string(data), nil
}
