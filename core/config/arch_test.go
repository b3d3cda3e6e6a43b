package config

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectArch(t *testing.T) {
	rules, err := defaultConfig().ArchRules()
	require.NoError(t, err)

	cases := map[string]string{
		"i386":        "x86",
		"i686":        "x86",
		"x86_64":      "x86_64",
		"sun4u":       "sparc64",
		"armv7l":      "arm",
		"sa110":       "arm",
		"s390x":       "s390",
		"ppc64le":     "powerpc",
		"mips64":      "mips",
		"sh4":         "sh",
		"aarch64":     "arm64",
		"riscv64":     "riscv",
		"loongarch64": "loongarch",
		"m68k":        "m68k",
		"":            "",
	}

	for machine, want := range cases {
		t.Run(machine, func(t *testing.T) {
			assert.Equal(t, want, DetectArch(machine, rules))
		})
	}
}

func TestDetectArch_chained(t *testing.T) {
	rules, err := ParseArchAliases([]string{"a/b", "b/c"})
	require.NoError(t, err)

	assert.Equal(t, "ccc", DetectArch("abc", rules))
	assert.Equal(t, "abc", DetectArch("abc", nil))
}

func TestSupportedArches(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/arch/x86_64", []byte("echo x"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/proj/arch/arm64", []byte("echo a"), 0644))
	require.NoError(t, fsys.MkdirAll("/proj/arch/shared", 0755))

	got, err := SupportedArches(fsys, "/proj/arch")
	require.NoError(t, err)
	assert.Equal(t, []string{"arm64", "x86_64"}, got)

	got, err = SupportedArches(fsys, "/missing")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadArchScript(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/arch/x86_64", []byte("echo x"), 0644))

	cfg := Default("/proj")
	cfg.configFs = fsys
	paths, err := cfg.ResolvePaths("")
	require.NoError(t, err)

	got, err := cfg.ReadArchScript(paths, "x86_64")
	require.NoError(t, err)
	assert.Equal(t, "echo x", got)

	_, err = cfg.ReadArchScript(paths, "sparc64")
	assert.True(t, eris.Is(err, ErrArchNotSupported))
}

func TestMachine(t *testing.T) {
	assert.NotEmpty(t, Machine())
}
