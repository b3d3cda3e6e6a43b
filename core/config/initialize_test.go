package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	logger := zerolog.Nop()
	if _, err := Initialize(tempDir, &logger); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("HostArchScript", func(t *testing.T) {
		paths, err := cfg.ResolvePaths("")
		require.NoError(t, err)
		arch, err := cfg.HostArch()
		require.NoError(t, err)

		script, err := cfg.ReadArchScript(paths, arch)
		assert.NoError(t, err)
		assert.Equal(t, string(sampleArchScript), script)
	})

	t.Run("Options", func(t *testing.T) {
		_, err := cfg.Options()
		assert.NoError(t, err)
	})
}

func TestInitialize_keepsExisting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	logger := zerolog.Nop()
	require.NoError(t, afero.WriteFile(fsys, "/proj/arch/x86", []byte("echo mine"), 0644))

	cfg, err := initialize(fsys, "/proj", "i686", &logger)
	require.NoError(t, err)
	assert.Equal(t, "/proj", cfg.Dir())

	script, err := afero.ReadFile(fsys, "/proj/arch/x86")
	require.NoError(t, err)
	assert.Equal(t, "echo mine", string(script))

	config, err := afero.ReadFile(fsys, "/proj/kbuild.yaml")
	require.NoError(t, err)
	assert.Equal(t, defaultConfigData, config)
}

func TestLoadFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/kbuild.yaml", []byte("log_dir: logs\narch_dir: arch\nfatal_mode: raise\n"), 0644))

	cfg, err := LoadFs(fsys, "/proj/kbuild.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/proj", cfg.Dir())
	assert.Equal(t, "raise", cfg.Fatal)

	_, err = LoadFs(fsys, "/missing")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fsys, "/bad/kbuild.yaml", []byte("unknown_field: 1\n"), 0644))
	_, err = LoadFs(fsys, "/bad")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fsys, "/invalid/kbuild.yaml", []byte("log_dir: x\narch_dir: y\nfatal_mode: never\n"), 0644))
	_, err = LoadFs(fsys, "/invalid")
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	fsys := afero.NewMemMapFs()

	cfg, err := LoadOrDefault(fsys, "/empty")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig().ArchAliases, cfg.ArchAliases)
	assert.Equal(t, "/empty", cfg.Dir())

	require.NoError(t, afero.WriteFile(fsys, "/proj/kbuild.yaml", []byte("log_dir: logs\narch_dir: scripts\n"), 0644))
	cfg, err = LoadOrDefault(fsys, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "scripts", cfg.ArchDir)
}
