package commands

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedFs writes path -> contents into fsys.
func seedFs(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()

	for path, contents := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(contents), 0644))
	}
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	b, err := afero.ReadFile(fsys, path)
	require.NoError(t, err, path)
	return string(b)
}

func TestCopy(t *testing.T) {
	cases := map[string]struct {
		args      []string
		wantFiles map[string]string
		wantErr   string
	}{
		"file to new name": {
			args:      []string{"/src/a.txt", "/b.txt"},
			wantFiles: map[string]string{"/b.txt": "aaa"},
		},
		"file over file": {
			args:      []string{"/src/a.txt", "/src/b.txt"},
			wantFiles: map[string]string{"/src/b.txt": "aaa"},
		},
		"file into directory": {
			args:      []string{"/src/a.txt", "/out"},
			wantFiles: map[string]string{"/out/a.txt": "aaa"},
		},
		"several files into directory": {
			args:      []string{"/src/a.txt", "/src/b.txt", "/out"},
			wantFiles: map[string]string{"/out/a.txt": "aaa", "/out/b.txt": "bbb"},
		},
		"tree to new name": {
			args:      []string{"/src", "/copy"},
			wantFiles: map[string]string{"/copy/a.txt": "aaa", "/copy/nested/c.txt": "ccc"},
		},
		"tree into directory": {
			args:      []string{"/src", "/out"},
			wantFiles: map[string]string{"/out/src/a.txt": "aaa", "/out/src/nested/c.txt": "ccc"},
		},
		"several sources need a directory": {
			args:    []string{"/src/a.txt", "/src/b.txt", "/missing"},
			wantErr: "not a directory",
		},
		"no destination": {
			args:    []string{"/src/a.txt"},
			wantErr: "destination is not set",
		},
		"no arguments": {
			args:    []string{},
			wantErr: "destination is not set",
		},
		"missing source": {
			args:    []string{"/nope.txt", "/out"},
			wantErr: "nope.txt",
		},
		"tree over existing file": {
			args:    []string{"/src", "/src/b.txt"},
			wantErr: "already exists",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			h := newTestEnv(t)
			seedFs(t, h.Fs, map[string]string{
				"/src/a.txt":        "aaa",
				"/src/b.txt":        "bbb",
				"/src/nested/c.txt": "ccc",
			})
			require.NoError(t, h.Fs.MkdirAll("/out", 0755))

			result := Copy(context.Background(), h.Env, tc.args)

			if tc.wantErr != "" {
				assert.True(t, result.IsErr())
				assert.Contains(t, result.Message(), tc.wantErr)
				return
			}

			require.True(t, result.IsOk(), result.Message())
			for path, want := range tc.wantFiles {
				assert.Equal(t, want, readFile(t, h.Fs, path), path)
			}
			assert.Equal(t, "aaa", readFile(t, h.Fs, "/src/a.txt"), "source is kept")
		})
	}
}

func TestMove(t *testing.T) {
	cases := map[string]struct {
		args      []string
		wantFiles map[string]string
		wantGone  []string
		wantErr   string
	}{
		"rename": {
			args:      []string{"/src/a.txt", "/b.txt"},
			wantFiles: map[string]string{"/b.txt": "aaa"},
			wantGone:  []string{"/src/a.txt"},
		},
		"into directory": {
			args:      []string{"/src/a.txt", "/src/b.txt", "/out"},
			wantFiles: map[string]string{"/out/a.txt": "aaa", "/out/b.txt": "bbb"},
			wantGone:  []string{"/src/a.txt", "/src/b.txt"},
		},
		"several sources need a directory": {
			args:    []string{"/src/a.txt", "/src/b.txt", "/c.txt"},
			wantErr: "not a directory",
		},
		"missing source": {
			args:    []string{"/nope.txt", "/out"},
			wantErr: "couldn't move",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			h := newTestEnv(t)
			seedFs(t, h.Fs, map[string]string{
				"/src/a.txt": "aaa",
				"/src/b.txt": "bbb",
			})
			require.NoError(t, h.Fs.MkdirAll("/out", 0755))

			result := Move(context.Background(), h.Env, tc.args)

			if tc.wantErr != "" {
				assert.True(t, result.IsErr())
				assert.Contains(t, result.Message(), tc.wantErr)
				return
			}

			require.True(t, result.IsOk(), result.Message())
			for path, want := range tc.wantFiles {
				assert.Equal(t, want, readFile(t, h.Fs, path), path)
			}
			for _, path := range tc.wantGone {
				exists, err := afero.Exists(h.Fs, path)
				require.NoError(t, err)
				assert.False(t, exists, path)
			}
		})
	}
}

func TestCopy_fromScript(t *testing.T) {
	h := newTestEnv(t, "workdir", "/work")
	seedFs(t, h.Fs, map[string]string{"/work/kernel.bin": "elf"})

	_, err := h.Run("mkdir /work/iso/boot\ncopy ?workdir?/kernel.bin ?workdir?/iso/boot")

	require.NoError(t, err)
	assert.Equal(t, "elf", readFile(t, h.Fs, "/work/iso/boot/kernel.bin"))
}
