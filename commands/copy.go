package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
)

// transfer is a copy or move of sources into a destination.
type transfer struct {
	fs      afero.Fs
	sources []string
	dest    string
}

// newTransfer splits args into sources and a destination. More than one
// source requires the destination to be an existing directory.
func newTransfer(fsys afero.Fs, name string, args []string) (*transfer, error) {
	if len(args) < 2 {
		return nil, eris.Errorf("%s: destination is not set", name)
	}

	t := &transfer{
		fs:      fsys,
		sources: args[:len(args)-1],
		dest:    args[len(args)-1],
	}

	destIsDir, _ := afero.IsDir(fsys, t.dest)
	if !destIsDir && len(t.sources) > 1 {
		return nil, eris.Errorf("%s: destination %q is not a directory, cannot overwrite files", name, t.dest)
	}

	return t, nil
}

// target is where src ends up: inside dest when dest is a directory,
// dest itself otherwise.
func (t *transfer) target(src string) string {
	if isDir, _ := afero.IsDir(t.fs, t.dest); isDir {
		return filepath.Join(t.dest, filepath.Base(src))
	}
	return t.dest
}

// copyFile copies one regular file, keeping its permission bits.
func copyFile(fsys afero.Fs, src, dst string) (int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, eris.Wrapf(err, "couldn't open %s", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, eris.Wrapf(err, "couldn't stat %s", src)
	}

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, eris.Wrapf(err, "couldn't create %s", dst)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, eris.Wrapf(err, "couldn't copy %s to %s", src, dst)
	}

	return n, out.Close()
}

// copyTree copies the directory src to dst, which must not exist yet.
func copyTree(fsys afero.Fs, src, dst string) (int64, error) {
	if exists, _ := afero.Exists(fsys, dst); exists {
		return 0, eris.Errorf("%s already exists", dst)
	}

	var total int64
	err := afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return fsys.MkdirAll(target, info.Mode().Perm())
		}

		n, err := copyFile(fsys, path, target)
		total += n
		return err
	})

	return total, eris.Wrapf(err, "couldn't copy tree %s", src)
}

// copyAny copies a file or a directory tree.
func copyAny(fsys afero.Fs, src, dst string) (int64, error) {
	isDir, err := afero.IsDir(fsys, src)
	if err != nil {
		return 0, eris.Wrapf(err, "couldn't stat %s", src)
	}
	if isDir {
		return copyTree(fsys, src, dst)
	}
	return copyFile(fsys, src, dst)
}

// Copy copies files and directories.
func Copy(ctx context.Context, env *script.Env, args []string) script.Result {
	t, err := newTransfer(env.Fs, "copy", args)
	if err != nil {
		return script.Err(err)
	}

	var total int64
	for _, src := range t.sources {
		dst := t.target(src)

		n, err := copyAny(env.Fs, src, dst)
		total += n
		if err != nil {
			return script.Err(err)
		}

		env.Log().Debug().Str("src", src).Str("dst", dst).Msg("copied")
	}

	env.Log().Trace().Str("size", BytesToHuman(total)).Int("sources", len(t.sources)).Msg("copy finished")
	return script.Success()
}

// Move renames files and directories, copying when a rename isn't possible.
func Move(ctx context.Context, env *script.Env, args []string) script.Result {
	t, err := newTransfer(env.Fs, "move", args)
	if err != nil {
		return script.Err(err)
	}

	for _, src := range t.sources {
		dst := t.target(src)

		if err := env.Fs.Rename(src, dst); err != nil {
			exists, _ := afero.Exists(env.Fs, src)
			if !exists {
				return script.Err(eris.Wrapf(err, "couldn't move %s", src))
			}

			// Rename fails across devices.
			env.Log().Debug().Err(err).Str("src", src).Msg("rename failed, copying instead")
			if _, err := copyAny(env.Fs, src, dst); err != nil {
				return script.Err(err)
			}
			if err := env.Fs.RemoveAll(src); err != nil {
				return script.Err(eris.Wrapf(err, "couldn't remove %s after copy", src))
			}
		}

		env.Log().Debug().Str("src", src).Str("dst", dst).Msg("moved")
	}

	return script.Success()
}

func init() {
	mustAddCmd("copy", "copy SOURCE... DEST", "Copy files and directories.", Copy)
	mustAddCmd("move", "move SOURCE... DEST", "Move files and directories.", Move)
}
