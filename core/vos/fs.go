package vos

import (
	"os"
	"path"
	"time"

	"github.com/spf13/afero"
)

// VFS implements a virtual filesystem.
type VFS = afero.Fs

// NewStorageFs creates the device's backing storage. If dir is empty the
// storage lives in memory, otherwise it's rooted at dir on the host like the
// device's sd-card directory.
func NewStorageFs(dir string) VFS {
	if dir == "" {
		return afero.NewMemMapFs()
	}
	return afero.NewBasePathFs(afero.NewOsFs(), dir)
}

// SeedDirs creates the directories every device is assumed to have.
func SeedDirs(fs VFS, dirs []string) error {
	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0775); err != nil {
			return err
		}
	}
	return nil
}

// WorkdirFs resolves relative paths against a process's working directory
// before handing them to the device filesystem.
type WorkdirFs struct {
	BaseFs VFS
	Getwd  func() string
}

var _ VFS = (*WorkdirFs)(nil)

// NewWorkdirFs creates a filesystem view relative to the directory
// returned by getwd.
func NewWorkdirFs(base VFS, getwd func() string) *WorkdirFs {
	return &WorkdirFs{BaseFs: base, Getwd: getwd}
}

func (w *WorkdirFs) resolve(name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	return path.Join(w.Getwd(), name)
}

func (w *WorkdirFs) Name() string {
	return "WorkdirFs"
}

func (w *WorkdirFs) Chtimes(name string, atime, mtime time.Time) error {
	return w.BaseFs.Chtimes(w.resolve(name), atime, mtime)
}

func (w *WorkdirFs) Chmod(name string, mode os.FileMode) error {
	return w.BaseFs.Chmod(w.resolve(name), mode)
}

func (w *WorkdirFs) Chown(name string, uid, gid int) error {
	return w.BaseFs.Chown(w.resolve(name), uid, gid)
}

func (w *WorkdirFs) Stat(name string) (os.FileInfo, error) {
	return w.BaseFs.Stat(w.resolve(name))
}

func (w *WorkdirFs) Rename(oldname, newname string) error {
	return w.BaseFs.Rename(w.resolve(oldname), w.resolve(newname))
}

func (w *WorkdirFs) RemoveAll(name string) error {
	return w.BaseFs.RemoveAll(w.resolve(name))
}

func (w *WorkdirFs) Remove(name string) error {
	return w.BaseFs.Remove(w.resolve(name))
}

func (w *WorkdirFs) OpenFile(name string, flag int, mode os.FileMode) (afero.File, error) {
	return w.BaseFs.OpenFile(w.resolve(name), flag, mode)
}

func (w *WorkdirFs) Open(name string) (afero.File, error) {
	return w.BaseFs.Open(w.resolve(name))
}

func (w *WorkdirFs) Mkdir(name string, mode os.FileMode) error {
	return w.BaseFs.Mkdir(w.resolve(name), mode)
}

func (w *WorkdirFs) MkdirAll(name string, mode os.FileMode) error {
	return w.BaseFs.MkdirAll(w.resolve(name), mode)
}

func (w *WorkdirFs) Create(name string) (afero.File, error) {
	return w.BaseFs.Create(w.resolve(name))
}
