package vos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestWorkdirFs(t *testing.T) {
	base := afero.NewMemMapFs()
	assert.NoError(t, SeedDirs(base, []string{"/data/local/tmp", "/sdcard"}))

	wd := "/data/local/tmp"
	fs := NewWorkdirFs(base, func() string { return wd })

	assert.NoError(t, afero.WriteFile(fs, "a.txt", []byte("hello"), 0644))
	assert.NoError(t, fs.MkdirAll("sub/dir", 0755))

	got, err := afero.ReadFile(base, "/data/local/tmp/a.txt")
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	stat, err := base.Stat("/data/local/tmp/sub/dir")
	assert.NoError(t, err)
	assert.True(t, stat.IsDir())

	wd = "/sdcard"
	assert.NoError(t, fs.Rename("/data/local/tmp/a.txt", "b.txt"))
	_, err = base.Stat("/sdcard/b.txt")
	assert.NoError(t, err)

	assert.NoError(t, fs.Remove("b.txt"))
	_, err = fs.Stat("b.txt")
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, fs.RemoveAll("../data/local/tmp/sub"))
	_, err = base.Stat("/data/local/tmp/sub")
	assert.True(t, os.IsNotExist(err))
}

func TestNewStorageFs(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		fs := NewStorageFs("")
		assert.Equal(t, "MemMapFS", fs.Name())
	})

	t.Run("disk", func(t *testing.T) {
		dir := t.TempDir()
		fs := NewStorageFs(dir)
		assert.NoError(t, SeedDirs(fs, []string{"/sdcard"}))

		stat, err := os.Stat(filepath.Join(dir, "sdcard"))
		assert.NoError(t, err)
		assert.True(t, stat.IsDir())
	})
}
