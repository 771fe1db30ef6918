package config

import (
	"encoding/pem"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	cfg, err := Initialize(tempDir, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Load", func(t *testing.T) {
		loaded, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
		assert.Equal(t, cfg.Users, loaded.Users)
	})

	t.Run("OpenAppLog", func(t *testing.T) {
		fd, err := cfg.OpenAppLog()
		assert.Nil(t, err)
		fd.Close()

		fd, err = cfg.ReadAppLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("OpenEventLog", func(t *testing.T) {
		fd, err := cfg.OpenEventLog()
		assert.Nil(t, err)
		fd.Close()
		assert.FileExists(t, filepath.Join(tempDir, LogsDirName, EventLogName))
	})

	t.Run("PrivateKeyPem", func(t *testing.T) {
		keyPem, err := cfg.PrivateKeyPem()
		assert.Nil(t, err)
		block, _ := pem.Decode(keyPem)
		if assert.NotNil(t, block) {
			assert.Equal(t, "PRIVATE KEY", block.Type)
		}
	})
}

func TestInitialize_keepsExisting(t *testing.T) {
	tempDir := t.TempDir()
	logger := log.New(io.Discard, "", 0)
	if _, err := Initialize(tempDir, logger); err != nil {
		t.Fatal(err)
	}

	keyPath := filepath.Join(tempDir, PrivateKeyName)
	before, err := os.ReadFile(keyPath)
	assert.Nil(t, err)

	if _, err := Initialize(tempDir, logger); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(keyPath)
	assert.Nil(t, err)
	assert.Equal(t, before, after)
}

func TestLoad_invalid(t *testing.T) {
	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, ConfigurationName), []byte("unknown_field: true\n"), 0600)
	assert.Nil(t, err)

	_, err = Load(tempDir)
	assert.Error(t, err)
}

func TestLoad_missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
