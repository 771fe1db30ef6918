package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize creates a configuration in dir: the default config.yaml, an SSH
// host key and the log directory. Existing files are left untouched.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, 0700); err != nil {
		return nil, err
	}

	if err := InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), absDir), logger); err != nil {
		return nil, err
	}

	return Load(absDir)
}

// InitializeFs writes a default configuration to the root of fs.
func InitializeFs(fs afero.Fs, logger *log.Logger) error {
	if err := writeIfMissing(fs, logger, ConfigurationName, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return err
	}

	if err := writeIfMissing(fs, logger, PrivateKeyName, generateHostKey); err != nil {
		return err
	}

	logger.Printf("Creating %s\n", LogsDirName)
	return fs.MkdirAll(LogsDirName, 0700)
}

func writeIfMissing(fs afero.Fs, logger *log.Logger, name string, contents func() ([]byte, error)) error {
	if exists, err := afero.Exists(fs, name); err != nil || exists {
		if exists {
			logger.Printf("Keeping existing %s\n", name)
		}
		return err
	}

	logger.Printf("Writing %s\n", name)
	data, err := contents()
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, name, data, 0600)
}

// generateHostKey creates a PEM encoded ed25519 private key.
func generateHostKey() ([]byte, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}
