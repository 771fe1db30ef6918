package config

import (
	"crypto/subtle"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/fakedevice/core/vos"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "event_logs"
	EventLogName      = "events.jsonl"
	PrivateKeyName    = "private_key"
	AppLogName        = "app.log"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	Device      Device  `json:"device"`
	Users       []User  `json:"users" validate:"required,min=1,unique=Name,dive"`
	DefaultUser string  `json:"default_user" validate:"required"`
	Storage     Storage `json:"storage"`
	SSH         SSH     `json:"ssh"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	for _, u := range c.Users {
		if u.Name == c.DefaultUser {
			return nil
		}
	}
	return fmt.Errorf("default_user %q isn't in users", c.DefaultUser)
}

type Device struct {
	Props map[string]string `json:"props" validate:"required"`
	Path  string            `json:"path" validate:"required"`
	Dirs  []string          `json:"dirs" validate:"dive,startswith=/"`
}

type User struct {
	Name string `json:"name" validate:"required"`
	UID  int    `json:"uid" validate:"gte=0"`
	Home string `json:"home" validate:"required,startswith=/"`
}

type Storage struct {
	// Dir holds the device filesystem on the host, empty means in-memory.
	Dir string `json:"dir"`
}

type SSH struct {
	ListenAddress        string   `json:"listen_address" validate:"required,hostname_port"`
	OutputBytesPerSecond int64    `json:"output_bytes_per_second" validate:"gte=0"`
	Passwords            []string `json:"passwords" validate:"unique"`
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// PrivateKeyPem returns the bytes of the SSH host key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), PrivateKeyName)
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// OpenEventLog opens the interaction event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if err := c.fs().MkdirAll(LogsDirName, 0700); err != nil {
		return nil, err
	}
	return c.fs().OpenFile(filepath.Join(LogsDirName, EventLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(filepath.Join(LogsDirName, EventLogName), os.O_RDONLY, 0600)
}

// CheckPassword reports whether the SSH server should accept the password.
func (c *Configuration) CheckPassword(password string) bool {
	if len(c.SSH.Passwords) == 0 {
		return true
	}
	for _, p := range c.SSH.Passwords {
		if subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1 {
			return true
		}
	}
	return false
}

// DeviceUsers converts the configured users to device accounts.
func (c *Configuration) DeviceUsers() []vos.User {
	var out []vos.User
	for _, u := range c.Users {
		out = append(out, vos.User{Name: u.Name, UID: u.UID, Home: u.Home})
	}
	return out
}

// StorageFs creates the filesystem backing the device, seeded with the
// configured directories.
func (c *Configuration) StorageFs() (vos.VFS, error) {
	dir := c.Storage.Dir
	if dir != "" && !filepath.IsAbs(dir) && c.configDir != "" {
		dir = filepath.Join(c.configDir, dir)
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, err
		}
	}

	fs := vos.NewStorageFs(dir)
	if err := vos.SeedDirs(fs, c.Device.Dirs); err != nil {
		return nil, err
	}
	return fs, nil
}

// NewDevice boots a device described by the configuration.
func (c *Configuration) NewDevice(resolver vos.ProcessResolver, now vos.TimeSource) (*vos.Device, error) {
	fs, err := c.StorageFs()
	if err != nil {
		return nil, err
	}

	return vos.NewDevice(fs, resolver, vos.DeviceOptions{
		Props:       c.Device.Props,
		Users:       c.DeviceUsers(),
		DefaultUser: c.DefaultUser,
		Path:        c.Device.Path,
		TimeSource:  now,
	})
}

// Default returns the built-in configuration, it isn't backed by a directory
// so only the device settings are usable.
func Default() *Configuration {
	cfg := defaultConfig()
	cfg.configFs = afero.NewMemMapFs()
	return cfg
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
