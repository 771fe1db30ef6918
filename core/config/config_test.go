package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/josephlewis42/fakedevice/core/vos/vostest"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestConfiguration_Validate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"default": {
			mutate: func(*Configuration) {},
		},
		"no users": {
			mutate: func(c *Configuration) {
				c.Users = nil
			},
			wantErr: "users",
		},
		"duplicate users": {
			mutate: func(c *Configuration) {
				c.Users = append(c.Users, c.Users[0])
			},
			wantErr: "users",
		},
		"relative home": {
			mutate: func(c *Configuration) {
				c.Users[0].Home = "home"
			},
			wantErr: "home",
		},
		"unknown default user": {
			mutate: func(c *Configuration) {
				c.DefaultUser = "nobody"
			},
			wantErr: `default_user "nobody" isn't in users`,
		},
		"bad listen address": {
			mutate: func(c *Configuration) {
				c.SSH.ListenAddress = "localhost"
			},
			wantErr: "listen_address",
		},
		"negative rate": {
			mutate: func(c *Configuration) {
				c.SSH.OutputBytesPerSecond = -1
			},
			wantErr: "output_bytes_per_second",
		},
		"relative seed dir": {
			mutate: func(c *Configuration) {
				c.Device.Dirs = []string{"sdcard"}
			},
			wantErr: "dirs",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfiguration_CheckPassword(t *testing.T) {
	cfg := defaultConfig()
	assert.True(t, cfg.CheckPassword("anything"))

	cfg.SSH.Passwords = []string{"hunter2"}
	assert.True(t, cfg.CheckPassword("hunter2"))
	assert.False(t, cfg.CheckPassword("anything"))
}

func TestConfiguration_NewDevice(t *testing.T) {
	cfg := Default()
	device, err := cfg.NewDevice(nil, vostest.TimeSource)
	assert.NoError(t, err)

	model, ok := device.Getprop("ro.product.model")
	assert.True(t, ok)
	assert.Equal(t, "Pixel 6", model)

	assert.Equal(t, "shell", device.CurrentUser().Name)
	assert.Equal(t, vostest.TimeSource(), device.BootTime())

	for _, dir := range cfg.Device.Dirs {
		info, err := device.Fs().Stat(dir)
		if assert.NoError(t, err, dir) {
			assert.True(t, info.IsDir(), dir)
		}
	}
}

func TestConfiguration_StorageFs(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = t.TempDir()

	fs, err := cfg.StorageFs()
	assert.NoError(t, err)
	assert.NoError(t, fs.MkdirAll("/sdcard/Download", 0700))

	// A second filesystem over the same directory sees earlier writes.
	again, err := cfg.StorageFs()
	assert.NoError(t, err)
	_, err = again.Stat("/sdcard/Download")
	assert.NoError(t, err)
}
