package vostest

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/josephlewis42/fakedevice/core/logger"
	"github.com/josephlewis42/fakedevice/core/vos"
	"github.com/spf13/afero"
)

// EventRecorder keeps every event it's given, in order.
type EventRecorder struct {
	mu     sync.Mutex
	Events []*logger.LogEntry
}

// Record implements vos.EventRecorder.
func (r *EventRecorder) Record(event *logger.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return nil
}

// Types returns the type of each recorded event.
func (r *EventRecorder) Types() []logger.LogType {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []logger.LogType
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}

func SingleProcessResolver(process vos.ProcessFunc) vos.ProcessResolver {
	return func(path string) vos.ProcessFunc {
		return process
	}
}

// MapResolver resolves commands by name from a map.
func MapResolver(commands map[string]vos.ProcessFunc) vos.ProcessResolver {
	return func(name string) vos.ProcessFunc {
		return commands[name]
	}
}

// TimeSource returns a fixed time.
func TimeSource() time.Time {
	// Go's reference timestmap with a different value in each position.
	return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
}

// NewDeterministicDevice creates an in-memory device with fixed properties,
// users and time.
func NewDeterministicDevice(resolver vos.ProcessResolver) *vos.Device {
	fs := afero.NewMemMapFs()
	if err := vos.SeedDirs(fs, []string{"/data/local/tmp", "/sdcard", "/system/bin"}); err != nil {
		panic(err)
	}

	device, err := vos.NewDevice(fs, resolver, vos.DeviceOptions{
		Props: map[string]string{
			"ro.product.manufacturer":  "Google",
			"ro.product.model":         "Pixel",
			"ro.product.cpu.abilist":   "arm64-v8a,armeabi-v7a,armeabi",
			"ro.build.version.release": "12",
			"ro.build.version.sdk":     "31",
		},
		Users: []vos.User{
			{Name: "root", UID: 0, Home: "/"},
			{Name: "shell", UID: 2000, Home: "/data/local/tmp"},
		},
		DefaultUser: "shell",
		Path:        "/system/bin",
		TimeSource:  TimeSource,
	})
	if err != nil {
		panic(err)
	}
	return device
}

// NewDeterministicOS creates a login shell process on a deterministic device.
func NewDeterministicOS(resolver vos.ProcessResolver) vos.VOS {
	return NewDeterministicDevice(resolver).LoginProc(&EventRecorder{}, nil)
}

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// If Env is non-empty, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int

	// Resolver is used to look up child processes, by default every name
	// resolves to Process.
	Resolver vos.ProcessResolver
	// Recorder receives the events the process logs.
	Recorder *EventRecorder

	Setup func(vos.VOS) error
}

func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
	}
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	// stdout, stderr
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the comand and waits for it to complete.
func (c *Cmd) Run() error {
	resolver := c.Resolver
	if resolver == nil {
		resolver = SingleProcessResolver(c.Process)
	}
	if c.Recorder == nil {
		c.Recorder = &EventRecorder{}
	}

	login := NewDeterministicDevice(resolver).LoginProc(c.Recorder, nil)
	defer login.Release()

	runner, err := login.StartProcess(c.Argv[0], c.Argv, &vos.ProcAttr{
		Dir:   c.Dir,
		Env:   c.Env,
		Files: vos.NewVIOAdapter(c.Stdin, c.Stdout, c.Stderr),
		Exec:  c.Process,
	})
	if err != nil {
		return err
	}

	if c.Setup != nil {
		if err := c.Setup(runner); err != nil {
			return err
		}
	}

	c.ExitStatus = runner.Run()
	return nil
}
