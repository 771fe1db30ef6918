// Package core ties the simulated device, the shell and the event log
// together.
package core

import (
	"bytes"
	"errors"
	"sync"

	"github.com/josephlewis42/fakedevice/commands"
	"github.com/josephlewis42/fakedevice/core/config"
	"github.com/josephlewis42/fakedevice/core/logger"
	"github.com/josephlewis42/fakedevice/core/shell"
	"github.com/josephlewis42/fakedevice/core/vos"
)

// RunResult is the outcome of a script.
type RunResult struct {
	ExitCode int
	// Output holds everything the script wrote to stdout and stderr.
	Output string
}

// FakeDevice runs scripts against a single simulated device.
//
// Scripts are run one at a time because they share the device's current
// user and filesystem.
type FakeDevice struct {
	mu     sync.Mutex
	device *vos.Device
	logger *logger.Logger
}

// NewFakeDevice boots the device described by cfg. Events are sent to
// eventLog, which may be nil.
func NewFakeDevice(cfg *config.Configuration, eventLog *logger.Logger) (*FakeDevice, error) {
	device, err := cfg.NewDevice(commands.Resolve, nil)
	if err != nil {
		return nil, err
	}
	return NewFakeDeviceFrom(device, eventLog), nil
}

// NewFakeDeviceFrom wraps an existing device.
func NewFakeDeviceFrom(device *vos.Device, eventLog *logger.Logger) *FakeDevice {
	if eventLog == nil {
		eventLog = logger.NewNopLogger()
	}
	return &FakeDevice{
		device: device,
		logger: eventLog,
	}
}

// Device returns the underlying device.
func (f *FakeDevice) Device() *vos.Device {
	return f.device
}

// SetCurrentUser changes the user later scripts run as.
func (f *FakeDevice) SetCurrentUser(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.device.SetCurrentUser(name)
}

// ExecuteScript runs script with input on stdin and captures its output.
func (f *FakeDevice) ExecuteScript(script string, input []byte) (*RunResult, error) {
	var out bytes.Buffer
	files := vos.NewVIOAdapter(bytes.NewReader(input), &out, &out)

	code, err := f.Exec(f.logger.NewSession(""), script, files)
	return &RunResult{ExitCode: code, Output: out.String()}, err
}

// Exec runs script in a new login shell wired to files, recording events to
// session.
func (f *FakeDevice) Exec(session *logger.SessionLogger, script string, files vos.VIO) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session.Record(logger.NewScript(script))

	proc := f.device.LoginProc(session, files)
	defer proc.Release()

	code, err := shell.Run(proc, script)
	var syntaxErr *shell.SyntaxError
	if errors.As(err, &syntaxErr) {
		session.Record(logger.NewParseError(script, err))
	}
	return code, err
}
