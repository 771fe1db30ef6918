package core

import (
	"sync"
	"testing"

	"github.com/josephlewis42/fakedevice/commands"
	"github.com/josephlewis42/fakedevice/core/config"
	"github.com/josephlewis42/fakedevice/core/logger"
	"github.com/josephlewis42/fakedevice/core/shell"
	"github.com/josephlewis42/fakedevice/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

type eventLog struct {
	mu      sync.Mutex
	entries []*logger.LogEntry
}

func (e *eventLog) logger() *logger.Logger {
	return &logger.Logger{
		Record: func(le *logger.LogEntry) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.entries = append(e.entries, le)
			return nil
		},
		Now: vostest.TimeSource,
	}
}

func (e *eventLog) types() []logger.LogType {
	var out []logger.LogType
	for _, le := range e.entries {
		out = append(out, le.Type)
	}
	return out
}

func newTestDevice(events *eventLog) *FakeDevice {
	return NewFakeDeviceFrom(vostest.NewDeterministicDevice(commands.Resolve), events.logger())
}

func TestFakeDevice_ExecuteScript(t *testing.T) {
	cases := map[string]struct {
		script   string
		input    string
		wantCode int
		wantOut  string
	}{
		"echo": {
			script:  "echo hello",
			wantOut: "hello\n",
		},
		"input": {
			script:  "cat | wc -c",
			input:   "abc",
			wantOut: "3\n",
		},
		"home": {
			script:  "pwd",
			wantOut: "/data/local/tmp\n",
		},
		"unknown": {
			script:   "nope",
			wantCode: shell.ExitNotFound,
			wantOut:  "sh: nope: not found\n",
		},
		"failure": {
			script:   "true && false",
			wantCode: 1,
		},
		"property": {
			script:  "getprop ro.product.model",
			wantOut: "Pixel\n",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			device := newTestDevice(&eventLog{})
			res, err := device.ExecuteScript(tc.script, []byte(tc.input))
			assert.NoError(t, err)
			assert.Equal(t, tc.wantCode, res.ExitCode)
			assert.Equal(t, tc.wantOut, res.Output)
		})
	}
}

func TestFakeDevice_ExecuteScript_parseError(t *testing.T) {
	events := &eventLog{}
	device := newTestDevice(events)

	res, err := device.ExecuteScript("echo `a", nil)
	assert.Error(t, err)
	assert.Equal(t, shell.ExitSyntaxError, res.ExitCode)
	assert.Equal(t, []logger.LogType{logger.LogTypeScript, logger.LogTypeParseError}, events.types())
}

func TestFakeDevice_ExecuteScript_events(t *testing.T) {
	events := &eventLog{}
	device := newTestDevice(events)

	_, err := device.ExecuteScript("echo a | nope", nil)
	assert.NoError(t, err)

	assert.Equal(t, []logger.LogType{
		logger.LogTypeScript,
		logger.LogTypeRunCommand,
		logger.LogTypeUnknownCommand,
	}, events.types())
	assert.Equal(t, "echo a | nope", events.entries[0].Script)
	assert.Equal(t, events.entries[0].SessionID, events.entries[2].SessionID)
}

func TestFakeDevice_statePersists(t *testing.T) {
	device := newTestDevice(&eventLog{})

	_, err := device.ExecuteScript("mkdir work; touch work/a", nil)
	assert.NoError(t, err)

	res, err := device.ExecuteScript("ls work", nil)
	assert.NoError(t, err)
	assert.Equal(t, "a\n", res.Output)

	// Processes are removed from the table once a script ends.
	res, err = device.ExecuteScript("ps -A | wc -l", nil)
	assert.NoError(t, err)
	assert.Equal(t, "4\n", res.Output)
}

func TestFakeDevice_SetCurrentUser(t *testing.T) {
	device := newTestDevice(&eventLog{})

	assert.NoError(t, device.SetCurrentUser("root"))
	res, err := device.ExecuteScript("whoami; pwd", nil)
	assert.NoError(t, err)
	assert.Equal(t, "root\n/\n", res.Output)

	assert.Error(t, device.SetCurrentUser("nobody"))
}

func TestNewFakeDevice(t *testing.T) {
	device, err := NewFakeDevice(config.Default(), nil)
	assert.NoError(t, err)

	res, err := device.ExecuteScript("getprop ro.product.model", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Pixel 6\n", res.Output)
}
