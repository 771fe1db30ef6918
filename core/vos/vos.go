package vos

import "github.com/josephlewis42/fakedevice/core/logger"

// VOS provides a virtual OS interface for a single process running on a
// simulated device.
type VOS interface {
	VEnv
	VIO
	VProc
	VFS

	// Device returns the device the process is running on.
	Device() *Device

	// StartProcess starts a child process. It is not run until Run is called
	// on the returned VOS.
	StartProcess(name string, argv []string, attr *ProcAttr) (VOS, error)

	// Run executes the process and returns its exit code. The process is
	// removed from the device's process table when it exits.
	Run() int

	// LogInvalidInvocation records that a command was called with arguments
	// the simulation doesn't understand.
	LogInvalidInvocation(err error)

	// LogUnknownCommand records that the shell couldn't resolve a command.
	LogUnknownCommand(argv []string)
}

// EventRecorder receives interaction events from processes.
type EventRecorder interface {
	Record(event *logger.LogEntry) error
}

type nopRecorder struct{}

func (nopRecorder) Record(*logger.LogEntry) error {
	return nil
}
