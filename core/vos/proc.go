package vos

import (
	"errors"
	"fmt"
	"os"
	"path"
	"runtime/debug"

	"github.com/josephlewis42/fakedevice/core/logger"
)

// ErrNotFound is the error resulting if a command couldn't be resolved.
var ErrNotFound = errors.New("not found")

// VProc holds the process specific parts of the OS.
type VProc interface {
	// Args holds command line arguments, including the command as Args[0].
	Args() []string
	Getpid() int
	Getuid() int
	Getwd() string
	Chdir(dir string) error
}

// ProcAttr holds the attributes that will be applied to a new process
// started by StartProcess.
type ProcAttr struct {
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// If Env is non-nil, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string
	// Files specifies the open files inherited by the new process.
	Files VIO
	// Exec is the program to run, if nil the device resolves it by name.
	Exec ProcessFunc
}

// DeviceProc is a single process running on a Device.
type DeviceProc struct {
	VEnv
	VFS
	VIO

	device   *Device
	recorder EventRecorder
	exec     ProcessFunc

	// Args holds command line arguments, including the command as Args[0].
	ProcArgs []string
	// The process ID of the process
	PID int
	// The user ID of the process.
	UID int
	// Dir specifies the working directory of the command.
	Dir string
}

var _ VOS = (*DeviceProc)(nil)

// Device implements VOS.Device.
func (p *DeviceProc) Device() *Device {
	return p.device
}

// Args implements VProc.Args.
func (p *DeviceProc) Args() []string {
	return p.ProcArgs
}

// Getpid implements VProc.Getpid.
func (p *DeviceProc) Getpid() int {
	return p.PID
}

// Getuid implements VProc.Getuid.
func (p *DeviceProc) Getuid() int {
	return p.UID
}

// Getwd implements VProc.Getwd.
func (p *DeviceProc) Getwd() string {
	return p.Dir
}

// Chdir implements VProc.Chdir.
func (p *DeviceProc) Chdir(dir string) error {
	if !path.IsAbs(dir) {
		dir = path.Join(p.Dir, dir)
	}
	dir = path.Clean(dir)

	stat, err := p.device.fs.Stat(dir)
	switch {
	case err != nil:
		return fmt.Errorf("%s: No such file or directory", dir)
	case !stat.IsDir():
		return fmt.Errorf("%s: Not a directory", dir)
	default:
		p.Dir = dir
		return nil
	}
}

// StartProcess implements VOS.StartProcess.
func (p *DeviceProc) StartProcess(name string, argv []string, attr *ProcAttr) (VOS, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	if argv == nil {
		argv = []string{name}
	}

	run := attr.Exec
	if run == nil {
		run = p.device.Resolve(name)
	}
	if run == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	var env VEnv
	if attr.Env == nil {
		env = NewMapEnvFrom(p.VEnv)
	} else {
		env = NewMapEnvFrom(EnvList(attr.Env))
	}

	out := &DeviceProc{
		device:   p.device,
		recorder: p.recorder,
		exec:     run,
		VEnv:     env,
		ProcArgs: argv,
		UID:      p.UID,
		Dir:      p.Dir,
	}
	out.VFS = NewWorkdirFs(p.device.fs, out.Getwd)

	if attr.Files == nil {
		out.VIO = NewNullIO()
	} else {
		out.VIO = attr.Files
	}

	if attr.Dir != "" {
		if err := out.Chdir(attr.Dir); err != nil {
			return nil, err
		}
	}

	out.PID = p.device.addProcess(out.UID, argv).PID
	return out, nil
}

// Run implements VOS.Run. A panicking command is logged and exits with 1,
// the same way a crashed binary would on the device.
func (p *DeviceProc) Run() (exitCode int) {
	defer p.device.removeProcess(p.PID)
	defer func() {
		if r := recover(); r != nil {
			p.recorder.Record(logger.NewPanic(p.ProcArgs, fmt.Sprintf("%v\n%s", r, debug.Stack())))
			fmt.Fprintf(p.Stderr(), "%s: Segmentation fault\n", p.name())
			exitCode = 1
		}
	}()

	exitCode = p.exec(p)
	p.recorder.Record(logger.NewRunCommand(p.ProcArgs, exitCode))
	return exitCode
}

// Release removes the process from the device's process table without
// running it, used for login shells that are driven by the interpreter.
func (p *DeviceProc) Release() {
	p.device.removeProcess(p.PID)
}

func (p *DeviceProc) name() string {
	if len(p.ProcArgs) == 0 {
		return "sh"
	}
	return path.Base(p.ProcArgs[0])
}

// LogInvalidInvocation implements VOS.LogInvalidInvocation.
func (p *DeviceProc) LogInvalidInvocation(err error) {
	p.recorder.Record(logger.NewInvalidInvocation(p.ProcArgs, err))
}

// LogUnknownCommand implements VOS.LogUnknownCommand.
func (p *DeviceProc) LogUnknownCommand(argv []string) {
	p.recorder.Record(logger.NewUnknownCommand(argv))
}

// UserHomeDir implements VEnv.UserHomeDir, falling back to the home of the
// process owner when HOME is unset.
func (p *DeviceProc) UserHomeDir() (string, error) {
	if home := p.Getenv("HOME"); home != "" {
		return home, nil
	}
	if u, ok := p.device.LookupUID(p.UID); ok && u.Home != "" {
		return u.Home, nil
	}
	return "", os.ErrNotExist
}
