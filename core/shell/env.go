package shell

import (
	"bytes"
	"io"
	"strconv"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Environment is the state a script runs against: the variable scope, the
// pipe between stages and the commands it can call.
//
// An Environment is created for each script run and isn't safe for
// concurrent use.
type Environment struct {
	proc     vos.VOS
	commands vos.ProcessResolver
	scope    vos.VEnv

	// pipe holds output written by commands that hasn't been flushed to
	// stdout yet.
	pipe bytes.Buffer
	// armed is set when the next read of stdin should drain the pipe.
	armed bool

	stdin  io.Reader
	stdout io.Writer

	status int
}

// NewEnvironment creates an environment running inside proc. The process's
// environment variables act as the shell's scope and its standard streams
// are the real input and output. If commands is nil the device's command
// table is used.
func NewEnvironment(proc vos.VOS, commands vos.ProcessResolver) *Environment {
	if commands == nil {
		commands = proc.Device().Resolve
	}

	return &Environment{
		proc:     proc,
		commands: commands,
		scope:    proc,
		stdin:    proc.Stdin(),
		stdout:   proc.Stdout(),
	}
}

// child creates an environment for a command substitution. It shares the
// scope, process and commands but has its own pipe and writes to stdout.
func (env *Environment) child(stdout io.Writer) *Environment {
	return &Environment{
		proc:     env.proc,
		commands: env.commands,
		scope:    env.scope,
		stdin:    env.stdin,
		stdout:   stdout,
		status:   env.status,
	}
}

// Scope holds the shell variables.
func (env *Environment) Scope() vos.VEnv {
	return env.scope
}

// Status is the exit status of the last command, `$?`.
func (env *Environment) Status() int {
	return env.status
}

// Stdin returns the input for the next command. If the pipe is armed its
// contents are handed over and the pipe is reset for the command's output.
func (env *Environment) Stdin() io.Reader {
	if !env.armed {
		return env.stdin
	}

	env.armed = false
	piped := bytes.NewBuffer(append([]byte(nil), env.pipe.Bytes()...))
	env.pipe.Reset()
	return piped
}

// Pipe returns the output waiting in the pipe.
func (env *Environment) Pipe() string {
	return env.pipe.String()
}

// Flush writes the pipe's contents to the real output.
func (env *Environment) Flush() error {
	if env.pipe.Len() == 0 {
		return nil
	}
	_, err := env.pipe.WriteTo(env.stdout)
	return err
}

// lookup returns the value of a variable, including the special parameters
// `$$` and `$?`.
func (env *Environment) lookup(name string) string {
	switch name {
	case "$":
		return strconv.Itoa(env.proc.Getpid())
	case "?":
		return strconv.Itoa(env.status)
	default:
		return env.scope.Getenv(name)
	}
}
