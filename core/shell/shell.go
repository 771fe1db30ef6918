// Package shell implements the restricted shell dialect scripts use to drive
// a simulated device: sequencing, `&&`, pipes, backtick substitution,
// variables, `for` loops and `if [[ ]]` tests.
//
// Pipes are fully buffered, every stage runs to completion before the next
// one starts.
package shell

import (
	"github.com/josephlewis42/fakedevice/core/vos"
)

// ExitSyntaxError is the status sh exits with when a script can't be parsed.
const ExitSyntaxError = 2

// Run parses and executes a script in proc using the device's commands.
// Output still waiting in the pipe is flushed to the process's stdout when
// the script ends.
//
// The exit code is 0 if the script succeeded, otherwise the status of the
// last command that ran. An error is returned only if the script couldn't be
// parsed or broke an interpreter invariant.
func Run(proc vos.VOS, script string) (int, error) {
	expr, err := Parse(script)
	if err != nil {
		return ExitSyntaxError, err
	}

	return NewEnvironment(proc, nil).Run(expr)
}

// Run evaluates a parsed script and flushes its remaining output.
func (env *Environment) Run(expr Expression) (int, error) {
	res, err := Evaluate(expr, env)
	if flushErr := env.Flush(); err == nil {
		err = flushErr
	}

	switch {
	case err != nil:
		return 1, err
	case res.Success:
		return 0, nil
	case env.status != 0:
		return env.status, nil
	default:
		return 1, nil
	}
}
