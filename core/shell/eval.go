package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// ErrInvariant is returned when a script reaches a state the grammar should
// have ruled out. Unlike a failed command it aborts the script.
var ErrInvariant = errors.New("shell invariant violated")

// ExitNotFound is the status of a command that couldn't be resolved.
const ExitNotFound = 127

var varRegex = regexp.MustCompile(`\$\{(\w+)\}|\$(\$|\?|\w+)`)

// Result is the outcome of evaluating an expression. Text is only
// meaningful if Success is set, HasText distinguishes an empty string from
// no text at all.
type Result struct {
	Success bool
	Text    string
	HasText bool
}

var failure = Result{}

func success() Result {
	return Result{Success: true}
}

func text(s string) Result {
	return Result{Success: true, Text: s, HasText: true}
}

// Evaluate runs an expression against the environment. Commands failing is a
// normal outcome reported through Result, errors are reserved for invariant
// violations.
func Evaluate(expr Expression, env *Environment) (Result, error) {
	switch e := expr.(type) {
	case *Empty:
		return success(), nil

	case *Chained:
		if _, err := Evaluate(e.Left, env); err != nil {
			return failure, err
		}
		return Evaluate(e.Right, env)

	case *ConditionalAnd:
		left, err := Evaluate(e.Left, env)
		if err != nil || !left.Success {
			return failure, err
		}
		if err := env.Flush(); err != nil {
			return failure, err
		}
		return Evaluate(e.Right, env)

	case *Pipe:
		left, err := Evaluate(e.Left, env)
		if err != nil || !left.Success {
			return failure, err
		}
		env.armed = true
		return Evaluate(e.Right, env)

	case *ConditionalCheck:
		return evalCheck(e, env)

	case *Assignment:
		value, err := Evaluate(e.Value, env)
		if err != nil || !value.Success {
			return failure, err
		}
		if err := env.scope.Setenv(e.Name, value.Text); err != nil {
			return failure, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		env.status = 0
		return success(), nil

	case *Command:
		return evalCommand(e, env)

	case *VarSub:
		return text(expandVars(e.Text, env)), nil

	case *Subst:
		return evalSubst(e, env)

	case *For:
		return evalFor(e, env)

	case *If:
		cond, err := Evaluate(e.Cond, env)
		if err != nil {
			return failure, err
		}
		if !cond.Success {
			return success(), nil
		}
		body, err := Evaluate(e.Body, env)
		if err != nil {
			return failure, err
		}
		return Result{Success: body.Success}, nil

	case *List:
		var parts []string
		for _, item := range e.Items {
			res, err := Evaluate(item, env)
			if err != nil || !res.Success {
				return failure, err
			}
			parts = append(parts, res.Text)
		}
		if env.armed {
			piped, err := io.ReadAll(env.Stdin())
			if err != nil {
				return failure, err
			}
			parts = append(parts, string(piped))
		}
		return text(strings.Join(parts, " ")), nil

	default:
		return failure, fmt.Errorf("%w: unknown expression %T", ErrInvariant, expr)
	}
}

func expandVars(s string, env *Environment) string {
	return varRegex.ReplaceAllStringFunc(s, func(ref string) string {
		m := varRegex.FindStringSubmatch(ref)
		if m[1] != "" {
			return env.lookup(m[1])
		}
		return env.lookup(m[2])
	})
}

func evalCommand(e *Command, env *Environment) (Result, error) {
	nameRes, err := Evaluate(e.Name, env)
	if err != nil || !nameRes.Success {
		return failure, err
	}
	name := nameRes.Text
	if name == "" {
		// A substitution that produced nothing.
		return success(), nil
	}

	argv := []string{name}
	run := env.commands(name)
	if run == nil {
		for _, param := range e.Params {
			argv = append(argv, param.String())
		}
		fmt.Fprintf(&env.pipe, "sh: %s: not found\n", name)
		env.status = ExitNotFound
		env.proc.LogUnknownCommand(argv)
		return failure, nil
	}

	for _, param := range e.Params {
		res, err := Evaluate(param, env)
		if err != nil || !res.Success {
			return failure, err
		}
		argv = append(argv, res.Text)
	}

	proc, err := env.proc.StartProcess(name, argv, &vos.ProcAttr{
		Files: vos.NewVIOAdapter(env.Stdin(), &env.pipe, &env.pipe),
		Exec:  run,
	})
	if err != nil {
		fmt.Fprintf(&env.pipe, "sh: %s\n", err)
		env.status = 1
		return failure, nil
	}

	env.status = proc.Run()
	return Result{Success: env.status == 0}, nil
}

func evalSubst(e *Subst, env *Environment) (Result, error) {
	out := &bytes.Buffer{}
	child := env.child(out)

	res, err := Evaluate(e.Script, child)
	env.status = child.status
	if err != nil {
		return failure, err
	}
	if err := child.Flush(); err != nil {
		return failure, err
	}
	if !res.Success {
		return failure, nil
	}
	return text(strings.TrimRight(out.String(), "\n")), nil
}

func evalFor(e *For, env *Environment) (Result, error) {
	list, err := Evaluate(e.List, env)
	if err != nil {
		return failure, err
	}
	if !list.Success {
		return failure, fmt.Errorf("%w: for %s: list %q failed to evaluate", ErrInvariant, e.Var, e.List)
	}

	// There's only one scope, so an outer variable with the same name is
	// lost once the loop ends.
	defer env.scope.Unsetenv(e.Var)

	for _, field := range strings.Fields(list.Text) {
		if err := env.scope.Setenv(e.Var, field); err != nil {
			return failure, fmt.Errorf("%w: %v", ErrInvariant, err)
		}

		res, err := Evaluate(e.Body, env)
		if err != nil || !res.Success {
			return failure, err
		}
	}
	return success(), nil
}

func evalCheck(e *ConditionalCheck, env *Environment) (Result, error) {
	left, err := Evaluate(e.Left, env)
	if err != nil || !left.Success {
		return failure, err
	}

	switch e.Op {
	case "&&":
		return Evaluate(e.Right, env)

	case "||":
		return success(), nil

	case "==":
		right, err := Evaluate(e.Right, env)
		if err != nil || !right.Success {
			return failure, err
		}
		return Result{Success: strings.HasPrefix(right.Text, left.Text)}, nil

	default:
		// Other operators aren't applied.
		return Result{Success: left.Success}, nil
	}
}
