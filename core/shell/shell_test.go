package shell_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/josephlewis42/fakedevice/core/shell"
	"github.com/josephlewis42/fakedevice/core/vos"
	"github.com/josephlewis42/fakedevice/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

var commands = vostest.MapResolver(map[string]vos.ProcessFunc{
	"echo": func(v vos.VOS) int {
		fmt.Fprintln(v.Stdout(), strings.Join(v.Args()[1:], " "))
		return 0
	},
	"exit3": func(v vos.VOS) int {
		return 3
	},
})

func ExampleRun() {
	device := vostest.NewDeterministicDevice(commands)
	proc := device.LoginProc(nil, vos.NewVIOAdapter(nil, os.Stdout, os.Stdout))
	defer proc.Release()

	script := "for pid in 123 456; do echo $pid; done; if [[ a == a* ]]; then echo match; fi; nope"
	code, err := shell.Run(proc, script)
	fmt.Println("exit:", code, err)

	// Output: 123
	// 456
	// match
	// sh: nope: not found
	// exit: 127 <nil>
}

func TestRun(t *testing.T) {
	cases := map[string]struct {
		script   string
		wantCode int
		wantOut  string
		wantErr  bool
	}{
		"success": {
			script:   "echo foo",
			wantCode: 0,
			wantOut:  "foo\n",
		},
		"failure keeps status": {
			script:   "echo foo; exit3",
			wantCode: 3,
			wantOut:  "foo\n",
		},
		"unknown command": {
			script:   "aaaa foo",
			wantCode: shell.ExitNotFound,
			wantOut:  "sh: aaaa: not found\n",
		},
		"failed substitution": {
			script:   "x=`exit3`",
			wantCode: 3,
		},
		"failed condition": {
			script:   "if [[ a == b ]]; then echo foo; fi",
			wantCode: 0,
		},
		"syntax error": {
			script:   "echo foo &&",
			wantCode: shell.ExitSyntaxError,
			wantErr:  true,
		},
		"invariant": {
			script:   "echo before; for x in `exit3`; do echo $x; done",
			wantCode: 1,
			wantOut:  "before\n",
			wantErr:  true,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out := &bytes.Buffer{}
			proc := vostest.NewDeterministicDevice(commands).LoginProc(nil, vos.NewVIOAdapter(nil, out, out))
			defer proc.Release()

			code, err := shell.Run(proc, tc.script)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantOut, out.String())
		})
	}
}

func TestRun_errorKinds(t *testing.T) {
	proc := vostest.NewDeterministicOS(commands)

	_, err := shell.Run(proc, "if [[ a == a ]]; then echo")
	var syntaxErr *shell.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))

	_, err = shell.Run(proc, "for x in `exit3`; do echo; done")
	assert.True(t, errors.Is(err, shell.ErrInvariant))
}

func TestRun_scopeIsProcessEnvironment(t *testing.T) {
	out := &bytes.Buffer{}
	proc := vostest.NewDeterministicDevice(commands).LoginProc(nil, vos.NewVIOAdapter(nil, out, out))
	defer proc.Release()

	_, err := shell.Run(proc, "greeting=hello")
	assert.NoError(t, err)
	assert.Equal(t, "hello", proc.Getenv("greeting"))

	_, err = shell.Run(proc, "echo $greeting")
	assert.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}
