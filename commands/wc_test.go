package commands

import (
	"strings"
	"testing"

	"github.com/josephlewis42/fakedevice/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

func TestWc(t *testing.T) {
	files := map[string]string{
		"/foo.txt": "Hello,\nworld !",
		"bar.txt":  "a\nb\n",
	}

	cases := map[string]struct {
		args     []string
		stdin    string
		wantOut  string
		wantCode int
	}{
		"single file": {
			args:    []string{"wc", "/foo.txt"},
			wantOut: "1 3 14 /foo.txt\n",
		},
		"multiple files": {
			args:    []string{"wc", "-l", "/foo.txt", "bar.txt"},
			wantOut: "1 /foo.txt\n2 bar.txt\n3 total\n",
		},
		"chars": {
			args:    []string{"wc", "-m", "bar.txt"},
			wantOut: "4 bar.txt\n",
		},
		"missing": {
			args:     []string{"wc", "does-not-exist.txt"},
			wantCode: 1,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out, code, _ := runCommand(t, files, Wc, tc.args...)

			assert.Equal(t, tc.wantCode, code, "exit code")
			if tc.wantCode == 0 {
				assert.Equal(t, tc.wantOut, out)
			}
		})
	}
}

func TestWc_stdin(t *testing.T) {
	cmd := vostest.Command(Wc, "wc")
	cmd.Stdin = strings.NewReader("a b\nc\n")

	out, err := cmd.CombinedOutput()
	assert.NoError(t, err)
	assert.Equal(t, 0, cmd.ExitStatus)
	assert.Equal(t, "2 3 6\n", string(out))
}
