package commands

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRm(t *testing.T) {
	files := map[string]string{
		"a.txt":     "",
		"b.txt":     "",
		"dir/c.txt": "",
	}

	cases := map[string]struct {
		args        []string
		wantOut     string
		wantCode    int
		wantRemoved []string
		wantKept    []string
	}{
		"files": {
			args:        []string{"rm", "a.txt", "/data/local/tmp/b.txt"},
			wantRemoved: []string{"a.txt", "b.txt"},
			wantKept:    []string{"dir"},
		},
		"directory": {
			args:     []string{"rm", "dir"},
			wantOut:  "rm: dir: Is a directory\n",
			wantCode: 1,
			wantKept: []string{"dir/c.txt"},
		},
		"recursive": {
			args:        []string{"rm", "-r", "dir"},
			wantRemoved: []string{"dir", "dir/c.txt"},
		},
		"missing": {
			args:        []string{"rm", "nope", "a.txt"},
			wantOut:     "rm: nope: No such file or directory\n",
			wantCode:    1,
			wantRemoved: []string{"a.txt"},
		},
		"force": {
			args: []string{"rm", "-f", "nope"},
		},
		"force recursive": {
			args:        []string{"rm", "-rf", "dir", "nope"},
			wantRemoved: []string{"dir"},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out, code, proc := runCommand(t, files, Rm, tc.args...)

			assert.Equal(t, tc.wantOut, out)
			assert.Equal(t, tc.wantCode, code)
			for _, name := range tc.wantRemoved {
				_, err := proc.Stat(name)
				assert.True(t, errors.Is(err, fs.ErrNotExist), "%s should be removed, got %v", name, err)
			}
			for _, name := range tc.wantKept {
				_, err := proc.Stat(name)
				assert.NoError(t, err, "%s should exist", name)
			}
		})
	}
}
