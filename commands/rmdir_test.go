package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRmdir(t *testing.T) {
	files := map[string]string{
		"empty/":     "",
		"a/b/":       "",
		"full/x.txt": "",
	}

	cases := map[string]struct {
		args     []string
		wantOut  string
		wantCode int
		wantGone []string
	}{
		"empty": {
			args:     []string{"rmdir", "empty"},
			wantGone: []string{"empty"},
		},
		"verbose": {
			args:     []string{"rmdir", "-v", "empty"},
			wantOut:  "rmdir: removed directory 'empty'\n",
			wantGone: []string{"empty"},
		},
		"parents": {
			args:     []string{"rmdir", "-p", "a/b"},
			wantGone: []string{"a/b", "a"},
		},
		"not empty": {
			args:     []string{"rmdir", "full"},
			wantOut:  "rmdir: full: Directory not empty\n",
			wantCode: 1,
		},
		"missing": {
			args:     []string{"rmdir", "nope"},
			wantOut:  "rmdir: nope: No such file or directory\n",
			wantCode: 1,
		},
		"no args": {
			args:     []string{"rmdir"},
			wantOut:  "rmdir: Needs 1 argument\n",
			wantCode: 1,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out, code, proc := runCommand(t, files, Rmdir, tc.args...)

			assert.Equal(t, tc.wantOut, out)
			assert.Equal(t, tc.wantCode, code)
			for _, name := range tc.wantGone {
				_, err := proc.Stat(name)
				assert.Error(t, err, name)
			}
		})
	}
}
