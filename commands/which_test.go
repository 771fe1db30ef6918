package commands

import (
	"testing"
)

func TestWhich(t *testing.T) {
	cases := goldenTestSuite{
		"name":     {Args: []string{"which", "ls"}},
		"path":     {Args: []string{"which", "/system/bin/ls"}},
		"multiple": {Args: []string{"which", "cat", "sh"}},
		"missing":  {Args: []string{"which", "nope"}, WantCode: 1},
	}

	cases.Run(t, Which)
}
