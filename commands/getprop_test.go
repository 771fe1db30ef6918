package commands

import (
	"testing"
)

func TestGetprop(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":   {Args: []string{"getprop"}},
		"model":    {Args: []string{"getprop", "ro.product.model"}},
		"missing":  {Args: []string{"getprop", "ro.does.not.exist"}},
		"default":  {Args: []string{"getprop", "ro.does.not.exist", "fallback"}},
		"too-many": {Args: []string{"getprop", "a", "b", "c"}, WantCode: 1},
	}

	cases.Run(t, Getprop)
}
