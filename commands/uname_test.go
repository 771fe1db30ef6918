package commands

import (
	"testing"

	"github.com/josephlewis42/fakedevice/core/logger"
	"github.com/josephlewis42/fakedevice/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

func TestUname(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":  {Args: []string{"uname"}},
		"all":     {Args: []string{"uname", "-a"}},
		"kernel":  {Args: []string{"uname", "-sr"}},
		"node":    {Args: []string{"uname", "-n"}},
		"machine": {Args: []string{"uname", "-m"}},
	}

	cases.Run(t, Uname)
}

func TestUname_invalid(t *testing.T) {
	recorder := &vostest.EventRecorder{}
	cmd := vostest.Command(Uname, "uname", "-z")
	cmd.Recorder = recorder

	out, err := cmd.CombinedOutput()
	assert.NoError(t, err)
	assert.Equal(t, 1, cmd.ExitStatus)
	assert.Contains(t, string(out), "error: ")
	assert.Contains(t, string(out), "usage: uname [-asnrvm]")
	assert.Contains(t, recorder.Types(), logger.LogTypeInvalidInvocation)
}
