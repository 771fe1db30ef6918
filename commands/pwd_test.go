package commands

import (
	"testing"

	"github.com/josephlewis42/fakedevice/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

func TestPwd(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg": {Args: []string{"pwd"}},
	}

	cases.Run(t, Pwd)
}

func TestPwd_dir(t *testing.T) {
	cmd := vostest.Command(Pwd, "pwd")
	cmd.Dir = "/sdcard"

	out, err := cmd.CombinedOutput()
	assert.NoError(t, err)
	assert.Equal(t, "/sdcard\n", string(out))
}
