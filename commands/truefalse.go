package commands

import "github.com/josephlewis42/fakedevice/core/vos"

// True does nothing, successfully.
func True(virtOS vos.VOS) int {
	return 0
}

// False does nothing, unsuccessfully.
func False(virtOS vos.VOS) int {
	return 1
}

var _ vos.ProcessFunc = True
var _ vos.ProcessFunc = False

func init() {
	addCmd("true", True)
	addCmd("false", False)
}
