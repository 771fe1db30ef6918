package commands

import (
	"fmt"
	"time"

	"github.com/josephlewis42/fakedevice/core/vos"
)

// Uptime implements the UNIX uptime command.
func Uptime(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "uptime",
		Short: "Tell how long the system has been running.",

		// Never bail, even if args are bad.
		NeverBail: true,
	}

	return cmd.Run(virtOS, func() int {
		device := virtOS.Device()
		now := device.Now()
		uptime := now.Sub(device.BootTime())
		day := (24 * time.Hour)
		uptimeDays := uptime / day
		uptime -= uptimeDays * day
		uptimeHours := uptime / time.Hour
		uptime -= uptimeHours * time.Hour
		uptimeMins := uptime / time.Minute

		fmt.Fprintf(
			virtOS.Stdout(),
			" %s up %d days, %2d:%02d,  0 users,  load average: 0.08, 0.02, 0.01\n",
			now.Format("15:04:05"),
			uptimeDays,
			uptimeHours,
			uptimeMins,
		)

		return 0
	})
}

var _ vos.ProcessFunc = Uptime

func init() {
	addCmd("uptime", Uptime)
}
