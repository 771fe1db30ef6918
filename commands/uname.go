package commands

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/fakedevice/core/vos"
)

const (
	// PropHostname holds the device's network hostname.
	PropHostname = "net.hostname"
	// PropKernelRelease holds the uname kernel release.
	PropKernelRelease = "ro.kernel.release"
	// PropABIList holds the supported ABIs, most preferred first.
	PropABIList = "ro.product.cpu.abilist"
)

// Utsname mirrors the fields of the uname syscall.
type Utsname struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// DeviceUname builds uname information from the device's properties.
func DeviceUname(device *vos.Device) Utsname {
	prop := func(key, fallback string) string {
		if val, ok := device.Getprop(key); ok && val != "" {
			return val
		}
		return fallback
	}

	abi := strings.Split(prop(PropABIList, "arm64-v8a"), ",")[0]
	machine := map[string]string{
		"arm64-v8a":   "aarch64",
		"armeabi-v7a": "armv7l",
		"armeabi":     "armv7l",
		"x86_64":      "x86_64",
		"x86":         "i686",
	}[abi]
	if machine == "" {
		machine = abi
	}

	return Utsname{
		Sysname:  "Linux",
		Nodename: prop(PropHostname, "localhost"),
		Release:  prop(PropKernelRelease, "5.10.66-android12-9"),
		Version:  "#1 SMP PREEMPT " + device.BootTime().Format("Mon Jan 2 15:04:05 MST 2006"),
		Machine:  machine,
	}
}

// Uname implements the POSIX command by the same name.
func Uname(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "uname [-asnrvm]",
		Short: "Print system information.",
	}

	opts := cmd.Flags()
	showAll := opts.BoolLong("all", 'a', "print all information")
	showKernelName := opts.BoolLong("kernel-name", 's', "print the kernel name")
	showNodename := opts.BoolLong("nodename", 'n', "print the network node name")
	showRelease := opts.BoolLong("kernel-release", 'r', "print the kernel release")
	showVersion := opts.BoolLong("kernel-version", 'v', "print the kernel version")
	showMachine := opts.BoolLong("machine", 'm', "print the machine name")

	return cmd.Run(virtOS, func() int {
		w := virtOS.Stdout()
		uname := DeviceUname(virtOS.Device())

		var fields []string
		for _, entry := range []struct {
			flag     *bool
			property string
		}{
			{showKernelName, uname.Sysname},
			{showNodename, uname.Nodename},
			{showRelease, uname.Release},
			{showVersion, uname.Version},
			{showMachine, uname.Machine},
		} {
			if *entry.flag || *showAll {
				fields = append(fields, entry.property)
			}
		}

		if len(fields) == 0 {
			fields = append(fields, uname.Sysname)
		}

		fmt.Fprintln(w, strings.Join(fields, " "))
		return 0
	})
}

var _ vos.ProcessFunc = Uname

func init() {
	addCmd("uname", Uname)
}
