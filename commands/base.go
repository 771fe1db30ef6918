package commands

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/fakedevice/core/vos"
	getopt "github.com/pborman/getopt/v2"
)

// SystemBin is the directory simulated commands appear to be installed in.
const SystemBin = "/system/bin"

// AllCommands holds a list of all registered commands
var AllCommands = make(map[string]vos.ProcessFunc)

// addCmd adds a command under its bare name and under /system/bin.
func addCmd(name string, cmd vos.ProcessFunc) {
	AllCommands[name] = cmd
	AllCommands[path.Join(SystemBin, name)] = cmd
}

// Resolve looks up a command by name or path, it returns nil if the command
// doesn't exist.
func Resolve(name string) vos.ProcessFunc {
	return AllCommands[name]
}

var _ vos.ProcessResolver = Resolve

// BuiltinCommand is a command with every name it's registered under.
type BuiltinCommand struct {
	Names []string
	Proc  vos.ProcessFunc
}

// ListBuiltinCommands returns the registered commands sorted by name.
func ListBuiltinCommands() []BuiltinCommand {
	var out []BuiltinCommand
	for name, proc := range AllCommands {
		if strings.Contains(name, "/") {
			continue
		}

		names := []string{name}
		if _, ok := AllCommands[path.Join(SystemBin, name)]; ok {
			names = append(names, path.Join(SystemBin, name))
		}
		out = append(out, BuiltinCommand{Names: names, Proc: proc})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Names[0] < out[j].Names[0]
	})
	return out
}

func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

// UidResolver maps UIDs to user names using the device's accounts.
func UidResolver(virtOS vos.VOS) func(int) string {
	device := virtOS.Device()
	return func(uid int) string {
		if u, ok := device.LookupUID(uid); ok {
			return u.Name
		}
		return fmt.Sprintf("%d", uid)
	}
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(virtOS vos.VOS, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(virtOS.Args(), nil)
	if err != nil {
		virtOS.LogInvalidInvocation(err)
	}

	if err != nil && !s.NeverBail {
		fmt.Fprintf(virtOS.Stderr(), "error: %s\n\n", err)

		s.PrintHelp(virtOS.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(virtOS.Stdout())
		return 0
	}

	return callback()
}

// RunE is like Run but the callback returns an error that's reported on
// stderr and turned into exit code 1.
func (s *SimpleCommand) RunE(virtOS vos.VOS, callback func() error) int {
	return s.Run(virtOS, func() int {
		if err := callback(); err != nil {
			s.LogProgramError(virtOS, err)
			return 1
		}
		return 0
	})
}

// RunEachArg calls the callback for each positional argument, errors are
// reported and processing continues with the next argument.
func (s *SimpleCommand) RunEachArg(virtOS vos.VOS, callback func(string) error) int {
	return s.Run(virtOS, func() int {
		code := 0
		for _, arg := range s.Flags().Args() {
			if err := callback(arg); err != nil {
				s.LogProgramError(virtOS, err)
				code = 1
			}
		}
		return code
	})
}

// RunEachFileOrStdin calls the callback with each named file, or with stdin
// if no files were given. A file named "-" also reads stdin.
func (s *SimpleCommand) RunEachFileOrStdin(virtOS vos.VOS, files []string, callback func(name string, fd io.Reader) error) int {
	if len(files) == 0 {
		files = []string{"-"}
	}

	code := 0
	for _, name := range files {
		if err := s.runFileOrStdin(virtOS, name, callback); err != nil {
			s.LogProgramError(virtOS, err)
			code = 1
		}
	}
	return code
}

func (s *SimpleCommand) runFileOrStdin(virtOS vos.VOS, name string, callback func(name string, fd io.Reader) error) error {
	if name == "-" {
		return callback("(standard input)", virtOS.Stdin())
	}

	fd, err := virtOS.Open(name)
	if err != nil {
		return fmt.Errorf("%s: No such file or directory", name)
	}
	defer fd.Close()

	if stat, err := fd.Stat(); err == nil && stat.IsDir() {
		return fmt.Errorf("%s: Is a directory", name)
	}
	return callback(name, fd)
}

// LogProgramError writes an error prefixed with the program name to stderr.
func (s *SimpleCommand) LogProgramError(virtOS vos.VOS, err error) {
	fmt.Fprintf(virtOS.Stderr(), "%s: %s\n", path.Base(virtOS.Args()[0]), err)
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

type ColorPrinter struct {
	value *string
}

// Init sets up the color flag.
func (c *ColorPrinter) Init(flags *getopt.Set) {
	c.value = flags.EnumLong(
		"color",
		rune(0), // No short flag.
		[]string{colorAlways, colorAuto, colorNever},
		colorAuto,
		"colorize the output (always|auto|never)")
}

// ShouldColor reports whether output should be colored. Shell output always
// goes through a pipe so auto never colors.
func (c *ColorPrinter) ShouldColor() bool {
	return *c.value == colorAlways
}

func (c *ColorPrinter) Sprintf(clr *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		// The global NoColor flag is set when the host isn't a terminal,
		// --color=always overrides it.
		forced := *clr
		forced.EnableColor()
		return forced.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
