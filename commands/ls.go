package commands

import (
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"sort"
	"strings"
	"text/tabwriter"

	fcolor "github.com/fatih/color"
	"github.com/josephlewis42/fakedevice/core/vos"
)

// Ls implements the toybox ls command.
//
// Output is one entry per line unless -C is given because shell output never
// goes to a terminal.
func Ls(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "ls [-1aCdhl] [FILE]...",
		Short: "List information about the FILEs (the current directory by default).",
	}

	opts := cmd.Flags()
	listAll := opts.Bool('a', "don't ignore entries starting with .")
	longListing := opts.Bool('l', "use a long listing format")
	listDirs := opts.Bool('d', "list directories, not their contents")
	columns := opts.Bool('C', "list entries in columns")
	opts.Bool('1', "list one entry per line")
	humanSize := opts.Bool('h', "print human readable sizes")
	lineWidth := opts.IntLong("width", 'w', 80, "set the column width, 0 is infinite")

	// -h is human readable sizes, not help.
	showHelp := opts.BoolLong("help", 0, "show this help and exit")
	cmd.ShowHelp = showHelp

	var color ColorPrinter
	color.Init(opts)

	return cmd.Run(virtOS, func() int {
		sizeFmt := func(bytes int64) string {
			return fmt.Sprintf("%d", bytes)
		}
		if *humanSize {
			sizeFmt = BytesToHuman
		}

		if *lineWidth == 0 {
			*lineWidth = math.MaxInt32
		}

		targets := opts.Args()
		if len(targets) == 0 {
			targets = []string{"."}
		}
		sort.Strings(targets)

		// Files are listed first, then the contents of each directory.
		var files []namedFileInfo
		var directories []string
		exitCode := 0
		for _, target := range targets {
			stat, err := virtOS.Stat(target)
			switch {
			case err != nil:
				fmt.Fprintf(virtOS.Stderr(), "ls: %s: No such file or directory\n", target)
				exitCode = 1
			case stat.IsDir() && !*listDirs:
				directories = append(directories, target)
			default:
				files = append(files, namedFileInfo{stat, target})
			}
		}

		w := virtOS.Stdout()
		owner := fileOwner(virtOS)
		printEntries := func(dir string, entries []namedFileInfo) {
			switch {
			case *longListing:
				var totalSize int64
				for _, e := range entries {
					totalSize += e.Size()
				}
				if dir != "" {
					fmt.Fprintf(w, "total %d\n", (totalSize+1023)/1024)
				}

				tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
				for _, e := range entries {
					hardLinks := 1
					if e.IsDir() {
						hardLinks = 2
					}

					user := owner(path.Join(dir, e.name))
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
						e.Mode().String(),
						hardLinks,
						user,
						user,
						sizeFmt(e.Size()),
						e.ModTime().Format("2006-01-02 15:04"),
						color.Sprintf(Dircolor(e), "%s", e.name))
				}
				tw.Flush()

			case *columns:
				printColumns(w, &color, entries, *lineWidth)

			default:
				for _, e := range entries {
					fmt.Fprintln(w, color.Sprintf(Dircolor(e), "%s", e.name))
				}
			}
		}

		if len(files) > 0 {
			printEntries("", files)
		}

		showDirectoryNames := len(targets) > 1
		for i, directory := range directories {
			entries, err := readDir(virtOS, directory, *listAll)
			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "ls: %s: %v\n", directory, err)
				exitCode = 1
				continue
			}

			if showDirectoryNames {
				if i > 0 || len(files) > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s:\n", directory)
			}
			printEntries(directory, entries)
		}

		return exitCode
	})
}

// namedFileInfo is a FileInfo with the name it should be displayed as.
type namedFileInfo struct {
	os.FileInfo
	name string
}

func readDir(virtOS vos.VOS, directory string, listAll bool) ([]namedFileInfo, error) {
	file, err := virtOS.Open(directory)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	allPaths, err := file.Readdir(-1)
	if err != nil {
		return nil, err
	}

	var out []namedFileInfo
	for _, fi := range allPaths {
		if !listAll && strings.HasPrefix(fi.Name(), ".") {
			continue
		}
		out = append(out, namedFileInfo{fi, fi.Name()})
	}

	sort.Slice(out, func(i int, j int) bool {
		return out[i].name < out[j].name
	})
	return out, nil
}

// fileOwner approximates ownership: the current user owns their home
// directory tree, everything else belongs to root.
func fileOwner(virtOS vos.VOS) func(string) string {
	uid2name := UidResolver(virtOS)
	home, _ := virtOS.UserHomeDir()
	wd := virtOS.Getwd()
	return func(name string) string {
		if !path.IsAbs(name) {
			name = path.Join(wd, name)
		}
		if home != "" && home != "/" && (name == home || strings.HasPrefix(name, home+"/")) {
			return uid2name(virtOS.Getuid())
		}
		return uid2name(0)
	}
}

func printColumns(w io.Writer, color *ColorPrinter, entries []namedFileInfo, lineWidth int) {
	colWidths := columnize(entries, lineWidth)
	cols := len(colWidths)
	rows := len(entries) / cols
	if len(entries)%cols > 0 {
		rows++
	}

	for row := 0; row < rows; row++ {
		for col, width := range colWidths {
			index := (col * rows) + row
			if index >= len(entries) {
				continue
			}
			// Add padding if there was a column before this.
			if col > 0 {
				fmt.Fprint(w, "  ")
			}
			entry := entries[index]
			fmt.Fprint(w, color.Sprintf(Dircolor(entry), "%s", entry.name))

			// Pad for alignment unless this is the last entry on the row.
			if next := ((col + 1) * rows) + row; next < len(entries) && col+1 < cols {
				fmt.Fprint(w, strings.Repeat(" ", width-len(entry.name)))
			}
		}
		fmt.Fprintln(w)
	}
}

type LsColorTest struct {
	color *fcolor.Color
	test  func(fileInfo os.FileInfo) bool
}

// Color listing comes from: https://askubuntu.com/a/884513
var dircolors = []LsColorTest{
	// Directories are bold blue.
	{color: ColorBoldBlue, test: os.FileInfo.IsDir},
	// Symlinks are bold cyan.
	{color: ColorBoldCyan, test: func(fi os.FileInfo) bool {
		return fi.Mode()&fs.ModeSymlink > 0
	}},
	// Yellow with black background pipe, block device, char device.
	{color: fcolor.New(fcolor.FgYellow, fcolor.BgBlack, fcolor.Bold), test: func(fi os.FileInfo) bool {
		return fi.Mode()&(fs.ModeDevice|fs.ModeNamedPipe|fs.ModeSocket|fs.ModeCharDevice) > 0
	}},
	// Executables are bold green.
	{color: ColorBoldGreen, test: func(fi os.FileInfo) bool {
		return fi.Mode().Perm()&0111 > 0
	}},
	// Archives and packages are bold red.
	{color: ColorBoldRed, test: func(fi os.FileInfo) bool {
		return map[string]bool{
			".tar": true,
			".tgz": true,
			".zip": true,
			".gz":  true,
			".apk": true,
			".jar": true,
			".dex": true,
		}[path.Ext(fi.Name())]
	}},
}

func Dircolor(fileInfo os.FileInfo) *fcolor.Color {
	for _, dc := range dircolors {
		if dc.test(fileInfo) {
			return dc.color
		}
	}

	// Anything else defaults to white.
	return fcolor.New(fcolor.FgHiWhite)
}

func columnize(paths []namedFileInfo, screenWidth int) []int {
	numFiles := len(paths)
	if numFiles == 0 {
		return []int{0}
	}

	const colPadding = 2

	displayLengths := make([]int, len(paths))
	for i, p := range paths {
		displayLengths[i] = len(p.name)
	}

	// Start with maximum number of columns and work down until all the data fits.
	// 3 is the minimum column width, 1 char filename + 2 padding.
	columns := screenWidth / (1 + colPadding)
	if columns > len(paths) {
		columns = len(paths)
	}
	var maximums []int // Holds maximum size of a name in the column.
	for ; columns >= 1; columns-- {
		rows := numFiles / columns
		if numFiles%columns > 0 {
			rows++
		}
		// Skip layouts that would leave trailing columns empty.
		if (numFiles+rows-1)/rows != columns {
			continue
		}

		maximums = make([]int, columns)
		for i, nameLen := range displayLengths {
			if nameLen > maximums[i/rows] {
				maximums[i/rows] = nameLen
			}
		}

		total := (columns - 1) * colPadding
		for _, m := range maximums {
			total += m
		}
		if total <= screenWidth {
			return maximums
		}
	}

	return maximums
}

var _ vos.ProcessFunc = Ls

func init() {
	addCmd("ls", Ls)
}
