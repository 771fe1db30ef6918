package vos

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

const (
	// FirstPID is the first PID handed out on a freshly booted device.
	FirstPID = 10000

	// ZygoteName is the process every app process forks from.
	ZygoteName = "zygote64"
)

// TimeSource returns the current time.
type TimeSource func() time.Time

// ProcessFunc is a "process" that can be run.
type ProcessFunc func(VOS) int

// ProcessResolver looks up a simulated command by name, it returns nil if
// no command was found.
type ProcessResolver func(name string) ProcessFunc

// User is an account on the device.
type User struct {
	Name string
	UID  int
	Home string
}

// Process is an entry in the device's process table.
type Process struct {
	PID     int
	UID     int
	Name    string
	Args    []string
	Started time.Time
}

// DeviceOptions holds the static properties of a device.
type DeviceOptions struct {
	// Props are the system properties returned by getprop.
	Props map[string]string
	// Users are the accounts on the device, the first is used if DefaultUser
	// isn't set.
	Users []User
	// DefaultUser is the name of the user scripts run as.
	DefaultUser string
	// Path is the search path handed to processes.
	Path string
	// TimeSource is used for process start times, defaults to time.Now.
	TimeSource TimeSource
}

// Device is the state shared by every process on a simulated device.
//
// A Device may be used by multiple goroutines at once; the filesystem it
// wraps is expected to do its own locking.
type Device struct {
	fs         VFS
	resolver   ProcessResolver
	props      map[string]string
	users      []User
	path       string
	timeSource TimeSource
	bootTime   time.Time

	mu          sync.Mutex
	currentUser User
	nextPID     int
	processes   map[int]*Process
}

// NewDevice boots a device: it starts the zygote and makes the default user
// current.
func NewDevice(fs VFS, resolver ProcessResolver, opts DeviceOptions) (*Device, error) {
	if opts.TimeSource == nil {
		opts.TimeSource = time.Now
	}
	if len(opts.Users) == 0 {
		return nil, fmt.Errorf("device needs at least one user")
	}

	props := make(map[string]string, len(opts.Props))
	for k, v := range opts.Props {
		props[k] = v
	}

	d := &Device{
		fs:         fs,
		resolver:   resolver,
		props:      props,
		users:      append([]User(nil), opts.Users...),
		path:       opts.Path,
		timeSource: opts.TimeSource,
		bootTime:   opts.TimeSource(),
		nextPID:    FirstPID,
		processes:  make(map[int]*Process),
	}

	d.currentUser = d.users[0]
	if opts.DefaultUser != "" {
		if err := d.SetCurrentUser(opts.DefaultUser); err != nil {
			return nil, err
		}
	}

	d.addProcess(0, []string{ZygoteName})
	return d, nil
}

// Fs returns the device's root filesystem.
func (d *Device) Fs() VFS {
	return d.fs
}

// Resolve looks up a command by name.
func (d *Device) Resolve(name string) ProcessFunc {
	if d.resolver == nil {
		return nil
	}
	return d.resolver(name)
}

// Getprop returns a system property.
func (d *Device) Getprop(key string) (string, bool) {
	val, ok := d.props[key]
	return val, ok
}

// PropNames returns the sorted names of all system properties.
func (d *Device) PropNames() []string {
	var out []string
	for k := range d.props {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LookupUser finds a user by name.
func (d *Device) LookupUser(name string) (User, bool) {
	for _, u := range d.users {
		if u.Name == name {
			return u, true
		}
	}
	return User{}, false
}

// LookupUID finds a user by UID.
func (d *Device) LookupUID(uid int) (User, bool) {
	for _, u := range d.users {
		if u.UID == uid {
			return u, true
		}
	}
	return User{}, false
}

// SetCurrentUser changes the user new shells run as.
func (d *Device) SetCurrentUser(name string) error {
	u, ok := d.LookupUser(name)
	if !ok {
		return fmt.Errorf("unknown user %q", name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.currentUser = u
	return nil
}

// CurrentUser returns the user new shells run as.
func (d *Device) CurrentUser() User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentUser
}

// Now returns the device's current time.
func (d *Device) Now() time.Time {
	return d.timeSource()
}

// BootTime returns the time the device was created.
func (d *Device) BootTime() time.Time {
	return d.bootTime
}

func (d *Device) addProcess(uid int, argv []string) *Process {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := ""
	if len(argv) > 0 {
		name = argv[0]
	}
	proc := &Process{
		PID:     d.nextPID,
		UID:     uid,
		Name:    name,
		Args:    append([]string(nil), argv...),
		Started: d.timeSource(),
	}
	d.nextPID++
	d.processes[proc.PID] = proc
	return proc
}

func (d *Device) removeProcess(pid int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.processes, pid)
}

// Processes returns a snapshot of the process table ordered by PID.
func (d *Device) Processes() []Process {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Process, 0, len(d.processes))
	for _, p := range d.processes {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PID < out[j].PID
	})
	return out
}

// LoginProc creates a process for a new shell session as the current user.
// The process is registered in the process table and removed when Run
// returns.
func (d *Device) LoginProc(recorder EventRecorder, files VIO) *DeviceProc {
	user := d.CurrentUser()
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if files == nil {
		files = NewNullIO()
	}

	env := NewMapEnv()
	env.Setenv("HOME", user.Home)
	env.Setenv("USER", user.Name)
	env.Setenv("PATH", d.path)
	env.Setenv("SHELL", "/system/bin/sh")

	proc := d.addProcess(user.UID, []string{"sh"})
	out := &DeviceProc{
		device:   d,
		recorder: recorder,
		VEnv:     env,
		VIO:      files,
		ProcArgs: proc.Args,
		PID:      proc.PID,
		UID:      user.UID,
		Dir:      "/",
		exec: func(VOS) int {
			return 0
		},
	}
	out.VFS = NewWorkdirFs(d.fs, out.Getwd)

	if user.Home != "" {
		// Use chdir in case the dir doesn't exist.
		_ = out.Chdir(user.Home)
	}
	env.Setenv("PWD", out.Dir)

	return out
}
