package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/fakedevice/core/config"
	"github.com/stretchr/testify/assert"
)

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		runUser = ""
	})

	assert.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestBuiltins(t *testing.T) {
	out := executeRoot(t, "builtins")
	assert.Contains(t, out, "echo, /system/bin/echo\n")
	assert.Contains(t, out, "sh, /system/bin/sh\n")
}

func TestRun_default(t *testing.T) {
	out := executeRoot(t, "--config", t.TempDir(), "run", "echo hi | wc -c")
	assert.Equal(t, "3\n", out)
}

func TestRun_user(t *testing.T) {
	out := executeRoot(t, "--config", t.TempDir(), "--user", "root", "run", "whoami")
	assert.Equal(t, "root\n", out)
}

func TestInitAndReport(t *testing.T) {
	dir := t.TempDir()
	executeRoot(t, "--config", dir, "init")
	assert.FileExists(t, filepath.Join(dir, config.ConfigurationName))

	executeRoot(t, "--config", dir, "run", "echo a; nope; true")

	out := executeRoot(t, "--config", dir, "events", "report")
	assert.True(t, strings.Contains(out, "nope"), "report missing unknown command:\n%s", out)
}
