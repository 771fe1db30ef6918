package core

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"strings"
	"testing"

	"github.com/josephlewis42/fakedevice/core/config"
	"github.com/josephlewis42/fakedevice/core/logger"
	"github.com/stretchr/testify/assert"
	gossh "golang.org/x/crypto/ssh"
)

func startTestServer(t *testing.T, passwords ...string) (string, *eventLog) {
	t.Helper()

	cfg, err := config.Initialize(t.TempDir(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatal(err)
	}
	cfg.SSH.Passwords = passwords

	events := &eventLog{}
	device := newTestDevice(events)
	server, err := NewServer(cfg, device, events.logger(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatal(err)
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go server.Serve(l)
	t.Cleanup(func() {
		server.Shutdown(context.Background())
	})

	return l.Addr().String(), events
}

func dialTestServer(t *testing.T, addr, password string) (*gossh.Client, error) {
	return gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            "shell",
		Auth:            []gossh.AuthMethod{gossh.Password(password)},
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
	})
}

func TestServer_exec(t *testing.T) {
	addr, events := startTestServer(t)

	client, err := dialTestServer(t, addr, "anything")
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	t.Run("success", func(t *testing.T) {
		sess, err := client.NewSession()
		if err != nil {
			t.Fatal(err)
		}
		defer sess.Close()

		out, err := sess.CombinedOutput("echo hello | wc -c")
		assert.NoError(t, err)
		assert.Equal(t, "6\n", string(out))
	})

	t.Run("exit status", func(t *testing.T) {
		sess, err := client.NewSession()
		if err != nil {
			t.Fatal(err)
		}
		defer sess.Close()

		out, err := sess.CombinedOutput("nope")
		assert.Equal(t, "sh: nope: not found\n", string(out))

		var exitErr *gossh.ExitError
		if assert.True(t, errors.As(err, &exitErr)) {
			assert.Equal(t, 127, exitErr.ExitStatus())
		}
	})

	t.Run("script on stdin", func(t *testing.T) {
		sess, err := client.NewSession()
		if err != nil {
			t.Fatal(err)
		}
		defer sess.Close()

		sess.Stdin = strings.NewReader("x=1; echo $x")
		out, err := sess.Output("")
		assert.NoError(t, err)
		assert.Equal(t, "1\n", string(out))
	})

	events.mu.Lock()
	defer events.mu.Unlock()
	assert.Contains(t, events.types(), logger.LogTypeScript)
}

func TestServer_password(t *testing.T) {
	addr, _ := startTestServer(t, "hunter2")

	_, err := dialTestServer(t, addr, "wrong")
	assert.Error(t, err)

	client, err := dialTestServer(t, addr, "hunter2")
	if assert.NoError(t, err) {
		client.Close()
	}
}
