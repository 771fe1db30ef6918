package core

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/fakedevice/core/config"
	"github.com/josephlewis42/fakedevice/core/logger"
	"github.com/josephlewis42/fakedevice/core/vos"
	"github.com/juju/ratelimit"
	gossh "golang.org/x/crypto/ssh"
)

// maxScriptBytes limits scripts read from a session's stdin.
const maxScriptBytes = 1 << 20

// Server runs scripts sent over SSH against a FakeDevice. The command of an
// exec request is the script, sessions without one send the script on
// stdin.
type Server struct {
	configuration *config.Configuration
	device        *FakeDevice
	eventLog      *logger.Logger
	appLog        *log.Logger
	sshServer     *ssh.Server
}

func NewServer(configuration *config.Configuration, device *FakeDevice, eventLog *logger.Logger, appLog *log.Logger) (*Server, error) {
	keyPem, err := configuration.PrivateKeyPem()
	if err != nil {
		return nil, fmt.Errorf("reading host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(keyPem)
	if err != nil {
		return nil, fmt.Errorf("parsing host key: %w", err)
	}

	server := &Server{
		configuration: configuration,
		device:        device,
		eventLog:      eventLog,
		appLog:        appLog,
	}

	server.sshServer = &ssh.Server{
		Addr: configuration.SSH.ListenAddress,
		Handler: func(s ssh.Session) {
			server.HandleSession(s)
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return configuration.CheckPassword(password)
		},
	}
	server.sshServer.AddHostKey(signer)

	return server, nil
}

// HandleSession runs one script and exits the session with its status.
func (s *Server) HandleSession(sess ssh.Session) {
	sessionID, _ := sess.Context().Value(ssh.ContextKeySessionID).(string)
	session := s.eventLog.NewSession(sessionID)

	stdout, stderr := s.throttle(sess, sess.Stderr())

	script := sess.RawCommand()
	if script == "" {
		data, err := io.ReadAll(io.LimitReader(sess, maxScriptBytes))
		if err != nil {
			s.appLog.Printf("session %s: reading script: %v", session.SessionID(), err)
			sess.Exit(1)
			return
		}
		script = string(data)
	}

	s.appLog.Printf("session %s: %s@%s ran %q", session.SessionID(), sess.User(), sess.RemoteAddr(), script)

	code, err := s.device.Exec(session, script, vos.NewVIOAdapter(nil, stdout, stderr))
	if err != nil {
		fmt.Fprintf(stderr, "sh: %v\n", err)
	}
	sess.Exit(code)
}

// throttle limits the combined output rate of a session if configured.
func (s *Server) throttle(stdout, stderr io.Writer) (io.Writer, io.Writer) {
	rate := s.configuration.SSH.OutputBytesPerSecond
	if rate <= 0 {
		return stdout, stderr
	}

	bucket := ratelimit.NewBucketWithRate(float64(rate), rate)
	return ratelimit.Writer(stdout, bucket), ratelimit.Writer(stderr, bucket)
}

func (s *Server) Addr() string {
	return s.sshServer.Addr
}

func (s *Server) ListenAndServe() error {
	s.appLog.Printf("Starting SSH server on %s", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	return s.sshServer.Serve(l)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.sshServer.Shutdown(ctx)
}
