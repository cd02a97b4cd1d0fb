// Package sshnative runs remote sessions with the in-process ssh client from
// golang.org/x/crypto/ssh.
package sshnative

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	"golang.org/x/crypto/ssh"

	"github.com/appops-dev/appops/internal/domain"
)

// Defaults for Config.
const (
	DefaultRemoteCommand  = "shell"
	DefaultConnectTimeout = 15 * time.Second
)

// Config tunes the ssh client.
type Config struct {
	// RemoteCommand is the entry point the script is piped to.
	RemoteCommand string
	// ConnectTimeout bounds dialing and the ssh handshake.
	ConnectTimeout time.Duration
}

// Transport implements out.ShellTransport with one ssh connection per session.
// The private key is parsed in memory and never written to disk.
type Transport struct {
	conn domain.ConnectionInfo
	cfg  Config
	log  zerowrap.Logger
}

// NewTransport creates a transport for one server.
func NewTransport(conn domain.ConnectionInfo, cfg Config, log zerowrap.Logger) *Transport {
	if cfg.RemoteCommand == "" {
		cfg.RemoteCommand = DefaultRemoteCommand
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	return &Transport{
		conn: conn,
		cfg:  cfg,
		log:  log,
	}
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "native"
}

// Run dials the server, runs the remote command with script on stdin and
// copies its stdout as it arrives. Cancelling ctx closes the connection.
//
// Host keys are not verified.
func (t *Transport) Run(ctx context.Context, script string, stdout io.Writer) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "sshnative",
		zerowrap.FieldHost:    t.conn.String(),
	})
	log := zerowrap.FromCtx(ctx)

	client, err := t.dial(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("ssh connection failed")
		return &domain.TransportError{ExitCode: -1, Err: err}
	}
	defer client.Close()

	stop := context.AfterFunc(ctx, func() {
		client.Close()
	})
	defer stop()

	session, err := client.NewSession()
	if err != nil {
		return &domain.TransportError{ExitCode: -1, Err: t.ctxErr(ctx, fmt.Errorf("failed to open session: %w", err))}
	}
	defer session.Close()

	var stderr bytes.Buffer
	session.Stdin = strings.NewReader(script)
	session.Stdout = stdout
	session.Stderr = &stderr

	if err := session.Run(t.cfg.RemoteCommand); err != nil {
		te := &domain.TransportError{ExitCode: -1, Stderr: stderr.String()}
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			te.ExitCode = exitErr.ExitStatus()
		} else {
			te.Err = t.ctxErr(ctx, err)
		}
		log.Debug().Err(te).Msg("ssh session failed")
		return te
	}
	return nil
}

func (t *Transport) dial(ctx context.Context) (*ssh.Client, error) {
	signer, err := ssh.ParsePrivateKey(t.conn.PrivateKeyPEM())
	if err != nil {
		return nil, fmt.Errorf("%w: unusable private key: %v", domain.ErrInvalidConfig, err)
	}

	config := &ssh.ClientConfig{
		User:            t.conn.Username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         t.cfg.ConnectTimeout,
	}

	addr := t.conn.Address()
	dialer := net.Dialer{Timeout: t.cfg.ConnectTimeout}
	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if err := netConn.SetDeadline(time.Now().Add(t.cfg.ConnectTimeout)); err != nil {
		netConn.Close()
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(netConn, addr, config)
	if err != nil {
		netConn.Close()
		return nil, err
	}
	if err := netConn.SetDeadline(time.Time{}); err != nil {
		c.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// ctxErr prefers the context error when the session died because ctx ended.
func (t *Transport) ctxErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
