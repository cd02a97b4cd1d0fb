// Package sshexec runs remote sessions through the system OpenSSH client.
package sshexec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/appops-dev/appops/internal/adapters/out/keyfile"
	"github.com/appops-dev/appops/internal/domain"
)

// Defaults for Config.
const (
	DefaultBinary        = "ssh"
	DefaultRemoteCommand = "shell"
)

// waitDelay bounds how long a killed session may keep its output pipes open.
const waitDelay = 2 * time.Second

// Config tunes how the ssh binary is invoked.
type Config struct {
	// Binary is the ssh client to run.
	Binary string
	// RemoteCommand is the entry point the script is piped to.
	RemoteCommand string
	// ConnectTimeout is passed as ConnectTimeout when set.
	ConnectTimeout time.Duration
	// KeyDir holds the transient key files; empty means the system temp dir.
	KeyDir string
}

// Transport implements out.ShellTransport with one ssh process per session.
type Transport struct {
	conn domain.ConnectionInfo
	cfg  Config
	log  zerowrap.Logger
}

// NewTransport creates a transport for one server.
func NewTransport(conn domain.ConnectionInfo, cfg Config, log zerowrap.Logger) *Transport {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.RemoteCommand == "" {
		cfg.RemoteCommand = DefaultRemoteCommand
	}
	return &Transport{
		conn: conn,
		cfg:  cfg,
		log:  log,
	}
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "exec"
}

// Run pipes script into `ssh ... <remote command>`. The private key lives in a
// 0600 file that is removed when the session ends.
//
// Host keys are not verified: the client accepts any host key and records none.
func (t *Transport) Run(ctx context.Context, script string, stdout io.Writer) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "sshexec",
		zerowrap.FieldHost:    t.conn.String(),
	})
	log := zerowrap.FromCtx(ctx)

	err := keyfile.With(t.cfg.KeyDir, t.conn.PrivateKeyPEM(), func(keyPath string) error {
		return t.run(ctx, keyPath, script, stdout)
	})
	if err != nil {
		var te *domain.TransportError
		if !errors.As(err, &te) {
			err = &domain.TransportError{ExitCode: -1, Err: err}
		}
		log.Debug().Err(err).Msg("ssh session failed")
		return err
	}
	return nil
}

func (t *Transport) run(ctx context.Context, keyPath, script string, stdout io.Writer) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, t.cfg.Binary, t.args(keyPath)...)
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return nil
	}

	te := &domain.TransportError{ExitCode: -1, Stderr: stderr.String()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		te.ExitCode = exitErr.ExitCode()
	} else {
		te.Err = err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		te.Err = ctxErr
	}
	return te
}

// args builds the ssh command line.
func (t *Transport) args(keyPath string) []string {
	args := []string{
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		"-o", "BatchMode=yes",
		"-o", "LogLevel=ERROR",
	}
	if t.cfg.ConnectTimeout > 0 {
		secs := int((t.cfg.ConnectTimeout + time.Second - 1) / time.Second)
		args = append(args, "-o", "ConnectTimeout="+strconv.Itoa(secs))
	}
	return append(args,
		"-p", strconv.Itoa(t.conn.Port),
		"-i", keyPath,
		"--",
		t.conn.Username+"@"+t.conn.Host,
		t.cfg.RemoteCommand,
	)
}
