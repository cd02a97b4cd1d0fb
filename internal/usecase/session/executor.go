// Package session runs batches of platform commands through a single remote
// shell session and recovers each command's output from the shared stream.
package session

import (
	"bytes"
	"context"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/google/uuid"

	"github.com/appops-dev/appops/internal/boundaries/out"
)

// Executor sends sentinel-framed scripts over a ShellTransport. It holds no
// per-call state, so concurrent calls are independent sessions.
type Executor struct {
	transport out.ShellTransport
	sentinel  Sentinel
	log       zerowrap.Logger
}

// NewExecutor creates an executor bound to one server's transport.
func NewExecutor(transport out.ShellTransport, sentinel Sentinel, log zerowrap.Logger) *Executor {
	return &Executor{
		transport: transport,
		sentinel:  sentinel,
		log:       log,
	}
}

// Execute runs every command in one session and returns one raw output segment
// per command, in order. When onLog is set, output is also forwarded live,
// tagged with the index of the command producing it.
//
// An empty command list returns without opening a session.
func (e *Executor) Execute(ctx context.Context, commands []string, onLog LogFunc) ([]string, error) {
	if len(commands) == 0 {
		return []string{}, nil
	}

	sessionID := uuid.NewString()
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "ExecuteBatch",
		zerowrap.FieldCount:   len(commands),
		"session_id":          sessionID,
		"transport":           e.transport.Name(),
	})
	log := zerowrap.FromCtx(ctx)

	script, err := BuildScript(commands, e.sentinel)
	if err != nil {
		return nil, err
	}

	demux := NewDemuxer(e.sentinel.Pattern, len(commands), onLog)
	started := time.Now()
	log.Debug().Msg("opening remote session")

	if err := e.transport.Run(ctx, script, demux); err != nil {
		log.Warn().Err(err).Msg("remote session failed")
		return nil, err
	}
	_ = demux.Close()

	segments, err := demux.Segments()
	if err != nil {
		log.Warn().Err(err).Msg("failed to demultiplex session output")
		return nil, err
	}
	if n := demux.Discarded(); n > 0 {
		log.Warn().Int("bytes", n).Msg("discarded output after the last sentinel")
	}

	log.Debug().Dur(zerowrap.FieldDuration, time.Since(started)).Msg("remote session completed")
	return segments, nil
}

// Run sends one command without sentinel framing and returns its raw output.
func (e *Executor) Run(ctx context.Context, command string) (string, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Run",
		"session_id":          uuid.NewString(),
		"transport":           e.transport.Name(),
	})
	log := zerowrap.FromCtx(ctx)

	if err := checkCommand(command); err != nil {
		return "", err
	}

	var stdout bytes.Buffer
	if err := e.transport.Run(ctx, command+"\n", &stdout); err != nil {
		log.Warn().Err(err).Msg("remote session failed")
		return "", err
	}
	return stdout.String(), nil
}
