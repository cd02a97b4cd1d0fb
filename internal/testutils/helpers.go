package testutils

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TestContext creates a test context with timeout and a quiet logger attached.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return zerowrap.WithCtx(ctx, TestLogger())
}

// TestLogger returns a logger that only reports warnings and errors.
func TestLogger() zerowrap.Logger {
	return zerowrap.New(zerowrap.Config{Level: "warn"})
}

// CreateTempConfig creates an in-memory filesystem holding /appops.toml.
func CreateTempConfig(t *testing.T, content string) afero.Fs {
	fs := afero.NewMemMapFs()
	err := afero.WriteFile(fs, "/appops.toml", []byte(content), 0644)
	require.NoError(t, err)
	return fs
}

// ReplayTransport is a ShellTransport that answers every session with a canned
// stdout stream, delivered in the configured chunk sizes.
type ReplayTransport struct {
	Output string
	// Chunks lists delivery sizes; the remainder goes out in a final delivery.
	Chunks []int
	Err    error

	mu      sync.Mutex
	scripts []string
}

// Run records the script and replays Output into stdout.
func (r *ReplayTransport) Run(ctx context.Context, script string, stdout io.Writer) error {
	r.mu.Lock()
	r.scripts = append(r.scripts, script)
	r.mu.Unlock()

	rest := []byte(r.Output)
	for _, size := range r.Chunks {
		if len(rest) == 0 {
			break
		}
		if size > len(rest) {
			size = len(rest)
		}
		if _, err := stdout.Write(rest[:size]); err != nil {
			return err
		}
		rest = rest[size:]
	}
	if len(rest) > 0 {
		if _, err := stdout.Write(rest); err != nil {
			return err
		}
	}
	return r.Err
}

// Name implements out.ShellTransport.
func (r *ReplayTransport) Name() string {
	return "replay"
}

// Scripts returns the scripts received so far.
func (r *ReplayTransport) Scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.scripts...)
}

// SentinelLine is what the default sentinel command prints.
const SentinelLine = "dokku version 0.34.4\n"

// Framed joins per-command outputs the way a sentinel-framed session prints them.
func Framed(outputs ...string) string {
	var s string
	for _, o := range outputs {
		s += o + SentinelLine
	}
	return s
}
