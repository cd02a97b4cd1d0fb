// Package logwriter records remote session transcripts with file rotation.
package logwriter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/zerowrap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/appops-dev/appops/internal/boundaries/out"
)

// Config holds the configuration for the log writer.
type Config struct {
	// Dir is the directory where transcripts are stored, one file per server.
	Dir string
	// MaxSize is the maximum size in megabytes before rotation.
	MaxSize int
	// MaxBackups is the number of old transcript files to retain.
	MaxBackups int
	// MaxAge is the maximum number of days to retain old transcript files.
	MaxAge int
}

var _ out.SessionRecorder = (*LogWriter)(nil)

// LogWriter owns the rotated transcript files.
type LogWriter struct {
	config Config
	files  map[string]*lumberjack.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// New creates a new LogWriter.
func New(config Config) (*LogWriter, error) {
	if err := os.MkdirAll(config.Dir, 0700); err != nil {
		return nil, err
	}

	return &LogWriter{
		config: config,
		files:  make(map[string]*lumberjack.Logger),
		now:    time.Now,
	}, nil
}

// Wrap returns a transport that forwards to next and appends every session
// it runs to the transcript of server.
func (w *LogWriter) Wrap(server string, next out.ShellTransport) out.ShellTransport {
	return &recordingTransport{writer: w, server: server, next: next}
}

// Close closes every transcript file.
func (w *LogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	for server, f := range w.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(w.files, server)
	}
	return firstErr
}

// file returns the rotated file of server, opening it on first use.
func (w *LogWriter) file(server string) *lumberjack.Logger {
	w.mu.Lock()
	defer w.mu.Unlock()

	if f, ok := w.files[server]; ok {
		return f
	}
	f := &lumberjack.Logger{
		Filename:   filepath.Join(w.config.Dir, sanitizeName(server)+".log"),
		MaxSize:    w.config.MaxSize,
		MaxBackups: w.config.MaxBackups,
		MaxAge:     w.config.MaxAge,
		Compress:   true,
	}
	w.files[server] = f
	return f
}

// record appends one session in a single write so concurrent sessions never
// interleave.
func (w *LogWriter) record(ctx context.Context, server, transport, script, output string, runErr error) {
	var entry strings.Builder
	fmt.Fprintf(&entry, "=== %s server=%s transport=%s", w.now().UTC().Format(time.RFC3339), server, transport)
	if runErr != nil {
		fmt.Fprintf(&entry, " error=%q", runErr.Error())
	}
	entry.WriteString("\n")
	for _, line := range strings.Split(strings.TrimSuffix(script, "\n"), "\n") {
		entry.WriteString("$ " + line + "\n")
	}
	entry.WriteString(output)
	if output != "" && !strings.HasSuffix(output, "\n") {
		entry.WriteString("\n")
	}

	if _, err := io.WriteString(w.file(server), entry.String()); err != nil {
		zerowrap.FromCtx(ctx).Warn().Err(err).
			Str(zerowrap.FieldAdapter, "logwriter").
			Str(zerowrap.FieldHost, server).
			Msg("failed to write session transcript")
	}
}

type recordingTransport struct {
	writer *LogWriter
	server string
	next   out.ShellTransport
}

// Run implements out.ShellTransport.
func (t *recordingTransport) Run(ctx context.Context, script string, stdout io.Writer) error {
	var captured bytes.Buffer
	err := t.next.Run(ctx, script, io.MultiWriter(stdout, &captured))
	t.writer.record(ctx, t.server, t.next.Name(), script, captured.String(), err)
	return err
}

// Name implements out.ShellTransport.
func (t *recordingTransport) Name() string {
	return t.next.Name()
}

// sanitizeName converts a server name to a safe filename.
func sanitizeName(name string) string {
	safe := strings.ReplaceAll(name, ".", "_")
	safe = strings.ReplaceAll(safe, "/", "_")
	safe = strings.ReplaceAll(safe, ":", "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	return safe
}
