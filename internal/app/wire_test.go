package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appops-dev/appops/internal/adapters/out/logwriter"
	"github.com/appops-dev/appops/internal/adapters/out/sshexec"
	"github.com/appops-dev/appops/internal/adapters/out/sshnative"
	"github.com/appops-dev/appops/internal/domain"
	"github.com/appops-dev/appops/internal/testutils"
)

func TestNewFleet(t *testing.T) {
	fs := testutils.CreateTempConfig(t, fleetConfig)
	require.NoError(t, fsWriteKey(fs))

	cfg, err := LoadConfig(LoadOptions{ConfigPath: "/appops.toml", Fs: fs})
	require.NoError(t, err)

	f, err := NewFleet(cfg, fs, testutils.TestLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"oci-1", "oci-2"}, f.Servers())

	_, err = f.Platform("oci-1")
	assert.NoError(t, err)
	_, err = f.Platform("oci-9")
	assert.True(t, errors.Is(err, domain.ErrServerNotFound))
}

func TestNewFleet_BadServer(t *testing.T) {
	fs := testutils.CreateTempConfig(t, `[servers.oci-1]
host = "h"
`)
	cfg, err := LoadConfig(LoadOptions{ConfigPath: "/appops.toml", Fs: fs})
	require.NoError(t, err)

	_, err = NewFleet(cfg, fs, testutils.TestLogger(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "missing key: %v", err)
}

func TestNewTransport(t *testing.T) {
	conn := domain.ConnectionInfo{Host: "h", Port: 22, Username: "dokku", PrivateKey: "k"}

	var cfg Config
	cfg.SSH.Transport = TransportExec
	tr, err := newTransport(cfg, conn, testutils.TestLogger())
	require.NoError(t, err)
	assert.IsType(t, &sshexec.Transport{}, tr)

	cfg.SSH.Transport = TransportNative
	tr, err = newTransport(cfg, conn, testutils.TestLogger())
	require.NoError(t, err)
	assert.IsType(t, &sshnative.Transport{}, tr)

	cfg.SSH.Transport = "telnet"
	_, err = newTransport(cfg, conn, testutils.TestLogger())
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

func TestResolveLogFilePath(t *testing.T) {
	var cfg Config
	assert.Contains(t, resolveLogFilePath(cfg), "appops.log")

	cfg.Logging.File.Path = "/var/log/custom.log"
	assert.Equal(t, "/var/log/custom.log", resolveLogFilePath(cfg))
}

func TestNewFleet_WithTranscripts(t *testing.T) {
	fs := testutils.CreateTempConfig(t, fleetConfig)
	require.NoError(t, fsWriteKey(fs))
	cfg, err := LoadConfig(LoadOptions{ConfigPath: "/appops.toml", Fs: fs})
	require.NoError(t, err)

	transcripts, err := logwriter.New(logwriter.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = transcripts.Close() })

	f, err := NewFleet(cfg, fs, testutils.TestLogger(), transcripts)
	require.NoError(t, err)
	assert.Len(t, f.Servers(), 2)
}

func TestResolveTranscriptDir(t *testing.T) {
	var cfg Config
	assert.Contains(t, resolveTranscriptDir(cfg), "transcripts")

	cfg.Transcript.Dir = "/srv/transcripts"
	assert.Equal(t, "/srv/transcripts", resolveTranscriptDir(cfg))
}
