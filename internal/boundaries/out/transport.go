// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (system ssh client, in-process ssh client, transcript recorder).
package out

import (
	"context"
	"io"
)

// ShellTransport runs a script inside one remote-shell session.
// Implementations own the connection parameters of a single server.
type ShellTransport interface {
	// Run pipes script to the remote shell entry point and copies the remote
	// stdout into stdout as it arrives. It returns once the session has ended.
	// A session that cannot be opened or that exits non-zero yields a
	// *domain.TransportError.
	Run(ctx context.Context, script string, stdout io.Writer) error

	// Name identifies the transport in logs.
	Name() string
}
