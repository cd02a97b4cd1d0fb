package out

// SessionRecorder keeps a transcript of the sessions run through the
// transports it wraps.
type SessionRecorder interface {
	// Wrap returns a transport that forwards to next and records each session
	// under server.
	Wrap(server string, next ShellTransport) ShellTransport

	// Close flushes and closes the transcripts.
	Close() error
}
