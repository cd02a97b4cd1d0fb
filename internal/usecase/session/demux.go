package session

import (
	"bytes"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

// LogFunc receives live output tagged with the index of the command that
// produced it. It runs on the goroutine reading the session and must not block.
type LogFunc func(chunk string, index int)

// Demuxer recovers per-command output from the single stdout stream of a
// sentinel-framed session.
//
// It is a state machine over complete lines: the state is the index of the
// command currently producing output, and a line matching the sentinel moves
// it to the next command. Of a line that is still incomplete at the end of a
// delivery, only the part that could still begin a sentinel is held back until
// more output arrives; the rest is forwarded right away, so progress text
// without a newline streams live. A sentinel split across two deliveries is
// recognised exactly as if it had arrived in one piece, and the result does
// not depend on how the stream was chunked.
//
// Output after the last expected boundary is discarded. A Demuxer is not safe
// for concurrent use.
type Demuxer struct {
	pattern *regexp.Regexp
	// literal is the fixed text every sentinel match starts with, and
	// anchored tells whether a match can only start at the beginning of a line.
	literal    string
	anchored   bool
	expected   int
	onLog      LogFunc
	index      int
	boundaries int
	partial    []byte
	released   int
	segments   []strings.Builder
	discarded  int
}

// piece is a run of text for one command within a single delivery.
type piece struct {
	index int
	text  strings.Builder
}

// NewDemuxer creates a demuxer expecting one boundary per command.
// onLog may be nil.
func NewDemuxer(pattern *regexp.Regexp, expected int, onLog LogFunc) *Demuxer {
	literal, anchored := sentinelPrefix(pattern)
	return &Demuxer{
		pattern:  pattern,
		literal:  literal,
		anchored: anchored,
		expected: expected,
		onLog:    onLog,
		segments: make([]strings.Builder, expected),
	}
}

// Write consumes one delivery of session output. It never fails.
func (d *Demuxer) Write(p []byte) (int, error) {
	d.partial = append(d.partial, p...)

	var pieces []*piece
	start := 0
	for {
		nl := bytes.IndexByte(d.partial[start:], '\n')
		if nl < 0 {
			break
		}
		end := start + nl + 1
		pieces = d.consumeLine(string(d.partial[start:end]), pieces)
		start = end
	}
	if start > 0 {
		d.partial = append(d.partial[:0], d.partial[start:]...)
	}
	if safe := d.safePrefix(d.partial); safe > d.released {
		pieces = d.appendText(string(d.partial[d.released:safe]), pieces)
		d.released = safe
	}

	d.emit(pieces)
	return len(p), nil
}

// Close flushes a final line that has no terminating newline. Such a line can
// never be a sentinel.
func (d *Demuxer) Close() error {
	if len(d.partial) == 0 {
		return nil
	}
	pieces := d.appendText(string(d.partial[d.released:]), nil)
	d.partial = nil
	d.released = 0
	d.emit(pieces)
	return nil
}

// Segments returns one output segment per command. It fails with
// domain.ErrSentinelMismatch when the stream did not contain exactly one
// boundary per command, which happens when the session stopped early or a
// command printed the sentinel line itself.
func (d *Demuxer) Segments() ([]string, error) {
	if d.boundaries != d.expected {
		return nil, fmt.Errorf("%w: expected %d boundaries, found %d", domain.ErrSentinelMismatch, d.expected, d.boundaries)
	}
	out := make([]string, d.expected)
	for i := range d.segments {
		out[i] = d.segments[i].String()
	}
	return out, nil
}

// Discarded returns the number of bytes seen after the last expected boundary.
func (d *Demuxer) Discarded() int {
	return d.discarded
}

// consumeLine handles one complete line. Its first d.released bytes were
// already forwarded while the line was incomplete.
func (d *Demuxer) consumeLine(line string, pieces []*piece) []*piece {
	released := d.released
	d.released = 0

	loc := d.pattern.FindStringIndex(line)
	if loc == nil || loc[1] != len(line) {
		return d.appendText(line[released:], pieces)
	}
	pieces = d.appendText(line[released:loc[0]], pieces)
	d.boundaries++
	d.index++
	return pieces
}

// safePrefix returns how many leading bytes of the incomplete line can no
// longer be part of a sentinel match.
func (d *Demuxer) safePrefix(partial []byte) int {
	if d.literal == "" {
		return d.released
	}
	if d.anchored {
		if couldStartSentinel(partial, d.literal) {
			return 0
		}
		return len(partial)
	}
	for i := d.released; i < len(partial); i++ {
		if couldStartSentinel(partial[i:], d.literal) {
			return i
		}
	}
	return len(partial)
}

// couldStartSentinel reports whether s is consistent with a match starting
// with literal.
func couldStartSentinel(s []byte, literal string) bool {
	if len(s) <= len(literal) {
		return strings.HasPrefix(literal, string(s))
	}
	return bytes.HasPrefix(s, []byte(literal))
}

// sentinelPrefix extracts the literal text every match of re starts with and
// whether matches are anchored to the start of the line. An empty literal
// means nothing is known and incomplete lines are held back whole.
func sentinelPrefix(re *regexp.Regexp) (string, bool) {
	parsed, err := syntax.Parse(re.String(), syntax.Perl)
	if err != nil {
		return "", false
	}
	parsed = parsed.Simplify()

	subs := []*syntax.Regexp{parsed}
	if parsed.Op == syntax.OpConcat {
		subs = parsed.Sub
	}

	var literal strings.Builder
	anchored := false
	for i, sub := range subs {
		switch {
		case i == 0 && (sub.Op == syntax.OpBeginText || sub.Op == syntax.OpBeginLine):
			anchored = true
		case sub.Op == syntax.OpLiteral && sub.Flags&syntax.FoldCase == 0:
			literal.WriteString(string(sub.Rune))
		default:
			return literal.String(), anchored
		}
	}
	return literal.String(), anchored
}

func (d *Demuxer) appendText(text string, pieces []*piece) []*piece {
	if text == "" {
		return pieces
	}
	if d.index >= d.expected {
		d.discarded += len(text)
		return pieces
	}
	d.segments[d.index].WriteString(text)

	if n := len(pieces); n > 0 && pieces[n-1].index == d.index {
		pieces[n-1].text.WriteString(text)
		return pieces
	}
	p := &piece{index: d.index}
	p.text.WriteString(text)
	return append(pieces, p)
}

func (d *Demuxer) emit(pieces []*piece) {
	if d.onLog == nil {
		return
	}
	for _, p := range pieces {
		d.onLog(p.text.String(), p.index)
	}
}

// Split demultiplexes a complete output stream in one go.
func Split(pattern *regexp.Regexp, output string, expected int) ([]string, error) {
	d := NewDemuxer(pattern, expected, nil)
	_, _ = d.Write([]byte(output))
	_ = d.Close()
	return d.Segments()
}
