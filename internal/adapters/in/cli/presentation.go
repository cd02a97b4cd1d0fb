package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/styles"
)

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func cliWriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cliWriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func cliRenderTitle(msg string) string {
	return styles.Theme.Title.Render(msg)
}

func cliRenderEmptyState(msg string) string {
	return styles.Theme.Muted.Render(msg)
}

func cliRenderError(err error) string {
	return styles.RenderError(err.Error())
}

func cliRenderSuccess(msg string) string {
	return styles.RenderSuccess(msg)
}

// liveOutput prints streamed command output line by line, each line behind
// the name of the app that produced it.
type liveOutput struct {
	mu        sync.Mutex
	w         io.Writer
	width     int
	app       string
	lineStart bool
}

func newLiveOutput(w io.Writer, apps []string) *liveOutput {
	width := 0
	for _, a := range apps {
		if len(a) > width {
			width = len(a)
		}
	}
	return &liveOutput{w: w, width: width, lineStart: true}
}

// Log implements in.AppLogFunc.
func (o *liveOutput) Log(chunk, app string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if app != o.app && !o.lineStart {
		_, _ = io.WriteString(o.w, "\n")
		o.lineStart = true
	}
	o.app = app

	for chunk != "" {
		if o.lineStart {
			_, _ = io.WriteString(o.w, styles.RenderAppPrefix(app, o.width))
			o.lineStart = false
		}
		line, rest, found := strings.Cut(chunk, "\n")
		_, _ = io.WriteString(o.w, line)
		if found {
			_, _ = io.WriteString(o.w, "\n")
			o.lineStart = true
		}
		chunk = rest
	}
}

// Flush terminates a pending partial line.
func (o *liveOutput) Flush() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.lineStart {
		_, _ = io.WriteString(o.w, "\n")
		o.lineStart = true
	}
}
