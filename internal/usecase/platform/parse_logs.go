package platform

import (
	"regexp"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

// logLinePrefix matches the colored timestamp dokku puts in front of every app
// log line and captures the instance (e.g. "app[web.1]") up to the next colon.
var logLinePrefix = regexp.MustCompile(`^\x1b\[\d*m\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z ([^:]+)`)

// ParseLogs groups `logs <app>` lines by instance.
func ParseLogs(raw string) (*domain.LogBundle, error) {
	bundle := domain.NewLogBundle()
	for _, line := range outputLines(raw) {
		m := logLinePrefix.FindStringSubmatch(line)
		if m == nil {
			return nil, parseError(CmdLogs, line, "no instance prefix")
		}
		bundle.Add(m[1], line)
	}
	return bundle, nil
}

// ParseNginxLogs returns nginx log output verbatim, without the trailing blank
// line. Nginx lines carry no instance prefix, so they are not grouped. Only
// the final newline-separated element is dropped; carriage returns and any
// further blank lines are kept as nginx wrote them.
func ParseNginxLogs(raw string) string {
	lines := strings.Split(raw, "\n")
	return strings.Join(lines[:len(lines)-1], "\n")
}
