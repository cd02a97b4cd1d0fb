// Package platform turns dokku subcommand output into typed records and
// exposes the platform operations built on the batch coordinator.
package platform

import (
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

// Subcommands whose output is parsed here.
const (
	CmdVersion       = "version"
	CmdAppsList      = "apps:list"
	CmdPsScale       = "ps:scale"
	CmdProxyPorts    = "proxy:ports"
	CmdDomainsReport = "domains:report"
	CmdLogs          = "logs"
	CmdNginxAccess   = "nginx:access-logs"
	CmdNginxError    = "nginx:error-logs"
)

// bannerPrefixes start the section headers dokku prints above its tables.
var bannerPrefixes = []string{"=====>", "----->"}

// outputLines splits raw output into lines and drops the trailing blank ones.
func outputLines(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBanner(line string) bool {
	line = strings.TrimSpace(line)
	for _, prefix := range bannerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func parseError(command, line, reason string) error {
	return &domain.ParseError{Command: command, Line: line, Reason: reason}
}
