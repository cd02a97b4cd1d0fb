package platform

import (
	"regexp"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

var domainsReportRow = regexp.MustCompile(`^Domains (app|global) (enabled|vhosts):\s*(.*)$`)

// ParseDomainsReport parses `domains:report <app>`. Every line after the banner
// must be one of the four "Domains <scope> <key>:" fields.
func ParseDomainsReport(raw string) (domain.DomainConfig, error) {
	var cfg domain.DomainConfig

	lines := outputLines(raw)
	if len(lines) == 0 {
		return cfg, parseError(CmdDomainsReport, "", "empty output")
	}
	if !isBanner(lines[0]) {
		return cfg, parseError(CmdDomainsReport, lines[0], "missing header")
	}

	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		m := domainsReportRow.FindStringSubmatch(trimmed)
		if m == nil {
			return cfg, parseError(CmdDomainsReport, line, "unknown field")
		}

		scope := &cfg.App
		if m[1] == "global" {
			scope = &cfg.Global
		}
		value := strings.TrimSpace(m[3])
		if m[2] == "enabled" {
			scope.Enabled = value == "true"
		} else {
			scope.Vhosts = strings.Fields(value)
		}
	}
	return cfg, nil
}

// NewDomainsReport parses raw and derives the effective domains of app.
func NewDomainsReport(app, raw string) (domain.DomainsReport, error) {
	cfg, err := ParseDomainsReport(raw)
	if err != nil {
		return domain.DomainsReport{}, err
	}
	return domain.DomainsReport{Config: cfg, Effective: cfg.Effective(app)}, nil
}
