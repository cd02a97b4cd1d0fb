package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

var (
	psScaleTableHeader = regexp.MustCompile(`^proctype:\s*qty$`)
	psScaleSeparator   = regexp.MustCompile(`^-+:\s*-+$`)
	psScaleRow         = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9_-]*):\s*(\d+)$`)
)

// ParsePsScale parses `ps:scale <app>` without arguments. The table is preceded
// by banner lines and, in current dokku releases, a "proctype: qty" header and
// its dashed separator; all of them are skipped, at least one banner is required.
func ParsePsScale(raw string) (domain.ScalingSpec, error) {
	lines := outputLines(raw)

	banners := 0
	i := 0
header:
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case isBanner(line):
			banners++
		case psScaleTableHeader.MatchString(line), psScaleSeparator.MatchString(line):
		default:
			break header
		}
	}
	if banners == 0 {
		if len(lines) == 0 {
			return nil, parseError(CmdPsScale, "", "empty output")
		}
		return nil, parseError(CmdPsScale, lines[0], "missing header")
	}

	spec := domain.ScalingSpec{}
	for _, line := range lines[i:] {
		m := psScaleRow.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			return nil, parseError(CmdPsScale, line, "expected process:quantity")
		}
		qty, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, parseError(CmdPsScale, line, err.Error())
		}
		if _, dup := spec[m[1]]; dup {
			return nil, parseError(CmdPsScale, line, "duplicate process type")
		}
		spec[m[1]] = qty
	}
	return spec, nil
}

// FormatPsScale renders spec the way `ps:scale <app>` prints it.
func FormatPsScale(app string, spec domain.ScalingSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-----> Scaling for %s\n", app)
	b.WriteString("proctype: qty\n")
	b.WriteString("--------: ---\n")
	for _, t := range spec.ProcessTypes() {
		fmt.Fprintf(&b, "%s: %d\n", t, spec[t])
	}
	b.WriteString("\n")
	return b.String()
}
