package platform

import "strings"

// ParseAppsList parses `apps:list`: one banner line, then one app per line.
func ParseAppsList(raw string) ([]string, error) {
	lines := outputLines(raw)
	if len(lines) == 0 {
		return nil, parseError(CmdAppsList, "", "empty output")
	}
	if !isBanner(lines[0]) {
		return nil, parseError(CmdAppsList, lines[0], "missing header")
	}

	apps := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if strings.ContainsAny(name, " \t") {
			return nil, parseError(CmdAppsList, line, "not an app name")
		}
		apps = append(apps, name)
	}
	return apps, nil
}

// ParseVersion extracts the version from the sentinel command's output line.
func ParseVersion(raw string) (string, error) {
	lines := outputLines(raw)
	if len(lines) == 0 {
		return "", parseError(CmdVersion, "", "empty output")
	}
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) < 2 || fields[len(fields)-2] != "version" {
		return "", parseError(CmdVersion, lines[len(lines)-1], "no version found")
	}
	return fields[len(fields)-1], nil
}
