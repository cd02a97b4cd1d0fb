package platform

import (
	"strconv"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

// ParseProxyPorts parses `proxy:ports <app>`: a banner, a column header, then
// one "scheme host-port container-port" row per mapping.
func ParseProxyPorts(raw string) ([]domain.ProxyPort, error) {
	lines := outputLines(raw)
	if len(lines) < 2 {
		return nil, parseError(CmdProxyPorts, strings.Join(lines, "\n"), "missing header")
	}
	if !isBanner(lines[0]) {
		return nil, parseError(CmdProxyPorts, lines[0], "missing header")
	}

	ports := make([]domain.ProxyPort, 0, len(lines)-2)
	for _, line := range lines[2:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, parseError(CmdProxyPorts, line, "expected scheme, host port and container port")
		}
		hostPort, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, parseError(CmdProxyPorts, line, "host port is not a number")
		}
		containerPort, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, parseError(CmdProxyPorts, line, "container port is not a number")
		}
		ports = append(ports, domain.ProxyPort{
			Scheme:        fields[0],
			HostPort:      hostPort,
			ContainerPort: containerPort,
		})
	}
	return ports, nil
}
