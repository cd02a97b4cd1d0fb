package domain

import "fmt"

// ProxyPort maps a public port to a container port for one scheme.
type ProxyPort struct {
	Scheme        string `json:"scheme" yaml:"scheme"`
	HostPort      int    `json:"host_port" yaml:"host_port"`
	ContainerPort int    `json:"container_port" yaml:"container_port"`
}

// String renders the mapping the way dokku accepts it: "http:80:5000".
func (p ProxyPort) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Scheme, p.HostPort, p.ContainerPort)
}
