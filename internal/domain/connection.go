package domain

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultSSHPort is used when a server does not configure one.
const DefaultSSHPort = 22

// ConnectionInfo holds what is needed to open a remote shell on one server.
// It is built once from validated configuration and never mutated.
type ConnectionInfo struct {
	Host       string
	Port       int
	Username   string
	PrivateKey string
}

// Validate checks that every field is usable. Host and username end up on an
// ssh command line, so neither may start with '-'.
func (c ConnectionInfo) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	if strings.HasPrefix(c.Host, "-") {
		return fmt.Errorf("%w: host %q must not start with '-'", ErrInvalidConfig, c.Host)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}
	if strings.HasPrefix(c.Username, "-") {
		return fmt.Errorf("%w: username %q must not start with '-'", ErrInvalidConfig, c.Username)
	}
	if strings.TrimSpace(c.PrivateKey) == "" {
		return fmt.Errorf("%w: private key is required", ErrInvalidConfig)
	}
	return nil
}

// Address returns host:port.
func (c ConnectionInfo) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// PrivateKeyPEM returns the key with escaped newlines ("\n" typed literally, as
// environment variables usually carry it) and CRLF line endings turned into
// real newlines, terminated by a final newline.
func (c ConnectionInfo) PrivateKeyPEM() []byte {
	key := strings.ReplaceAll(c.PrivateKey, `\r\n`, "\n")
	key = strings.ReplaceAll(key, `\n`, "\n")
	key = strings.ReplaceAll(key, "\r\n", "\n")
	key = strings.TrimSpace(key)
	return []byte(key + "\n")
}

// String never includes key material.
func (c ConnectionInfo) String() string {
	return fmt.Sprintf("%s@%s", c.Username, c.Address())
}
