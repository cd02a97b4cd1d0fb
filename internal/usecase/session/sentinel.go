package session

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

// Sentinel is the command injected after every logical command of a batch and
// the pattern matching the single line it prints. The pattern is the framing
// protocol: changing the sentinel command or the platform's version line is a
// breaking change.
type Sentinel struct {
	Command string
	Pattern *regexp.Regexp
}

const (
	// DefaultSentinelCommand prints the platform version.
	DefaultSentinelCommand = "version"
	// DefaultSentinelPattern matches dokku's version line, newline included.
	DefaultSentinelPattern = `^dokku version \d+\.\d+\.\d+\n`
)

// DefaultSentinel returns the dokku version sentinel.
func DefaultSentinel() Sentinel {
	return Sentinel{
		Command: DefaultSentinelCommand,
		Pattern: regexp.MustCompile(DefaultSentinelPattern),
	}
}

// NewSentinel compiles a sentinel. The pattern must match a whole output line
// including its terminating newline; matches that stop short of the line end
// are not treated as boundaries.
func NewSentinel(command, pattern string) (Sentinel, error) {
	command = strings.TrimSpace(command)
	if command == "" || strings.ContainsAny(command, "\r\n") {
		return Sentinel{}, fmt.Errorf("%w: sentinel command must be a single non-empty line", domain.ErrInvalidConfig)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Sentinel{}, fmt.Errorf("%w: sentinel pattern: %v", domain.ErrInvalidConfig, err)
	}
	if !strings.HasSuffix(pattern, `\n`) && !strings.HasSuffix(pattern, "\n") {
		return Sentinel{}, fmt.Errorf("%w: sentinel pattern must end with a newline", domain.ErrInvalidConfig)
	}
	return Sentinel{Command: command, Pattern: re}, nil
}

// BuildScript interleaves the sentinel after every command:
// cmd1 \n sentinel \n cmd2 \n sentinel ... cmdK \n sentinel, newline-terminated
// like a here-document.
func BuildScript(commands []string, s Sentinel) (string, error) {
	lines := make([]string, 0, 2*len(commands))
	for _, cmd := range commands {
		if err := checkCommand(cmd); err != nil {
			return "", err
		}
		lines = append(lines, cmd, s.Command)
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// checkCommand refuses commands that would shift the framing: an empty line
// produces no output and a line break would make two commands out of one.
func checkCommand(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return fmt.Errorf("%w: empty command", domain.ErrInvalidTemplate)
	}
	if strings.ContainsAny(cmd, "\r\n") {
		return fmt.Errorf("%w: command %q spans several lines", domain.ErrInvalidTemplate, cmd)
	}
	return nil
}
