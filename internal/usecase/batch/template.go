package batch

import (
	"fmt"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

// DefaultPlaceholder is replaced by the app name in batch command templates.
const DefaultPlaceholder = "%app%"

// ExpandTemplate produces one command per app by substituting the placeholder
// in template. Apps are trimmed and blank ones skipped; validating them is the
// caller's job. The placeholder must appear exactly once.
func ExpandTemplate(apps []string, template, placeholder string) ([]string, error) {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if n := strings.Count(template, placeholder); n != 1 {
		return nil, fmt.Errorf("%w: %q must contain %s exactly once, found %d", domain.ErrInvalidTemplate, template, placeholder, n)
	}

	commands := make([]string, 0, len(apps))
	for _, app := range apps {
		if app = strings.TrimSpace(app); app == "" {
			continue
		}
		commands = append(commands, strings.Replace(template, placeholder, app, 1))
	}
	return commands, nil
}
