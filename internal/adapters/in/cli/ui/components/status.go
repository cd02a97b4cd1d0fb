package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/styles"
)

// Status represents a status type for rendering.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusWarning
	StatusInfo
	StatusRunning
	StatusStopped
)

type statusStyle struct {
	icon  string
	style lipgloss.Style
}

func statusStyleOf(status Status) statusStyle {
	switch status {
	case StatusSuccess, StatusRunning:
		return statusStyle{icon: styles.IconSuccess, style: styles.Theme.Success}
	case StatusError:
		return statusStyle{icon: styles.IconError, style: styles.Theme.Error}
	case StatusStopped:
		return statusStyle{icon: styles.IconStopped, style: styles.Theme.Muted}
	case StatusWarning:
		return statusStyle{icon: styles.IconWarning, style: styles.Theme.Warning}
	default:
		return statusStyle{icon: styles.IconInfo, style: styles.Theme.Info}
	}
}

// RenderStatus renders a status with icon and optional label.
func RenderStatus(status Status, label string) string {
	s := statusStyleOf(status)
	if label == "" {
		return s.style.Render(s.icon)
	}
	return s.style.Render(s.icon + " " + label)
}

// ProcessStatus maps a process type's instance count to a status.
func ProcessStatus(qty int) Status {
	if qty > 0 {
		return StatusRunning
	}
	return StatusStopped
}

// ProcessIndicator renders the state of a process type with qty instances.
func ProcessIndicator(qty int) string {
	status := ProcessStatus(qty)
	if status == StatusRunning {
		return RenderStatus(status, "running")
	}
	return RenderStatus(status, "stopped")
}
