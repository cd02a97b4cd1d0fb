package domain

import "fmt"

// PsAction is a process lifecycle action applied to an app.
type PsAction string

const (
	PsRestart PsAction = "restart"
	PsStart   PsAction = "start"
	PsStop    PsAction = "stop"
	PsRebuild PsAction = "rebuild"
)

// PsActions lists every supported action.
var PsActions = []PsAction{PsRestart, PsStart, PsStop, PsRebuild}

// ParsePsAction returns the action named s.
func ParsePsAction(s string) (PsAction, error) {
	for _, a := range PsActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown process action %q", ErrInvalidTemplate, s)
}

// Subcommand returns the platform subcommand, e.g. "ps:restart".
func (a PsAction) Subcommand() string {
	return "ps:" + string(a)
}
