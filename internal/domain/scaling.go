package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ScalingSpec maps a process type (web, worker...) to its instance count.
type ScalingSpec map[string]int

// ProcessTypes returns the process types in sorted order.
func (s ScalingSpec) ProcessTypes() []string {
	types := make([]string, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Validate checks process type names and counts.
func (s ScalingSpec) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no process types", ErrInvalidScaling)
	}
	for _, t := range s.ProcessTypes() {
		if err := MustBeValidResourceName(t); err != nil {
			return err
		}
		if s[t] < 0 {
			return fmt.Errorf("%w: negative quantity %d for %s", ErrInvalidScaling, s[t], t)
		}
	}
	return nil
}

// Args renders the scaling as ps:scale arguments: "web=2 worker=1".
func (s ScalingSpec) Args() string {
	parts := make([]string, 0, len(s))
	for _, t := range s.ProcessTypes() {
		parts = append(parts, t+"="+strconv.Itoa(s[t]))
	}
	return strings.Join(parts, " ")
}

// ParseScalingArgs parses "type=qty" arguments into a spec.
func ParseScalingArgs(args []string) (ScalingSpec, error) {
	spec := make(ScalingSpec, len(args))
	for _, arg := range args {
		name, qty, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not type=qty", ErrInvalidScaling, arg)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidScaling, arg, err)
		}
		spec[strings.TrimSpace(name)] = n
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
