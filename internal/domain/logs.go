package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// LogBundle holds an app's log lines grouped by the instance that wrote them.
type LogBundle struct {
	instances map[string][]string
}

// NewLogBundle returns an empty bundle.
func NewLogBundle() *LogBundle {
	return &LogBundle{instances: make(map[string][]string)}
}

// Add appends a line to the instance's group, keeping arrival order.
func (b *LogBundle) Add(instance, line string) {
	b.instances[instance] = append(b.instances[instance], line)
}

// Instances returns the instance identifiers in sorted order.
func (b *LogBundle) Instances() []string {
	names := make([]string, 0, len(b.instances))
	for name := range b.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lines returns the lines of one instance.
func (b *LogBundle) Lines(instance string) []string {
	return b.instances[instance]
}

// Len returns the total number of lines.
func (b *LogBundle) Len() int {
	n := 0
	for _, lines := range b.instances {
		n += len(lines)
	}
	return n
}

// String concatenates every group in instance order, newline-joined.
func (b *LogBundle) String() string {
	groups := make([]string, 0, len(b.instances))
	for _, name := range b.Instances() {
		groups = append(groups, strings.Join(b.instances[name], "\n"))
	}
	return strings.Join(groups, "\n")
}

// MarshalJSON encodes the bundle as instance -> lines.
func (b *LogBundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.instances)
}

// MarshalYAML encodes the bundle as instance -> lines.
func (b *LogBundle) MarshalYAML() (any, error) {
	return b.instances, nil
}
