package domain

import "regexp"

const (
	minResourceNameLen = 2
	maxResourceNameLen = 63
)

// resourceNamePattern allows lowercase letters, digits and single inner hyphens.
var resourceNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// App is an application hosted on a platform server.
type App struct {
	Name   string
	Server string
}

// AppName implements AppNamer.
func (a App) AppName() string {
	return a.Name
}

// AppNamer is implemented by values that carry an application name.
type AppNamer interface {
	AppName() string
}

// IsValidResourceName reports whether name is usable as an app, process type or
// similar platform resource. Names are interpolated into remote commands, so
// anything outside the DNS-label-like syntax is refused.
func IsValidResourceName(name string) bool {
	if len(name) < minResourceNameLen || len(name) > maxResourceNameLen {
		return false
	}
	return resourceNamePattern.MatchString(name)
}

// MustBeValidResourceName returns an *InvalidNameError when name is not valid.
func MustBeValidResourceName(name string) error {
	if !IsValidResourceName(name) {
		return &InvalidNameError{Name: name}
	}
	return nil
}

// MustBeValidResourceNames validates every name and stops at the first failure.
func MustBeValidResourceNames(names []string) error {
	for _, name := range names {
		if err := MustBeValidResourceName(name); err != nil {
			return err
		}
	}
	return nil
}
