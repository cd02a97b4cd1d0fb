package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("exit status 255")
	err := fmt.Errorf("run batch: %w", &TransportError{ExitCode: 255, Stderr: "Permission denied (publickey).\n", Err: cause})

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrParse))
	assert.Equal(t, "run batch: remote session failed (exit code 255): exit status 255: Permission denied (publickey).", err.Error())

	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, 255, te.ExitCode)
}

func TestParseError(t *testing.T) {
	err := &ParseError{Command: "ps:scale", Line: "garbage", Reason: "expected type: quantity"}

	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrTransport))
	assert.Equal(t, `parse ps:scale output: expected type: quantity: "garbage"`, err.Error())

	noLine := &ParseError{Command: "apps:list", Reason: "missing header"}
	assert.Equal(t, "parse apps:list output: missing header", noLine.Error())
}

func TestInvalidNameError(t *testing.T) {
	err := &InvalidNameError{Name: "Bad"}
	assert.True(t, errors.Is(err, ErrInvalidName))
	assert.Equal(t, `invalid resource name: "Bad"`, err.Error())
}
