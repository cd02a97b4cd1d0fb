package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionInfo_Validate(t *testing.T) {
	valid := ConnectionInfo{Host: "dokku.example.com", Port: 22, Username: "dokku", PrivateKey: "KEY"}

	tests := []struct {
		name    string
		mutate  func(c *ConnectionInfo)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *ConnectionInfo) {}},
		{name: "missing host", mutate: func(c *ConnectionInfo) { c.Host = " " }, wantErr: true},
		{name: "zero port", mutate: func(c *ConnectionInfo) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *ConnectionInfo) { c.Port = 70000 }, wantErr: true},
		{name: "missing username", mutate: func(c *ConnectionInfo) { c.Username = "" }, wantErr: true},
		{name: "host looks like an option", mutate: func(c *ConnectionInfo) { c.Host = "-oProxyCommand=sh" }, wantErr: true},
		{name: "username looks like an option", mutate: func(c *ConnectionInfo) { c.Username = "-oProxyCommand=sh" }, wantErr: true},
		{name: "dash inside host", mutate: func(c *ConnectionInfo) { c.Host = "dokku-1.example.com" }},
		{name: "missing key", mutate: func(c *ConnectionInfo) { c.PrivateKey = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConnectionInfo_PrivateKeyPEM(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "real newlines", key: "-----BEGIN-----\nabc\n-----END-----\n", want: "-----BEGIN-----\nabc\n-----END-----\n"},
		{name: "escaped newlines", key: `-----BEGIN-----\nabc\n-----END-----`, want: "-----BEGIN-----\nabc\n-----END-----\n"},
		{name: "crlf", key: "-----BEGIN-----\r\nabc\r\n-----END-----", want: "-----BEGIN-----\nabc\n-----END-----\n"},
		{name: "escaped crlf", key: `-----BEGIN-----\r\nabc`, want: "-----BEGIN-----\nabc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ConnectionInfo{PrivateKey: tt.key}
			assert.Equal(t, tt.want, string(c.PrivateKeyPEM()))
		})
	}
}

func TestConnectionInfo_StringHidesKey(t *testing.T) {
	c := ConnectionInfo{Host: "10.0.0.1", Port: 2222, Username: "dokku", PrivateKey: "SECRET"}
	assert.Equal(t, "dokku@10.0.0.1:2222", c.String())
	assert.NotContains(t, c.String(), "SECRET")
}
