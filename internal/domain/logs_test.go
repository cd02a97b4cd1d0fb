package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBundle(t *testing.T) {
	b := NewLogBundle()
	b.Add("app[worker.1]", "w1")
	b.Add("app[web.1]", "a1")
	b.Add("app[worker.1]", "w2")
	b.Add("app[web.1]", "a2")

	assert.Equal(t, []string{"app[web.1]", "app[worker.1]"}, b.Instances())
	assert.Equal(t, []string{"w1", "w2"}, b.Lines("app[worker.1]"))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, "a1\na2\nw1\nw2", b.String())
}

func TestLogBundle_Empty(t *testing.T) {
	b := NewLogBundle()
	assert.Empty(t, b.Instances())
	assert.Equal(t, "", b.String())
	assert.Zero(t, b.Len())
}

func TestLogBundle_MarshalJSON(t *testing.T) {
	b := NewLogBundle()
	b.Add("app[web.1]", "up")
	b.Add("app[web.1]", "ready")

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"app[web.1]":["up","ready"]}`, string(data))
}

func TestLogBundle_MarshalYAML(t *testing.T) {
	b := NewLogBundle()
	b.Add("web.1", "up")

	v, err := b.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"web.1": {"up"}}, v)
}
