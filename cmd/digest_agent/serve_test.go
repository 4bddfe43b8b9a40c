package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_InvalidPort(t *testing.T) {
	useConfig(t, nil)
	servePort = 70000
	t.Cleanup(func() { servePort = 8080 })

	err := runServe(newTestCommand(&bytes.Buffer{}), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}
