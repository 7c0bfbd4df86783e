package ports

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	assert.False(t, IsAvailable(port))
	err = Check(port)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in use")

	require.NoError(t, ln.Close())
	assert.True(t, IsAvailable(port))
}
