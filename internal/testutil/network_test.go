package testutil

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFreePort(t *testing.T) {
	port, err := GetFreePort()
	require.NoError(t, err)
	assert.Positive(t, port)
}

func TestWaitForServer(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port

	assert.NoError(t, WaitForServer(port, time.Second))

	require.NoError(t, l.Close())
	assert.Error(t, WaitForServer(port, 50*time.Millisecond))
}
