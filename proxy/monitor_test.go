package proxy_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jp "github.com/go-mclib/proxy/java_protocol"
	ps "github.com/go-mclib/proxy/java_protocol/packets"
	"github.com/go-mclib/proxy/logger"
	"github.com/go-mclib/proxy/proxy"
)

// syncBuffer makes a bytes.Buffer safe for the logger's goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestMonitorFiltersRepeatedChunkData(t *testing.T) {
	var out syncBuffer
	logger.Configure(logger.DEBUG, &out)
	defer logger.Configure(logger.NOTICE, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tap := make(chan proxy.TappedPacket, 100)
	monitor := proxy.NewPacketMonitor(tap)

	errCh := make(chan error, 1)
	go func() { errCh <- monitor.Run(ctx) }()

	chunk := func() jp.Packet {
		return &ps.ChunkData{ChunkX: 1, ChunkZ: 2, Tail: []byte{0}}
	}

	for i := 0; i < 5; i++ {
		tap <- proxy.TappedPacket{Serverbound: false, Packet: chunk()}
	}
	tap <- proxy.TappedPacket{Serverbound: false, Packet: &ps.ClientboundKeepAlive{KeepAliveID: 9}}
	tap <- proxy.TappedPacket{Serverbound: true, Packet: &ps.ServerboundKeepAlive{KeepAliveID: 9}}
	close(tap)

	require.NoError(t, <-errCh)

	logged := out.String()
	assert.Equal(t, 1, strings.Count(logged, "ChunkData"), "log output:\n%s", logged)
	assert.Contains(t, logged, "<- KeepAlive(id=9)")
	assert.Contains(t, logged, "-> KeepAlive(id=9)")
}

func TestMonitorDirectionSymbols(t *testing.T) {
	var out syncBuffer
	logger.Configure(logger.DEBUG, &out)
	defer logger.Configure(logger.NOTICE, os.Stderr)

	ctx := context.Background()
	tap := make(chan proxy.TappedPacket, 2)
	tap <- proxy.TappedPacket{Serverbound: true, Packet: &ps.StatusRequest{}}
	tap <- proxy.TappedPacket{Serverbound: false, Packet: &ps.StatusPong{Value: 1}}
	close(tap)

	require.NoError(t, proxy.NewPacketMonitor(tap).Run(ctx))

	logged := out.String()
	assert.Contains(t, logged, "-> Request()")
	assert.Contains(t, logged, "<- Pong(value=1)")
}
