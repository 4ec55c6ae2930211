package proxy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
	ps "github.com/go-mclib/proxy/java_protocol/packets"
	"github.com/go-mclib/proxy/proxy"
)

func keepAlive(id int64) jp.Packet {
	return &ps.ClientboundKeepAlive{KeepAliveID: ns.Int64(id)}
}

func TestMirrorPreservesOrderAndTees(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientIn := make(chan jp.Packet)
	serverOut := make(chan jp.Packet)
	serverIn := make(chan jp.Packet)
	clientOut := make(chan jp.Packet)
	monitor := make(chan proxy.TappedPacket, 100)

	mirror := &proxy.PacketMirror{
		ClientIn:  clientIn,
		ServerOut: serverOut,
		ServerIn:  serverIn,
		ClientOut: clientOut,
		Monitor:   monitor,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- mirror.Run(ctx) }()

	const n = 20

	// feed both directions concurrently
	go func() {
		for i := 0; i < n; i++ {
			clientIn <- keepAlive(int64(i))
		}
		close(clientIn)
	}()
	go func() {
		for i := 0; i < n; i++ {
			serverIn <- keepAlive(int64(100 + i))
		}
		close(serverIn)
	}()

	var toServer, toClient []jp.Packet
	collectDone := make(chan struct{})
	go func() {
		defer close(collectDone)
		for p := range serverOut {
			toServer = append(toServer, p)
		}
	}()
	for p := range clientOut {
		toClient = append(toClient, p)
	}
	<-collectDone

	require.NoError(t, <-errCh)

	require.Len(t, toServer, n)
	require.Len(t, toClient, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, ns.Int64(i), toServer[i].(*ps.ClientboundKeepAlive).KeepAliveID)
		assert.Equal(t, ns.Int64(100+i), toClient[i].(*ps.ClientboundKeepAlive).KeepAliveID)
	}

	// the tap saw every packet, per direction in relay order
	var tappedUp, tappedDown []int64
	for tp := range monitor {
		id := int64(tp.Packet.(*ps.ClientboundKeepAlive).KeepAliveID)
		if tp.Serverbound {
			tappedUp = append(tappedUp, id)
		} else {
			tappedDown = append(tappedDown, id)
		}
	}
	require.Len(t, tappedUp, n)
	require.Len(t, tappedDown, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, int64(i), tappedUp[i])
		assert.Equal(t, int64(100+i), tappedDown[i])
	}
}

func TestMirrorClosePropagates(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientIn := make(chan jp.Packet)
	serverOut := make(chan jp.Packet)
	serverIn := make(chan jp.Packet)
	clientOut := make(chan jp.Packet)
	monitor := make(chan proxy.TappedPacket, 100)

	mirror := &proxy.PacketMirror{
		ClientIn:  clientIn,
		ServerOut: serverOut,
		ServerIn:  serverIn,
		ClientOut: clientOut,
		Monitor:   monitor,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- mirror.Run(ctx) }()

	// closing both inputs must close both outputs and the monitor
	close(clientIn)
	close(serverIn)

	_, ok := <-serverOut
	assert.False(t, ok, "server-side output still open")
	_, ok = <-clientOut
	assert.False(t, ok, "client-side output still open")
	_, ok = <-monitor
	assert.False(t, ok, "monitor still open")

	require.NoError(t, <-errCh)
}
