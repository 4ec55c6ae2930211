package proxy

import (
	"context"
	"net"

	"golang.org/x/sync/errgroup"

	jp "github.com/go-mclib/proxy/java_protocol"
)

// monitorBuffer is the monitor tap's capacity. When the monitor falls this
// far behind, the relay blocks instead of dropping packets.
const monitorBuffer = 100

// RunSession runs one dissected client session: both handlers, the mirror,
// and the monitor inside a single supervision scope. The first failure
// cancels the siblings; both connections are closed on every exit path.
func RunSession(ctx context.Context, clientConn, serverConn net.Conn) error {
	defer func() { _ = clientConn.Close() }()
	defer func() { _ = serverConn.Close() }()

	session := jp.NewSession()

	// rendezvous channels between handlers and mirror keep the phase
	// prologue in lockstep; only the monitor tap is buffered
	up1 := make(chan jp.Packet)
	up2 := make(chan jp.Packet)
	dn1 := make(chan jp.Packet)
	dn2 := make(chan jp.Packet)
	mon := make(chan TappedPacket, monitorBuffer)

	client := NewClientHandler(clientConn, session, up1, dn1)
	server := NewServerHandler(serverConn, session, dn2, up2)
	mirror := &PacketMirror{
		ClientIn:  up1,
		ServerOut: up2,
		ServerIn:  dn2,
		ClientOut: dn1,
		Monitor:   mon,
	}
	monitor := NewPacketMonitor(mon)

	g, gctx := errgroup.WithContext(ctx)

	// cancellation must unblock stream reads and writes
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-gctx.Done():
			_ = clientConn.Close()
			_ = serverConn.Close()
		case <-done:
		}
	}()

	g.Go(func() error { return client.Run(gctx) })
	g.Go(func() error { return server.Run(gctx) })
	g.Go(func() error { return mirror.Run(gctx) })
	g.Go(func() error { return monitor.Run(gctx) })

	return g.Wait()
}
