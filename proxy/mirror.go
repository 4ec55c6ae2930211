package proxy

import (
	"context"

	"golang.org/x/sync/errgroup"

	jp "github.com/go-mclib/proxy/java_protocol"
)

// PacketMirror couples the two handlers: it drains each handler's "in"
// channel into the other handler's "out" channel and tees every packet into
// the monitor.
//
// When one copy task's input closes, it closes its output so the peer
// handler sees EOF and the whole session winds down. The monitor channel is
// bounded; a full monitor blocks the relay rather than dropping packets.
type PacketMirror struct {
	ClientIn  <-chan jp.Packet // serverbound, from ClientHandler
	ServerOut chan<- jp.Packet // serverbound, to ServerHandler
	ServerIn  <-chan jp.Packet // clientbound, from ServerHandler
	ClientOut chan<- jp.Packet // clientbound, to ClientHandler
	Monitor   chan<- TappedPacket
}

// Run copies both directions until their inputs close, then closes the
// monitor channel.
func (m *PacketMirror) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.copy(ctx, m.ServerIn, m.ClientOut, false) })
	g.Go(func() error { return m.copy(ctx, m.ClientIn, m.ServerOut, true) })

	err := g.Wait()
	close(m.Monitor)
	return err
}

func (m *PacketMirror) copy(ctx context.Context, in <-chan jp.Packet, out chan<- jp.Packet, serverbound bool) error {
	defer close(out)

	for {
		p, ok, err := recv(ctx, in)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := send(ctx, out, p); err != nil {
			return err
		}
		if err := send(ctx, m.Monitor, TappedPacket{Serverbound: serverbound, Packet: p}); err != nil {
			return err
		}
	}
}
