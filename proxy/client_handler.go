package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	jp "github.com/go-mclib/proxy/java_protocol"
	"github.com/go-mclib/proxy/java_protocol/packets"
	"github.com/go-mclib/proxy/logger"
)

var errClientDisconnected = errors.New("client disconnected")

// stateFn is one phase of a handler's trampoline: it runs the phase and
// returns the next phase, or nil when the handler should await EOF and
// terminate.
type stateFn func(ctx context.Context) (stateFn, error)

// ClientHandler owns the client-facing byte stream. It reads serverbound
// packets off the wire into the mirror and writes clientbound packets
// arriving from the mirror back to the client.
type ClientHandler struct {
	conn    net.Conn
	session *jp.Session
	reader  *PacketReader
	writer  *PacketWriter

	up     chan<- jp.Packet // serverbound packets toward the mirror
	down   <-chan jp.Packet // clientbound packets from the mirror
	upOnce sync.Once

	log *logger.Logger
}

// NewClientHandler wires a handler over the accepted client connection.
func NewClientHandler(conn net.Conn, session *jp.Session, up chan<- jp.Packet, down <-chan jp.Packet) *ClientHandler {
	return &ClientHandler{
		conn:    conn,
		session: session,
		reader:  NewPacketReader(conn, session, packets.Directory, jp.C2S),
		writer:  NewPacketWriter(conn, session),
		up:      up,
		down:    down,
		log:     logger.New("clienthandler"),
	}
}

// closeUp closes the serverbound channel exactly once, signalling EOF to the
// mirror and, transitively, to the server handler.
func (h *ClientHandler) closeUp() {
	h.upOnce.Do(func() { close(h.up) })
}

// Run drives the client side through its phases and terminates with the
// half-close handshake.
func (h *ClientHandler) Run(ctx context.Context) error {
	defer h.closeUp()

	state := h.handshake
	for state != nil {
		next, err := state(ctx)
		if err != nil {
			return err
		}
		state = next
	}
	return h.expectEOF()
}

// next reads one packet from the client, mapping a clean EOF before a
// required packet to a session-level disconnect error.
func (h *ClientHandler) next() (jp.Packet, error) {
	p, err := h.reader.Next()
	if err == io.EOF {
		return nil, errClientDisconnected
	}
	return p, err
}

// recvDown takes the next clientbound packet handed over by the mirror.
func (h *ClientHandler) recvDown(ctx context.Context) (jp.Packet, error) {
	p, ok, err := recv(ctx, h.down)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("server relay ended before required packet")
	}
	return p, nil
}

func (h *ClientHandler) handshake(ctx context.Context) (stateFn, error) {
	p, err := h.next()
	if err != nil {
		return nil, err
	}
	hs, err := expect[*packets.Handshake](p)
	if err != nil {
		return nil, err
	}
	if hs.Protocol != jp.ProtocolVersion {
		return nil, fmt.Errorf("unsupported protocol version %d (want %d)", hs.Protocol, jp.ProtocolVersion)
	}
	h.session.SetProtocol(int32(hs.Protocol))

	if err := send(ctx, h.up, jp.Packet(hs)); err != nil {
		return nil, err
	}

	switch hs.NextState {
	case packets.IntentStatus:
		h.reader.SetState(jp.StateStatus)
		return h.status, nil
	default:
		h.reader.SetState(jp.StateLogin)
		return h.login, nil
	}
}

func (h *ClientHandler) status(ctx context.Context) (stateFn, error) {
	p, err := h.next()
	if err != nil {
		return nil, err
	}
	req, err := expect[*packets.StatusRequest](p)
	if err != nil {
		return nil, err
	}
	if err := send(ctx, h.up, jp.Packet(req)); err != nil {
		return nil, err
	}

	p, err = h.recvDown(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := expect[*packets.StatusResponse](p)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Write(resp); err != nil {
		return nil, err
	}

	p, err = h.next()
	if err != nil {
		return nil, err
	}
	ping, err := expect[*packets.StatusPing](p)
	if err != nil {
		return nil, err
	}
	if err := send(ctx, h.up, jp.Packet(ping)); err != nil {
		return nil, err
	}

	p, err = h.recvDown(ctx)
	if err != nil {
		return nil, err
	}
	pong, err := expect[*packets.StatusPong](p)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Write(pong); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *ClientHandler) login(ctx context.Context) (stateFn, error) {
	p, err := h.next()
	if err != nil {
		return nil, err
	}
	start, err := expect[*packets.LoginStart](p)
	if err != nil {
		return nil, err
	}
	if err := send(ctx, h.up, jp.Packet(start)); err != nil {
		return nil, err
	}

	p, err = h.recvDown(ctx)
	if err != nil {
		return nil, err
	}
	success, err := expect[*packets.LoginSuccess](p)
	if err != nil {
		return nil, err
	}
	// LoginSuccess is written with whatever compression the server handler
	// absorbed during login, so the client sees a consistent stream.
	if err := h.writer.Write(success); err != nil {
		return nil, err
	}
	h.log.Debugf("login complete for %q", string(success.Name))

	h.reader.SetState(jp.StatePlay)
	return h.play, nil
}

func (h *ClientHandler) play(ctx context.Context) (stateFn, error) {
	p, err := h.recvDown(ctx)
	if err != nil {
		return nil, err
	}
	join, err := expect[*packets.JoinGame](p)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Write(join); err != nil {
		return nil, err
	}

	p, err = h.next()
	if err != nil {
		return nil, err
	}
	settings, err := expect[*packets.ClientSettings](p)
	if err != nil {
		return nil, err
	}
	if err := send(ctx, h.up, jp.Packet(settings)); err != nil {
		return nil, err
	}

	// steady state: both directions relay concurrently
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.relayUpstream(ctx) })
	g.Go(func() error { return h.relayDownstream(ctx) })
	return nil, g.Wait()
}

// relayUpstream copies serverbound frames from the wire into the mirror
// until the client half-closes.
func (h *ClientHandler) relayUpstream(ctx context.Context) error {
	for {
		p, err := h.reader.Next()
		if err == io.EOF {
			h.closeUp()
			return nil
		}
		if err != nil {
			return err
		}
		if err := send(ctx, h.up, p); err != nil {
			return err
		}
	}
}

// relayDownstream writes clientbound packets from the mirror to the wire
// until the mirror closes the channel.
func (h *ClientHandler) relayDownstream(ctx context.Context) error {
	for {
		p, ok, err := recv(ctx, h.down)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := h.writer.Write(p); err != nil {
			return err
		}
	}
}

// expectEOF finishes the half-close handshake: signal EOF on the write side,
// then require that the peer closes too without sending anything further.
func (h *ClientHandler) expectEOF() error {
	return expectEOF(h.conn)
}

// expectEOF is shared by both handlers.
func expectEOF(conn net.Conn) error {
	type closeWriter interface{ CloseWrite() error }
	if cw, ok := conn.(closeWriter); ok {
		if err := cw.CloseWrite(); err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
	}

	var b [1]byte
	n, err := conn.Read(b[:])
	if n > 0 {
		return fmt.Errorf("unexpected data while waiting for EOF")
	}
	if err == io.EOF || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
