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

var errServerDisconnected = errors.New("server disconnected")

// ServerHandler owns the server-facing byte stream: the mirror image of
// ClientHandler. It additionally absorbs SetCompression: the threshold
// becomes session state and is never forwarded, because the proxy itself
// re-frames everything it relays.
type ServerHandler struct {
	conn    net.Conn
	session *jp.Session
	reader  *PacketReader
	writer  *PacketWriter

	down     chan<- jp.Packet // clientbound packets toward the mirror
	up       <-chan jp.Packet // serverbound packets from the mirror
	downOnce sync.Once

	log *logger.Logger
}

// NewServerHandler wires a handler over the upstream server connection.
func NewServerHandler(conn net.Conn, session *jp.Session, down chan<- jp.Packet, up <-chan jp.Packet) *ServerHandler {
	return &ServerHandler{
		conn:    conn,
		session: session,
		reader:  NewPacketReader(conn, session, packets.Directory, jp.S2C),
		writer:  NewPacketWriter(conn, session),
		down:    down,
		up:      up,
		log:     logger.New("serverhandler"),
	}
}

// closeDown closes the clientbound channel exactly once.
func (h *ServerHandler) closeDown() {
	h.downOnce.Do(func() { close(h.down) })
}

// Run drives the server side through its phases.
func (h *ServerHandler) Run(ctx context.Context) error {
	defer h.closeDown()

	state := h.handshake
	for state != nil {
		next, err := state(ctx)
		if err != nil {
			return err
		}
		state = next
	}
	return expectEOF(h.conn)
}

// next reads one packet from the server.
func (h *ServerHandler) next() (jp.Packet, error) {
	p, err := h.reader.Next()
	if err == io.EOF {
		return nil, errServerDisconnected
	}
	return p, err
}

// recvUp takes the next serverbound packet handed over by the mirror.
func (h *ServerHandler) recvUp(ctx context.Context) (jp.Packet, error) {
	p, ok, err := recv(ctx, h.up)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("client relay ended before required packet")
	}
	return p, nil
}

func (h *ServerHandler) handshake(ctx context.Context) (stateFn, error) {
	p, err := h.recvUp(ctx)
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

	if err := h.writer.Write(hs); err != nil {
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

func (h *ServerHandler) status(ctx context.Context) (stateFn, error) {
	p, err := h.recvUp(ctx)
	if err != nil {
		return nil, err
	}
	req, err := expect[*packets.StatusRequest](p)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Write(req); err != nil {
		return nil, err
	}

	p, err = h.next()
	if err != nil {
		return nil, err
	}
	resp, err := expect[*packets.StatusResponse](p)
	if err != nil {
		return nil, err
	}
	if err := send(ctx, h.down, jp.Packet(resp)); err != nil {
		return nil, err
	}

	p, err = h.recvUp(ctx)
	if err != nil {
		return nil, err
	}
	ping, err := expect[*packets.StatusPing](p)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Write(ping); err != nil {
		return nil, err
	}

	p, err = h.next()
	if err != nil {
		return nil, err
	}
	pong, err := expect[*packets.StatusPong](p)
	if err != nil {
		return nil, err
	}
	if err := send(ctx, h.down, jp.Packet(pong)); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *ServerHandler) login(ctx context.Context) (stateFn, error) {
	p, err := h.recvUp(ctx)
	if err != nil {
		return nil, err
	}
	start, err := expect[*packets.LoginStart](p)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Write(start); err != nil {
		return nil, err
	}

	for {
		p, err = h.next()
		if err != nil {
			return nil, err
		}

		switch pkt := p.(type) {
		case *packets.SetCompression:
			// absorbed: the threshold becomes connection state for both
			// codecs; the packet itself is never forwarded
			h.session.SetThreshold(int32(pkt.Threshold))
			h.log.Debugf("compression enabled, threshold %d", pkt.Threshold)
			continue

		case *packets.EncryptionRequest:
			return nil, ErrEncryptionUnsupported

		case *packets.LoginDisconnect:
			return nil, fmt.Errorf("server refused login: %s", string(pkt.Reason))

		case *packets.LoginSuccess:
			if err := send(ctx, h.down, jp.Packet(pkt)); err != nil {
				return nil, err
			}
			h.reader.SetState(jp.StatePlay)
			return h.play, nil

		default:
			return nil, fmt.Errorf("%w: got %s during login", ErrUnexpectedPacket, p)
		}
	}
}

func (h *ServerHandler) play(ctx context.Context) (stateFn, error) {
	p, err := h.next()
	if err != nil {
		return nil, err
	}
	join, err := expect[*packets.JoinGame](p)
	if err != nil {
		return nil, err
	}
	if err := send(ctx, h.down, jp.Packet(join)); err != nil {
		return nil, err
	}

	p, err = h.recvUp(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := expect[*packets.ClientSettings](p)
	if err != nil {
		return nil, err
	}
	if err := h.writer.Write(settings); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.relayUpstream(ctx) })
	g.Go(func() error { return h.relayDownstream(ctx) })
	return nil, g.Wait()
}

// relayUpstream writes serverbound packets from the mirror to the server
// until the mirror closes the channel.
func (h *ServerHandler) relayUpstream(ctx context.Context) error {
	for {
		p, ok, err := recv(ctx, h.up)
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

// relayDownstream copies clientbound frames from the wire into the mirror
// until the server half-closes.
func (h *ServerHandler) relayDownstream(ctx context.Context) error {
	for {
		p, err := h.reader.Next()
		if err == io.EOF {
			h.closeDown()
			return nil
		}
		if err != nil {
			return err
		}
		if err := send(ctx, h.down, p); err != nil {
			return err
		}
	}
}
