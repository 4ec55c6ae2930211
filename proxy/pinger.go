package proxy

import (
	"context"
	"fmt"
	"time"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
	"github.com/go-mclib/proxy/java_protocol/packets"
	"github.com/go-mclib/proxy/logger"
)

// Pinger runs a standalone status query against the upstream server: the
// same handshake/status exchange the proxy relays, driven from the client
// side. Useful to check the upstream before pointing a real client at the
// proxy.
type Pinger struct {
	Connector *Connector

	log *logger.Logger
}

// NewPinger creates a pinger for the connector's upstream.
func NewPinger(connector *Connector) *Pinger {
	return &Pinger{Connector: connector, log: logger.New("serverpinger")}
}

// Ping performs one status request and ping exchange. It returns the
// server's status document and the ping round-trip time.
func (p *Pinger) Ping(ctx context.Context) (*packets.StatusInfo, time.Duration, error) {
	host, port, err := p.Connector.HostPort()
	if err != nil {
		return nil, 0, err
	}

	conn, err := p.Connector.Connect(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = conn.Close() }()

	session := jp.NewSession()
	session.SetProtocol(jp.ProtocolVersion)
	reader := NewPacketReader(conn, session, packets.Directory, jp.S2C)
	writer := NewPacketWriter(conn, session)

	err = writer.Write(&packets.Handshake{
		Protocol:  jp.ProtocolVersion,
		Address:   ns.String(host),
		Port:      ns.Uint16(port),
		NextState: packets.IntentStatus,
	})
	if err != nil {
		return nil, 0, err
	}
	reader.SetState(jp.StateStatus)

	if err := writer.Write(&packets.StatusRequest{}); err != nil {
		return nil, 0, err
	}
	pkt, err := reader.Next()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read status response: %w", err)
	}
	resp, err := expect[*packets.StatusResponse](pkt)
	if err != nil {
		return nil, 0, err
	}

	sent := time.Now()
	if err := writer.Write(&packets.StatusPing{Value: ns.Int64(sent.UnixMilli())}); err != nil {
		return nil, 0, err
	}
	pkt, err = reader.Next()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read pong: %w", err)
	}
	pong, err := expect[*packets.StatusPong](pkt)
	if err != nil {
		return nil, 0, err
	}
	if pong.Value != ns.Int64(sent.UnixMilli()) {
		return nil, 0, fmt.Errorf("pong value %d does not echo ping %d", pong.Value, sent.UnixMilli())
	}

	rtt := time.Since(sent)
	p.log.Debugf("pinged %s:%d in %s", host, port, rtt)
	return &resp.Status, rtt, nil
}
