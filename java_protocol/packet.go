// The java_protocol package contains the framing, dispatch, and connection
// state shared by both sides of a dissected Java Edition connection.
//
// > The Minecraft server accepts connections from TCP clients and communicates
// with them using packets. The meaning of a packet depends both on its packet
// ID and the current state of the connection (each state has its own packet ID
// counter, so packets in different states can have the same packet ID).
//
// See https://minecraft.wiki/w/Java_Edition_protocol/Packets
package java_protocol

import (
	"encoding/hex"
	"fmt"

	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// ProtocolVersion is the only protocol revision this dissector speaks
// (Java Edition 1.18 / 1.18.1).
const ProtocolVersion = 757

// Packet is the interface that all typed packet implementations satisfy.
// Each packet knows its ID, protocol state, and direction.
type Packet interface {
	fmt.Stringer

	// ID returns the packet ID for this packet type.
	ID() ns.VarInt
	// State returns the protocol state this packet belongs to.
	State() State
	// Bound returns the direction of this packet (C2S or S2C).
	Bound() Bound
	// Read deserializes the packet payload from the buffer.
	Read(buf *ns.PacketBuffer) error
	// Write serializes the packet payload to the buffer.
	Write(buf *ns.PacketBuffer) error
}

// State is the phase that the connection is in. It is never sent over the
// network; both peers transition in lockstep based on the packets exchanged.
type State uint8

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "handshake"
	case StateStatus:
		return "status"
	case StateLogin:
		return "login"
	case StatePlay:
		return "play"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Bound is the direction that a packet is going.
//
// Serverbound: Client -> Server (C2S)
//
// Clientbound: Server -> Client (S2C)
type Bound uint8

const (
	// Client -> Server (C2S, serverbound)
	C2S Bound = iota
	// Server -> Client (S2C, clientbound)
	S2C
)

func (b Bound) String() string {
	if b == C2S {
		return "serverbound"
	}
	return "clientbound"
}

// RawPacket carries an unrecognized packet's payload verbatim so it can be
// relayed without interpretation. Only legal in the Play state.
type RawPacket struct {
	PacketID    ns.VarInt
	PacketState State
	PacketBound Bound
	Data        ns.ByteArray
}

func (p *RawPacket) ID() ns.VarInt { return p.PacketID }
func (p *RawPacket) State() State  { return p.PacketState }
func (p *RawPacket) Bound() Bound  { return p.PacketBound }

func (p *RawPacket) Read(buf *ns.PacketBuffer) error {
	data, err := buf.ReadRest()
	if err != nil {
		return err
	}
	p.Data = data
	return nil
}

func (p *RawPacket) Write(buf *ns.PacketBuffer) error {
	_, err := buf.Write(p.Data)
	return err
}

func (p *RawPacket) String() string {
	return fmt.Sprintf("Raw(id=%#02x, len=%d, <%s>)",
		int32(p.PacketID), len(p.Data), hexSnippet(p.Data, 16))
}

// hexSnippet returns a hex string of at most max bytes of data.
func hexSnippet(data []byte, max int) string {
	if max > 0 && len(data) > max {
		return hex.EncodeToString(data[:max]) + "..."
	}
	return hex.EncodeToString(data)
}
