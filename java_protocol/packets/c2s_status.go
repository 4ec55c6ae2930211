package packets

import (
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// StatusRequest asks for the server list entry. It has no fields.
//
// > The status can only be requested once immediately after the handshake,
// before any ping. The server won't respond otherwise.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Request
type StatusRequest struct{}

func (*StatusRequest) ID() ns.VarInt   { return 0x00 }
func (*StatusRequest) State() jp.State { return jp.StateStatus }
func (*StatusRequest) Bound() jp.Bound { return jp.C2S }

func (p *StatusRequest) Read(buf *ns.PacketBuffer) error  { return nil }
func (p *StatusRequest) Write(buf *ns.PacketBuffer) error { return nil }

func (p *StatusRequest) String() string { return "Request()" }

// StatusPing carries an arbitrary number the server must echo back.
// Vanilla clients send the current timestamp in milliseconds.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Ping_Request_(status)
type StatusPing struct {
	Value ns.Int64
}

func (*StatusPing) ID() ns.VarInt   { return 0x01 }
func (*StatusPing) State() jp.State { return jp.StateStatus }
func (*StatusPing) Bound() jp.Bound { return jp.C2S }

func (p *StatusPing) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Value, err = buf.ReadInt64()
	return err
}

func (p *StatusPing) Write(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.Value)
}

func (p *StatusPing) String() string {
	return fmt.Sprintf("Ping(value=%d)", p.Value)
}
