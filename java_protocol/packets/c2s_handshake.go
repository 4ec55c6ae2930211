package packets

import (
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// Intents a client may declare in the handshake.
const (
	IntentStatus ns.Uint8 = 1
	IntentLogin  ns.Uint8 = 2
)

// Handshake causes the server to switch into the target state. It is the
// first and only packet of the handshake phase.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Handshake
type Handshake struct {
	Protocol  ns.VarInt
	Address   ns.String
	Port      ns.Uint16
	NextState ns.Uint8
}

func (*Handshake) ID() ns.VarInt   { return 0x00 }
func (*Handshake) State() jp.State { return jp.StateHandshake }
func (*Handshake) Bound() jp.Bound { return jp.C2S }

func (p *Handshake) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Protocol, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.Address, err = buf.ReadString(255); err != nil {
		return err
	}
	if p.Port, err = buf.ReadUint16(); err != nil {
		return err
	}
	if p.NextState, err = buf.ReadUint8(); err != nil {
		return err
	}

	if p.Protocol <= 0 {
		return fmt.Errorf("illegal protocol version %d", p.Protocol)
	}
	if p.Address == "" {
		return fmt.Errorf("empty server address")
	}
	if p.Port == 0 {
		return fmt.Errorf("illegal server port 0")
	}
	if p.NextState != IntentStatus && p.NextState != IntentLogin {
		return fmt.Errorf("illegal next state %d", p.NextState)
	}
	return nil
}

func (p *Handshake) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.Protocol); err != nil {
		return err
	}
	if err := buf.WriteString(p.Address); err != nil {
		return err
	}
	if err := buf.WriteUint16(p.Port); err != nil {
		return err
	}
	return buf.WriteUint8(p.NextState)
}

func (p *Handshake) String() string {
	return fmt.Sprintf("Handshake(protocol=%d, address=%q, port=%d, next_state=%d)",
		p.Protocol, string(p.Address), p.Port, p.NextState)
}
