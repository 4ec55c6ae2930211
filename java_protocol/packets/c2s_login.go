package packets

import (
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// LoginStart begins the login sequence with the player's claimed name.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Start
type LoginStart struct {
	Name ns.String
}

func (*LoginStart) ID() ns.VarInt   { return 0x00 }
func (*LoginStart) State() jp.State { return jp.StateLogin }
func (*LoginStart) Bound() jp.Bound { return jp.C2S }

func (p *LoginStart) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Name, err = buf.ReadString(16); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("empty player name")
	}
	return nil
}

func (p *LoginStart) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Name)
}

func (p *LoginStart) String() string {
	return fmt.Sprintf("LoginStart(name=%q)", string(p.Name))
}
