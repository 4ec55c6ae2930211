package packets

import (
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// Serverbound play packets, protocol 757 IDs. The set covers what a vanilla
// client sends while reaching the steady relay state; anything else arrives
// as a RawPacket.

// TeleportConfirm acknowledges a clientbound position synchronization.
type TeleportConfirm struct {
	TeleportID ns.VarInt
}

func (*TeleportConfirm) ID() ns.VarInt   { return 0x00 }
func (*TeleportConfirm) State() jp.State { return jp.StatePlay }
func (*TeleportConfirm) Bound() jp.Bound { return jp.C2S }

func (p *TeleportConfirm) Read(buf *ns.PacketBuffer) error {
	var err error
	p.TeleportID, err = buf.ReadVarInt()
	return err
}

func (p *TeleportConfirm) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.TeleportID)
}

func (p *TeleportConfirm) String() string {
	return fmt.Sprintf("TeleportConfirm(teleport_id=%d)", p.TeleportID)
}

// ClientSettings reports the client's locale, render distance, and chat and
// skin preferences right after login.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Client_Information_(play)
type ClientSettings struct {
	Locale              ns.String
	ViewDistance        ns.Int8
	ChatMode            ns.VarInt
	ChatColors          ns.Boolean
	DisplayedSkinParts  ns.Uint8
	MainHand            ns.VarInt
	EnableTextFiltering ns.Boolean
	AllowServerListings ns.Boolean
}

func (*ClientSettings) ID() ns.VarInt   { return 0x05 }
func (*ClientSettings) State() jp.State { return jp.StatePlay }
func (*ClientSettings) Bound() jp.Bound { return jp.C2S }

func (p *ClientSettings) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Locale, err = buf.ReadString(16); err != nil {
		return err
	}
	if p.ViewDistance, err = buf.ReadInt8(); err != nil {
		return err
	}
	if p.ChatMode, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ChatColors, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.DisplayedSkinParts, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.MainHand, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.EnableTextFiltering, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.AllowServerListings, err = buf.ReadBool(); err != nil {
		return err
	}

	if p.Locale == "" {
		return fmt.Errorf("empty locale")
	}
	if p.ViewDistance < 2 || p.ViewDistance > 32 {
		return fmt.Errorf("view distance %d out of range", p.ViewDistance)
	}
	if p.ChatMode < 0 || p.ChatMode > 2 {
		return fmt.Errorf("illegal chat mode %d", p.ChatMode)
	}
	if p.DisplayedSkinParts&^0x7F != 0 {
		return fmt.Errorf("illegal skin part mask %#02x", p.DisplayedSkinParts)
	}
	if p.MainHand != 0 && p.MainHand != 1 {
		return fmt.Errorf("illegal main hand %d", p.MainHand)
	}
	return nil
}

func (p *ClientSettings) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Locale); err != nil {
		return err
	}
	if err := buf.WriteInt8(p.ViewDistance); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ChatMode); err != nil {
		return err
	}
	if err := buf.WriteBool(p.ChatColors); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.DisplayedSkinParts); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.MainHand); err != nil {
		return err
	}
	if err := buf.WriteBool(p.EnableTextFiltering); err != nil {
		return err
	}
	return buf.WriteBool(p.AllowServerListings)
}

func (p *ClientSettings) String() string {
	return fmt.Sprintf("ClientSettings(locale=%q, view_distance=%d, chat_mode=%d, skin_parts=%#02x, main_hand=%d)",
		string(p.Locale), p.ViewDistance, p.ChatMode, p.DisplayedSkinParts, p.MainHand)
}

// ServerboundPluginMessage carries a mod/vanilla side channel, e.g.
// minecraft:brand.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Serverbound_Plugin_Message_(play)
type ServerboundPluginMessage struct {
	Channel ns.Identifier
	Data    ns.ByteArray
}

func (*ServerboundPluginMessage) ID() ns.VarInt   { return 0x0A }
func (*ServerboundPluginMessage) State() jp.State { return jp.StatePlay }
func (*ServerboundPluginMessage) Bound() jp.Bound { return jp.C2S }

func (p *ServerboundPluginMessage) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return err
	}
	p.Data, err = buf.ReadRest()
	return err
}

func (p *ServerboundPluginMessage) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteIdentifier(p.Channel); err != nil {
		return err
	}
	_, err := buf.Write(p.Data)
	return err
}

func (p *ServerboundPluginMessage) String() string {
	return fmt.Sprintf("PluginMessage(channel=%q, %d bytes)", string(p.Channel), len(p.Data))
}

// ServerboundKeepAlive echoes the server's keep-alive ID.
type ServerboundKeepAlive struct {
	KeepAliveID ns.Int64
}

func (*ServerboundKeepAlive) ID() ns.VarInt   { return 0x0F }
func (*ServerboundKeepAlive) State() jp.State { return jp.StatePlay }
func (*ServerboundKeepAlive) Bound() jp.Bound { return jp.C2S }

func (p *ServerboundKeepAlive) Read(buf *ns.PacketBuffer) error {
	var err error
	p.KeepAliveID, err = buf.ReadInt64()
	return err
}

func (p *ServerboundKeepAlive) Write(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.KeepAliveID)
}

func (p *ServerboundKeepAlive) String() string {
	return fmt.Sprintf("KeepAlive(id=%d)", p.KeepAliveID)
}

// PlayerPosition updates the player's feet position.
type PlayerPosition struct {
	X        ns.Float64
	FeetY    ns.Float64
	Z        ns.Float64
	OnGround ns.Boolean
}

func (*PlayerPosition) ID() ns.VarInt   { return 0x11 }
func (*PlayerPosition) State() jp.State { return jp.StatePlay }
func (*PlayerPosition) Bound() jp.Bound { return jp.C2S }

func (p *PlayerPosition) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.FeetY, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return err
	}
	p.OnGround, err = buf.ReadBool()
	return err
}

func (p *PlayerPosition) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.FeetY); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Z); err != nil {
		return err
	}
	return buf.WriteBool(p.OnGround)
}

func (p *PlayerPosition) String() string {
	return fmt.Sprintf("PlayerPosition(x=%.2f, y=%.2f, z=%.2f, on_ground=%t)",
		p.X, p.FeetY, p.Z, bool(p.OnGround))
}

// PlayerPositionAndRotation updates position and look direction together.
type PlayerPositionAndRotation struct {
	X        ns.Float64
	FeetY    ns.Float64
	Z        ns.Float64
	Yaw      ns.Float32
	Pitch    ns.Float32
	OnGround ns.Boolean
}

func (*PlayerPositionAndRotation) ID() ns.VarInt   { return 0x12 }
func (*PlayerPositionAndRotation) State() jp.State { return jp.StatePlay }
func (*PlayerPositionAndRotation) Bound() jp.Bound { return jp.C2S }

func (p *PlayerPositionAndRotation) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.FeetY, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Yaw, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Pitch, err = buf.ReadFloat32(); err != nil {
		return err
	}
	p.OnGround, err = buf.ReadBool()
	return err
}

func (p *PlayerPositionAndRotation) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.FeetY); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Z); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Yaw); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Pitch); err != nil {
		return err
	}
	return buf.WriteBool(p.OnGround)
}

func (p *PlayerPositionAndRotation) String() string {
	return fmt.Sprintf("PlayerPositionAndRotation(x=%.2f, y=%.2f, z=%.2f, yaw=%.1f, pitch=%.1f)",
		p.X, p.FeetY, p.Z, p.Yaw, p.Pitch)
}
