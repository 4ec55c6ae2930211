package packets

import (
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// LoginDisconnect tells the client why the server is closing the connection
// during login. The reason is a JSON text component, kept verbatim.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Disconnect_(login)
type LoginDisconnect struct {
	Reason ns.String
}

func (*LoginDisconnect) ID() ns.VarInt   { return 0x00 }
func (*LoginDisconnect) State() jp.State { return jp.StateLogin }
func (*LoginDisconnect) Bound() jp.Bound { return jp.S2C }

func (p *LoginDisconnect) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Reason, err = buf.ReadString(0)
	return err
}

func (p *LoginDisconnect) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Reason)
}

func (p *LoginDisconnect) String() string {
	return fmt.Sprintf("Disconnect(reason=%s)", string(p.Reason))
}

// EncryptionRequest starts the online-mode key exchange. The dissector cannot
// follow an encrypted session, so receiving one terminates the relay.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Request
type EncryptionRequest struct {
	ServerID    ns.String
	PublicKey   ns.PrefixedByteArray
	VerifyToken ns.PrefixedByteArray
}

func (*EncryptionRequest) ID() ns.VarInt   { return 0x01 }
func (*EncryptionRequest) State() jp.State { return jp.StateLogin }
func (*EncryptionRequest) Bound() jp.Bound { return jp.S2C }

func (p *EncryptionRequest) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ServerID, err = buf.ReadString(20); err != nil {
		return err
	}
	if p.PublicKey, err = buf.ReadPrefixedBytes(); err != nil {
		return err
	}
	if p.VerifyToken, err = buf.ReadPrefixedBytes(); err != nil {
		return err
	}
	return nil
}

func (p *EncryptionRequest) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.ServerID); err != nil {
		return err
	}
	if err := buf.WritePrefixedBytes(p.PublicKey); err != nil {
		return err
	}
	return buf.WritePrefixedBytes(p.VerifyToken)
}

func (p *EncryptionRequest) String() string {
	return fmt.Sprintf("EncryptionRequest(server_id=%q, public_key=%d bytes)",
		string(p.ServerID), len(p.PublicKey))
}

// LoginSuccess completes login and switches both peers to the play state.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Success
type LoginSuccess struct {
	UUID ns.UUID
	Name ns.String
}

func (*LoginSuccess) ID() ns.VarInt   { return 0x02 }
func (*LoginSuccess) State() jp.State { return jp.StateLogin }
func (*LoginSuccess) Bound() jp.Bound { return jp.S2C }

func (p *LoginSuccess) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.UUID, err = buf.ReadUUID(); err != nil {
		return err
	}
	if p.Name, err = buf.ReadString(16); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("empty player name")
	}
	return nil
}

func (p *LoginSuccess) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteUUID(p.UUID); err != nil {
		return err
	}
	return buf.WriteString(p.Name)
}

func (p *LoginSuccess) String() string {
	return fmt.Sprintf("LoginSuccess(uuid=%s, name=%q)", p.UUID, string(p.Name))
}

// SetCompression announces the compression threshold for all subsequent
// frames. The proxy absorbs it: the threshold becomes connection-scoped
// state applied by the codecs of both sides, and the packet itself is never
// forwarded to the client.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Set_Compression
type SetCompression struct {
	Threshold ns.VarInt
}

func (*SetCompression) ID() ns.VarInt   { return 0x03 }
func (*SetCompression) State() jp.State { return jp.StateLogin }
func (*SetCompression) Bound() jp.Bound { return jp.S2C }

func (p *SetCompression) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Threshold, err = buf.ReadVarInt()
	return err
}

func (p *SetCompression) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.Threshold)
}

func (p *SetCompression) String() string {
	return fmt.Sprintf("SetCompression(threshold=%d)", p.Threshold)
}

// LoginPluginRequest lets the server query modded clients during login.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Plugin_Request
type LoginPluginRequest struct {
	MessageID ns.VarInt
	Channel   ns.Identifier
	Data      ns.ByteArray
}

func (*LoginPluginRequest) ID() ns.VarInt   { return 0x04 }
func (*LoginPluginRequest) State() jp.State { return jp.StateLogin }
func (*LoginPluginRequest) Bound() jp.Bound { return jp.S2C }

func (p *LoginPluginRequest) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.MessageID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return err
	}
	p.Data, err = buf.ReadRest()
	return err
}

func (p *LoginPluginRequest) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.MessageID); err != nil {
		return err
	}
	if err := buf.WriteIdentifier(p.Channel); err != nil {
		return err
	}
	_, err := buf.Write(p.Data)
	return err
}

func (p *LoginPluginRequest) String() string {
	return fmt.Sprintf("LoginPluginRequest(message_id=%d, channel=%q, %d bytes)",
		p.MessageID, string(p.Channel), len(p.Data))
}
