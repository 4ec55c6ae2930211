package packets

import (
	"encoding/json"
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// StatusPlayerSample is one entry of the player sample in a status response.
type StatusPlayerSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// StatusInfo is the JSON document carried by a status response. Field order
// matches the canonical rendering.
type StatusInfo struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int                  `json:"max"`
		Online int                  `json:"online"`
		Sample []StatusPlayerSample `json:"sample"`
	} `json:"players"`
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
	Favicon string `json:"favicon,omitempty"`
}

// StatusResponse is the server list entry, a JSON string payload parsed into
// structured fields on receipt and re-rendered compactly on emit.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Response
type StatusResponse struct {
	Status StatusInfo
}

func (*StatusResponse) ID() ns.VarInt   { return 0x00 }
func (*StatusResponse) State() jp.State { return jp.StateStatus }
func (*StatusResponse) Bound() jp.Bound { return jp.S2C }

func (p *StatusResponse) Read(buf *ns.PacketBuffer) error {
	raw, err := buf.ReadString(0)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), &p.Status); err != nil {
		return fmt.Errorf("malformed status JSON: %w", err)
	}

	if p.Status.Players.Max < 0 {
		return fmt.Errorf("negative max player count %d", p.Status.Players.Max)
	}
	if p.Status.Players.Online < 0 {
		return fmt.Errorf("negative online player count %d", p.Status.Players.Online)
	}
	return nil
}

func (p *StatusResponse) Write(buf *ns.PacketBuffer) error {
	status := p.Status
	if status.Players.Sample == nil {
		status.Players.Sample = []StatusPlayerSample{}
	}
	raw, err := json.Marshal(&status)
	if err != nil {
		return err
	}
	return buf.WriteString(ns.String(raw))
}

func (p *StatusResponse) String() string {
	return fmt.Sprintf("Response(name=%q, protocol=%d, players=%d/%d, description=%q)",
		p.Status.Version.Name, p.Status.Version.Protocol,
		p.Status.Players.Online, p.Status.Players.Max,
		p.Status.Description.Text)
}

// StatusPong echoes the value of the matching ping.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Pong_Response_(status)
type StatusPong struct {
	Value ns.Int64
}

func (*StatusPong) ID() ns.VarInt   { return 0x01 }
func (*StatusPong) State() jp.State { return jp.StateStatus }
func (*StatusPong) Bound() jp.Bound { return jp.S2C }

func (p *StatusPong) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Value, err = buf.ReadInt64()
	return err
}

func (p *StatusPong) Write(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.Value)
}

func (p *StatusPong) String() string {
	return fmt.Sprintf("Pong(value=%d)", p.Value)
}
