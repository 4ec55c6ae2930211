package packets

import (
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// Clientbound play packets, protocol 757 IDs.
//
// The bulk world-data packets (chunk data, light, recipes, tags, metadata,
// attributes, command trees) are parsed up to their leading identification
// fields; the remainder is kept as an opaque tail that re-renders
// byte-exactly. That is all the relay needs, and it keeps the catalog honest
// about what it actually interprets.

// SpawnEntity announces a new entity with its position, rotation, and motion.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Spawn_Entity
type SpawnEntity struct {
	EntityID   ns.VarInt
	ObjectUUID ns.UUID
	Type       ns.VarInt
	X          ns.Float64
	Y          ns.Float64
	Z          ns.Float64
	Pitch      ns.Angle
	Yaw        ns.Angle
	Data       ns.Int32
	VelocityX  ns.Velocity
	VelocityY  ns.Velocity
	VelocityZ  ns.Velocity
}

func (*SpawnEntity) ID() ns.VarInt   { return 0x00 }
func (*SpawnEntity) State() jp.State { return jp.StatePlay }
func (*SpawnEntity) Bound() jp.Bound { return jp.S2C }

func (p *SpawnEntity) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ObjectUUID, err = buf.ReadUUID(); err != nil {
		return err
	}
	if p.Type, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Y, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Pitch, err = buf.ReadAngle(); err != nil {
		return err
	}
	if p.Yaw, err = buf.ReadAngle(); err != nil {
		return err
	}
	if p.Data, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.VelocityX, err = buf.ReadVelocity(); err != nil {
		return err
	}
	if p.VelocityY, err = buf.ReadVelocity(); err != nil {
		return err
	}
	if p.VelocityZ, err = buf.ReadVelocity(); err != nil {
		return err
	}

	if p.EntityID < 0 {
		return fmt.Errorf("negative entity ID %d", p.EntityID)
	}
	if p.Type < 0 {
		return fmt.Errorf("negative entity type %d", p.Type)
	}
	return nil
}

func (p *SpawnEntity) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.EntityID); err != nil {
		return err
	}
	if err := buf.WriteUUID(p.ObjectUUID); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.Type); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Y); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Z); err != nil {
		return err
	}
	if err := buf.WriteAngle(p.Pitch); err != nil {
		return err
	}
	if err := buf.WriteAngle(p.Yaw); err != nil {
		return err
	}
	if err := buf.WriteInt32(p.Data); err != nil {
		return err
	}
	if err := buf.WriteVelocity(p.VelocityX); err != nil {
		return err
	}
	if err := buf.WriteVelocity(p.VelocityY); err != nil {
		return err
	}
	return buf.WriteVelocity(p.VelocityZ)
}

func (p *SpawnEntity) String() string {
	return fmt.Sprintf("SpawnEntity(entity_id=%d, type=%d, x=%.2f, y=%.2f, z=%.2f)",
		p.EntityID, p.Type, p.X, p.Y, p.Z)
}

// ChangeDifficulty reports the world difficulty.
type ChangeDifficulty struct {
	Difficulty ns.Uint8
	Locked     ns.Boolean
}

func (*ChangeDifficulty) ID() ns.VarInt   { return 0x0E }
func (*ChangeDifficulty) State() jp.State { return jp.StatePlay }
func (*ChangeDifficulty) Bound() jp.Bound { return jp.S2C }

func (p *ChangeDifficulty) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Difficulty, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.Locked, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.Difficulty > 3 {
		return fmt.Errorf("illegal difficulty %d", p.Difficulty)
	}
	return nil
}

func (p *ChangeDifficulty) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteUint8(p.Difficulty); err != nil {
		return err
	}
	return buf.WriteBool(p.Locked)
}

func (p *ChangeDifficulty) String() string {
	return fmt.Sprintf("ChangeDifficulty(difficulty=%d, locked=%t)", p.Difficulty, bool(p.Locked))
}

// DeclareCommands ships the server's command tree. The node graph is not
// interpreted.
type DeclareCommands struct {
	Tail ns.ByteArray
}

func (*DeclareCommands) ID() ns.VarInt   { return 0x12 }
func (*DeclareCommands) State() jp.State { return jp.StatePlay }
func (*DeclareCommands) Bound() jp.Bound { return jp.S2C }

func (p *DeclareCommands) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Tail, err = buf.ReadRest()
	return err
}

func (p *DeclareCommands) Write(buf *ns.PacketBuffer) error {
	_, err := buf.Write(p.Tail)
	return err
}

func (p *DeclareCommands) String() string {
	return fmt.Sprintf("DeclareCommands(%d bytes)", len(p.Tail))
}

// ClientboundPluginMessage carries a server-to-client side channel.
type ClientboundPluginMessage struct {
	Channel ns.Identifier
	Data    ns.ByteArray
}

func (*ClientboundPluginMessage) ID() ns.VarInt   { return 0x18 }
func (*ClientboundPluginMessage) State() jp.State { return jp.StatePlay }
func (*ClientboundPluginMessage) Bound() jp.Bound { return jp.S2C }

func (p *ClientboundPluginMessage) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return err
	}
	p.Data, err = buf.ReadRest()
	return err
}

func (p *ClientboundPluginMessage) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteIdentifier(p.Channel); err != nil {
		return err
	}
	_, err := buf.Write(p.Data)
	return err
}

func (p *ClientboundPluginMessage) String() string {
	return fmt.Sprintf("PluginMessage(channel=%q, %d bytes)", string(p.Channel), len(p.Data))
}

// ClientboundKeepAlive must be echoed by the client within 30 seconds.
type ClientboundKeepAlive struct {
	KeepAliveID ns.Int64
}

func (*ClientboundKeepAlive) ID() ns.VarInt   { return 0x21 }
func (*ClientboundKeepAlive) State() jp.State { return jp.StatePlay }
func (*ClientboundKeepAlive) Bound() jp.Bound { return jp.S2C }

func (p *ClientboundKeepAlive) Read(buf *ns.PacketBuffer) error {
	var err error
	p.KeepAliveID, err = buf.ReadInt64()
	return err
}

func (p *ClientboundKeepAlive) Write(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.KeepAliveID)
}

func (p *ClientboundKeepAlive) String() string {
	return fmt.Sprintf("KeepAlive(id=%d)", p.KeepAliveID)
}

// ChunkData ships one column of world data plus its block-light bookkeeping.
// Heightmaps are decoded (they are a plain NBT compound); the palettes and
// block entities behind them stay opaque.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Chunk_Data
type ChunkData struct {
	ChunkX     ns.Int32
	ChunkZ     ns.Int32
	Heightmaps ns.NBT
	Tail       ns.ByteArray
}

func (*ChunkData) ID() ns.VarInt   { return 0x22 }
func (*ChunkData) State() jp.State { return jp.StatePlay }
func (*ChunkData) Bound() jp.Bound { return jp.S2C }

func (p *ChunkData) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ChunkX, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.ChunkZ, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.Heightmaps, err = buf.ReadNBT(); err != nil {
		return err
	}
	p.Tail, err = buf.ReadRest()
	return err
}

func (p *ChunkData) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteInt32(p.ChunkX); err != nil {
		return err
	}
	if err := buf.WriteInt32(p.ChunkZ); err != nil {
		return err
	}
	if err := buf.WriteNBT(p.Heightmaps); err != nil {
		return err
	}
	_, err := buf.Write(p.Tail)
	return err
}

func (p *ChunkData) String() string {
	return fmt.Sprintf("ChunkData(chunk_x=%d, chunk_z=%d, %d bytes)",
		p.ChunkX, p.ChunkZ, len(p.Tail))
}

// UpdateLight refreshes sky and block light for one chunk column.
type UpdateLight struct {
	ChunkX ns.VarInt
	ChunkZ ns.VarInt
	Tail   ns.ByteArray
}

func (*UpdateLight) ID() ns.VarInt   { return 0x25 }
func (*UpdateLight) State() jp.State { return jp.StatePlay }
func (*UpdateLight) Bound() jp.Bound { return jp.S2C }

func (p *UpdateLight) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ChunkX, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ChunkZ, err = buf.ReadVarInt(); err != nil {
		return err
	}
	p.Tail, err = buf.ReadRest()
	return err
}

func (p *UpdateLight) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.ChunkX); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ChunkZ); err != nil {
		return err
	}
	_, err := buf.Write(p.Tail)
	return err
}

func (p *UpdateLight) String() string {
	return fmt.Sprintf("UpdateLight(chunk_x=%d, chunk_z=%d, %d bytes)",
		p.ChunkX, p.ChunkZ, len(p.Tail))
}

// JoinGame switches the client into the play state and describes the world
// it is joining. Protocol 757 shape.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_(play)
type JoinGame struct {
	EntityID            ns.Int32
	IsHardcore          ns.Boolean
	GameMode            ns.Uint8
	PreviousGameMode    ns.Int8
	WorldNames          []ns.Identifier
	DimensionCodec      ns.NBT
	Dimension           ns.NBT
	WorldName           ns.Identifier
	HashedSeed          ns.Int64
	MaxPlayers          ns.VarInt
	ViewDistance        ns.VarInt
	SimulationDistance  ns.VarInt
	ReducedDebugInfo    ns.Boolean
	EnableRespawnScreen ns.Boolean
	IsDebug             ns.Boolean
	IsFlat              ns.Boolean
}

func (*JoinGame) ID() ns.VarInt   { return 0x26 }
func (*JoinGame) State() jp.State { return jp.StatePlay }
func (*JoinGame) Bound() jp.Bound { return jp.S2C }

func (p *JoinGame) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.IsHardcore, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.GameMode, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.PreviousGameMode, err = buf.ReadInt8(); err != nil {
		return err
	}

	worldCount, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	if worldCount <= 0 {
		return fmt.Errorf("illegal world count %d", worldCount)
	}
	p.WorldNames = make([]ns.Identifier, worldCount)
	for i := range p.WorldNames {
		if p.WorldNames[i], err = buf.ReadIdentifier(); err != nil {
			return err
		}
	}

	if p.DimensionCodec, err = buf.ReadNBT(); err != nil {
		return err
	}
	if p.Dimension, err = buf.ReadNBT(); err != nil {
		return err
	}
	if p.WorldName, err = buf.ReadIdentifier(); err != nil {
		return err
	}
	if p.HashedSeed, err = buf.ReadInt64(); err != nil {
		return err
	}
	if p.MaxPlayers, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ViewDistance, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.SimulationDistance, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ReducedDebugInfo, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.EnableRespawnScreen, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.IsDebug, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.IsFlat, err = buf.ReadBool(); err != nil {
		return err
	}

	if p.GameMode > 3 {
		return fmt.Errorf("illegal game mode %d", p.GameMode)
	}
	if p.MaxPlayers <= 0 {
		return fmt.Errorf("illegal max player count %d", p.MaxPlayers)
	}
	if p.ViewDistance < 2 || p.ViewDistance > 32 {
		return fmt.Errorf("view distance %d out of range", p.ViewDistance)
	}
	return nil
}

func (p *JoinGame) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteInt32(p.EntityID); err != nil {
		return err
	}
	if err := buf.WriteBool(p.IsHardcore); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.GameMode); err != nil {
		return err
	}
	if err := buf.WriteInt8(p.PreviousGameMode); err != nil {
		return err
	}
	if err := buf.WriteVarInt(ns.VarInt(len(p.WorldNames))); err != nil {
		return err
	}
	for _, name := range p.WorldNames {
		if err := buf.WriteIdentifier(name); err != nil {
			return err
		}
	}
	if err := buf.WriteNBT(p.DimensionCodec); err != nil {
		return err
	}
	if err := buf.WriteNBT(p.Dimension); err != nil {
		return err
	}
	if err := buf.WriteIdentifier(p.WorldName); err != nil {
		return err
	}
	if err := buf.WriteInt64(p.HashedSeed); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.MaxPlayers); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ViewDistance); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.SimulationDistance); err != nil {
		return err
	}
	if err := buf.WriteBool(p.ReducedDebugInfo); err != nil {
		return err
	}
	if err := buf.WriteBool(p.EnableRespawnScreen); err != nil {
		return err
	}
	if err := buf.WriteBool(p.IsDebug); err != nil {
		return err
	}
	return buf.WriteBool(p.IsFlat)
}

func (p *JoinGame) String() string {
	return fmt.Sprintf("JoinGame(entity_id=%d, game_mode=%d, world=%q, hashed_seed=%#x, max_players=%d)",
		p.EntityID, p.GameMode, string(p.WorldName), p.HashedSeed, p.MaxPlayers)
}

// PlayerPositionAndLook synchronizes the client's position and look.
type PlayerPositionAndLook struct {
	X          ns.Float64
	Y          ns.Float64
	Z          ns.Float64
	Yaw        ns.Float32
	Pitch      ns.Float32
	Flags      ns.Uint8
	TeleportID ns.VarInt
	Dismount   ns.Boolean
}

func (*PlayerPositionAndLook) ID() ns.VarInt   { return 0x38 }
func (*PlayerPositionAndLook) State() jp.State { return jp.StatePlay }
func (*PlayerPositionAndLook) Bound() jp.Bound { return jp.S2C }

func (p *PlayerPositionAndLook) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Y, err = buf.ReadFloat64(); err != nil {
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
	if p.Flags, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.TeleportID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.Dismount, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.Flags&^0x1F != 0 {
		return fmt.Errorf("illegal relative flags %#02x", p.Flags)
	}
	return nil
}

func (p *PlayerPositionAndLook) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Y); err != nil {
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
	if err := buf.WriteUint8(p.Flags); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.TeleportID); err != nil {
		return err
	}
	return buf.WriteBool(p.Dismount)
}

func (p *PlayerPositionAndLook) String() string {
	return fmt.Sprintf("PlayerPositionAndLook(x=%.2f, y=%.2f, z=%.2f, teleport_id=%d)",
		p.X, p.Y, p.Z, p.TeleportID)
}

// SpawnPosition tells the client where the world spawn is, which it needs
// before it can finish joining.
type SpawnPosition struct {
	Location ns.Position
	Angle    ns.Float32
}

func (*SpawnPosition) ID() ns.VarInt   { return 0x4B }
func (*SpawnPosition) State() jp.State { return jp.StatePlay }
func (*SpawnPosition) Bound() jp.Bound { return jp.S2C }

func (p *SpawnPosition) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Location, err = buf.ReadPosition(); err != nil {
		return err
	}
	p.Angle, err = buf.ReadFloat32()
	return err
}

func (p *SpawnPosition) Write(buf *ns.PacketBuffer) error {
	if err := buf.WritePosition(p.Location); err != nil {
		return err
	}
	return buf.WriteFloat32(p.Angle)
}

func (p *SpawnPosition) String() string {
	return fmt.Sprintf("SpawnPosition(x=%d, y=%d, z=%d)",
		p.Location.X, p.Location.Y, p.Location.Z)
}

// EntityMetadata updates an entity's tracked data. The metadata dictionary
// stays opaque.
type EntityMetadata struct {
	EntityID ns.VarInt
	Tail     ns.ByteArray
}

func (*EntityMetadata) ID() ns.VarInt   { return 0x4D }
func (*EntityMetadata) State() jp.State { return jp.StatePlay }
func (*EntityMetadata) Bound() jp.Bound { return jp.S2C }

func (p *EntityMetadata) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	p.Tail, err = buf.ReadRest()
	return err
}

func (p *EntityMetadata) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.EntityID); err != nil {
		return err
	}
	_, err := buf.Write(p.Tail)
	return err
}

func (p *EntityMetadata) String() string {
	return fmt.Sprintf("EntityMetadata(entity_id=%d, %d bytes)", p.EntityID, len(p.Tail))
}

// EntityProperties updates an entity's attribute modifiers. Opaque tail.
type EntityProperties struct {
	EntityID ns.VarInt
	Tail     ns.ByteArray
}

func (*EntityProperties) ID() ns.VarInt   { return 0x64 }
func (*EntityProperties) State() jp.State { return jp.StatePlay }
func (*EntityProperties) Bound() jp.Bound { return jp.S2C }

func (p *EntityProperties) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	p.Tail, err = buf.ReadRest()
	return err
}

func (p *EntityProperties) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.EntityID); err != nil {
		return err
	}
	_, err := buf.Write(p.Tail)
	return err
}

func (p *EntityProperties) String() string {
	return fmt.Sprintf("EntityProperties(entity_id=%d, %d bytes)", p.EntityID, len(p.Tail))
}

// DeclareRecipes ships the full recipe book. Opaque tail.
type DeclareRecipes struct {
	Tail ns.ByteArray
}

func (*DeclareRecipes) ID() ns.VarInt   { return 0x66 }
func (*DeclareRecipes) State() jp.State { return jp.StatePlay }
func (*DeclareRecipes) Bound() jp.Bound { return jp.S2C }

func (p *DeclareRecipes) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Tail, err = buf.ReadRest()
	return err
}

func (p *DeclareRecipes) Write(buf *ns.PacketBuffer) error {
	_, err := buf.Write(p.Tail)
	return err
}

func (p *DeclareRecipes) String() string {
	return fmt.Sprintf("DeclareRecipes(%d bytes)", len(p.Tail))
}

// Tags ships the registry tag tables. Opaque tail.
type Tags struct {
	Tail ns.ByteArray
}

func (*Tags) ID() ns.VarInt   { return 0x67 }
func (*Tags) State() jp.State { return jp.StatePlay }
func (*Tags) Bound() jp.Bound { return jp.S2C }

func (p *Tags) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Tail, err = buf.ReadRest()
	return err
}

func (p *Tags) Write(buf *ns.PacketBuffer) error {
	_, err := buf.Write(p.Tail)
	return err
}

func (p *Tags) String() string {
	return fmt.Sprintf("Tags(%d bytes)", len(p.Tail))
}
