// Package packets is the typed packet catalog for protocol 757 and the
// dispatch directory over it.
package packets

import (
	jp "github.com/go-mclib/proxy/java_protocol"
)

// Directory is the static (state, direction) -> packet ID dispatch table for
// every packet this dissector understands. Built once at init, never mutated.
var Directory = buildDirectory()

func buildDirectory() *jp.Directory {
	d := jp.NewDirectory()

	register := func(f jp.Factory) {
		p := f()
		d.Register(p.State(), p.Bound(), p.ID(), f)
	}

	// handshake
	register(func() jp.Packet { return new(Handshake) })

	// status
	register(func() jp.Packet { return new(StatusRequest) })
	register(func() jp.Packet { return new(StatusPing) })
	register(func() jp.Packet { return new(StatusResponse) })
	register(func() jp.Packet { return new(StatusPong) })

	// login
	register(func() jp.Packet { return new(LoginStart) })
	register(func() jp.Packet { return new(LoginDisconnect) })
	register(func() jp.Packet { return new(EncryptionRequest) })
	register(func() jp.Packet { return new(LoginSuccess) })
	register(func() jp.Packet { return new(SetCompression) })
	register(func() jp.Packet { return new(LoginPluginRequest) })

	// play, serverbound
	register(func() jp.Packet { return new(TeleportConfirm) })
	register(func() jp.Packet { return new(ClientSettings) })
	register(func() jp.Packet { return new(ServerboundPluginMessage) })
	register(func() jp.Packet { return new(ServerboundKeepAlive) })
	register(func() jp.Packet { return new(PlayerPosition) })
	register(func() jp.Packet { return new(PlayerPositionAndRotation) })

	// play, clientbound
	register(func() jp.Packet { return new(SpawnEntity) })
	register(func() jp.Packet { return new(ChangeDifficulty) })
	register(func() jp.Packet { return new(DeclareCommands) })
	register(func() jp.Packet { return new(ClientboundPluginMessage) })
	register(func() jp.Packet { return new(ClientboundKeepAlive) })
	register(func() jp.Packet { return new(ChunkData) })
	register(func() jp.Packet { return new(UpdateLight) })
	register(func() jp.Packet { return new(JoinGame) })
	register(func() jp.Packet { return new(PlayerPositionAndLook) })
	register(func() jp.Packet { return new(SpawnPosition) })
	register(func() jp.Packet { return new(EntityMetadata) })
	register(func() jp.Packet { return new(EntityProperties) })
	register(func() jp.Packet { return new(DeclareRecipes) })
	register(func() jp.Packet { return new(Tags) })

	return d
}
