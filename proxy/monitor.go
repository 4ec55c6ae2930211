package proxy

import (
	"context"

	"github.com/go-mclib/proxy/java_protocol/packets"
	"github.com/go-mclib/proxy/logger"
)

// PacketMonitor consumes the mirror's tap and logs one line per relayed
// packet at debug level, "->" for serverbound and "<-" for clientbound.
//
// One filter applies: after the first clientbound ChunkData, further
// ChunkData packets are suppressed for the rest of the session. A joining
// client receives hundreds of them and they drown everything else out.
type PacketMonitor struct {
	In  <-chan TappedPacket
	log *logger.Logger
}

// NewPacketMonitor creates a monitor over the tap channel.
func NewPacketMonitor(in <-chan TappedPacket) *PacketMonitor {
	return &PacketMonitor{In: in, log: logger.New("packetmonitor")}
}

// Run drains the tap until it closes.
func (m *PacketMonitor) Run(ctx context.Context) error {
	filterChunkData := false

	for {
		t, ok, err := recv(ctx, m.In)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if !t.Serverbound {
			if _, isChunk := t.Packet.(*packets.ChunkData); isChunk {
				if filterChunkData {
					continue
				}
				filterChunkData = true
			}
		}

		symbol := "<-"
		if t.Serverbound {
			symbol = "->"
		}
		m.log.Debugf("%s %s", symbol, t.Packet)
	}
}
