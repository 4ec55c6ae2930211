package java_protocol

import (
	"errors"
	"fmt"

	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// ErrUnknownPacket tags a packet ID with no entry in the directory for its
// (state, bound). Fatal outside the Play state.
var ErrUnknownPacket = errors.New("unknown packet ID")

// Factory constructs an empty typed packet ready for Read.
type Factory func() Packet

type directoryKey struct {
	state State
	bound Bound
	id    ns.VarInt
}

// Directory maps (state, bound, packet ID) to typed packet factories. It is
// built once at startup and never mutated afterwards.
type Directory struct {
	factories map[directoryKey]Factory
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{factories: make(map[directoryKey]Factory)}
}

// Register adds a factory for one packet ID. Registering the same
// (state, bound, id) twice panics; the tables are static and a duplicate is
// a programming error.
func (d *Directory) Register(state State, bound Bound, id ns.VarInt, f Factory) {
	key := directoryKey{state, bound, id}
	if _, dup := d.factories[key]; dup {
		panic(fmt.Sprintf("duplicate packet registration: %v/%v id %#02x", state, bound, int32(id)))
	}
	d.factories[key] = f
}

// Lookup returns the factory for the given packet, or nil.
func (d *Directory) Lookup(state State, bound Bound, id ns.VarInt) Factory {
	return d.factories[directoryKey{state, bound, id}]
}

// Decode dispatches a frame's packet ID through the directory and parses the
// payload into a typed packet.
//
// An unknown ID yields a RawPacket in the Play state (the relay must not
// stall on catalog gaps) and an error in every earlier state, where the
// packet sequence is prescribed. Payloads must be consumed exactly; trailing
// bytes are an error.
func (d *Directory) Decode(session *Session, state State, bound Bound, id ns.VarInt, payload []byte) (Packet, error) {
	factory := d.Lookup(state, bound, id)
	if factory == nil {
		if state == StatePlay {
			return &RawPacket{
				PacketID:    id,
				PacketState: state,
				PacketBound: bound,
				Data:        payload,
			}, nil
		}
		return nil, fmt.Errorf("%w: %#02x in %v/%v", ErrUnknownPacket, int32(id), state, bound)
	}

	p := factory()
	buf := ns.NewReader(payload)
	if err := p.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to parse %T: %w", p, err)
	}
	if err := buf.ExpectEmpty(); err != nil {
		return nil, fmt.Errorf("failed to parse %T: %w", p, err)
	}
	return p, nil
}

// IDs returns every registered packet ID for one (state, bound) table.
func (d *Directory) IDs(state State, bound Bound) []ns.VarInt {
	var ids []ns.VarInt
	for key := range d.factories {
		if key.state == state && key.bound == bound {
			ids = append(ids, key.id)
		}
	}
	return ids
}
