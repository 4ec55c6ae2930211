package proxy

import (
	"io"

	jp "github.com/go-mclib/proxy/java_protocol"
)

// PacketReader pulls typed packets off one side of the connection. It tracks
// that side's current state so frames dispatch through the right directory
// table, and it shares the Session so compression applies as soon as the
// server announces it.
//
// Next returns io.EOF only at a frame boundary; EOF inside a frame surfaces
// as a framing error.
type PacketReader struct {
	r       io.Reader
	session *jp.Session
	dir     *jp.Directory
	state   jp.State
	bound   jp.Bound
}

// NewPacketReader creates a reader for one direction of the connection,
// starting in the handshake state.
func NewPacketReader(r io.Reader, session *jp.Session, dir *jp.Directory, bound jp.Bound) *PacketReader {
	return &PacketReader{
		r:       r,
		session: session,
		dir:     dir,
		state:   jp.StateHandshake,
		bound:   bound,
	}
}

// SetState advances the reader's dispatch state. Transitions are strictly
// forward; the state machines never move back.
func (pr *PacketReader) SetState(state jp.State) {
	pr.state = state
}

// State returns the reader's current dispatch state.
func (pr *PacketReader) State() jp.State {
	return pr.state
}

// Next reads and parses one packet.
func (pr *PacketReader) Next() (jp.Packet, error) {
	id, payload, err := jp.ReadFrame(pr.r, pr.session)
	if err != nil {
		return nil, err
	}
	return pr.dir.Decode(pr.session, pr.state, pr.bound, id, payload)
}

// PacketWriter renders typed packets onto one side of the connection,
// applying the session's compression threshold.
type PacketWriter struct {
	w       io.Writer
	session *jp.Session
}

// NewPacketWriter creates a writer over w.
func NewPacketWriter(w io.Writer, session *jp.Session) *PacketWriter {
	return &PacketWriter{w: w, session: session}
}

// Write renders p and writes it as one frame.
func (pw *PacketWriter) Write(p jp.Packet) error {
	return jp.WritePacket(pw.w, pw.session, p)
}
