package java_protocol

import "sync/atomic"

// CompressionDisabled is the threshold value meaning frames are never
// compressed.
const CompressionDisabled = -1

// Session is the connection-scoped state both codec sides observe: the
// negotiated protocol version and the compression threshold.
//
// The threshold is written exactly once, by the server-facing side when it
// absorbs SetCompression during login, and read by the codecs of both sides
// afterwards; the fields are atomics because those sides run in different
// goroutines.
type Session struct {
	protocol  atomic.Int32
	threshold atomic.Int32
}

// NewSession creates a Session with compression disabled and no protocol
// version negotiated yet.
func NewSession() *Session {
	s := &Session{}
	s.threshold.Store(CompressionDisabled)
	return s
}

// Protocol returns the negotiated protocol version, 0 before Handshake.
func (s *Session) Protocol() int32 {
	return s.protocol.Load()
}

// SetProtocol records the protocol version from the Handshake packet.
// It is set once, before any other packet is processed.
func (s *Session) SetProtocol(version int32) {
	s.protocol.Store(version)
}

// Threshold returns the current compression threshold;
// CompressionDisabled (-1) means frames are uncompressed.
func (s *Session) Threshold() int {
	return int(s.threshold.Load())
}

// SetThreshold enables compression for all subsequent frames on both sides
// of the connection.
func (s *Session) SetThreshold(threshold int32) {
	s.threshold.Store(threshold)
}

// CompressionEnabled reports whether the compressed frame layout is in effect.
func (s *Session) CompressionEnabled() bool {
	return s.Threshold() >= 0
}
