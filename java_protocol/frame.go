package java_protocol

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

// ErrFraming tags malformed wire framing: bad lengths, truncated frames,
// compression mismatches. Framing errors are fatal to the session.
var ErrFraming = errors.New("framing error")

// Frame layout, per https://minecraft.wiki/w/Java_Edition_protocol/Packets:
//
//	Without compression:
//	  packetLength: VarInt(len(packetID + data))
//	  packetID:     VarInt
//	  data:         bytes
//
//	With compression (after SetCompression):
//	  packetLength: VarInt(len(dataLength + body))
//	  dataLength:   VarInt; 0 if body is uncompressed, else the
//	                uncompressed size of body
//	  body:         packetID + data, zlib-compressed iff dataLength > 0

// ReadFrame reads one frame from r and returns the contained packet ID and
// payload, transparently undoing compression according to the session.
//
// A clean EOF before the first length byte returns io.EOF; EOF anywhere
// inside a frame is a framing error.
func ReadFrame(r io.Reader, session *Session) (ns.VarInt, []byte, error) {
	// DecodeVarInt reports io.EOF only when the stream ends before the
	// first length byte; truncation inside the VarInt surfaces as
	// io.ErrUnexpectedEOF and is a framing error like any other.
	length, err := ns.DecodeVarInt(r)
	if err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("%w: failed to read frame length: %v", ErrFraming, err)
	}
	if length <= 0 {
		return 0, nil, fmt.Errorf("%w: illegal frame length %d", ErrFraming, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return 0, nil, fmt.Errorf("%w: short frame (want %d bytes): %v", ErrFraming, length, err)
	}

	if session.CompressionEnabled() {
		data, err = inflateFrame(data)
		if err != nil {
			return 0, nil, err
		}
	}

	br := bytes.NewReader(data)
	packetID, err := ns.DecodeVarInt(br)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read packet ID: %v", ErrFraming, err)
	}

	payload := make([]byte, br.Len())
	if _, err := io.ReadFull(br, payload); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	return packetID, payload, nil
}

// inflateFrame undoes the compressed frame layout on the bytes following the
// packetLength prefix.
func inflateFrame(data []byte) ([]byte, error) {
	br := bytes.NewReader(data)
	uncompressedLength, err := ns.DecodeVarInt(br)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read uncompressed length: %v", ErrFraming, err)
	}
	if uncompressedLength < 0 {
		return nil, fmt.Errorf("%w: negative uncompressed length %d", ErrFraming, uncompressedLength)
	}

	rest := data[len(data)-br.Len():]
	if uncompressedLength == 0 {
		return rest, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, fmt.Errorf("%w: bad zlib stream: %v", ErrFraming, err)
	}
	defer func() { _ = zr.Close() }()

	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to inflate frame: %v", ErrFraming, err)
	}
	if len(inflated) != int(uncompressedLength) {
		return nil, fmt.Errorf("%w: inflated size %d does not match declared %d",
			ErrFraming, len(inflated), uncompressedLength)
	}
	return inflated, nil
}

// WriteFrame frames packetID plus payload and writes it to w, applying the
// session's compression threshold.
func WriteFrame(w io.Writer, session *Session, packetID ns.VarInt, payload []byte) error {
	data := append(packetID.ToBytes(), payload...)

	var frame []byte
	if !session.CompressionEnabled() {
		frame = append(ns.VarInt(len(data)).ToBytes(), data...)
	} else if len(data) >= session.Threshold() {
		compressed, err := deflate(data)
		if err != nil {
			return err
		}
		body := append(ns.VarInt(len(data)).ToBytes(), compressed...)
		frame = append(ns.VarInt(len(body)).ToBytes(), body...)
	} else {
		// below the threshold: dataLength = 0 marks the body uncompressed
		frame = append(ns.VarInt(len(data)+1).ToBytes(), 0x00)
		frame = append(frame, data...)
	}

	_, err := w.Write(frame)
	return err
}

// deflate compresses data with zlib at the lowest compression level; the
// relay favors latency over wire size.
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPacket serializes a typed packet's payload.
func RenderPacket(p Packet) ([]byte, error) {
	buf := ns.NewWriter()
	if err := p.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to serialize %T payload: %w", p, err)
	}
	return buf.Bytes(), nil
}

// WritePacket renders p and writes it to w as one frame.
func WritePacket(w io.Writer, session *Session, p Packet) error {
	payload, err := RenderPacket(p)
	if err != nil {
		return err
	}
	return WriteFrame(w, session, p.ID(), payload)
}
