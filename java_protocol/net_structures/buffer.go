package net_structures

import (
	"bytes"
	"fmt"
	"io"
)

// PacketBuffer provides methods for reading and writing Minecraft protocol
// data types over a packet payload.
//
// A reading buffer created with NewReader knows the payload's extent, which
// lets parsers enforce that a payload is consumed exactly (Remaining).
type PacketBuffer struct {
	reader io.Reader
	writer io.Writer

	// set when reading from an in-memory payload
	br *bytes.Reader
	// set when writing to an in-memory payload
	buf *bytes.Buffer
}

// NewReader creates a PacketBuffer for reading from a payload.
func NewReader(data []byte) *PacketBuffer {
	br := bytes.NewReader(data)
	return &PacketBuffer{reader: br, br: br}
}

// NewReaderFrom creates a PacketBuffer for reading from an io.Reader.
func NewReaderFrom(r io.Reader) *PacketBuffer {
	return &PacketBuffer{reader: r}
}

// NewWriter creates a PacketBuffer that accumulates written bytes.
func NewWriter() *PacketBuffer {
	buf := &bytes.Buffer{}
	return &PacketBuffer{writer: buf, buf: buf}
}

// NewWriterTo creates a PacketBuffer that writes directly to an io.Writer.
func NewWriterTo(w io.Writer) *PacketBuffer {
	return &PacketBuffer{writer: w}
}

// Bytes returns the written bytes. Only valid for buffers created with NewWriter.
func (pb *PacketBuffer) Bytes() []byte {
	if pb.buf != nil {
		return pb.buf.Bytes()
	}
	return nil
}

// Len returns the number of written bytes. Only valid for buffers created with NewWriter.
func (pb *PacketBuffer) Len() int {
	if pb.buf != nil {
		return pb.buf.Len()
	}
	return 0
}

// Remaining returns the number of unconsumed payload bytes, or -1 when the
// buffer reads from a stream of unknown extent.
func (pb *PacketBuffer) Remaining() int {
	if pb.br != nil {
		return pb.br.Len()
	}
	return -1
}

// ExpectEmpty returns an error unless the payload has been fully consumed.
func (pb *PacketBuffer) ExpectEmpty() error {
	if n := pb.Remaining(); n > 0 {
		return fmt.Errorf("%d trailing bytes after packet payload", n)
	}
	return nil
}

// --- Raw I/O ---

// Read reads exactly len(p) bytes from the buffer.
func (pb *PacketBuffer) Read(p []byte) (int, error) {
	if pb.reader == nil {
		return 0, fmt.Errorf("buffer not in read mode")
	}
	return io.ReadFull(pb.reader, p)
}

// Write writes p to the buffer.
func (pb *PacketBuffer) Write(p []byte) (int, error) {
	if pb.writer == nil {
		return 0, fmt.Errorf("buffer not in write mode")
	}
	return pb.writer.Write(p)
}

// Reader returns the underlying io.Reader.
func (pb *PacketBuffer) Reader() io.Reader {
	return pb.reader
}

// Writer returns the underlying io.Writer.
func (pb *PacketBuffer) Writer() io.Writer {
	return pb.writer
}

// ReadRest reads all remaining payload bytes.
func (pb *PacketBuffer) ReadRest() (ByteArray, error) {
	if pb.reader == nil {
		return nil, fmt.Errorf("buffer not in read mode")
	}
	data, err := io.ReadAll(pb.reader)
	if err != nil {
		return nil, err
	}
	return ByteArray(data), nil
}

// --- Variable-length integers ---

// ReadVarInt reads a variable-length 32-bit integer.
func (pb *PacketBuffer) ReadVarInt() (VarInt, error) {
	return DecodeVarInt(pb.reader)
}

// WriteVarInt writes a variable-length 32-bit integer.
func (pb *PacketBuffer) WriteVarInt(v VarInt) error {
	return v.Encode(pb.writer)
}

// ReadVarLong reads a variable-length 64-bit integer.
func (pb *PacketBuffer) ReadVarLong() (VarLong, error) {
	return DecodeVarLong(pb.reader)
}

// WriteVarLong writes a variable-length 64-bit integer.
func (pb *PacketBuffer) WriteVarLong(v VarLong) error {
	return v.Encode(pb.writer)
}

// --- Fixed-width primitives ---

// ReadBool reads a boolean (1 byte: 0x00 = false, 0x01 = true).
func (pb *PacketBuffer) ReadBool() (Boolean, error) {
	return DecodeBoolean(pb.reader)
}

// WriteBool writes a boolean.
func (pb *PacketBuffer) WriteBool(v Boolean) error {
	return v.Encode(pb.writer)
}

// ReadInt8 reads a signed 8-bit integer.
func (pb *PacketBuffer) ReadInt8() (Int8, error) {
	return DecodeInt8(pb.reader)
}

// WriteInt8 writes a signed 8-bit integer.
func (pb *PacketBuffer) WriteInt8(v Int8) error {
	return v.Encode(pb.writer)
}

// ReadUint8 reads an unsigned 8-bit integer.
func (pb *PacketBuffer) ReadUint8() (Uint8, error) {
	return DecodeUint8(pb.reader)
}

// WriteUint8 writes an unsigned 8-bit integer.
func (pb *PacketBuffer) WriteUint8(v Uint8) error {
	return v.Encode(pb.writer)
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (pb *PacketBuffer) ReadInt16() (Int16, error) {
	return DecodeInt16(pb.reader)
}

// WriteInt16 writes a big-endian signed 16-bit integer.
func (pb *PacketBuffer) WriteInt16(v Int16) error {
	return v.Encode(pb.writer)
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (pb *PacketBuffer) ReadUint16() (Uint16, error) {
	return DecodeUint16(pb.reader)
}

// WriteUint16 writes a big-endian unsigned 16-bit integer.
func (pb *PacketBuffer) WriteUint16(v Uint16) error {
	return v.Encode(pb.writer)
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (pb *PacketBuffer) ReadInt32() (Int32, error) {
	return DecodeInt32(pb.reader)
}

// WriteInt32 writes a big-endian signed 32-bit integer.
func (pb *PacketBuffer) WriteInt32(v Int32) error {
	return v.Encode(pb.writer)
}

// ReadInt64 reads a big-endian signed 64-bit integer.
func (pb *PacketBuffer) ReadInt64() (Int64, error) {
	return DecodeInt64(pb.reader)
}

// WriteInt64 writes a big-endian signed 64-bit integer.
func (pb *PacketBuffer) WriteInt64(v Int64) error {
	return v.Encode(pb.writer)
}

// ReadFloat32 reads a big-endian IEEE-754 single-precision float.
func (pb *PacketBuffer) ReadFloat32() (Float32, error) {
	return DecodeFloat32(pb.reader)
}

// WriteFloat32 writes a big-endian IEEE-754 single-precision float.
func (pb *PacketBuffer) WriteFloat32(v Float32) error {
	return v.Encode(pb.writer)
}

// ReadFloat64 reads a big-endian IEEE-754 double-precision float.
func (pb *PacketBuffer) ReadFloat64() (Float64, error) {
	return DecodeFloat64(pb.reader)
}

// WriteFloat64 writes a big-endian IEEE-754 double-precision float.
func (pb *PacketBuffer) WriteFloat64(v Float64) error {
	return v.Encode(pb.writer)
}

// --- Strings and identifiers ---

// ReadString reads a VarInt-length-prefixed UTF-8 string.
func (pb *PacketBuffer) ReadString(maxLen int) (String, error) {
	return DecodeString(pb.reader, maxLen)
}

// WriteString writes a VarInt-length-prefixed UTF-8 string.
func (pb *PacketBuffer) WriteString(v String) error {
	return v.Encode(pb.writer)
}

// ReadIdentifier reads a namespaced identifier.
func (pb *PacketBuffer) ReadIdentifier() (Identifier, error) {
	return DecodeIdentifier(pb.reader)
}

// WriteIdentifier writes a namespaced identifier.
func (pb *PacketBuffer) WriteIdentifier(v Identifier) error {
	return v.Encode(pb.writer)
}

// --- Composite structures ---

// ReadUUID reads a 16-byte UUID.
func (pb *PacketBuffer) ReadUUID() (UUID, error) {
	return DecodeUUID(pb.reader)
}

// WriteUUID writes a 16-byte UUID.
func (pb *PacketBuffer) WriteUUID(v UUID) error {
	return v.Encode(pb.writer)
}

// ReadPosition reads a packed block position.
func (pb *PacketBuffer) ReadPosition() (Position, error) {
	return DecodePosition(pb.reader)
}

// WritePosition writes a packed block position.
func (pb *PacketBuffer) WritePosition(v Position) error {
	return v.Encode(pb.writer)
}

// ReadAngle reads a one-byte angle.
func (pb *PacketBuffer) ReadAngle() (Angle, error) {
	return DecodeAngle(pb.reader)
}

// WriteAngle writes a one-byte angle.
func (pb *PacketBuffer) WriteAngle(v Angle) error {
	return v.Encode(pb.writer)
}

// ReadVelocity reads one axis of entity motion.
func (pb *PacketBuffer) ReadVelocity() (Velocity, error) {
	return DecodeVelocity(pb.reader)
}

// WriteVelocity writes one axis of entity motion.
func (pb *PacketBuffer) WriteVelocity(v Velocity) error {
	return v.Encode(pb.writer)
}

// ReadPrefixedBytes reads a VarInt-length-prefixed byte array.
func (pb *PacketBuffer) ReadPrefixedBytes() (PrefixedByteArray, error) {
	return DecodePrefixedByteArray(pb.reader)
}

// WritePrefixedBytes writes a VarInt-length-prefixed byte array.
func (pb *PacketBuffer) WritePrefixedBytes(v PrefixedByteArray) error {
	return v.Encode(pb.writer)
}

// ReadNBT reads one NBT tag.
func (pb *PacketBuffer) ReadNBT() (NBT, error) {
	return DecodeNBT(pb.reader)
}

// WriteNBT writes one NBT tag.
func (pb *PacketBuffer) WriteNBT(v NBT) error {
	return v.Encode(pb.writer)
}
