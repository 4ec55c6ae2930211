package net_structures

import (
	"fmt"
	"io"
)

// ByteArray is a raw byte sequence with no length prefix of its own; its
// extent is defined by the enclosing structure (usually "rest of the packet").
type ByteArray []byte

// Encode writes the raw bytes to w.
func (v ByteArray) Encode(w io.Writer) error {
	_, err := w.Write(v)
	return err
}

// DecodeByteArray reads exactly n bytes from r.
func DecodeByteArray(r io.Reader, n int) (ByteArray, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative byte array length: %d", n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// PrefixedByteArray is a byte sequence preceded by its VarInt length.
type PrefixedByteArray []byte

// Encode writes the VarInt length followed by the bytes.
func (v PrefixedByteArray) Encode(w io.Writer) error {
	if err := VarInt(len(v)).Encode(w); err != nil {
		return fmt.Errorf("failed to write byte array length: %w", err)
	}
	_, err := w.Write(v)
	return err
}

// DecodePrefixedByteArray reads a VarInt length and that many bytes from r.
func DecodePrefixedByteArray(r io.Reader) (PrefixedByteArray, error) {
	length, err := DecodeVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read byte array length: %w", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("negative byte array length: %d", length)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
