package net_structures

import (
	"io"

	"github.com/google/uuid"
)

// UUID is a 128-bit universally unique identifier.
//
// Encoded as 16 raw bytes (two big-endian 64-bit halves, most significant
// first).
type UUID uuid.UUID

// NilUUID is the zero UUID (all zeros).
var NilUUID = UUID{}

// Encode writes the UUID to w.
func (u UUID) Encode(w io.Writer) error {
	_, err := w.Write(u[:])
	return err
}

// DecodeUUID reads a UUID from r.
func DecodeUUID(r io.Reader) (UUID, error) {
	var u UUID
	if _, err := io.ReadFull(r, u[:]); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// UUIDFromString parses a UUID from its string representation,
// with or without hyphens.
func UUIDFromString(s string) (UUID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID(v), nil
}

// String returns the UUID in standard hyphenated format.
func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// IsNil returns true if this is the nil UUID (all zeros).
func (u UUID) IsNil() bool {
	return u == NilUUID
}
