package net_structures

import (
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
)

// NBT is one Named Binary Tag as it appears inside a packet payload.
//
// The tag payload is retained uninterpreted (nbt.RawMessage), so a parsed
// packet re-renders to exactly the bytes the peer sent. A lone TAG_End byte
// (0x00) stands for "no tag present".
type NBT struct {
	// RootName is the name of the root tag, usually "".
	RootName string
	// Tag is the raw tag type and payload.
	Tag nbt.RawMessage
}

// IsEmpty reports whether the NBT holds no tag at all.
func (n NBT) IsEmpty() bool {
	return n.Tag.Type == nbt.TagEnd
}

// Encode writes the NBT to w.
func (n NBT) Encode(w io.Writer) error {
	if n.IsEmpty() {
		_, err := w.Write([]byte{nbt.TagEnd})
		return err
	}
	if err := nbt.NewEncoder(w).Encode(n.Tag, n.RootName); err != nil {
		return fmt.Errorf("failed to encode NBT: %w", err)
	}
	return nil
}

// DecodeNBT reads one NBT tag from r.
//
// r must implement io.ByteScanner so the decoder consumes exactly one tag
// and no more; payload buffers (bytes.Reader) satisfy this.
func DecodeNBT(r io.Reader) (NBT, error) {
	bs, ok := r.(io.ByteScanner)
	if !ok {
		return NBT{}, fmt.Errorf("NBT decoding requires a byte-scanning reader, got %T", r)
	}

	first, err := bs.ReadByte()
	if err != nil {
		return NBT{}, fmt.Errorf("failed to read NBT tag type: %w", err)
	}
	if first == nbt.TagEnd {
		return NBT{}, nil
	}
	if err := bs.UnreadByte(); err != nil {
		return NBT{}, err
	}

	var n NBT
	name, err := nbt.NewDecoder(r).Decode(&n.Tag)
	if err != nil {
		return NBT{}, fmt.Errorf("failed to decode NBT: %w", err)
	}
	n.RootName = name
	return n, nil
}

// DecodeTo unmarshals the tag payload into dest.
func (n *NBT) DecodeTo(dest any) error {
	if n.IsEmpty() {
		return fmt.Errorf("cannot decode empty NBT")
	}
	return n.Tag.Unmarshal(dest)
}
