package net_structures_test

import (
	"bytes"
	"testing"

	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

func TestPacketBufferWriteReadSymmetry(t *testing.T) {
	w := ns.NewWriter()
	if err := w.WriteVarInt(757); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("localhost"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteUint16(25565); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBool(true); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteInt64(-42); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFloat64(1.5); err != nil {
		t.Fatal(err)
	}

	r := ns.NewReader(w.Bytes())
	if v, err := r.ReadVarInt(); err != nil || v != 757 {
		t.Fatalf("ReadVarInt() = %v, %v", v, err)
	}
	if v, err := r.ReadString(255); err != nil || v != "localhost" {
		t.Fatalf("ReadString() = %q, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 25565 {
		t.Fatalf("ReadUint16() = %v, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || !bool(v) {
		t.Fatalf("ReadBool() = %v, %v", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != -42 {
		t.Fatalf("ReadInt64() = %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 1.5 {
		t.Fatalf("ReadFloat64() = %v, %v", v, err)
	}

	if err := r.ExpectEmpty(); err != nil {
		t.Errorf("ExpectEmpty() = %v after full consumption", err)
	}
}

func TestPacketBufferRemaining(t *testing.T) {
	r := ns.NewReader([]byte{0x01, 0x02, 0x03})
	if got := r.Remaining(); got != 3 {
		t.Fatalf("Remaining() = %d, want 3", got)
	}
	if _, err := r.ReadUint8(); err != nil {
		t.Fatal(err)
	}
	if got := r.Remaining(); got != 2 {
		t.Fatalf("Remaining() = %d, want 2", got)
	}
	if err := r.ExpectEmpty(); err == nil {
		t.Error("ExpectEmpty() = nil with 2 bytes left")
	}

	rest, err := r.ReadRest()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rest, []byte{0x02, 0x03}) {
		t.Errorf("ReadRest() = %v", rest)
	}
	if err := r.ExpectEmpty(); err != nil {
		t.Errorf("ExpectEmpty() = %v", err)
	}
}

func TestPacketBufferStreamingRemainingUnknown(t *testing.T) {
	r := ns.NewReaderFrom(bytes.NewBuffer([]byte{0x01}))
	if got := r.Remaining(); got != -1 {
		t.Errorf("Remaining() = %d for streaming buffer, want -1", got)
	}
}

func TestPacketBufferModeErrors(t *testing.T) {
	if _, err := ns.NewWriter().Read(make([]byte, 1)); err == nil {
		t.Error("Read on write buffer succeeded")
	}
	if _, err := ns.NewReader(nil).Write([]byte{0x00}); err == nil {
		t.Error("Write on read buffer succeeded")
	}
}
