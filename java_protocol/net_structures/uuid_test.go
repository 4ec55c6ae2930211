package net_structures_test

import (
	"bytes"
	"testing"

	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

func TestUUIDFromString(t *testing.T) {
	u, err := ns.UUIDFromString("4465fcc3-d445-4ee2-bb00-7b39ce2d3cc7")
	if err != nil {
		t.Fatalf("UUIDFromString() error = %v", err)
	}
	if got := u.String(); got != "4465fcc3-d445-4ee2-bb00-7b39ce2d3cc7" {
		t.Errorf("String() = %q", got)
	}
	if u.IsNil() {
		t.Error("IsNil() = true for non-nil UUID")
	}

	if _, err := ns.UUIDFromString("not-a-uuid"); err == nil {
		t.Error("expected parse error, got none")
	}
}

func TestUUIDWireRoundTrip(t *testing.T) {
	u, err := ns.UUIDFromString("4465fcc3-d445-4ee2-bb00-7b39ce2d3cc7")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := u.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if buf.Len() != 16 {
		t.Fatalf("encoded length = %d, want 16", buf.Len())
	}

	got, err := ns.DecodeUUID(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeUUID() error = %v", err)
	}
	if got != u {
		t.Errorf("round trip = %s, want %s", got, u)
	}
}

func TestNilUUID(t *testing.T) {
	if !ns.NilUUID.IsNil() {
		t.Error("NilUUID.IsNil() = false")
	}
	var buf bytes.Buffer
	if err := ns.NilUUID.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), make([]byte, 16)) {
		t.Errorf("NilUUID encodes to %v", buf.Bytes())
	}
}
