package net_structures_test

import (
	"bytes"
	"testing"

	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
)

func TestStringEncode(t *testing.T) {
	tests := []struct {
		name     string
		value    ns.String
		expected []byte
	}{
		{"empty", "", []byte{0x00}},
		{"localhost", "localhost", append([]byte{0x09}, []byte("localhost")...)},
		{"utf8", "héllo", append([]byte{0x06}, []byte("héllo")...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.value.Encode(&buf); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.expected) {
				t.Errorf("Encode() = %v, want %v", buf.Bytes(), tt.expected)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	values := []ns.String{"", "a", "localhost", "Hello, 世界", "en_US"}

	for _, v := range values {
		var buf bytes.Buffer
		if err := v.Encode(&buf); err != nil {
			t.Fatalf("Encode(%q) error = %v", v, err)
		}
		got, err := ns.DecodeString(bytes.NewReader(buf.Bytes()), 32767)
		if err != nil {
			t.Fatalf("DecodeString(%q) error = %v", v, err)
		}
		if got != v {
			t.Errorf("round trip of %q = %q", v, got)
		}
	}
}

func TestStringDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		maxLen int
	}{
		{"negative length", []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0},
		{"truncated payload", []byte{0x05, 'a', 'b'}, 0},
		{"over max length", append([]byte{0x09}, []byte("localhost")...), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ns.DecodeString(bytes.NewReader(tt.input), tt.maxLen); err == nil {
				t.Error("expected error, got none")
			}
		})
	}
}

func TestIdentifierNamespace(t *testing.T) {
	tests := []struct {
		id        ns.Identifier
		namespace string
		path      string
	}{
		{"minecraft:brand", "minecraft", "brand"},
		{"brand", "minecraft", "brand"},
		{"custom:my_channel", "custom", "my_channel"},
	}

	for _, tt := range tests {
		if got := tt.id.Namespace(); got != tt.namespace {
			t.Errorf("Namespace(%q) = %q, want %q", tt.id, got, tt.namespace)
		}
		if got := tt.id.Path(); got != tt.path {
			t.Errorf("Path(%q) = %q, want %q", tt.id, got, tt.path)
		}
	}
}

func TestNewIdentifierDefaultsNamespace(t *testing.T) {
	if got := ns.NewIdentifier("", "brand"); got != "minecraft:brand" {
		t.Errorf("NewIdentifier = %q, want %q", got, "minecraft:brand")
	}
	if got := ns.NewIdentifier("custom", "thing"); got != "custom:thing" {
		t.Errorf("NewIdentifier = %q, want %q", got, "custom:thing")
	}
}
