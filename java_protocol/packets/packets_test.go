package packets_test

import (
	"bytes"
	"testing"

	"github.com/Tnze/go-mc/nbt"

	jp "github.com/go-mclib/proxy/java_protocol"
	ns "github.com/go-mclib/proxy/java_protocol/net_structures"
	ps "github.com/go-mclib/proxy/java_protocol/packets"
)

// decode runs one payload through the directory the way the relay does.
func decode(t *testing.T, state jp.State, bound jp.Bound, id ns.VarInt, payload []byte) jp.Packet {
	t.Helper()
	p, err := ps.Directory.Decode(jp.NewSession(), state, bound, id, payload)
	if err != nil {
		t.Fatalf("Decode(%v/%v %#x) error = %v", state, bound, int32(id), err)
	}
	return p
}

// render serializes a typed packet's payload.
func render(t *testing.T, p jp.Packet) []byte {
	t.Helper()
	payload, err := jp.RenderPacket(p)
	if err != nil {
		t.Fatalf("RenderPacket(%T) error = %v", p, err)
	}
	return payload
}

// roundTrip asserts decode(render(p)) re-renders to identical bytes.
func roundTrip(t *testing.T, p jp.Packet) {
	t.Helper()
	payload := render(t, p)
	decoded := decode(t, p.State(), p.Bound(), p.ID(), payload)
	if got := render(t, decoded); !bytes.Equal(got, payload) {
		t.Errorf("%T round trip mismatch:\n got %v\nwant %v", p, got, payload)
	}
}

// The classic localhost login handshake, as one full wire frame.
var handshakeFrame = []byte{
	0x10,       // length 16
	0x00,       // packet ID 0
	0xF5, 0x05, // protocol 757
	0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't',
	0x63, 0xDD, // port 25565
	0x02, // next state: login
}

func TestHandshakeGoldenFrame(t *testing.T) {
	session := jp.NewSession()

	id, payload, err := jp.ReadFrame(bytes.NewReader(handshakeFrame), session)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if id != 0x00 {
		t.Fatalf("packet ID = %#x, want 0x00", int32(id))
	}

	p := decode(t, jp.StateHandshake, jp.C2S, id, payload)
	hs, ok := p.(*ps.Handshake)
	if !ok {
		t.Fatalf("decoded %T, want *Handshake", p)
	}
	if hs.Protocol != 757 {
		t.Errorf("protocol = %d, want 757", hs.Protocol)
	}
	if hs.Address != "localhost" {
		t.Errorf("address = %q, want localhost", string(hs.Address))
	}
	if hs.Port != 25565 {
		t.Errorf("port = %d, want 25565", hs.Port)
	}
	if hs.NextState != ps.IntentLogin {
		t.Errorf("next state = %d, want 2", hs.NextState)
	}

	var buf bytes.Buffer
	if err := jp.WritePacket(&buf, session, hs); err != nil {
		t.Fatalf("WritePacket() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), handshakeFrame) {
		t.Errorf("re-rendered frame differs:\n got %v\nwant %v", buf.Bytes(), handshakeFrame)
	}
}

func TestHandshakeInvariants(t *testing.T) {
	tests := []struct {
		name string
		p    ps.Handshake
	}{
		{"bad next state", ps.Handshake{Protocol: 757, Address: "localhost", Port: 25565, NextState: 3}},
		{"zero port", ps.Handshake{Protocol: 757, Address: "localhost", Port: 0, NextState: 1}},
		{"empty address", ps.Handshake{Protocol: 757, Address: "", Port: 25565, NextState: 1}},
		{"zero protocol", ps.Handshake{Protocol: 0, Address: "localhost", Port: 25565, NextState: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := render(t, &tt.p)
			if _, err := ps.Directory.Decode(jp.NewSession(), jp.StateHandshake, jp.C2S, 0x00, payload); err == nil {
				t.Error("expected invariant violation, got none")
			}
		})
	}
}

const canonicalStatusJSON = `{"version":{"name":"Minecraft Server","protocol":757},` +
	`"players":{"max":20,"online":0,"sample":[]},"description":{"text":""}}`

func TestStatusResponseCanonicalJSON(t *testing.T) {
	var resp ps.StatusResponse
	resp.Status.Version.Name = "Minecraft Server"
	resp.Status.Version.Protocol = 757
	resp.Status.Players.Max = 20

	payload := render(t, &resp)

	want := ns.NewWriter()
	if err := want.WriteString(ns.String(canonicalStatusJSON)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(payload, want.Bytes()) {
		t.Errorf("rendered JSON:\n got %s\nwant %s", payload, want.Bytes())
	}

	// and parsing the canonical document re-renders identically
	decoded := decode(t, jp.StateStatus, jp.S2C, 0x00, payload)
	if got := render(t, decoded); !bytes.Equal(got, payload) {
		t.Errorf("canonical JSON did not survive the parse/render loop:\n got %s", got)
	}
}

func TestStatusPingPongEcho(t *testing.T) {
	ping := &ps.StatusPing{Value: 12345}
	pong := &ps.StatusPong{Value: 12345}

	pingPayload := render(t, ping)
	pongPayload := render(t, pong)

	if len(pingPayload) != 8 || len(pongPayload) != 8 {
		t.Fatalf("payload sizes = %d, %d, want 8", len(pingPayload), len(pongPayload))
	}
	if !bytes.Equal(pingPayload, pongPayload) {
		t.Errorf("pong payload %v does not echo ping payload %v", pongPayload, pingPayload)
	}
}

func heightmapsNBT(t *testing.T) ns.NBT {
	t.Helper()
	raw := []byte{
		0x0a, 0x00, 0x00,
		0x00, // empty compound
	}
	n, err := ns.DecodeNBT(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestPacketRoundTrips(t *testing.T) {
	uuid, err := ns.UUIDFromString("4465fcc3-d445-4ee2-bb00-7b39ce2d3cc7")
	if err != nil {
		t.Fatal(err)
	}

	join := &ps.JoinGame{
		EntityID:            1,
		GameMode:            0,
		PreviousGameMode:    -1,
		WorldNames:          []ns.Identifier{"minecraft:overworld"},
		DimensionCodec:      heightmapsNBT(t),
		Dimension:           heightmapsNBT(t),
		WorldName:           "minecraft:overworld",
		HashedSeed:          0x0123456789abcdef,
		MaxPlayers:          20,
		ViewDistance:        10,
		SimulationDistance:  10,
		EnableRespawnScreen: true,
	}

	packets := []jp.Packet{
		&ps.Handshake{Protocol: 757, Address: "localhost", Port: 25565, NextState: 1},
		&ps.StatusRequest{},
		&ps.StatusPing{Value: -1},
		&ps.StatusPong{Value: 1638316800000},
		&ps.LoginStart{Name: "foobar"},
		&ps.LoginDisconnect{Reason: `{"text":"nope"}`},
		&ps.EncryptionRequest{ServerID: "", PublicKey: []byte{1, 2, 3}, VerifyToken: []byte{4, 5, 6, 7}},
		&ps.LoginSuccess{UUID: uuid, Name: "foobar"},
		&ps.SetCompression{Threshold: 256},
		&ps.LoginPluginRequest{MessageID: 1, Channel: "custom:probe", Data: []byte{9, 9}},
		join,
		&ps.SpawnEntity{
			EntityID: 7, ObjectUUID: uuid, Type: 37,
			X: 1.5, Y: 64, Z: -7.25,
			Pitch: 0, Yaw: 64, Data: 0,
			VelocityX: 8000, VelocityY: -1, VelocityZ: 0,
		},
		&ps.ChangeDifficulty{Difficulty: 2, Locked: true},
		&ps.DeclareCommands{Tail: []byte{0x00}},
		&ps.ClientboundPluginMessage{Channel: "minecraft:brand", Data: []byte("vanilla")},
		&ps.ClientboundKeepAlive{KeepAliveID: -42},
		&ps.ChunkData{ChunkX: -3, ChunkZ: 12, Heightmaps: heightmapsNBT(t), Tail: []byte{1, 2, 3}},
		&ps.UpdateLight{ChunkX: -3, ChunkZ: 12, Tail: []byte{4, 5}},
		&ps.PlayerPositionAndLook{X: 0.5, Y: 64, Z: 0.5, Yaw: 90, TeleportID: 1},
		&ps.SpawnPosition{Location: ns.Position{X: 8, Y: 64, Z: -8}, Angle: 0},
		&ps.EntityMetadata{EntityID: 7, Tail: []byte{0xff}},
		&ps.EntityProperties{EntityID: 7, Tail: []byte{0x00}},
		&ps.DeclareRecipes{Tail: []byte{0x00}},
		&ps.Tags{Tail: []byte{0x00, 0x00, 0x00, 0x00, 0x00}},
		&ps.TeleportConfirm{TeleportID: 1},
		&ps.ClientSettings{
			Locale: "en_us", ViewDistance: 10, ChatMode: 0, ChatColors: true,
			DisplayedSkinParts: 0x7f, MainHand: 1,
			EnableTextFiltering: true, AllowServerListings: true,
		},
		&ps.ServerboundPluginMessage{Channel: "minecraft:brand", Data: []byte("vanilla")},
		&ps.ServerboundKeepAlive{KeepAliveID: -42},
		&ps.PlayerPosition{X: 1, FeetY: 2, Z: 3, OnGround: true},
		&ps.PlayerPositionAndRotation{X: 1, FeetY: 2, Z: 3, Yaw: 180, Pitch: -90, OnGround: false},
	}

	for _, p := range packets {
		roundTrip(t, p)
	}
}

func TestClientSettingsGoldenBytes(t *testing.T) {
	p := &ps.ClientSettings{
		Locale: "en_us", ViewDistance: 10, ChatMode: 0, ChatColors: true,
		DisplayedSkinParts: 0x7f, MainHand: 1,
		EnableTextFiltering: true, AllowServerListings: true,
	}
	want := []byte{0x05, 'e', 'n', '_', 'u', 's', 0x0a, 0x00, 0x01, 0x7f, 0x01, 0x01, 0x01}
	if got := render(t, p); !bytes.Equal(got, want) {
		t.Errorf("payload = %v, want %v", got, want)
	}
}

func TestClientSettingsInvariants(t *testing.T) {
	base := ps.ClientSettings{
		Locale: "en_us", ViewDistance: 10, ChatMode: 0, ChatColors: true,
		DisplayedSkinParts: 0x7f, MainHand: 1,
	}

	mutations := map[string]func(*ps.ClientSettings){
		"chat mode":     func(p *ps.ClientSettings) { p.ChatMode = 3 },
		"skin parts":    func(p *ps.ClientSettings) { p.DisplayedSkinParts = 0xff },
		"main hand":     func(p *ps.ClientSettings) { p.MainHand = 2 },
		"view distance": func(p *ps.ClientSettings) { p.ViewDistance = 1 },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			payload := render(t, &p)
			if _, err := ps.Directory.Decode(jp.NewSession(), jp.StatePlay, jp.C2S, 0x05, payload); err == nil {
				t.Error("expected invariant violation, got none")
			}
		})
	}
}

func TestJoinGameCarriesDimensionCodec(t *testing.T) {
	// a dimension codec with actual content must survive the round trip
	var codec ns.NBT
	codecBytes := func() []byte {
		var buf bytes.Buffer
		enc := nbt.NewEncoder(&buf)
		if err := enc.Encode(map[string]any{"piglin_safe": byte(0)}, ""); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}()
	codec, err := ns.DecodeNBT(bytes.NewReader(codecBytes))
	if err != nil {
		t.Fatal(err)
	}

	join := &ps.JoinGame{
		EntityID:       1,
		WorldNames:     []ns.Identifier{"minecraft:overworld", "minecraft:the_nether"},
		DimensionCodec: codec,
		Dimension:      codec,
		WorldName:      "minecraft:overworld",
		MaxPlayers:     20,
		ViewDistance:   10,
	}
	payload := render(t, join)

	decoded := decode(t, jp.StatePlay, jp.S2C, 0x26, payload)
	got, ok := decoded.(*ps.JoinGame)
	if !ok {
		t.Fatalf("decoded %T", decoded)
	}
	if len(got.WorldNames) != 2 {
		t.Errorf("world names = %v", got.WorldNames)
	}

	var dim struct {
		PiglinSafe byte `nbt:"piglin_safe"`
	}
	if err := got.Dimension.DecodeTo(&dim); err != nil {
		t.Fatalf("DecodeTo() error = %v", err)
	}
}

func TestExhaustiveConsumption(t *testing.T) {
	// every fixed-shape parser must reject one extra byte
	packets := []jp.Packet{
		&ps.Handshake{Protocol: 757, Address: "localhost", Port: 25565, NextState: 1},
		&ps.StatusRequest{},
		&ps.StatusPing{Value: 1},
		&ps.StatusPong{Value: 1},
		&ps.LoginStart{Name: "foobar"},
		&ps.SetCompression{Threshold: 256},
		&ps.ClientboundKeepAlive{KeepAliveID: 0},
		&ps.TeleportConfirm{TeleportID: 0},
		&ps.ClientSettings{
			Locale: "en_us", ViewDistance: 10, ChatMode: 0,
			DisplayedSkinParts: 0x7f, MainHand: 1,
		},
	}

	for _, p := range packets {
		payload := append(render(t, p), 0xEE)
		if _, err := ps.Directory.Decode(jp.NewSession(), p.State(), p.Bound(), p.ID(), payload); err == nil {
			t.Errorf("%T accepted a trailing byte", p)
		}
	}
}

func TestDirectoryDeterminism(t *testing.T) {
	// building the directory panics on duplicates; here we pin the expected
	// table sizes so an accidental removal shows up too
	counts := map[string]int{}
	for _, state := range []jp.State{jp.StateHandshake, jp.StateStatus, jp.StateLogin, jp.StatePlay} {
		for _, bound := range []jp.Bound{jp.C2S, jp.S2C} {
			ids := ps.Directory.IDs(state, bound)
			seen := map[ns.VarInt]bool{}
			for _, id := range ids {
				if seen[id] {
					t.Errorf("duplicate ID %#x in %v/%v", int32(id), state, bound)
				}
				seen[id] = true
			}
			counts[state.String()+"/"+bound.String()] = len(ids)
		}
	}

	want := map[string]int{
		"handshake/serverbound": 1,
		"handshake/clientbound": 0,
		"status/serverbound":    2,
		"status/clientbound":    2,
		"login/serverbound":     1,
		"login/clientbound":     5,
		"play/serverbound":      6,
		"play/clientbound":      14,
	}
	for key, n := range want {
		if counts[key] != n {
			t.Errorf("%s has %d entries, want %d", key, counts[key], n)
		}
	}
}

func TestUnknownPlayPayloadPreserved(t *testing.T) {
	payload := []byte{0x13, 0x37, 0xde, 0xad, 0xbe, 0xef}
	p, err := ps.Directory.Decode(jp.NewSession(), jp.StatePlay, jp.S2C, 0x50, payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	rendered, err := jp.RenderPacket(p)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rendered, payload) {
		t.Errorf("relayed payload = %v, want %v", rendered, payload)
	}
}
