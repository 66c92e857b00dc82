package client

import (
	"bytes"
	"testing"

	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/packet"
)

func TestCatalogueRoundTrip(t *testing.T) {
	c := Catalogue()
	msgs := []packet.Message{
		&ClientVersion{VersionHash: []byte{0xde, 0xad, 0xbe, 0xef}},
		&KeepAlive{Time: 1700000000123},
		&Login{AccountID: "acct", Password: "pw"},
		&StartGame{CharacterIndex: 7},
		&Walk{Direction: 3},
		&Chat{Message: "hi all"},
		&EquipItem{Grid: 1, UniqueID: 1 << 40, To: 5},
		&RangeAttack{Direction: 2, Location: packet.Point{X: 1, Y: 2}, TargetID: 9, TargetLocation: packet.Point{X: 3, Y: 4}},
		&Magic{ObjectID: 1, Spell: 2, Direction: 3, TargetID: 4, Location: packet.Point{X: 5, Y: 6}, SpellTargetLock: true},
		&CallNPC{ObjectID: 6, Key: "@main"},
		&BuyItem{ItemIndex: 12, Count: 5, PanelType: 1},
	}
	for _, msg := range msgs {
		f, err := c.Encode(msg)
		if err != nil {
			t.Fatalf("%s encode: %v", Kind(msg.Kind()), err)
		}
		out, err := c.Decode(f)
		if err != nil {
			t.Fatalf("%s decode: %v", Kind(msg.Kind()), err)
		}
		w1, w2 := codec.NewWriter(), codec.NewWriter()
		msg.Encode(w1)
		out.Encode(w2)
		if !bytes.Equal(w1.Bytes(), w2.Bytes()) {
			t.Fatalf("%s fields changed across round trip", Kind(msg.Kind()))
		}
	}
}

func TestClientVersionLayout(t *testing.T) {
	f, err := Catalogue().Encode(&ClientVersion{VersionHash: []byte{1, 2}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{2, 0, 0, 0, 1, 2}
	if f.Kind != 0 || !bytes.Equal(f.Payload, want) {
		t.Fatalf("kind=%d payload=% x", f.Kind, f.Payload)
	}
}

func TestChatCarriesEmptyLinkedItems(t *testing.T) {
	f, err := Catalogue().Encode(&Chat{Message: "a"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{1, 'a', 0, 0, 0, 0}
	if !bytes.Equal(f.Payload, want) {
		t.Fatalf("payload=% x", f.Payload)
	}
}

func TestEmptyMessagesHaveNoPayload(t *testing.T) {
	for _, msg := range []packet.Message{&Disconnect{}, &LogOut{}, &PickUp{}, &TownRevive{}} {
		f, err := Catalogue().Encode(msg)
		if err != nil {
			t.Fatalf("%s: %v", Kind(msg.Kind()), err)
		}
		if len(f.Payload) != 0 {
			t.Fatalf("%s payload % x", Kind(msg.Kind()), f.Payload)
		}
	}
}
