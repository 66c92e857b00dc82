package packet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/frame"
)

type sample struct {
	N    int32
	Text string
}

func (*sample) Kind() int16 { return 3 }

func (p *sample) Encode(w *codec.Writer) {
	w.Int32(p.N)
	w.String(p.Text)
}

func (p *sample) Decode(r *codec.Reader) {
	p.N = r.Int32()
	p.Text = r.String()
}

func testCatalogue(compressed bool) *Catalogue {
	return NewCatalogue("test", Entry{
		Kind:       3,
		Name:       "Sample",
		Compressed: compressed,
		New:        func() Message { return &sample{} },
	})
}

func TestCatalogueRoundTrip(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		c := testCatalogue(compressed)
		f, err := c.Encode(&sample{N: -42, Text: "hello"})
		if err != nil {
			t.Fatalf("encode compressed=%v: %v", compressed, err)
		}
		msg, err := c.Decode(f)
		if err != nil {
			t.Fatalf("decode compressed=%v: %v", compressed, err)
		}
		got := msg.(*sample)
		if got.N != -42 || got.Text != "hello" {
			t.Fatalf("compressed=%v got %+v", compressed, got)
		}
	}
}

func TestCompressedPayloadIsGzip(t *testing.T) {
	f, err := testCatalogue(true).Encode(&sample{N: 1, Text: "x"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(f.Payload) < 2 || f.Payload[0] != 0x1f || f.Payload[1] != 0x8b {
		t.Fatalf("expected gzip magic, got % x", f.Payload)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := testCatalogue(false).Decode(frame.Frame{Kind: 99})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	_, err := testCatalogue(false).Decode(frame.Frame{Kind: 3, Payload: []byte{1, 0}})
	if !errors.Is(err, codec.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodeBadCompression(t *testing.T) {
	_, err := testCatalogue(true).Decode(frame.Frame{Kind: 3, Payload: []byte("not gzip")})
	if !errors.Is(err, ErrDecompression) {
		t.Fatalf("expected ErrDecompression, got %v", err)
	}
}

func TestDecodeRejectsOversizedInflation(t *testing.T) {
	bomb, err := Compress(make([]byte, 8*MaxInflatedBytes))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if len(bomb) > frame.DefaultLimits().MaxPayloadBytes {
		t.Fatalf("compressed payload %d does not fit a frame", len(bomb))
	}
	_, err = testCatalogue(true).Decode(frame.Frame{Kind: 3, Payload: bomb})
	if !errors.Is(err, ErrDecompression) || !errors.Is(err, ErrInflatedSize) {
		t.Fatalf("expected inflated size error, got %v", err)
	}
}

func TestDecompressAtLimit(t *testing.T) {
	z, err := Compress(bytes.Repeat([]byte{7}, MaxInflatedBytes))
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	out, err := Decompress(z)
	if err != nil || len(out) != MaxInflatedBytes {
		t.Fatalf("len=%d err=%v", len(out), err)
	}
}

func TestEncodeForeignKind(t *testing.T) {
	c := NewCatalogue("empty")
	if _, err := c.Encode(&sample{}); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
}

func TestDuplicateKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate kind")
		}
	}()
	e := Entry{Kind: 1, Name: "A", New: func() Message { return &sample{} }}
	NewCatalogue("dup", e, e)
}

func TestNameFallsBackToNumber(t *testing.T) {
	c := testCatalogue(false)
	if c.Name(3) != "Sample" {
		t.Fatalf("name=%q", c.Name(3))
	}
	if c.Name(7) != "test(7)" {
		t.Fatalf("fallback name=%q", c.Name(7))
	}
}

func TestUserItemArrayKeepsEmptySlots(t *testing.T) {
	in := []*UserItem{nil, {UniqueID: 9, ItemIndex: 4, Count: 2, Slots: []*UserItem{nil, {UniqueID: 10}}}}
	w := codec.NewWriter()
	WriteUserItemArray(w, in)
	r := codec.NewReader(w.Bytes())
	out := ReadUserItemArray(r)
	if err := r.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("unread bytes: %d", r.Remaining())
	}
	if len(out) != 2 || out[0] != nil || out[1] == nil {
		t.Fatalf("slot layout lost: %+v", out)
	}
	if out[1].UniqueID != 9 || len(out[1].Slots) != 2 || out[1].Slots[0] != nil || out[1].Slots[1].UniqueID != 10 {
		t.Fatalf("nested item mismatch: %+v", out[1])
	}

	again := codec.NewWriter()
	WriteUserItemArray(again, out)
	if !bytes.Equal(again.Bytes(), w.Bytes()) {
		t.Fatalf("re-encode differs")
	}
}

func TestAbsentItemArrayIsNil(t *testing.T) {
	w := codec.NewWriter()
	WriteUserItemArray(w, nil)
	if !bytes.Equal(w.Bytes(), []byte{0}) {
		t.Fatalf("absent array encoding % x", w.Bytes())
	}
	if out := ReadUserItemArray(codec.NewReader(w.Bytes())); out != nil {
		t.Fatalf("expected nil, got %v", out)
	}
}

func TestHostileCountDoesNotAllocate(t *testing.T) {
	w := codec.NewWriter()
	w.Int32(1 << 30)
	r := codec.NewReader(w.Bytes())
	list := ReadUint32List(r)
	if !errors.Is(r.Err(), codec.ErrTruncated) {
		t.Fatalf("expected truncation, got %v", r.Err())
	}
	if cap(list) > 8 {
		t.Fatalf("allocated %d slots for a hostile count", cap(list))
	}
}

func TestUserItemClone(t *testing.T) {
	it := &UserItem{UniqueID: 1, Awake: []uint8{1}, Slots: []*UserItem{{UniqueID: 2}}}
	cp := it.Clone()
	cp.Awake[0] = 9
	cp.Slots[0].UniqueID = 3
	if it.Awake[0] != 1 || it.Slots[0].UniqueID != 2 {
		t.Fatalf("clone aliases original")
	}
	if (*UserItem)(nil).Clone() != nil {
		t.Fatalf("nil clone")
	}
}
