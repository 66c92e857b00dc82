package packet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/frame"
	"github.com/klauspost/compress/gzip"
)

var (
	ErrUnknownKind   = errors.New("packet: unknown kind")
	ErrKindMismatch  = errors.New("packet: message kind not in catalogue")
	ErrDecompression = errors.New("packet: payload decompression failed")
	ErrInflatedSize  = errors.New("packet: inflated payload too large")
)

// MaxInflatedBytes caps what a compressed entry may expand to. Real goods
// lists inflate to a few KiB.
const MaxInflatedBytes = 1 << 20

// Message is one decoded kind-specific field set.
type Message interface {
	Kind() int16
	Encode(w *codec.Writer)
	Decode(r *codec.Reader)
}

// Entry is one catalogue row.
type Entry struct {
	Kind       int16
	Name       string
	Compressed bool
	New        func() Message
}

// Catalogue maps a numeric kind to its decode/encode routine. It is built
// once and read-only afterwards.
type Catalogue struct {
	space   string
	entries map[int16]Entry
}

// NewCatalogue builds a dispatch table. Duplicate kinds are a programming
// error and panic.
func NewCatalogue(space string, entries ...Entry) *Catalogue {
	c := &Catalogue{space: space, entries: make(map[int16]Entry, len(entries))}
	for _, e := range entries {
		if _, dup := c.entries[e.Kind]; dup {
			panic(fmt.Sprintf("packet: duplicate %s kind %d (%s)", space, e.Kind, e.Name))
		}
		c.entries[e.Kind] = e
	}
	return c
}

func (c *Catalogue) Space() string {
	return c.space
}

func (c *Catalogue) Lookup(kind int16) (Entry, bool) {
	e, ok := c.entries[kind]
	return e, ok
}

// Name returns the registered name of kind, or a numeric placeholder.
func (c *Catalogue) Name(kind int16) string {
	if e, ok := c.entries[kind]; ok {
		return e.Name
	}
	return fmt.Sprintf("%s(%d)", c.space, kind)
}

// Kinds lists registered kinds in ascending order.
func (c *Catalogue) Kinds() []int16 {
	out := make([]int16, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Decode turns one frame into a message. An unregistered kind returns
// ErrUnknownKind, which callers treat as ignorable.
func (c *Catalogue) Decode(f frame.Frame) (Message, error) {
	e, ok := c.entries[f.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s kind=%d", ErrUnknownKind, c.space, f.Kind)
	}
	payload := f.Payload
	if e.Compressed {
		raw, err := Decompress(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecompression, e.Name, err)
		}
		payload = raw
	}
	msg := e.New()
	r := codec.NewReader(payload)
	msg.Decode(r)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("packet: decode %s: %w", e.Name, err)
	}
	return msg, nil
}

// Encode turns a message into a frame, compressing when the entry says so.
func (c *Catalogue) Encode(msg Message) (frame.Frame, error) {
	e, ok := c.entries[msg.Kind()]
	if !ok {
		return frame.Frame{}, fmt.Errorf("%w: %s kind=%d", ErrKindMismatch, c.space, msg.Kind())
	}
	w := codec.NewWriter()
	msg.Encode(w)
	payload := w.Bytes()
	if e.Compressed {
		z, err := Compress(payload)
		if err != nil {
			return frame.Frame{}, err
		}
		payload = z
	}
	return frame.Frame{Kind: e.Kind, Payload: payload}, nil
}

func Compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress inflates b, failing with ErrInflatedSize past MaxInflatedBytes.
func Decompress(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, MaxInflatedBytes+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxInflatedBytes {
		return nil, ErrInflatedSize
	}
	return out, nil
}
