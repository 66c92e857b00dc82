// Package codec reads and writes the primitive wire types used by packet
// payloads: little-endian fixed-width integers, float32, bools, raw bytes
// and 7-bit length-prefixed UTF-8 text.
package codec

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	ErrTruncated      = errors.New("codec: truncated data")
	ErrVarintOverflow = errors.New("codec: varint overflows 32 bits")
	ErrNegativeLength = errors.New("codec: negative length")
)

// MaxVarintLen is the longest 7-bit encoding of a uint32.
const MaxVarintLen = 5

// AppendVarint appends the 7-bit group encoding of v, least significant
// group first, high bit set on every byte but the last.
func AppendVarint(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Varint decodes one 7-bit encoded value from b and returns it with the
// number of bytes consumed.
func Varint(b []byte) (uint32, int, error) {
	var out uint32
	for i := 0; i < MaxVarintLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrTruncated
		}
		c := b[i]
		if i == MaxVarintLen-1 && c > 0x0f {
			return 0, 0, ErrVarintOverflow
		}
		out |= uint32(c&0x7f) << (7 * i)
		if c&0x80 == 0 {
			return out, i + 1, nil
		}
	}
	return 0, 0, ErrVarintOverflow
}

// Reader consumes a payload. The first failure is sticky: later reads
// return zero values and Err reports the original error.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.err = ErrNegativeLength
		return nil
	}
	if len(r.buf)-r.off < n {
		r.err = ErrTruncated
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Byte() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Int8() int8 {
	return int8(r.Byte())
}

func (r *Reader) Bool() bool {
	return r.Byte() != 0
}

func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) Int16() int16 {
	return int16(r.Uint16())
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (r *Reader) Varint() uint32 {
	if r.err != nil {
		return 0
	}
	v, n, err := Varint(r.buf[r.off:])
	if err != nil {
		r.err = err
		return 0
	}
	r.off += n
	return v
}

// String reads a 7-bit length prefix followed by that many UTF-8 bytes.
func (r *Reader) String() string {
	n := r.Varint()
	if n == 0 {
		return ""
	}
	if uint64(n) > uint64(r.Remaining()) {
		if r.err == nil {
			r.err = ErrTruncated
		}
		return ""
	}
	return string(r.take(int(n)))
}

// Point reads two consecutive int32 values (x, y).
func (r *Reader) Point() (int32, int32) {
	x := r.Int32()
	y := r.Int32()
	return x, y
}

// Writer builds a payload in memory.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) Byte(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) Int8(v int8) {
	w.buf = append(w.buf, byte(v))
}

func (w *Writer) Bool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) Varint(v uint32) {
	w.buf = AppendVarint(w.buf, v)
}

func (w *Writer) String(s string) {
	w.Varint(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *Writer) Point(x, y int32) {
	w.Int32(x)
	w.Int32(y)
}
