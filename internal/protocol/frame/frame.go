package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderLen covers the u16 total length and the i16 kind.
const HeaderLen = 4

// MaxTotalLen is the largest length a u16 header can declare.
const MaxTotalLen = 0xFFFF

var (
	ErrShortHeader   = errors.New("frame: short header")
	ErrInvalidLength = errors.New("frame: declared length below header size")
	ErrFrameTooLarge = errors.New("frame: frame too large")
	ErrShortBody     = errors.New("frame: short body")
)

// Frame is one complete wire message: [u16 LE total][i16 LE kind][payload].
type Frame struct {
	Kind    int16
	Payload []byte
}

// TotalLen is the value written into the length header.
func (f Frame) TotalLen() int {
	return HeaderLen + len(f.Payload)
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxPayloadBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: MaxTotalLen - HeaderLen,
	}
}

// LengthError reports a declared total length that cannot frame a message.
type LengthError struct {
	Declared uint16
}

func (e LengthError) Error() string {
	return fmt.Sprintf("frame: invalid declared length %d", e.Declared)
}

func (e LengthError) Unwrap() error {
	return ErrInvalidLength
}

func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrShortHeader
		}
		// io.EOF passes through untouched: a clean close between frames.
		return Frame{}, err
	}

	total := binary.LittleEndian.Uint16(head[:])
	if total < HeaderLen {
		return Frame{}, LengthError{Declared: total}
	}
	payloadLen := int(total) - HeaderLen
	if limits.MaxPayloadBytes > 0 && payloadLen > limits.MaxPayloadBytes {
		return Frame{}, ErrFrameTooLarge
	}

	body := make([]byte, int(total)-2)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrShortBody
		}
		return Frame{}, err
	}

	return Frame{
		Kind:    int16(binary.LittleEndian.Uint16(body[0:2])),
		Payload: body[2:],
	}, nil
}

func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	buf, err := Encode(f, limits)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// Encode returns the full wire bytes of f in one buffer so a single Write
// hands the transport a whole frame.
func Encode(f Frame, limits Limits) ([]byte, error) {
	if f.TotalLen() > MaxTotalLen {
		return nil, ErrFrameTooLarge
	}
	if limits.MaxPayloadBytes > 0 && len(f.Payload) > limits.MaxPayloadBytes {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, HeaderLen, f.TotalLen())
	binary.LittleEndian.PutUint16(buf[0:2], uint16(f.TotalLen()))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(f.Kind))
	return append(buf, f.Payload...), nil
}
