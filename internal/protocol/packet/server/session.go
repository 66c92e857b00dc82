package server

import (
	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/packet"
)

// Connected is the first message on a new session.
type Connected struct{}

func (*Connected) Kind() int16 { return int16(KindConnected) }
func (*Connected) Encode(w *codec.Writer) {}
func (*Connected) Decode(r *codec.Reader) {}

// ClientVersion answers the version handshake; Result 1 means accepted.
type ClientVersion struct {
	Result uint8
}

func (*ClientVersion) Kind() int16 { return int16(KindClientVersion) }

func (m *ClientVersion) Encode(w *codec.Writer) { w.Byte(m.Result) }
func (m *ClientVersion) Decode(r *codec.Reader) { m.Result = r.Byte() }

type Disconnect struct {
	Reason uint8
}

func (*Disconnect) Kind() int16 { return int16(KindDisconnect) }

func (m *Disconnect) Encode(w *codec.Writer) { w.Byte(m.Reason) }
func (m *Disconnect) Decode(r *codec.Reader) { m.Reason = r.Byte() }

type KeepAlive struct {
	Time int64
}

func (*KeepAlive) Kind() int16 { return int16(KindKeepAlive) }

func (m *KeepAlive) Encode(w *codec.Writer) { w.Int64(m.Time) }
func (m *KeepAlive) Decode(r *codec.Reader) { m.Time = r.Int64() }

// Login carries a login rejection code.
type Login struct {
	Result uint8
}

func (*Login) Kind() int16 { return int16(KindLogin) }

func (m *Login) Encode(w *codec.Writer) { w.Byte(m.Result) }
func (m *Login) Decode(r *codec.Reader) { m.Result = r.Byte() }

type LoginSuccess struct {
	Characters []packet.SelectInfo
}

func (*LoginSuccess) Kind() int16 { return int16(KindLoginSuccess) }

func (m *LoginSuccess) Encode(w *codec.Writer) { packet.WriteSelectInfos(w, m.Characters) }
func (m *LoginSuccess) Decode(r *codec.Reader) { m.Characters = packet.ReadSelectInfos(r) }

// StartGame answers C_StartGame; Result 4 means the character entered the
// world.
type StartGame struct {
	Result     uint8
	Resolution int32
}

func (*StartGame) Kind() int16 { return int16(KindStartGame) }

func (m *StartGame) Encode(w *codec.Writer) {
	w.Byte(m.Result)
	w.Int32(m.Resolution)
}

func (m *StartGame) Decode(r *codec.Reader) {
	m.Result = r.Byte()
	m.Resolution = r.Int32()
}

type LogOutSuccess struct {
	Characters []packet.SelectInfo
}

func (*LogOutSuccess) Kind() int16 { return int16(KindLogOutSuccess) }

func (m *LogOutSuccess) Encode(w *codec.Writer) { packet.WriteSelectInfos(w, m.Characters) }
func (m *LogOutSuccess) Decode(r *codec.Reader) { m.Characters = packet.ReadSelectInfos(r) }
