package client

import (
	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/packet"
)

// ClientVersion opens the handshake with the client executable's hash.
type ClientVersion struct {
	VersionHash []byte
}

func (*ClientVersion) Kind() int16 { return int16(KindClientVersion) }

func (m *ClientVersion) Encode(w *codec.Writer) { packet.WriteByteList(w, m.VersionHash) }
func (m *ClientVersion) Decode(r *codec.Reader) { m.VersionHash = packet.ReadByteList(r) }

type Disconnect struct{}

func (*Disconnect) Kind() int16 { return int16(KindDisconnect) }
func (*Disconnect) Encode(w *codec.Writer) {}
func (*Disconnect) Decode(r *codec.Reader) {}

// KeepAlive carries the sender's clock in unix milliseconds.
type KeepAlive struct {
	Time int64
}

func (*KeepAlive) Kind() int16 { return int16(KindKeepAlive) }

func (m *KeepAlive) Encode(w *codec.Writer) { w.Int64(m.Time) }
func (m *KeepAlive) Decode(r *codec.Reader) { m.Time = r.Int64() }

type Login struct {
	AccountID string
	Password  string
}

func (*Login) Kind() int16 { return int16(KindLogin) }

func (m *Login) Encode(w *codec.Writer) {
	w.String(m.AccountID)
	w.String(m.Password)
}

func (m *Login) Decode(r *codec.Reader) {
	m.AccountID = r.String()
	m.Password = r.String()
}

type NewCharacter struct {
	Name   string
	Gender uint8
	Class  uint8
}

func (*NewCharacter) Kind() int16 { return int16(KindNewCharacter) }

func (m *NewCharacter) Encode(w *codec.Writer) {
	w.String(m.Name)
	w.Byte(m.Gender)
	w.Byte(m.Class)
}

func (m *NewCharacter) Decode(r *codec.Reader) {
	m.Name = r.String()
	m.Gender = r.Byte()
	m.Class = r.Byte()
}

type DeleteCharacter struct {
	CharacterIndex int32
}

func (*DeleteCharacter) Kind() int16 { return int16(KindDeleteCharacter) }

func (m *DeleteCharacter) Encode(w *codec.Writer) { w.Int32(m.CharacterIndex) }
func (m *DeleteCharacter) Decode(r *codec.Reader) { m.CharacterIndex = r.Int32() }

type StartGame struct {
	CharacterIndex int32
}

func (*StartGame) Kind() int16 { return int16(KindStartGame) }

func (m *StartGame) Encode(w *codec.Writer) { w.Int32(m.CharacterIndex) }
func (m *StartGame) Decode(r *codec.Reader) { m.CharacterIndex = r.Int32() }

type LogOut struct{}

func (*LogOut) Kind() int16 { return int16(KindLogOut) }
func (*LogOut) Encode(w *codec.Writer) {}
func (*LogOut) Decode(r *codec.Reader) {}

type Turn struct {
	Direction uint8
}

func (*Turn) Kind() int16 { return int16(KindTurn) }

func (m *Turn) Encode(w *codec.Writer) { w.Byte(m.Direction) }
func (m *Turn) Decode(r *codec.Reader) { m.Direction = r.Byte() }

type Walk struct {
	Direction uint8
}

func (*Walk) Kind() int16 { return int16(KindWalk) }

func (m *Walk) Encode(w *codec.Writer) { w.Byte(m.Direction) }
func (m *Walk) Decode(r *codec.Reader) { m.Direction = r.Byte() }

type Run struct {
	Direction uint8
}

func (*Run) Kind() int16 { return int16(KindRun) }

func (m *Run) Encode(w *codec.Writer) { w.Byte(m.Direction) }
func (m *Run) Decode(r *codec.Reader) { m.Direction = r.Byte() }

// Chat sends a chat line. Linked items are not supported and always go out
// as an empty list.
type Chat struct {
	Message string
}

func (*Chat) Kind() int16 { return int16(KindChat) }

func (m *Chat) Encode(w *codec.Writer) {
	w.String(m.Message)
	w.Int32(0)
}

func (m *Chat) Decode(r *codec.Reader) {
	m.Message = r.String()
	_ = r.Int32()
}

type MoveItem struct {
	Grid uint8
	From int32
	To   int32
}

func (*MoveItem) Kind() int16 { return int16(KindMoveItem) }

func (m *MoveItem) Encode(w *codec.Writer) {
	w.Byte(m.Grid)
	w.Int32(m.From)
	w.Int32(m.To)
}

func (m *MoveItem) Decode(r *codec.Reader) {
	m.Grid = r.Byte()
	m.From = r.Int32()
	m.To = r.Int32()
}

type EquipItem struct {
	Grid     uint8
	UniqueID uint64
	To       int32
}

func (*EquipItem) Kind() int16 { return int16(KindEquipItem) }

func (m *EquipItem) Encode(w *codec.Writer) {
	w.Byte(m.Grid)
	w.Uint64(m.UniqueID)
	w.Int32(m.To)
}

func (m *EquipItem) Decode(r *codec.Reader) {
	m.Grid = r.Byte()
	m.UniqueID = r.Uint64()
	m.To = r.Int32()
}

type UseItem struct {
	UniqueID uint64
	Grid     uint8
}

func (*UseItem) Kind() int16 { return int16(KindUseItem) }

func (m *UseItem) Encode(w *codec.Writer) {
	w.Uint64(m.UniqueID)
	w.Byte(m.Grid)
}

func (m *UseItem) Decode(r *codec.Reader) {
	m.UniqueID = r.Uint64()
	m.Grid = r.Byte()
}

type DropItem struct {
	UniqueID      uint64
	Count         uint16
	HeroInventory bool
}

func (*DropItem) Kind() int16 { return int16(KindDropItem) }

func (m *DropItem) Encode(w *codec.Writer) {
	w.Uint64(m.UniqueID)
	w.Uint16(m.Count)
	w.Bool(m.HeroInventory)
}

func (m *DropItem) Decode(r *codec.Reader) {
	m.UniqueID = r.Uint64()
	m.Count = r.Uint16()
	m.HeroInventory = r.Bool()
}

type DropGold struct {
	Amount uint32
}

func (*DropGold) Kind() int16 { return int16(KindDropGold) }

func (m *DropGold) Encode(w *codec.Writer) { w.Uint32(m.Amount) }
func (m *DropGold) Decode(r *codec.Reader) { m.Amount = r.Uint32() }

type PickUp struct{}

func (*PickUp) Kind() int16 { return int16(KindPickUp) }
func (*PickUp) Encode(w *codec.Writer) {}
func (*PickUp) Decode(r *codec.Reader) {}

type Attack struct {
	Direction uint8
	Spell     uint8
}

func (*Attack) Kind() int16 { return int16(KindAttack) }

func (m *Attack) Encode(w *codec.Writer) {
	w.Byte(m.Direction)
	w.Byte(m.Spell)
}

func (m *Attack) Decode(r *codec.Reader) {
	m.Direction = r.Byte()
	m.Spell = r.Byte()
}

type RangeAttack struct {
	Direction      uint8
	Location       packet.Point
	TargetID       uint32
	TargetLocation packet.Point
}

func (*RangeAttack) Kind() int16 { return int16(KindRangeAttack) }

func (m *RangeAttack) Encode(w *codec.Writer) {
	w.Byte(m.Direction)
	m.Location.Write(w)
	w.Uint32(m.TargetID)
	m.TargetLocation.Write(w)
}

func (m *RangeAttack) Decode(r *codec.Reader) {
	m.Direction = r.Byte()
	m.Location = packet.ReadPoint(r)
	m.TargetID = r.Uint32()
	m.TargetLocation = packet.ReadPoint(r)
}

type Magic struct {
	ObjectID        uint32
	Spell           uint8
	Direction       uint8
	TargetID        uint32
	Location        packet.Point
	SpellTargetLock bool
}

func (*Magic) Kind() int16 { return int16(KindMagic) }

func (m *Magic) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.Byte(m.Spell)
	w.Byte(m.Direction)
	w.Uint32(m.TargetID)
	m.Location.Write(w)
	w.Bool(m.SpellTargetLock)
}

func (m *Magic) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Spell = r.Byte()
	m.Direction = r.Byte()
	m.TargetID = r.Uint32()
	m.Location = packet.ReadPoint(r)
	m.SpellTargetLock = r.Bool()
}

// CallNPC opens or advances an NPC dialog; Key "@main" opens the first page.
type CallNPC struct {
	ObjectID uint32
	Key      string
}

func (*CallNPC) Kind() int16 { return int16(KindCallNPC) }

func (m *CallNPC) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.String(m.Key)
}

func (m *CallNPC) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Key = r.String()
}

type BuyItem struct {
	ItemIndex uint64
	Count     uint16
	PanelType uint8
}

func (*BuyItem) Kind() int16 { return int16(KindBuyItem) }

func (m *BuyItem) Encode(w *codec.Writer) {
	w.Uint64(m.ItemIndex)
	w.Uint16(m.Count)
	w.Byte(m.PanelType)
}

func (m *BuyItem) Decode(r *codec.Reader) {
	m.ItemIndex = r.Uint64()
	m.Count = r.Uint16()
	m.PanelType = r.Byte()
}

type SellItem struct {
	UniqueID uint64
	Count    uint16
}

func (*SellItem) Kind() int16 { return int16(KindSellItem) }

func (m *SellItem) Encode(w *codec.Writer) {
	w.Uint64(m.UniqueID)
	w.Uint16(m.Count)
}

func (m *SellItem) Decode(r *codec.Reader) {
	m.UniqueID = r.Uint64()
	m.Count = r.Uint16()
}

type TownRevive struct{}

func (*TownRevive) Kind() int16 { return int16(KindTownRevive) }
func (*TownRevive) Encode(w *codec.Writer) {}
func (*TownRevive) Decode(r *codec.Reader) {}
