package server

import (
	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/packet"
)

// ObjectPlayer announces another player entering view.
type ObjectPlayer struct {
	ObjectID         uint32
	Name             string
	GuildName        string
	GuildRankName    string
	NameColour       int32
	Class            uint8
	Gender           uint8
	Level            uint16
	Location         packet.Point
	Direction        uint8
	Hair             uint8
	Light            uint8
	Weapon           int16
	WeaponEffect     int16
	Armour           int16
	Poison           uint16
	Dead             bool
	Hidden           bool
	Effect           uint8
	WingEffect       uint8
	Extra            bool
	MountType        int16
	RidingMount      bool
	Fishing          bool
	TransformType    int16
	ElementOrbEffect uint32
	ElementOrbLevel  uint32
	ElementOrbMax    uint32
	Buffs            []uint8
	LevelEffects     uint16
}

func (*ObjectPlayer) Kind() int16 { return int16(KindObjectPlayer) }

func (m *ObjectPlayer) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.String(m.Name)
	w.String(m.GuildName)
	w.String(m.GuildRankName)
	w.Int32(m.NameColour)
	w.Byte(m.Class)
	w.Byte(m.Gender)
	w.Uint16(m.Level)
	m.Location.Write(w)
	w.Byte(m.Direction)
	w.Byte(m.Hair)
	w.Byte(m.Light)
	w.Int16(m.Weapon)
	w.Int16(m.WeaponEffect)
	w.Int16(m.Armour)
	w.Uint16(m.Poison)
	w.Bool(m.Dead)
	w.Bool(m.Hidden)
	w.Byte(m.Effect)
	w.Byte(m.WingEffect)
	w.Bool(m.Extra)
	w.Int16(m.MountType)
	w.Bool(m.RidingMount)
	w.Bool(m.Fishing)
	w.Int16(m.TransformType)
	w.Uint32(m.ElementOrbEffect)
	w.Uint32(m.ElementOrbLevel)
	w.Uint32(m.ElementOrbMax)
	packet.WriteByteList(w, m.Buffs)
	w.Uint16(m.LevelEffects)
}

func (m *ObjectPlayer) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Name = r.String()
	m.GuildName = r.String()
	m.GuildRankName = r.String()
	m.NameColour = r.Int32()
	m.Class = r.Byte()
	m.Gender = r.Byte()
	m.Level = r.Uint16()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
	m.Hair = r.Byte()
	m.Light = r.Byte()
	m.Weapon = r.Int16()
	m.WeaponEffect = r.Int16()
	m.Armour = r.Int16()
	m.Poison = r.Uint16()
	m.Dead = r.Bool()
	m.Hidden = r.Bool()
	m.Effect = r.Byte()
	m.WingEffect = r.Byte()
	m.Extra = r.Bool()
	m.MountType = r.Int16()
	m.RidingMount = r.Bool()
	m.Fishing = r.Bool()
	m.TransformType = r.Int16()
	m.ElementOrbEffect = r.Uint32()
	m.ElementOrbLevel = r.Uint32()
	m.ElementOrbMax = r.Uint32()
	m.Buffs = packet.ReadByteList(r)
	m.LevelEffects = r.Uint16()
}

type ObjectMonster struct {
	ObjectID          uint32
	Name              string
	NameColour        int32
	Location          packet.Point
	Image             uint16
	Direction         uint8
	Effect            uint8
	AI                uint8
	Light             uint8
	Dead              bool
	Skeleton          bool
	Poison            uint16
	Hidden            bool
	ShockTime         int64
	BindingShotCenter bool
	Extra             bool
	ExtraByte         uint8
	MasterObjectID    uint32
	Rarity            uint8
	Buffs             []uint8
}

func (*ObjectMonster) Kind() int16 { return int16(KindObjectMonster) }

func (m *ObjectMonster) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.String(m.Name)
	w.Int32(m.NameColour)
	m.Location.Write(w)
	w.Uint16(m.Image)
	w.Byte(m.Direction)
	w.Byte(m.Effect)
	w.Byte(m.AI)
	w.Byte(m.Light)
	w.Bool(m.Dead)
	w.Bool(m.Skeleton)
	w.Uint16(m.Poison)
	w.Bool(m.Hidden)
	w.Int64(m.ShockTime)
	w.Bool(m.BindingShotCenter)
	w.Bool(m.Extra)
	w.Byte(m.ExtraByte)
	w.Uint32(m.MasterObjectID)
	w.Byte(m.Rarity)
	packet.WriteByteList(w, m.Buffs)
}

func (m *ObjectMonster) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Name = r.String()
	m.NameColour = r.Int32()
	m.Location = packet.ReadPoint(r)
	m.Image = r.Uint16()
	m.Direction = r.Byte()
	m.Effect = r.Byte()
	m.AI = r.Byte()
	m.Light = r.Byte()
	m.Dead = r.Bool()
	m.Skeleton = r.Bool()
	m.Poison = r.Uint16()
	m.Hidden = r.Bool()
	m.ShockTime = r.Int64()
	m.BindingShotCenter = r.Bool()
	m.Extra = r.Bool()
	m.ExtraByte = r.Byte()
	m.MasterObjectID = r.Uint32()
	m.Rarity = r.Byte()
	m.Buffs = packet.ReadByteList(r)
}

type ObjectNPC struct {
	ObjectID   uint32
	Name       string
	NameColour int32
	Image      uint16
	Colour     int32
	Location   packet.Point
	Direction  uint8
	QuestIDs   []int32
}

func (*ObjectNPC) Kind() int16 { return int16(KindObjectNPC) }

func (m *ObjectNPC) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.String(m.Name)
	w.Int32(m.NameColour)
	w.Uint16(m.Image)
	w.Int32(m.Colour)
	m.Location.Write(w)
	w.Byte(m.Direction)
	packet.WriteInt32List(w, m.QuestIDs)
}

func (m *ObjectNPC) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Name = r.String()
	m.NameColour = r.Int32()
	m.Image = r.Uint16()
	m.Colour = r.Int32()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
	m.QuestIDs = packet.ReadInt32List(r)
}

// ObjectItem is an item lying on the ground.
type ObjectItem struct {
	ObjectID   uint32
	Name       string
	NameColour int32
	Location   packet.Point
	Image      uint16
	Grade      uint8
}

func (*ObjectItem) Kind() int16 { return int16(KindObjectItem) }

func (m *ObjectItem) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.String(m.Name)
	w.Int32(m.NameColour)
	m.Location.Write(w)
	w.Uint16(m.Image)
	w.Byte(m.Grade)
}

func (m *ObjectItem) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Name = r.String()
	m.NameColour = r.Int32()
	m.Location = packet.ReadPoint(r)
	m.Image = r.Uint16()
	m.Grade = r.Byte()
}

// ObjectGold is a gold pile lying on the ground.
type ObjectGold struct {
	ObjectID uint32
	Gold     uint32
	Location packet.Point
}

func (*ObjectGold) Kind() int16 { return int16(KindObjectGold) }

func (m *ObjectGold) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.Uint32(m.Gold)
	m.Location.Write(w)
}

func (m *ObjectGold) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Gold = r.Uint32()
	m.Location = packet.ReadPoint(r)
}

type ObjectRemove struct {
	ObjectID uint32
}

func (*ObjectRemove) Kind() int16 { return int16(KindObjectRemove) }

func (m *ObjectRemove) Encode(w *codec.Writer) { w.Uint32(m.ObjectID) }
func (m *ObjectRemove) Decode(r *codec.Reader) { m.ObjectID = r.Uint32() }

// ObjectMove is the shared body of turn, walk and run updates.
type ObjectMove struct {
	ObjectID  uint32
	Location  packet.Point
	Direction uint8
}

func (m *ObjectMove) encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	m.Location.Write(w)
	w.Byte(m.Direction)
}

func (m *ObjectMove) decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
}

type ObjectTurn struct{ ObjectMove }

func (*ObjectTurn) Kind() int16 { return int16(KindObjectTurn) }

func (m *ObjectTurn) Encode(w *codec.Writer) { m.encode(w) }
func (m *ObjectTurn) Decode(r *codec.Reader) { m.decode(r) }

type ObjectWalk struct{ ObjectMove }

func (*ObjectWalk) Kind() int16 { return int16(KindObjectWalk) }

func (m *ObjectWalk) Encode(w *codec.Writer) { m.encode(w) }
func (m *ObjectWalk) Decode(r *codec.Reader) { m.decode(r) }

type ObjectRun struct{ ObjectMove }

func (*ObjectRun) Kind() int16 { return int16(KindObjectRun) }

func (m *ObjectRun) Encode(w *codec.Writer) { m.encode(w) }
func (m *ObjectRun) Decode(r *codec.Reader) { m.decode(r) }

type ObjectChat struct {
	ObjectID uint32
	Text     string
	Type     uint8
}

func (*ObjectChat) Kind() int16 { return int16(KindObjectChat) }

func (m *ObjectChat) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.String(m.Text)
	w.Byte(m.Type)
}

func (m *ObjectChat) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Text = r.String()
	m.Type = r.Byte()
}

type ObjectAttack struct {
	ObjectID  uint32
	Location  packet.Point
	Direction uint8
	Spell     uint8
	Level     uint8
	Type      uint8
}

func (*ObjectAttack) Kind() int16 { return int16(KindObjectAttack) }

func (m *ObjectAttack) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	m.Location.Write(w)
	w.Byte(m.Direction)
	w.Byte(m.Spell)
	w.Byte(m.Level)
	w.Byte(m.Type)
}

func (m *ObjectAttack) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
	m.Spell = r.Byte()
	m.Level = r.Byte()
	m.Type = r.Byte()
}

type ObjectStruck struct {
	ObjectID   uint32
	AttackerID uint32
	Location   packet.Point
	Direction  uint8
}

func (*ObjectStruck) Kind() int16 { return int16(KindObjectStruck) }

func (m *ObjectStruck) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.Uint32(m.AttackerID)
	m.Location.Write(w)
	w.Byte(m.Direction)
}

func (m *ObjectStruck) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.AttackerID = r.Uint32()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
}

type ObjectDied struct {
	ObjectID  uint32
	Location  packet.Point
	Direction uint8
	Type      uint8
}

func (*ObjectDied) Kind() int16 { return int16(KindObjectDied) }

func (m *ObjectDied) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	m.Location.Write(w)
	w.Byte(m.Direction)
	w.Byte(m.Type)
}

func (m *ObjectDied) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
	m.Type = r.Byte()
}

// ObjectHealth carries a health bar percentage for a nearby object.
type ObjectHealth struct {
	ObjectID uint32
	Percent  uint8
	Expire   uint8
}

func (*ObjectHealth) Kind() int16 { return int16(KindObjectHealth) }

func (m *ObjectHealth) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.Byte(m.Percent)
	w.Byte(m.Expire)
}

func (m *ObjectHealth) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Percent = r.Byte()
	m.Expire = r.Byte()
}

type ObjectMagic struct {
	ObjectID           uint32
	Location           packet.Point
	Direction          uint8
	Spell              uint8
	TargetID           uint32
	Target             packet.Point
	Cast               bool
	Level              uint8
	SelfBroadcast      bool
	SecondaryTargetIDs []uint32
}

func (*ObjectMagic) Kind() int16 { return int16(KindObjectMagic) }

func (m *ObjectMagic) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	m.Location.Write(w)
	w.Byte(m.Direction)
	w.Byte(m.Spell)
	w.Uint32(m.TargetID)
	m.Target.Write(w)
	w.Bool(m.Cast)
	w.Byte(m.Level)
	w.Bool(m.SelfBroadcast)
	packet.WriteUint32List(w, m.SecondaryTargetIDs)
}

func (m *ObjectMagic) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
	m.Spell = r.Byte()
	m.TargetID = r.Uint32()
	m.Target = packet.ReadPoint(r)
	m.Cast = r.Bool()
	m.Level = r.Byte()
	m.SelfBroadcast = r.Bool()
	m.SecondaryTargetIDs = packet.ReadUint32List(r)
}
