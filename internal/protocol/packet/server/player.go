package server

import (
	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/packet"
)

const (
	mapLightning = 0x01
	mapFire      = 0x02
)

type MapInformation struct {
	MapIndex     int32
	FileName     string
	Title        string
	MiniMap      uint16
	BigMap       uint16
	Lights       uint8
	Lightning    bool
	Fire         bool
	MapDarkLight uint8
	Music        uint16
	Weather      uint16
}

func (*MapInformation) Kind() int16 { return int16(KindMapInformation) }

func (m *MapInformation) Encode(w *codec.Writer) {
	w.Int32(m.MapIndex)
	w.String(m.FileName)
	w.String(m.Title)
	w.Uint16(m.MiniMap)
	w.Uint16(m.BigMap)
	w.Byte(m.Lights)
	var bools uint8
	if m.Lightning {
		bools |= mapLightning
	}
	if m.Fire {
		bools |= mapFire
	}
	w.Byte(bools)
	w.Byte(m.MapDarkLight)
	w.Uint16(m.Music)
	w.Uint16(m.Weather)
}

func (m *MapInformation) Decode(r *codec.Reader) {
	m.MapIndex = r.Int32()
	m.FileName = r.String()
	m.Title = r.String()
	m.MiniMap = r.Uint16()
	m.BigMap = r.Uint16()
	m.Lights = r.Byte()
	bools := r.Byte()
	m.Lightning = bools&mapLightning != 0
	m.Fire = bools&mapFire != 0
	m.MapDarkLight = r.Byte()
	m.Music = r.Uint16()
	m.Weather = r.Uint16()
}

// MapChanged moves the character to a new map instance.
type MapChanged struct {
	MapIndex     int32
	FileName     string
	Title        string
	MiniMap      uint16
	BigMap       uint16
	Lights       uint8
	Location     packet.Point
	Direction    uint8
	MapDarkLight uint8
	Music        uint16
	Weather      uint16
}

func (*MapChanged) Kind() int16 { return int16(KindMapChanged) }

func (m *MapChanged) Encode(w *codec.Writer) {
	w.Int32(m.MapIndex)
	w.String(m.FileName)
	w.String(m.Title)
	w.Uint16(m.MiniMap)
	w.Uint16(m.BigMap)
	w.Byte(m.Lights)
	m.Location.Write(w)
	w.Byte(m.Direction)
	w.Byte(m.MapDarkLight)
	w.Uint16(m.Music)
	w.Uint16(m.Weather)
}

func (m *MapChanged) Decode(r *codec.Reader) {
	m.MapIndex = r.Int32()
	m.FileName = r.String()
	m.Title = r.String()
	m.MiniMap = r.Uint16()
	m.BigMap = r.Uint16()
	m.Lights = r.Byte()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
	m.MapDarkLight = r.Byte()
	m.Music = r.Uint16()
	m.Weather = r.Uint16()
}

// UserInformation is the full character snapshot sent on world entry.
type UserInformation struct {
	ObjectID               uint32
	RealID                 uint32
	Name                   string
	GuildName              string
	GuildRank              string
	NameColour             int32
	Class                  uint8
	Gender                 uint8
	Level                  uint16
	Location               packet.Point
	Direction              uint8
	Hair                   uint8
	HP                     int32
	MP                     int32
	Experience             int64
	MaxExperience          int64
	LevelEffects           uint16
	HasHero                bool
	HeroBehaviour          uint8
	Inventory              []*packet.UserItem
	Equipment              []*packet.UserItem
	QuestInventory         []*packet.UserItem
	Gold                   uint32
	Credit                 uint32
	HasExpandedStorage     bool
	HasStoragePassword     bool
	RequireStoragePassword bool
	StoragePasswordSet     int64
	ExpandedStorageExpiry  int64
	Magics                 []packet.ClientMagic
	Creatures              []packet.IntelligentCreature
	SummonedCreatureType   uint8
	CreatureSummoned       bool
	AllowObserve           bool
	Observer               bool
}

func (*UserInformation) Kind() int16 { return int16(KindUserInformation) }

func (m *UserInformation) Encode(w *codec.Writer) {
	w.Uint32(m.ObjectID)
	w.Uint32(m.RealID)
	w.String(m.Name)
	w.String(m.GuildName)
	w.String(m.GuildRank)
	w.Int32(m.NameColour)
	w.Byte(m.Class)
	w.Byte(m.Gender)
	w.Uint16(m.Level)
	m.Location.Write(w)
	w.Byte(m.Direction)
	w.Byte(m.Hair)
	w.Int32(m.HP)
	w.Int32(m.MP)
	w.Int64(m.Experience)
	w.Int64(m.MaxExperience)
	w.Uint16(m.LevelEffects)
	w.Bool(m.HasHero)
	w.Byte(m.HeroBehaviour)
	packet.WriteUserItemArray(w, m.Inventory)
	packet.WriteUserItemArray(w, m.Equipment)
	packet.WriteUserItemArray(w, m.QuestInventory)
	w.Uint32(m.Gold)
	w.Uint32(m.Credit)
	w.Bool(m.HasExpandedStorage)
	w.Bool(m.HasStoragePassword)
	w.Bool(m.RequireStoragePassword)
	w.Int64(m.StoragePasswordSet)
	w.Int64(m.ExpandedStorageExpiry)
	w.Int32(int32(len(m.Magics)))
	for _, mg := range m.Magics {
		mg.Write(w)
	}
	w.Int32(int32(len(m.Creatures)))
	for _, c := range m.Creatures {
		c.Write(w)
	}
	w.Byte(m.SummonedCreatureType)
	w.Bool(m.CreatureSummoned)
	w.Bool(m.AllowObserve)
	w.Bool(m.Observer)
}

func (m *UserInformation) Decode(r *codec.Reader) {
	m.ObjectID = r.Uint32()
	m.RealID = r.Uint32()
	m.Name = r.String()
	m.GuildName = r.String()
	m.GuildRank = r.String()
	m.NameColour = r.Int32()
	m.Class = r.Byte()
	m.Gender = r.Byte()
	m.Level = r.Uint16()
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
	m.Hair = r.Byte()
	m.HP = r.Int32()
	m.MP = r.Int32()
	m.Experience = r.Int64()
	m.MaxExperience = r.Int64()
	m.LevelEffects = r.Uint16()
	m.HasHero = r.Bool()
	m.HeroBehaviour = r.Byte()
	m.Inventory = packet.ReadUserItemArray(r)
	m.Equipment = packet.ReadUserItemArray(r)
	m.QuestInventory = packet.ReadUserItemArray(r)
	m.Gold = r.Uint32()
	m.Credit = r.Uint32()
	m.HasExpandedStorage = r.Bool()
	m.HasStoragePassword = r.Bool()
	m.RequireStoragePassword = r.Bool()
	m.StoragePasswordSet = r.Int64()
	m.ExpandedStorageExpiry = r.Int64()
	m.Magics = nil
	for i, n := int32(0), r.Int32(); i < n && r.Err() == nil; i++ {
		m.Magics = append(m.Magics, packet.ReadClientMagic(r))
	}
	m.Creatures = nil
	for i, n := int32(0), r.Int32(); i < n && r.Err() == nil; i++ {
		m.Creatures = append(m.Creatures, packet.ReadIntelligentCreature(r))
	}
	m.SummonedCreatureType = r.Byte()
	m.CreatureSummoned = r.Bool()
	m.AllowObserve = r.Bool()
	m.Observer = r.Bool()
}

type UserLocation struct {
	Location  packet.Point
	Direction uint8
}

func (*UserLocation) Kind() int16 { return int16(KindUserLocation) }

func (m *UserLocation) Encode(w *codec.Writer) {
	m.Location.Write(w)
	w.Byte(m.Direction)
}

func (m *UserLocation) Decode(r *codec.Reader) {
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
}

type HealthChanged struct {
	HP int32
	MP int32
}

func (*HealthChanged) Kind() int16 { return int16(KindHealthChanged) }

func (m *HealthChanged) Encode(w *codec.Writer) {
	w.Int32(m.HP)
	w.Int32(m.MP)
}

func (m *HealthChanged) Decode(r *codec.Reader) {
	m.HP = r.Int32()
	m.MP = r.Int32()
}

// Death reports the character's own death.
type Death struct {
	Location  packet.Point
	Direction uint8
}

func (*Death) Kind() int16 { return int16(KindDeath) }

func (m *Death) Encode(w *codec.Writer) {
	m.Location.Write(w)
	w.Byte(m.Direction)
}

func (m *Death) Decode(r *codec.Reader) {
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
}

type Revived struct{}

func (*Revived) Kind() int16 { return int16(KindRevived) }
func (*Revived) Encode(w *codec.Writer) {}
func (*Revived) Decode(r *codec.Reader) {}

type Pushed struct {
	Location  packet.Point
	Direction uint8
}

func (*Pushed) Kind() int16 { return int16(KindPushed) }

func (m *Pushed) Encode(w *codec.Writer) {
	m.Location.Write(w)
	w.Byte(m.Direction)
}

func (m *Pushed) Decode(r *codec.Reader) {
	m.Location = packet.ReadPoint(r)
	m.Direction = r.Byte()
}

type GainExperience struct {
	Amount uint32
}

func (*GainExperience) Kind() int16 { return int16(KindGainExperience) }

func (m *GainExperience) Encode(w *codec.Writer) { w.Uint32(m.Amount) }
func (m *GainExperience) Decode(r *codec.Reader) { m.Amount = r.Uint32() }

type LevelChanged struct {
	Level         uint16
	Experience    int64
	MaxExperience int64
}

func (*LevelChanged) Kind() int16 { return int16(KindLevelChanged) }

func (m *LevelChanged) Encode(w *codec.Writer) {
	w.Uint16(m.Level)
	w.Int64(m.Experience)
	w.Int64(m.MaxExperience)
}

func (m *LevelChanged) Decode(r *codec.Reader) {
	m.Level = r.Uint16()
	m.Experience = r.Int64()
	m.MaxExperience = r.Int64()
}

type Poisoned struct {
	Poison uint16
}

func (*Poisoned) Kind() int16 { return int16(KindPoisoned) }

func (m *Poisoned) Encode(w *codec.Writer) { w.Uint16(m.Poison) }
func (m *Poisoned) Decode(r *codec.Reader) { m.Poison = r.Uint16() }

type AddBuff struct {
	Buff packet.ClientBuff
}

func (*AddBuff) Kind() int16 { return int16(KindAddBuff) }

func (m *AddBuff) Encode(w *codec.Writer) { m.Buff.Write(w) }
func (m *AddBuff) Decode(r *codec.Reader) { m.Buff = packet.ReadClientBuff(r) }

type RemoveBuff struct {
	Type     uint8
	ObjectID uint32
}

func (*RemoveBuff) Kind() int16 { return int16(KindRemoveBuff) }

func (m *RemoveBuff) Encode(w *codec.Writer) {
	w.Byte(m.Type)
	w.Uint32(m.ObjectID)
}

func (m *RemoveBuff) Decode(r *codec.Reader) {
	m.Type = r.Byte()
	m.ObjectID = r.Uint32()
}

type Chat struct {
	Message string
	Type    uint8
}

func (*Chat) Kind() int16 { return int16(KindChat) }

func (m *Chat) Encode(w *codec.Writer) {
	w.String(m.Message)
	w.Byte(m.Type)
}

func (m *Chat) Decode(r *codec.Reader) {
	m.Message = r.String()
	m.Type = r.Byte()
}

// Struck reports the character being hit.
type Struck struct {
	AttackerID uint32
}

func (*Struck) Kind() int16 { return int16(KindStruck) }

func (m *Struck) Encode(w *codec.Writer) { w.Uint32(m.AttackerID) }
func (m *Struck) Decode(r *codec.Reader) { m.AttackerID = r.Uint32() }

type DamageIndicator struct {
	Damage   int32
	Type     uint8
	ObjectID uint32
}

func (*DamageIndicator) Kind() int16 { return int16(KindDamageIndicator) }

func (m *DamageIndicator) Encode(w *codec.Writer) {
	w.Int32(m.Damage)
	w.Byte(m.Type)
	w.Uint32(m.ObjectID)
}

func (m *DamageIndicator) Decode(r *codec.Reader) {
	m.Damage = r.Int32()
	m.Type = r.Byte()
	m.ObjectID = r.Uint32()
}

// Magic confirms the character's own cast.
type Magic struct {
	Spell              uint8
	TargetID           uint32
	Target             packet.Point
	Cast               bool
	Level              uint8
	SecondaryTargetIDs []uint32
}

func (*Magic) Kind() int16 { return int16(KindMagic) }

func (m *Magic) Encode(w *codec.Writer) {
	w.Byte(m.Spell)
	w.Uint32(m.TargetID)
	m.Target.Write(w)
	w.Bool(m.Cast)
	w.Byte(m.Level)
	packet.WriteUint32List(w, m.SecondaryTargetIDs)
}

func (m *Magic) Decode(r *codec.Reader) {
	m.Spell = r.Byte()
	m.TargetID = r.Uint32()
	m.Target = packet.ReadPoint(r)
	m.Cast = r.Bool()
	m.Level = r.Byte()
	m.SecondaryTargetIDs = packet.ReadUint32List(r)
}

type MagicCast struct {
	Spell uint8
}

func (*MagicCast) Kind() int16 { return int16(KindMagicCast) }

func (m *MagicCast) Encode(w *codec.Writer) { w.Byte(m.Spell) }
func (m *MagicCast) Decode(r *codec.Reader) { m.Spell = r.Byte() }
