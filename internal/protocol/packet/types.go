package packet

import "github.com/danmuck/mirbot/internal/protocol/codec"

// Point is a map tile coordinate.
type Point struct {
	X int32
	Y int32
}

func ReadPoint(r *codec.Reader) Point {
	x, y := r.Point()
	return Point{X: x, Y: y}
}

func (p Point) Write(w *codec.Writer) {
	w.Point(p.X, p.Y)
}

// SelectInfo is one character-select roster row.
type SelectInfo struct {
	Index      int32
	Name       string
	Level      uint16
	Class      uint8
	Gender     uint8
	LastAccess int64
}

func ReadSelectInfo(r *codec.Reader) SelectInfo {
	return SelectInfo{
		Index:      r.Int32(),
		Name:       r.String(),
		Level:      r.Uint16(),
		Class:      r.Byte(),
		Gender:     r.Byte(),
		LastAccess: r.Int64(),
	}
}

func (s SelectInfo) Write(w *codec.Writer) {
	w.Int32(s.Index)
	w.String(s.Name)
	w.Uint16(s.Level)
	w.Byte(s.Class)
	w.Byte(s.Gender)
	w.Int64(s.LastAccess)
}

func ReadSelectInfos(r *codec.Reader) []SelectInfo {
	n := r.Int32()
	out := make([]SelectInfo, 0, clampCount(n, r))
	for i := int32(0); i < n && r.Err() == nil; i++ {
		out = append(out, ReadSelectInfo(r))
	}
	return out
}

func WriteSelectInfos(w *codec.Writer, list []SelectInfo) {
	w.Int32(int32(len(list)))
	for _, s := range list {
		s.Write(w)
	}
}

// SealedInfo marks a sealed item and its expiry.
type SealedInfo struct {
	ExpiryDate int64
	Sealed     bool
}

// UserItem is an owned item instance.
type UserItem struct {
	UniqueID       uint64
	ItemIndex      int32
	CurrentDura    uint16
	MaxDura        uint16
	Count          uint16
	AC             uint8
	MAC            uint8
	DC             uint8
	MC             uint8
	SC             uint8
	Accuracy       uint8
	Agility        uint8
	HP             uint8
	MP             uint8
	AttackSpeed    int8
	Luck           int8
	SoulBoundID    int32
	Bools          uint8
	Strong         uint8
	MagicResist    uint8
	PoisonResist   uint8
	HealthRecovery uint8
	ManaRecovery   uint8
	PoisonRecovery uint8
	CriticalRate   uint8
	CriticalDamage uint8
	Freezing       uint8
	PoisonAttack   uint8
	Awake          []uint8
	RefineAdded    uint8
	RefineChance   int32
	RefineValue    int32
	RefineSuccess  int32
	Slots          []*UserItem
	GemCount       uint32
	Expiry         int64
	Sealed         SealedInfo
}

func ReadUserItem(r *codec.Reader) *UserItem {
	it := &UserItem{
		UniqueID:       r.Uint64(),
		ItemIndex:      r.Int32(),
		CurrentDura:    r.Uint16(),
		MaxDura:        r.Uint16(),
		Count:          r.Uint16(),
		AC:             r.Byte(),
		MAC:            r.Byte(),
		DC:             r.Byte(),
		MC:             r.Byte(),
		SC:             r.Byte(),
		Accuracy:       r.Byte(),
		Agility:        r.Byte(),
		HP:             r.Byte(),
		MP:             r.Byte(),
		AttackSpeed:    r.Int8(),
		Luck:           r.Int8(),
		SoulBoundID:    r.Int32(),
		Bools:          r.Byte(),
		Strong:         r.Byte(),
		MagicResist:    r.Byte(),
		PoisonResist:   r.Byte(),
		HealthRecovery: r.Byte(),
		ManaRecovery:   r.Byte(),
		PoisonRecovery: r.Byte(),
		CriticalRate:   r.Byte(),
		CriticalDamage: r.Byte(),
		Freezing:       r.Byte(),
		PoisonAttack:   r.Byte(),
	}
	it.Awake = readByteList(r)
	it.RefineAdded = r.Byte()
	it.RefineChance = r.Int32()
	it.RefineValue = r.Int32()
	it.RefineSuccess = r.Int32()
	n := r.Int32()
	it.Slots = make([]*UserItem, 0, clampCount(n, r))
	for i := int32(0); i < n && r.Err() == nil; i++ {
		if r.Bool() {
			it.Slots = append(it.Slots, ReadUserItem(r))
		} else {
			it.Slots = append(it.Slots, nil)
		}
	}
	it.GemCount = r.Uint32()
	it.Expiry = r.Int64()
	it.Sealed = SealedInfo{ExpiryDate: r.Int64(), Sealed: r.Bool()}
	return it
}

func (it *UserItem) Write(w *codec.Writer) {
	w.Uint64(it.UniqueID)
	w.Int32(it.ItemIndex)
	w.Uint16(it.CurrentDura)
	w.Uint16(it.MaxDura)
	w.Uint16(it.Count)
	w.Byte(it.AC)
	w.Byte(it.MAC)
	w.Byte(it.DC)
	w.Byte(it.MC)
	w.Byte(it.SC)
	w.Byte(it.Accuracy)
	w.Byte(it.Agility)
	w.Byte(it.HP)
	w.Byte(it.MP)
	w.Int8(it.AttackSpeed)
	w.Int8(it.Luck)
	w.Int32(it.SoulBoundID)
	w.Byte(it.Bools)
	w.Byte(it.Strong)
	w.Byte(it.MagicResist)
	w.Byte(it.PoisonResist)
	w.Byte(it.HealthRecovery)
	w.Byte(it.ManaRecovery)
	w.Byte(it.PoisonRecovery)
	w.Byte(it.CriticalRate)
	w.Byte(it.CriticalDamage)
	w.Byte(it.Freezing)
	w.Byte(it.PoisonAttack)
	writeByteList(w, it.Awake)
	w.Byte(it.RefineAdded)
	w.Int32(it.RefineChance)
	w.Int32(it.RefineValue)
	w.Int32(it.RefineSuccess)
	writeItemSlots(w, it.Slots)
	w.Uint32(it.GemCount)
	w.Int64(it.Expiry)
	w.Int64(it.Sealed.ExpiryDate)
	w.Bool(it.Sealed.Sealed)
}

// Clone deep-copies the item so snapshots do not alias live state.
func (it *UserItem) Clone() *UserItem {
	if it == nil {
		return nil
	}
	out := *it
	out.Awake = append([]uint8(nil), it.Awake...)
	if it.Slots != nil {
		out.Slots = make([]*UserItem, len(it.Slots))
		for i, s := range it.Slots {
			out.Slots[i] = s.Clone()
		}
	}
	return &out
}

// ReadUserItemArray reads a nullable item array: a presence flag, then a
// count, then per-slot presence flags. Empty slots stay nil so slot index
// keeps its meaning.
func ReadUserItemArray(r *codec.Reader) []*UserItem {
	if !r.Bool() {
		return nil
	}
	n := r.Int32()
	out := make([]*UserItem, 0, clampCount(n, r))
	for i := int32(0); i < n && r.Err() == nil; i++ {
		if r.Bool() {
			out = append(out, ReadUserItem(r))
		} else {
			out = append(out, nil)
		}
	}
	return out
}

func WriteUserItemArray(w *codec.Writer, items []*UserItem) {
	if items == nil {
		w.Bool(false)
		return
	}
	w.Bool(true)
	writeItemSlots(w, items)
}

func writeItemSlots(w *codec.Writer, items []*UserItem) {
	w.Int32(int32(len(items)))
	for _, it := range items {
		if it == nil {
			w.Bool(false)
			continue
		}
		w.Bool(true)
		it.Write(w)
	}
}

// ItemInfo is a static item definition keyed by Index.
type ItemInfo struct {
	Index          int32
	Name           string
	Type           uint8
	Grade          uint8
	RequiredType   uint8
	RequiredClass  uint8
	RequiredGender uint8
	Set            uint8
	Shape          int16
	Effect         uint8
	Weight         uint8
	Light          uint8
	RequiredAmount uint8
	Image          uint16
	Durability     uint16
	StackSize      uint16
	Price          uint32
	MinAC          uint8
	MaxAC          uint8
	MinMAC         uint8
	MaxMAC         uint8
	MinDC          uint8
	MaxDC          uint8
	MinMC          uint8
	MaxMC          uint8
	MinSC          uint8
	MaxSC          uint8
	HP             uint16
	MP             uint16
	Accuracy       uint8
	Agility        uint8
	Speed          int8
	Luck           int8
	AttackSpeed    int8
	StartItem      bool
	BagWeight      uint8
	HandWeight     uint8
	WearWeight     uint8
	Bind           int16
	Strong         uint8
	MagicResist    uint8
	PoisonResist   uint8
	HealthRecovery uint8
	SpellRecovery  uint8
	PoisonRecovery uint8
	HPRate         uint8
	MPRate         uint8
	CriticalRate   uint8
	CriticalDamage uint8
	Bools          uint8
	MaxACRate      uint8
	MaxMACRate     uint8
	Holy           uint8
	Freezing       uint8
	PoisonAttack   uint8
	Unique         int16
	RandomStatsID  uint8
	CanAwaken      bool
	ToolTip        string
}

func ReadItemInfo(r *codec.Reader) ItemInfo {
	return ItemInfo{
		Index:          r.Int32(),
		Name:           r.String(),
		Type:           r.Byte(),
		Grade:          r.Byte(),
		RequiredType:   r.Byte(),
		RequiredClass:  r.Byte(),
		RequiredGender: r.Byte(),
		Set:            r.Byte(),
		Shape:          r.Int16(),
		Effect:         r.Byte(),
		Weight:         r.Byte(),
		Light:          r.Byte(),
		RequiredAmount: r.Byte(),
		Image:          r.Uint16(),
		Durability:     r.Uint16(),
		StackSize:      r.Uint16(),
		Price:          r.Uint32(),
		MinAC:          r.Byte(),
		MaxAC:          r.Byte(),
		MinMAC:         r.Byte(),
		MaxMAC:         r.Byte(),
		MinDC:          r.Byte(),
		MaxDC:          r.Byte(),
		MinMC:          r.Byte(),
		MaxMC:          r.Byte(),
		MinSC:          r.Byte(),
		MaxSC:          r.Byte(),
		HP:             r.Uint16(),
		MP:             r.Uint16(),
		Accuracy:       r.Byte(),
		Agility:        r.Byte(),
		Speed:          r.Int8(),
		Luck:           r.Int8(),
		AttackSpeed:    r.Int8(),
		StartItem:      r.Bool(),
		BagWeight:      r.Byte(),
		HandWeight:     r.Byte(),
		WearWeight:     r.Byte(),
		Bind:           r.Int16(),
		Strong:         r.Byte(),
		MagicResist:    r.Byte(),
		PoisonResist:   r.Byte(),
		HealthRecovery: r.Byte(),
		SpellRecovery:  r.Byte(),
		PoisonRecovery: r.Byte(),
		HPRate:         r.Byte(),
		MPRate:         r.Byte(),
		CriticalRate:   r.Byte(),
		CriticalDamage: r.Byte(),
		Bools:          r.Byte(),
		MaxACRate:      r.Byte(),
		MaxMACRate:     r.Byte(),
		Holy:           r.Byte(),
		Freezing:       r.Byte(),
		PoisonAttack:   r.Byte(),
		Unique:         r.Int16(),
		RandomStatsID:  r.Byte(),
		CanAwaken:      r.Bool(),
		ToolTip:        r.String(),
	}
}

func (i ItemInfo) Write(w *codec.Writer) {
	w.Int32(i.Index)
	w.String(i.Name)
	w.Byte(i.Type)
	w.Byte(i.Grade)
	w.Byte(i.RequiredType)
	w.Byte(i.RequiredClass)
	w.Byte(i.RequiredGender)
	w.Byte(i.Set)
	w.Int16(i.Shape)
	w.Byte(i.Effect)
	w.Byte(i.Weight)
	w.Byte(i.Light)
	w.Byte(i.RequiredAmount)
	w.Uint16(i.Image)
	w.Uint16(i.Durability)
	w.Uint16(i.StackSize)
	w.Uint32(i.Price)
	w.Byte(i.MinAC)
	w.Byte(i.MaxAC)
	w.Byte(i.MinMAC)
	w.Byte(i.MaxMAC)
	w.Byte(i.MinDC)
	w.Byte(i.MaxDC)
	w.Byte(i.MinMC)
	w.Byte(i.MaxMC)
	w.Byte(i.MinSC)
	w.Byte(i.MaxSC)
	w.Uint16(i.HP)
	w.Uint16(i.MP)
	w.Byte(i.Accuracy)
	w.Byte(i.Agility)
	w.Int8(i.Speed)
	w.Int8(i.Luck)
	w.Int8(i.AttackSpeed)
	w.Bool(i.StartItem)
	w.Byte(i.BagWeight)
	w.Byte(i.HandWeight)
	w.Byte(i.WearWeight)
	w.Int16(i.Bind)
	w.Byte(i.Strong)
	w.Byte(i.MagicResist)
	w.Byte(i.PoisonResist)
	w.Byte(i.HealthRecovery)
	w.Byte(i.SpellRecovery)
	w.Byte(i.PoisonRecovery)
	w.Byte(i.HPRate)
	w.Byte(i.MPRate)
	w.Byte(i.CriticalRate)
	w.Byte(i.CriticalDamage)
	w.Byte(i.Bools)
	w.Byte(i.MaxACRate)
	w.Byte(i.MaxMACRate)
	w.Byte(i.Holy)
	w.Byte(i.Freezing)
	w.Byte(i.PoisonAttack)
	w.Int16(i.Unique)
	w.Byte(i.RandomStatsID)
	w.Bool(i.CanAwaken)
	w.String(i.ToolTip)
}

// ClientMagic is one learned spell.
type ClientMagic struct {
	Spell      uint8
	BaseCost   uint8
	LevelCost  uint8
	Icon       uint16
	Level1     uint8
	Level2     uint8
	Level3     uint8
	Need1      uint16
	Need2      uint16
	Need3      uint16
	Level      uint8
	Key        uint8
	Experience uint16
	Delay      int64
	Range      int32
	CastTime   int64
	Toggle     bool
}

func ReadClientMagic(r *codec.Reader) ClientMagic {
	return ClientMagic{
		Spell:      r.Byte(),
		BaseCost:   r.Byte(),
		LevelCost:  r.Byte(),
		Icon:       r.Uint16(),
		Level1:     r.Byte(),
		Level2:     r.Byte(),
		Level3:     r.Byte(),
		Need1:      r.Uint16(),
		Need2:      r.Uint16(),
		Need3:      r.Uint16(),
		Level:      r.Byte(),
		Key:        r.Byte(),
		Experience: r.Uint16(),
		Delay:      r.Int64(),
		Range:      r.Int32(),
		CastTime:   r.Int64(),
		Toggle:     r.Bool(),
	}
}

func (m ClientMagic) Write(w *codec.Writer) {
	w.Byte(m.Spell)
	w.Byte(m.BaseCost)
	w.Byte(m.LevelCost)
	w.Uint16(m.Icon)
	w.Byte(m.Level1)
	w.Byte(m.Level2)
	w.Byte(m.Level3)
	w.Uint16(m.Need1)
	w.Uint16(m.Need2)
	w.Uint16(m.Need3)
	w.Byte(m.Level)
	w.Byte(m.Key)
	w.Uint16(m.Experience)
	w.Int64(m.Delay)
	w.Int32(m.Range)
	w.Int64(m.CastTime)
	w.Bool(m.Toggle)
}

// ClientBuff is an active buff; Type is the table key.
type ClientBuff struct {
	Type       uint8
	Caster     string
	Visible    bool
	ObjectID   uint32
	ExpireTime int64
	Infinite   bool
	Paused     bool
	Values     []int32
}

func ReadClientBuff(r *codec.Reader) ClientBuff {
	b := ClientBuff{
		Type:       r.Byte(),
		Caster:     r.String(),
		Visible:    r.Bool(),
		ObjectID:   r.Uint32(),
		ExpireTime: r.Int64(),
		Infinite:   r.Bool(),
		Paused:     r.Bool(),
	}
	n := r.Int32()
	b.Values = make([]int32, 0, clampCount(n, r))
	for i := int32(0); i < n && r.Err() == nil; i++ {
		b.Values = append(b.Values, r.Int32())
	}
	return b
}

func (b ClientBuff) Write(w *codec.Writer) {
	w.Byte(b.Type)
	w.String(b.Caster)
	w.Bool(b.Visible)
	w.Uint32(b.ObjectID)
	w.Int64(b.ExpireTime)
	w.Bool(b.Infinite)
	w.Bool(b.Paused)
	w.Int32(int32(len(b.Values)))
	for _, v := range b.Values {
		w.Int32(v)
	}
}

// PickupFilter is an intelligent creature's loot filter.
type PickupFilter struct {
	PickupGrade       bool
	PickupAll         bool
	PickupGold        bool
	PickupWeapons     bool
	PickupArmours     bool
	PickupHelmets     bool
	PickupBoots       bool
	PickupBelts       bool
	PickupAccessories bool
	PickupOthers      bool
}

// IntelligentCreature is a pet record carried in UserInformation. The bot
// keeps it only so the payload decodes past it.
type IntelligentCreature struct {
	PetType          uint8
	Icon             int32
	CustomName       string
	Fullness         int32
	SlotIndex        uint8
	ExpireTime       int64
	BlackstoneTime   int64
	MaintainFoodTime int64
	Filter           PickupFilter
	PickupMode       uint8
}

func ReadIntelligentCreature(r *codec.Reader) IntelligentCreature {
	return IntelligentCreature{
		PetType:          r.Byte(),
		Icon:             r.Int32(),
		CustomName:       r.String(),
		Fullness:         r.Int32(),
		SlotIndex:        r.Byte(),
		ExpireTime:       r.Int64(),
		BlackstoneTime:   r.Int64(),
		MaintainFoodTime: r.Int64(),
		Filter: PickupFilter{
			PickupGrade:       r.Bool(),
			PickupAll:         r.Bool(),
			PickupGold:        r.Bool(),
			PickupWeapons:     r.Bool(),
			PickupArmours:     r.Bool(),
			PickupHelmets:     r.Bool(),
			PickupBoots:       r.Bool(),
			PickupBelts:       r.Bool(),
			PickupAccessories: r.Bool(),
			PickupOthers:      r.Bool(),
		},
		PickupMode: r.Byte(),
	}
}

func (c IntelligentCreature) Write(w *codec.Writer) {
	w.Byte(c.PetType)
	w.Int32(c.Icon)
	w.String(c.CustomName)
	w.Int32(c.Fullness)
	w.Byte(c.SlotIndex)
	w.Int64(c.ExpireTime)
	w.Int64(c.BlackstoneTime)
	w.Int64(c.MaintainFoodTime)
	w.Bool(c.Filter.PickupGrade)
	w.Bool(c.Filter.PickupAll)
	w.Bool(c.Filter.PickupGold)
	w.Bool(c.Filter.PickupWeapons)
	w.Bool(c.Filter.PickupArmours)
	w.Bool(c.Filter.PickupHelmets)
	w.Bool(c.Filter.PickupBoots)
	w.Bool(c.Filter.PickupBelts)
	w.Bool(c.Filter.PickupAccessories)
	w.Bool(c.Filter.PickupOthers)
	w.Byte(c.PickupMode)
}

// ReadByteList reads an int32 count followed by that many bytes.
func ReadByteList(r *codec.Reader) []uint8 {
	return readByteList(r)
}

func WriteByteList(w *codec.Writer, b []uint8) {
	writeByteList(w, b)
}

// ReadUint32List reads an int32 count followed by that many uint32 values.
func ReadUint32List(r *codec.Reader) []uint32 {
	n := r.Int32()
	out := make([]uint32, 0, clampCount(n, r))
	for i := int32(0); i < n && r.Err() == nil; i++ {
		out = append(out, r.Uint32())
	}
	return out
}

func WriteUint32List(w *codec.Writer, list []uint32) {
	w.Int32(int32(len(list)))
	for _, v := range list {
		w.Uint32(v)
	}
}

// ReadInt32List reads an int32 count followed by that many int32 values.
func ReadInt32List(r *codec.Reader) []int32 {
	n := r.Int32()
	out := make([]int32, 0, clampCount(n, r))
	for i := int32(0); i < n && r.Err() == nil; i++ {
		out = append(out, r.Int32())
	}
	return out
}

func WriteInt32List(w *codec.Writer, list []int32) {
	w.Int32(int32(len(list)))
	for _, v := range list {
		w.Int32(v)
	}
}

func readByteList(r *codec.Reader) []uint8 {
	n := r.Int32()
	if n < 0 {
		return []uint8{}
	}
	if int(n) > r.Remaining() {
		_ = r.Bytes(int(n))
		return []uint8{}
	}
	return r.Bytes(int(n))
}

func writeByteList(w *codec.Writer, b []uint8) {
	w.Int32(int32(len(b)))
	w.Raw(b)
}

// clampCount bounds a declared element count by the bytes left so a hostile
// count cannot force a huge allocation.
func clampCount(n int32, r *codec.Reader) int {
	if n <= 0 {
		return 0
	}
	if rem := r.Remaining(); int(n) > rem {
		return rem
	}
	return int(n)
}
