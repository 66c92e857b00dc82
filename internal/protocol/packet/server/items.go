package server

import (
	"github.com/danmuck/mirbot/internal/protocol/codec"
	"github.com/danmuck/mirbot/internal/protocol/packet"
)

type NewItemInfo struct {
	Info packet.ItemInfo
}

func (*NewItemInfo) Kind() int16 { return int16(KindNewItemInfo) }

func (m *NewItemInfo) Encode(w *codec.Writer) { m.Info.Write(w) }
func (m *NewItemInfo) Decode(r *codec.Reader) { m.Info = packet.ReadItemInfo(r) }

type GainedItem struct {
	Item *packet.UserItem
}

func (*GainedItem) Kind() int16 { return int16(KindGainedItem) }

func (m *GainedItem) Encode(w *codec.Writer) {
	if m.Item == nil {
		(&packet.UserItem{}).Write(w)
		return
	}
	m.Item.Write(w)
}

func (m *GainedItem) Decode(r *codec.Reader) { m.Item = packet.ReadUserItem(r) }

type GainedGold struct {
	Gold uint32
}

func (*GainedGold) Kind() int16 { return int16(KindGainedGold) }

func (m *GainedGold) Encode(w *codec.Writer) { w.Uint32(m.Gold) }
func (m *GainedGold) Decode(r *codec.Reader) { m.Gold = r.Uint32() }

type LoseGold struct {
	Gold uint32
}

func (*LoseGold) Kind() int16 { return int16(KindLoseGold) }

func (m *LoseGold) Encode(w *codec.Writer) { w.Uint32(m.Gold) }
func (m *LoseGold) Decode(r *codec.Reader) { m.Gold = r.Uint32() }

type DeleteItem struct {
	UniqueID uint64
	Count    uint16
}

func (*DeleteItem) Kind() int16 { return int16(KindDeleteItem) }

func (m *DeleteItem) Encode(w *codec.Writer) {
	w.Uint64(m.UniqueID)
	w.Uint16(m.Count)
}

func (m *DeleteItem) Decode(r *codec.Reader) {
	m.UniqueID = r.Uint64()
	m.Count = r.Uint16()
}

type UseItem struct {
	UniqueID uint64
	Success  bool
	Grid     uint8
}

func (*UseItem) Kind() int16 { return int16(KindUseItem) }

func (m *UseItem) Encode(w *codec.Writer) {
	w.Uint64(m.UniqueID)
	w.Bool(m.Success)
	w.Byte(m.Grid)
}

func (m *UseItem) Decode(r *codec.Reader) {
	m.UniqueID = r.Uint64()
	m.Success = r.Bool()
	m.Grid = r.Byte()
}

type DropItem struct {
	UniqueID uint64
	Count    uint16
	HeroItem bool
	Success  bool
}

func (*DropItem) Kind() int16 { return int16(KindDropItem) }

func (m *DropItem) Encode(w *codec.Writer) {
	w.Uint64(m.UniqueID)
	w.Uint16(m.Count)
	w.Bool(m.HeroItem)
	w.Bool(m.Success)
}

func (m *DropItem) Decode(r *codec.Reader) {
	m.UniqueID = r.Uint64()
	m.Count = r.Uint16()
	m.HeroItem = r.Bool()
	m.Success = r.Bool()
}

type SellItem struct {
	UniqueID uint64
	Count    uint16
	Success  bool
}

func (*SellItem) Kind() int16 { return int16(KindSellItem) }

func (m *SellItem) Encode(w *codec.Writer) {
	w.Uint64(m.UniqueID)
	w.Uint16(m.Count)
	w.Bool(m.Success)
}

func (m *SellItem) Decode(r *codec.Reader) {
	m.UniqueID = r.Uint64()
	m.Count = r.Uint16()
	m.Success = r.Bool()
}

// NPCResponse is one page of NPC dialog text.
type NPCResponse struct {
	Page []string
}

func (*NPCResponse) Kind() int16 { return int16(KindNPCResponse) }

func (m *NPCResponse) Encode(w *codec.Writer) {
	w.Int32(int32(len(m.Page)))
	for _, line := range m.Page {
		w.String(line)
	}
}

func (m *NPCResponse) Decode(r *codec.Reader) {
	m.Page = nil
	for i, n := int32(0), r.Int32(); i < n && r.Err() == nil; i++ {
		m.Page = append(m.Page, r.String())
	}
}

// NPCGoods lists a shop's stock. Its payload travels gzip-compressed.
type NPCGoods struct {
	Goods          []*packet.UserItem
	Rate           float32
	PanelType      uint8
	HideAddedStats bool
}

func (*NPCGoods) Kind() int16 { return int16(KindNPCGoods) }

func (m *NPCGoods) Encode(w *codec.Writer) {
	w.Int32(int32(len(m.Goods)))
	for _, it := range m.Goods {
		it.Write(w)
	}
	w.Float32(m.Rate)
	w.Byte(m.PanelType)
	w.Bool(m.HideAddedStats)
}

func (m *NPCGoods) Decode(r *codec.Reader) {
	m.Goods = nil
	for i, n := int32(0), r.Int32(); i < n && r.Err() == nil; i++ {
		m.Goods = append(m.Goods, packet.ReadUserItem(r))
	}
	m.Rate = r.Float32()
	m.PanelType = r.Byte()
	m.HideAddedStats = r.Bool()
}
