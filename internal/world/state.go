// Package world folds the server's event stream into one consistent
// picture of the character and its surroundings.
package world

import (
	"fmt"
	"sync"

	"github.com/danmuck/mirbot/internal/protocol/packet"
)

// Stage is where the session sits in the login flow.
type Stage int

const (
	StageNone Stage = iota
	StageLogin
	StageSelect
	StageGame
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageLogin:
		return "login"
	case StageSelect:
		return "select"
	case StageGame:
		return "game"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Category names one nearby-entity table.
type Category int

const (
	CategoryPlayer Category = iota
	CategoryMonster
	CategoryNPC
	CategoryGroundItem
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryMonster:
		return "monster"
	case CategoryNPC:
		return "npc"
	case CategoryGroundItem:
		return "ground_item"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Object is one nearby entity. IDs are unique only within a map instance.
type Object struct {
	ID            uint32       `json:"id"`
	Category      Category     `json:"category"`
	Name          string       `json:"name"`
	Location      packet.Point `json:"location"`
	Direction     uint8        `json:"direction"`
	Dead          bool         `json:"dead"`
	HealthPercent uint8        `json:"health_percent"`
	HealthKnown   bool         `json:"health_known"`
	Image         uint16       `json:"image,omitempty"`
	Gold          uint32       `json:"gold,omitempty"`
}

// Character is the bot's own character.
type Character struct {
	ObjectID      uint32       `json:"object_id"`
	Name          string       `json:"name"`
	Class         uint8        `json:"class"`
	Gender        uint8        `json:"gender"`
	Level         uint16       `json:"level"`
	Location      packet.Point `json:"location"`
	Direction     uint8        `json:"direction"`
	HP            int32        `json:"hp"`
	MP            int32        `json:"mp"`
	MaxHP         int32        `json:"max_hp"`
	MaxMP         int32        `json:"max_mp"`
	Experience    int64        `json:"experience"`
	MaxExperience int64        `json:"max_experience"`
	Gold          uint32       `json:"gold"`
	Credit        uint32       `json:"credit"`
	Dead          bool         `json:"dead"`
	Poison        uint16       `json:"poison"`
}

type MapInfo struct {
	Index    int32  `json:"index"`
	FileName string `json:"file_name"`
	Title    string `json:"title"`
}

// State is the plain aggregate guarded by World.
type State struct {
	Stage      Stage                       `json:"stage"`
	Character  Character                   `json:"character"`
	Map        MapInfo                     `json:"map"`
	Inventory  []*packet.UserItem          `json:"inventory"`
	Equipment  []*packet.UserItem          `json:"equipment"`
	Magics     []packet.ClientMagic        `json:"magics"`
	ItemInfos  map[int32]packet.ItemInfo   `json:"-"`
	Players    map[uint32]*Object          `json:"players"`
	Monsters   map[uint32]*Object          `json:"monsters"`
	NPCs       map[uint32]*Object          `json:"npcs"`
	Ground     map[uint32]*Object          `json:"ground_items"`
	Buffs      map[uint8]packet.ClientBuff `json:"buffs"`
	NPCPage    []string                    `json:"npc_page"`
	Goods      []*packet.UserItem          `json:"goods"`
	Characters []packet.SelectInfo         `json:"characters"`
}

func newState() State {
	return State{
		ItemInfos: make(map[int32]packet.ItemInfo),
		Players:   make(map[uint32]*Object),
		Monsters:  make(map[uint32]*Object),
		NPCs:      make(map[uint32]*Object),
		Ground:    make(map[uint32]*Object),
		Buffs:     make(map[uint8]packet.ClientBuff),
	}
}

// Table returns the nearby-entity table for c.
func (s *State) Table(c Category) map[uint32]*Object {
	switch c {
	case CategoryPlayer:
		return s.Players
	case CategoryMonster:
		return s.Monsters
	case CategoryNPC:
		return s.NPCs
	default:
		return s.Ground
	}
}

// Lookup finds id in the first table that holds it, searching players,
// monsters, NPCs and ground items in that order.
func (s *State) Lookup(id uint32) (*Object, bool) {
	for _, c := range []Category{CategoryPlayer, CategoryMonster, CategoryNPC, CategoryGroundItem} {
		if obj, ok := s.Table(c)[id]; ok {
			return obj, true
		}
	}
	return nil, false
}

// ItemName resolves an owned item's name through the item-definition cache.
func (s *State) ItemName(it *packet.UserItem) string {
	if it == nil {
		return ""
	}
	if info, ok := s.ItemInfos[it.ItemIndex]; ok {
		return info.Name
	}
	return ""
}

func (s *State) clearNearby() {
	s.Players = make(map[uint32]*Object)
	s.Monsters = make(map[uint32]*Object)
	s.NPCs = make(map[uint32]*Object)
	s.Ground = make(map[uint32]*Object)
}

func (s *State) clone() State {
	out := *s
	out.Inventory = cloneItems(s.Inventory)
	out.Equipment = cloneItems(s.Equipment)
	out.Goods = cloneItems(s.Goods)
	out.Magics = append([]packet.ClientMagic(nil), s.Magics...)
	out.NPCPage = append([]string(nil), s.NPCPage...)
	out.Characters = append([]packet.SelectInfo(nil), s.Characters...)
	out.ItemInfos = make(map[int32]packet.ItemInfo, len(s.ItemInfos))
	for k, v := range s.ItemInfos {
		out.ItemInfos[k] = v
	}
	out.Buffs = make(map[uint8]packet.ClientBuff, len(s.Buffs))
	for k, v := range s.Buffs {
		v.Values = append([]int32(nil), v.Values...)
		out.Buffs[k] = v
	}
	out.Players = cloneTable(s.Players)
	out.Monsters = cloneTable(s.Monsters)
	out.NPCs = cloneTable(s.NPCs)
	out.Ground = cloneTable(s.Ground)
	return out
}

func cloneItems(in []*packet.UserItem) []*packet.UserItem {
	if in == nil {
		return nil
	}
	out := make([]*packet.UserItem, len(in))
	for i, it := range in {
		out[i] = it.Clone()
	}
	return out
}

func cloneTable(in map[uint32]*Object) map[uint32]*Object {
	out := make(map[uint32]*Object, len(in))
	for id, obj := range in {
		cp := *obj
		out[id] = &cp
	}
	return out
}

// World guards State with a single-writer lock. Reducers run on the
// receive goroutine under the write lock and never block; everyone else
// reads through View or Snapshot.
type World struct {
	mu    sync.RWMutex
	state State
}

func New() *World {
	return &World{state: newState()}
}

// View runs fn under the read lock. fn must not retain pointers into the
// state or block.
func (w *World) View(fn func(s *State)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(&w.state)
}

// Update runs fn under the write lock.
func (w *World) Update(fn func(s *State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.state)
}

// Snapshot returns a deep copy safe to keep and mutate.
func (w *World) Snapshot() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.clone()
}
