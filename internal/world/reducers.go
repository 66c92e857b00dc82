package world

import (
	"fmt"
	"sort"

	"github.com/danmuck/mirbot/internal/conn"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
)

const startGameOK = 4

type reducer func(s *State, msg packet.Message)

func reduce[M packet.Message](fn func(*State, M)) reducer {
	return func(s *State, msg packet.Message) {
		if m, ok := msg.(M); ok {
			fn(s, m)
		}
	}
}

var reducers = map[server.Kind]reducer{
	server.KindConnected:       reduce(onConnected),
	server.KindLoginSuccess:    reduce(onLoginSuccess),
	server.KindStartGame:       reduce(onStartGame),
	server.KindMapInformation:  reduce(onMapInformation),
	server.KindUserInformation: reduce(onUserInformation),
	server.KindUserLocation:    reduce(onUserLocation),
	server.KindHealthChanged:   reduce(onHealthChanged),
	server.KindDeath:           reduce(onDeath),
	server.KindRevived:         reduce(onRevived),
	server.KindPushed:          reduce(onPushed),
	server.KindPoisoned:        reduce(onPoisoned),
	server.KindGainExperience:  reduce(onGainExperience),
	server.KindLevelChanged:    reduce(onLevelChanged),
	server.KindGainedGold:      reduce(onGainedGold),
	server.KindLoseGold:        reduce(onLoseGold),
	server.KindGainedItem:      reduce(onGainedItem),
	server.KindDeleteItem:      reduce(onDeleteItem),
	server.KindNewItemInfo:     reduce(onNewItemInfo),
	server.KindObjectPlayer:    reduce(onObjectPlayer),
	server.KindObjectMonster:   reduce(onObjectMonster),
	server.KindObjectNPC:       reduce(onObjectNPC),
	server.KindObjectItem:      reduce(onObjectItem),
	server.KindObjectGold:      reduce(onObjectGold),
	server.KindObjectRemove:    reduce(onObjectRemove),
	server.KindObjectTurn:      reduce(func(s *State, m *server.ObjectTurn) { s.moveObject(m.ObjectMove) }),
	server.KindObjectWalk:      reduce(func(s *State, m *server.ObjectWalk) { s.moveObject(m.ObjectMove) }),
	server.KindObjectRun:       reduce(func(s *State, m *server.ObjectRun) { s.moveObject(m.ObjectMove) }),
	server.KindObjectDied:      reduce(onObjectDied),
	server.KindObjectHealth:    reduce(onObjectHealth),
	server.KindAddBuff:         reduce(onAddBuff),
	server.KindRemoveBuff:      reduce(onRemoveBuff),
	server.KindMapChanged:      reduce(onMapChanged),
	server.KindNPCResponse:     reduce(onNPCResponse),
	server.KindNPCGoods:        reduce(onNPCGoods),
	server.KindLogOutSuccess:   reduce(onLogOutSuccess),
}

// Kinds lists the server kinds the world folds.
func Kinds() []server.Kind {
	out := make([]server.Kind, 0, len(reducers))
	for k := range reducers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Register hooks w's reducers into c's per-kind dispatch.
func Register(c *conn.Conn, w *World) {
	for _, kind := range Kinds() {
		c.OnPacket(int16(kind), func(msg packet.Message) { w.Apply(msg) })
	}
}

// Apply folds one message into the state. It reports whether msg's kind has
// a reducer.
func (w *World) Apply(msg packet.Message) bool {
	r, ok := reducers[server.Kind(msg.Kind())]
	if !ok {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	r(&w.state, msg)
	return true
}

func onConnected(s *State, _ *server.Connected) {
	s.Stage = StageLogin
}

func onLoginSuccess(s *State, m *server.LoginSuccess) {
	s.Characters = m.Characters
	s.Stage = StageSelect
}

func onStartGame(s *State, m *server.StartGame) {
	if m.Result == startGameOK {
		s.Stage = StageGame
	}
}

func onMapInformation(s *State, m *server.MapInformation) {
	s.Map = MapInfo{Index: m.MapIndex, FileName: m.FileName, Title: m.Title}
}

func onUserInformation(s *State, m *server.UserInformation) {
	s.Character = Character{
		ObjectID:      m.ObjectID,
		Name:          m.Name,
		Class:         m.Class,
		Gender:        m.Gender,
		Level:         m.Level,
		Location:      m.Location,
		Direction:     m.Direction,
		HP:            m.HP,
		MP:            m.MP,
		MaxHP:         m.HP,
		MaxMP:         m.MP,
		Experience:    m.Experience,
		MaxExperience: m.MaxExperience,
		Gold:          m.Gold,
		Credit:        m.Credit,
	}
	s.Inventory = m.Inventory
	s.Equipment = m.Equipment
	s.Magics = m.Magics
}

func onUserLocation(s *State, m *server.UserLocation) {
	s.Character.Location = m.Location
	s.Character.Direction = m.Direction
}

func onHealthChanged(s *State, m *server.HealthChanged) {
	s.Character.HP = m.HP
	s.Character.MP = m.MP
	if m.HP > s.Character.MaxHP {
		s.Character.MaxHP = m.HP
	}
	if m.MP > s.Character.MaxMP {
		s.Character.MaxMP = m.MP
	}
}

func onDeath(s *State, m *server.Death) {
	s.Character.Dead = true
	s.Character.Location = m.Location
	s.Character.Direction = m.Direction
}

func onRevived(s *State, _ *server.Revived) {
	s.Character.Dead = false
}

func onPushed(s *State, m *server.Pushed) {
	s.Character.Location = m.Location
	s.Character.Direction = m.Direction
}

func onPoisoned(s *State, m *server.Poisoned) {
	s.Character.Poison = m.Poison
}

func onGainExperience(s *State, m *server.GainExperience) {
	s.Character.Experience += int64(m.Amount)
}

func onLevelChanged(s *State, m *server.LevelChanged) {
	s.Character.Level = m.Level
	s.Character.Experience = m.Experience
	s.Character.MaxExperience = m.MaxExperience
}

func onGainedGold(s *State, m *server.GainedGold) {
	s.Character.Gold += m.Gold
}

func onLoseGold(s *State, m *server.LoseGold) {
	if m.Gold >= s.Character.Gold {
		s.Character.Gold = 0
		return
	}
	s.Character.Gold -= m.Gold
}

// onGainedItem fills the first empty slot so slot index keeps its meaning.
func onGainedItem(s *State, m *server.GainedItem) {
	if m.Item == nil {
		return
	}
	for i, slot := range s.Inventory {
		if slot == nil {
			s.Inventory[i] = m.Item
			return
		}
	}
	s.Inventory = append(s.Inventory, m.Item)
}

func onDeleteItem(s *State, m *server.DeleteItem) {
	for i, it := range s.Inventory {
		if it == nil || it.UniqueID != m.UniqueID {
			continue
		}
		if m.Count >= it.Count {
			s.Inventory[i] = nil
		} else {
			it.Count -= m.Count
		}
		return
	}
}

func onNewItemInfo(s *State, m *server.NewItemInfo) {
	s.ItemInfos[m.Info.Index] = m.Info
}

func onObjectPlayer(s *State, m *server.ObjectPlayer) {
	s.Players[m.ObjectID] = &Object{
		ID:        m.ObjectID,
		Category:  CategoryPlayer,
		Name:      m.Name,
		Location:  m.Location,
		Direction: m.Direction,
		Dead:      m.Dead,
	}
}

func onObjectMonster(s *State, m *server.ObjectMonster) {
	s.Monsters[m.ObjectID] = &Object{
		ID:        m.ObjectID,
		Category:  CategoryMonster,
		Name:      m.Name,
		Location:  m.Location,
		Direction: m.Direction,
		Dead:      m.Dead,
		Image:     m.Image,
	}
}

func onObjectNPC(s *State, m *server.ObjectNPC) {
	s.NPCs[m.ObjectID] = &Object{
		ID:        m.ObjectID,
		Category:  CategoryNPC,
		Name:      m.Name,
		Location:  m.Location,
		Direction: m.Direction,
		Image:     m.Image,
	}
}

func onObjectItem(s *State, m *server.ObjectItem) {
	s.Ground[m.ObjectID] = &Object{
		ID:       m.ObjectID,
		Category: CategoryGroundItem,
		Name:     m.Name,
		Location: m.Location,
		Image:    m.Image,
	}
}

func onObjectGold(s *State, m *server.ObjectGold) {
	s.Ground[m.ObjectID] = &Object{
		ID:       m.ObjectID,
		Category: CategoryGroundItem,
		Name:     fmt.Sprintf("Gold (%d)", m.Gold),
		Location: m.Location,
		Gold:     m.Gold,
	}
}

// onObjectRemove drops id from every table; ids are not assumed unique
// across categories.
func onObjectRemove(s *State, m *server.ObjectRemove) {
	delete(s.Players, m.ObjectID)
	delete(s.Monsters, m.ObjectID)
	delete(s.NPCs, m.ObjectID)
	delete(s.Ground, m.ObjectID)
}

// moveObject updates the first table holding the id, searching players,
// monsters then NPCs. Unknown ids are ignored.
func (s *State) moveObject(m server.ObjectMove) {
	for _, table := range []map[uint32]*Object{s.Players, s.Monsters, s.NPCs} {
		if obj, ok := table[m.ObjectID]; ok {
			obj.Location = m.Location
			obj.Direction = m.Direction
			return
		}
	}
}

func onObjectDied(s *State, m *server.ObjectDied) {
	for _, table := range []map[uint32]*Object{s.Players, s.Monsters} {
		if obj, ok := table[m.ObjectID]; ok {
			obj.Dead = true
			obj.Location = m.Location
			return
		}
	}
}

func onObjectHealth(s *State, m *server.ObjectHealth) {
	for _, table := range []map[uint32]*Object{s.Players, s.Monsters} {
		if obj, ok := table[m.ObjectID]; ok {
			obj.HealthPercent = m.Percent
			obj.HealthKnown = true
			return
		}
	}
}

func onAddBuff(s *State, m *server.AddBuff) {
	s.Buffs[m.Buff.Type] = m.Buff
}

func onRemoveBuff(s *State, m *server.RemoveBuff) {
	delete(s.Buffs, m.Type)
}

// onMapChanged swaps map identity and empties all four nearby tables in one
// step under the caller's write lock.
func onMapChanged(s *State, m *server.MapChanged) {
	s.Map = MapInfo{Index: m.MapIndex, FileName: m.FileName, Title: m.Title}
	s.Character.Location = m.Location
	s.Character.Direction = m.Direction
	s.clearNearby()
}

func onNPCResponse(s *State, m *server.NPCResponse) {
	s.NPCPage = m.Page
}

func onNPCGoods(s *State, m *server.NPCGoods) {
	s.Goods = m.Goods
}

func onLogOutSuccess(s *State, m *server.LogOutSuccess) {
	s.Characters = m.Characters
	s.Stage = StageSelect
	s.clearNearby()
}
