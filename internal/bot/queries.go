package bot

import (
	"sort"
	"strings"

	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/world"
)

// NearbyMonsters lists visible monsters nearest first.
func (b *Bot) NearbyMonsters(aliveOnly bool) []world.Object {
	var out []world.Object
	var at packet.Point
	b.world.View(func(s *world.State) {
		at = s.Character.Location
		for _, m := range s.Monsters {
			if aliveOnly && m.Dead {
				continue
			}
			out = append(out, *m)
		}
	})
	byDistance(at, out)
	return out
}

// NearbyPlayers lists visible players nearest first.
func (b *Bot) NearbyPlayers() []world.Object {
	var out []world.Object
	var at packet.Point
	b.world.View(func(s *world.State) {
		at = s.Character.Location
		for _, p := range s.Players {
			out = append(out, *p)
		}
	})
	byDistance(at, out)
	return out
}

// FindNPC returns the first visible NPC whose name contains name, ignoring
// case.
func (b *Bot) FindNPC(name string) (world.Object, bool) {
	needle := strings.ToLower(name)
	var found world.Object
	var ok bool
	b.world.View(func(s *world.State) {
		ids := make([]uint32, 0, len(s.NPCs))
		for id := range s.NPCs {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			if npc := s.NPCs[id]; strings.Contains(strings.ToLower(npc.Name), needle) {
				found, ok = *npc, true
				return
			}
		}
	})
	return found, ok
}

// FindInventoryItem returns a copy of the first inventory item whose
// definition name contains name. Items whose definition has not arrived yet
// never match.
func (b *Bot) FindInventoryItem(name string) (*packet.UserItem, bool) {
	needle := strings.ToLower(name)
	var found *packet.UserItem
	b.world.View(func(s *world.State) {
		for _, it := range s.Inventory {
			if it == nil {
				continue
			}
			if n := s.ItemName(it); n != "" && strings.Contains(strings.ToLower(n), needle) {
				found = it.Clone()
				return
			}
		}
	})
	return found, found != nil
}

// DirectionTo faces from the character towards target.
func (b *Bot) DirectionTo(target packet.Point) Direction {
	var at packet.Point
	b.world.View(func(s *world.State) { at = s.Character.Location })
	return DirectionBetween(at, target)
}

// Location is the character's last known tile.
func (b *Bot) Location() packet.Point {
	var at packet.Point
	b.world.View(func(s *world.State) { at = s.Character.Location })
	return at
}

func byDistance(at packet.Point, objs []world.Object) {
	sort.SliceStable(objs, func(i, j int) bool {
		di, dj := Distance(at, objs[i].Location), Distance(at, objs[j].Location)
		if di != dj {
			return di < dj
		}
		return objs[i].ID < objs[j].ID
	})
}
