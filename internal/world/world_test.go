package world

import (
	"sync"
	"testing"

	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/testutil/testlog"
)

func pt(x, y int32) packet.Point {
	return packet.Point{X: x, Y: y}
}

func apply(t *testing.T, w *World, msgs ...packet.Message) {
	t.Helper()
	for _, m := range msgs {
		if !w.Apply(m) {
			t.Fatalf("no reducer for %T", m)
		}
	}
}

func populate(t *testing.T, w *World) {
	t.Helper()
	apply(t, w,
		&server.ObjectPlayer{ObjectID: 1, Name: "p", Location: pt(1, 1)},
		&server.ObjectMonster{ObjectID: 2, Name: "m", Location: pt(2, 2)},
		&server.ObjectNPC{ObjectID: 3, Name: "n", Location: pt(3, 3)},
		&server.ObjectItem{ObjectID: 4, Name: "i", Location: pt(4, 4)},
		&server.ObjectGold{ObjectID: 5, Gold: 10, Location: pt(5, 5)},
	)
}

func TestMapChangeClearsAllTables(t *testing.T) {
	testlog.Start(t)
	w := New()
	populate(t, w)
	apply(t, w, &server.MapChanged{MapIndex: 9, FileName: "9", Title: "Cave", Location: pt(50, 60), Direction: 3})

	s := w.Snapshot()
	if len(s.Players)+len(s.Monsters)+len(s.NPCs)+len(s.Ground) != 0 {
		t.Fatalf("tables not cleared: %d %d %d %d", len(s.Players), len(s.Monsters), len(s.NPCs), len(s.Ground))
	}
	if s.Map.Index != 9 || s.Map.Title != "Cave" {
		t.Fatalf("map=%+v", s.Map)
	}
	if s.Character.Location != pt(50, 60) || s.Character.Direction != 3 {
		t.Fatalf("character=%+v", s.Character)
	}
}

func TestMapChangeIsNeverObservedPartially(t *testing.T) {
	testlog.Start(t)
	w := New()
	populate(t, w)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	bad := make(chan string, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			w.View(func(s *State) {
				n := len(s.Players) + len(s.Monsters) + len(s.NPCs) + len(s.Ground)
				if n != 0 && n != 5 {
					select {
					case bad <- "partial clear observed":
					default:
					}
				}
				if n == 0 && s.Map.Index != 9 {
					select {
					case bad <- "tables cleared before map identity changed":
					default:
					}
				}
			})
		}
	}()
	apply(t, w, &server.MapChanged{MapIndex: 9})
	close(stop)
	wg.Wait()
	select {
	case msg := <-bad:
		t.Fatalf("%s", msg)
	default:
	}
}

func TestEntityLifecycle(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w, &server.ObjectMonster{ObjectID: 5, Name: "Hen", Location: pt(10, 10)})
	apply(t, w, &server.ObjectWalk{ObjectMove: server.ObjectMove{ObjectID: 5, Location: pt(10, 11), Direction: 4}})
	w.View(func(s *State) {
		if s.Monsters[5].Location != pt(10, 11) {
			t.Fatalf("after walk: %+v", s.Monsters[5])
		}
	})

	apply(t, w, &server.ObjectDied{ObjectID: 5, Location: pt(10, 12), Direction: 1})
	w.View(func(s *State) {
		m := s.Monsters[5]
		if !m.Dead || m.Location != pt(10, 12) {
			t.Fatalf("after died: %+v", m)
		}
		if m.Direction != 4 {
			t.Fatalf("death changed facing to %d", m.Direction)
		}
	})

	apply(t, w, &server.ObjectRemove{ObjectID: 5})
	w.View(func(s *State) {
		if _, ok := s.Lookup(5); ok {
			t.Fatalf("id 5 still present")
		}
	})
}

func TestRemoveDeletesFromEveryTable(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w,
		&server.ObjectPlayer{ObjectID: 7},
		&server.ObjectMonster{ObjectID: 7},
		&server.ObjectItem{ObjectID: 7},
		&server.ObjectRemove{ObjectID: 7},
	)
	s := w.Snapshot()
	if len(s.Players)+len(s.Monsters)+len(s.Ground) != 0 {
		t.Fatalf("id 7 survived removal")
	}
}

func TestMoveUpdatesFirstMatchOnly(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w,
		&server.ObjectPlayer{ObjectID: 8, Location: pt(0, 0)},
		&server.ObjectMonster{ObjectID: 8, Location: pt(0, 0)},
		&server.ObjectRun{ObjectMove: server.ObjectMove{ObjectID: 8, Location: pt(2, 0), Direction: 2}},
	)
	s := w.Snapshot()
	if s.Players[8].Location != pt(2, 0) {
		t.Fatalf("player not moved: %+v", s.Players[8])
	}
	if s.Monsters[8].Location != pt(0, 0) {
		t.Fatalf("monster should be untouched: %+v", s.Monsters[8])
	}
}

func TestUnknownObjectUpdatesAreNoops(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w,
		&server.ObjectTurn{ObjectMove: server.ObjectMove{ObjectID: 99}},
		&server.ObjectDied{ObjectID: 99},
		&server.ObjectHealth{ObjectID: 99, Percent: 50},
		&server.ObjectRemove{ObjectID: 99},
		&server.DeleteItem{UniqueID: 99, Count: 1},
	)
	snap := w.Snapshot()
	if _, ok := snap.Lookup(99); ok {
		t.Fatalf("unknown id materialised")
	}
}

func TestGainedItemReusesFirstEmptySlot(t *testing.T) {
	testlog.Start(t)
	w := New()
	a := &packet.UserItem{UniqueID: 1, Count: 1}
	apply(t, w, &server.UserInformation{Inventory: []*packet.UserItem{nil, a}})
	apply(t, w, &server.GainedItem{Item: &packet.UserItem{UniqueID: 2, Count: 1}})

	s := w.Snapshot()
	if len(s.Inventory) != 2 {
		t.Fatalf("inventory grew: %d", len(s.Inventory))
	}
	if s.Inventory[0] == nil || s.Inventory[0].UniqueID != 2 {
		t.Fatalf("slot 0=%+v", s.Inventory[0])
	}

	apply(t, w, &server.GainedItem{Item: &packet.UserItem{UniqueID: 3, Count: 1}})
	s = w.Snapshot()
	if len(s.Inventory) != 3 || s.Inventory[2].UniqueID != 3 {
		t.Fatalf("full inventory should append: %+v", s.Inventory)
	}
}

func TestDeleteItemDecrementsOrClears(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w, &server.UserInformation{Inventory: []*packet.UserItem{{UniqueID: 1, Count: 5}, {UniqueID: 2, Count: 1}}})
	apply(t, w, &server.DeleteItem{UniqueID: 1, Count: 2})
	apply(t, w, &server.DeleteItem{UniqueID: 2, Count: 3})

	s := w.Snapshot()
	if s.Inventory[0] == nil || s.Inventory[0].Count != 3 {
		t.Fatalf("stack not decremented: %+v", s.Inventory[0])
	}
	if s.Inventory[1] != nil {
		t.Fatalf("slot not cleared: %+v", s.Inventory[1])
	}
}

func TestCurrencyAndExperience(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w,
		&server.UserInformation{Gold: 100, Experience: 10, HP: 50, MP: 20},
		&server.GainedGold{Gold: 25},
		&server.LoseGold{Gold: 500},
		&server.GainedGold{Gold: 7},
		&server.GainExperience{Amount: 5},
	)
	c := w.Snapshot().Character
	if c.Gold != 7 {
		t.Fatalf("gold=%d", c.Gold)
	}
	if c.Experience != 15 {
		t.Fatalf("experience=%d", c.Experience)
	}
	if c.MaxHP != 50 || c.MaxMP != 20 {
		t.Fatalf("max vitals=%d/%d", c.MaxHP, c.MaxMP)
	}
}

func TestOwnDeathAndRevive(t *testing.T) {
	testlog.Start(t)
	w := New()
	populate(t, w)
	apply(t, w, &server.Death{Location: pt(7, 7), Direction: 1})
	s := w.Snapshot()
	if !s.Character.Dead || s.Character.Location != pt(7, 7) {
		t.Fatalf("character=%+v", s.Character)
	}
	for _, obj := range s.Monsters {
		if obj.Dead {
			t.Fatalf("own death touched entity tables")
		}
	}
	apply(t, w, &server.Revived{})
	if w.Snapshot().Character.Dead {
		t.Fatalf("still dead after revive")
	}
	apply(t, w, &server.Death{}, &server.UserInformation{Name: "Ayla"})
	if w.Snapshot().Character.Dead {
		t.Fatalf("user information should clear dead")
	}
}

func TestBuffsLastWriteWins(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w,
		&server.AddBuff{Buff: packet.ClientBuff{Type: 3, Caster: "a"}},
		&server.AddBuff{Buff: packet.ClientBuff{Type: 3, Caster: "b"}},
		&server.AddBuff{Buff: packet.ClientBuff{Type: 4, Caster: "c"}},
		&server.RemoveBuff{Type: 4},
	)
	s := w.Snapshot()
	if len(s.Buffs) != 1 || s.Buffs[3].Caster != "b" {
		t.Fatalf("buffs=%+v", s.Buffs)
	}
}

func TestStageTransitions(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w, &server.Connected{})
	if got := w.Snapshot().Stage; got != StageLogin {
		t.Fatalf("stage=%s", got)
	}
	apply(t, w, &server.LoginSuccess{Characters: []packet.SelectInfo{{Index: 1, Name: "Ayla"}}})
	if got := w.Snapshot().Stage; got != StageSelect {
		t.Fatalf("stage=%s", got)
	}
	apply(t, w, &server.StartGame{Result: 2})
	if got := w.Snapshot().Stage; got != StageSelect {
		t.Fatalf("rejected start game changed stage to %s", got)
	}
	apply(t, w, &server.StartGame{Result: 4})
	if got := w.Snapshot().Stage; got != StageGame {
		t.Fatalf("stage=%s", got)
	}

	populate(t, w)
	apply(t, w, &server.LogOutSuccess{Characters: []packet.SelectInfo{{Index: 2, Name: "Bo"}}})
	s := w.Snapshot()
	if s.Stage != StageSelect || len(s.Characters) != 1 || s.Characters[0].Name != "Bo" {
		t.Fatalf("after logout: stage=%s characters=%+v", s.Stage, s.Characters)
	}
	if len(s.Players)+len(s.Monsters)+len(s.NPCs)+len(s.Ground) != 0 {
		t.Fatalf("logout left nearby entities")
	}
}

func TestObjectHealthAndItemInfo(t *testing.T) {
	testlog.Start(t)
	w := New()
	apply(t, w,
		&server.ObjectMonster{ObjectID: 2},
		&server.ObjectHealth{ObjectID: 2, Percent: 40},
		&server.NewItemInfo{Info: packet.ItemInfo{Index: 12, Name: "Potion"}},
		&server.UserInformation{Inventory: []*packet.UserItem{{UniqueID: 1, ItemIndex: 12}}},
	)
	s := w.Snapshot()
	if m := s.Monsters[2]; !m.HealthKnown || m.HealthPercent != 40 {
		t.Fatalf("monster=%+v", m)
	}
	if name := s.ItemName(s.Inventory[0]); name != "Potion" {
		t.Fatalf("item name=%q", name)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	testlog.Start(t)
	w := New()
	populate(t, w)
	apply(t, w, &server.UserInformation{Inventory: []*packet.UserItem{{UniqueID: 1, Count: 4}}})

	s := w.Snapshot()
	s.Monsters[2].Name = "changed"
	s.Inventory[0].Count = 99
	delete(s.Players, 1)

	again := w.Snapshot()
	if again.Monsters[2].Name != "m" || again.Inventory[0].Count != 4 || len(again.Players) != 1 {
		t.Fatalf("snapshot aliases live state")
	}
}

func TestApplyIgnoresUnreducedKinds(t *testing.T) {
	testlog.Start(t)
	if New().Apply(&server.Chat{Message: "hi"}) {
		t.Fatalf("chat has no reducer")
	}
	if len(Kinds()) != len(reducers) {
		t.Fatalf("kinds=%d reducers=%d", len(Kinds()), len(reducers))
	}
}
