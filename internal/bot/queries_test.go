package bot

import (
	"testing"

	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/testutil/testlog"
)

func offlineBot(t *testing.T) *Bot {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Conn.Address = "127.0.0.1:1"
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return b
}

func TestNearbyMonstersSortedAndFiltered(t *testing.T) {
	testlog.Start(t)
	b := offlineBot(t)
	w := b.World()
	w.Apply(&server.UserInformation{Location: packet.Point{X: 50, Y: 50}})
	w.Apply(&server.ObjectMonster{ObjectID: 1, Name: "far", Location: packet.Point{X: 60, Y: 50}})
	w.Apply(&server.ObjectMonster{ObjectID: 2, Name: "near", Location: packet.Point{X: 51, Y: 49}})
	w.Apply(&server.ObjectMonster{ObjectID: 3, Name: "corpse", Location: packet.Point{X: 50, Y: 51}, Dead: true})
	w.Apply(&server.ObjectMonster{ObjectID: 4, Name: "mid", Location: packet.Point{X: 47, Y: 52}})

	alive := b.NearbyMonsters(true)
	if len(alive) != 3 {
		t.Fatalf("alive=%d", len(alive))
	}
	for i, want := range []string{"near", "mid", "far"} {
		if alive[i].Name != want {
			t.Fatalf("order[%d]=%s want %s", i, alive[i].Name, want)
		}
	}
	all := b.NearbyMonsters(false)
	if len(all) != 4 || all[0].Name != "near" || all[1].Name != "corpse" {
		t.Fatalf("all=%+v", all)
	}

	all[0].Name = "mutated"
	if b.NearbyMonsters(true)[0].Name != "near" {
		t.Fatalf("query result aliases world state")
	}
}

func TestFindNPCAndInventoryItem(t *testing.T) {
	testlog.Start(t)
	b := offlineBot(t)
	w := b.World()
	w.Apply(&server.ObjectNPC{ObjectID: 8, Name: "Bichon Wall_Guard"})
	w.Apply(&server.ObjectNPC{ObjectID: 3, Name: "Shopkeeper_Ann"})
	w.Apply(&server.NewItemInfo{Info: packet.ItemInfo{Index: 1, Name: "(HP)DrugSmall"}})
	w.Apply(&server.UserInformation{Inventory: []*packet.UserItem{
		nil,
		{UniqueID: 10, ItemIndex: 2},
		{UniqueID: 11, ItemIndex: 1, Count: 6},
	}})

	npc, ok := b.FindNPC("shopkeeper")
	if !ok || npc.ID != 3 {
		t.Fatalf("npc=%+v ok=%v", npc, ok)
	}
	if _, ok := b.FindNPC("banker"); ok {
		t.Fatalf("found missing npc")
	}

	it, ok := b.FindInventoryItem("hp)drug")
	if !ok || it.UniqueID != 11 {
		t.Fatalf("item=%+v ok=%v", it, ok)
	}
	it.Count = 0
	if again, _ := b.FindInventoryItem("drug"); again.Count != 6 {
		t.Fatalf("item result aliases world state")
	}
	if _, ok := b.FindInventoryItem("sword"); ok {
		t.Fatalf("matched an item with no known definition")
	}
}

func TestDirectionToUsesCharacterLocation(t *testing.T) {
	testlog.Start(t)
	b := offlineBot(t)
	b.World().Apply(&server.UserLocation{Location: packet.Point{X: 5, Y: 5}})
	if d := b.DirectionTo(packet.Point{X: 5, Y: 9}); d != Down {
		t.Fatalf("direction=%s", d)
	}
}
