package runner

import (
	"testing"

	"github.com/danmuck/mirbot/internal/bot"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/world"
)

func pt(x, y int32) packet.Point {
	return packet.Point{X: x, Y: y}
}

func scene(t *testing.T, msgs ...packet.Message) world.State {
	t.Helper()
	w := world.New()
	w.Apply(&server.NewItemInfo{Info: packet.ItemInfo{Index: 1, Name: "(HP)DrugSmall"}})
	w.Apply(&server.NewItemInfo{Info: packet.ItemInfo{Index: 2, Name: "(MP)DrugSmall"}})
	w.Apply(&server.UserInformation{
		Location:  pt(10, 10),
		HP:        100,
		MP:        50,
		Inventory: []*packet.UserItem{{UniqueID: 21, ItemIndex: 1}, {UniqueID: 22, ItemIndex: 2}},
	})
	for _, m := range msgs {
		if !w.Apply(m) {
			t.Fatalf("no reducer for %T", m)
		}
	}
	return w.Snapshot()
}

func TestDecide(t *testing.T) {
	cfg := DefaultFightConfig()
	cases := []struct {
		name    string
		st      world.State
		noRev   bool
		lootDue bool
		want    plan
	}{
		{
			name: "nothing around",
			st:   scene(t),
			want: plan{kind: planIdle},
		},
		{
			name: "adjacent monster is attacked",
			st:   scene(t, &server.ObjectMonster{ObjectID: 5, Location: pt(11, 9)}),
			want: plan{kind: planAttack, dir: bot.UpRight, target: 5},
		},
		{
			name: "distant monster is approached",
			st:   scene(t, &server.ObjectMonster{ObjectID: 5, Location: pt(10, 14)}),
			want: plan{kind: planApproach, dir: bot.Down, target: 5},
		},
		{
			name: "dead monsters are ignored",
			st: scene(t,
				&server.ObjectMonster{ObjectID: 5, Location: pt(10, 11), Dead: true},
				&server.ObjectMonster{ObjectID: 6, Location: pt(7, 10)},
			),
			want: plan{kind: planApproach, dir: bot.Left, target: 6},
		},
		{
			name: "low hp drinks before fighting",
			st: scene(t,
				&server.ObjectMonster{ObjectID: 5, Location: pt(10, 11)},
				&server.HealthChanged{HP: 30, MP: 50},
			),
			want: plan{kind: planHeal, item: 21},
		},
		{
			name: "low mp drinks mana",
			st:   scene(t, &server.HealthChanged{HP: 100, MP: 10}),
			want: plan{kind: planHeal, item: 22},
		},
		{
			name: "dead character revives",
			st:   scene(t, &server.Death{}),
			want: plan{kind: planRevive},
		},
		{
			name: "dead character without revive stops",
			st:    scene(t, &server.Death{}),
			noRev: true,
			want:  plan{kind: planStop},
		},
		{
			name:    "due loot under foot is picked up",
			st:      scene(t, &server.ObjectGold{ObjectID: 9, Gold: 5, Location: pt(10, 10)}, &server.ObjectMonster{ObjectID: 5, Location: pt(10, 11)}),
			lootDue: true,
			want:    plan{kind: planPickUp, target: 9},
		},
		{
			name:    "due loot elsewhere is walked to",
			st:      scene(t, &server.ObjectItem{ObjectID: 9, Location: pt(12, 10)}),
			lootDue: true,
			want:    plan{kind: planApproach, dir: bot.Right, target: 9},
		},
		{
			name: "loot not due is ignored",
			st:   scene(t, &server.ObjectItem{ObjectID: 9, Location: pt(10, 10)}),
			want: plan{kind: planIdle},
		},
	}
	for _, tc := range cases {
		c := cfg
		c.Revive = !tc.noRev
		if got := decide(tc.st, c, tc.lootDue); got != tc.want {
			t.Fatalf("%s: got %+v (%s) want %+v (%s)", tc.name, got, got.kind, tc.want, tc.want.kind)
		}
	}
}
