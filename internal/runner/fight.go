package runner

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/danmuck/mirbot/internal/bot"
	logs "github.com/danmuck/mirbot/internal/logging"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/world"
)

type FightConfig struct {
	HPPotion    string
	HPThreshold float64
	MPPotion    string
	MPThreshold float64
	// PickupEvery kills between loot sweeps; 0 never loots.
	PickupEvery int
	Scan        time.Duration
	Idle        time.Duration
	Revive      bool
}

func DefaultFightConfig() FightConfig {
	return FightConfig{
		HPPotion:    "HP",
		HPThreshold: 0.5,
		MPPotion:    "MP",
		MPThreshold: 0.3,
		PickupEvery: 3,
		Scan:        100 * time.Millisecond,
		Idle:        500 * time.Millisecond,
		Revive:      true,
	}
}

type planKind int

const (
	planIdle planKind = iota
	planRevive
	planHeal
	planPickUp
	planApproach
	planAttack
	planStop
)

func (k planKind) String() string {
	switch k {
	case planRevive:
		return "revive"
	case planHeal:
		return "heal"
	case planPickUp:
		return "pick_up"
	case planApproach:
		return "approach"
	case planAttack:
		return "attack"
	case planStop:
		return "stop"
	default:
		return "idle"
	}
}

type plan struct {
	kind   planKind
	dir    bot.Direction
	item   uint64
	target uint32
}

// decide picks the next move from a snapshot. Survival beats looting, and
// looting beats fighting once a sweep is due.
func decide(st world.State, cfg FightConfig, lootDue bool) plan {
	c := st.Character
	if c.Dead {
		if cfg.Revive {
			return plan{kind: planRevive}
		}
		return plan{kind: planStop}
	}
	if it := lowVital(st, c.HP, c.MaxHP, cfg.HPThreshold, cfg.HPPotion); it != nil {
		return plan{kind: planHeal, item: it.UniqueID}
	}
	if it := lowVital(st, c.MP, c.MaxMP, cfg.MPThreshold, cfg.MPPotion); it != nil {
		return plan{kind: planHeal, item: it.UniqueID}
	}
	if lootDue {
		if obj, ok := nearest(c.Location, st.Ground, false); ok {
			if obj.Location == c.Location {
				return plan{kind: planPickUp, target: obj.ID}
			}
			return plan{kind: planApproach, dir: bot.DirectionBetween(c.Location, obj.Location), target: obj.ID}
		}
	}
	if m, ok := nearest(c.Location, st.Monsters, true); ok {
		dir := bot.DirectionBetween(c.Location, m.Location)
		if bot.Adjacent(c.Location, m.Location) {
			return plan{kind: planAttack, dir: dir, target: m.ID}
		}
		return plan{kind: planApproach, dir: dir, target: m.ID}
	}
	return plan{kind: planIdle}
}

func lowVital(st world.State, cur, maxv int32, threshold float64, potion string) *packet.UserItem {
	if maxv <= 0 || potion == "" || float64(cur)/float64(maxv) >= threshold {
		return nil
	}
	needle := strings.ToLower(potion)
	for _, it := range st.Inventory {
		if it == nil {
			continue
		}
		if n := st.ItemName(it); n != "" && strings.Contains(strings.ToLower(n), needle) {
			return it
		}
	}
	return nil
}

func nearest(at packet.Point, table map[uint32]*world.Object, aliveOnly bool) (*world.Object, bool) {
	var best *world.Object
	var bestDist int32
	for _, obj := range table {
		if aliveOnly && obj.Dead {
			continue
		}
		d := bot.Distance(at, obj.Location)
		if best == nil || d < bestDist || (d == bestDist && obj.ID < best.ID) {
			best, bestDist = obj, d
		}
	}
	return best, best != nil
}

type fighter struct {
	bot *bot.Bot
	cfg FightConfig

	target  atomic.Uint32
	kills   atomic.Int64
	sweptAt int64
}

func newFighter(b *bot.Bot, cfg FightConfig) *fighter {
	f := &fighter{bot: b, cfg: cfg}
	b.OnObjectDied(func(m *server.ObjectDied) {
		if m.ObjectID == f.target.Load() {
			n := f.kills.Add(1)
			logs.Infof("runner.fighter kill target=%d kills=%d", m.ObjectID, n)
		}
	})
	return f
}

func (f *fighter) lootDue() bool {
	if f.cfg.PickupEvery <= 0 {
		return false
	}
	return f.kills.Load()-f.sweptAt >= int64(f.cfg.PickupEvery)
}

func (f *fighter) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !f.bot.Connected() {
			return ErrSessionLost
		}
		if err := f.step(ctx); err != nil {
			return err
		}
	}
}

func (f *fighter) step(ctx context.Context) error {
	st := f.bot.State()
	due := f.lootDue()
	if due && len(st.Ground) == 0 {
		f.sweptAt = f.kills.Load()
		due = false
	}
	p := decide(st, f.cfg, due)
	logs.Tracef("runner.fighter.step plan=%s target=%d dir=%s", p.kind, p.target, p.dir)

	var err error
	switch p.kind {
	case planStop:
		logs.Warnf("runner.fighter character died, revive disabled")
		return ErrSessionLost
	case planRevive:
		logs.Infof("runner.fighter reviving in town")
		err = f.bot.Revive(ctx)
	case planHeal:
		err = f.bot.UseItem(ctx, p.item, bot.GridInventory)
	case planPickUp:
		// One pick-up per sweep; a full bag would otherwise pin the bot here.
		f.sweptAt = f.kills.Load()
		err = f.bot.PickUp(ctx)
	case planApproach:
		err = f.bot.Walk(ctx, p.dir)
	case planAttack:
		f.target.Store(p.target)
		err = f.bot.Attack(ctx, p.dir, 0)
	default:
		return f.bot.Wait(ctx, f.cfg.Idle)
	}
	if err != nil {
		return err
	}
	return f.bot.Wait(ctx, f.cfg.Scan)
}
