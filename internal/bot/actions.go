package bot

import (
	"context"
	"fmt"

	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/client"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/world"
)

// Item grids and NPC panels the verbs address.
const (
	GridInventory uint8 = 1
	GridEquipment uint8 = 2

	PanelBuy uint8 = 0

	// MainPage opens an NPC's root dialog.
	MainPage = "@Main"
)

func face(d Direction) func(*world.State) {
	return func(s *world.State) { s.Character.Direction = uint8(d) }
}

func move(d Direction, tiles int32) func(*world.State) {
	return func(s *world.State) {
		s.Character.Location = Advance(s.Character.Location, d, tiles)
		s.Character.Direction = uint8(d)
	}
}

// Turn faces d without moving.
func (b *Bot) Turn(ctx context.Context, d Direction) error {
	return b.act(ctx, "turn", &client.Turn{Direction: uint8(d)}, b.cfg.Pacing.Action, face(d))
}

// Walk steps one tile. The local position moves before the server confirms;
// a later UserLocation corrects it if the step was refused.
func (b *Bot) Walk(ctx context.Context, d Direction) error {
	return b.act(ctx, "walk", &client.Walk{Direction: uint8(d)}, b.cfg.Pacing.Walk, move(d, 1))
}

// Run moves two tiles.
func (b *Bot) Run(ctx context.Context, d Direction) error {
	return b.act(ctx, "run", &client.Run{Direction: uint8(d)}, b.cfg.Pacing.Run, move(d, 2))
}

// Attack swings at the tile in direction d. spell 0 is a plain hit.
func (b *Bot) Attack(ctx context.Context, d Direction, spell uint8) error {
	return b.act(ctx, "attack", &client.Attack{Direction: uint8(d), Spell: spell}, b.cfg.Pacing.Attack, face(d))
}

// RangeAttack fires at a target from the current tile.
func (b *Bot) RangeAttack(ctx context.Context, d Direction, targetID uint32, target packet.Point) error {
	var at packet.Point
	b.world.View(func(s *world.State) { at = s.Character.Location })
	msg := &client.RangeAttack{Direction: uint8(d), Location: at, TargetID: targetID, TargetLocation: target}
	return b.act(ctx, "range_attack", msg, b.cfg.Pacing.Attack, face(d))
}

// Cast casts spell at targetID from the current tile and facing.
func (b *Bot) Cast(ctx context.Context, spell uint8, targetID uint32) error {
	var (
		at  packet.Point
		dir uint8
	)
	b.world.View(func(s *world.State) {
		at = s.Character.Location
		dir = s.Character.Direction
	})
	return b.CastAt(ctx, spell, targetID, at, Direction(dir))
}

// CastAt casts spell aimed at loc while facing d.
func (b *Bot) CastAt(ctx context.Context, spell uint8, targetID uint32, loc packet.Point, d Direction) error {
	var self uint32
	b.world.View(func(s *world.State) { self = s.Character.ObjectID })
	msg := &client.Magic{ObjectID: self, Spell: spell, Direction: uint8(d), TargetID: targetID, Location: loc}
	return b.act(ctx, "magic", msg, b.cfg.Pacing.Magic, nil)
}

func (b *Bot) UseItem(ctx context.Context, uniqueID uint64, grid uint8) error {
	return b.act(ctx, "use_item", &client.UseItem{UniqueID: uniqueID, Grid: grid}, b.cfg.Pacing.Action, nil)
}

func (b *Bot) DropItem(ctx context.Context, uniqueID uint64, count uint16) error {
	return b.act(ctx, "drop_item", &client.DropItem{UniqueID: uniqueID, Count: count}, b.cfg.Pacing.Action, nil)
}

func (b *Bot) DropGold(ctx context.Context, amount uint32) error {
	return b.act(ctx, "drop_gold", &client.DropGold{Amount: amount}, b.cfg.Pacing.Action, nil)
}

// PickUp collects whatever lies on the current tile.
func (b *Bot) PickUp(ctx context.Context) error {
	return b.act(ctx, "pick_up", &client.PickUp{}, b.cfg.Pacing.Action, nil)
}

func (b *Bot) MoveItem(ctx context.Context, grid uint8, from, to int32) error {
	return b.act(ctx, "move_item", &client.MoveItem{Grid: grid, From: from, To: to}, b.cfg.Pacing.Action, nil)
}

func (b *Bot) EquipItem(ctx context.Context, grid uint8, uniqueID uint64, slot int32) error {
	return b.act(ctx, "equip_item", &client.EquipItem{Grid: grid, UniqueID: uniqueID, To: slot}, b.cfg.Pacing.Action, nil)
}

// TalkToNPC opens the dialog page key on the NPC and returns its lines.
func (b *Bot) TalkToNPC(ctx context.Context, objectID uint32, key string) ([]string, error) {
	if key == "" {
		key = MainPage
	}
	b.world.Update(func(s *world.State) { s.NPCPage = nil })
	m, err := b.request(ctx, &client.CallNPC{ObjectID: objectID, Key: key}, b.cfg.Timeouts.NPC, server.KindNPCResponse)
	if err != nil {
		return nil, fmt.Errorf("bot: talk to npc %d: %w", objectID, err)
	}
	page := m.Message.(*server.NPCResponse).Page
	return append([]string(nil), page...), nil
}

func (b *Bot) BuyItem(ctx context.Context, itemIndex uint64, count uint16, panel uint8) error {
	return b.act(ctx, "buy_item", &client.BuyItem{ItemIndex: itemIndex, Count: count, PanelType: panel}, b.cfg.Pacing.Action, nil)
}

func (b *Bot) SellItem(ctx context.Context, uniqueID uint64, count uint16) error {
	return b.act(ctx, "sell_item", &client.SellItem{UniqueID: uniqueID, Count: count}, b.cfg.Pacing.Action, nil)
}

// Say sends a chat line; slash commands are passed through to the server.
func (b *Bot) Say(ctx context.Context, message string) error {
	return b.act(ctx, "say", &client.Chat{Message: message}, b.cfg.Pacing.Action, nil)
}

// Revive asks for a town revive and waits for it to land.
func (b *Bot) Revive(ctx context.Context) error {
	if _, err := b.request(ctx, &client.TownRevive{}, b.cfg.Timeouts.Revive, server.KindRevived); err != nil {
		return fmt.Errorf("bot: revive: %w", err)
	}
	b.world.Update(func(s *world.State) { s.Character.Dead = false })
	return nil
}
