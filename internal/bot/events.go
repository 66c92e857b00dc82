package bot

import (
	"github.com/danmuck/mirbot/internal/conn"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
)

// Event hooks run on the receive goroutine after the world has folded the
// message. They must not block; hand work to another goroutine instead.

func (b *Bot) OnChat(fn func(*server.Chat)) {
	conn.Handle(b.conn, server.KindChat, fn)
}

func (b *Bot) OnObjectChat(fn func(*server.ObjectChat)) {
	conn.Handle(b.conn, server.KindObjectChat, fn)
}

// OnStruck fires when the bot's character is hit.
func (b *Bot) OnStruck(fn func(*server.Struck)) {
	conn.Handle(b.conn, server.KindStruck, fn)
}

func (b *Bot) OnObjectStruck(fn func(*server.ObjectStruck)) {
	conn.Handle(b.conn, server.KindObjectStruck, fn)
}

func (b *Bot) OnDamage(fn func(*server.DamageIndicator)) {
	conn.Handle(b.conn, server.KindDamageIndicator, fn)
}

// OnDeath fires when the bot's character dies.
func (b *Bot) OnDeath(fn func(*server.Death)) {
	conn.Handle(b.conn, server.KindDeath, fn)
}

func (b *Bot) OnObjectDied(fn func(*server.ObjectDied)) {
	conn.Handle(b.conn, server.KindObjectDied, fn)
}

func (b *Bot) OnLevelUp(fn func(*server.LevelChanged)) {
	conn.Handle(b.conn, server.KindLevelChanged, fn)
}

func (b *Bot) OnMonsterAppear(fn func(*server.ObjectMonster)) {
	conn.Handle(b.conn, server.KindObjectMonster, fn)
}

func (b *Bot) OnPlayerAppear(fn func(*server.ObjectPlayer)) {
	conn.Handle(b.conn, server.KindObjectPlayer, fn)
}

func (b *Bot) OnMagic(fn func(*server.Magic)) {
	conn.Handle(b.conn, server.KindMagic, fn)
}

// OnPacket registers a raw handler for one server kind.
func (b *Bot) OnPacket(kind server.Kind, h conn.Handler) {
	b.conn.OnPacket(int16(kind), h)
}

// OnAny sees every decoded message after its kind handlers.
func (b *Bot) OnAny(fn func(packet.Message)) {
	b.conn.OnDispatched(fn)
}
