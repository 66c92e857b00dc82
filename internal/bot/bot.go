package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/mirbot/internal/conn"
	logs "github.com/danmuck/mirbot/internal/logging"
	"github.com/danmuck/mirbot/internal/observability"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/client"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/world"
)

var ErrRejected = errors.New("bot: rejected by server")

// Step names the login-flow request a rejection came from.
type Step string

const (
	StepVersion   Step = "version"
	StepLogin     Step = "login"
	StepStartGame Step = "start_game"
)

const (
	versionOK   = 1
	startGameOK = 4

	disconnectGrace = time.Second
)

var (
	loginReasons     = map[uint8]string{0: "account disabled", 3: "account not found", 4: "wrong password"}
	startGameReasons = map[uint8]string{0: "disabled", 1: "not logged in", 2: "load error", 3: "creating"}
)

// RejectionError carries the server's result code for a refused request.
type RejectionError struct {
	Step   Step
	Code   int
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("bot: %s rejected: %s", e.Step, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}

func reject(step Step, code uint8, reasons map[uint8]string) *RejectionError {
	reason, ok := reasons[code]
	if !ok {
		reason = fmt.Sprintf("code %d", code)
	}
	return &RejectionError{Step: step, Code: int(code), Reason: reason}
}

// Bot is one character session. It owns its connection, correlator and
// world; none of them are shared with another Bot.
type Bot struct {
	cfg   Config
	conn  *conn.Conn
	waits *conn.Correlator
	world *world.World
}

// New wires a fresh connection, the world reducers and the correlator. The
// connection is not opened until Connect.
func New(cfg Config) (*Bot, error) {
	cfg.Timeouts = cfg.Timeouts.WithDefaults()
	c, err := conn.New(cfg.Conn)
	if err != nil {
		return nil, err
	}
	w := world.New()
	world.Register(c, w)
	return &Bot{
		cfg:   cfg,
		conn:  c,
		waits: conn.NewCorrelator(c),
		world: w,
	}, nil
}

// ID is the session id carried in log lines and metrics.
func (b *Bot) ID() string {
	return b.conn.ID()
}

func (b *Bot) Conn() *conn.Conn {
	return b.conn
}

func (b *Bot) World() *world.World {
	return b.world
}

// State returns a detached copy of the world.
func (b *Bot) State() world.State {
	return b.world.Snapshot()
}

func (b *Bot) Connected() bool {
	return b.conn.Connected()
}

// WaitFor exposes the correlator for kinds the facade has no verb for.
func (b *Bot) WaitFor(ctx context.Context, kind server.Kind, timeout time.Duration, alternates ...server.Kind) (conn.Match, error) {
	return b.waits.WaitFor(ctx, kind, timeout, alternates...)
}

func (b *Bot) WaitDisconnect(ctx context.Context) error {
	return b.conn.WaitDisconnect(ctx)
}

// Connect opens the socket and passes the version check. A failed version
// check closes the connection.
func (b *Bot) Connect(ctx context.Context) error {
	if len(b.cfg.VersionHash) == 0 {
		return ErrVersionHashRequired
	}
	hello := b.waits.Expect(server.KindConnected)
	if err := b.conn.Connect(ctx); err != nil {
		hello.Cancel()
		return err
	}
	if _, err := hello.Await(ctx, b.cfg.Timeouts.Handshake); err != nil {
		return fmt.Errorf("bot: await connected: %w", err)
	}
	logs.Debugf("bot.Bot.Connect id=%s connected", b.conn.ID())

	m, err := b.request(ctx, &client.ClientVersion{VersionHash: b.cfg.VersionHash}, b.cfg.Timeouts.Handshake, server.KindClientVersion)
	if err != nil {
		return fmt.Errorf("bot: version check: %w", err)
	}
	res := m.Message.(*server.ClientVersion).Result
	if res != versionOK {
		_ = b.conn.Close()
		return &RejectionError{Step: StepVersion, Code: int(res), Reason: "client version mismatch"}
	}
	logs.Infof("bot.Bot.Connect id=%s addr=%s version accepted", b.conn.ID(), b.conn.Address())
	return nil
}

// Login authenticates and returns the character roster.
func (b *Bot) Login(ctx context.Context, account, password string) ([]packet.SelectInfo, error) {
	m, err := b.request(ctx, &client.Login{AccountID: account, Password: password}, b.cfg.Timeouts.Login, server.KindLoginSuccess, server.KindLogin)
	if err != nil {
		return nil, fmt.Errorf("bot: login: %w", err)
	}
	if rej, ok := m.Message.(*server.Login); ok {
		return nil, reject(StepLogin, rej.Result, loginReasons)
	}
	var roster []packet.SelectInfo
	b.world.Update(func(s *world.State) {
		s.Stage = world.StageSelect
		roster = append(roster, s.Characters...)
	})
	logs.Infof("bot.Bot.Login account=%q characters=%d", account, len(roster))
	return roster, nil
}

// SelectCharacter enters the world with the roster entry whose Index is
// index and returns the state once the character information has landed.
func (b *Bot) SelectCharacter(ctx context.Context, index int32) (world.State, error) {
	info := b.waits.Expect(server.KindUserInformation)
	defer info.Cancel()

	m, err := b.request(ctx, &client.StartGame{CharacterIndex: index}, b.cfg.Timeouts.StartGame, server.KindStartGame)
	if err != nil {
		return world.State{}, fmt.Errorf("bot: start game: %w", err)
	}
	if res := m.Message.(*server.StartGame).Result; res != startGameOK {
		return world.State{}, reject(StepStartGame, res, startGameReasons)
	}
	if _, err := info.Await(ctx, b.cfg.Timeouts.StartGame); err != nil {
		return world.State{}, fmt.Errorf("bot: await user information: %w", err)
	}
	st := b.world.Snapshot()
	logs.Infof("bot.Bot.SelectCharacter name=%q level=%d class=%d at=%d,%d",
		st.Character.Name, st.Character.Level, st.Character.Class, st.Character.Location.X, st.Character.Location.Y)
	return st, nil
}

// Logout returns to character select.
func (b *Bot) Logout(ctx context.Context) error {
	if _, err := b.request(ctx, &client.LogOut{}, b.cfg.Timeouts.Logout, server.KindLogOutSuccess); err != nil {
		return fmt.Errorf("bot: logout: %w", err)
	}
	return nil
}

// Disconnect says goodbye if it still can and closes the connection. It is
// safe to call on a bot that never connected or was already dropped.
func (b *Bot) Disconnect() error {
	if b.conn.Connected() {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectGrace)
		if err := b.conn.Send(ctx, &client.Disconnect{}); err != nil {
			logs.Debugf("bot.Bot.Disconnect id=%s goodbye failed: %v", b.conn.ID(), err)
		}
		cancel()
	}
	err := b.conn.Close()
	b.world.Update(func(s *world.State) { s.Stage = world.StageNone })
	return err
}

// request registers the reply wait before sending so a fast reply is never
// missed.
func (b *Bot) request(ctx context.Context, msg packet.Message, timeout time.Duration, kind server.Kind, alternates ...server.Kind) (conn.Match, error) {
	e := b.waits.Expect(kind, alternates...)
	if err := b.conn.Send(ctx, msg); err != nil {
		e.Cancel()
		return conn.Match{}, err
	}
	return e.Await(ctx, timeout)
}

// act sends a fire-and-forget verb, applies the optimistic local update and
// waits out the pacing delay.
func (b *Bot) act(ctx context.Context, verb string, msg packet.Message, pause time.Duration, local func(*world.State)) error {
	err := b.conn.Send(ctx, msg)
	observability.RecordAction(verb, err == nil)
	if err != nil {
		return fmt.Errorf("bot: %s: %w", verb, err)
	}
	if local != nil {
		b.world.Update(local)
	}
	return pace(ctx, pause)
}

func pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wait sleeps for d or until ctx ends.
func (b *Bot) Wait(ctx context.Context, d time.Duration) error {
	return pace(ctx, d)
}
