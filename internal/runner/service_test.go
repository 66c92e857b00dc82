package runner

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/danmuck/mirbot/internal/protocol/frame"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/client"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/testutil/testlog"
)

// scriptedGame answers the login flow on its own and forwards every other
// client message to seen.
type scriptedGame struct {
	ln      net.Listener
	roster  []packet.SelectInfo
	onEnter []packet.Message
	seen    chan packet.Message
	peer    chan net.Conn
}

func newScriptedGame(t *testing.T, roster []packet.SelectInfo, onEnter ...packet.Message) *scriptedGame {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	g := &scriptedGame{
		ln:      ln,
		roster:  roster,
		onEnter: onEnter,
		seen:    make(chan packet.Message, 64),
		peer:    make(chan net.Conn, 1),
	}
	go g.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return g
}

func (g *scriptedGame) serve() {
	nc, err := g.ln.Accept()
	if err != nil {
		return
	}
	defer nc.Close()
	g.peer <- nc
	send := func(msgs ...packet.Message) {
		for _, m := range msgs {
			f, err := server.Catalogue().Encode(m)
			if err != nil {
				return
			}
			_ = frame.WriteFrame(nc, f, frame.DefaultLimits())
		}
	}
	send(&server.Connected{})
	for {
		f, err := frame.ReadFrame(nc, frame.DefaultLimits())
		if err != nil {
			return
		}
		msg, err := client.Catalogue().Decode(f)
		if err != nil {
			continue
		}
		switch m := msg.(type) {
		case *client.ClientVersion:
			send(&server.ClientVersion{Result: 1})
		case *client.Login:
			send(&server.LoginSuccess{Characters: g.roster})
		case *client.StartGame:
			send(&server.StartGame{Result: 4}, &server.UserInformation{ObjectID: 1, Name: "Ayla", Location: packet.Point{X: 10, Y: 10}, HP: 100, MP: 10})
			send(g.onEnter...)
		case *client.KeepAlive:
		default:
			g.seen <- m
		}
	}
}

func (g *scriptedGame) config() Config {
	cfg := DefaultConfig()
	cfg.Account = "acct"
	cfg.Password = "pw"
	cfg.Bot.Conn.Address = g.ln.Addr().String()
	cfg.Bot.Conn.Session.KeepAliveInterval = time.Hour
	cfg.Bot.VersionHash = make([]byte, 16)
	cfg.Bot.Pacing.Walk = 0
	cfg.Bot.Pacing.Attack = 0
	cfg.Bot.Pacing.Action = 0
	cfg.Fight.Scan = 5 * time.Millisecond
	cfg.Fight.Idle = 5 * time.Millisecond
	return cfg
}

func runAsync(ctx context.Context, t *testing.T, s *Service) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.RunContext(ctx) }()
	return done
}

func awaitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatalf("run did not return")
		return nil
	}
}

func TestConfigValidate(t *testing.T) {
	testlog.Start(t)
	cfg := DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, ErrAccountRequired) {
		t.Fatalf("err=%v", err)
	}
	cfg.Account = "a"
	cfg.Mode = "dance"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("err=%v", err)
	}
	cfg.Mode = ModeFight
	if err := cfg.Validate(); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestIdleModeEndsWhenServerDrops(t *testing.T) {
	testlog.Start(t)
	g := newScriptedGame(t, []packet.SelectInfo{{Index: 4, Name: "Ayla"}})
	s, err := NewService(g.config())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	done := runAsync(context.Background(), t, s)

	var nc net.Conn
	select {
	case nc = <-g.peer:
	case <-time.After(2 * time.Second):
		t.Fatalf("no connection")
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Bot().State().Character.Name != "Ayla" {
		if time.Now().After(deadline) {
			t.Fatalf("never entered the world")
		}
		time.Sleep(5 * time.Millisecond)
	}
	_ = nc.Close()

	if err := awaitRun(t, done); !errors.Is(err, ErrSessionLost) {
		t.Fatalf("err=%v", err)
	}
}

func TestIdleModeStopsOnCancel(t *testing.T) {
	testlog.Start(t)
	g := newScriptedGame(t, []packet.SelectInfo{{Index: 4, Name: "Ayla"}})
	s, err := NewService(g.config())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, t, s)

	deadline := time.Now().Add(2 * time.Second)
	for s.Bot().State().Character.Name != "Ayla" {
		if time.Now().After(deadline) {
			t.Fatalf("never entered the world")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := awaitRun(t, done); err != nil {
		t.Fatalf("err=%v", err)
	}
	select {
	case m := <-g.seen:
		if _, ok := m.(*client.Disconnect); !ok {
			t.Fatalf("expected goodbye, got %T", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no goodbye on shutdown")
	}
}

func TestEmptyRosterFails(t *testing.T) {
	testlog.Start(t)
	g := newScriptedGame(t, nil)
	s, err := NewService(g.config())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := awaitRun(t, runAsync(context.Background(), t, s)); !errors.Is(err, ErrNoCharacters) {
		t.Fatalf("err=%v", err)
	}
}

func TestFightModeAttacksAdjacentMonster(t *testing.T) {
	testlog.Start(t)
	g := newScriptedGame(t,
		[]packet.SelectInfo{{Index: 0, Name: "Ayla"}},
		&server.ObjectMonster{ObjectID: 5, Name: "Hen", Location: packet.Point{X: 10, Y: 11}},
	)
	cfg := g.config()
	cfg.Mode = ModeFight
	s, err := NewService(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := runAsync(ctx, t, s)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case m := <-g.seen:
			if a, ok := m.(*client.Attack); ok {
				if a.Direction != 4 {
					t.Fatalf("attack direction=%d", a.Direction)
				}
				cancel()
				if err := awaitRun(t, done); err != nil {
					t.Fatalf("run: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatalf("no attack sent")
		}
	}
}
