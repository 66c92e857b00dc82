package conn

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/testutil/testlog"
)

func newOfflineCorrelator(t *testing.T) (*Conn, *Correlator) {
	t.Helper()
	c, err := New(Config{Address: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return c, NewCorrelator(c)
}

func waitPending(t *testing.T, cr *Correlator, kind server.Kind, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for cr.Pending(kind) != n {
		if time.Now().After(deadline) {
			t.Fatalf("pending(%s)=%d want %d", kind, cr.Pending(kind), n)
		}
		time.Sleep(time.Millisecond)
	}
}

type waitResult struct {
	match Match
	err   error
}

func TestWaitForMatchesAlternateKind(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)

	res := make(chan waitResult, 1)
	go func() {
		m, err := cr.WaitFor(context.Background(), server.KindLoginSuccess, 2*time.Second, server.KindLogin)
		res <- waitResult{m, err}
	}()
	waitPending(t, cr, server.KindLogin, 1)
	cr.deliver(&server.Login{Result: 4})

	r := <-res
	if r.err != nil {
		t.Fatalf("wait: %v", r.err)
	}
	if r.match.Kind != server.KindLogin {
		t.Fatalf("matched kind %s", r.match.Kind)
	}
	if got := r.match.Message.(*server.Login).Result; got != 4 {
		t.Fatalf("result=%d", got)
	}
	if cr.Pending(server.KindLogin) != 0 || cr.Pending(server.KindLoginSuccess) != 0 {
		t.Fatalf("alternate slots leaked")
	}
}

func TestWaitForTimeoutLeavesNoResidue(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)

	_, err := cr.WaitFor(context.Background(), server.KindStartGame, 20*time.Millisecond, server.KindLogin)
	if !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if cr.Pending(server.KindStartGame) != 0 || cr.Pending(server.KindLogin) != 0 {
		t.Fatalf("timeout leaked waiters")
	}

	// Nothing registered: the message must not be parked for a later wait.
	cr.deliver(&server.StartGame{Result: 4})
	if _, err := cr.WaitFor(context.Background(), server.KindStartGame, 20*time.Millisecond); !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("stale fulfillment: %v", err)
	}
}

func TestConcurrentWaitersOnSameKind(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)

	res := make(chan waitResult, 2)
	for i := 0; i < 2; i++ {
		go func() {
			m, err := cr.WaitFor(context.Background(), server.KindChat, 2*time.Second)
			res <- waitResult{m, err}
		}()
	}
	waitPending(t, cr, server.KindChat, 2)
	cr.deliver(&server.Chat{Message: "one"})
	cr.deliver(&server.Chat{Message: "two"})

	for i := 0; i < 2; i++ {
		r := <-res
		if r.err != nil {
			t.Fatalf("wait %d: %v", i, r.err)
		}
		if got := r.match.Message.(*server.Chat).Message; got != "one" {
			t.Fatalf("waiter %d got %q, want the first message", i, got)
		}
	}
	select {
	case r := <-res:
		t.Fatalf("extra fulfillment %+v", r)
	default:
	}
	waitPending(t, cr, server.KindChat, 0)
}

func TestWaitersOnDifferentKindsAreIndependent(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)

	chat := make(chan waitResult, 1)
	gold := make(chan waitResult, 1)
	go func() {
		m, err := cr.WaitFor(context.Background(), server.KindChat, 2*time.Second)
		chat <- waitResult{m, err}
	}()
	go func() {
		m, err := cr.WaitFor(context.Background(), server.KindGainedGold, 100*time.Millisecond)
		gold <- waitResult{m, err}
	}()
	waitPending(t, cr, server.KindChat, 1)
	waitPending(t, cr, server.KindGainedGold, 1)

	cr.deliver(&server.Chat{Message: "hi"})
	if r := <-chat; r.err != nil || r.match.Kind != server.KindChat {
		t.Fatalf("chat wait: %+v", r)
	}
	if r := <-gold; !errors.Is(r.err, ErrWaitTimeout) {
		t.Fatalf("gold wait should time out, got %+v", r)
	}
}

func TestWaitForContextCancel(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)

	ctx, cancel := context.WithCancel(context.Background())
	res := make(chan error, 1)
	go func() {
		_, err := cr.WaitFor(ctx, server.KindNPCResponse, time.Minute)
		res <- err
	}()
	waitPending(t, cr, server.KindNPCResponse, 1)
	cancel()
	if err := <-res; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	waitPending(t, cr, server.KindNPCResponse, 0)
}

func TestWaitForEndsOnDisconnect(t *testing.T) {
	testlog.Start(t)
	s := newFakeServer(t)
	c := dialTest(t, s, nil)
	peer := s.accept(t)
	cr := NewCorrelator(c)

	res := make(chan error, 1)
	go func() {
		_, err := cr.WaitFor(context.Background(), server.KindUserInformation, time.Minute)
		res <- err
	}()
	waitPending(t, cr, server.KindUserInformation, 1)
	_ = peer.Close()

	select {
	case err := <-res:
		if !errors.Is(err, ErrDisconnected) {
			t.Fatalf("expected ErrDisconnected, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("wait did not end on disconnect")
	}
}

func TestWaitForOverTheWire(t *testing.T) {
	testlog.Start(t)
	s := newFakeServer(t)
	c := dialTest(t, s, nil)
	peer := s.accept(t)
	cr := NewCorrelator(c)

	var handled atomic.Bool
	seen := make(chan packet.Message, 1)
	c.OnPacket(int16(server.KindClientVersion), func(m packet.Message) {
		handled.Store(true)
		seen <- m
	})

	res := make(chan waitResult, 1)
	go func() {
		m, err := cr.WaitFor(context.Background(), server.KindClientVersion, 2*time.Second)
		res <- waitResult{m, err}
	}()
	waitPending(t, cr, server.KindClientVersion, 1)
	writeServerMsg(t, peer, &server.ClientVersion{Result: 1})

	r := <-res
	if r.err != nil || r.match.Message.(*server.ClientVersion).Result != 1 {
		t.Fatalf("wait: %+v", r)
	}
	if !handled.Load() {
		t.Fatalf("wait resolved before the kind handler ran")
	}
	select {
	case <-seen:
	case <-time.After(2 * time.Second):
		t.Fatalf("passive handler missed the correlated message")
	}
}

func TestExpectCatchesReplyBeforeAwait(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)

	e := cr.Expect(server.KindStartGame)
	cr.deliver(&server.StartGame{Result: 4})
	m, err := e.Await(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("await: %v", err)
	}
	if m.Message.(*server.StartGame).Result != 4 {
		t.Fatalf("match=%+v", m)
	}
	if n := cr.Pending(server.KindStartGame); n != 0 {
		t.Fatalf("pending=%d after await", n)
	}
}

func TestBufferedReplyBeatsExpiredWait(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 200; i++ {
		e := cr.Expect(server.KindLogin)
		cr.deliver(&server.Login{Result: 3})
		time.Sleep(time.Microsecond)
		m, err := e.Await(ctx, time.Nanosecond)
		if err != nil {
			t.Fatalf("iteration %d: buffered reply lost to %v", i, err)
		}
		if m.Kind != server.KindLogin {
			t.Fatalf("iteration %d: kind=%s", i, m.Kind)
		}
	}
	if n := cr.Pending(server.KindLogin); n != 0 {
		t.Fatalf("pending=%d", n)
	}
}

func TestExpectCancelReleasesSlots(t *testing.T) {
	testlog.Start(t)
	_, cr := newOfflineCorrelator(t)

	e := cr.Expect(server.KindLoginSuccess, server.KindLogin)
	if cr.Pending(server.KindLoginSuccess) != 1 || cr.Pending(server.KindLogin) != 1 {
		t.Fatalf("expect did not register both kinds")
	}
	e.Cancel()
	e.Cancel()
	if cr.Pending(server.KindLoginSuccess) != 0 || cr.Pending(server.KindLogin) != 0 {
		t.Fatalf("cancel left slots behind")
	}
}
