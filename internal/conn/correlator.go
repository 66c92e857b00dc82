package conn

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/danmuck/mirbot/internal/observability"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
)

var (
	ErrWaitTimeout  = errors.New("conn: wait timed out")
	ErrDisconnected = errors.New("conn: disconnected while waiting")
)

// Match is the message that ended a wait and the kind it arrived as.
type Match struct {
	Kind    server.Kind
	Message packet.Message
}

// Correlator matches inbound messages to pending WaitFor calls. Every waiter
// present for a kind when a message of that kind is dispatched receives it,
// at most once per waiter.
type Correlator struct {
	conn *Conn

	mu      sync.Mutex
	waiters map[server.Kind][]*Expectation
}

// NewCorrelator hooks a correlator into the tail of c's dispatch, so a
// WaitFor caller wakes only after every reducer and handler has run for the
// message it matched.
func NewCorrelator(c *Conn) *Correlator {
	cr := &Correlator{
		conn:    c,
		waiters: make(map[server.Kind][]*Expectation),
	}
	c.OnDispatched(cr.deliver)
	return cr
}

// WaitFor blocks until a message of kind or one of alternates arrives, the
// timeout elapses, ctx ends or the connection drops. Every slot it registered
// is removed before it returns.
func (cr *Correlator) WaitFor(ctx context.Context, kind server.Kind, timeout time.Duration, alternates ...server.Kind) (Match, error) {
	return cr.Expect(kind, alternates...).Await(ctx, timeout)
}

// Expect registers a wait without blocking. Use it when the reply may race
// the request: register, send, then Await.
func (cr *Correlator) Expect(kind server.Kind, alternates ...server.Kind) *Expectation {
	e := &Expectation{
		cr:    cr,
		kinds: append([]server.Kind{kind}, alternates...),
		ch:    make(chan packet.Message, 1),
	}
	cr.mu.Lock()
	for _, k := range e.kinds {
		cr.waiters[k] = append(cr.waiters[k], e)
	}
	cr.mu.Unlock()
	return e
}

// Expectation is one registered wait. Await or Cancel it exactly once;
// both release its slots.
type Expectation struct {
	cr    *Correlator
	kinds []server.Kind
	ch    chan packet.Message
	once  sync.Once
}

// Await blocks for the registered kinds. See WaitFor.
func (e *Expectation) Await(ctx context.Context, timeout time.Duration) (Match, error) {
	defer e.Cancel()
	kind := e.kinds[0]

	start := time.Now()
	matched := func(msg packet.Message) (Match, error) {
		observability.RecordWait(kind.String(), "matched", time.Since(start))
		return Match{Kind: server.Kind(msg.Kind()), Message: msg}, nil
	}
	// A reply that landed between Expect and Await wins over an expired
	// ctx or a dropped connection.
	select {
	case msg := <-e.ch:
		return matched(msg)
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-e.ch:
		return matched(msg)
	case <-timer.C:
		observability.RecordWait(kind.String(), "timeout", time.Since(start))
		return Match{}, ErrWaitTimeout
	case <-ctx.Done():
		observability.RecordWait(kind.String(), "cancelled", time.Since(start))
		return Match{}, ctx.Err()
	case <-e.cr.conn.Done():
		select {
		case msg := <-e.ch:
			return matched(msg)
		default:
		}
		observability.RecordWait(kind.String(), "disconnected", time.Since(start))
		return Match{}, ErrDisconnected
	}
}

// Cancel releases the expectation's slots. Safe to call more than once.
func (e *Expectation) Cancel() {
	e.once.Do(func() { e.cr.release(e) })
}

// Pending reports how many waiters are registered for kind.
func (cr *Correlator) Pending(kind server.Kind) int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return len(cr.waiters[kind])
}

func (cr *Correlator) release(w *Expectation) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	for _, k := range w.kinds {
		list := cr.waiters[k]
		for i, cand := range list {
			if cand == w {
				list = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(cr.waiters, k)
			continue
		}
		cr.waiters[k] = list
	}
}

func (cr *Correlator) deliver(msg packet.Message) {
	kind := server.Kind(msg.Kind())
	cr.mu.Lock()
	defer cr.mu.Unlock()
	for _, w := range cr.waiters[kind] {
		select {
		case w.ch <- msg:
		default:
		}
	}
}
