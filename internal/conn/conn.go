package conn

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"strings"
	"sync"
	"time"

	logs "github.com/danmuck/mirbot/internal/logging"
	"github.com/danmuck/mirbot/internal/observability"
	"github.com/danmuck/mirbot/internal/protocol/frame"
	"github.com/danmuck/mirbot/internal/protocol/packet"
	"github.com/danmuck/mirbot/internal/protocol/packet/client"
	"github.com/danmuck/mirbot/internal/protocol/packet/server"
	"github.com/danmuck/mirbot/internal/protocol/session"
	"github.com/google/uuid"
)

var (
	ErrAddressRequired = errors.New("conn: address required")
	ErrNotConnected    = errors.New("conn: not connected")
	ErrAlreadyUsed     = errors.New("conn: connection already used")
)

// State is the connection lifecycle position.
type State int32

const (
	StateUnconnected State = iota
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Handler receives one decoded inbound message on the receive goroutine.
// It must not block.
type Handler func(msg packet.Message)

// KeepAliveFunc builds the periodic keepalive message.
type KeepAliveFunc func(now time.Time) packet.Message

type Config struct {
	Address   string
	Session   session.Config
	Inbound   *packet.Catalogue
	Outbound  *packet.Catalogue
	KeepAlive KeepAliveFunc
}

func DefaultConfig() Config {
	return Config{
		Session:   session.DefaultConfig(),
		Inbound:   server.Catalogue(),
		Outbound:  client.Catalogue(),
		KeepAlive: clientKeepAlive,
	}
}

func clientKeepAlive(now time.Time) packet.Message {
	return &client.KeepAlive{Time: now.UnixMilli()}
}

// Conn is a single-use game connection: Unconnected -> Connected ->
// Disconnected. Reconnecting takes a new Conn.
type Conn struct {
	cfg    Config
	id     string
	limits frame.Limits
	rng    *rand.Rand

	mu       sync.Mutex
	state    State
	nc       net.Conn
	cancel   context.CancelFunc
	done     chan struct{}
	finished chan struct{}

	writeMu sync.Mutex

	hmu      sync.RWMutex
	any      []Handler
	handlers map[int16][]Handler
	settled  []Handler
}

func New(cfg Config) (*Conn, error) {
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, ErrAddressRequired
	}
	d := DefaultConfig()
	if cfg.Inbound == nil {
		cfg.Inbound = d.Inbound
	}
	if cfg.Outbound == nil {
		cfg.Outbound = d.Outbound
	}
	if cfg.KeepAlive == nil {
		cfg.KeepAlive = d.KeepAlive
	}
	cfg.Session = cfg.Session.WithDefaults()
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}
	return &Conn{
		cfg:      cfg,
		id:       uuid.NewString(),
		limits:   frame.Limits{MaxPayloadBytes: cfg.Session.MaxPayloadBytes},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		handlers: make(map[int16][]Handler),
	}, nil
}

// Dial builds a Conn and connects it.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// ID is the session id carried in this connection's log lines.
func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) Address() string {
	return c.cfg.Address
}

func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conn) Connected() bool {
	return c.State() == StateConnected
}

// Done is closed when the connection becomes Disconnected.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Connect opens the stream and starts the receive and keepalive loops.
// Dial failures are retried with backoff up to Session.MaxConnectAttempts.
func (c *Conn) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUnconnected {
		c.mu.Unlock()
		return ErrAlreadyUsed
	}
	c.mu.Unlock()

	nc, err := c.dialWithRetry(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != StateUnconnected {
		c.mu.Unlock()
		_ = nc.Close()
		return ErrAlreadyUsed
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	c.nc = nc
	c.cancel = cancel
	c.state = StateConnected
	c.mu.Unlock()

	observability.SetConnected(true)
	logs.Infof("conn.Conn.Connect id=%s addr=%q local=%s", c.id, c.cfg.Address, nc.LocalAddr())

	var loops sync.WaitGroup
	loops.Add(2)
	go func() {
		defer loops.Done()
		c.receiveLoop(loopCtx, nc)
	}()
	go func() {
		defer loops.Done()
		c.keepAliveLoop(loopCtx)
	}()
	go func() {
		loops.Wait()
		_ = nc.Close()
		close(c.finished)
	}()
	return nil
}

func (c *Conn) dialWithRetry(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: c.cfg.Session.ConnectTimeout}
	var attempt int
	for {
		attempt++
		nc, err := dialer.DialContext(ctx, "tcp", c.cfg.Address)
		if err == nil {
			return nc, nil
		}
		logs.Warnf("conn.Conn.dial id=%s attempt=%d addr=%q err=%v", c.id, attempt, c.cfg.Address, err)
		if attempt >= c.cfg.Session.MaxConnectAttempts {
			return nil, fmt.Errorf("conn: dial %s: %w", c.cfg.Address, err)
		}
		if err := session.Sleep(ctx, c.cfg.Session.Backoff.Delay(attempt, c.rng)); err != nil {
			return nil, err
		}
	}
}

// Send encodes, frames and writes one message. It returns once the write is
// accepted by the transport.
func (c *Conn) Send(ctx context.Context, msg packet.Message) error {
	c.mu.Lock()
	nc, state := c.nc, c.state
	c.mu.Unlock()
	if state != StateConnected {
		return ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := c.cfg.Outbound.Encode(msg)
	if err != nil {
		return err
	}
	wire, err := frame.Encode(f, c.limits)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	deadline := time.Now().Add(c.cfg.Session.WriteTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := nc.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("conn: send %s: %w", c.cfg.Outbound.Name(f.Kind), err)
	}
	if _, err := nc.Write(wire); err != nil {
		if !c.Connected() {
			return ErrNotConnected
		}
		return fmt.Errorf("conn: send %s: %w", c.cfg.Outbound.Name(f.Kind), err)
	}
	observability.RecordFrame("out", c.cfg.Outbound.Name(f.Kind), len(wire))
	logs.Debugf("conn.Conn.Send id=%s kind=%s bytes=%d", c.id, c.cfg.Outbound.Name(f.Kind), len(wire))
	return nil
}

// Close is idempotent. It stops both loops, waits for them (bounded by
// Session.ShutdownTimeout) and closes the stream.
func (c *Conn) Close() error {
	c.mu.Lock()
	nc := c.nc
	wasUnconnected := c.state == StateUnconnected
	c.mu.Unlock()

	c.markDisconnected("close")
	if wasUnconnected || nc == nil {
		return nil
	}

	// Unblock the reader without closing the socket under it.
	_ = nc.SetReadDeadline(time.Now())

	timer := time.NewTimer(c.cfg.Session.ShutdownTimeout)
	defer timer.Stop()
	select {
	case <-c.finished:
	case <-timer.C:
		logs.Warnf("conn.Conn.Close id=%s loops did not stop within %s, forcing close", c.id, c.cfg.Session.ShutdownTimeout)
		_ = nc.Close()
	}
	return nil
}

// WaitDisconnect blocks until the connection is Disconnected. A connection
// that was never connected counts as disconnected.
func (c *Conn) WaitDisconnect(ctx context.Context) error {
	if c.State() == StateUnconnected {
		return nil
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Conn) markDisconnected(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateDisconnected:
		return
	case StateConnected:
		observability.SetConnected(false)
		logs.Infof("conn.Conn.disconnect id=%s reason=%s", c.id, reason)
	}
	c.state = StateDisconnected
	if c.cancel != nil {
		c.cancel()
	}
	close(c.done)
}

// OnPacket registers h for one inbound kind. Handlers for a kind run in
// registration order after every any-packet handler.
func (c *Conn) OnPacket(kind int16, h Handler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.handlers[kind] = append(c.handlers[kind], h)
}

// OnAnyPacket registers h for every inbound message.
func (c *Conn) OnAnyPacket(h Handler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.any = append(c.any, h)
}

// OnDispatched registers h to run after every any-packet and kind handler
// has seen a message. Anything h releases observes their effects.
func (c *Conn) OnDispatched(h Handler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.settled = append(c.settled, h)
}

// Handle registers a typed handler; messages of another type are skipped.
func Handle[M packet.Message](c *Conn, kind server.Kind, fn func(M)) {
	c.OnPacket(int16(kind), func(msg packet.Message) {
		if m, ok := msg.(M); ok {
			fn(m)
		}
	})
}

func (c *Conn) receiveLoop(ctx context.Context, nc net.Conn) {
	defer c.markDisconnected("receive loop ended")
	r := bufio.NewReader(nc)
	for {
		f, err := frame.ReadFrame(r, c.limits)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				logs.Debugf("conn.Conn.receiveLoop id=%s stopped", c.id)
			case errors.Is(err, io.EOF):
				logs.Infof("conn.Conn.receiveLoop id=%s closed by server", c.id)
			case errors.Is(err, frame.ErrInvalidLength):
				observability.RecordDropped("invalid_length")
				logs.Errf("conn.Conn.receiveLoop id=%s framing lost: %v", c.id, err)
			default:
				logs.Warnf("conn.Conn.receiveLoop id=%s read failed: %v", c.id, err)
			}
			return
		}

		name := c.cfg.Inbound.Name(f.Kind)
		observability.RecordFrame("in", name, f.TotalLen())
		msg, err := c.cfg.Inbound.Decode(f)
		if err != nil {
			if errors.Is(err, packet.ErrUnknownKind) {
				observability.RecordDropped("unknown_kind")
				logs.Debugf("conn.Conn.receiveLoop id=%s unknown kind=%d payload=%d", c.id, f.Kind, len(f.Payload))
				continue
			}
			observability.RecordDropped("decode")
			logs.Warnf("conn.Conn.receiveLoop id=%s decode kind=%s: %v", c.id, name, err)
			continue
		}
		logs.Tracef("conn.Conn.receiveLoop id=%s kind=%s", c.id, name)
		c.dispatch(name, msg)
	}
}

func (c *Conn) dispatch(name string, msg packet.Message) {
	c.hmu.RLock()
	anyHandlers := c.any
	kindHandlers := c.handlers[msg.Kind()]
	settled := c.settled
	c.hmu.RUnlock()

	for _, h := range anyHandlers {
		c.invoke(name, h, msg)
	}
	for _, h := range kindHandlers {
		c.invoke(name, h, msg)
	}
	for _, h := range settled {
		c.invoke(name, h, msg)
	}
}

func (c *Conn) invoke(name string, h Handler, msg packet.Message) {
	defer func() {
		if r := recover(); r != nil {
			observability.RecordHandlerPanic(name)
			logs.Errf("conn.Conn.dispatch id=%s kind=%s handler panic: %v", c.id, name, r)
		}
	}()
	h(msg)
}

func (c *Conn) keepAliveLoop(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.Session.KeepAliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := c.Send(ctx, c.cfg.KeepAlive(now)); err != nil {
				if ctx.Err() == nil {
					logs.Warnf("conn.Conn.keepAliveLoop id=%s send failed: %v", c.id, err)
				}
				return
			}
		}
	}
}
