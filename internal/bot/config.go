package bot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/danmuck/mirbot/internal/conn"
)

var ErrVersionHashRequired = errors.New("bot: client version hash required")

// Pacing is the pause after each verb, keeping the bot under the server's
// movement and attack speed checks.
type Pacing struct {
	Walk   time.Duration
	Run    time.Duration
	Attack time.Duration
	Magic  time.Duration
	Action time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		Walk:   600 * time.Millisecond,
		Run:    400 * time.Millisecond,
		Attack: time.Second,
		Magic:  1500 * time.Millisecond,
		Action: 150 * time.Millisecond,
	}
}

// Timeouts bound each correlated request.
type Timeouts struct {
	Handshake time.Duration
	Login     time.Duration
	StartGame time.Duration
	Logout    time.Duration
	NPC       time.Duration
	Revive    time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Handshake: 10 * time.Second,
		Login:     10 * time.Second,
		StartGame: 15 * time.Second,
		Logout:    10 * time.Second,
		NPC:       10 * time.Second,
		Revive:    15 * time.Second,
	}
}

// WithDefaults fills zero timeouts.
func (t Timeouts) WithDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Handshake <= 0 {
		t.Handshake = d.Handshake
	}
	if t.Login <= 0 {
		t.Login = d.Login
	}
	if t.StartGame <= 0 {
		t.StartGame = d.StartGame
	}
	if t.Logout <= 0 {
		t.Logout = d.Logout
	}
	if t.NPC <= 0 {
		t.NPC = d.NPC
	}
	if t.Revive <= 0 {
		t.Revive = d.Revive
	}
	return t
}

type Config struct {
	Conn conn.Config
	// VersionHash is sent in the handshake; the server compares it against
	// the MD5 of its own client build.
	VersionHash []byte
	// Pacing is used as given; a zero Pacing never sleeps.
	Pacing   Pacing
	Timeouts Timeouts
}

func DefaultConfig() Config {
	return Config{
		Conn:     conn.DefaultConfig(),
		Pacing:   DefaultPacing(),
		Timeouts: DefaultTimeouts(),
	}
}

// HashClientFile returns the MD5 digest of the game client executable.
func HashClientFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bot: open client: %w", err)
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("bot: hash client: %w", err)
	}
	return h.Sum(nil), nil
}

// ParseVersionHash decodes a 32-character hex digest.
func ParseVersionHash(raw string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("bot: version hash: %w", err)
	}
	if len(b) != md5.Size {
		return nil, fmt.Errorf("bot: version hash: want %d bytes, got %d", md5.Size, len(b))
	}
	return b, nil
}
