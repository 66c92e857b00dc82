// Package runner drives one bot from login to shutdown in a fixed mode.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/danmuck/mirbot/internal/bot"
	logs "github.com/danmuck/mirbot/internal/logging"
	"github.com/danmuck/mirbot/internal/status"
)

var (
	ErrAccountRequired = errors.New("runner: account required")
	ErrNoCharacters    = errors.New("runner: account has no characters")
	ErrUnknownMode     = errors.New("runner: unknown mode")
	ErrSessionLost     = errors.New("runner: server closed the session")
)

// Mode picks what the bot does once it is in the world.
type Mode string

const (
	// ModeIdle stays logged in until shutdown or disconnect.
	ModeIdle Mode = "idle"
	// ModeFight hunts the nearest monster.
	ModeFight Mode = "fight"
)

type Config struct {
	Bot            bot.Config
	Account        string
	Password       string
	CharacterIndex int
	Mode           Mode
	StatusAddr     string
	Heartbeat      time.Duration
	Fight          FightConfig
}

func DefaultConfig() Config {
	return Config{
		Bot:       bot.DefaultConfig(),
		Mode:      ModeIdle,
		Heartbeat: 30 * time.Second,
		Fight:     DefaultFightConfig(),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Account) == "" {
		return ErrAccountRequired
	}
	switch c.Mode {
	case ModeIdle, ModeFight:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}
	if c.CharacterIndex < 0 {
		return fmt.Errorf("runner: character index must be >= 0, got %d", c.CharacterIndex)
	}
	return nil
}

type Service struct {
	cfg Config
	bot *bot.Bot
}

func NewService(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = DefaultConfig().Heartbeat
	}
	b, err := bot.New(cfg.Bot)
	if err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, bot: b}, nil
}

func (s *Service) Bot() *bot.Bot {
	return s.bot
}

// Run blocks until SIGINT/SIGTERM or the server drops the session.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.RunContext(ctx)
}

// RunContext logs in, enters the world and runs the configured mode until
// ctx ends or the connection drops.
func (s *Service) RunContext(ctx context.Context) error {
	defer func() {
		if err := s.bot.Disconnect(); err != nil {
			logs.Warnf("runner.Service.Run disconnect: %v", err)
		}
	}()
	if err := s.enterWorld(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	statusErr := make(chan error, 1)
	if addr := strings.TrimSpace(s.cfg.StatusAddr); addr != "" {
		srv := status.New(addr, s.bot)
		go func() { statusErr <- srv.Serve(ctx) }()
	}
	go s.heartbeat(ctx)

	modeErr := make(chan error, 1)
	go func() { modeErr <- s.runMode(ctx) }()

	select {
	case err := <-modeErr:
		if ctx.Err() != nil {
			logs.Infof("runner.Service.Run shutdown")
			return nil
		}
		return err
	case err := <-statusErr:
		if err != nil {
			return fmt.Errorf("runner: status server: %w", err)
		}
		return <-modeErr
	}
}

func (s *Service) enterWorld(ctx context.Context) error {
	if err := s.bot.Connect(ctx); err != nil {
		return err
	}
	roster, err := s.bot.Login(ctx, s.cfg.Account, s.cfg.Password)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		return ErrNoCharacters
	}
	if s.cfg.CharacterIndex >= len(roster) {
		return fmt.Errorf("runner: character index %d out of range, account has %d", s.cfg.CharacterIndex, len(roster))
	}
	pick := roster[s.cfg.CharacterIndex]
	st, err := s.bot.SelectCharacter(ctx, pick.Index)
	if err != nil {
		return err
	}
	logs.Infof("runner.Service.enterWorld name=%q level=%d map=%q mode=%s",
		st.Character.Name, st.Character.Level, st.Map.Title, s.cfg.Mode)
	return nil
}

func (s *Service) runMode(ctx context.Context) error {
	switch s.cfg.Mode {
	case ModeFight:
		return newFighter(s.bot, s.cfg.Fight).run(ctx)
	default:
		if err := s.bot.WaitDisconnect(ctx); err != nil {
			return err
		}
		return ErrSessionLost
	}
}

func (s *Service) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := s.bot.State()
			logs.Infof("runner.Service.heartbeat bot=%s connected=%v stage=%s hp=%d/%d at=%d,%d monsters=%d",
				s.bot.ID(), s.bot.Connected(), st.Stage, st.Character.HP, st.Character.MaxHP,
				st.Character.Location.X, st.Character.Location.Y, len(st.Monsters))
		}
	}
}
