package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mirbot/internal/bot"
	"github.com/danmuck/mirbot/internal/runner"
)

type fileConfig struct {
	Address            string      `toml:"address"`
	Account            string      `toml:"account"`
	Password           string      `toml:"password"`
	Character          int         `toml:"character"`
	ClientExe          string      `toml:"client_exe"`
	ClientHash         string      `toml:"client_hash"`
	Mode               string      `toml:"mode"`
	StatusAddr         string      `toml:"status_addr"`
	LogLevel           string      `toml:"log_level"`
	Heartbeat          string      `toml:"heartbeat"`
	ConnectTimeout     string      `toml:"connect_timeout"`
	WriteTimeout       string      `toml:"write_timeout"`
	KeepAliveInterval  string      `toml:"keepalive_interval"`
	ShutdownTimeout    string      `toml:"shutdown_timeout"`
	MaxConnectAttempts int         `toml:"max_connect_attempts"`
	Backoff            backoffFile `toml:"backoff"`
	Pacing             pacingFile  `toml:"pacing"`
	Fight              fightFile   `toml:"fight"`
	Timeouts           timeoutFile `toml:"timeouts"`
}

type backoffFile struct {
	InitialDelay string  `toml:"initial_delay"`
	Multiplier   float64 `toml:"multiplier"`
	MaxDelay     string  `toml:"max_delay"`
	Jitter       bool    `toml:"jitter"`
}

type pacingFile struct {
	Walk   string `toml:"walk"`
	Run    string `toml:"run"`
	Attack string `toml:"attack"`
	Magic  string `toml:"magic"`
	Action string `toml:"action"`
}

type timeoutFile struct {
	Handshake string `toml:"handshake"`
	Login     string `toml:"login"`
	StartGame string `toml:"start_game"`
	Logout    string `toml:"logout"`
	NPC       string `toml:"npc"`
	Revive    string `toml:"revive"`
}

type fightFile struct {
	HPPotion    string  `toml:"hp_potion"`
	HPThreshold float64 `toml:"hp_threshold"`
	MPPotion    string  `toml:"mp_potion"`
	MPThreshold float64 `toml:"mp_threshold"`
	PickupEvery int     `toml:"pickup_every"`
	Revive      bool    `toml:"revive"`
}

type appConfig struct {
	Runner   runner.Config
	LogLevel string
}

func loadConfig(path string) (appConfig, error) {
	cfg := appConfig{Runner: runner.DefaultConfig()}
	rc := &cfg.Runner

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load mirbot config: %w", err)
	}

	if meta.IsDefined("address") {
		rc.Bot.Conn.Address = strings.TrimSpace(raw.Address)
	}
	if meta.IsDefined("account") {
		rc.Account = strings.TrimSpace(raw.Account)
	}
	if meta.IsDefined("password") {
		rc.Password = raw.Password
	}
	if meta.IsDefined("character") {
		rc.CharacterIndex = raw.Character
	}
	if meta.IsDefined("mode") {
		rc.Mode = runner.Mode(strings.ToLower(strings.TrimSpace(raw.Mode)))
	}
	if meta.IsDefined("status_addr") {
		rc.StatusAddr = strings.TrimSpace(raw.StatusAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("max_connect_attempts") {
		rc.Bot.Conn.Session.MaxConnectAttempts = raw.MaxConnectAttempts
	}

	// client_hash wins over client_exe so a bot host does not need the client.
	switch {
	case meta.IsDefined("client_hash"):
		h, err := bot.ParseVersionHash(raw.ClientHash)
		if err != nil {
			return appConfig{}, err
		}
		rc.Bot.VersionHash = h
	case meta.IsDefined("client_exe"):
		h, err := bot.HashClientFile(strings.TrimSpace(raw.ClientExe))
		if err != nil {
			return appConfig{}, err
		}
		rc.Bot.VersionHash = h
	}

	durations := []struct {
		key []string
		raw string
		dst *time.Duration
	}{
		{[]string{"heartbeat"}, raw.Heartbeat, &rc.Heartbeat},
		{[]string{"connect_timeout"}, raw.ConnectTimeout, &rc.Bot.Conn.Session.ConnectTimeout},
		{[]string{"write_timeout"}, raw.WriteTimeout, &rc.Bot.Conn.Session.WriteTimeout},
		{[]string{"keepalive_interval"}, raw.KeepAliveInterval, &rc.Bot.Conn.Session.KeepAliveInterval},
		{[]string{"shutdown_timeout"}, raw.ShutdownTimeout, &rc.Bot.Conn.Session.ShutdownTimeout},
		{[]string{"backoff", "initial_delay"}, raw.Backoff.InitialDelay, &rc.Bot.Conn.Session.Backoff.InitialDelay},
		{[]string{"backoff", "max_delay"}, raw.Backoff.MaxDelay, &rc.Bot.Conn.Session.Backoff.MaxDelay},
		{[]string{"pacing", "walk"}, raw.Pacing.Walk, &rc.Bot.Pacing.Walk},
		{[]string{"pacing", "run"}, raw.Pacing.Run, &rc.Bot.Pacing.Run},
		{[]string{"pacing", "attack"}, raw.Pacing.Attack, &rc.Bot.Pacing.Attack},
		{[]string{"pacing", "magic"}, raw.Pacing.Magic, &rc.Bot.Pacing.Magic},
		{[]string{"pacing", "action"}, raw.Pacing.Action, &rc.Bot.Pacing.Action},
		{[]string{"timeouts", "handshake"}, raw.Timeouts.Handshake, &rc.Bot.Timeouts.Handshake},
		{[]string{"timeouts", "login"}, raw.Timeouts.Login, &rc.Bot.Timeouts.Login},
		{[]string{"timeouts", "start_game"}, raw.Timeouts.StartGame, &rc.Bot.Timeouts.StartGame},
		{[]string{"timeouts", "logout"}, raw.Timeouts.Logout, &rc.Bot.Timeouts.Logout},
		{[]string{"timeouts", "npc"}, raw.Timeouts.NPC, &rc.Bot.Timeouts.NPC},
		{[]string{"timeouts", "revive"}, raw.Timeouts.Revive, &rc.Bot.Timeouts.Revive},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key...) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse %s: %w", strings.Join(d.key, "."), err)
		}
		*d.dst = v
	}

	if meta.IsDefined("backoff", "multiplier") {
		rc.Bot.Conn.Session.Backoff.Multiplier = raw.Backoff.Multiplier
	}
	if meta.IsDefined("backoff", "jitter") {
		rc.Bot.Conn.Session.Backoff.Jitter = raw.Backoff.Jitter
	}
	if err := rc.Bot.Conn.Session.Validate(); err != nil {
		return appConfig{}, err
	}

	if meta.IsDefined("fight", "hp_potion") {
		rc.Fight.HPPotion = strings.TrimSpace(raw.Fight.HPPotion)
	}
	if meta.IsDefined("fight", "hp_threshold") {
		rc.Fight.HPThreshold = raw.Fight.HPThreshold
	}
	if meta.IsDefined("fight", "mp_potion") {
		rc.Fight.MPPotion = strings.TrimSpace(raw.Fight.MPPotion)
	}
	if meta.IsDefined("fight", "mp_threshold") {
		rc.Fight.MPThreshold = raw.Fight.MPThreshold
	}
	if meta.IsDefined("fight", "pickup_every") {
		rc.Fight.PickupEvery = raw.Fight.PickupEvery
	}
	if meta.IsDefined("fight", "revive") {
		rc.Fight.Revive = raw.Fight.Revive
	}

	return cfg, nil
}
