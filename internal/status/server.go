// Package status serves a bot's health, world snapshot and metrics over
// HTTP for local inspection.
package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	logs "github.com/danmuck/mirbot/internal/logging"
	"github.com/danmuck/mirbot/internal/observability"
	"github.com/danmuck/mirbot/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownGrace = 2 * time.Second

// Source is what the server reports on. *bot.Bot satisfies it.
type Source interface {
	ID() string
	Connected() bool
	State() world.State
}

type Server struct {
	Addr    string
	Started time.Time

	src    Source
	router *gin.Engine
}

func New(addr string, src Source) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.Instrument(logs.With("component", "status"), src.ID(), "/health", "/metrics"))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		Addr:    addr,
		Started: time.Now(),
		src:     src,
		router:  r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(s.Started).String(),
			"bot":       s.src.ID(),
			"connected": s.src.Connected(),
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		st := s.src.State()
		ready := s.src.Connected() && st.Stage == world.StageGame
		code := http.StatusOK
		if !ready {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"ready": ready, "stage": st.Stage})
	})

	s.router.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.src.State())
	})

	s.router.GET("/state/character", func(c *gin.Context) {
		st := s.src.State()
		c.JSON(http.StatusOK, gin.H{"character": st.Character, "map": st.Map})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Serve listens until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logs.Infof("status.Server.Serve addr=%s bot=%s", s.Addr, s.src.ID())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logs.Warnf("status.Server.Serve shutdown: %v", err)
			return err
		}
		return nil
	}
}
