package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/mirbot/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func instrumented(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	r := gin.New()
	r.Use(Instrument(logger, "bot-mw", "/health"))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/state/:part", func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") })
	return r
}

func serve(r http.Handler, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
}

func TestInstrumentLabelsByRoute(t *testing.T) {
	testlog.Start(t)
	var buf bytes.Buffer
	r := instrumented(&buf)

	unmatched := httpRequests.WithLabelValues("bot-mw", "GET", UnmatchedRoute, "404")
	routed := httpRequests.WithLabelValues("bot-mw", "GET", "/state/:part", "500")
	beforeUnmatched := testutil.ToFloat64(unmatched)
	beforeRouted := testutil.ToFloat64(routed)

	serve(r, "/wp-login.php")
	serve(r, "/etc/passwd")
	serve(r, "/state/character")

	if d := testutil.ToFloat64(unmatched) - beforeUnmatched; d != 2 {
		t.Fatalf("unmatched delta=%v", d)
	}
	if d := testutil.ToFloat64(routed) - beforeRouted; d != 1 {
		t.Fatalf("routed delta=%v", d)
	}
}

func TestInstrumentLogLevels(t *testing.T) {
	testlog.Start(t)
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	var buf bytes.Buffer
	r := instrumented(&buf)

	serve(r, "/health")
	serve(r, "/state/x")
	serve(r, "/nope")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d: %s", len(lines), buf.String())
	}
	want := []string{`"level":"debug"`, `"level":"error"`, `"level":"warn"`}
	for i, w := range want {
		if !strings.Contains(lines[i], w) || !strings.Contains(lines[i], `"bot":"bot-mw"`) {
			t.Fatalf("line %d=%s want %s", i, lines[i], w)
		}
	}
}
