package e2e

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/auth"
	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/directory"
	httpserver "github.com/chaizz/lumen-Park/internal/http"
	"github.com/chaizz/lumen-Park/internal/http/controller"
	"github.com/chaizz/lumen-Park/internal/metrics"
	"github.com/chaizz/lumen-Park/internal/model"
	"github.com/chaizz/lumen-Park/internal/queue"
	"github.com/chaizz/lumen-Park/internal/repository"
	"github.com/chaizz/lumen-Park/internal/service/notify"
	"github.com/chaizz/lumen-Park/internal/sse"
)

const testSecret = "e2e-secret"

type noopPublisher struct{}

func (n *noopPublisher) Publish(context.Context, []byte, string) error {
	return nil
}

type stack struct {
	server   *httptest.Server
	svc      *notify.Service
	registry *sse.Registry
}

func baseConfig() *config.Config {
	return &config.Config{
		HTTPAddr:            ":0",
		JWTSecret:           testSecret,
		SSEHeartbeat:        5 * time.Second,
		ListDefaultLimit:    50,
		ListMaxLimit:        100,
		RabbitPublishPrefix: "notification",
	}
}

func newStack(t *testing.T, cfg *config.Config, store repository.NotificationRepository, publisher queue.Publisher) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	m := metrics.New()
	registry := sse.NewRegistry(m, logger)
	verifier := auth.NewJWTVerifier(cfg)
	users := directory.NewStatic(
		model.Sender{ID: "alice", Username: "Alice"},
		model.Sender{ID: "bob", Username: "Bob"},
	)
	svc := notify.NewService(cfg, store, users, registry, m, logger)
	streamer := sse.NewStreamer(cfg, registry, verifier, m, logger)
	handler := controller.NewHandler(cfg, svc, streamer, logger, publisher)
	router := httpserver.NewRouter(cfg, handler, verifier, m, logger)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		registry.Close()
		server.Close()
	})
	return &stack{server: server, svc: svc, registry: registry}
}

func issue(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.Issue(testSecret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

// openStream connects as userID and waits until the registry has the channel.
func (s *stack) openStream(t *testing.T, userID string) *frameReader {
	t.Helper()
	before := s.registry.Connections(userID)
	resp, err := http.Get(s.server.URL + "/notifications/stream?token=" + issue(t, userID))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	require.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	require.Eventually(t, func() bool {
		return s.registry.Connections(userID) == before+1
	}, time.Second, 5*time.Millisecond)
	return newFrameReader(resp.Body)
}

func (s *stack) do(t *testing.T, method, path, userID string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+issue(t, userID))
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// frameReader splits an event-stream body into frames. A frame is the text
// before a blank line.
type frameReader struct {
	frames chan string
	errs   chan error
}

func newFrameReader(body io.Reader) *frameReader {
	r := &frameReader{frames: make(chan string, 64), errs: make(chan error, 1)}
	go func() {
		reader := bufio.NewReader(body)
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				r.errs <- err
				return
			}
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				if len(lines) > 0 {
					r.frames <- strings.Join(lines, "\n")
					lines = nil
				}
				continue
			}
			lines = append(lines, line)
		}
	}()
	return r
}

func (r *frameReader) next(timeout time.Duration) (string, error) {
	select {
	case frame := <-r.frames:
		return frame, nil
	case err := <-r.errs:
		return "", err
	case <-time.After(timeout):
		return "", context.DeadlineExceeded
	}
}

// nextData skips keep-alive comments and returns the JSON of the next data frame.
func (r *frameReader) nextData(t *testing.T, timeout time.Duration) string {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		frame, err := r.next(time.Until(deadline))
		require.NoError(t, err)
		if strings.HasPrefix(frame, ":") {
			continue
		}
		require.True(t, strings.HasPrefix(frame, "data: "), "unexpected frame %q", frame)
		return strings.TrimPrefix(frame, "data: ")
	}
}

func (r *frameReader) requireSilent(t *testing.T, wait time.Duration) {
	t.Helper()
	frame, err := r.next(wait)
	require.ErrorIs(t, err, context.DeadlineExceeded, "unexpected frame %q", frame)
}
