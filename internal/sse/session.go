package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/auth"
	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/metrics"
	"github.com/chaizz/lumen-Park/internal/model"
)

const keepAliveFrame = ": keep-alive\n\n"

// FrameWriter is the streaming response. gin's ResponseWriter satisfies it.
type FrameWriter interface {
	io.Writer
	Flush()
}

// Streamer runs one cooperative session per stream connection.
type Streamer struct {
	registry  *Registry
	verifier  auth.Verifier
	heartbeat time.Duration
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewStreamer(cfg *config.Config, registry *Registry, verifier auth.Verifier, m *metrics.Metrics, logger *zap.Logger) *Streamer {
	heartbeat := cfg.SSEHeartbeat
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &Streamer{registry: registry, verifier: verifier, heartbeat: heartbeat, metrics: m, log: logger}
}

// Stream authenticates token, registers a channel and writes frames to w until
// ctx ends or the registry is closed. start runs once, after authentication
// and registration and before the first frame; it is where the caller commits
// response headers. An authentication failure returns before anything is
// registered. The channel is deregistered on every other return path.
func (s *Streamer) Stream(ctx context.Context, token string, w FrameWriter, start func()) error {
	recipient, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return err
	}

	ch, err := s.registry.Connect(recipient)
	if err != nil {
		return err
	}
	opened := time.Now()
	defer func() {
		s.registry.Disconnect(ch)
		s.metrics.StreamDurations.Observe(time.Since(opened).Seconds())
		s.log.Debug("stream closed", zap.String("recipient_id", recipient), zap.String("connection_id", ch.ID()))
	}()
	s.log.Debug("stream opened", zap.String("recipient_id", recipient), zap.String("connection_id", ch.ID()))

	if start != nil {
		start()
	}
	w.Flush()

	for {
		payload, ok, err := ch.Next(ctx, s.heartbeat)
		if err != nil {
			if errors.Is(err, ErrChannelClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		if !ok {
			if _, err := io.WriteString(w, keepAliveFrame); err != nil {
				return fmt.Errorf("write keep-alive: %w", err)
			}
			s.metrics.KeepAlives.Inc()
		} else if err := writeData(w, payload); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		w.Flush()
	}
}

func writeData(w io.Writer, payload model.Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
