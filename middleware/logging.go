package middleware

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics counts requests for the periodic metrics log.
type Metrics struct {
	started  time.Time
	requests atomic.Int64
	errors   atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{started: time.Now()}
}

type Snapshot struct {
	Requests int64
	Errors   int64
	Uptime   time.Duration
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Requests: m.requests.Load(),
		Errors:   m.errors.Load(),
		Uptime:   time.Since(m.started),
	}
}

// RequestLogger writes one structured entry per request and feeds metrics when non-nil.
func RequestLogger(logger *slog.Logger, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if metrics != nil {
			metrics.requests.Add(1)
			if status >= 500 {
				metrics.errors.Add(1)
			}
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "http.request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// RunMetricsLogger logs a snapshot every interval until ctx is done.
func RunMetricsLogger(ctx context.Context, logger *slog.Logger, metrics *Metrics, interval time.Duration) {
	if interval <= 0 || metrics == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := metrics.Snapshot()
			logger.Info("metrics",
				"requests", s.Requests,
				"errors", s.Errors,
				"uptime", s.Uptime.Round(time.Second).String(),
			)
		}
	}
}
