package nslscan

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("Fields", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		l.WithSites(12).WithWorkers(3).Info("start")
		assert.Contains(t, buf.String(), "sites=12")
		assert.Contains(t, buf.String(), "workers=3")
	})

	t.Run("LogScan", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(slog.NewJSONHandler(&buf, nil))

		l.LogScan(ctx, 40, 9, Extremes{NSL: 2.5, IHS: -3}, nil)
		assert.Contains(t, buf.String(), `"msg":"standardized scan completed"`)
		assert.Contains(t, buf.String(), `"kept":40`)
		assert.Contains(t, buf.String(), `"bins":9`)

		buf.Reset()
		l.LogScan(ctx, 40, 0, Extremes{}, errors.New("boom"))
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), `"error":"boom"`)
	})

	t.Run("LogSitesLevels", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

		l.LogSite(ctx, 3, Statistic{NSL: 1, IHS: 2}, nil)
		assert.Empty(t, buf.String())

		l.LogSites(ctx, 100, 4, nil)
		assert.Contains(t, buf.String(), "per-site scan completed")
	})

	t.Run("Noop", func(t *testing.T) {
		l := NoopLogger()
		assert.NotPanics(t, func() { l.LogSites(ctx, 1, 1, errors.New("ignored")) })
	})
}
