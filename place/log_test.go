package place

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	l := SetupLogger()
	t.Cleanup(func() { SetLogger(nil) })
	require.Same(t, l, Logger())
	require.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	db := NewMemStore(named("a", "A", City, "gone"))
	a, _ := db.PlaceFromHandle("a")
	(&Resolver{DB: db}).LocationList(a, nil, "", Admin)
	require.Contains(t, buf.String(), "dangling place reference")

	SetLogger(nil)
	require.Same(t, slog.Default(), Logger())
}
