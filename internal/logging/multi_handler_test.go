package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	err     error
	records int
}

func (s *stubHandler) Enabled(context.Context, slog.Level) bool { return true }

func (s *stubHandler) Handle(context.Context, slog.Record) error {
	s.records++
	return s.err
}

func (s *stubHandler) WithAttrs([]slog.Attr) slog.Handler { return s }
func (s *stubHandler) WithGroup(string) slog.Handler      { return s }

func TestMultiHandlerDeliversPastFailingSink(t *testing.T) {
	broken := &stubHandler{err: errors.New("sink down")}
	healthy := &stubHandler{}
	m := NewMultiHandler(broken, healthy)

	record := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	err := m.Handle(context.Background(), record)

	require.Error(t, err)
	assert.Equal(t, 1, broken.records)
	assert.Equal(t, 1, healthy.records, "later sinks still receive the record")
}
