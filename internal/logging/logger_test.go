package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	log := New(slog.LevelWarn)
	if log.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled on a warn-level logger")
	}
	if !log.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled on a warn-level logger")
	}
}

func TestNewNopAcceptsRecords(t *testing.T) {
	log := NewNop()
	log.Info("dropped")
	log.Error("also dropped", "error", errors.New("boom"))
}
