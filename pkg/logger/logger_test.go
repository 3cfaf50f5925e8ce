package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestLevelPerEnvironment(t *testing.T) {
	cases := []struct {
		env  string
		want slog.Level
	}{
		{"local", slog.LevelDebug},
		{"dev", slog.LevelDebug},
		{"staging", slog.LevelInfo},
		{"production", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := levelFor(tc.env); got != tc.want {
			t.Fatalf("env %q: expected %v, got %v", tc.env, tc.want, got)
		}
	}
}

func TestFromRoundTripAndFallback(t *testing.T) {
	l := New("local")
	ctx := With(context.Background(), l)
	if From(ctx) != l {
		t.Fatalf("expected the attached logger back")
	}
	if From(context.Background()) != slog.Default() {
		t.Fatalf("expected slog.Default fallback")
	}
}
