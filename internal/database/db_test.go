package database

import (
	"context"
	"strings"
	"testing"
)

func TestConnectRejectsBadDSN(t *testing.T) {
	tests := map[string]string{
		"empty":   "",
		"garbage": "invalid-dsn",
		"bad url": "postgres://runs:secret@[::1",
	}
	for name, dsn := range tests {
		t.Run(name, func(t *testing.T) {
			pool, err := Connect(context.Background(), dsn)
			if err == nil {
				pool.Close()
				t.Fatalf("expected error for dsn %q", dsn)
			}
		})
	}
}

func TestConnectFailsPingOnUnreachableHost(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, "postgres://runs@127.0.0.1:1/recommender?connect_timeout=1")
	if err == nil {
		t.Fatalf("expected error for unreachable database")
	}
	if !strings.Contains(err.Error(), "ping database") && !strings.Contains(err.Error(), "create pgx pool") {
		t.Fatalf("unexpected error: %v", err)
	}
}
