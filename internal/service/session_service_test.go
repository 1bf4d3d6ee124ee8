package service

import (
	"context"
	"testing"
	"time"
)

func TestSessionKey(t *testing.T) {
	if got := sessionKey(12, "abc"); got != "access_token:12:abc" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestStatelessSessions(t *testing.T) {
	store := NewSessionStore(nil)
	ctx := context.Background()

	if err := store.Register(ctx, 1, "t", time.Minute); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := store.Revoke(ctx, 1, "t"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	active, err := store.IsActive(ctx, 1, "t")
	if err != nil || !active {
		t.Errorf("stateless tokens stay active until expiry, got %v, %v", active, err)
	}
}
