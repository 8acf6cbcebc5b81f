package store

import (
	"context"
	"testing"
	"time"

	"github.com/17okk-xie/portfolio/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "session-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected session not to be revoked")
	}

	if err := RevokeToken(ctx, database, "session-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "session-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected session to be revoked")
	}

	revoked, err = IsTokenRevoked(ctx, database, "session-2")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected different session not to be revoked")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := RevokeToken(ctx, database, "session-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("first RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, database, "session-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("second RevokeToken: %v", err)
	}
}

func TestRevokeTokenPrunesExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	revs := Revocations{DB: database}

	if err := revs.Revoke(ctx, "old", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Revoke old: %v", err)
	}
	if err := revs.Revoke(ctx, "new", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke new: %v", err)
	}

	if revoked, _ := revs.IsRevoked(ctx, "old"); revoked {
		t.Error("expected expired revocation to be pruned")
	}
	if revoked, _ := revs.IsRevoked(ctx, "new"); !revoked {
		t.Error("expected live revocation to remain")
	}
}
