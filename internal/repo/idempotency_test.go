package repo

import (
	"context"
	"testing"
	"time"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

const scope = "POST /api/v1/reclamations"

func TestGetIdempotency_BlankScopeOrKey_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	for _, tc := range []struct{ scope, key string }{{"   ", "k1"}, {scope, ""}} {
		rec, err := GetIdempotency(context.Background(), db, "u1", tc.scope, tc.key, now)
		if rec != nil || err != ErrNotFound {
			t.Fatalf("scope=%q key=%q: expected (nil, ErrNotFound), got (%v, %v)", tc.scope, tc.key, rec, err)
		}
	}
}

func TestGetIdempotency_ExpiredOrMissing_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	exp := &domain.Idempotency{
		ID:            "expired",
		UserID:        "u1",
		Scope:         scope,
		Key:           "k1",
		ReclamationID: 1,
		Status:        201,
		CreatedAt:     now.Add(-2 * time.Hour),
		ExpiresAt:     now.Add(-time.Minute),
	}
	if err := db.Create(exp).Error; err != nil {
		t.Fatalf("seed expired: %v", err)
	}

	if rec, err := GetIdempotency(context.Background(), db, "u1", scope, "k1", now); rec != nil || err != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound) for expired, got (%v, %v)", rec, err)
	}
	if rec, err := GetIdempotency(context.Background(), db, "u1", scope, "missing", now); rec != nil || err != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound) for missing, got (%v, %v)", rec, err)
	}
}

func TestCreateThenGetIdempotency_RoundTrip(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	rec, err := CreateIdempotency(context.Background(), db, "u1", scope, "k1", 42, 201, now, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ID == "" || rec.ReclamationID != 42 || !rec.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(context.Background(), db, "u1", scope, "k1", now)
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.ReclamationID != 42 || got.Status != 201 {
		t.Fatalf("unexpected readback: %+v", got)
	}

	// Same key under another user is independent.
	if _, err := GetIdempotency(context.Background(), db, "u2", scope, "k1", now); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestCreateIdempotency_Duplicate(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	if _, err := CreateIdempotency(context.Background(), db, "u1", scope, "k1", 1, 201, now, time.Hour); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreateIdempotency(context.Background(), db, "u1", scope, "k1", 2, 201, now, time.Hour); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateIdempotency_OtherError(t *testing.T) {
	db := newTestDB(t /* no table */)
	_, err := CreateIdempotency(context.Background(), db, "u1", scope, "k1", 1, 201, time.Now(), time.Hour)
	if err == nil || err == ErrDuplicate {
		t.Fatalf("expected raw DB error, got %v", err)
	}
}
