package leaderboard

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreInsertAndTop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runs := []Entry{
		{Name: "ada", Score: 120, Level: 4, Seconds: 30},
		{Name: "bob", Score: 300, Level: 6, Seconds: 50},
		{Name: "cleo", Score: 60, Level: 2, Seconds: 30},
	}
	for _, r := range runs {
		got, err := s.Insert(ctx, r)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if got.ID == "" {
			t.Fatalf("insert should assign an id")
		}
		if got.CreatedAt.IsZero() {
			t.Fatalf("insert should assign a timestamp")
		}
	}

	top, err := s.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Name != "bob" || top[1].Name != "ada" {
		t.Fatalf("expected best-first ordering, got %v", top)
	}
}

func TestStoreTopDefaultsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if _, err := s.Insert(ctx, Entry{Name: "p", Score: i, Level: 1, Seconds: i}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	top, err := s.Top(ctx, 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("expected default limit of 10, got %d", len(top))
	}
	if top[0].Score != 14 {
		t.Fatalf("expected highest score first, got %d", top[0].Score)
	}
}
