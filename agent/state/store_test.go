package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionAppendAndLastTurns(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s := NewSession("s1", "concierge", now)

	if err := s.Append(RoleUser, "quero uma pizza", now); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Append(RoleAssistant, "Pedido #100 confirmado!", now.Add(time.Second)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	turns := s.LastTurns(1)
	if len(turns) != 1 || turns[0].Role != RoleAssistant {
		t.Fatalf("LastTurns(1) = %+v, want last assistant turn", turns)
	}
	if got := s.LastTurns(0); len(got) != 2 {
		t.Fatalf("LastTurns(0) len = %d, want full transcript", len(got))
	}
}

func TestSessionAppendRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	s := NewSession("s1", "concierge", time.Now())
	if err := s.Append(RoleUser, "   ", time.Now()); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("Append() error = %v, want ErrEmptyContent", err)
	}
}

func TestSessionValidate(t *testing.T) {
	t.Parallel()

	s := NewSession("", "concierge", time.Now())
	if err := s.Validate(); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Validate() error = %v, want ErrInvalidSession", err)
	}

	s = NewSession("s1", "concierge", time.Now())
	s.Turns = append(s.Turns, Turn{Role: "robot", Content: "hi"})
	if err := s.Validate(); err == nil {
		t.Fatal("Validate() accepted invalid role")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	now := time.Now().UTC()

	s := NewSession("s1", "concierge", now)
	if err := s.Append(RoleUser, "oi", now); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Turns) != 1 || got.Turns[0].Content != "oi" {
		t.Fatalf("loaded session = %+v", got)
	}
}

func TestMemoryStoreLoadMiss(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() error = %v, want ErrStateNotFound", err)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	now := time.Now().UTC()

	s := NewSession("s1", "concierge", now)
	_ = s.Append(RoleUser, "oi", now)
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	_ = s.Append(RoleUser, "mais uma", now)

	got, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Turns) != 1 {
		t.Fatalf("stored transcript len = %d, want 1", len(got.Turns))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	s := NewSession("s1", "concierge", time.Now())
	_ = s.Append(RoleUser, "oi", time.Now())
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(context.Background(), "s1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after delete error = %v, want ErrStateNotFound", err)
	}
}
