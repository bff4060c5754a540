package cache

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func newTestStore() *Store {
	s := New(Options{TTL: time.Minute})
	s.Close()
	return s
}

func TestStore_FreshAfterComplete(t *testing.T) {
	s := newTestStore()

	if _, ok := s.Fresh("project/collection/u1"); ok {
		t.Fatalf("empty store must miss")
	}

	seq := s.Begin("project/collection/u1")
	if !s.Complete("project/collection/u1", seq, json.RawMessage(`[1]`)) {
		t.Fatalf("first completion must apply")
	}

	val, ok := s.Fresh("project/collection/u1")
	if !ok || !bytes.Equal(val, []byte(`[1]`)) {
		t.Fatalf("expected fresh [1], got %s ok=%v", val, ok)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	s := newTestStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	seq := s.Begin("k")
	s.Complete("k", seq, json.RawMessage(`1`))

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := s.Fresh("k"); ok {
		t.Fatalf("value past TTL must not be fresh")
	}
	if _, ok := s.Stale("k"); !ok {
		t.Fatalf("value past TTL is still available stale")
	}
}

func TestStore_IssueOrder(t *testing.T) {
	s := newTestStore()

	first := s.Begin("k")
	second := s.Begin("k")

	// The later-issued fetch resolves first.
	if !s.Complete("k", second, json.RawMessage(`"new"`)) {
		t.Fatalf("newest response must apply")
	}
	// The earlier-issued response arrives late and must be discarded.
	if s.Complete("k", first, json.RawMessage(`"old"`)) {
		t.Fatalf("out-of-order response must be discarded")
	}

	val, ok := s.Fresh("k")
	if !ok || string(val) != `"new"` {
		t.Fatalf("cache kept the wrong value: %s", val)
	}
}

func TestStore_InvalidateMarksStale(t *testing.T) {
	s := newTestStore()

	seq := s.Begin("project/collection/u1")
	s.Complete("project/collection/u1", seq, json.RawMessage(`[1]`))

	s.Invalidate("project/")

	if _, ok := s.Fresh("project/collection/u1"); ok {
		t.Fatalf("invalidated entry must not be fresh")
	}
	if val, ok := s.Stale("project/collection/u1"); !ok || string(val) != `[1]` {
		t.Fatalf("stale value must survive invalidation, got %s ok=%v", val, ok)
	}
}

func TestStore_InvalidateFencesInFlight(t *testing.T) {
	s := newTestStore()

	// A read begins, then a mutation invalidates before the read resolves.
	seq := s.Begin("project/collection/u1")
	s.Invalidate("project/")

	if s.Complete("project/collection/u1", seq, json.RawMessage(`["pre-mutation"]`)) {
		t.Fatalf("response issued before invalidation must be discarded")
	}

	// The read issued after the mutation sees the network again and wins.
	seq2 := s.Begin("project/collection/u1")
	if !s.Complete("project/collection/u1", seq2, json.RawMessage(`["post-mutation"]`)) {
		t.Fatalf("post-invalidation fetch must apply")
	}
	val, _ := s.Fresh("project/collection/u1")
	if string(val) != `["post-mutation"]` {
		t.Fatalf("cache kept pre-mutation state: %s", val)
	}
}

func TestStore_InvalidatePrefixScoping(t *testing.T) {
	s := newTestStore()

	for _, k := range []string{"project/collection/u1", "project/entity/u1/p1", "ticket/collection/u1"} {
		seq := s.Begin(k)
		s.Complete(k, seq, json.RawMessage(`1`))
	}

	s.Invalidate("project/")

	if _, ok := s.Fresh("project/entity/u1/p1"); ok {
		t.Fatalf("entity key under prefix must go stale")
	}
	if _, ok := s.Fresh("ticket/collection/u1"); !ok {
		t.Fatalf("unrelated resource must stay fresh")
	}
}
