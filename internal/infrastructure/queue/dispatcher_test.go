package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

type recordingProcessor struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (p *recordingProcessor) Process(_ context.Context, event domain.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingProcessor) snapshot() []domain.ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ActivityEvent, len(p.events))
	copy(out, p.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDispatcherProcessesEnqueuedEvents(t *testing.T) {
	proc := &recordingProcessor{}
	d := NewDispatcher(2, proc, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 5; i++ {
		d.Enqueue(domain.ActivityEvent{ActorID: "user-1", Resource: domain.ResourceProject, Verb: domain.VerbCreated})
	}

	waitFor(t, func() bool { return len(proc.snapshot()) == 5 })
}

func TestDispatcherPreservesPerActorOrder(t *testing.T) {
	proc := &recordingProcessor{}
	d := NewDispatcher(4, proc, zerolog.Nop())
	d.Start(context.Background())

	verbs := []domain.ActivityVerb{domain.VerbCreated, domain.VerbUpdated, domain.VerbActioned, domain.VerbDestroyed}
	for _, v := range verbs {
		d.Enqueue(domain.ActivityEvent{ActorID: "user-7", Resource: domain.ResourceTicket, Verb: v})
	}

	waitFor(t, func() bool { return len(proc.snapshot()) == len(verbs) })

	got := proc.snapshot()
	for i, v := range verbs {
		if got[i].Verb != v {
			t.Fatalf("event %d: got verb %q, want %q", i, got[i].Verb, v)
		}
	}
}

func TestDispatcherDropsWhenShardFull(t *testing.T) {
	// Never started, so the buffer fills and further enqueues must not block.
	d := NewDispatcher(1, &recordingProcessor{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.ActivityEvent{ActorID: "user-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full shard")
	}
}
