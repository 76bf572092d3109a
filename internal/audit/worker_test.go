package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPersistsEmittedEvents(t *testing.T) {
	store := NewMemoryStore()
	inbox := make(chan Event, 8)
	logger := slog.New(slog.DiscardHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := NewWorker(store, inbox, logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	emitter := NewEmitter(inbox, logger)
	emitter.Emit(ctx, Event{Action: ActionBadgeValidated, Subject: "7", OccurredAt: time.Now()})
	emitter.Emit(ctx, Event{Action: ActionSecurityNotified, Subject: "7", OccurredAt: time.Now()})

	require.Eventually(t, func() bool {
		events, err := store.List(ctx)
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	events, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ActionBadgeValidated, events[0].Action)
	assert.Equal(t, ActionSecurityNotified, events[1].Action)

	cancel()
	<-done
}

func TestEmitterDropsWhenBufferFull(t *testing.T) {
	inbox := make(chan Event) // unbuffered, no consumer
	emitter := NewEmitter(inbox, slog.New(slog.DiscardHandler))

	done := make(chan struct{})
	go func() {
		defer close(done)
		emitter.Emit(context.Background(), Event{Action: ActionOrderPlaced})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}
}

func TestNilEmitterIsSafe(t *testing.T) {
	var emitter *Emitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), Event{Action: ActionBadgeRejected})
	})
}
