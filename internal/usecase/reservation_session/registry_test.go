package reservation_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func newRegistrySession(id string, clock *fixedClock) *Session {
	draft := domain.NewReserveNowDraft("cs-1", 1, clock.Now().Add(time.Hour), 1)
	return NewSession(id, draft, false, Dependencies{
		Resolver:     newStubResolver(),
		Gateway:      newStubGateway(),
		TimeProvider: clock,
		Logger:       nopLogger{},
	})
}

func TestRegistry_AddGetRemove(t *testing.T) {
	clock := &fixedClock{now: testNow}
	r := NewRegistry(time.Minute, clock, nopLogger{})
	s := newRegistrySession("s-1", clock)

	r.Add(s)
	got, err := r.Get("s-1")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, r.Len())

	r.Remove("s-1")
	_, err = r.Get("s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_EvictIdle(t *testing.T) {
	clock := &fixedClock{now: testNow}
	r := NewRegistry(10*time.Minute, clock, nopLogger{})

	idle := newRegistrySession("idle", clock)
	r.Add(idle)

	clock.Advance(8 * time.Minute)
	active := newRegistrySession("active", clock)
	r.Add(active)

	clock.Advance(5 * time.Minute)
	evicted := r.EvictIdle()

	assert.Equal(t, 1, evicted)
	_, err := r.Get("idle")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, StateClosed, idle.Snapshot().State)

	_, err = r.Get("active")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, active.Snapshot().State)
}

func TestRegistry_RunClosesAllOnShutdown(t *testing.T) {
	clock := &fixedClock{now: testNow}
	r := NewRegistry(time.Hour, clock, nopLogger{})
	s := newRegistrySession("s-1", clock)
	r.Add(s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("registry did not stop")
	}
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, StateClosed, s.Snapshot().State)
}

type chanGauge chan int

func (g chanGauge) SetActiveSessions(n int) {
	select {
	case g <- n:
	default:
	}
}

func TestRegistry_RunReportsActiveSessions(t *testing.T) {
	clock := &fixedClock{now: testNow}
	r := NewRegistry(time.Hour, clock, nopLogger{})
	r.Add(newRegistrySession("s-1", clock))
	r.Add(newRegistrySession("s-2", clock))
	gauge := make(chanGauge, 1)
	r.SetGauge(gauge)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx, 10*time.Millisecond)

	select {
	case n := <-gauge:
		assert.Equal(t, 2, n)
	case <-time.After(time.Second):
		t.Fatal("gauge was not updated")
	}
}
