package kv

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewMemory(clock)

	require.NoError(t, m.Set(context.Background(), "k", "v", time.Minute))
	v, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory(clockwork.NewFakeClock())

	_, err := m.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_EntryExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewMemory(clock)

	require.NoError(t, m.Set(context.Background(), "k", "v", time.Minute))

	clock.Advance(time.Minute + time.Millisecond)
	_, err := m.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ZeroTTLNeverExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewMemory(clock)

	require.NoError(t, m.Set(context.Background(), "k", "v", 0))

	clock.Advance(24 * time.Hour)
	v, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}

func TestMemory_OverwriteResetsExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewMemory(clock)

	require.NoError(t, m.Set(context.Background(), "k", "old", time.Minute))
	clock.Advance(50 * time.Second)
	require.NoError(t, m.Set(context.Background(), "k", "new", time.Minute))
	clock.Advance(50 * time.Second)

	v, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "new", v)
}
