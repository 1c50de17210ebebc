package interests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"newsbot/core/telegram/state"
)

func TestServiceAddFlow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sessions := state.NewMemoryManager()
	svc := NewService(store, sessions)

	prompt := svc.BeginAdd(42)
	require.Equal(t, PromptAdd, prompt)
	require.Equal(t, StateAwaitingAdd, sessions.GetState(42))

	reply, err := svc.HandleText(ctx, 42, "sports")
	require.NoError(t, err)
	require.Equal(t, "Added interest: sports", reply)
	require.Equal(t, state.StateIdle, sessions.GetState(42))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, []string{"sports"}, got)
}

func TestServiceRemoveFlow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sessions := state.NewMemoryManager()
	svc := NewService(store, sessions)

	require.NoError(t, store.Set(ctx, 42, []string{"sports", "tech"}))

	reply := svc.BeginRemove(42)
	require.Equal(t, PromptRemove, reply)

	out, err := svc.HandleText(ctx, 42, "tech")
	require.NoError(t, err)
	require.Equal(t, "Removed interest: tech", out)

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, []string{"sports"}, got)
}

func TestServiceEmptyTextExitsFlow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sessions := state.NewMemoryManager()
	svc := NewService(store, sessions)

	svc.BeginAdd(7)

	reply, err := svc.HandleText(ctx, 7, "   ")
	require.NoError(t, err)
	require.Empty(t, reply)
	require.False(t, sessions.InProgress(7))

	got, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestServiceTextWithoutFlowIsIgnored(t *testing.T) {
	svc := NewService(NewMemoryStore(), state.NewMemoryManager())

	reply, err := svc.HandleText(context.Background(), 7, "just chatting")
	require.NoError(t, err)
	require.Empty(t, reply)
}

func TestServiceStorageFailure(t *testing.T) {
	boom := errors.New("db down")
	store := NewMemoryStore()
	store.FailWith = boom
	sessions := state.NewMemoryManager()
	svc := NewService(store, sessions)

	svc.BeginAdd(9)
	reply, err := svc.HandleText(context.Background(), 9, "sports")
	require.ErrorIs(t, err, boom)
	require.Equal(t, ReplyFailure, reply)
	require.False(t, sessions.InProgress(9))
}

func TestServiceCancelPreemptsFlow(t *testing.T) {
	sessions := state.NewMemoryManager()
	svc := NewService(NewMemoryStore(), sessions)

	svc.BeginRemove(5)
	svc.Cancel(5)
	require.False(t, sessions.InProgress(5))
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store, state.NewMemoryManager())

	out, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, ReplyNoneSet, out)

	require.NoError(t, store.Set(ctx, 1, []string{"ai", "space"}))
	out, err = svc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Your interests are:\n1. ai\n2. space", out)
}
