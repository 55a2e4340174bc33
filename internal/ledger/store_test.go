package ledger

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(NewRedisSnapshotter(client, "test:ledger:snapshot"), nil), mr
}

func TestStoreSeedsOnFirstUse(t *testing.T) {
	store, mr := newTestStore(t)
	state, err := store.State(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, state.Accounts)
	require.NotEmpty(t, state.Funds)
	require.NotEmpty(t, state.BankAccounts)
	// Seeding writes the snapshot immediately.
	require.True(t, mr.Exists("test:ledger:snapshot"))

	// Every seeded bank account must link an Asset ledger account.
	for _, bank := range state.BankAccounts {
		acc, ok := state.AccountByID(bank.LinkedLedgerAccountID)
		require.True(t, ok, "bank %s links missing account", bank.ID)
		require.Equal(t, AccountTypeAsset, acc.Type)
	}
}

func TestStoreReloadsSnapshotAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	snap := NewRedisSnapshotter(client, "test:ledger:snapshot")
	ctx := context.Background()

	first := NewStore(snap, nil)
	err := first.Update(ctx, func(state *State) error {
		state.Accounts = append(state.Accounts, Account{ID: "A-9999", Code: "9999", Name: "Scratch", Type: AccountTypeAsset})
		return nil
	})
	require.NoError(t, err)

	second := NewStore(snap, nil)
	state, err := second.State(ctx)
	require.NoError(t, err)
	_, ok := state.AccountByID("A-9999")
	require.True(t, ok, "fresh store must load the persisted snapshot")
}

func TestStoreNotifiesListenersInRegistrationOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var order []string
	store.Subscribe(func(State) { order = append(order, "first") })
	unsubscribe := store.Subscribe(func(State) { order = append(order, "second") })
	store.Subscribe(func(State) { order = append(order, "third") })

	require.NoError(t, store.Update(ctx, func(*State) error { return nil }))
	require.Equal(t, []string{"first", "second", "third"}, order)

	order = nil
	unsubscribe()
	require.NoError(t, store.Update(ctx, func(*State) error { return nil }))
	require.Equal(t, []string{"first", "third"}, order)
}

func TestStoreUpdateFailureLeavesStateUntouched(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	before, err := store.State(ctx)
	require.NoError(t, err)

	fired := false
	store.Subscribe(func(State) { fired = true })

	boom := errors.New("boom")
	err = store.Update(ctx, func(state *State) error {
		state.Accounts = nil
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.False(t, fired, "failed update must not notify")

	after, err := store.State(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestStoreSnapshotWriteFailureSurfaces(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.State(ctx) // initialize before the backend goes away
	require.NoError(t, err)
	mr.Close()

	fired := false
	store.Subscribe(func(State) { fired = true })

	err = store.Update(ctx, func(state *State) error {
		state.Accounts = append(state.Accounts, Account{ID: "A-8888", Code: "8888", Name: "Lost", Type: AccountTypeAsset})
		return nil
	})
	require.ErrorIs(t, err, ErrSnapshot)
	require.False(t, fired)
}
