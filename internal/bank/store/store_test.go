package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/bank/store"
	"github.com/MrJamesThe3rd/carteira/internal/database/databasetest"
)

func TestStore_ConcurrentAdjust(t *testing.T) {
	db := databasetest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	owner := uuid.NewString()
	acc := &bank.Account{OwnerID: owner, Name: "Nubank", Kind: bank.KindDigital, Balance: 100000}
	require.NoError(t, s.CreateAccount(ctx, acc))

	const workers = 40

	var wg sync.WaitGroup

	errs := make(chan error, workers)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			delta := int64(-500)
			if i%2 == 0 {
				delta = 1500
			}

			errs <- s.Adjust(ctx, owner, bank.Adjustment{AccountID: acc.ID, Delta: delta})
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.GetAccount(ctx, owner, acc.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(100000+20*1500-20*500), got.Balance)
	assert.Equal(t, int64(1+workers), got.Version)
}

func TestStore_OwnerIsolation(t *testing.T) {
	db := databasetest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	acc := &bank.Account{OwnerID: uuid.NewString(), Name: "Itaú", Kind: bank.KindChecking}
	require.NoError(t, s.CreateAccount(ctx, acc))

	other := uuid.NewString()

	_, err := s.GetAccount(ctx, other, acc.ID)
	assert.ErrorIs(t, err, bank.ErrNotFound)

	err = s.Adjust(ctx, other, bank.Adjustment{AccountID: acc.ID, Delta: 100})
	assert.ErrorIs(t, err, bank.ErrNotFound)

	assert.ErrorIs(t, s.DeleteAccount(ctx, other, acc.ID), bank.ErrNotFound)

	accounts, err := s.ListAccounts(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
