package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	bankstore "github.com/MrJamesThe3rd/carteira/internal/bank/store"
	"github.com/MrJamesThe3rd/carteira/internal/database/databasetest"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/expense/store"
)

func TestStore_ConfirmPaymentOnce(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()

	banks := bankstore.New(db)
	s := store.New(db)

	owner := uuid.NewString()
	acc := &bank.Account{OwnerID: owner, Name: "BB", Kind: bank.KindChecking, Balance: 50000}
	require.NoError(t, banks.CreateAccount(ctx, acc))

	pending := &expense.Expense{
		OwnerID:     owner,
		Description: "Conta de luz",
		Amount:      12000,
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Method:      expense.MethodPending,
		Status:      expense.StatusPending,
	}
	require.NoError(t, s.CreateExpenses(ctx, []*expense.Expense{pending}, nil))

	const workers = 10

	var (
		wg         sync.WaitGroup
		confirmed  atomic.Int32
		notPending atomic.Int32
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			e := *pending
			e.Status = expense.StatusPaid
			e.Method = expense.MethodBillet
			e.BankID = &acc.ID

			err := s.ConfirmPayment(ctx, &e, e.BalanceAdjustment())

			switch {
			case err == nil:
				confirmed.Add(1)
			case errors.Is(err, expense.ErrNotPending):
				notPending.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), confirmed.Load())
	assert.Equal(t, int32(workers-1), notPending.Load())

	got, err := banks.GetAccount(ctx, owner, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(38000), got.Balance)

	stored, err := s.GetExpense(ctx, owner, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPaid, stored.Status)
	assert.Equal(t, &acc.ID, stored.BankID)
}

func TestStore_InstallmentGroup(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	s := store.New(db)

	owner := uuid.NewString()
	cardID := uuid.New()

	svc := expense.NewService(s)

	created, err := svc.Create(ctx, owner, expense.CreateParams{
		Description:  "Geladeira",
		Amount:       300000,
		Date:         time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Method:       expense.MethodCredit,
		CardID:       &cardID,
		Status:       expense.StatusPaid,
		Installments: 3,
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	group, err := svc.ListGroup(ctx, owner, created[0].GroupID())
	require.NoError(t, err)
	require.Len(t, group, 3)

	assert.Equal(t, "1/3", group[0].Installment.Label)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), group[1].Date.UTC())

	require.NoError(t, svc.DeleteGroup(ctx, owner, created[0].GroupID()))
	assert.ErrorIs(t, svc.DeleteGroup(ctx, owner, created[0].GroupID()), expense.ErrNotFound)
}
