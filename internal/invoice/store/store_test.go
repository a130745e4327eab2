package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	bankstore "github.com/MrJamesThe3rd/carteira/internal/bank/store"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	cardstore "github.com/MrJamesThe3rd/carteira/internal/card/store"
	"github.com/MrJamesThe3rd/carteira/internal/database/databasetest"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/invoice/store"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

func TestStore_InvoiceLifecycle(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()

	owner := uuid.NewString()

	c := &card.Card{OwnerID: owner, Name: "Roxinho", LastFour: "1234", Brand: card.BrandMastercard, Limit: 500000, ClosingDay: 10, DueDay: 17}
	require.NoError(t, cardstore.New(db).CreateCard(ctx, c))

	acc := &bank.Account{OwnerID: owner, Name: "Nubank", Kind: bank.KindDigital, Balance: 100000}
	banks := bankstore.New(db)
	require.NoError(t, banks.CreateAccount(ctx, acc))

	s := store.New(db)
	may := period.Period{Year: 2024, Month: time.May}

	inv := &invoice.Invoice{OwnerID: owner, CardID: c.ID, Period: may, Total: 45000, DueDate: time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.SaveInvoice(ctx, inv))

	refreshed := &invoice.Invoice{OwnerID: owner, CardID: c.ID, Period: may, Total: 52000, DueDate: inv.DueDate}
	require.NoError(t, s.SaveInvoice(ctx, refreshed))
	assert.Equal(t, inv.ID, refreshed.ID, "one invoice per card and period")

	got, err := s.GetByPeriod(ctx, owner, c.ID, may)
	require.NoError(t, err)
	assert.Equal(t, int64(52000), got.Total)

	paidAt := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	got.Paid = true
	got.PaidAt = &paidAt
	got.BankID = &acc.ID

	require.NoError(t, s.MarkPaid(ctx, got, &bank.Adjustment{AccountID: acc.ID, Delta: -got.Total}))
	assert.ErrorIs(t, s.MarkPaid(ctx, got, &bank.Adjustment{AccountID: acc.ID, Delta: -got.Total}), invoice.ErrAlreadyPaid)

	account, err := banks.GetAccount(ctx, owner, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(48000), account.Balance)

	again := &invoice.Invoice{OwnerID: owner, CardID: c.ID, Period: may, Total: 1, DueDate: inv.DueDate}
	assert.ErrorIs(t, s.SaveInvoice(ctx, again), invoice.ErrAlreadyPaid)

	list, err := s.ListInvoices(ctx, owner, invoice.ListFilter{CardID: &c.ID, Paid: new(true)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, may, list[0].Period)
}
