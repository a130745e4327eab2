package card_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

const owner = "user-1"

func validParams() card.CreateParams {
	return card.CreateParams{
		Name:       "Roxinho",
		LastFour:   "1234",
		Brand:      card.BrandMastercard,
		Limit:      500000,
		ClosingDay: 10,
		DueDay:     17,
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		mutate    func(p *card.CreateParams)
		wantField string
	}

	tests := []testCase{
		{name: "Success"},
		{name: "ClosingDayZero", mutate: func(p *card.CreateParams) { p.ClosingDay = 0 }, wantField: "closing_day"},
		{name: "ClosingDayTooLarge", mutate: func(p *card.CreateParams) { p.ClosingDay = 32 }, wantField: "closing_day"},
		{name: "DueDayInvalid", mutate: func(p *card.CreateParams) { p.DueDay = -1 }, wantField: "due_day"},
		{name: "LastFourLetters", mutate: func(p *card.CreateParams) { p.LastFour = "12a4" }, wantField: "last_four"},
		{name: "NegativeLimit", mutate: func(p *card.CreateParams) { p.Limit = -1 }, wantField: "limit"},
		{name: "UnknownBrand", mutate: func(p *card.CreateParams) { p.Brand = "diners" }, wantField: "brand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := card.NewMockRepository(ctrl)
			if tt.wantField == "" {
				repo.EXPECT().
					CreateCard(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *card.Card) error {
						c.ID = uuid.New()
						return nil
					})
			}

			params := validParams()
			if tt.mutate != nil {
				tt.mutate(&params)
			}

			got, err := card.NewService(repo).Create(context.Background(), owner, params)
			if tt.wantField != "" {
				ve, ok := validation.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, ve.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner, got.OwnerID)
			assert.Equal(t, 10, got.ClosingDay)
		})
	}
}

func TestClosingDays(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got := card.ClosingDays([]*card.Card{{ID: a, ClosingDay: 5}, {ID: b, ClosingDay: 28}})
	assert.Equal(t, map[uuid.UUID]int{a: 5, b: 28}, got)
}
