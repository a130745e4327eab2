package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/matching"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

func TestBest(t *testing.T) {
	food := uuid.New()

	rules := []*matching.Rule{
		{Pattern: "ifood", Description: "iFood", CategoryID: &food},
		{Pattern: "ifood *restaurante", Description: "iFood Restaurante"},
		{Pattern: "uber", Description: "Uber"},
	}

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "IFOOD *RESTAURANTE XYZ", want: "iFood Restaurante"},
		{raw: "Compra IFOOD.COM", want: "iFood"},
		{raw: "UBER *TRIP", want: "Uber"},
		{raw: "PIX ENVIADO", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := matching.Best(rules, tt.raw)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Description)
		})
	}
}

func TestService_Learn(t *testing.T) {
	category := uuid.New()

	type args struct {
		params matching.LearnParams
	}

	type testCase struct {
		name        string
		args        args
		setupMock   func(m *matching.MockRepository)
		wantInvalid bool
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: matching.LearnParams{Pattern: "  NETFLIX ", CategoryID: &category}},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *matching.Rule) error {
					assert.Equal(t, "NETFLIX", r.Pattern)
					assert.Equal(t, "u1", r.OwnerID)

					return nil
				})
			},
		},
		{
			name:        "PatternTooShort",
			args:        args{params: matching.LearnParams{Pattern: "ab", Description: "AB"}},
			setupMock:   func(*matching.MockRepository) {},
			wantInvalid: true,
		},
		{
			name:        "NothingToApply",
			args:        args{params: matching.LearnParams{Pattern: "netflix"}},
			setupMock:   func(*matching.MockRepository) {},
			wantInvalid: true,
		},
		{
			name: "RepositoryError",
			args: args{params: matching.LearnParams{Pattern: "netflix", Description: "Netflix"}},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			tt.setupMock(repo)

			_, err := matching.NewService(repo).Learn(context.Background(), "u1", tt.args.params)

			switch {
			case tt.wantInvalid:
				_, ok := validation.As(err)
				assert.True(t, ok)
			case tt.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().ListRules(gomock.Any(), "u1").Return([]*matching.Rule{{Pattern: "spotify", Description: "Spotify"}}, nil)

	got, err := matching.NewService(repo).Suggest(context.Background(), "u1", "PAG*SPOTIFY BR")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Spotify", got.Description)

	var nilSuggester *matching.Suggester
	assert.Nil(t, nilSuggester.Suggest("anything"))
}
