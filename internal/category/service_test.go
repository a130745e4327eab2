package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/category"
)

const owner = "user-1"

func TestDefaults(t *testing.T) {
	got, err := category.Defaults(owner)
	require.NoError(t, err)
	require.Len(t, got, 11)

	var incomes, expenses []string

	for _, c := range got {
		assert.Equal(t, owner, c.OwnerID)
		assert.NotEmpty(t, c.Color)
		assert.NotEmpty(t, c.Icon)
		require.NoError(t, c.Validate())

		switch c.Direction {
		case category.DirectionIncome:
			incomes = append(incomes, c.Name)
		case category.DirectionExpense:
			expenses = append(expenses, c.Name)
		}
	}

	assert.Equal(t, []string{"Salário", "Freelance", "Investimentos", "Outros"}, incomes)
	assert.Equal(t, []string{"Alimentação", "Transporte", "Moradia", "Lazer", "Saúde", "Educação", "Outros"}, expenses)
}

func TestService_InitializeDefaults(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *category.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "SeedsEmptyOwner",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().ListCategories(gomock.Any(), owner, category.ListFilter{}).Return(nil, nil)
				m.EXPECT().
					CreateCategories(gomock.Any(), gomock.Len(11)).
					DoAndReturn(func(_ context.Context, cs []*category.Category) error {
						for _, c := range cs {
							c.ID = uuid.New()
						}

						return nil
					})
			},
			wantLen: 11,
		},
		{
			name: "SkipsWhenCategoriesExist",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					ListCategories(gomock.Any(), owner, category.ListFilter{}).
					Return([]*category.Category{{ID: uuid.New(), Name: "Mercado"}}, nil)
			},
			wantLen: 0,
		},
		{
			name: "CreateFails",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().ListCategories(gomock.Any(), owner, category.ListFilter{}).Return(nil, nil)
				m.EXPECT().CreateCategories(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := category.NewService(repo).InitializeDefaults(context.Background(), owner)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Delete_InUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().DeleteCategory(gomock.Any(), owner, id).Return(category.ErrInUse)

	err := category.NewService(repo).Delete(context.Background(), owner, id)
	assert.ErrorIs(t, err, category.ErrInUse)
}

func TestService_Create_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := category.NewService(category.NewMockRepository(ctrl))

	_, err := svc.Create(context.Background(), owner, category.CreateParams{Name: "Pets", Direction: "sideways"})
	assert.Error(t, err)
}
