package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/category"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/period"
)

const owner = "user-1"

var may = period.Period{Year: 2024, Month: time.May}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProgress(t *testing.T) {
	food := uuid.New()
	salary := uuid.New()

	paid := func(amount int64, d time.Time, cat uuid.UUID) *expense.Expense {
		return &expense.Expense{Amount: amount, Date: d, Status: expense.StatusPaid, CategoryID: &cat}
	}

	type args struct {
		goal *goal.Goal
		incs []*income.Income
		exps []*expense.Expense
	}

	type testCase struct {
		name        string
		args        args
		wantCurrent int64
		wantPercent float64
		wantStatus  goal.Status
	}

	tests := []testCase{
		{
			name: "ExpenseOnTrack",
			args: args{
				goal: &goal.Goal{CategoryID: food, Direction: category.DirectionExpense, MonthlyTarget: 100000},
				exps: []*expense.Expense{
					paid(30000, day(time.May, 3), food),
					paid(20000, day(time.May, 20), food),
					paid(90000, day(time.April, 30), food),
					{Amount: 50000, Date: day(time.May, 25), Status: expense.StatusPending, CategoryID: &food},
				},
			},
			wantCurrent: 50000,
			wantPercent: 50,
			wantStatus:  goal.StatusOnTrack,
		},
		{
			name: "ExpenseWarningAt80",
			args: args{
				goal: &goal.Goal{CategoryID: food, Direction: category.DirectionExpense, MonthlyTarget: 100000},
				exps: []*expense.Expense{paid(80000, day(time.May, 3), food)},
			},
			wantCurrent: 80000,
			wantPercent: 80,
			wantStatus:  goal.StatusWarning,
		},
		{
			name: "OverTargetIsCapped",
			args: args{
				goal: &goal.Goal{CategoryID: food, Direction: category.DirectionExpense, MonthlyTarget: 100000},
				exps: []*expense.Expense{paid(150000, day(time.May, 3), food)},
			},
			wantCurrent: 150000,
			wantPercent: 100,
			wantStatus:  goal.StatusCompleted,
		},
		{
			name: "IncomeCountsReceivedOnly",
			args: args{
				goal: &goal.Goal{CategoryID: salary, Direction: category.DirectionIncome, MonthlyTarget: 500000},
				incs: []*income.Income{
					{Amount: 500000, Date: day(time.May, 5), Status: income.StatusReceived, CategoryID: &salary},
					{Amount: 100000, Date: day(time.May, 20), Status: income.StatusPending, CategoryID: &salary},
				},
			},
			wantCurrent: 500000,
			wantPercent: 100,
			wantStatus:  goal.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := goal.Progress(tt.args.goal, tt.args.incs, tt.args.exps, may)

			assert.Equal(t, tt.wantCurrent, got.Current)
			assert.Equal(t, tt.args.goal.MonthlyTarget-tt.wantCurrent, got.Remaining)
			assert.InDelta(t, tt.wantPercent, got.Percent, 0.001)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestService_Create_TakesCategoryDirection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catID := uuid.New()
	repo := goal.NewMockRepository(ctrl)
	cats := goal.NewMockCategoryReader(ctrl)

	cats.EXPECT().
		Get(gomock.Any(), owner, catID).
		Return(&category.Category{ID: catID, Direction: category.DirectionIncome}, nil)
	repo.EXPECT().CreateGoal(gomock.Any(), gomock.Any()).Return(nil)

	svc := goal.NewService(repo, cats, goal.NewMockIncomeLister(ctrl), goal.NewMockExpenseLister(ctrl))

	got, err := svc.Create(context.Background(), owner, goal.CreateParams{CategoryID: catID, MonthlyTarget: 300000})
	require.NoError(t, err)
	assert.Equal(t, category.DirectionIncome, got.Direction)
	assert.True(t, got.Active)
}

func TestService_ListProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	food := uuid.New()
	repo := goal.NewMockRepository(ctrl)
	incs := goal.NewMockIncomeLister(ctrl)
	exps := goal.NewMockExpenseLister(ctrl)

	repo.EXPECT().ListGoals(gomock.Any(), owner, true).Return([]*goal.Goal{
		{CategoryID: food, Direction: category.DirectionExpense, MonthlyTarget: 40000, Active: true},
	}, nil)
	incs.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return(nil, nil)
	exps.EXPECT().List(gomock.Any(), owner, gomock.Any()).Return([]*expense.Expense{
		{Amount: 36000, Date: day(time.May, 9), Status: expense.StatusPaid, CategoryID: &food},
	}, nil)

	svc := goal.NewService(repo, goal.NewMockCategoryReader(ctrl), incs, exps)

	got, err := svc.ListProgress(context.Background(), owner, may)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, goal.StatusWarning, got[0].Status)
}
