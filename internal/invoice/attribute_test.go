package invoice_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	"github.com/MrJamesThe3rd/carteira/internal/period"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAttribute(t *testing.T) {
	type args struct {
		date       time.Time
		closingDay int
	}

	type testCase struct {
		name string
		args args
		want period.Period
	}

	tests := []testCase{
		{name: "OnClosingDay", args: args{day(2024, time.May, 10), 10}, want: period.Period{Year: 2024, Month: time.May}},
		{name: "DayAfterClosing", args: args{day(2024, time.May, 11), 10}, want: period.Period{Year: 2024, Month: time.June}},
		{name: "FirstOfMonth", args: args{day(2024, time.May, 1), 10}, want: period.Period{Year: 2024, Month: time.May}},
		{name: "DecemberRollsOver", args: args{day(2024, time.December, 15), 10}, want: period.Period{Year: 2025, Month: time.January}},
		{name: "ClosingOn31InShortMonth", args: args{day(2024, time.February, 29), 31}, want: period.Period{Year: 2024, Month: time.February}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoice.Attribute(tt.args.date, tt.args.closingDay)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttribute_InvalidClosingDay(t *testing.T) {
	for _, closing := range []int{0, 32, -1} {
		_, err := invoice.Attribute(day(2024, time.May, 10), closing)

		verr, ok := validation.As(err)
		require.True(t, ok)
		assert.Equal(t, "closing_day", verr.Field)
	}
}

func TestEffectiveTotal(t *testing.T) {
	cardID := uuid.New()
	other := uuid.New()
	bankID := uuid.New()

	credit := func(amount int64, d time.Time, c uuid.UUID) *expense.Expense {
		return &expense.Expense{Amount: amount, Date: d, Method: expense.MethodCredit, CardID: &c}
	}

	exps := []*expense.Expense{
		credit(10000, day(2024, time.April, 11), cardID),
		credit(20000, day(2024, time.May, 10), cardID),
		credit(40000, day(2024, time.May, 11), cardID),
		credit(80000, day(2024, time.May, 5), other),
		{Amount: 5000, Date: day(2024, time.May, 5), Method: expense.MethodPix, BankID: &bankID},
	}

	may := period.Period{Year: 2024, Month: time.May}

	assert.Equal(t, int64(30000), invoice.EffectiveTotal(exps, cardID, 10, may))
	assert.Equal(t, int64(40000), invoice.EffectiveTotal(exps, cardID, 10, may.Next()))
	assert.Len(t, invoice.Attributed(exps, cardID, 10, may), 2)
}

func TestUsedLimit_IndependentOfDerivedUsage(t *testing.T) {
	cardID := uuid.New()
	p := period.Period{Year: 2024, Month: time.May}

	invoices := []*invoice.Invoice{
		{CardID: cardID, Period: p.Prev(), Total: 30000, Paid: true},
		{CardID: cardID, Period: p, Total: 45000},
		{CardID: uuid.New(), Period: p, Total: 99900},
	}

	exps := []*expense.Expense{
		{Amount: 12000, Date: day(2024, time.May, 2), Method: expense.MethodCredit, CardID: &cardID},
	}

	assert.Equal(t, int64(45000), invoice.UsedLimit(invoices, cardID))
	assert.Equal(t, int64(12000), invoice.EffectiveTotal(exps, cardID, 10, p))
}

func TestDueDate(t *testing.T) {
	may := period.Period{Year: 2024, Month: time.May}

	assert.Equal(t, day(2024, time.May, 20), invoice.DueDate(may, 10, 20))
	assert.Equal(t, day(2024, time.June, 5), invoice.DueDate(may, 25, 5))
	assert.Equal(t, day(2025, time.January, 3), invoice.DueDate(period.Period{Year: 2024, Month: time.December}, 28, 3))
	assert.Equal(t, day(2024, time.February, 29), invoice.DueDate(period.Period{Year: 2024, Month: time.January}, 31, 31))
}
