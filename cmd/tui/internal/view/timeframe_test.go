package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeframe_Range(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		timeframe Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}

	tests := []testCase{
		{
			name:      "ThisMonth",
			timeframe: TimeframeThisMonth,
			wantStart: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "LastMonthInLeapYear",
			timeframe: TimeframeLastMonth,
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "LastQuarter",
			timeframe: TimeframeLastQuarter,
			wantStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "ThisYear",
			timeframe: TimeframeThisYear,
			wantStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "All",
			timeframe: TimeframeAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.timeframe.Range(now)

			assert.True(t, tt.wantStart.Equal(start), "start %s", start)
			assert.Equal(t, tt.wantEnd.Format(time.DateOnly), end.Format(time.DateOnly))
		})
	}
}

func TestParseRange(t *testing.T) {
	start, end, err := parseRange("01/02/2024", " 29/02/2024 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", start.Format(time.DateOnly))
	assert.Equal(t, "2024-02-29", end.Format(time.DateOnly))

	_, _, err = parseRange("2024-02-01", "29/02/2024")
	assert.Error(t, err)

	_, _, err = parseRange("10/03/2024", "01/03/2024")
	assert.Error(t, err)
}

func TestParseImportChoice(t *testing.T) {
	params, err := parseImportChoice("nubank", "card:7f1c2a48-5a0e-4c52-9d4b-2f4ad1a3f001")
	require.NoError(t, err)
	require.NotNil(t, params.CardID)
	assert.Nil(t, params.BankID)
	assert.Equal(t, "7f1c2a48-5a0e-4c52-9d4b-2f4ad1a3f001", params.CardID.String())

	_, err = parseImportChoice("", "")
	assert.Error(t, err)

	_, err = parseImportChoice("", "bank:nope")
	assert.Error(t, err)
}
