package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCanonicalKey(t *testing.T) {
	k := Parse("AAPL240119C00150000")

	assert.Equal(t, "AAPL", k.Underlying)
	assert.Equal(t, "2024-01-19", k.Expiration)
	assert.Equal(t, RightCall, k.Right)
	assert.InDelta(t, 150.0, k.Strike, 0.001)
}

func TestParsePutKey(t *testing.T) {
	k := Parse("TSLA251219P00420500")

	assert.Equal(t, "TSLA", k.Underlying)
	assert.Equal(t, "2025-12-19", k.Expiration)
	assert.Equal(t, RightPut, k.Right)
	assert.InDelta(t, 420.5, k.Strike, 0.001)
}

func TestParseShortStrikeEncoding(t *testing.T) {
	// 6-digit strike variant still seen on older feeds.
	k := Parse("AAPL240119C150000")

	assert.Equal(t, "2024-01-19", k.Expiration)
	assert.InDelta(t, 150.0, k.Strike, 0.001)
}

func TestParseSingleLetterUnderlying(t *testing.T) {
	k := Parse("F260116C00012000")

	assert.Equal(t, "F", k.Underlying)
	assert.Equal(t, "2026-01-16", k.Expiration)
	assert.InDelta(t, 12.0, k.Strike, 0.001)
}

func TestParseStrikeTrailingDigitScaling(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want float64
	}{
		{"thousandths scale", "Q1500000", 1500.0},
		{"hundredths scale", "XYZ12345", 123.45},
		{"whole dollars", "XYZ150", 150.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseStrike(tt.key), 0.001)
		})
	}
}

func TestParseUnparseableKey(t *testing.T) {
	k := Parse("GARBAGE")

	assert.Equal(t, "", k.Expiration)
	assert.Equal(t, 0.0, k.Strike)
	assert.Equal(t, "", k.Right)
}

func TestParseRejectsImpossibleDates(t *testing.T) {
	// Month 13 must not be read as a date.
	assert.Equal(t, "", ParseExpiration("AAPL241350C00150000"))
}

func TestEncodeParseRoundTrip(t *testing.T) {
	cases := []struct {
		symbol string
		date   string
		right  string
		strike float64
	}{
		{"AAPL", "2024-01-19", RightCall, 150.0},
		{"MSFT", "2025-06-20", RightPut, 432.5},
		{"F", "2026-12-18", RightCall, 9.875},
		{"GOOG", "2024-09-20", RightPut, 2800.0},
	}
	for _, c := range cases {
		exp, err := time.Parse("2006-01-02", c.date)
		require.NoError(t, err)

		k := Parse(Encode(c.symbol, exp, c.right, c.strike))

		assert.Equal(t, c.symbol, k.Underlying)
		assert.Equal(t, c.date, k.Expiration)
		assert.Equal(t, c.right, k.Right)
		assert.InDelta(t, c.strike, k.Strike, 0.001)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)

	days, ok := DaysUntil("2025-10-16", now)
	require.True(t, ok)
	assert.InDelta(t, 30.0, days, 0.01)

	_, ok = DaysUntil("", now)
	assert.False(t, ok)

	_, ok = DaysUntil("not-a-date", now)
	assert.False(t, ok)
}
