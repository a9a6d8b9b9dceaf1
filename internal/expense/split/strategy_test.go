package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// assertShares checks user order, per-user amounts and the sum invariant.
func assertShares(t *testing.T, total decimal.Decimal, shares []Share, want map[int64]string, order []int64) {
	t.Helper()
	require.Len(t, shares, len(order))

	sum := decimal.Zero
	for i, s := range shares {
		assert.Equal(t, order[i], s.UserID, "share %d user", i)
		assert.True(t, s.AmountOwed.Equal(dec(want[s.UserID])),
			"user %d: want %s, got %s", s.UserID, want[s.UserID], s.AmountOwed)
		sum = sum.Add(s.AmountOwed)
	}
	assert.True(t, sum.Equal(total), "shares sum to %s, total is %s", sum, total)
}

func TestFactory_Create(t *testing.T) {
	f := NewFactory()

	for _, policy := range []PolicyType{PolicyEqual, PolicyExact, PolicyPercentage, PolicyShare} {
		s, err := f.Create(policy)
		require.NoError(t, err)
		assert.Equal(t, policy, s.Type())
	}

	_, err := f.CreateFromString("SPLIT_BY_MOOD")
	assert.ErrorIs(t, err, ErrUnsupportedPolicy)
}

func TestEqualStrategy_Calculate(t *testing.T) {
	s := &EqualStrategy{}

	tests := []struct {
		name         string
		total        string
		participants []int64
		want         map[int64]string
	}{
		{
			// First participant absorbs the remainder cent.
			name:         "10.00 across three",
			total:        "10.00",
			participants: []int64{1, 2, 3},
			want:         map[int64]string{1: "3.34", 2: "3.33", 3: "3.33"},
		},
		{
			name:         "exact division",
			total:        "90.00",
			participants: []int64{1, 2, 3},
			want:         map[int64]string{1: "30.00", 2: "30.00", 3: "30.00"},
		},
		{
			name:         "single participant",
			total:        "42.99",
			participants: []int64{7},
			want:         map[int64]string{7: "42.99"},
		},
		{
			// 10005 cents / 7 = 1429 remainder 2: two extra cents up front.
			name:         "multi-cent remainder",
			total:        "100.05",
			participants: []int64{1, 2, 3, 4, 5, 6, 7},
			want: map[int64]string{
				1: "14.30", 2: "14.30", 3: "14.29", 4: "14.29",
				5: "14.29", 6: "14.29", 7: "14.29",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := s.Calculate(dec(tt.total), tt.participants, nil)
			require.NoError(t, err)
			assertShares(t, dec(tt.total), shares, tt.want, tt.participants)
		})
	}
}

func TestEqualStrategy_RemainderFollowsParticipantOrder(t *testing.T) {
	s := &EqualStrategy{}

	first, err := s.Calculate(dec("10.00"), []int64{1, 2, 3}, nil)
	require.NoError(t, err)
	reordered, err := s.Calculate(dec("10.00"), []int64{3, 2, 1}, nil)
	require.NoError(t, err)

	assert.True(t, first[0].AmountOwed.Equal(dec("3.34")))
	assert.Equal(t, int64(1), first[0].UserID)
	assert.True(t, reordered[0].AmountOwed.Equal(dec("3.34")))
	assert.Equal(t, int64(3), reordered[0].UserID)
}

func TestEqualStrategy_Validate(t *testing.T) {
	s := &EqualStrategy{}

	assert.ErrorIs(t, s.Validate(dec("10.00"), nil, nil), ErrNoParticipants)
	assert.ErrorIs(t, s.Validate(dec("10.00"), []int64{1, 2, 1}, nil), ErrDuplicateParticipant)
	assert.ErrorIs(t, s.Validate(dec("0"), []int64{1}, nil), ErrInvalidAmount)
	assert.ErrorIs(t, s.Validate(dec("-5.00"), []int64{1}, nil), ErrInvalidAmount)
	assert.ErrorIs(t, s.Validate(dec("10.001"), []int64{1}, nil), ErrInvalidAmount)
}

func TestExactStrategy_Calculate(t *testing.T) {
	s := &ExactStrategy{}
	participants := []int64{1, 2, 3}
	weights := []WeightInput{
		{UserID: 1, Amount: decPtr("10.25")},
		{UserID: 2, Amount: decPtr("20.00")},
		{UserID: 3, Amount: decPtr("25.25")},
	}

	shares, err := s.Calculate(dec("55.50"), participants, weights)
	require.NoError(t, err)
	assertShares(t, dec("55.50"), shares, map[int64]string{
		1: "10.25", 2: "20.00", 3: "25.25",
	}, participants)
}

func TestExactStrategy_Validate(t *testing.T) {
	participants := []int64{1, 2, 3}

	tests := []struct {
		name    string
		total   string
		weights []WeightInput
		wantErr error
	}{
		{
			name:  "sum below total",
			total: "55.50",
			weights: []WeightInput{
				{UserID: 1, Amount: decPtr("10.25")},
				{UserID: 2, Amount: decPtr("20.00")},
				{UserID: 3, Amount: decPtr("24.75")},
			},
			wantErr: ErrWeightSumMismatch,
		},
		{
			name:  "unknown user in weights",
			total: "30.00",
			weights: []WeightInput{
				{UserID: 1, Amount: decPtr("10.00")},
				{UserID: 2, Amount: decPtr("10.00")},
				{UserID: 99, Amount: decPtr("10.00")},
			},
			wantErr: ErrUnknownParticipant,
		},
		{
			name:  "user weighted twice",
			total: "30.00",
			weights: []WeightInput{
				{UserID: 1, Amount: decPtr("10.00")},
				{UserID: 1, Amount: decPtr("10.00")},
				{UserID: 2, Amount: decPtr("10.00")},
			},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:  "missing weight",
			total: "30.00",
			weights: []WeightInput{
				{UserID: 1, Amount: decPtr("15.00")},
				{UserID: 2, Amount: decPtr("15.00")},
			},
			wantErr: ErrInvalidWeight,
		},
		{
			name:  "negative amount",
			total: "10.00",
			weights: []WeightInput{
				{UserID: 1, Amount: decPtr("15.00")},
				{UserID: 2, Amount: decPtr("-5.00")},
				{UserID: 3, Amount: decPtr("0.00")},
			},
			wantErr: ErrInvalidWeight,
		},
	}

	s := &ExactStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(dec(tt.total), participants, tt.weights)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPercentageStrategy_Calculate(t *testing.T) {
	s := &PercentageStrategy{}

	t.Run("clean percentages", func(t *testing.T) {
		participants := []int64{1, 2, 3}
		weights := []WeightInput{
			{UserID: 1, Percentage: decPtr("30")},
			{UserID: 2, Percentage: decPtr("50")},
			{UserID: 3, Percentage: decPtr("20")},
		}

		shares, err := s.Calculate(dec("100.00"), participants, weights)
		require.NoError(t, err)
		assertShares(t, dec("100.00"), shares, map[int64]string{
			1: "30.00", 2: "50.00", 3: "20.00",
		}, participants)
	})

	t.Run("repeating thirds", func(t *testing.T) {
		participants := []int64{1, 2, 3}
		weights := []WeightInput{
			{UserID: 1, Percentage: decPtr("33.33")},
			{UserID: 2, Percentage: decPtr("33.33")},
			{UserID: 3, Percentage: decPtr("33.34")},
		}

		shares, err := s.Calculate(dec("10.00"), participants, weights)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, sh := range shares {
			sum = sum.Add(sh.AmountOwed)
		}
		assert.True(t, sum.Equal(dec("10.00")))
	})
}

func TestPercentageStrategy_Validate(t *testing.T) {
	s := &PercentageStrategy{}
	participants := []int64{1, 2, 3}

	overweight := []WeightInput{
		{UserID: 1, Percentage: decPtr("30")},
		{UserID: 2, Percentage: decPtr("50")},
		{UserID: 3, Percentage: decPtr("21")},
	}
	assert.ErrorIs(t, s.Validate(dec("100.00"), participants, overweight), ErrWeightSumMismatch)

	nonPositive := []WeightInput{
		{UserID: 1, Percentage: decPtr("100")},
		{UserID: 2, Percentage: decPtr("0")},
		{UserID: 3, Percentage: decPtr("0")},
	}
	assert.ErrorIs(t, s.Validate(dec("100.00"), participants, nonPositive), ErrInvalidWeight)

	// Within the 0.01 tolerance.
	nearHundred := []WeightInput{
		{UserID: 1, Percentage: decPtr("33.33")},
		{UserID: 2, Percentage: decPtr("33.33")},
		{UserID: 3, Percentage: decPtr("33.33")},
	}
	assert.NoError(t, s.Validate(dec("100.00"), participants, nearHundred))
}

func TestShareStrategy_Calculate(t *testing.T) {
	s := &ShareStrategy{}

	t.Run("proportional shares", func(t *testing.T) {
		participants := []int64{1, 2, 3}
		weights := []WeightInput{
			{UserID: 1, Shares: decPtr("1")},
			{UserID: 2, Shares: decPtr("2")},
			{UserID: 3, Shares: decPtr("3")},
		}

		shares, err := s.Calculate(dec("60.00"), participants, weights)
		require.NoError(t, err)
		assertShares(t, dec("60.00"), shares, map[int64]string{
			1: "10.00", 2: "20.00", 3: "30.00",
		}, participants)
	})

	t.Run("fractional shares with remainder", func(t *testing.T) {
		participants := []int64{1, 2}
		weights := []WeightInput{
			{UserID: 1, Shares: decPtr("1.5")},
			{UserID: 2, Shares: decPtr("1.5")},
		}

		shares, err := s.Calculate(dec("0.03"), participants, weights)
		require.NoError(t, err)
		assertShares(t, dec("0.03"), shares, map[int64]string{
			1: "0.02", 2: "0.01",
		}, participants)
	})
}

func TestShareStrategy_RejectsZeroShares(t *testing.T) {
	s := &ShareStrategy{}
	weights := []WeightInput{
		{UserID: 1, Shares: decPtr("0")},
		{UserID: 2, Shares: decPtr("0")},
	}

	// Never silently treated as an equal split.
	_, err := s.Calculate(dec("10.00"), []int64{1, 2}, weights)
	assert.ErrorIs(t, err, ErrInvalidWeight)

	negative := []WeightInput{
		{UserID: 1, Shares: decPtr("2")},
		{UserID: 2, Shares: decPtr("-1")},
	}
	_, err = s.Calculate(dec("10.00"), []int64{1, 2}, negative)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

// TestSumInvariant exercises awkward totals and participant counts across all
// computed policies: whatever the rounding, the shares must sum to the total.
func TestSumInvariant(t *testing.T) {
	totals := []string{"0.01", "0.05", "1.00", "9.99", "100.03", "33333.31", "999999.97"}
	counts := []int{1, 2, 3, 6, 7, 11}

	for _, total := range totals {
		for _, n := range counts {
			participants := make([]int64, n)
			shareWeights := make([]WeightInput, n)
			for i := range participants {
				participants[i] = int64(i + 1)
				w := decimal.NewFromInt(int64(i + 1))
				shareWeights[i] = WeightInput{UserID: int64(i + 1), Shares: &w}
			}

			equalShares, err := (&EqualStrategy{}).Calculate(dec(total), participants, nil)
			require.NoError(t, err)
			proportional, err := (&ShareStrategy{}).Calculate(dec(total), participants, shareWeights)
			require.NoError(t, err)

			for name, shares := range map[string][]Share{"equal": equalShares, "share": proportional} {
				sum := decimal.Zero
				for _, sh := range shares {
					sum = sum.Add(sh.AmountOwed)
				}
				assert.True(t, sum.Equal(dec(total)),
					"%s split of %s across %d: sum %s", name, total, n, sum)
			}
		}
	}
}

// TestDeterminism re-runs the same computation and expects byte-identical results.
func TestDeterminism(t *testing.T) {
	participants := []int64{5, 3, 9, 1}
	weights := []WeightInput{
		{UserID: 5, Shares: decPtr("1")},
		{UserID: 3, Shares: decPtr("3")},
		{UserID: 9, Shares: decPtr("2")},
		{UserID: 1, Shares: decPtr("1")},
	}

	s := &ShareStrategy{}
	first, err := s.Calculate(dec("100.01"), participants, weights)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := s.Calculate(dec("100.01"), participants, weights)
		require.NoError(t, err)
		for j := range first {
			assert.Equal(t, first[j].UserID, again[j].UserID)
			assert.True(t, first[j].AmountOwed.Equal(again[j].AmountOwed))
		}
	}
}
