package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense by caller-specified percentages (must sum to 100)
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits.
type PercentageStrategy struct{}

// Type returns the split policy identifier.
func (s *PercentageStrategy) Type() PolicyType {
	return PolicyPercentage
}

// Validate checks if the inputs are valid for a percentage split. Percentages
// must be positive and sum to 100 within a 0.01 tolerance.
func (s *PercentageStrategy) Validate(total decimal.Decimal, participants []int64, weights []WeightInput) error {
	if err := validateParticipants(participants); err != nil {
		return err
	}
	if err := validateTotal(total); err != nil {
		return err
	}

	byUser, err := weightsByParticipant(participants, weights)
	if err != nil {
		return err
	}

	sum := decimal.Zero
	for _, id := range participants {
		w := byUser[id]
		if w.Percentage == nil {
			return fmt.Errorf("%w: percentage required for user %d", ErrInvalidWeight, id)
		}
		if !w.Percentage.IsPositive() || w.Percentage.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: percentage %s for user %d", ErrInvalidWeight, w.Percentage, id)
		}
		sum = sum.Add(*w.Percentage)
	}

	if sum.Sub(oneHundred).Abs().GreaterThan(percentageTolerance) {
		return fmt.Errorf("%w: percentages sum to %s, need 100", ErrWeightSumMismatch, sum)
	}

	return nil
}

// Calculate divides the total by each participant's percentage. Each ideal
// share is floored to whole cents and the leftover cents go to the
// earliest-listed participants, one cent each.
func (s *PercentageStrategy) Calculate(total decimal.Decimal, participants []int64, weights []WeightInput) ([]Share, error) {
	if err := s.Validate(total, participants, weights); err != nil {
		return nil, err
	}

	byUser, _ := weightsByParticipant(participants, weights)

	// Normalize against the actual sum rather than a literal 100. Within the
	// validation tolerance this is the same division, but it pins the sum of
	// ideal shares to the total, so the leftover stays in [0, N-1].
	sumPct := decimal.Zero
	for _, id := range participants {
		sumPct = sumPct.Add(*byUser[id].Percentage)
	}

	totalCents := toCents(total)
	centsDec := decimal.NewFromInt(totalCents)

	amounts := make([]int64, len(participants))
	var distributed int64
	for i, id := range participants {
		ideal := centsDec.Mul(*byUser[id].Percentage).Div(sumPct)
		amounts[i] = ideal.Floor().IntPart()
		distributed += amounts[i]
	}
	distributeRemainder(amounts, totalCents-distributed)

	return buildShares(participants, amounts), nil
}
