package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHARE SPLIT STRATEGY
// Divides the expense proportionally to caller-specified share counts
// =============================================================================

// ShareStrategy implements the Strategy interface for share-based splits.
type ShareStrategy struct{}

// Type returns the split policy identifier.
func (s *ShareStrategy) Type() PolicyType {
	return PolicyShare
}

// Validate checks if the inputs are valid for a share split. Every share must
// be strictly positive; a zero share is an error, not an equal split.
func (s *ShareStrategy) Validate(total decimal.Decimal, participants []int64, weights []WeightInput) error {
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
		if w.Shares == nil {
			return fmt.Errorf("%w: share count required for user %d", ErrInvalidWeight, id)
		}
		if !w.Shares.IsPositive() {
			return fmt.Errorf("%w: share count %s for user %d", ErrInvalidWeight, w.Shares, id)
		}
		sum = sum.Add(*w.Shares)
	}

	if !sum.IsPositive() {
		return fmt.Errorf("%w: total shares must be positive, got %s", ErrWeightSumMismatch, sum)
	}

	return nil
}

// Calculate gives each participant total x shares / totalShares, floored to
// whole cents, with the leftover cents going to the earliest-listed
// participants one cent each.
func (s *ShareStrategy) Calculate(total decimal.Decimal, participants []int64, weights []WeightInput) ([]Share, error) {
	if err := s.Validate(total, participants, weights); err != nil {
		return nil, err
	}

	byUser, _ := weightsByParticipant(participants, weights)

	totalShares := decimal.Zero
	for _, id := range participants {
		totalShares = totalShares.Add(*byUser[id].Shares)
	}

	totalCents := toCents(total)
	centsDec := decimal.NewFromInt(totalCents)

	amounts := make([]int64, len(participants))
	var distributed int64
	for i, id := range participants {
		ideal := centsDec.Mul(*byUser[id].Shares).Div(totalShares)
		amounts[i] = ideal.Floor().IntPart()
		distributed += amounts[i]
	}
	distributeRemainder(amounts, totalCents-distributed)

	return buildShares(participants, amounts), nil
}
