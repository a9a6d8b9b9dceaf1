package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant owes a caller-specified amount (must sum to the total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits.
type ExactStrategy struct{}

// Type returns the split policy identifier.
func (s *ExactStrategy) Type() PolicyType {
	return PolicyExact
}

// Validate checks if the inputs are valid for an exact split. A sum that
// misses the total is an error, never silently adjusted.
func (s *ExactStrategy) Validate(total decimal.Decimal, participants []int64, weights []WeightInput) error {
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
		if w.Amount == nil {
			return fmt.Errorf("%w: exact amount required for user %d", ErrInvalidWeight, id)
		}
		if w.Amount.IsNegative() || !wholeCents(*w.Amount) {
			return fmt.Errorf("%w: amount %s for user %d", ErrInvalidWeight, w.Amount, id)
		}
		sum = sum.Add(*w.Amount)
	}

	// Cent-exact, no tolerance: the caller chose every amount.
	if !sum.Equal(total) {
		return fmt.Errorf("%w: exact amounts sum to %s, expense total is %s", ErrWeightSumMismatch, sum, total)
	}

	return nil
}

// Calculate returns the specified amounts as-is. No rounding is needed since
// validation already proved they sum to the total.
func (s *ExactStrategy) Calculate(total decimal.Decimal, participants []int64, weights []WeightInput) ([]Share, error) {
	if err := s.Validate(total, participants, weights); err != nil {
		return nil, err
	}

	byUser, _ := weightsByParticipant(participants, weights)

	shares := make([]Share, len(participants))
	for i, id := range participants {
		shares[i] = Share{UserID: id, AmountOwed: byUser[id].Amount.Round(2)}
	}

	return shares, nil
}
