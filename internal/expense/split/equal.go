package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense evenly among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits.
type EqualStrategy struct{}

// Type returns the split policy identifier.
func (s *EqualStrategy) Type() PolicyType {
	return PolicyEqual
}

// Validate checks if the inputs are valid for an equal split.
// Weights are ignored; the full participant list shares the total.
func (s *EqualStrategy) Validate(total decimal.Decimal, participants []int64, weights []WeightInput) error {
	if err := validateParticipants(participants); err != nil {
		return err
	}
	return validateTotal(total)
}

// Calculate divides the total evenly across all participants. The division
// runs in integer cents: everyone gets the floored per-head amount and the
// leftover cents go to the earliest-listed participants, one cent each.
func (s *EqualStrategy) Calculate(total decimal.Decimal, participants []int64, weights []WeightInput) ([]Share, error) {
	if err := s.Validate(total, participants, weights); err != nil {
		return nil, err
	}

	totalCents := toCents(total)
	n := int64(len(participants))

	amounts := make([]int64, len(participants))
	for i := range amounts {
		amounts[i] = totalCents / n
	}
	distributeRemainder(amounts, totalCents%n)

	return buildShares(participants, amounts), nil
}
