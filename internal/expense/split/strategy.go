package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PolicyType identifies how an expense total is divided among participants.
type PolicyType string

const (
	PolicyEqual      PolicyType = "EQUAL"
	PolicyExact      PolicyType = "EXACT"
	PolicyPercentage PolicyType = "PERCENTAGE"
	PolicyShare      PolicyType = "SHARE"
)

// WeightInput associates one participant with a policy-specific weight.
// Exactly one of Amount, Percentage or Shares is set, depending on the policy;
// EQUAL splits carry no weights at all.
type WeightInput struct {
	UserID     int64            `json:"user_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`     // EXACT
	Percentage *decimal.Decimal `json:"percentage,omitempty"` // PERCENTAGE
	Shares     *decimal.Decimal `json:"shares,omitempty"`     // SHARE
}

// Share is the computed owed amount for a single participant.
type Share struct {
	UserID     int64           `json:"user_id"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
}

// Strategy is implemented by every split policy. Calculate returns one Share
// per participant, in participant order, and the shares always sum to the
// total exactly.
type Strategy interface {
	Type() PolicyType

	// Validate checks the inputs without computing anything. Calculate runs
	// the same checks, so callers only need this for a dry run.
	Validate(total decimal.Decimal, participants []int64, weights []WeightInput) error

	Calculate(total decimal.Decimal, participants []int64, weights []WeightInput) ([]Share, error)
}

// Factory creates split strategies based on the requested policy.
type Factory struct{}

// NewFactory creates a new strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given policy.
func (f *Factory) Create(policy PolicyType) (Strategy, error) {
	switch policy {
	case PolicyEqual:
		return &EqualStrategy{}, nil
	case PolicyExact:
		return &ExactStrategy{}, nil
	case PolicyPercentage:
		return &PercentageStrategy{}, nil
	case PolicyShare:
		return &ShareStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPolicy, policy)
	}
}

// CreateFromString creates a strategy from a raw policy tag (useful for API requests).
func (f *Factory) CreateFromString(policy string) (Strategy, error) {
	return f.Create(PolicyType(policy))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrWeightSumMismatch    = errors.New("weights do not sum to the required total")
	ErrUnknownParticipant   = errors.New("weight references a user outside the participant set")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrInvalidWeight        = errors.New("invalid weight")
	ErrInvalidAmount        = errors.New("total amount must be positive with at most two decimal places")
	ErrUnsupportedPolicy    = errors.New("unsupported split policy")
)

// percentageTolerance absorbs representation noise when percentages are
// entered with fractional digits (e.g. 33.33 + 33.33 + 33.34).
var percentageTolerance = decimal.RequireFromString("0.01")

var oneHundred = decimal.NewFromInt(100)

// toCents converts a whole-cent amount to integer cents.
func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}

// fromCents converts integer cents back to a two-decimal amount.
func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// wholeCents reports whether d has no fraction finer than a cent.
func wholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// validateTotal checks the expense total before any split math runs.
func validateTotal(total decimal.Decimal) error {
	if !total.IsPositive() || !wholeCents(total) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, total)
	}
	return nil
}

// validateParticipants rejects empty or duplicated participant sets.
func validateParticipants(participants []int64) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[int64]struct{}, len(participants))
	for _, id := range participants {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: user %d", ErrDuplicateParticipant, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// weightsByParticipant verifies that weights map one-to-one onto the
// participant set and returns them keyed by user. Weight order carries no
// meaning; participant order alone drives the output.
func weightsByParticipant(participants []int64, weights []WeightInput) (map[int64]WeightInput, error) {
	members := make(map[int64]struct{}, len(participants))
	for _, id := range participants {
		members[id] = struct{}{}
	}

	byUser := make(map[int64]WeightInput, len(weights))
	for _, w := range weights {
		if _, ok := members[w.UserID]; !ok {
			return nil, fmt.Errorf("%w: user %d", ErrUnknownParticipant, w.UserID)
		}
		if _, dup := byUser[w.UserID]; dup {
			return nil, fmt.Errorf("%w: user %d appears twice in weights", ErrDuplicateParticipant, w.UserID)
		}
		byUser[w.UserID] = w
	}

	for _, id := range participants {
		if _, ok := byUser[id]; !ok {
			return nil, fmt.Errorf("%w: missing weight for user %d", ErrInvalidWeight, id)
		}
	}

	return byUser, nil
}

// distributeRemainder hands out leftover cents one at a time, starting with
// the first participant. The leftover is always less than the participant
// count, so no participant receives more than one extra cent. The order is
// part of the contract: identical inputs must yield identical splits.
func distributeRemainder(amounts []int64, leftover int64) {
	for i := 0; leftover > 0 && i < len(amounts); i++ {
		amounts[i]++
		leftover--
	}
}

// buildShares pairs participants with their cent amounts in participant order.
func buildShares(participants []int64, amounts []int64) []Share {
	shares := make([]Share, len(participants))
	for i, id := range participants {
		shares[i] = Share{UserID: id, AmountOwed: fromCents(amounts[i])}
	}
	return shares
}
