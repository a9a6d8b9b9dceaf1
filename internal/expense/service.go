package expense

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrNotPayer          = errors.New("only the payer can modify this expense")
	ErrNotGroupMember    = errors.New("user is not an active member of this group")
	ErrSplitInputMissing = errors.New("changing the split requires the full participant list")
)

// MembershipProvider supplies the active roster that split participants are
// validated against. The group feature implements it.
type MembershipProvider interface {
	ListActiveMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// Notifier lets the expense feature announce new expenses without owning
// notification storage. Failures are logged, never surfaced: a missing
// notification must not roll back a booked expense.
type Notifier interface {
	NotifyExpenseAdded(ctx context.Context, recipientID, expenseID int64, amount decimal.Decimal) error
}

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
	members      MembershipProvider
	notifier     Notifier
	log          *logrus.Logger
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory, members MembershipProvider, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
		members:      members,
		notifier:     notifier,
		log:          log,
	}
}

// CreateExpense validates the request against the group's active roster,
// computes the splits with the requested policy and persists expense plus
// splits in one transaction. Nothing is written when validation fails.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	if err := s.checkRoster(ctx, req.GroupID, payerID, req.Participants); err != nil {
		return nil, err
	}

	shares, err := strategy.Calculate(req.Amount, req.Participants, req.Weights)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.CreateWithSplits(ctx, payerID, req, shares)
	if err != nil {
		return nil, err
	}

	s.notifyParticipants(ctx, payerID, result)

	return result, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListExpensesByGroupID retrieves a group's expenses, soft-deleted excluded.
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// UpdateExpense applies an edit. Financial changes (amount, policy,
// participants or weights) throw away the stored splits and recompute from
// scratch under the effective policy; the prior splits are never patched.
// Description-only edits leave the splits alone.
func (s *Service) UpdateExpense(ctx context.Context, id, userID int64, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}
	if existing.PayerID != userID {
		return nil, ErrNotPayer
	}

	if !req.FinancialChange() {
		result, err := s.repo.UpdateWithSplits(ctx, id, req.Description, nil, nil, nil)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, ErrExpenseNotFound
		}
		result.Splits, err = s.repo.GetSplitsByExpenseID(ctx, id)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	amount := existing.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	splitType := existing.SplitType
	if req.SplitType != nil {
		splitType = *req.SplitType
	}

	participants, err := s.effectiveParticipants(ctx, id, splitType, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkRoster(ctx, existing.GroupID, existing.PayerID, participants); err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(splitType)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Calculate(amount, participants, req.Weights)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.UpdateWithSplits(ctx, id, req.Description, req.Amount, req.SplitType, shares)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrExpenseNotFound
	}

	return result, nil
}

// effectiveParticipants resolves who the recomputed splits cover. A request
// that names participants wins. Without them, an EQUAL recompute (say, an
// amount correction) reuses the stored split participants in their original
// order; weighted policies need a fresh weights array, so the request must
// carry the full input — there is no carry-over from the previous policy.
func (s *Service) effectiveParticipants(ctx context.Context, expenseID int64, splitType string, req *UpdateExpenseRequest) ([]int64, error) {
	if len(req.Participants) > 0 {
		return req.Participants, nil
	}

	if splitType != string(split.PolicyEqual) {
		return nil, ErrSplitInputMissing
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	participants := make([]int64, len(splits))
	for i, sp := range splits {
		participants[i] = sp.UserID
	}
	if len(participants) == 0 {
		return nil, ErrSplitInputMissing
	}
	return participants, nil
}

// DeleteExpense soft-deletes an expense. The rows remain for history but the
// expense disappears from listings and contributes nothing to balances.
func (s *Service) DeleteExpense(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.PayerID != userID {
		return ErrNotPayer
	}

	return s.repo.SoftDelete(ctx, id)
}

// checkRoster verifies that the payer and every participant are active
// members of the group.
func (s *Service) checkRoster(ctx context.Context, groupID, payerID int64, participants []int64) error {
	ids, err := s.members.ListActiveMemberIDs(ctx, groupID)
	if err != nil {
		return err
	}

	active := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		active[id] = struct{}{}
	}

	if _, ok := active[payerID]; !ok {
		return ErrNotGroupMember
	}
	for _, id := range participants {
		if _, ok := active[id]; !ok {
			return ErrNotGroupMember
		}
	}
	return nil
}

func (s *Service) notifyParticipants(ctx context.Context, payerID int64, result *ExpenseWithSplits) {
	if s.notifier == nil {
		return
	}
	for _, sp := range result.Splits {
		if sp.UserID == payerID {
			continue
		}
		if err := s.notifier.NotifyExpenseAdded(ctx, sp.UserID, result.Expense.ID, sp.AmountOwed); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"expense_id":   result.Expense.ID,
				"recipient_id": sp.UserID,
			}).Warn("failed to notify expense participant")
		}
	}
}
