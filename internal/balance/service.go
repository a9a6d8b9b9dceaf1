package balance

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/group"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/payment"
)

// Common errors
var ErrGroupNotFound = errors.New("group not found")

// MemberBalance is one active member's net position.
type MemberBalance struct {
	UserID     int64           `json:"user_id"`
	Username   string          `json:"username,omitempty"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

// GroupBalances is the balance view of a whole group.
type GroupBalances struct {
	GroupID  int64            `json:"group_id"`
	Balances []*MemberBalance `json:"balances"`
	Settled  bool             `json:"settled"`
}

// Service loads a group's full history and runs the aggregation. It reads
// through the other features' repositories; the fold itself is pure.
type Service struct {
	groupRepo   *group.Repository
	expenseRepo *expense.Repository
	paymentRepo *payment.Repository
}

// NewService creates a new balance service
func NewService(groupRepo *group.Repository, expenseRepo *expense.Repository, paymentRepo *payment.Repository) *Service {
	return &Service{
		groupRepo:   groupRepo,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
	}
}

// GetGroupBalances computes the net balance of every active member, ordered
// by join date like the membership listing.
func (s *Service) GetGroupBalances(ctx context.Context, groupID int64) (*GroupBalances, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListAllWithSplitsByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListAllByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := ComputeBalances(members, expenses, payments)

	result := &GroupBalances{GroupID: groupID, Settled: IsSettled(balances)}
	for _, m := range members {
		if b, ok := balances[m.UserID]; ok {
			result.Balances = append(result.Balances, &MemberBalance{
				UserID:     m.UserID,
				Username:   m.Username,
				NetBalance: b,
			})
		}
	}

	return result, nil
}

// IsGroupSettled implements the group feature's deletion guard.
func (s *Service) IsGroupSettled(ctx context.Context, groupID int64) (bool, error) {
	b, err := s.GetGroupBalances(ctx, groupID)
	if err != nil {
		return false, err
	}
	return b.Settled, nil
}
