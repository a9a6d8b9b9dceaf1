package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Common errors
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrCannotPaySelf   = errors.New("payer and payee must differ")
	ErrInvalidAmount   = errors.New("payment amount must be positive with at most two decimal places")
	ErrNotGroupMember  = errors.New("user is not an active member of this group")
)

// MembershipProvider supplies the active roster both parties are checked against.
type MembershipProvider interface {
	ListActiveMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// Notifier announces received payments. Failures are logged, never surfaced.
type Notifier interface {
	NotifyPaymentReceived(ctx context.Context, recipientID, paymentID int64, amount decimal.Decimal) error
}

// Service handles payment business logic
type Service struct {
	repo     *Repository
	members  MembershipProvider
	notifier Notifier
	log      *logrus.Logger
}

// NewService creates a new payment service
func NewService(repo *Repository, members MembershipProvider, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{repo: repo, members: members, notifier: notifier, log: log}
}

// CreatePayment records a transfer from the caller to another active member.
// The record is immutable once written; corrections are new payments.
func (s *Service) CreatePayment(ctx context.Context, payerID int64, req *CreatePaymentRequest) (*Payment, error) {
	if payerID == req.PayeeID {
		return nil, ErrCannotPaySelf
	}
	if !req.Amount.IsPositive() || !req.Amount.Equal(req.Amount.Truncate(2)) {
		return nil, ErrInvalidAmount
	}

	ids, err := s.members.ListActiveMemberIDs(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	active := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		active[id] = struct{}{}
	}
	if _, ok := active[payerID]; !ok {
		return nil, ErrNotGroupMember
	}
	if _, ok := active[req.PayeeID]; !ok {
		return nil, ErrNotGroupMember
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	payment, err := s.repo.Create(ctx, &Payment{
		GroupID:   req.GroupID,
		PayerID:   payerID,
		PayeeID:   req.PayeeID,
		Amount:    req.Amount,
		Reference: uuid.New(),
		PaidAt:    paidAt,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyPaymentReceived(ctx, payment.PayeeID, payment.ID, payment.Amount); err != nil {
			s.log.WithError(err).WithField("payment_id", payment.ID).Warn("failed to notify payee")
		}
	}

	return payment, nil
}

// GetPaymentByID retrieves a payment by its ID
func (s *Service) GetPaymentByID(ctx context.Context, id int64) (*Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListPaymentsByGroupID retrieves payments for a group
func (s *Service) ListPaymentsByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Payment, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}
