package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// NotifyExpenseAdded records that the recipient owes a share of a new expense.
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID, expenseID int64, amount decimal.Decimal) error {
	entityType := EntityTypeExpense
	_, err := s.repo.Create(ctx, &Notification{
		RecipientID:       recipientID,
		Message:           fmt.Sprintf("You owe %s on a new expense", amount.StringFixed(2)),
		RelatedEntityType: &entityType,
		RelatedEntityID:   &expenseID,
	})
	return err
}

// NotifyPaymentReceived records that someone logged a payment to the recipient.
func (s *Service) NotifyPaymentReceived(ctx context.Context, recipientID, paymentID int64, amount decimal.Decimal) error {
	entityType := EntityTypePayment
	_, err := s.repo.Create(ctx, &Notification{
		RecipientID:       recipientID,
		Message:           fmt.Sprintf("You received a payment of %s", amount.StringFixed(2)),
		RelatedEntityType: &entityType,
		RelatedEntityID:   &paymentID,
	})
	return err
}

// ListByRecipientID retrieves notifications for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, filter ListFilter) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, filter)
}

// MarkAsRead marks a notification as read, recipient only
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks every unread notification for a user as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the unread notification count for a user
func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}
