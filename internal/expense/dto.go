package expense

import (
	"github.com/shopspring/decimal"

	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense/split"
)

// CreateExpenseRequest represents the request to create an expense.
// Participants lists everyone sharing the expense, payer included; order
// matters because leftover cents go to the earliest-listed participants.
// Weights carry the per-user amount/percentage/shares for non-EQUAL policies.
type CreateExpenseRequest struct {
	GroupID      int64               `json:"group_id" validate:"required"`
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       decimal.Decimal     `json:"amount" validate:"required"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL EXACT PERCENTAGE SHARE"`
	Participants []int64             `json:"participants" validate:"required,min=1"`
	Weights      []split.WeightInput `json:"weights,omitempty"`
}

// UpdateExpenseRequest represents the request to update an expense. Changing
// Amount, SplitType, Participants or Weights discards the old splits and
// recomputes them from scratch; description-only edits touch nothing else.
type UpdateExpenseRequest struct {
	Description  *string             `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Amount       *decimal.Decimal    `json:"amount,omitempty"`
	SplitType    *string             `json:"split_type,omitempty" validate:"omitempty,oneof=EQUAL EXACT PERCENTAGE SHARE"`
	Participants []int64             `json:"participants,omitempty"`
	Weights      []split.WeightInput `json:"weights,omitempty"`
}

// FinancialChange reports whether applying the request alters the splits.
func (r *UpdateExpenseRequest) FinancialChange() bool {
	return r.Amount != nil || r.SplitType != nil || len(r.Participants) > 0 || len(r.Weights) > 0
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            int64            `json:"id"`
	GroupID       int64            `json:"group_id"`
	PayerID       int64            `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	SplitType     string           `json:"split_type"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
	Splits        []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID         int64           `json:"id"`
	ExpenseID  int64           `json:"expense_id"`
	UserID     int64           `json:"user_id"`
	Username   string          `json:"username,omitempty"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount,
		SplitType:     e.SplitType,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:         s.ID,
		ExpenseID:  s.ExpenseID,
		UserID:     s.UserID,
		Username:   s.Username,
		AmountOwed: s.AmountOwed,
	}
}
