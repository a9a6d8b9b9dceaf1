package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a shared expense in a group. Removal is a soft delete:
// DeletedAt is set and the row stays for history, but the expense no longer
// appears in listings or balance aggregation.
type Expense struct {
	ID          int64           `json:"id"`
	GroupID     int64           `json:"group_id"`
	PayerID     int64           `json:"payer_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   string          `json:"split_type"` // EQUAL, EXACT, PERCENTAGE, SHARE
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Deleted reports whether the expense has been soft-deleted.
func (e *Expense) Deleted() bool {
	return e.DeletedAt != nil
}

// Split is one participant's owed portion of an expense. The splits of an
// expense always sum to its amount, including after edits.
type Split struct {
	ID         int64           `json:"id"`
	ExpenseID  int64           `json:"expense_id"`
	UserID     int64           `json:"user_id"`
	AmountOwed decimal.Decimal `json:"amount_owed"`

	// Populated via JOIN
	Username string `json:"username,omitempty"`
}

// ExpenseWithSplits combines an expense with its calculated splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
