package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSplits inserts an expense and its splits in one transaction.
// Either everything lands or nothing does.
func (r *Repository) CreateWithSplits(ctx context.Context, payerID int64, req *CreateExpenseRequest, shares []split.Share) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, split_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, payer_id, description, amount, split_type, created_at, updated_at, deleted_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query,
		req.GroupID,
		payerID,
		req.Description,
		req.Amount,
		req.SplitType,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.UpdatedAt,
		&expense.DeletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, expense.ID, shares)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense creation: %w", err)
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// UpdateWithSplits updates an expense row and, when shares is non-nil,
// replaces all of its splits in the same transaction. A nil shares slice
// means a non-financial edit: the existing splits are left untouched.
func (r *Repository) UpdateWithSplits(ctx context.Context, id int64, description *string, amount *decimal.Decimal, splitType *string, shares []split.Share) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE expenses
		SET description = COALESCE($2, description),
		    amount = COALESCE($3, amount),
		    split_type = COALESCE($4, split_type),
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, group_id, payer_id, description, amount, split_type, created_at, updated_at, deleted_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query, id, description, amount, splitType).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.UpdatedAt,
		&expense.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	var splits []*Split
	if shares != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to delete prior splits: %w", err)
		}
		splits, err = insertSplits(ctx, tx, id, shares)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID int64, shares []split.Share) ([]*Split, error) {
	query := `
		INSERT INTO splits (expense_id, user_id, amount_owed)
		VALUES ($1, $2, $3)
		RETURNING id, expense_id, user_id, amount_owed
	`

	splits := make([]*Split, len(shares))
	for i, share := range shares {
		s := &Split{}
		err := tx.QueryRowContext(ctx, query, expenseID, share.UserID, share.AmountOwed).Scan(
			&s.ID,
			&s.ExpenseID,
			&s.UserID,
			&s.AmountOwed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = s
	}

	return splits, nil
}

// GetByID retrieves an expense by its ID. Soft-deleted expenses are not found.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, e.updated_at, e.deleted_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.UpdatedAt,
		&expense.DeletedAt,
		&expense.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense in insertion order.
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount_owed, u.username
		FROM splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(
			&s.ID,
			&s.ExpenseID,
			&s.UserID,
			&s.AmountOwed,
			&s.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// ListByGroupID retrieves a group's expenses, newest first, soft-deleted excluded.
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1 AND deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, e.updated_at, e.deleted_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1 AND e.deleted_at IS NULL
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.UpdatedAt,
			&expense.DeletedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListAllWithSplitsByGroupID loads a group's full expense history with splits,
// soft-deleted rows included. Balance aggregation filters those itself, so
// the exclusion rule lives in exactly one place.
func (r *Repository) ListAllWithSplitsByGroupID(ctx context.Context, groupID int64) ([]*ExpenseWithSplits, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, e.updated_at, e.deleted_at
		FROM expenses e
		WHERE e.group_id = $1
		ORDER BY e.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var result []*ExpenseWithSplits
	byID := make(map[int64]*ExpenseWithSplits)
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.UpdatedAt,
			&expense.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		ews := &ExpenseWithSplits{Expense: expense}
		result = append(result, ews)
		byID[expense.ID] = ews
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	splitQuery := `
		SELECT s.id, s.expense_id, s.user_id, s.amount_owed
		FROM splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = $1
		ORDER BY s.id
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		s := &Split{}
		if err := splitRows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.AmountOwed); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if ews, ok := byID[s.ExpenseID]; ok {
			ews.Splits = append(ews.Splits, s)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return result, nil
}

// SoftDelete marks an expense deleted without removing its rows.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE expenses SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}
