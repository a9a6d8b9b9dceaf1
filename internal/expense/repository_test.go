package expense

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE expenses SET deleted_at").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), 7))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteAlreadyDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// The guarded UPDATE matches no rows when the expense is gone or was
	// already soft-deleted; callers must see the package sentinel, not a
	// generic failure.
	mock.ExpectExec("UPDATE expenses SET deleted_at").
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SoftDelete(context.Background(), 8)
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
