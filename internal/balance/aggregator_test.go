package balance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/group"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/payment"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeMember(userID int64) *group.GroupMember {
	return &group.GroupMember{GroupID: 1, UserID: userID}
}

func formerMember(userID int64) *group.GroupMember {
	left := time.Now()
	reason := group.RemovalReasonLeft
	return &group.GroupMember{GroupID: 1, UserID: userID, LeftAt: &left, RemovalReason: &reason}
}

func groupExpense(payerID int64, amount string, owed map[int64]string) *expense.ExpenseWithSplits {
	e := &expense.ExpenseWithSplits{
		Expense: &expense.Expense{GroupID: 1, PayerID: payerID, Amount: dec(amount)},
	}
	for userID, amt := range owed {
		e.Splits = append(e.Splits, &expense.Split{UserID: userID, AmountOwed: dec(amt)})
	}
	return e
}

func TestComputeBalances_LedgerExample(t *testing.T) {
	// A paid 100 split equally, B paid 30 carried alone, B paid A 10 directly.
	// The expenses leave A at +50 and B at -50; B's payment credits B and
	// debits A, moving both 10 closer to settled.
	members := []*group.GroupMember{activeMember(1), activeMember(2)}
	expenses := []*expense.ExpenseWithSplits{
		groupExpense(1, "100.00", map[int64]string{1: "50.00", 2: "50.00"}),
		groupExpense(2, "30.00", map[int64]string{2: "30.00"}),
	}
	payments := []*payment.Payment{
		{GroupID: 1, PayerID: 2, PayeeID: 1, Amount: dec("10.00")},
	}

	balances := ComputeBalances(members, expenses, payments)
	require.Len(t, balances, 2)

	assert.True(t, balances[1].Equal(dec("40.00")), "A net: got %s", balances[1])
	assert.True(t, balances[2].Equal(dec("-40.00")), "B net: got %s", balances[2])
}

// TestComputeBalances_ZeroSum holds for any history where each expense's
// splits sum to its amount: credits and debits cancel across the group.
func TestComputeBalances_ZeroSum(t *testing.T) {
	members := []*group.GroupMember{activeMember(1), activeMember(2), activeMember(3)}
	expenses := []*expense.ExpenseWithSplits{
		groupExpense(1, "10.00", map[int64]string{1: "3.34", 2: "3.33", 3: "3.33"}),
		groupExpense(2, "99.99", map[int64]string{1: "33.33", 2: "33.33", 3: "33.33"}),
		groupExpense(3, "0.05", map[int64]string{1: "0.02", 2: "0.02", 3: "0.01"}),
	}
	payments := []*payment.Payment{
		{PayerID: 3, PayeeID: 1, Amount: dec("5.00")},
		{PayerID: 2, PayeeID: 3, Amount: dec("1.25")},
	}

	balances := ComputeBalances(members, expenses, payments)

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
	}
	assert.True(t, sum.IsZero(), "net balances sum to %s, want 0", sum)
}

func TestComputeBalances_SoftDeletedExpenseExcluded(t *testing.T) {
	members := []*group.GroupMember{activeMember(1), activeMember(2)}

	deleted := groupExpense(1, "80.00", map[int64]string{1: "40.00", 2: "40.00"})
	now := time.Now()
	deleted.Expense.DeletedAt = &now

	expenses := []*expense.ExpenseWithSplits{
		deleted,
		groupExpense(1, "20.00", map[int64]string{1: "10.00", 2: "10.00"}),
	}

	balances := ComputeBalances(members, expenses, nil)

	assert.True(t, balances[1].Equal(dec("10.00")), "got %s", balances[1])
	assert.True(t, balances[2].Equal(dec("-10.00")), "got %s", balances[2])
}

func TestComputeBalances_InactiveMemberExcludedButHistoryCounts(t *testing.T) {
	// User 3 left the group after taking part in one expense. They vanish
	// from the result, yet the payer's credit for their share remains.
	members := []*group.GroupMember{activeMember(1), activeMember(2), formerMember(3)}
	expenses := []*expense.ExpenseWithSplits{
		groupExpense(1, "30.00", map[int64]string{1: "10.00", 2: "10.00", 3: "10.00"}),
	}

	balances := ComputeBalances(members, expenses, nil)
	require.Len(t, balances, 2)

	_, hasFormer := balances[3]
	assert.False(t, hasFormer)
	assert.True(t, balances[1].Equal(dec("20.00")), "got %s", balances[1])
	assert.True(t, balances[2].Equal(dec("-10.00")), "got %s", balances[2])
}

func TestComputeBalances_PaymentOnlyHistory(t *testing.T) {
	members := []*group.GroupMember{activeMember(1), activeMember(2)}
	payments := []*payment.Payment{
		{PayerID: 1, PayeeID: 2, Amount: dec("25.50")},
	}

	balances := ComputeBalances(members, nil, payments)

	assert.True(t, balances[1].Equal(dec("25.50")))
	assert.True(t, balances[2].Equal(dec("-25.50")))
}

func TestIsSettled(t *testing.T) {
	tests := []struct {
		name     string
		balances map[int64]decimal.Decimal
		want     bool
	}{
		{"empty group", map[int64]decimal.Decimal{}, true},
		{"all zero", map[int64]decimal.Decimal{1: decimal.Zero, 2: decimal.Zero}, true},
		{"residue within epsilon", map[int64]decimal.Decimal{1: dec("0.001"), 2: dec("-0.001")}, true},
		{"exactly at epsilon", map[int64]decimal.Decimal{1: dec("0.005")}, true},
		{"over epsilon", map[int64]decimal.Decimal{1: dec("0.006"), 2: dec("-0.006")}, false},
		{"outstanding debt", map[int64]decimal.Decimal{1: dec("12.00"), 2: dec("-12.00")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSettled(tt.balances))
		})
	}
}
