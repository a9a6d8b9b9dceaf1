// Package balance folds a group's expense and payment history into one net
// position per member: positive means the member is owed money, negative
// means they owe, zero means settled.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/group"
	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/payment"
)

// settleEpsilon tolerates residue left behind by earlier float-based
// computations; anything within half a cent of zero counts as settled.
var settleEpsilon = decimal.RequireFromString("0.005")

// ComputeBalances aggregates every non-deleted expense and every payment into
// a net balance per currently-active member, rounded to two decimals
// (half away from zero).
//
// Ledger semantics: the payer of an expense is credited its full amount and
// every split participant, payer included, is debited their owed share, so
// net = paid - owed. A payment from A to B credits A and debits B by the same
// amount. Members who have left are dropped from the returned map, but their
// historical splits and payments still flow through the remaining members'
// totals.
func ComputeBalances(members []*group.GroupMember, expenses []*expense.ExpenseWithSplits, payments []*payment.Payment) map[int64]decimal.Decimal {
	net := make(map[int64]decimal.Decimal)
	active := make(map[int64]struct{})
	for _, m := range members {
		if m.Active() {
			net[m.UserID] = decimal.Zero
			active[m.UserID] = struct{}{}
		}
	}

	add := func(userID int64, amount decimal.Decimal) {
		net[userID] = net[userID].Add(amount)
	}

	for _, ews := range expenses {
		if ews.Expense.Deleted() {
			continue
		}
		add(ews.Expense.PayerID, ews.Expense.Amount)
		for _, s := range ews.Splits {
			add(s.UserID, s.AmountOwed.Neg())
		}
	}

	for _, p := range payments {
		add(p.PayerID, p.Amount)
		add(p.PayeeID, p.Amount.Neg())
	}

	balances := make(map[int64]decimal.Decimal, len(active))
	for userID := range active {
		balances[userID] = net[userID].Round(2)
	}
	return balances
}

// IsSettled reports whether every balance is zero within the settle epsilon.
func IsSettled(balances map[int64]decimal.Decimal) bool {
	for _, b := range balances {
		if b.Abs().GreaterThan(settleEpsilon) {
			return false
		}
	}
	return true
}
