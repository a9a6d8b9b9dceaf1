package expense

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Rohit-Saini7/BuddyBills-sub000/internal/expense/split"
)

func TestUpdateExpenseRequestFinancialChange(t *testing.T) {
	desc := "dinner"
	amount := decimal.NewFromFloat(42.50)
	splitType := string(split.PolicyPercentage)

	tests := []struct {
		name string
		req  UpdateExpenseRequest
		want bool
	}{
		{
			name: "empty request",
			req:  UpdateExpenseRequest{},
			want: false,
		},
		{
			name: "description only",
			req:  UpdateExpenseRequest{Description: &desc},
			want: false,
		},
		{
			name: "amount change",
			req:  UpdateExpenseRequest{Amount: &amount},
			want: true,
		},
		{
			name: "split type change",
			req:  UpdateExpenseRequest{SplitType: &splitType},
			want: true,
		},
		{
			name: "participants change",
			req:  UpdateExpenseRequest{Participants: []int64{1, 2}},
			want: true,
		},
		{
			name: "weights change",
			req:  UpdateExpenseRequest{Weights: []split.WeightInput{{UserID: 1}}},
			want: true,
		},
		{
			name: "description alongside amount",
			req:  UpdateExpenseRequest{Description: &desc, Amount: &amount},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.FinancialChange())
		})
	}
}
