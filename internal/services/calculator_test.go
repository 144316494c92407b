package services

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeEntryAmounts(t *testing.T) {
	tests := []struct {
		name           string
		quantity       string
		rate           string
		commission     string
		wantTotal      string
		wantCommission string
		wantNet        string
	}{
		{
			name:     "whole numbers",
			quantity: "10", rate: "50", commission: "10",
			wantTotal: "500", wantCommission: "50", wantNet: "450",
		},
		{
			name:     "total rounds half up",
			quantity: "3.333", rate: "1.5", commission: "0",
			// 3.333 * 1.5 = 4.9995 -> 5.00
			wantTotal: "5", wantCommission: "0", wantNet: "5",
		},
		{
			name:     "commission rounds half up",
			quantity: "1", rate: "10.01", commission: "2.5",
			// 10.01 * 2.5% = 0.25025 -> 0.25
			wantTotal: "10.01", wantCommission: "0.25", wantNet: "9.76",
		},
		{
			name:     "half cent commission rounds up",
			quantity: "1", rate: "10", commission: "1.25",
			// 10 * 1.25% = 0.125 -> 0.13
			wantTotal: "10", wantCommission: "0.13", wantNet: "9.87",
		},
		{
			name:     "zero quantity path unreachable via API but safe",
			quantity: "0", rate: "100", commission: "5",
			wantTotal: "0", wantCommission: "0", wantNet: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, commission, net := ComputeEntryAmounts(d(tt.quantity), d(tt.rate), d(tt.commission))
			assert.True(t, total.Equal(d(tt.wantTotal)), "total = %s, want %s", total, tt.wantTotal)
			assert.True(t, commission.Equal(d(tt.wantCommission)), "commission = %s, want %s", commission, tt.wantCommission)
			assert.True(t, net.Equal(d(tt.wantNet)), "net = %s, want %s", net, tt.wantNet)
		})
	}
}

// Net must always be the exact difference of the two rounded amounts, never
// an independently rounded product. A drifting net breaks balance reconciliation.
func TestComputeEntryAmountsNetIsExactDifference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		quantity := decimal.NewFromFloat(rng.Float64() * 500).Round(3)
		rate := decimal.NewFromFloat(rng.Float64() * 1000).Round(2)
		commissionPct := decimal.NewFromFloat(rng.Float64() * 20).Round(2)

		total, commission, net := ComputeEntryAmounts(quantity, rate, commissionPct)

		require.True(t, net.Equal(total.Sub(commission)),
			"qty=%s rate=%s pct=%s: net %s != %s - %s",
			quantity, rate, commissionPct, net, total, commission)
		assert.LessOrEqual(t, int(-total.Exponent()), 2, "total has more than 2 decimal places")
		assert.LessOrEqual(t, int(-commission.Exponent()), 2, "commission has more than 2 decimal places")
	}
}
