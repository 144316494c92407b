package services

import "github.com/shopspring/decimal"

// ComputeEntryAmounts derives the three entry amounts from quantity and the
// resolved rate. Total and commission are rounded half-up to two places
// independently; net is the exact difference. Settlement sums reconcile
// against audited reports only if this ordering is preserved.
func ComputeEntryAmounts(quantity, ratePerUnit, commissionPercent decimal.Decimal) (total, commission, net decimal.Decimal) {
	total = quantity.Mul(ratePerUnit).Round(2)
	commission = total.Mul(commissionPercent).Div(decimal.NewFromInt(100)).Round(2)
	net = total.Sub(commission)
	return total, commission, net
}
