package ledger

import "github.com/shopspring/decimal"

// settlementTolerance is the uniform rounding tolerance applied when
// deciding whether a payment covers a document's full payable amount.
var settlementTolerance = decimal.New(1, -2) // 0.01

// CoversTotal reports whether a payment of the given amount settles a
// document whose full payable amount is total, allowing for one cent of
// rounding drift.
func CoversTotal(amount, total decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(total.Sub(settlementTolerance))
}
