package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationReport aggregated metrics over a role-scoped working set.
//
// MatchedSales counts SuccessSold items whose serial number also appears in
// the distribution log; Securing counts the SuccessSold items that do not.
// OutstandingBalance is the topup total minus the sold-item price total.
type ReconciliationReport struct {
	MatchedSales       int             `json:"matched_sales"`
	Securing           int             `json:"securing"`
	TotalSold          int             `json:"total_sold"`
	TopupTotal         decimal.Decimal `json:"topup_total"`
	SalesTotal         decimal.Decimal `json:"sales_total"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	GeneratedAt        time.Time       `json:"generated_at"`
}
