package entity

import "time"

// DistributionRecord is an externally sourced Adisti row confirming that an
// item actually moved through the distribution channel. Append-only ingestion
// log, used to corroborate sellthru claims during reconciliation.
type DistributionRecord struct {
	ID             string
	CreatedDate    time.Time
	SNNumber       string
	Warehouse      string
	ProductName    string
	SalesforceName string
	ReferenceNo    string
	OutletID       string
	OutletName     string
	TapArea        string
	CreatedAt      time.Time
}
