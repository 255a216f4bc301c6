package ingest

import "github.com/digipos/sellthru-api/internal/domain"

// Kind selects which of the five record shapes a file is parsed into.
type Kind string

const (
	KindItem         Kind = "item"         // "new" inventory upload
	KindSellthru     Kind = "sellthru"     // sale confirmations matched by SN
	KindTopup        Kind = "topup"        // topup transactions
	KindBucket       Kind = "bucket"       // bucket transactions (same shape as topup)
	KindDistribution Kind = "distribution" // Adisti distribution log
)

// ParseKind maps a route/selector value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindItem, KindSellthru, KindTopup, KindBucket, KindDistribution:
		return Kind(s), nil
	}
	return "", domain.ErrInvalidInput
}

// IsTransaction reports whether the kind's primary ingestion key is the
// amount column instead of the serial number.
func (k Kind) IsTransaction() bool {
	return k == KindTopup || k == KindBucket
}
