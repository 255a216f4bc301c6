package repository

import (
	"context"
	"time"

	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// TransactionFilter narrows topup/bucket listings.
type TransactionFilter struct {
	Scope
	Type     string
	DateFrom time.Time
	DateTo   time.Time
	Limit    int
	Offset   int
}

// TransactionRepository persists topup and bucket transactions. The dest
// argument selects the destination collection (entity.DestTopup or
// entity.DestBucket); both share one row shape.
type TransactionRepository interface {
	SaveBatch(ctx context.Context, dest string, trxs []entity.Transaction) error
	List(ctx context.Context, dest string, f TransactionFilter) ([]entity.Transaction, error)
	ListAll(ctx context.Context, dest string, s Scope) ([]entity.Transaction, error)
}
