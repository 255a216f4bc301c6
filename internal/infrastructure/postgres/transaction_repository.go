package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const trxColumns = `id, date, sender, receiver, type, amount, currency, remarks, salesforce, tap, outlet_id, outlet_name, created_at`

// TransactionRepo implements TransactionRepository on PostgreSQL. Topup and
// bucket rows share one shape but live in separate tables.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository builds the persistence adapter for transactions.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// tableFor maps the destination to its table. The destination is a domain
// constant, never user input.
func tableFor(dest string) (string, error) {
	switch dest {
	case entity.DestTopup:
		return "topup_transactions", nil
	case entity.DestBucket:
		return "bucket_transactions", nil
	}
	return "", domain.ErrInvalidInput
}

// SaveBatch appends one upload batch to the destination collection.
func (r *TransactionRepo) SaveBatch(ctx context.Context, dest string, trxs []entity.Transaction) error {
	if len(trxs) == 0 {
		return nil
	}
	table, err := tableFor(dest)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO ` + table + ` (` + trxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	batch := &pgx.Batch{}
	for i := range trxs {
		t := &trxs[i]
		batch.Queue(query,
			t.ID, t.Date, t.Sender, t.Receiver, t.Type, t.Amount, t.Currency,
			t.Remarks, t.Salesforce, t.Tap, t.OutletID, t.OutletName, t.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range trxs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert %s batch: %w", dest, err)
		}
	}
	return nil
}

// List returns transactions matching the filter, newest first.
func (r *TransactionRepo) List(ctx context.Context, dest string, f repository.TransactionFilter) ([]entity.Transaction, error) {
	table, err := tableFor(dest)
	if err != nil {
		return nil, err
	}
	var where []string
	var args []any
	addTrxScope(&where, &args, f.Scope)
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, "type = $"+strconv.Itoa(len(args)))
	}
	if !f.DateFrom.IsZero() {
		args = append(args, f.DateFrom)
		where = append(where, "date >= $"+strconv.Itoa(len(args)))
	}
	if !f.DateTo.IsZero() {
		args = append(args, f.DateTo)
		where = append(where, "date <= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + trxColumns + ` FROM ` + table
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"
	args = append(args, f.Limit)
	query += " LIMIT $" + strconv.Itoa(len(args))
	args = append(args, f.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dest, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListAll returns the full scoped set of one destination (reports).
func (r *TransactionRepo) ListAll(ctx context.Context, dest string, s repository.Scope) ([]entity.Transaction, error) {
	table, err := tableFor(dest)
	if err != nil {
		return nil, err
	}
	var where []string
	var args []any
	addTrxScope(&where, &args, s)

	query := `SELECT ` + trxColumns + ` FROM ` + table
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all %s: %w", dest, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]entity.Transaction, error) {
	var trxs []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.Date, &t.Sender, &t.Receiver, &t.Type, &t.Amount, &t.Currency,
			&t.Remarks, &t.Salesforce, &t.Tap, &t.OutletID, &t.OutletName, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		trxs = append(trxs, t)
	}
	return trxs, rows.Err()
}

func addTrxScope(where *[]string, args *[]any, s repository.Scope) {
	if s.Salesforce != "" {
		*args = append(*args, s.Salesforce)
		*where = append(*where, "salesforce = $"+strconv.Itoa(len(*args)))
	}
	if s.Tap != "" {
		*args = append(*args, s.Tap)
		*where = append(*where, "tap = $"+strconv.Itoa(len(*args)))
	}
}
