package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/internal/domain/repository"
)

var _ repository.DistributionRepository = (*DistributionRepo)(nil)

const distColumns = `id, created_date, sn_number, warehouse, product_name, salesforce_name, reference_no, outlet_id, outlet_name, tap_area, created_at`

// DistributionRepo implements DistributionRepository on PostgreSQL.
// The table is an append-only ingestion log.
type DistributionRepo struct {
	q Querier
}

// NewDistributionRepository builds the persistence adapter for Adisti records.
func NewDistributionRepository(q Querier) *DistributionRepo {
	return &DistributionRepo{q: q}
}

// SaveBatch appends one upload batch.
func (r *DistributionRepo) SaveBatch(ctx context.Context, recs []entity.DistributionRecord) error {
	if len(recs) == 0 {
		return nil
	}
	query := `
		INSERT INTO distribution_records (` + distColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	batch := &pgx.Batch{}
	for i := range recs {
		d := &recs[i]
		batch.Queue(query,
			d.ID, d.CreatedDate, d.SNNumber, d.Warehouse, d.ProductName,
			d.SalesforceName, d.ReferenceNo, d.OutletID, d.OutletName, d.TapArea, d.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range recs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert distribution batch: %w", err)
		}
	}
	return nil
}

// ListAll returns the scoped distribution log.
func (r *DistributionRepo) ListAll(ctx context.Context, s repository.Scope) ([]entity.DistributionRecord, error) {
	var where []string
	var args []any
	addScope(&where, &args, s)

	query := `SELECT ` + distColumns + ` FROM distribution_records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_date DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list distribution records: %w", err)
	}
	defer rows.Close()

	var recs []entity.DistributionRecord
	for rows.Next() {
		var d entity.DistributionRecord
		if err := rows.Scan(
			&d.ID, &d.CreatedDate, &d.SNNumber, &d.Warehouse, &d.ProductName,
			&d.SalesforceName, &d.ReferenceNo, &d.OutletID, &d.OutletName, &d.TapArea, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan distribution record: %w", err)
		}
		recs = append(recs, d)
	}
	return recs, rows.Err()
}

// ListSerialNumbers returns distinct scoped serial numbers (the
// reconciliation intersection set).
func (r *DistributionRepo) ListSerialNumbers(ctx context.Context, s repository.Scope) ([]string, error) {
	var where []string
	var args []any
	addScope(&where, &args, s)

	query := `SELECT DISTINCT sn_number FROM distribution_records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list distribution serial numbers: %w", err)
	}
	defer rows.Close()

	var sns []string
	for rows.Next() {
		var sn string
		if err := rows.Scan(&sn); err != nil {
			return nil, fmt.Errorf("scan serial number: %w", err)
		}
		sns = append(sns, sn)
	}
	return sns, rows.Err()
}
