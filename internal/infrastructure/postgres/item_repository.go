package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/entity"
	"github.com/digipos/sellthru-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, sn_number, flag, product_name, sub_category, warehouse, salesforce_name, tap_area, reference_no, status, price, sale_date, outlet_id, outlet_name, transaction_id, expiry_date, created_at, updated_at`

// ItemRepo implements ItemRepository on PostgreSQL (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the persistence adapter for inventory items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// SaveBatch inserts one upload batch. Serial numbers are unique; a row whose
// SN already exists is skipped, not an error, so the chunked uploader can be
// retried without poisoning the whole batch.
func (r *ItemRepo) SaveBatch(ctx context.Context, items []entity.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (sn_number) DO NOTHING`
	batch := &pgx.Batch{}
	for i := range items {
		it := &items[i]
		batch.Queue(query,
			it.ID, it.SNNumber, it.Flag, it.ProductName, it.SubCategory, it.Warehouse,
			it.SalesforceName, it.TapArea, it.ReferenceNo, it.Status, it.Price,
			it.SaleDate, it.OutletID, it.OutletName, it.TransactionID,
			it.ExpiryDate, it.CreatedAt, it.UpdatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert item batch: %w", err)
		}
	}
	return nil
}

// List returns items matching the filter, newest first.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]entity.InventoryItem, error) {
	var where []string
	var args []any
	addScope(&where, &args, f.Scope)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if f.Warehouse != "" {
		args = append(args, f.Warehouse)
		where = append(where, "warehouse = $"+strconv.Itoa(len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(sn_number ILIKE $"+n+" OR product_name ILIKE $"+n+")")
	}

	query := `SELECT ` + itemColumns + ` FROM inventory_items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, sn_number"
	args = append(args, f.Limit)
	query += " LIMIT $" + strconv.Itoa(len(args))
	args = append(args, f.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListSold returns every SuccessSold item in scope (reconciliation working set).
func (r *ItemRepo) ListSold(ctx context.Context, s repository.Scope) ([]entity.InventoryItem, error) {
	var where []string
	var args []any
	addScope(&where, &args, s)
	args = append(args, entity.StatusSuccessSold)
	where = append(where, "status = $"+strconv.Itoa(len(args)))

	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE ` + strings.Join(where, " AND ")
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sold items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// GetByID fetches one item by surrogate id.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getBy(ctx, "id", id)
}

// GetBySN fetches one item by serial number.
func (r *ItemRepo) GetBySN(ctx context.Context, sn string) (*entity.InventoryItem, error) {
	return r.getBy(ctx, "sn_number", sn)
}

func (r *ItemRepo) getBy(ctx context.Context, column, value string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE ` + column + ` = $1`
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, value).Scan(
		&it.ID, &it.SNNumber, &it.Flag, &it.ProductName, &it.SubCategory, &it.Warehouse,
		&it.SalesforceName, &it.TapArea, &it.ReferenceNo, &it.Status, &it.Price,
		&it.SaleDate, &it.OutletID, &it.OutletName, &it.TransactionID,
		&it.ExpiryDate, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Update persists the mutable fields (lifecycle + sale data).
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET status = $2, price = $3, sale_date = $4, outlet_id = $5, outlet_name = $6, transaction_id = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Status, item.Price, item.SaleDate,
		item.OutletID, item.OutletName, item.TransactionID, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.SNNumber, &it.Flag, &it.ProductName, &it.SubCategory, &it.Warehouse,
			&it.SalesforceName, &it.TapArea, &it.ReferenceNo, &it.Status, &it.Price,
			&it.SaleDate, &it.OutletID, &it.OutletName, &it.TransactionID,
			&it.ExpiryDate, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// addScope appends the role-scope conditions shared by the item,
// transaction and distribution queries.
func addScope(where *[]string, args *[]any, s repository.Scope) {
	if s.Salesforce != "" {
		*args = append(*args, s.Salesforce)
		*where = append(*where, "salesforce_name = $"+strconv.Itoa(len(*args)))
	}
	if s.Tap != "" {
		*args = append(*args, s.Tap)
		*where = append(*where, "tap_area = $"+strconv.Itoa(len(*args)))
	}
}
