package repository

import (
	"context"

	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// Scope narrows queries to the data a role may see. Zero value means no
// restriction (admin). Handlers build it from JWT claims.
type Scope struct {
	Salesforce string
	Tap        string
}

// ItemFilter narrows item listings on top of the role scope.
type ItemFilter struct {
	Scope
	Status    string
	Warehouse string
	Search    string // matches serial number or product name
	Limit     int
	Offset    int
}

// ItemRepository persists serial-numbered inventory items.
type ItemRepository interface {
	SaveBatch(ctx context.Context, items []entity.InventoryItem) error
	List(ctx context.Context, f ItemFilter) ([]entity.InventoryItem, error)
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetBySN(ctx context.Context, sn string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	ListSold(ctx context.Context, s Scope) ([]entity.InventoryItem, error)
}
