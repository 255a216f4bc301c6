package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// ItemResponse JSON view of an inventory item. Field names match the upload
// column vocabulary the dashboard uses.
type ItemResponse struct {
	ID             string          `json:"id"`
	SNNumber       string          `json:"sn_number"`
	Flag           string          `json:"flag"`
	ProductName    string          `json:"product_name"`
	SubCategory    string          `json:"sub_category"`
	Warehouse      string          `json:"warehouse"`
	SalesforceName string          `json:"salesforce_name"`
	TapArea        string          `json:"tap_area"`
	ReferenceNo    string          `json:"reference_no"`
	Status         string          `json:"status"`
	Price          decimal.Decimal `json:"price"`
	SaleDate       *time.Time      `json:"sale_date,omitempty"`
	OutletID       string          `json:"outlet_id,omitempty"`
	OutletName     string          `json:"outlet_name,omitempty"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	ExpiryDate     time.Time       `json:"expiry_date"`
}

// ListItemsRequest query filters for GET /api/items.
type ListItemsRequest struct {
	PageRequest
	Status    string `query:"status" validate:"omitempty,oneof=Ready SuccessSold FailedSold"`
	Warehouse string `query:"warehouse"`
	Search    string `query:"search"`
	// Narrowing filters for roles whose scope does not already pin them.
	Salesforce string `query:"salesforce"`
	Tap        string `query:"tap"`
}

// UpdateStatusRequest manual lifecycle action on one item.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SuccessSold FailedSold"`
}

// SellthruRequest applies one sellthru update by serial number.
type SellthruRequest struct {
	SNNumber      string `json:"sn_number" validate:"required"`
	SaleDate      string `json:"sale_date"`
	OutletID      string `json:"outlet_id"`
	OutletName    string `json:"outlet_name"`
	Price         int64  `json:"price" validate:"omitempty,min=0"`
	TransactionID string `json:"transaction_id"`
}

// ToItemResponse maps the entity.
func ToItemResponse(i *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:             i.ID,
		SNNumber:       i.SNNumber,
		Flag:           i.Flag,
		ProductName:    i.ProductName,
		SubCategory:    i.SubCategory,
		Warehouse:      i.Warehouse,
		SalesforceName: i.SalesforceName,
		TapArea:        i.TapArea,
		ReferenceNo:    i.ReferenceNo,
		Status:         i.Status,
		Price:          i.Price,
		SaleDate:       i.SaleDate,
		OutletID:       i.OutletID,
		OutletName:     i.OutletName,
		TransactionID:  i.TransactionID,
		ExpiryDate:     i.ExpiryDate,
	}
}
