package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the matching orders ordered by created_at desc, then id desc.
// An empty result is a non-nil empty slice.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("orders").
		Select("id, tracking_code, status, created_at")

	if ownerID, ok := query.OwnerID(); ok {
		tx = tx.Where("owner_id = ?", ownerID)
	}
	if status, ok := query.Status(); ok {
		tx = tx.Where("status = ?", status.String())
	}

	orders := make([]OrderSummary, 0)
	if err := tx.Order("created_at DESC, id DESC").Scan(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}
