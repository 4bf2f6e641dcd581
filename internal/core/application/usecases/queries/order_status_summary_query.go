package queries

import (
	"context"
	"errors"

	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrOrderStatusSummaryQueryIsNotConstructed = errors.New(
	"OrderStatusSummaryQuery must be created via NewOrderStatusSummaryQuery constructor",
)

// OrderStatusSummaryQuery counts orders per status.
type OrderStatusSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewOrderStatusSummaryQuery creates the query.
func NewOrderStatusSummaryQuery() OrderStatusSummaryQuery {
	return OrderStatusSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q OrderStatusSummaryQuery) Validate() error {
	return q.guard.Validate(ErrOrderStatusSummaryQueryIsNotConstructed)
}

// OrderStatusSummaryQueryHandler counts orders per status.
type OrderStatusSummaryQueryHandler struct {
	db *gorm.DB
}

// NewOrderStatusSummaryQueryHandler creates the handler.
func NewOrderStatusSummaryQueryHandler(db *gorm.DB) OrderStatusSummaryQueryHandler {
	return OrderStatusSummaryQueryHandler{db: db}
}

// Handle returns one entry per known status in lifecycle order, zero counts included.
func (h OrderStatusSummaryQueryHandler) Handle(ctx context.Context, query OrderStatusSummaryQuery) ([]StatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var counted []StatusCount
	err := h.db.WithContext(ctx).
		Table("orders").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counted).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(counted))
	for _, c := range counted {
		byStatus[c.Status] = c.Count
	}

	statuses := order.Statuses()
	summary := make([]StatusCount, 0, len(statuses))
	for _, s := range statuses {
		summary = append(summary, StatusCount{Status: s.String(), Count: byStatus[s.String()]})
	}
	return summary, nil
}
