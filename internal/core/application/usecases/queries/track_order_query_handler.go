package queries

import (
	"context"
	"time"

	"deliverytracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackOrderQueryHandler builds the public tracking view. Street, number,
// complement and coordinates are never selected.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for anonymous tracking.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

type trackingRow struct {
	ID                int64     `gorm:"column:id"`
	TrackingCode      string    `gorm:"column:tracking_code"`
	Status            string    `gorm:"column:status"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
	OriginCity        string    `gorm:"column:origin_city"`
	OriginRegion      string    `gorm:"column:origin_region"`
	DestinationCity   string    `gorm:"column:destination_city"`
	DestinationRegion string    `gorm:"column:destination_region"`
}

// Handle returns the tracking view with the timeline newest first.
// errs.ErrObjectNotFound is returned when no order has the code.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	db := h.db.WithContext(ctx)

	var rows []trackingRow
	err := db.Raw(`
		SELECT
			o.id, o.tracking_code, o.status, o.created_at, o.updated_at,
			oa.city AS origin_city, oa.region AS origin_region,
			da.city AS destination_city, da.region AS destination_region
		FROM orders o
		JOIN addresses oa ON oa.id = o.origin_address_id
		JOIN addresses da ON da.id = o.destination_address_id
		WHERE o.tracking_code = ?
	`, query.TrackingCode()).Scan(&rows).Error
	if err != nil {
		return TrackingView{}, err
	}

	if len(rows) == 0 {
		return TrackingView{}, errs.NewObjectNotFoundError("tracking code", query.TrackingCode())
	}
	row := rows[0]

	events := make([]TrackingEvent, 0)
	err = db.Raw(`
		SELECT status, status_label, description, created_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, row.ID).Scan(&events).Error
	if err != nil {
		return TrackingView{}, err
	}

	return TrackingView{
		TrackingCode: row.TrackingCode,
		Status:       row.Status,
		StatusLabel:  statusLabel(row.Status),
		Origin:       PublicPlace{City: row.OriginCity, Region: row.OriginRegion},
		Destination:  PublicPlace{City: row.DestinationCity, Region: row.DestinationRegion},
		Events:       events,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
