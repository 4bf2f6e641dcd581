package queries

import (
	"context"
	"time"

	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/services"
	"deliverytracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order joined with its origin and destination.
//
// Errors:
//   - errs.ErrObjectNotFound when no order has the identity
//   - errs.ErrForbidden when the caller is neither owner nor admin
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for order detail reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

type orderDetailRow struct {
	ID           int64     `gorm:"column:id"`
	TrackingCode string    `gorm:"column:tracking_code"`
	Status       string    `gorm:"column:status"`
	OwnerID      int64     `gorm:"column:owner_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`

	OID         int64    `gorm:"column:o_id"`
	OPostalCode string   `gorm:"column:o_postal_code"`
	OStreet     string   `gorm:"column:o_street"`
	ONumber     string   `gorm:"column:o_number"`
	OComplement *string  `gorm:"column:o_complement"`
	OCity       string   `gorm:"column:o_city"`
	ORegion     string   `gorm:"column:o_region"`
	OLatitude   *float64 `gorm:"column:o_latitude"`
	OLongitude  *float64 `gorm:"column:o_longitude"`

	DID         int64    `gorm:"column:d_id"`
	DPostalCode string   `gorm:"column:d_postal_code"`
	DStreet     string   `gorm:"column:d_street"`
	DNumber     string   `gorm:"column:d_number"`
	DComplement *string  `gorm:"column:d_complement"`
	DCity       string   `gorm:"column:d_city"`
	DRegion     string   `gorm:"column:d_region"`
	DLatitude   *float64 `gorm:"column:d_latitude"`
	DLongitude  *float64 `gorm:"column:d_longitude"`
}

// Handle returns the order detail.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderDetailRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.tracking_code, o.status, o.owner_id, o.created_at, o.updated_at,
			oa.id AS o_id, oa.postal_code AS o_postal_code, oa.street AS o_street,
			oa.number AS o_number, oa.complement AS o_complement, oa.city AS o_city,
			oa.region AS o_region, oa.latitude AS o_latitude, oa.longitude AS o_longitude,
			da.id AS d_id, da.postal_code AS d_postal_code, da.street AS d_street,
			da.number AS d_number, da.complement AS d_complement, da.city AS d_city,
			da.region AS d_region, da.latitude AS d_latitude, da.longitude AS d_longitude
		FROM orders o
		JOIN addresses oa ON oa.id = o.origin_address_id
		JOIN addresses da ON da.id = o.destination_address_id
		WHERE o.id = ?
	`, query.OrderID()).Scan(&rows).Error
	if err != nil {
		return OrderView{}, err
	}

	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	row := rows[0]

	if err = h.policy.AuthorizeOwner(query.Caller(), row.ID, row.OwnerID); err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:           row.ID,
		TrackingCode: row.TrackingCode,
		Status:       row.Status,
		StatusLabel:  statusLabel(row.Status),
		OwnerID:      row.OwnerID,
		Origin: AddressView{
			ID: row.OID, PostalCode: row.OPostalCode, Street: row.OStreet, Number: row.ONumber,
			Complement: row.OComplement, City: row.OCity, Region: row.ORegion,
			Latitude: row.OLatitude, Longitude: row.OLongitude,
		},
		Destination: AddressView{
			ID: row.DID, PostalCode: row.DPostalCode, Street: row.DStreet, Number: row.DNumber,
			Complement: row.DComplement, City: row.DCity, Region: row.DRegion,
			Latitude: row.DLatitude, Longitude: row.DLongitude,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// statusLabel renders a stored status; unknown values are shown as stored.
func statusLabel(stored string) string {
	status, err := order.ParseStatus(stored)
	if err != nil {
		return stored
	}
	return status.Label()
}
