// Package orderrepo persists Order aggregates and their timeline events with GORM.
package orderrepo

import (
	"time"

	"deliverytracker/internal/adapters/out/postgres/addressrepo"
	"deliverytracker/internal/adapters/out/postgres/userrepo"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
)

// OrderDTO is the row shape of the orders table. The association fields exist
// only so AutoMigrate creates the foreign keys; they are never loaded.
type OrderDTO struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement"`
	TrackingCode         string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status               string    `gorm:"type:varchar(20);not null;index"`
	OwnerID              int64     `gorm:"not null;index"`
	OriginAddressID      int64     `gorm:"not null"`
	DestinationAddressID int64     `gorm:"not null"`
	CreatedAt            time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt            time.Time `gorm:"not null;autoUpdateTime:false"`

	Owner              *userrepo.UserDTO       `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	OriginAddress      *addressrepo.AddressDTO `gorm:"foreignKey:OriginAddressID;constraint:OnDelete:RESTRICT"`
	DestinationAddress *addressrepo.AddressDTO `gorm:"foreignKey:DestinationAddressID;constraint:OnDelete:RESTRICT"`
	Events             []EventDTO              `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

// TableName overrides GORM's default naming.
func (OrderDTO) TableName() string {
	return "orders"
}

// EventDTO is the row shape of the append-only order_events table.
type EventDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     int64     `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(20);not null"`
	StatusLabel string    `gorm:"type:varchar(100);not null"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName overrides GORM's default naming.
func (EventDTO) TableName() string {
	return "order_events"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                   o.ID(),
		TrackingCode:         o.TrackingCode().String(),
		Status:               o.Status().String(),
		OwnerID:              o.OwnerID(),
		OriginAddressID:      o.OriginAddressID(),
		DestinationAddressID: o.DestinationAddressID(),
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
	}
}

func eventFromDomain(orderID int64, e order.Event) EventDTO {
	dto := EventDTO{
		OrderID:     orderID,
		Status:      e.Status().String(),
		StatusLabel: e.Label(),
		CreatedAt:   e.CreatedAt(),
	}
	if description := e.Description(); description != "" {
		dto.Description = &description
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	code, err := kernel.ParseTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		code,
		status,
		dto.OwnerID,
		dto.OriginAddressID,
		dto.DestinationAddressID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
