// Package addressrepo persists Address entities with GORM.
package addressrepo

import (
	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/core/domain/model/kernel"
)

// AddressDTO is the row shape of the addresses table.
type AddressDTO struct {
	ID         int64    `gorm:"primaryKey;autoIncrement"`
	PostalCode string   `gorm:"type:varchar(9);not null"`
	Street     string   `gorm:"type:varchar(255);not null"`
	Number     string   `gorm:"type:varchar(20);not null"`
	Complement *string  `gorm:"type:varchar(100)"`
	City       string   `gorm:"type:varchar(100);not null"`
	Region     string   `gorm:"type:varchar(2);not null"`
	Latitude   *float64 `gorm:"type:double precision"`
	Longitude  *float64 `gorm:"type:double precision"`
}

// TableName overrides GORM's default naming.
func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(a *address.Address) AddressDTO {
	dto := AddressDTO{
		ID:         a.ID(),
		PostalCode: a.PostalCode().String(),
		Street:     a.Street(),
		Number:     a.Number(),
		City:       a.City(),
		Region:     a.Region(),
	}

	if complement := a.Complement(); complement != "" {
		dto.Complement = &complement
	}

	if c, ok := a.Coordinates(); ok {
		lat, lon := c.Latitude(), c.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

func toDomain(dto AddressDTO) (*address.Address, error) {
	pc, err := kernel.NewPostalCode(dto.PostalCode)
	if err != nil {
		return nil, err
	}

	var coordinates *kernel.Coordinates
	if dto.Latitude != nil && dto.Longitude != nil {
		c, coordErr := kernel.NewCoordinates(*dto.Latitude, *dto.Longitude)
		if coordErr != nil {
			return nil, coordErr
		}
		coordinates = &c
	}

	var complement string
	if dto.Complement != nil {
		complement = *dto.Complement
	}

	return address.RestoreAddress(dto.ID, pc, address.Fields{
		Street:     dto.Street,
		Number:     dto.Number,
		Complement: complement,
		City:       dto.City,
		Region:     dto.Region,
	}, coordinates)
}
