package addressrepo

import (
	"context"
	"errors"

	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressRepository implements ports.AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Add inserts a transient address and assigns the generated identity.
func (r *GormAddressRepository) Add(ctx context.Context, a *address.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return a.AssignID(dto.ID)
}

// Get retrieves an address by identity.
func (r *GormAddressRepository) Get(ctx context.Context, id int64) (*address.Address, error) {
	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
