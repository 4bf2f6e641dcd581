package userrepo

import (
	"context"
	"errors"

	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a transient user and assigns the generated identity.
// A taken email yields errs.AlreadyExistsError.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("email", u.Email())
		}
		return err
	}

	if err := u.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(u)
	return nil
}

// Update writes role, password hash and full name.
func (r *GormUserRepository) Update(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"hashed_password": dto.HashedPassword,
		"full_name":       dto.FullName,
		"role":            dto.Role,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", u.ID())
	}

	r.tracker.TrackAggregate(u)
	return nil
}

// Get retrieves a user by identity.
func (r *GormUserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	return r.first(ctx, "user", id, "id = ?", id)
}

// GetByEmail retrieves a user by normalized email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	return r.first(ctx, "user", email, "email = ?", email)
}

// GetFirstAdmin retrieves the admin with the lowest identity.
func (r *GormUserRepository) GetFirstAdmin(ctx context.Context) (*user.User, error) {
	var dto UserDTO
	err := r.db.WithContext(ctx).Where("role = ?", user.RoleAdmin.String()).Order("id").First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", "first admin")
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormUserRepository) first(ctx context.Context, param string, id any, query string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id)
		}
		return nil, err
	}

	return toDomain(dto)
}
