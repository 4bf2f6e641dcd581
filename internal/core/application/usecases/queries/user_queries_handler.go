package queries

import (
	"context"

	"deliverytracker/internal/pkg/errs"

	"gorm.io/gorm"
)

const userColumns = "id, email, full_name, role, created_at"

// GetUserQueryHandler reads one user profile.
type GetUserQueryHandler struct {
	db *gorm.DB
}

// NewGetUserQueryHandler creates a handler for profile reads.
func NewGetUserQueryHandler(db *gorm.DB) GetUserQueryHandler {
	return GetUserQueryHandler{db: db}
}

// Handle returns the profile or errs.ErrObjectNotFound.
func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	var users []UserView
	err := h.db.WithContext(ctx).
		Table("users").
		Select(userColumns).
		Where("id = ?", query.UserID()).
		Scan(&users).Error
	if err != nil {
		return UserView{}, err
	}

	if len(users) == 0 {
		return UserView{}, errs.NewObjectNotFoundError("user", query.UserID())
	}
	return users[0], nil
}

// ListUsersQueryHandler reads every profile.
type ListUsersQueryHandler struct {
	db *gorm.DB
}

// NewListUsersQueryHandler creates a handler for user listings.
func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

// Handle returns all users ordered by identity.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	users := make([]UserView, 0)
	err := h.db.WithContext(ctx).
		Table("users").
		Select(userColumns).
		Order("id").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}
