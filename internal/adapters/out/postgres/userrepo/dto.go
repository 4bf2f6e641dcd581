// Package userrepo persists User aggregates with GORM.
package userrepo

import (
	"time"

	"deliverytracker/internal/core/domain/model/user"
)

// UserDTO is the row shape of the users table.
type UserDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	FullName       *string   `gorm:"type:varchar(255)"`
	Role           string    `gorm:"type:varchar(20);not null;default:'user';index"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName overrides GORM's default naming.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:             u.ID(),
		Email:          u.Email(),
		HashedPassword: u.PasswordHash(),
		Role:           u.Role().String(),
		CreatedAt:      u.CreatedAt(),
	}
	if name := u.FullName(); name != "" {
		dto.FullName = &name
	}
	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var fullName string
	if dto.FullName != nil {
		fullName = *dto.FullName
	}

	return user.RestoreUser(dto.ID, dto.Email, dto.HashedPassword, fullName, role, dto.CreatedAt)
}
