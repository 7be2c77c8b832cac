package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"storefront/internal/models/db_models"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByEmail matches the address exactly and returns the first hit, or nil.
func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {

	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
