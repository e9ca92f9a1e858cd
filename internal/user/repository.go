package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Repository interface {
	ListAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
	Remove(ctx context.Context, user *User) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListAll(ctx context.Context) ([]User, error) {
	users := make([]User, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("repository: failed to select users: %w", err)
	}

	return users, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("repository: failed to select user by id %d: %w", id, err)
	}

	return &user, nil
}

// Create inserts user and sets its ID to the one assigned by the store.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("repository: failed to insert user: %w", err)
	}

	return nil
}

func (r *gormRepository) Save(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("repository: failed to save user %d: %w", user.ID, err)
	}

	return nil
}

func (r *gormRepository) Remove(ctx context.Context, user *User) error {
	result := r.db.WithContext(ctx).Delete(&User{}, user.ID)
	if result.Error != nil {
		return fmt.Errorf("repository: failed to delete user %d: %w", user.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		log.Warn().Int64("user_id", user.ID).Msg("repository: user not found for delete")
		return ErrNotFound
	}

	return nil
}
