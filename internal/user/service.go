package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateUser(ctx context.Context, id int64, patch Patch) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}

	return users, nil
}

func (s *service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("service: failed to get user by id %d: %w", id, err)
	}

	return user, nil
}

func (s *service) CreateUser(ctx context.Context, user *User) (*User, error) {
	if user.FirstName == "" || user.LastName == "" || user.Age == 0 {
		return nil, ErrMissingFields
	}

	// The store assigns the id.
	user.ID = 0

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("service: user created")
	return user, nil
}

func (s *service) UpdateUser(ctx context.Context, id int64, patch Patch) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("service: failed to get user %d for update: %w", id, err)
	}

	patch.Apply(user)

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("service: failed to update user %d: %w", id, err)
	}

	return user, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("service: failed to get user %d for delete: %w", id, err)
	}

	if err := s.repo.Remove(ctx, user); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("service: failed to delete user %d: %w", id, err)
	}

	log.Info().Int64("user_id", id).Msg("service: user removed")
	return nil
}
