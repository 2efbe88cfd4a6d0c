package services

import (
	"context"
	"strings"

	"qkart/apierror"
	"qkart/models"
)

const (
	MsgUserNotFound    = "User not found"
	MsgAddressTooShort = "Address must be at least 20 characters"

	minAddressLength = 20
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch user", err)
	}
	if user == nil {
		return nil, apierror.NotFound(MsgUserNotFound)
	}
	return user, nil
}

func (s *UserService) SetAddress(ctx context.Context, user *models.User, address string) (*models.User, error) {
	address = strings.TrimSpace(address)
	if len(address) < minAddressLength {
		return nil, apierror.BadRequest(MsgAddressTooShort)
	}
	user.Address = address
	if err := s.users.Save(ctx, user); err != nil {
		return nil, apierror.Internal("Failed to save user", err)
	}
	return user, nil
}

func (s *UserService) HasNonDefaultAddress(ctx context.Context, user *models.User) (bool, error) {
	ok, err := s.users.HasNonDefaultAddress(ctx, user)
	if err != nil {
		return false, apierror.Internal("Failed to check address", err)
	}
	return ok, nil
}
