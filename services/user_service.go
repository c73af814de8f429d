package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
)

var (
	fullNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe    = regexp.MustCompile(`^[6-9]\d{9}$`)
)

type ProfileInput struct {
	FullName    string `json:"full_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

func (in *ProfileInput) validate() error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Address = strings.TrimSpace(in.Address)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	switch {
	case in.FullName == "":
		return invalid("full_name", "full name is required")
	case len(in.FullName) > 100:
		return invalid("full_name", "full name cannot exceed 100 characters")
	case !fullNameRe.MatchString(in.FullName):
		return invalid("full_name", "full name can only contain letters and spaces")
	case len(in.Address) > 200:
		return invalid("address", "address cannot exceed 200 characters")
	case !phoneRe.MatchString(in.PhoneNumber):
		return invalid("phone_number", "enter a valid 10-digit mobile number starting with 6-9")
	}
	return nil
}

type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.FullName = in.FullName
	u.Address = in.Address
	u.PhoneNumber = in.PhoneNumber
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
