package user

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context, page, limit int, search string) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
	}
}

// Create registers a platform user. Email, phone and national id each
// carry a unique index, so a duplicate on any of them surfaces as a
// conflict from the repository rather than a pre-check here.
func (s *userService) Create(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, apperr.Validation("invalid email format")
	}

	if err := s.validate.Var(user.Phone, "required,min=10,max=15"); err != nil {
		return domain.User{}, apperr.Validation("invalid phone number")
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Phone:      user.Phone,
		NationalID: user.NationalID,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create user", err)
		return domain.User{}, err
	}

	return newUser, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) GetAll(ctx context.Context, page, limit int, search string) ([]domain.User, int64, error) {
	return s.userRepo.FindAll(ctx, page, limit, search)
}

func (s *userService) Update(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", err)
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existing.FullName = updateData.FullName
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			return domain.User{}, apperr.Validation("invalid email format")
		}
		existing.Email = updateData.Email
	}

	if updateData.Phone != "" {
		if err := s.validate.Var(updateData.Phone, "required,min=10,max=15"); err != nil {
			return domain.User{}, apperr.Validation("invalid phone number")
		}
		existing.Phone = updateData.Phone
	}

	if updateData.NationalID != "" {
		existing.NationalID = updateData.NationalID
	}

	existing.IsActive = updateData.IsActive

	if err := s.userRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	return existing, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("User not found for deletion", err)
		return err
	}

	return s.userRepo.Delete(ctx, id)
}
