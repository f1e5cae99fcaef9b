package tutor

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// TutorRepository contract interface
type TutorRepository interface {
	Create(ctx context.Context, tutor *domain.Tutor) error
	FindByID(ctx context.Context, id uint) (domain.Tutor, error)
	FindAll(ctx context.Context, page, limit int) ([]domain.Tutor, int64, error)
	Update(ctx context.Context, tutor *domain.Tutor) error
}

type tutorService struct {
	tutorRepo TutorRepository
	validate  *validator.Validate
}

func NewTutorService(tutorRepo TutorRepository, validate *validator.Validate) *tutorService {
	return &tutorService{
		tutorRepo: tutorRepo,
		validate:  validate,
	}
}

func (s *tutorService) Create(ctx context.Context, tutor *domain.Tutor) (domain.Tutor, error) {
	if err := s.validate.Var(tutor.Email, "required,email"); err != nil {
		return domain.Tutor{}, apperr.Validation("invalid email format")
	}

	if tutor.Profit < 0 || tutor.Profit > 100 {
		return domain.Tutor{}, apperr.Validation("profit must be between 0 and 100")
	}

	newTutor := domain.Tutor{
		FullName: tutor.FullName,
		Email:    tutor.Email,
		Phone:    tutor.Phone,
		Profit:   tutor.Profit,
	}

	if err := s.tutorRepo.Create(ctx, &newTutor); err != nil {
		logger.Error("Failed to create tutor", err)
		return domain.Tutor{}, err
	}

	return newTutor, nil
}

func (s *tutorService) GetByID(ctx context.Context, id uint) (domain.Tutor, error) {
	return s.tutorRepo.FindByID(ctx, id)
}

func (s *tutorService) GetAll(ctx context.Context, page, limit int) ([]domain.Tutor, int64, error) {
	return s.tutorRepo.FindAll(ctx, page, limit)
}

func (s *tutorService) Update(ctx context.Context, id uint, updateData *domain.Tutor) (domain.Tutor, error) {
	existing, err := s.tutorRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Tutor not found for update", err)
		return domain.Tutor{}, err
	}

	if updateData.FullName != "" {
		existing.FullName = updateData.FullName
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			return domain.Tutor{}, apperr.Validation("invalid email format")
		}
		existing.Email = updateData.Email
	}

	if updateData.Phone != "" {
		existing.Phone = updateData.Phone
	}

	if updateData.Profit != 0 {
		if updateData.Profit < 0 || updateData.Profit > 100 {
			return domain.Tutor{}, apperr.Validation("profit must be between 0 and 100")
		}
		existing.Profit = updateData.Profit
	}

	if err := s.tutorRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update tutor", err)
		return domain.Tutor{}, err
	}

	return existing, nil
}
