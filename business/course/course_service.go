package course

import (
	"context"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// CourseRepository contract interface
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, id uint) (domain.Course, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Course, error)
	FindAll(ctx context.Context, page, limit int, categoryID, tutorID uint) ([]domain.Course, int64, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository contract interface
type CategoryRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Category, error)
}

// TutorRepository contract interface
type TutorRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Tutor, error)
}

type courseService struct {
	courseRepo   CourseRepository
	categoryRepo CategoryRepository
	tutorRepo    TutorRepository
	validate     *validator.Validate
}

func NewCourseService(courseRepo CourseRepository, categoryRepo CategoryRepository, tutorRepo TutorRepository, validate *validator.Validate) *courseService {
	return &courseService{
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		tutorRepo:    tutorRepo,
		validate:     validate,
	}
}

func (s *courseService) Create(ctx context.Context, course *domain.Course) (domain.Course, error) {
	if err := s.validate.Var(course.Title, "required,min=3"); err != nil {
		return domain.Course{}, apperr.Validation("course title must be at least 3 characters")
	}

	if course.Price < 0 || course.OriginalPrice < 0 {
		return domain.Course{}, apperr.Validation("course price cannot be negative")
	}

	if _, err := s.categoryRepo.FindByID(ctx, course.CategoryID); err != nil {
		return domain.Course{}, err
	}

	if _, err := s.tutorRepo.FindByID(ctx, course.TutorID); err != nil {
		return domain.Course{}, err
	}

	newCourse := domain.Course{
		Title:         course.Title,
		Slug:          course.Slug,
		Price:         course.Price,
		OriginalPrice: course.OriginalPrice,
		CategoryID:    course.CategoryID,
		TutorID:       course.TutorID,
	}

	if err := s.courseRepo.Create(ctx, &newCourse); err != nil {
		logger.Error("Failed to create course", err)
		return domain.Course{}, err
	}

	return newCourse, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (domain.Course, error) {
	return s.courseRepo.FindByID(ctx, id)
}

func (s *courseService) GetAll(ctx context.Context, page, limit int, categoryID, tutorID uint) ([]domain.Course, int64, error) {
	return s.courseRepo.FindAll(ctx, page, limit, categoryID, tutorID)
}

func (s *courseService) Update(ctx context.Context, id uint, updateData *domain.Course) (domain.Course, error) {
	existing, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Course not found for update", err)
		return domain.Course{}, err
	}

	if updateData.Title != "" {
		existing.Title = updateData.Title
	}

	if updateData.Slug != "" {
		existing.Slug = updateData.Slug
	}

	if updateData.Price != 0 {
		if updateData.Price < 0 {
			return domain.Course{}, apperr.Validation("course price cannot be negative")
		}
		existing.Price = updateData.Price
	}

	if updateData.OriginalPrice != 0 {
		if updateData.OriginalPrice < 0 {
			return domain.Course{}, apperr.Validation("course price cannot be negative")
		}
		existing.OriginalPrice = updateData.OriginalPrice
	}

	if updateData.CategoryID != 0 {
		if _, err := s.categoryRepo.FindByID(ctx, updateData.CategoryID); err != nil {
			return domain.Course{}, err
		}
		existing.CategoryID = updateData.CategoryID
	}

	if updateData.TutorID != 0 {
		if _, err := s.tutorRepo.FindByID(ctx, updateData.TutorID); err != nil {
			return domain.Course{}, err
		}
		existing.TutorID = updateData.TutorID
	}

	if err := s.courseRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update course", err)
		return domain.Course{}, err
	}

	return existing, nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.courseRepo.FindByID(ctx, id); err != nil {
		logger.Error("Course not found for deletion", err)
		return err
	}

	return s.courseRepo.Delete(ctx, id)
}
