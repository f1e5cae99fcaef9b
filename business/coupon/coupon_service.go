package coupon

import (
	"context"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// CouponRepository contract interface
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	FindByID(ctx context.Context, id uint) (domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	FindAll(ctx context.Context, page, limit int) ([]domain.Coupon, int64, error)
	Update(ctx context.Context, coupon *domain.Coupon, deltas domain.CouponScopeDeltas) error
	Delete(ctx context.Context, id uint) error
	Redeem(ctx context.Context, id uint) error
}

// CourseRepository contract interface
type CourseRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Course, error)
}

type CouponInput struct {
	Code          string
	Type          string
	Amount        int64
	Limit         int
	ValidFrom     *time.Time
	ValidTo       *time.Time
	CourseInclude []uint
	CourseExclude []uint
}

type couponService struct {
	couponRepo CouponRepository
	courseRepo CourseRepository
	validate   *validator.Validate
}

func NewCouponService(couponRepo CouponRepository, courseRepo CourseRepository, validate *validator.Validate) *couponService {
	return &couponService{
		couponRepo: couponRepo,
		courseRepo: courseRepo,
		validate:   validate,
	}
}

// Create persists a new coupon. Course ids that do not resolve to an
// existing course are dropped from the scoping sets without an error.
// Code uniqueness rests on the database index, so a concurrent create
// with the same code still comes back as a conflict.
func (s *couponService) Create(ctx context.Context, input CouponInput) (domain.Coupon, error) {
	if err := s.validateInput(input); err != nil {
		return domain.Coupon{}, err
	}

	include, err := s.resolveCourses(ctx, input.CourseInclude)
	if err != nil {
		return domain.Coupon{}, err
	}

	exclude, err := s.resolveCourses(ctx, input.CourseExclude)
	if err != nil {
		return domain.Coupon{}, err
	}

	coupon := domain.Coupon{
		Code:          input.Code,
		Type:          input.Type,
		Amount:        input.Amount,
		Limit:         input.Limit,
		ValidFrom:     input.ValidFrom,
		ValidTo:       input.ValidTo,
		CourseInclude: include,
		CourseExclude: exclude,
	}

	if err := s.couponRepo.Create(ctx, &coupon); err != nil {
		logger.Error("Failed to create coupon", err)
		return domain.Coupon{}, err
	}

	return coupon, nil
}

// Update diffs the requested course sets against the attached ones and
// only writes the connect/disconnect deltas.
func (s *couponService) Update(ctx context.Context, id uint, input CouponInput) (domain.Coupon, error) {
	if err := s.validateInput(input); err != nil {
		return domain.Coupon{}, err
	}

	existing, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Coupon not found for update", err)
		return domain.Coupon{}, err
	}

	include, err := s.resolveCourses(ctx, input.CourseInclude)
	if err != nil {
		return domain.Coupon{}, err
	}

	exclude, err := s.resolveCourses(ctx, input.CourseExclude)
	if err != nil {
		return domain.Coupon{}, err
	}

	deltas := domain.CouponScopeDeltas{}
	deltas.IncludeConnect, deltas.IncludeDisconnect = diffCourseSets(existing.CourseInclude, include)
	deltas.ExcludeConnect, deltas.ExcludeDisconnect = diffCourseSets(existing.CourseExclude, exclude)

	updated := domain.Coupon{
		ID:        id,
		Code:      input.Code,
		Type:      input.Type,
		Amount:    input.Amount,
		Limit:     input.Limit,
		ValidFrom: input.ValidFrom,
		ValidTo:   input.ValidTo,
	}

	if err := s.couponRepo.Update(ctx, &updated, deltas); err != nil {
		logger.Error("Failed to update coupon", err)
		return domain.Coupon{}, err
	}

	return s.couponRepo.FindByID(ctx, id)
}

func (s *couponService) GetByID(ctx context.Context, id uint) (domain.Coupon, error) {
	return s.couponRepo.FindByID(ctx, id)
}

func (s *couponService) GetAll(ctx context.Context, page, limit int) ([]domain.Coupon, int64, error) {
	return s.couponRepo.FindAll(ctx, page, limit)
}

func (s *couponService) Delete(ctx context.Context, id uint) error {
	if _, err := s.couponRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.couponRepo.Delete(ctx, id)
}

// Validate checks the code against its validity window and course
// scoping for the given course ids, and returns the coupon on success.
func (s *couponService) Validate(ctx context.Context, code string, courseIDs []uint, at time.Time) (domain.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return domain.Coupon{}, apperr.Validation("invalid coupon code")
		}
		return domain.Coupon{}, err
	}

	if coupon.ValidFrom != nil && at.Before(*coupon.ValidFrom) {
		return domain.Coupon{}, apperr.Validation("coupon is not valid yet")
	}
	if coupon.ValidTo != nil && at.After(*coupon.ValidTo) {
		return domain.Coupon{}, apperr.Validation("coupon has expired")
	}

	if coupon.Limit > 0 && coupon.Used >= coupon.Limit {
		return domain.Coupon{}, apperr.Validation("coupon usage limit reached")
	}

	if len(coupon.CourseInclude) > 0 {
		included := toIDSet(coupon.CourseInclude)
		for _, id := range courseIDs {
			if _, ok := included[id]; !ok {
				return domain.Coupon{}, apperr.Validation("coupon is not valid for the selected courses")
			}
		}
	}

	excluded := toIDSet(coupon.CourseExclude)
	for _, id := range courseIDs {
		if _, ok := excluded[id]; ok {
			return domain.Coupon{}, apperr.Validation("coupon is not valid for the selected courses")
		}
	}

	return coupon, nil
}

// Redeem consumes one use of the coupon. The limit is enforced by the
// repository in a single guarded statement.
func (s *couponService) Redeem(ctx context.Context, id uint) error {
	return s.couponRepo.Redeem(ctx, id)
}

func (s *couponService) validateInput(input CouponInput) error {
	if err := s.validate.Var(input.Code, "required,min=3,max=64"); err != nil {
		return apperr.Validation("coupon code must be between 3 and 64 characters")
	}

	if input.Type != domain.CouponTypeFixed && input.Type != domain.CouponTypePercent {
		return apperr.Validation("coupon type must be FIXED or PERCENT")
	}

	if input.Amount <= 0 {
		return apperr.Validation("coupon amount must be positive")
	}

	if input.Type == domain.CouponTypePercent && input.Amount > 100 {
		return apperr.Validation("percent coupon amount cannot exceed 100")
	}

	if input.Limit < 0 {
		return apperr.Validation("coupon limit cannot be negative")
	}

	if input.ValidFrom != nil && input.ValidTo != nil && input.ValidTo.Before(*input.ValidFrom) {
		return apperr.Validation("coupon validity window is inverted")
	}

	return nil
}

// resolveCourses keeps only ids that exist. Unknown ids are silently
// dropped, matching how the admin UI treats stale selections.
func (s *couponService) resolveCourses(ctx context.Context, ids []uint) ([]domain.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	return s.courseRepo.FindByIDs(ctx, ids)
}

// diffCourseSets returns the ids to connect (wanted but not attached)
// and to disconnect (attached but no longer wanted).
func diffCourseSets(current, wanted []domain.Course) (connect, disconnect []uint) {
	currentSet := toIDSet(current)
	wantedSet := toIDSet(wanted)

	for id := range wantedSet {
		if _, ok := currentSet[id]; !ok {
			connect = append(connect, id)
		}
	}

	for id := range currentSet {
		if _, ok := wantedSet[id]; !ok {
			disconnect = append(disconnect, id)
		}
	}

	return connect, disconnect
}

func toIDSet(courses []domain.Course) map[uint]struct{} {
	set := make(map[uint]struct{}, len(courses))
	for _, c := range courses {
		set[c.ID] = struct{}{}
	}
	return set
}
