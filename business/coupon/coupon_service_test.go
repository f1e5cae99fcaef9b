package coupon

import (
	"context"
	"sort"
	"testing"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

type fakeCouponRepo struct {
	coupons   map[uint]domain.Coupon
	byCode    map[string]uint
	created   []domain.Coupon
	deltas    []domain.CouponScopeDeltas
	redeemed  []uint
	nextID    uint
	redeemErr error
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{
		coupons: make(map[uint]domain.Coupon),
		byCode:  make(map[string]uint),
		nextID:  1,
	}
}

func (f *fakeCouponRepo) Create(_ context.Context, c *domain.Coupon) error {
	if _, ok := f.byCode[c.Code]; ok {
		return apperr.Conflict("coupon code already exists")
	}
	c.ID = f.nextID
	f.nextID++
	f.coupons[c.ID] = *c
	f.byCode[c.Code] = c.ID
	f.created = append(f.created, *c)
	return nil
}

func (f *fakeCouponRepo) FindByID(_ context.Context, id uint) (domain.Coupon, error) {
	c, ok := f.coupons[id]
	if !ok {
		return domain.Coupon{}, apperr.NotFound("coupon not found")
	}
	return c, nil
}

func (f *fakeCouponRepo) FindByCode(_ context.Context, code string) (domain.Coupon, error) {
	id, ok := f.byCode[code]
	if !ok {
		return domain.Coupon{}, apperr.NotFound("coupon not found")
	}
	return f.coupons[id], nil
}

func (f *fakeCouponRepo) FindAll(_ context.Context, _, _ int) ([]domain.Coupon, int64, error) {
	out := make([]domain.Coupon, 0, len(f.coupons))
	for _, c := range f.coupons {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCouponRepo) Update(_ context.Context, c *domain.Coupon, deltas domain.CouponScopeDeltas) error {
	existing, ok := f.coupons[c.ID]
	if !ok {
		return apperr.NotFound("coupon not found")
	}
	existing.Code = c.Code
	existing.Type = c.Type
	existing.Amount = c.Amount
	existing.Limit = c.Limit
	existing.ValidFrom = c.ValidFrom
	existing.ValidTo = c.ValidTo
	f.coupons[c.ID] = existing
	f.deltas = append(f.deltas, deltas)
	return nil
}

func (f *fakeCouponRepo) Delete(_ context.Context, id uint) error {
	c, ok := f.coupons[id]
	if !ok {
		return apperr.NotFound("coupon not found")
	}
	delete(f.byCode, c.Code)
	delete(f.coupons, id)
	return nil
}

func (f *fakeCouponRepo) Redeem(_ context.Context, id uint) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	c, ok := f.coupons[id]
	if !ok {
		return apperr.Conflict("coupon not found or usage limit reached")
	}
	if c.Limit > 0 && c.Used >= c.Limit {
		return apperr.Conflict("coupon not found or usage limit reached")
	}
	c.Used++
	f.coupons[id] = c
	f.redeemed = append(f.redeemed, id)
	return nil
}

type fakeCourseRepo struct {
	existing map[uint]domain.Course
}

func (f *fakeCourseRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.Course, error) {
	var out []domain.Course
	for _, id := range ids {
		if c, ok := f.existing[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func courseSet(ids ...uint) map[uint]domain.Course {
	m := make(map[uint]domain.Course, len(ids))
	for _, id := range ids {
		m[id] = domain.Course{ID: id}
	}
	return m
}

func TestCreateDropsUnknownCourseIDs(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet(1, 2)}, validator.New())

	created, err := svc.Create(context.Background(), CouponInput{
		Code:          "WELCOME10",
		Type:          domain.CouponTypePercent,
		Amount:        10,
		CourseInclude: []uint{1, 2, 99},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(created.CourseInclude) != 2 {
		t.Fatalf("expected 2 scoped courses, got %d", len(created.CourseInclude))
	}
}

func TestCreateDuplicateCodeConflicts(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet()}, validator.New())

	input := CouponInput{Code: "WELCOME10", Type: domain.CouponTypeFixed, Amount: 5000}

	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(context.Background(), input)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("duplicate code must not leave a second row, got %d", len(repo.created))
	}
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet()}, validator.New())

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	cases := []struct {
		name  string
		input CouponInput
	}{
		{"short code", CouponInput{Code: "ab", Type: domain.CouponTypeFixed, Amount: 100}},
		{"bad type", CouponInput{Code: "SAVE", Type: "HALF", Amount: 100}},
		{"zero amount", CouponInput{Code: "SAVE", Type: domain.CouponTypeFixed, Amount: 0}},
		{"percent over 100", CouponInput{Code: "SAVE", Type: domain.CouponTypePercent, Amount: 150}},
		{"negative limit", CouponInput{Code: "SAVE", Type: domain.CouponTypeFixed, Amount: 100, Limit: -1}},
		{"inverted window", CouponInput{Code: "SAVE", Type: domain.CouponTypeFixed, Amount: 100, ValidFrom: &from, ValidTo: &to}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if len(repo.created) != 0 {
		t.Fatalf("invalid input must not reach the repository")
	}
}

func TestValidateWindowAndLimit(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet(1)}, validator.New())

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	repo.coupons[1] = domain.Coupon{
		ID: 1, Code: "JUNE", Type: domain.CouponTypeFixed, Amount: 500,
		Limit: 2, Used: 0, ValidFrom: &from, ValidTo: &to,
	}
	repo.byCode["JUNE"] = 1

	if _, err := svc.Validate(context.Background(), "JUNE", []uint{1}, from.AddDate(0, 0, -1)); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("before window: expected validation error, got %v", err)
	}

	if _, err := svc.Validate(context.Background(), "JUNE", []uint{1}, to.AddDate(0, 0, 1)); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("after window: expected validation error, got %v", err)
	}

	if _, err := svc.Validate(context.Background(), "JUNE", []uint{1}, from.AddDate(0, 0, 10)); err != nil {
		t.Fatalf("inside window: %v", err)
	}

	used := repo.coupons[1]
	used.Used = 2
	repo.coupons[1] = used

	if _, err := svc.Validate(context.Background(), "JUNE", []uint{1}, from.AddDate(0, 0, 10)); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("exhausted: expected validation error, got %v", err)
	}
}

func TestValidateCourseScoping(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet(1, 2, 3)}, validator.New())

	repo.coupons[1] = domain.Coupon{
		ID: 1, Code: "SCOPED", Type: domain.CouponTypeFixed, Amount: 500,
		CourseInclude: []domain.Course{{ID: 1}, {ID: 2}},
	}
	repo.byCode["SCOPED"] = 1

	repo.coupons[2] = domain.Coupon{
		ID: 2, Code: "NOTTHREE", Type: domain.CouponTypeFixed, Amount: 500,
		CourseExclude: []domain.Course{{ID: 3}},
	}
	repo.byCode["NOTTHREE"] = 2

	now := time.Now()

	if _, err := svc.Validate(context.Background(), "SCOPED", []uint{1, 2}, now); err != nil {
		t.Fatalf("all included: %v", err)
	}
	if _, err := svc.Validate(context.Background(), "SCOPED", []uint{1, 3}, now); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("outside include set: expected validation error, got %v", err)
	}

	if _, err := svc.Validate(context.Background(), "NOTTHREE", []uint{1, 2}, now); err != nil {
		t.Fatalf("none excluded: %v", err)
	}
	if _, err := svc.Validate(context.Background(), "NOTTHREE", []uint{2, 3}, now); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("excluded course present: expected validation error, got %v", err)
	}
}

func TestValidateUnknownCode(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet()}, validator.New())

	_, err := svc.Validate(context.Background(), "NOPE", []uint{1}, time.Now())
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateWritesOnlyScopeDeltas(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet(1, 2, 3, 4)}, validator.New())

	repo.coupons[1] = domain.Coupon{
		ID: 1, Code: "SCOPED", Type: domain.CouponTypeFixed, Amount: 500,
		CourseInclude: []domain.Course{{ID: 1}, {ID: 2}},
	}
	repo.byCode["SCOPED"] = 1

	_, err := svc.Update(context.Background(), 1, CouponInput{
		Code:          "SCOPED",
		Type:          domain.CouponTypeFixed,
		Amount:        500,
		CourseInclude: []uint{2, 3},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(repo.deltas) != 1 {
		t.Fatalf("expected one delta write, got %d", len(repo.deltas))
	}

	d := repo.deltas[0]
	if len(d.IncludeConnect) != 1 || d.IncludeConnect[0] != 3 {
		t.Fatalf("expected connect [3], got %v", d.IncludeConnect)
	}
	if len(d.IncludeDisconnect) != 1 || d.IncludeDisconnect[0] != 1 {
		t.Fatalf("expected disconnect [1], got %v", d.IncludeDisconnect)
	}
}

func TestDiffCourseSets(t *testing.T) {
	current := []domain.Course{{ID: 1}, {ID: 2}, {ID: 3}}
	wanted := []domain.Course{{ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}

	connect, disconnect := diffCourseSets(current, wanted)
	sort.Slice(connect, func(i, j int) bool { return connect[i] < connect[j] })

	if len(connect) != 2 || connect[0] != 4 || connect[1] != 5 {
		t.Fatalf("expected connect [4 5], got %v", connect)
	}
	if len(disconnect) != 1 || disconnect[0] != 1 {
		t.Fatalf("expected disconnect [1], got %v", disconnect)
	}
}

func TestRedeemStopsAtLimit(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, &fakeCourseRepo{existing: courseSet()}, validator.New())

	repo.coupons[1] = domain.Coupon{ID: 1, Code: "ONCE", Type: domain.CouponTypeFixed, Amount: 100, Limit: 1}
	repo.byCode["ONCE"] = 1

	if err := svc.Redeem(context.Background(), 1); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if err := svc.Redeem(context.Background(), 1); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("second redeem: expected conflict, got %v", err)
	}
}

func TestCouponDiscount(t *testing.T) {
	percent := domain.Coupon{Type: domain.CouponTypePercent, Amount: 25}
	if got := percent.Discount(1000); got != 250 {
		t.Fatalf("percent discount: expected 250, got %d", got)
	}

	fixed := domain.Coupon{Type: domain.CouponTypeFixed, Amount: 300}
	if got := fixed.Discount(1000); got != 300 {
		t.Fatalf("fixed discount: expected 300, got %d", got)
	}

	// fixed discount never exceeds the total
	if got := fixed.Discount(200); got != 200 {
		t.Fatalf("capped discount: expected 200, got %d", got)
	}
}
