package enrollment

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
)

type fakeEnrollmentRepo struct {
	payments    map[uint]domain.Payment
	enrollments map[uint]domain.Enrollment
	classRooms  map[uint]domain.ClassRoom
	nextID      uint

	failCreateEnrollmentAt int
	enrollmentCreates      int
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		payments:    make(map[uint]domain.Payment),
		enrollments: make(map[uint]domain.Enrollment),
		classRooms:  make(map[uint]domain.ClassRoom),
		nextID:      1,
	}
}

func (f *fakeEnrollmentRepo) snapshot() (map[uint]domain.Payment, map[uint]domain.Enrollment, map[uint]domain.ClassRoom, uint) {
	p := make(map[uint]domain.Payment, len(f.payments))
	for k, v := range f.payments {
		p[k] = v
	}
	e := make(map[uint]domain.Enrollment, len(f.enrollments))
	for k, v := range f.enrollments {
		e[k] = v
	}
	c := make(map[uint]domain.ClassRoom, len(f.classRooms))
	for k, v := range f.classRooms {
		c[k] = v
	}
	return p, e, c, f.nextID
}

// WithinTx mimics transactional behavior: on error every write made by
// the callback is rolled back.
func (f *fakeEnrollmentRepo) WithinTx(_ context.Context, fn func(EnrollmentRepository) error) error {
	p, e, c, id := f.snapshot()
	if err := fn(f); err != nil {
		f.payments, f.enrollments, f.classRooms, f.nextID = p, e, c, id
		return err
	}
	return nil
}

func (f *fakeEnrollmentRepo) FindByID(_ context.Context, id uint) (domain.Enrollment, error) {
	enr, ok := f.enrollments[id]
	if !ok {
		return domain.Enrollment{}, apperr.NotFound("enrollment not found")
	}
	return enr, nil
}

func (f *fakeEnrollmentRepo) FindByUserAndCourses(_ context.Context, userID uint, courseIDs []uint) ([]domain.Enrollment, error) {
	wanted := make(map[uint]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = struct{}{}
	}

	var out []domain.Enrollment
	for _, enr := range f.enrollments {
		if enr.UserID != userID {
			continue
		}
		if _, ok := wanted[enr.CourseID]; ok {
			out = append(out, enr)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) FindAll(_ context.Context, _, _ int, _, _ uint) ([]domain.Enrollment, int64, error) {
	out := make([]domain.Enrollment, 0, len(f.enrollments))
	for _, enr := range f.enrollments {
		out = append(out, enr)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEnrollmentRepo) CreatePayment(_ context.Context, payment *domain.Payment) error {
	payment.ID = f.nextID
	f.nextID++
	f.payments[payment.ID] = *payment
	return nil
}

func (f *fakeEnrollmentRepo) CreateEnrollment(_ context.Context, enr *domain.Enrollment) error {
	f.enrollmentCreates++
	if f.failCreateEnrollmentAt > 0 && f.enrollmentCreates == f.failCreateEnrollmentAt {
		return errors.New("enrollment write failed")
	}
	enr.ID = f.nextID
	f.nextID++
	f.enrollments[enr.ID] = *enr
	return nil
}

func (f *fakeEnrollmentRepo) CreateClassRoom(_ context.Context, room *domain.ClassRoom) error {
	room.ID = f.nextID
	f.nextID++
	f.classRooms[room.ID] = *room
	return nil
}

func (f *fakeEnrollmentRepo) DeleteEnrollment(_ context.Context, id uint) error {
	delete(f.enrollments, id)
	for roomID, room := range f.classRooms {
		if room.EnrollmentID == id {
			delete(f.classRooms, roomID)
		}
	}
	return nil
}

func (f *fakeEnrollmentRepo) CountByPayment(_ context.Context, paymentID uint) (int64, error) {
	var n int64
	for _, enr := range f.enrollments {
		if enr.PaymentID != nil && *enr.PaymentID == paymentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollmentRepo) DeletePayment(_ context.Context, paymentID uint) error {
	delete(f.payments, paymentID)
	return nil
}

func (f *fakeEnrollmentRepo) FindPaymentByID(_ context.Context, id uint) (domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return domain.Payment{}, apperr.NotFound("payment not found")
	}
	return p, nil
}

func (f *fakeEnrollmentRepo) FindAllPayments(_ context.Context, _, _ int, _ uint) ([]domain.Payment, int64, error) {
	out := make([]domain.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

type fakeCoupons struct {
	coupon      domain.Coupon
	validateErr error
	redeemErr   error
	redeemed    []uint
}

func (f *fakeCoupons) Validate(_ context.Context, _ string, _ []uint, _ time.Time) (domain.Coupon, error) {
	if f.validateErr != nil {
		return domain.Coupon{}, f.validateErr
	}
	return f.coupon, nil
}

func (f *fakeCoupons) Redeem(_ context.Context, id uint) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	f.redeemed = append(f.redeemed, id)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *fakeEnrollmentRepo, coupons *fakeCoupons) *enrollmentService {
	users := &fakeUserRepo{users: map[uint]domain.User{7: {ID: 7, FullName: "Test User"}}}
	svc := NewEnrollmentService(repo, users, coupons)
	svc.now = fixedNow
	return svc
}

func TestEnrollCreatesPaymentEnrollmentsAndClassRooms(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := newTestService(repo, &fakeCoupons{})

	payment, err := svc.Enroll(context.Background(), EnrollInput{
		UserID: 7,
		Courses: []CourseSelection{
			{CourseID: 1, Price: 100000, OriginalPrice: 150000},
			{CourseID: 2, Price: 200000, OriginalPrice: 200000},
		},
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if payment.RefID == "" {
		t.Fatal("payment must carry a reference id")
	}
	if payment.Method != domain.PaymentMethodAdmin {
		t.Fatalf("expected admin payment method, got %q", payment.Method)
	}
	if payment.Total != 300000 {
		t.Fatalf("expected total 300000, got %d", payment.Total)
	}
	if payment.PaidAt == nil || !payment.PaidAt.Equal(fixedNow()) {
		t.Fatalf("completed payment must be stamped paid at %v, got %v", fixedNow(), payment.PaidAt)
	}

	if len(repo.enrollments) != 2 {
		t.Fatalf("expected 2 enrollments, got %d", len(repo.enrollments))
	}
	if len(repo.classRooms) != 2 {
		t.Fatalf("expected 2 classrooms, got %d", len(repo.classRooms))
	}
	for _, enr := range repo.enrollments {
		if enr.PaymentID == nil || *enr.PaymentID != payment.ID {
			t.Fatal("every enrollment must point at the created payment")
		}
	}
}

func TestEnrollRejectsDuplicateCourseAtomically(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := newTestService(repo, &fakeCoupons{})

	if _, err := svc.Enroll(context.Background(), EnrollInput{
		UserID:  7,
		Courses: []CourseSelection{{CourseID: 1, Price: 100000}},
	}); err != nil {
		t.Fatalf("first enroll: %v", err)
	}

	paymentsBefore := len(repo.payments)
	enrollmentsBefore := len(repo.enrollments)

	_, err := svc.Enroll(context.Background(), EnrollInput{
		UserID: 7,
		Courses: []CourseSelection{
			{CourseID: 1, Price: 100000},
			{CourseID: 2, Price: 200000},
		},
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// nothing from the rejected batch may survive, not even the new course
	if len(repo.payments) != paymentsBefore {
		t.Fatalf("payment leaked from rejected batch")
	}
	if len(repo.enrollments) != enrollmentsBefore {
		t.Fatalf("enrollment leaked from rejected batch")
	}
}

func TestEnrollRollsBackOnMidBatchFailure(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	repo.failCreateEnrollmentAt = 2
	svc := newTestService(repo, &fakeCoupons{})

	_, err := svc.Enroll(context.Background(), EnrollInput{
		UserID: 7,
		Courses: []CourseSelection{
			{CourseID: 1, Price: 100000},
			{CourseID: 2, Price: 200000},
		},
	})
	if err == nil {
		t.Fatal("expected enrollment failure")
	}

	if len(repo.payments) != 0 || len(repo.enrollments) != 0 || len(repo.classRooms) != 0 {
		t.Fatal("partial writes must roll back")
	}
}

func TestEnrollAppliesAndRedeemsCoupon(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	coupons := &fakeCoupons{coupon: domain.Coupon{ID: 3, Type: domain.CouponTypePercent, Amount: 10}}
	svc := newTestService(repo, coupons)

	payment, err := svc.Enroll(context.Background(), EnrollInput{
		UserID:       7,
		Courses:      []CourseSelection{{CourseID: 1, Price: 100000}},
		DiscountCode: "SAVE10",
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if payment.DiscountAmount != 10000 {
		t.Fatalf("expected discount 10000, got %d", payment.DiscountAmount)
	}
	if payment.Total != 90000 {
		t.Fatalf("expected total 90000, got %d", payment.Total)
	}
	if len(coupons.redeemed) != 1 || coupons.redeemed[0] != 3 {
		t.Fatalf("expected coupon 3 redeemed once, got %v", coupons.redeemed)
	}
}

func TestEnrollFailedRedeemRollsBackBatch(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	coupons := &fakeCoupons{
		coupon:    domain.Coupon{ID: 3, Type: domain.CouponTypeFixed, Amount: 5000},
		redeemErr: apperr.Conflict("coupon not found or usage limit reached"),
	}
	svc := newTestService(repo, coupons)

	_, err := svc.Enroll(context.Background(), EnrollInput{
		UserID:       7,
		Courses:      []CourseSelection{{CourseID: 1, Price: 100000}},
		DiscountCode: "ONCE",
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if len(repo.payments) != 0 || len(repo.enrollments) != 0 {
		t.Fatal("exhausted coupon must fail the whole batch")
	}
}

func TestDeleteLastEnrollmentRemovesPayment(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := newTestService(repo, &fakeCoupons{})

	payment, err := svc.Enroll(context.Background(), EnrollInput{
		UserID: 7,
		Courses: []CourseSelection{
			{CourseID: 1, Price: 100000},
			{CourseID: 2, Price: 200000},
		},
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	var ids []uint
	for id := range repo.enrollments {
		ids = append(ids, id)
	}

	if err := svc.Delete(context.Background(), ids[0]); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if _, ok := repo.payments[payment.ID]; !ok {
		t.Fatal("payment must survive while an enrollment remains")
	}

	if err := svc.Delete(context.Background(), ids[1]); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, ok := repo.payments[payment.ID]; ok {
		t.Fatal("payment must be removed with its last enrollment")
	}
	if len(repo.classRooms) != 0 {
		t.Fatal("classrooms must be removed with their enrollments")
	}
}

func TestEnrollRequiresCoursesAndKnownUser(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := newTestService(repo, &fakeCoupons{})

	if _, err := svc.Enroll(context.Background(), EnrollInput{UserID: 7}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("empty courses: expected validation error, got %v", err)
	}

	_, err := svc.Enroll(context.Background(), EnrollInput{
		UserID:  99,
		Courses: []CourseSelection{{CourseID: 1, Price: 100000}},
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown user: expected not found, got %v", err)
	}
}
