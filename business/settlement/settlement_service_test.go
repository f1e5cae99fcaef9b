package settlement

import (
	"context"
	"strings"
	"testing"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
)

type fakeSettlementRepo struct {
	settlements map[uint]domain.Settlement
	nextID      uint

	totalSell int64
	count     int
}

func newFakeSettlementRepo() *fakeSettlementRepo {
	return &fakeSettlementRepo{
		settlements: make(map[uint]domain.Settlement),
		nextID:      1,
	}
}

func (f *fakeSettlementRepo) SumEnrollments(_ context.Context, _ uint, _, _ time.Time) (int64, int, error) {
	return f.totalSell, f.count, nil
}

func (f *fakeSettlementRepo) Create(_ context.Context, s *domain.Settlement) error {
	s.ID = f.nextID
	f.nextID++
	f.settlements[s.ID] = *s
	return nil
}

func (f *fakeSettlementRepo) FindByID(_ context.Context, id uint) (domain.Settlement, error) {
	s, ok := f.settlements[id]
	if !ok {
		return domain.Settlement{}, apperr.NotFound("settlement not found")
	}
	return s, nil
}

func (f *fakeSettlementRepo) FindAll(_ context.Context, _, _ int, _ uint, _ string) ([]domain.Settlement, int64, error) {
	out := make([]domain.Settlement, 0, len(f.settlements))
	for _, s := range f.settlements {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSettlementRepo) Update(_ context.Context, s *domain.Settlement) error {
	if _, ok := f.settlements[s.ID]; !ok {
		return apperr.NotFound("settlement not found")
	}
	f.settlements[s.ID] = *s
	return nil
}

type fakeTutorRepo struct {
	tutors map[uint]domain.Tutor
}

func (f *fakeTutorRepo) FindByID(_ context.Context, id uint) (domain.Tutor, error) {
	tu, ok := f.tutors[id]
	if !ok {
		return domain.Tutor{}, apperr.NotFound("tutor not found")
	}
	return tu, nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) SendSMS(toPhone, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toPhone+": "+message)
	return nil
}

func settlementWindow() (time.Time, time.Time) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func newSettlementTestService(repo *fakeSettlementRepo, sms *fakeSMS) (*settlementService, *fakeTutorRepo) {
	tutors := &fakeTutorRepo{tutors: map[uint]domain.Tutor{
		4: {ID: 4, FullName: "A Tutor", Phone: "+6281200000000", Profit: 20},
	}}
	svc := NewSettlementService(repo, tutors, sms)
	svc.now = func() time.Time { return time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC) }
	return svc, tutors
}

func TestCreateComputesPayoutFromProfitRate(t *testing.T) {
	repo := newFakeSettlementRepo()
	repo.totalSell = 1000000
	repo.count = 5
	svc, _ := newSettlementTestService(repo, &fakeSMS{})

	from, to := settlementWindow()
	s, err := svc.Create(context.Background(), 4, from, to)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if s.Amount != 200000 {
		t.Fatalf("expected payout 200000 at 20%%, got %d", s.Amount)
	}
	if s.TotalSell != 1000000 {
		t.Fatalf("expected total sell 1000000, got %d", s.TotalSell)
	}
	if s.TotalEnrollments != 5 {
		t.Fatalf("expected 5 enrollments, got %d", s.TotalEnrollments)
	}
	if s.ProfitPercent != 20 {
		t.Fatalf("expected profit snapshot 20, got %d", s.ProfitPercent)
	}
	if s.Status != domain.SettlementStatusPending {
		t.Fatalf("new settlement must be PENDING, got %q", s.Status)
	}
}

func TestProfitSnapshotSurvivesRateChange(t *testing.T) {
	repo := newFakeSettlementRepo()
	repo.totalSell = 1000000
	svc, tutors := newSettlementTestService(repo, &fakeSMS{})

	from, to := settlementWindow()
	s, err := svc.Create(context.Background(), 4, from, to)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// the tutor renegotiates after the settlement exists
	tu := tutors.tutors[4]
	tu.Profit = 50
	tutors.tutors[4] = tu

	got, err := svc.GetByID(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ProfitPercent != 20 || got.Amount != 200000 {
		t.Fatalf("settlement must keep its creation-time rate, got %d%% / %d", got.ProfitPercent, got.Amount)
	}
}

func TestCreateRejectsInvertedRangeAndUnknownTutor(t *testing.T) {
	repo := newFakeSettlementRepo()
	svc, _ := newSettlementTestService(repo, &fakeSMS{})

	from, to := settlementWindow()

	if _, err := svc.Create(context.Background(), 4, to, from); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("inverted range: expected validation error, got %v", err)
	}

	if _, err := svc.Create(context.Background(), 99, from, to); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown tutor: expected not found, got %v", err)
	}
}

func TestMarkPaidStampsTimeAndNotifies(t *testing.T) {
	repo := newFakeSettlementRepo()
	repo.totalSell = 1000000
	sms := &fakeSMS{}
	svc, _ := newSettlementTestService(repo, sms)

	from, to := settlementWindow()
	s, err := svc.Create(context.Background(), 4, from, to)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paid, err := svc.UpdateStatus(context.Background(), s.ID, domain.SettlementStatusPaid)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	if paid.Status != domain.SettlementStatusPaid {
		t.Fatalf("expected PAID, got %q", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Fatal("paid settlement must carry a payout time")
	}
	if len(sms.sent) != 1 || !strings.Contains(sms.sent[0], "200000") {
		t.Fatalf("expected payout SMS mentioning the amount, got %v", sms.sent)
	}
}

func TestMarkPaidSurvivesSMSFailure(t *testing.T) {
	repo := newFakeSettlementRepo()
	repo.totalSell = 1000000
	sms := &fakeSMS{err: apperr.Upstream("sms gateway unavailable")}
	svc, _ := newSettlementTestService(repo, sms)

	from, to := settlementWindow()
	s, err := svc.Create(context.Background(), 4, from, to)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paid, err := svc.UpdateStatus(context.Background(), s.ID, domain.SettlementStatusPaid)
	if err != nil {
		t.Fatalf("the send is best effort and must not fail the update: %v", err)
	}
	if paid.Status != domain.SettlementStatusPaid {
		t.Fatalf("expected PAID, got %q", paid.Status)
	}
}

func TestUpdateStatusValidatesAndRevertsToPending(t *testing.T) {
	repo := newFakeSettlementRepo()
	repo.totalSell = 500000
	svc, _ := newSettlementTestService(repo, &fakeSMS{})

	from, to := settlementWindow()
	s, err := svc.Create(context.Background(), 4, from, to)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), s.ID, "SETTLED"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("bad status: expected validation error, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), s.ID, domain.SettlementStatusPaid); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	reverted, err := svc.UpdateStatus(context.Background(), s.ID, domain.SettlementStatusPending)
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if reverted.PaidAt != nil {
		t.Fatal("reverting to PENDING must clear the payout time")
	}
}
