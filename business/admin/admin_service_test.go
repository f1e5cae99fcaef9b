package admin

import (
	"context"
	"strings"
	"testing"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type fakeAdminRepo struct {
	admins map[uint]domain.Admin
	nextID uint
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[uint]domain.Admin), nextID: 1}
}

func (f *fakeAdminRepo) Create(_ context.Context, a *domain.Admin) error {
	for _, existing := range f.admins {
		if existing.Email == a.Email {
			return apperr.Conflict("admin email already exists")
		}
	}
	a.ID = f.nextID
	f.nextID++
	f.admins[a.ID] = *a
	return nil
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id uint) (domain.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return domain.Admin{}, apperr.NotFound("admin not found")
	}
	return a, nil
}

func (f *fakeAdminRepo) FindByIdentifier(_ context.Context, identifier string) (domain.Admin, error) {
	for _, a := range f.admins {
		if a.Email == identifier || a.Phone == identifier {
			return a, nil
		}
	}
	return domain.Admin{}, apperr.NotFound("admin not found")
}

func (f *fakeAdminRepo) FindAll(_ context.Context, _, _ int) ([]domain.Admin, int64, error) {
	out := make([]domain.Admin, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAdminRepo) Update(_ context.Context, a *domain.Admin) error {
	if _, ok := f.admins[a.ID]; !ok {
		return apperr.NotFound("admin not found")
	}
	f.admins[a.ID] = *a
	return nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.admins[id]; !ok {
		return apperr.NotFound("admin not found")
	}
	delete(f.admins, id)
	return nil
}

type fakeOTPStore struct {
	codes map[string]string
	ttls  map[string]time.Duration
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeOTPStore) Save(_ context.Context, identifier, codeHash string, ttl time.Duration) error {
	f.codes[identifier] = codeHash
	f.ttls[identifier] = ttl
	return nil
}

func (f *fakeOTPStore) Get(_ context.Context, identifier string) (string, error) {
	hash, ok := f.codes[identifier]
	if !ok {
		return "", apperr.NotFound("code not found or expired")
	}
	return hash, nil
}

func (f *fakeOTPStore) Delete(_ context.Context, identifier string) error {
	delete(f.codes, identifier)
	return nil
}

type fakeNotifier struct {
	emails []string
	err    error
}

func (f *fakeNotifier) SendEmail(_, toEmail, _, message string) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, toEmail+": "+message)
	return nil
}

type fakeAdminSMS struct {
	sent []string
}

func (f *fakeAdminSMS) SendSMS(toPhone, message string) error {
	f.sent = append(f.sent, toPhone+": "+message)
	return nil
}

const testAdminPassword = "correct-horse-battery"

func seedAdmin(t *testing.T, repo *fakeAdminRepo, active bool) domain.Admin {
	t.Helper()

	hash, err := utils.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	a := domain.Admin{
		FullName: "Desk Admin",
		Email:    "desk@example.com",
		Phone:    "+6281200000001",
		Password: hash,
		Role:     domain.AdminRoleAdmin,
		IsActive: active,
	}
	if err := repo.Create(context.Background(), &a); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return a
}

func newAdminTestService(repo *fakeAdminRepo, otp *fakeOTPStore, notif *fakeNotifier, sms *fakeAdminSMS) *adminService {
	return NewAdminService(repo, otp, notif, sms, validator.New(), "test-secret")
}

func TestLoginStoresHashedCodeAndDispatches(t *testing.T) {
	repo := newFakeAdminRepo()
	otp := newFakeOTPStore()
	notif := &fakeNotifier{}
	sms := &fakeAdminSMS{}
	svc := newAdminTestService(repo, otp, notif, sms)
	seedAdmin(t, repo, true)

	if err := svc.Login(context.Background(), "desk@example.com", testAdminPassword); err != nil {
		t.Fatalf("login: %v", err)
	}

	hash, ok := otp.codes["desk@example.com"]
	if !ok {
		t.Fatal("login must store a code for the identifier")
	}
	if strings.HasPrefix(hash, "$2") == false {
		t.Fatal("stored code must be hashed, not plaintext")
	}
	if otp.ttls["desk@example.com"] != otpTTL {
		t.Fatalf("expected ttl %v, got %v", otpTTL, otp.ttls["desk@example.com"])
	}
	if len(notif.emails) != 1 || len(sms.sent) != 1 {
		t.Fatalf("expected one email and one sms, got %d / %d", len(notif.emails), len(sms.sent))
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeAdminRepo()
	otp := newFakeOTPStore()
	svc := newAdminTestService(repo, otp, &fakeNotifier{}, &fakeAdminSMS{})
	seedAdmin(t, repo, true)

	unknownErr := svc.Login(context.Background(), "ghost@example.com", testAdminPassword)
	wrongErr := svc.Login(context.Background(), "desk@example.com", "wrong-password")

	if unknownErr == nil || wrongErr == nil {
		t.Fatal("both attempts must fail")
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("error messages must not reveal which part failed: %q vs %q", unknownErr, wrongErr)
	}
	if !apperr.IsKind(unknownErr, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", unknownErr)
	}
	if len(otp.codes) != 0 {
		t.Fatal("failed login must not issue a code")
	}
}

func TestLoginRejectsInactiveAdmin(t *testing.T) {
	repo := newFakeAdminRepo()
	otp := newFakeOTPStore()
	svc := newAdminTestService(repo, otp, &fakeNotifier{}, &fakeAdminSMS{})
	seedAdmin(t, repo, false)

	err := svc.Login(context.Background(), "desk@example.com", testAdminPassword)
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerifyOTPSuccessDeletesCode(t *testing.T) {
	repo := newFakeAdminRepo()
	otp := newFakeOTPStore()
	svc := newAdminTestService(repo, otp, &fakeNotifier{}, &fakeAdminSMS{})
	seeded := seedAdmin(t, repo, true)

	hash, err := utils.HashPassword("482913")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	otp.codes["desk@example.com"] = hash

	token, admin, err := svc.VerifyOTP(context.Background(), "desk@example.com", "482913")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if token == "" {
		t.Fatal("verification must return a token")
	}
	if admin.ID != seeded.ID {
		t.Fatalf("expected admin %d, got %d", seeded.ID, admin.ID)
	}
	if _, ok := otp.codes["desk@example.com"]; ok {
		t.Fatal("a used code must be deleted")
	}

	claims, err := utils.ParseJWT("test-secret", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != domain.AdminRoleAdmin {
		t.Fatalf("expected role in claims, got %q", claims.Role)
	}
}

func TestVerifyOTPWrongCodeKeepsStoredCode(t *testing.T) {
	repo := newFakeAdminRepo()
	otp := newFakeOTPStore()
	svc := newAdminTestService(repo, otp, &fakeNotifier{}, &fakeAdminSMS{})
	seedAdmin(t, repo, true)

	hash, err := utils.HashPassword("482913")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	otp.codes["desk@example.com"] = hash

	_, _, verifyErr := svc.VerifyOTP(context.Background(), "desk@example.com", "000000")
	if !apperr.IsKind(verifyErr, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", verifyErr)
	}

	// a mistyped code must not burn the real one
	if _, ok := otp.codes["desk@example.com"]; !ok {
		t.Fatal("stored code must survive a failed attempt")
	}

	if _, _, err := svc.VerifyOTP(context.Background(), "desk@example.com", "482913"); err != nil {
		t.Fatalf("correct code after failed attempt: %v", err)
	}
}

func TestVerifyOTPExpiredOrMissingCode(t *testing.T) {
	repo := newFakeAdminRepo()
	otp := newFakeOTPStore()
	svc := newAdminTestService(repo, otp, &fakeNotifier{}, &fakeAdminSMS{})
	seedAdmin(t, repo, true)

	_, _, err := svc.VerifyOTP(context.Background(), "desk@example.com", "482913")
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCreateAdminHashesPasswordAndValidatesRole(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newAdminTestService(repo, newFakeOTPStore(), &fakeNotifier{}, &fakeAdminSMS{})

	created, err := svc.Create(context.Background(), &domain.Admin{
		FullName: "Support Agent",
		Email:    "support@example.com",
		Phone:    "+6281200000002",
		Password: "a-long-password",
		Role:     domain.AdminRoleSupport,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Password != "" {
		t.Fatal("response must not echo the password")
	}

	stored := repo.admins[created.ID]
	if stored.Password == "a-long-password" {
		t.Fatal("stored password must be hashed")
	}
	if !utils.CheckPassword("a-long-password", stored.Password) {
		t.Fatal("stored hash must verify against the original password")
	}
	if !stored.IsActive {
		t.Fatal("new admins start active")
	}

	_, err = svc.Create(context.Background(), &domain.Admin{
		FullName: "Bad Role",
		Email:    "bad@example.com",
		Phone:    "+6281200000003",
		Password: "a-long-password",
		Role:     "ROOT",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
