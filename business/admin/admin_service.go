package admin

import (
	"context"
	"fmt"
	"time"

	"learnDesk/domain"
	"learnDesk/pkg/apperr"
	"learnDesk/pkg/logger"
	"learnDesk/pkg/metrics"
	"learnDesk/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// AdminRepository contract interface
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	FindByID(ctx context.Context, id uint) (domain.Admin, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.Admin, error)
	FindAll(ctx context.Context, page, limit int) ([]domain.Admin, int64, error)
	Update(ctx context.Context, admin *domain.Admin) error
	Delete(ctx context.Context, id uint) error
}

// OTPRepository contract interface. The store keeps one hashed code per
// identifier and expires it on its own.
type OTPRepository interface {
	Save(ctx context.Context, identifier, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, identifier string) (string, error)
	Delete(ctx context.Context, identifier string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

// SMSRepository contract interface
type SMSRepository interface {
	SendSMS(toPhone, message string) error
}

const (
	otpDigits = 6
	otpTTL    = 5 * time.Minute

	subjectLoginCode = "Your login code"
	bodyLoginCode    = "Hi %v, your one-time login code is %v. It expires in %v minutes."
)

// errInvalidLogin is deliberately the same for every failure arm so a
// caller cannot probe which identifiers exist.
var errInvalidLogin = apperr.Unauthorized("invalid credentials")

var errInvalidCode = apperr.Unauthorized("invalid or expired code")

type adminService struct {
	adminRepo AdminRepository
	otpRepo   OTPRepository
	notifRepo NotificationRepository
	smsRepo   SMSRepository
	validate  *validator.Validate
	jwtSecret string
}

func NewAdminService(
	adminRepo AdminRepository,
	otpRepo OTPRepository,
	notifRepo NotificationRepository,
	smsRepo SMSRepository,
	validate *validator.Validate,
	jwtSecret string,
) *adminService {
	return &adminService{
		adminRepo: adminRepo,
		otpRepo:   otpRepo,
		notifRepo: notifRepo,
		smsRepo:   smsRepo,
		validate:  validate,
		jwtSecret: jwtSecret,
	}
}

// Login is the first transition of the login flow: password check,
// then a one-time code is generated, stored hashed with a TTL, and
// dispatched out of band. A new login replaces any earlier pending
// code for the same identifier.
func (s *adminService) Login(ctx context.Context, identifier, password string) error {
	admin, err := s.adminRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		logger.Warn("Login attempt for unknown identifier")
		return errInvalidLogin
	}

	if !admin.IsActive {
		return errInvalidLogin
	}

	if !utils.CheckPassword(password, admin.Password) {
		logger.Warn("Login attempt with wrong password", "admin_id", admin.ID)
		return errInvalidLogin
	}

	code, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return err
	}

	codeHash, err := utils.HashPassword(code)
	if err != nil {
		return err
	}

	if err := s.otpRepo.Save(ctx, identifier, codeHash, otpTTL); err != nil {
		logger.Error("Failed to store login code", err)
		return err
	}

	metrics.OTPIssued.Inc()

	message := fmt.Sprintf(bodyLoginCode, admin.FullName, code, int(otpTTL.Minutes()))
	if err := s.notifRepo.SendEmail(admin.FullName, admin.Email, subjectLoginCode, message); err != nil {
		logger.Warn("Failed to send login code email", err)
	}
	if err := s.smsRepo.SendSMS(admin.Phone, message); err != nil {
		logger.Warn("Failed to send login code sms", err)
	}

	return nil
}

// VerifyOTP is the second transition: the submitted code is compared
// by hash against the stored one. The stored code is deleted only on
// success, so a mistyped code does not burn a still-valid one. Expiry
// is the store's TTL; an expired code is simply absent.
func (s *adminService) VerifyOTP(ctx context.Context, identifier, code string) (string, domain.Admin, error) {
	codeHash, err := s.otpRepo.Get(ctx, identifier)
	if err != nil {
		return "", domain.Admin{}, errInvalidCode
	}

	if !utils.CheckPassword(code, codeHash) {
		logger.Warn("OTP verification failed")
		return "", domain.Admin{}, errInvalidCode
	}

	admin, err := s.adminRepo.FindByIdentifier(ctx, identifier)
	if err != nil || !admin.IsActive {
		return "", domain.Admin{}, errInvalidCode
	}

	if err := s.otpRepo.Delete(ctx, identifier); err != nil {
		logger.Warn("Failed to delete used login code", err)
	}

	adminID := fmt.Sprintf("%d", admin.ID)
	token, err := utils.GenerateJWT(s.jwtSecret, adminID, admin.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.Admin{}, err
	}

	return token, admin, nil
}

func (s *adminService) Create(ctx context.Context, admin *domain.Admin) (domain.Admin, error) {
	if err := s.validate.Var(admin.Email, "required,email"); err != nil {
		return domain.Admin{}, apperr.Validation("invalid email format")
	}

	if err := s.validate.Var(admin.Password, "required,min=8"); err != nil {
		return domain.Admin{}, apperr.Validation("password must be at least 8 characters")
	}

	if !validRole(admin.Role) {
		return domain.Admin{}, apperr.Validation("invalid admin role")
	}

	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return domain.Admin{}, err
	}

	newAdmin := domain.Admin{
		FullName: admin.FullName,
		Email:    admin.Email,
		Phone:    admin.Phone,
		Password: hash,
		Role:     admin.Role,
		IsActive: true,
	}

	if err := s.adminRepo.Create(ctx, &newAdmin); err != nil {
		logger.Error("Failed to create admin", err)
		return domain.Admin{}, err
	}

	newAdmin.Password = ""
	return newAdmin, nil
}

func (s *adminService) GetByID(ctx context.Context, id uint) (domain.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Admin{}, err
	}

	admin.Password = ""
	return admin, nil
}

func (s *adminService) GetAll(ctx context.Context, page, limit int) ([]domain.Admin, int64, error) {
	admins, total, err := s.adminRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	for i := range admins {
		admins[i].Password = ""
	}

	return admins, total, nil
}

func (s *adminService) Update(ctx context.Context, id uint, updateData *domain.Admin) (domain.Admin, error) {
	existing, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Admin not found for update", err)
		return domain.Admin{}, err
	}

	if updateData.FullName != "" {
		existing.FullName = updateData.FullName
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			return domain.Admin{}, apperr.Validation("invalid email format")
		}
		existing.Email = updateData.Email
	}

	if updateData.Phone != "" {
		existing.Phone = updateData.Phone
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=8"); err != nil {
			return domain.Admin{}, apperr.Validation("password must be at least 8 characters")
		}

		hash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			return domain.Admin{}, err
		}
		existing.Password = hash
	}

	if updateData.Role != "" {
		if !validRole(updateData.Role) {
			return domain.Admin{}, apperr.Validation("invalid admin role")
		}
		existing.Role = updateData.Role
	}

	if err := s.adminRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update admin", err)
		return domain.Admin{}, err
	}

	existing.Password = ""
	return existing, nil
}

func (s *adminService) Delete(ctx context.Context, id uint) error {
	if _, err := s.adminRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.adminRepo.Delete(ctx, id)
}

func validRole(role string) bool {
	switch role {
	case domain.AdminRoleSuper, domain.AdminRoleAdmin, domain.AdminRoleSupport:
		return true
	}
	return false
}
