package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnDesk/app/echo-server/router"
	adminService "learnDesk/business/admin"
	"learnDesk/business/category"
	"learnDesk/business/coupon"
	"learnDesk/business/course"
	"learnDesk/business/enrollment"
	"learnDesk/business/post"
	"learnDesk/business/settlement"
	"learnDesk/business/ticket"
	"learnDesk/business/tutor"
	userService "learnDesk/business/user"
	"learnDesk/business/wallet"
	"learnDesk/domain"
	"learnDesk/internal/middleware"
	"learnDesk/internal/repository/notification"
	psqlRepo "learnDesk/internal/repository/postgres"
	redisRepo "learnDesk/internal/repository/redis"
	"learnDesk/internal/repository/sms"
	"learnDesk/internal/rest"
	"learnDesk/pkg/config"
	"learnDesk/pkg/database"
	redisdb "learnDesk/pkg/database/redis"
	"learnDesk/pkg/logger"
	"learnDesk/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting LearnDesk admin API", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	smsGateway := sms.NewSMSRepository(
		sms.SMSConfig{
			BaseURL:    cfg.SMS.SMSBaseUrl,
			APIKey:     cfg.SMS.SMSAPIKey,
			SenderLine: cfg.SMS.SMSSenderLine,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	adminRepo := psqlRepo.NewAdminRepository(db)
	userRepo := psqlRepo.NewUserRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	courseRepo := psqlRepo.NewCourseRepository(db)
	tutorRepo := psqlRepo.NewTutorRepository(db)
	couponRepo := psqlRepo.NewCouponRepository(db)
	enrollmentRepo := psqlRepo.NewEnrollmentRepository(db)
	walletRepo := psqlRepo.NewWalletRepository(db)
	settlementRepo := psqlRepo.NewSettlementRepository(db)
	postRepo := psqlRepo.NewPostRepository(db)
	ticketRepo := psqlRepo.NewTicketRepository(db)
	otpRepo := redisRepo.NewOTPRepository(redisClient)

	// Init service
	admins := adminService.NewAdminService(adminRepo, otpRepo, mailjetEmail, smsGateway, validate, cfg.JWT.SecretKey)
	users := userService.NewUserService(userRepo, validate)
	categories := category.NewCategoryService(categoryRepo)
	courses := course.NewCourseService(courseRepo, categoryRepo, tutorRepo, validate)
	tutors := tutor.NewTutorService(tutorRepo, validate)
	coupons := coupon.NewCouponService(couponRepo, courseRepo, validate)
	enrollments := enrollment.NewEnrollmentService(enrollmentRepo, userRepo, coupons)
	wallets := wallet.NewWalletService(walletRepo, userRepo)
	settlements := settlement.NewSettlementService(settlementRepo, tutorRepo, smsGateway)
	posts := post.NewPostService(postRepo)
	tickets := ticket.NewTicketService(ticketRepo, userRepo)

	// Init handler
	authHandler := rest.NewAuthHandler(admins)
	userHandler := rest.NewUserHandler(users)
	categoryHandler := rest.NewCategoryHandler(categories)
	courseHandler := rest.NewCourseHandler(courses)
	tutorHandler := rest.NewTutorHandler(tutors)
	couponHandler := rest.NewCouponHandler(coupons)
	enrollmentHandler := rest.NewEnrollmentHandler(enrollments)
	walletHandler := rest.NewWalletHandler(wallets)
	settlementHandler := rest.NewSettlementHandler(settlements)
	postHandler := rest.NewPostHandler(posts)
	ticketHandler := rest.NewTicketHandler(tickets)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Metrics())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	superOnly := middleware.RequireRole(domain.AdminRoleSuper)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler, authRequired, superOnly)
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupCatalogRoutes(api, categoryHandler, courseHandler, tutorHandler, authRequired)
	router.SetupCouponRoutes(api, couponHandler, authRequired)
	router.SetupEnrollmentRoutes(api, enrollmentHandler, authRequired)
	router.SetupWalletRoutes(api, walletHandler, authRequired)
	router.SetupSettlementRoutes(api, settlementHandler, authRequired)
	router.SetupPostRoutes(api, postHandler, authRequired)
	router.SetupTicketRoutes(api, ticketHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
