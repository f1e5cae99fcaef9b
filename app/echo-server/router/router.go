package router

import (
	"learnDesk/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc, superOnly echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/login", handler.Login)
	auth.POST("/verify-otp", handler.VerifyOTP)

	admins := api.Group("/admins", authRequired, superOnly)
	admins.POST("", handler.CreateAdmin)
	admins.GET("", handler.GetAllAdmins)
	admins.GET("/:id", handler.GetAdminByID)
	admins.PUT("/:id", handler.UpdateAdmin)
	admins.DELETE("/:id", handler.DeleteAdmin)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users", authRequired)

	users.POST("", handler.CreateUser)
	users.GET("", handler.GetAllUsers)
	users.GET("/:id", handler.GetUserByID)
	users.PUT("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)
}

func SetupCatalogRoutes(api *echo.Group, categoryHandler *rest.CategoryHandler, courseHandler *rest.CourseHandler, tutorHandler *rest.TutorHandler, authRequired echo.MiddlewareFunc) {
	categories := api.Group("/categories", authRequired)
	categories.GET("", categoryHandler.GetAllCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	courses := api.Group("/courses", authRequired)
	courses.GET("", courseHandler.GetAllCourses)
	courses.GET("/:id", courseHandler.GetCourseByID)
	courses.POST("", courseHandler.CreateCourse)
	courses.PUT("/:id", courseHandler.UpdateCourse)
	courses.DELETE("/:id", courseHandler.DeleteCourse)

	tutors := api.Group("/tutors", authRequired)
	tutors.GET("", tutorHandler.GetAllTutors)
	tutors.GET("/:id", tutorHandler.GetTutorByID)
	tutors.POST("", tutorHandler.CreateTutor)
	tutors.PUT("/:id", tutorHandler.UpdateTutor)
}

func SetupCouponRoutes(api *echo.Group, handler *rest.CouponHandler, authRequired echo.MiddlewareFunc) {
	coupons := api.Group("/coupons", authRequired)

	coupons.POST("", handler.CreateCoupon)
	coupons.GET("", handler.GetAllCoupons)
	coupons.GET("/:id", handler.GetCouponByID)
	coupons.PUT("/:id", handler.UpdateCoupon)
	coupons.DELETE("/:id", handler.DeleteCoupon)
	coupons.POST("/check", handler.CheckCoupon)
}

func SetupEnrollmentRoutes(api *echo.Group, handler *rest.EnrollmentHandler, authRequired echo.MiddlewareFunc) {
	enrollments := api.Group("/enrollments", authRequired)
	enrollments.POST("", handler.Enroll)
	enrollments.GET("", handler.GetAllEnrollments)
	enrollments.GET("/:id", handler.GetEnrollmentByID)
	enrollments.DELETE("/:id", handler.DeleteEnrollment)

	payments := api.Group("/payments", authRequired)
	payments.GET("", handler.GetAllPayments)
	payments.GET("/:id", handler.GetPaymentByID)
}

func SetupWalletRoutes(api *echo.Group, handler *rest.WalletHandler, authRequired echo.MiddlewareFunc) {
	wallets := api.Group("/wallets", authRequired)

	wallets.POST("/adjust", handler.AdjustWallet)
	wallets.GET("/:user_id", handler.GetWallet)
}

func SetupSettlementRoutes(api *echo.Group, handler *rest.SettlementHandler, authRequired echo.MiddlewareFunc) {
	settlements := api.Group("/settlements", authRequired)

	settlements.POST("", handler.CreateSettlement)
	settlements.GET("", handler.GetAllSettlements)
	settlements.GET("/:id", handler.GetSettlementByID)
	settlements.PUT("/:id/status", handler.UpdateSettlementStatus)
}

func SetupPostRoutes(api *echo.Group, handler *rest.PostHandler, authRequired echo.MiddlewareFunc) {
	posts := api.Group("/posts", authRequired)

	posts.POST("", handler.CreatePost)
	posts.GET("", handler.GetAllPosts)
	posts.GET("/:id", handler.GetPostByID)
	posts.PUT("/:id", handler.UpdatePost)
	posts.DELETE("/:id", handler.DeletePost)
}

func SetupTicketRoutes(api *echo.Group, handler *rest.TicketHandler, authRequired echo.MiddlewareFunc) {
	tickets := api.Group("/tickets", authRequired)

	tickets.POST("", handler.OpenTicket)
	tickets.GET("", handler.GetAllTickets)
	tickets.GET("/:id", handler.GetTicketByID)
	tickets.POST("/:id/reply", handler.ReplyTicket)
	tickets.PUT("/:id/close", handler.CloseTicket)
}
