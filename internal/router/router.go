package router

import (
	"net/http"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/config"
	"github.com/coachdesk/coachdesk-backend/internal/handler"
	"github.com/coachdesk/coachdesk-backend/internal/middleware"
	"github.com/coachdesk/coachdesk-backend/internal/response"
	"github.com/coachdesk/coachdesk-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Student    *handler.StudentHandler
	Fee        *handler.FeeHandler
	Attendance *handler.AttendanceHandler
	Export     *handler.ExportHandler
	Timetable  *handler.TimetableHandler
	Notice     *handler.NoticeHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics.
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for auth routes (20 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(20, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile route
		auth.GET("/me", middleware.RequireAnyJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Roster Group (Teacher JWT) ─────────────────────────────────
	students := router.Group("/api/students")
	students.Use(middleware.RequireTeacherJWT(authService))
	{
		students.GET("", handlers.Student.List)
		students.POST("", handlers.Student.Create)
		students.GET("/:id", handlers.Student.Get)
		students.PUT("/:id", handlers.Student.Update)
		students.DELETE("/:id", handlers.Student.Delete)
	}

	// ─── 3. Fee Group ──────────────────────────────────────────────────
	fee := router.Group("/api/fee")
	{
		// Teacher-only ledger operations
		fee.POST("/payment/:studentId", middleware.RequireTeacherJWT(authService), handlers.Fee.RecordPayment)
		fee.GET("/payment-history/:studentId", middleware.RequireTeacherJWT(authService), handlers.Fee.PaymentHistory)
		fee.GET("/statistics", middleware.RequireTeacherJWT(authService), handlers.Fee.Statistics)
		fee.GET("/defaulters", middleware.RequireTeacherJWT(authService), handlers.Fee.Defaulters)

		// Student self-service view
		fee.GET("/my-fees", middleware.RequireStudentJWT(authService), handlers.Fee.MyFees)
	}

	// ─── 4. Attendance Group (Teacher JWT) ─────────────────────────────
	attendance := router.Group("/api/attendance")
	attendance.Use(middleware.RequireTeacherJWT(authService))
	{
		attendance.POST("/bulk", handlers.Attendance.MarkBulk)
		attendance.GET("/student/:email", handlers.Attendance.GetByStudent)
		attendance.GET("/stats/:email", handlers.Attendance.GetStatistics)
		attendance.GET("/all", handlers.Attendance.QueryAll)

		// Report downloads must never be served from a cache.
		export := attendance.Group("/export")
		export.Use(middleware.NoStore())
		{
			export.GET("/txt", handlers.Export.ExportTxt)
			export.POST("/date-range", handlers.Export.ExportDateRange)
		}
	}

	// ─── 5. Student Self-Service Group (Student JWT) ───────────────────
	studentAPI := router.Group("/api/student")
	studentAPI.Use(middleware.RequireStudentJWT(authService))
	{
		studentAPI.GET("/attendance", handlers.Attendance.MyAttendance)
	}

	// ─── 6. Timetable Group (Shared Reads, Teacher Writes) ─────────────
	timetable := router.Group("/api/timetable")
	{
		timetable.GET("", middleware.RequireAnyJWT(authService), handlers.Timetable.List)
		timetable.POST("", middleware.RequireTeacherJWT(authService), handlers.Timetable.Create)
		timetable.PUT("/:id", middleware.RequireTeacherJWT(authService), handlers.Timetable.Update)
		timetable.DELETE("/:id", middleware.RequireTeacherJWT(authService), handlers.Timetable.Delete)
	}

	// ─── 7. Notice Group (Shared Reads, Teacher Writes) ────────────────
	notices := router.Group("/api/notices")
	{
		notices.GET("", middleware.RequireAnyJWT(authService), handlers.Notice.List)
		notices.POST("", middleware.RequireTeacherJWT(authService), handlers.Notice.Create)
		notices.PUT("/:id", middleware.RequireTeacherJWT(authService), handlers.Notice.Update)
		notices.DELETE("/:id", middleware.RequireTeacherJWT(authService), handlers.Notice.Delete)
	}

	return router
}
