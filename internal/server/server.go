package server

import (
	"os"
	"strings"
	"time"

	"anoa.com/schoolattendance/internal/handler"
	"anoa.com/schoolattendance/internal/middleware"
	"anoa.com/schoolattendance/internal/model"
	"anoa.com/schoolattendance/internal/repository"
	"anoa.com/schoolattendance/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	teacherSvc := service.NewTeacherService(teacherRepo, userRepo)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)

	studentSvc := service.NewStudentService(studentRepo, userRepo)
	studentHandler := handler.NewStudentHandler(studentSvc)

	courseSvc := service.NewCourseService(courseRepo, teacherRepo, studentRepo)
	courseHandler := handler.NewCourseHandler(courseSvc)

	attendanceSvc := service.NewAttendanceService(attendanceRepo, courseRepo, teacherRepo)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)

	dashboardSvc := service.NewDashboardService(teacherRepo, studentRepo, courseRepo, attendanceRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/logout", authHandler.Logout)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireRoles(model.RoleAdmin))
		{
			adminGroup.GET("/teachers", teacherHandler.List)
			adminGroup.POST("/teachers", teacherHandler.Create)
			adminGroup.PUT("/teachers/:id", teacherHandler.Update)
			adminGroup.DELETE("/teachers/:id", teacherHandler.Delete)

			adminGroup.GET("/students", studentHandler.List)
			adminGroup.POST("/students", studentHandler.Create)
			adminGroup.PUT("/students/:id", studentHandler.Update)
			adminGroup.DELETE("/students/:id", studentHandler.Delete)

			adminGroup.GET("/courses", courseHandler.List)
			adminGroup.POST("/courses", courseHandler.Create)
			adminGroup.PUT("/courses/:id", courseHandler.Update)
			adminGroup.DELETE("/courses/:id", courseHandler.Delete)
		}

		// Dashboard routes
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/admin", authMiddleware.RequireRoles(model.RoleAdmin), dashboardHandler.Admin)
			dashboard.GET("/teacher", authMiddleware.RequireRoles(model.RoleTeacher), dashboardHandler.Teacher)
			dashboard.GET("/student", authMiddleware.RequireRoles(model.RoleStudent), dashboardHandler.Student)
		}

		// Attendance routes (teacher only; course ownership checked in the service)
		attendance := protected.Group("/attendance")
		attendance.Use(authMiddleware.RequireRoles(model.RoleTeacher))
		{
			attendance.GET("/take/:course_id", attendanceHandler.Form)
			attendance.POST("/take/:course_id", attendanceHandler.Take)
		}
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
