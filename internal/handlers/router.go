package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolsync/student-service/internal/config"
	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/services"
	"github.com/schoolsync/student-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	studentHandler    *StudentHandler
	classHandler      *ClassHandler
	attendanceHandler *AttendanceHandler
	gradeHandler      *GradeHandler
	dashboardHandler  *DashboardHandler
	uploadHandler     *UploadHandler
	authMiddleware    *JWTAuthMiddleware
	uploadDir         string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	cfg *config.Config,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewJWTAuthMiddleware(serviceManager.Token(), userRepo)

	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), serviceManager.Token(), cfg.JWT.ExpiresIn, logger),
		studentHandler:    NewStudentHandler(serviceManager.Student(), logger),
		classHandler:      NewClassHandler(serviceManager.Class(), logger),
		attendanceHandler: NewAttendanceHandler(serviceManager.Attendance(), logger),
		gradeHandler:      NewGradeHandler(serviceManager.Grade(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), logger),
		uploadHandler:     NewUploadHandler(cfg.UploadDir, logger),
		authMiddleware:    authMiddleware,
		uploadDir:         cfg.UploadDir,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	auth := hm.authMiddleware

	v1 := router.Group("/api/v1")
	{
		// Login is the only unauthenticated API route.
		v1.POST("/auth/login", hm.authHandler.Login)

		authed := v1.Group("")
		authed.Use(auth.AuthMiddleware())
		{
			authed.POST("/auth/register", auth.RequireRoleMiddleware(models.RoleAdmin), hm.authHandler.Register)
			authed.POST("/auth/logout", hm.authHandler.Logout)
			authed.GET("/auth/profile", hm.authHandler.Profile)

			// User management - Admins only
			users := authed.Group("/users")
			users.Use(auth.RequireRoleMiddleware(models.RoleAdmin))
			{
				users.GET("", hm.authHandler.ListUsers)
				users.GET("/:id", hm.authHandler.GetUser)
				users.PUT("/:id", hm.authHandler.UpdateUser)
				users.DELETE("/:id", hm.authHandler.DeleteUser)
			}

			// Student routes
			students := authed.Group("/students")
			{
				students.POST("", auth.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.CreateStudent)
				students.GET("", auth.RequireRoleMiddleware(models.RoleTeacher), hm.studentHandler.ListStudents)
				students.GET("/:id", auth.RequireRoleMiddleware(models.RoleTeacher), hm.studentHandler.GetStudent)
				students.PUT("/:id", auth.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.UpdateStudent)
				students.DELETE("/:id", auth.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.DeleteStudent)
				students.GET("/:id/reportcard", auth.RequireRoleMiddleware(models.RoleTeacher), hm.gradeHandler.GetReportCard)
			}

			// Class and section routes
			classes := authed.Group("/classes")
			{
				classes.POST("", auth.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.CreateClass)
				classes.GET("", auth.RequireRoleMiddleware(models.RoleTeacher), hm.classHandler.ListClasses)
				classes.POST("/sections", auth.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.CreateSection)
				classes.PUT("/students/:studentId/section", auth.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.AssignStudent)
			}

			// Attendance routes - Teachers and Admins
			attendance := authed.Group("/attendance")
			attendance.Use(auth.RequireRoleMiddleware(models.RoleTeacher))
			{
				attendance.POST("", hm.attendanceHandler.RecordAttendance)
				attendance.GET("", hm.attendanceHandler.GetAttendance)
				attendance.GET("/:studentId/report", hm.attendanceHandler.GetAttendanceReport)
				attendance.GET("/:studentId/report/export", hm.attendanceHandler.ExportAttendanceReport)
			}

			// Exam and grade routes - Teachers and Admins
			authed.POST("/exams", auth.RequireRoleMiddleware(models.RoleTeacher), hm.gradeHandler.CreateExam)
			authed.POST("/grades", auth.RequireRoleMiddleware(models.RoleTeacher), hm.gradeHandler.RecordGrades)

			// Dashboard - Teachers and Admins
			authed.GET("/dashboard/stats", auth.RequireRoleMiddleware(models.RoleTeacher), hm.dashboardHandler.GetDashboardStats)

			// Uploads - Admins only
			authed.POST("/upload", auth.RequireRoleMiddleware(models.RoleAdmin), hm.uploadHandler.UploadPhoto)
			authed.DELETE("/upload/:filename", auth.RequireRoleMiddleware(models.RoleAdmin), hm.uploadHandler.DeletePhoto)
		}
	}

	// Uploaded files are public; filenames are unguessable uuids.
	router.Static("/uploads", hm.uploadDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "student-service",
		})
	})
}
