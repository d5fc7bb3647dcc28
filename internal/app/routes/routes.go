package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/controllers"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/forgot-password", ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctrl.Auth.ResetPassword)
	}

	// Course catalog, teacher directory and achievers board are public
	// so the landing pages work without a session.
	v1.GET("/subjects", ctrl.Subject.ListCatalog)
	v1.GET("/subjects/:id", ctrl.Subject.GetByID)
	v1.GET("/teachers", ctrl.Teacher.List)
	v1.GET("/teachers/:id", ctrl.Teacher.GetByID)
	v1.GET("/top-students", ctrl.TopStudent.List)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrl.Auth.Logout)

		profile := authenticated.Group("/profile")
		{
			profile.GET("", ctrl.Auth.GetProfile)
			profile.PUT("", ctrl.Auth.UpdateProfile)
			profile.POST("/avatar", ctrl.Auth.UpdateAvatar)
			profile.POST("/cover", ctrl.Auth.UpdateCoverImage)
		}

		materials := authenticated.Group("/materials")
		{
			materials.GET("", ctrl.Material.List)
			materials.GET("/:id", ctrl.Material.GetByID)
			materials.POST("/:id/views", ctrl.Material.RecordView)

			materialsTeacher := materials.Group("")
			materialsTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher, models.RoleAdmin))
			{
				materialsTeacher.POST("", ctrl.Material.Create)
				materialsTeacher.PUT("/:id", ctrl.Material.Update)
				materialsTeacher.DELETE("/:id", ctrl.Material.Delete)
			}
		}

		enrollmentsStudent := authenticated.Group("/enrollments")
		enrollmentsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			enrollmentsStudent.POST("", ctrl.Enrollment.Enroll)
			enrollmentsStudent.GET("", ctrl.Enrollment.ListMine)
			enrollmentsStudent.PUT("/:id/progress", ctrl.Enrollment.UpdateProgress)
		}

		paymentsStudent := authenticated.Group("/payments")
		paymentsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			paymentsStudent.POST("/checkout", ctrl.Payment.Checkout)
			paymentsStudent.GET("/subscriptions", ctrl.Payment.ListSubscriptions)
		}

		messages := authenticated.Group("/messages")
		{
			messages.POST("", ctrl.Message.Send)
			messages.GET("", ctrl.Message.Inbox)
			messages.GET("/unread", ctrl.Message.CountUnread)
			messages.GET("/:id/thread", ctrl.Message.Thread)
			messages.PUT("/:id/read", ctrl.Message.MarkRead)
		}

		// --- Admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/teachers", ctrl.Teacher.Create)
			admin.PUT("/teachers/:id", ctrl.Teacher.Update)
			admin.DELETE("/teachers/:id", ctrl.Teacher.Delete)

			admin.POST("/subjects", ctrl.Subject.Create)
			admin.PUT("/subjects/:id", ctrl.Subject.Update)
			admin.DELETE("/subjects/:id", ctrl.Subject.Delete)

			admin.POST("/top-students", ctrl.TopStudent.Create)
			admin.POST("/top-students/:id/image", ctrl.TopStudent.UploadImage)
			admin.PUT("/top-students/:id", ctrl.TopStudent.Update)
			admin.DELETE("/top-students/:id", ctrl.TopStudent.Delete)
		}
	}
}
