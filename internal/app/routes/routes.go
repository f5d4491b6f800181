package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/controllers"
	"github.com/HujaifaBytes/Student-Registration-website/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	registrationController *controllers.RegistrationController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public registration routes ---
	students := v1.Group("/students")
	{
		students.POST("/register", registrationController.Register)
		students.GET("/:id", registrationController.GetStudent)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	{
		// Session endpoints have no auth requirement of their own
		admin.POST("/login", adminController.Login)
		admin.POST("/logout", adminController.Logout)
		admin.GET("/session", adminController.Session)

		// Dashboard endpoints require a valid session cookie
		protected := admin.Group("")
		protected.Use(authMiddleware.SessionAuth())
		{
			protected.GET("/students", adminController.ListStudents)
			protected.GET("/students/export", adminController.ExportCSV)
			protected.GET("/students/:id", adminController.GetStudent)
			protected.PATCH("/students/:id/payment", adminController.UpdatePayment)
			protected.DELETE("/students/:id", adminController.DeleteStudent)
			protected.GET("/stats", adminController.Stats)
		}
	}
}
