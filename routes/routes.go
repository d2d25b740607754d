package routes

import (
	"os"
	"strings"

	"salondesk-backend/config"
	"salondesk-backend/controllers"
	"salondesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.PUT("/me", controllers.UpdateMe)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Service category routes (writes are admin only)
		categories := api.Group("/categories")
		{
			categories.GET("", controllers.GetCategories)
			categories.POST("", utils.RequireAdmin(), controllers.CreateCategory)
			categories.PUT("/:id", utils.RequireAdmin(), controllers.UpdateCategory)
			categories.DELETE("/:id", utils.RequireAdmin(), controllers.DeleteCategory)
		}

		// Service routes (writes are admin only)
		services := api.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.POST("", utils.RequireAdmin(), controllers.CreateService)
			services.PUT("/:id", utils.RequireAdmin(), controllers.UpdateService)
			services.DELETE("/:id", utils.RequireAdmin(), controllers.DeactivateService)
		}

		// Employee routes
		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", utils.RequireAdmin(), controllers.AddEmployee)
			employees.PUT("/:id", utils.RequireAdmin(), controllers.UpdateEmployee)
			employees.DELETE("/:id", utils.RequireAdmin(), controllers.DeactivateEmployee)
		}

		// Visit routes
		visits := api.Group("/visits")
		{
			visits.POST("", controllers.CreateVisit)
			visits.GET("", controllers.GetVisits)
			visits.GET("/:id", controllers.GetVisit)
		}

		// Customer routes (derived from visit history)
		customers := api.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/lookup", controllers.LookupCustomers)
		}

		// Report routes
		reportController := controllers.ReportController{}
		reports := api.Group("/reports")
		{
			reports.GET("/sales", reportController.GetSalesReport)
			reports.GET("/employees", reportController.GetEmployeeReport)
			reports.GET("/services", reportController.GetServiceReport)
			reports.GET("/payments", reportController.GetPaymentReport)
			reports.GET("/retention", reportController.GetRetentionReport)
			reports.GET("/export", utils.RequireAdmin(), reportController.ExportSalesReport)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
