package router

import (
	"time"

	"github.com/francescamaronna/appcolaboraciones/internal/handlers"
	"github.com/francescamaronna/appcolaboraciones/internal/middleware"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		// Public listings; a token enriches them with membership state
		api.GET("/feed", middleware.OptionalAuthMiddleware(), handlers.GetFeed)
		api.GET("/projects", middleware.OptionalAuthMiddleware(), handlers.ListProjects)
		api.GET("/projects/:project_id", middleware.OptionalAuthMiddleware(), handlers.GetProject)
		api.GET("/plans", handlers.ListPlans)
		api.GET("/feedback", handlers.ListFeedback)
		api.POST("/feedback", handlers.CreateFeedback)

		me := api.Group("/me", middleware.AuthMiddleware())
		{
			me.GET("/memberships", handlers.GetMemberships)
			me.GET("/requests", handlers.ListMyRequests)
			me.GET("/publications", handlers.ListMyPublications)
			me.GET("/profile", handlers.GetMyProfile)
			me.PUT("/profile", handlers.UpsertMyProfile)
			me.GET("/subscription", handlers.GetMySubscription)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
			projects.GET("/:project_id/requests", handlers.ListProjectRequests)
		}

		requests := api.Group("/requests", middleware.AuthMiddleware())
		{
			requests.POST("", handlers.SubmitRequest)
			requests.POST("/:request_id/decision", handlers.DecideRequest)
		}

		publications := api.Group("/publications", middleware.AuthMiddleware())
		{
			publications.POST("", handlers.CreatePublication)
			publications.PATCH("/:publication_id", handlers.UpdatePublication)
			publications.DELETE("/:publication_id", handlers.DeletePublication)
		}

		plans := api.Group("/plans", middleware.AuthMiddleware())
		{
			plans.POST("", handlers.CreatePlan)
			plans.PATCH("/:plan_id", handlers.UpdatePlan)
			plans.DELETE("/:plan_id", handlers.DeletePlan)
		}

		feedback := api.Group("/feedback", middleware.AuthMiddleware())
		{
			feedback.PATCH("/:feedback_id", handlers.UpdateFeedback)
			feedback.DELETE("/:feedback_id", handlers.DeleteFeedback)
		}
	}

	return r
}
