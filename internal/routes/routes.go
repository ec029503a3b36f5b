package routes

import (
	"github.com/gin-gonic/gin"

	"focustrack/internal/handlers"
	"focustrack/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	timerHandler *handlers.TimerHandler,
	entryHandler *handlers.EntryHandler,
	statsHandler *handlers.StatsHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {

	// ---- public
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)
	r.GET("/health", healthHandler.Health)
	r.GET("/ping", healthHandler.Ping)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	api := r.Group("/api")
	{
		api.POST("/change-password", authHandler.ChangePassword)

		api.GET("/daily-summary", taskHandler.DailySummary)

		tasks := api.Group("/user-tasks")
		{
			tasks.POST("", taskHandler.Create)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.PUT("/:id/status", taskHandler.UpdateStatus)
			tasks.DELETE("/:id", taskHandler.Delete)
		}

		timer := api.Group("/timer")
		{
			timer.POST("/start", timerHandler.Start)
			timer.POST("/pause", timerHandler.Pause)
			timer.POST("/stop", timerHandler.Stop)
			timer.POST("/sync", timerHandler.Sync)
			timer.POST("/cleanup", timerHandler.Cleanup)
			timer.GET("/status/:task_id", timerHandler.Status)
		}

		api.POST("/notes/save", entryHandler.SaveNotes)
		api.POST("/activity/log", entryHandler.LogActivity)

		api.GET("/analytics", statsHandler.Analytics)
		api.GET("/profile/stats", statsHandler.ProfileStats)
		api.GET("/reports/productivity", statsHandler.ProductivityReport)
	}

	return r
}
