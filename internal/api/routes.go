// internal/api/routes.go
package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/api/middleware"
	"edeon_enerji/internal/service"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// FilesDir is served under FilesPath when both are set and the path
	// is local (starts with "/").
	FilesDir  string
	FilesPath string
}

// NewRouter builds the engine with the global middleware chain.
func NewRouter(h *Handler, authn service.Authenticator, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20

	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Correlation())
	r.Use(middleware.Logging())

	r.GET("/health", h.Health)
	if opts.FilesDir != "" && strings.HasPrefix(opts.FilesPath, "/") {
		r.Static(opts.FilesPath, opts.FilesDir)
	}

	SetupRoutes(r, h, authn)
	return r
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *Handler, authn service.Authenticator) {
	can := middleware.RequireAction

	api := r.Group("/api")
	api.POST("/auth/login", h.Login)

	secured := api.Group("", middleware.Auth(authn))
	{
		// Account
		secured.GET("/me", h.Me)
		secured.GET("/navigation", h.Navigation)
		secured.PUT("/me/profile", h.UpdateProfile)
		secured.PUT("/me/password", h.ChangePassword)

		secured.GET("/dashboard", h.Dashboard)

		// Plants and production
		plants := secured.Group("/plants")
		{
			plants.GET("", h.ListPlants)
			plants.POST("", can(access.WritePlant), h.CreatePlant)
			plants.GET("/:id", h.GetPlant)
			plants.PUT("/:id", can(access.WritePlant), h.UpdatePlant)
			plants.DELETE("/:id", can(access.DeletePlant), h.DeletePlant)
			plants.GET("/:id/targets", h.PlantTargets)
			plants.GET("/:id/summary", h.ProductionSummary)
			plants.GET("/:id/charts", h.ProductionCharts)
			plants.GET("/:id/production", h.ListProduction)
			plants.GET("/:id/production/csv", h.ExportProduction)
			plants.GET("/:id/mirror", h.MirrorProduction)
		}

		production := secured.Group("/production")
		{
			production.POST("", can(access.WriteProduction), h.CreateProduction)
			production.DELETE("/:id", can(access.DeleteProduction), h.DeleteProduction)
		}

		// Fault tickets
		faults := secured.Group("/faults")
		{
			faults.GET("", h.ListFaults)
			faults.POST("", can(access.CreateFault), h.CreateFault)
			faults.GET("/stats", h.FaultStats)
			faults.GET("/export/csv", h.ExportFaultsCSV)
			faults.GET("/export/pdf", h.ExportFaultsPDF)
			faults.GET("/:id", h.GetFault)
			faults.PATCH("/:id", can(access.UpdateFault), h.UpdateFault)
			faults.POST("/:id/comments", can(access.CommentFault), h.CommentFault)
			faults.POST("/:id/resolve", can(access.UpdateFault), h.ResolveFault)
			faults.DELETE("/:id", can(access.DeleteFault), h.DeleteFault)
		}

		// Inspections
		maintenance := secured.Group("/maintenance")
		{
			maintenance.GET("", h.ListMaintenance)
			maintenance.POST("", can(access.WriteMaintenance), h.CreateMaintenance)
			maintenance.GET("/stats", h.MaintenanceStats)
			maintenance.GET("/export/pdf", h.ExportMaintenancePDF)
			maintenance.GET("/:tur/:id", h.GetMaintenance)
			maintenance.DELETE("/:tur/:id", can(access.DeleteMaintenance), h.DeleteMaintenance)
		}

		sites := secured.Group("/sites")
		{
			sites.GET("", h.ListSites)
			sites.POST("", can(access.WriteSite), h.CreateSite)
			sites.GET("/:id", h.GetSite)
			sites.PUT("/:id", can(access.WriteSite), h.UpdateSite)
			sites.DELETE("/:id", can(access.DeleteSite), h.DeleteSite)
		}

		stock := secured.Group("/stock")
		{
			stock.GET("", h.ListStock)
			stock.POST("", can(access.WriteStock), h.CreateStock)
			stock.GET("/:id", h.GetStock)
			stock.PUT("/:id", can(access.WriteStock), h.UpdateStock)
			stock.POST("/:id/adjust", can(access.WriteStock), h.AdjustStock)
			stock.DELETE("/:id", can(access.WriteStock), h.DeleteStock)
		}

		reports := secured.Group("/work-reports")
		{
			reports.GET("", h.ListWorkReports)
			reports.POST("", can(access.WriteWorkReport), h.CreateWorkReport)
			reports.GET("/daily", h.DailyWorkReports)
			reports.GET("/:id", h.GetWorkReport)
			reports.DELETE("/:id", can(access.DeleteWorkReport), h.DeleteWorkReport)
		}

		notifications := secured.Group("/notifications")
		{
			notifications.GET("", h.ListNotifications)
			notifications.POST("/read-all", h.MarkAllNotificationsRead)
			notifications.POST("/:id/read", h.MarkNotificationRead)
		}

		uploads := secured.Group("/uploads", can(access.Upload))
		{
			uploads.POST("/:kategori", h.UploadPhotos)
			uploads.DELETE("", h.DeletePhoto)
		}

		users := secured.Group("/users", can(access.ManageUsers))
		{
			users.GET("", h.ListUsers)
			users.POST("", h.CreateUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
		}

		system := secured.Group("/system", can(access.ManageUsers))
		{
			system.GET("/mirror", h.MirrorStats)
			system.GET("/cache", h.CacheStats)
		}
	}
}
