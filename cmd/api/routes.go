package main

import (
	"medreport-platform/internal/auth"
	"medreport-platform/internal/httpapi"
	"medreport-platform/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, gate gin.HandlerFunc, policy *rbac.Policy) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	// Session lifecycle endpoints bypass the authentication gate; they are
	// the way callers obtain credentials in the first place.
	session := v1.Group("/auth")
	{
		session.POST("/login", h.Login)
		session.POST("/refresh", h.Refresh)
		session.POST("/logout", h.Logout)
	}

	// Everything below runs behind the authentication gate.
	protected := v1.Group("")
	protected.Use(gate)
	{
		protected.GET("/me", h.Me)
		protected.POST("/auth/change-password", h.ChangePassword)

		// Visit listings: any role, always hospital-scoped. Reads are decided
		// by the hierarchy; the grant table only gates extra capabilities.
		visits := protected.Group("/visits")
		visits.Use(rbac.RequireRole(auth.RoleUser))
		visits.Use(rbac.WithHospitalScope())
		{
			visits.GET("", h.ListVisits)
			// Bulk export is deny-by-default until a grant row allows it.
			visits.GET("/export", rbac.RequireCapability(policy, rbac.CapabilityExportReports), h.ExportVisits)
		}

		// User administration: admin and above; per-target hierarchy and
		// hospital-scope rules are enforced inside the users service.
		admin := protected.Group("/admin/users")
		admin.Use(rbac.RequireRole(auth.RoleAdmin))
		{
			admin.POST("", h.CreateUser)
			admin.GET("", h.ListUsers)
			admin.GET("/:id", h.GetUser)
			admin.PATCH("/:id", h.UpdateUser)
			admin.DELETE("/:id", h.DeactivateUser)
			admin.POST("/:id/reset-password", h.ResetUserPassword)
		}
	}
}
