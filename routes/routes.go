package routes

import (
	"expofloor/auth"
	"expofloor/dashboard"
	"expofloor/floorplans"
	"expofloor/middleware"
	"expofloor/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.GET("/api/auth/profile", middleware.Authenticate(h.Profile))
	router.GET("/api/auth/verify", middleware.Authenticate(h.Verify))
}

func AddFloorPlanRoutes(router *httprouter.Router, h *floorplans.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/floorplans", middleware.Authenticate(h.List))
	router.POST("/api/floorplans", rl.Limit(middleware.Authenticate(h.Create)))
	router.GET("/api/floorplans/:id", middleware.Authenticate(h.Get))
	router.PUT("/api/floorplans/:id", rl.Limit(middleware.Authenticate(h.Update)))
	router.DELETE("/api/floorplans/:id", rl.Limit(middleware.Authenticate(h.Delete)))
	router.PUT("/api/floorplans/:id/status", rl.Limit(middleware.Authenticate(h.ChangeStatus)))
	router.GET("/api/floorplans/:id/booths", middleware.Authenticate(h.GetBooths))
	router.GET("/api/floorplans/:id/report", middleware.Authenticate(h.Report))
	router.GET("/api/floorplans/:id/qr", middleware.Authenticate(h.ShareQR))
}

// AddPublicRoutes registers the anonymous read-only surface: published plans
// only.
func AddPublicRoutes(router *httprouter.Router, h *floorplans.Handler) {
	router.GET("/api/public/floorplans", h.PublicList)
	router.GET("/api/public/floorplans/:id", h.PublicGet)
}

func AddDashboardRoutes(router *httprouter.Router, h *dashboard.Handler) {
	router.GET("/api/dashboard/stats", middleware.Authenticate(h.Stats))
}
