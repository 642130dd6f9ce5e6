package http

import (
	"github.com/labstack/echo/v4"

	"sba-portal/internal/adapter/middleware"
	"sba-portal/internal/domain/auth"
)

type Handlers struct {
	Health       *Handler
	Auth         *AuthHandler
	Applications *ApplicationHandler
	Documents    *DocumentHandler
	Meetings     *MeetingHandler
	Referrals    *ReferralHandler
	Profiles     *ProfileHandler
}

// Guards are the middlewares routes are mounted behind. Idempotency is
// applied to authenticated groups only; it skips safe methods itself.
// RateLimit, when set, guards the credential endpoints.
type Guards struct {
	Authenticate echo.MiddlewareFunc
	Idempotency  echo.MiddlewareFunc
	RateLimit    echo.MiddlewareFunc
}

func Register(e *echo.Echo, h Handlers, g Guards) {
	e.GET("/health", h.Health.Health)

	var authMW []echo.MiddlewareFunc
	if g.RateLimit != nil {
		authMW = append(authMW, g.RateLimit)
	}
	a := e.Group("/auth", authMW...)
	a.POST("/signup", h.Auth.SignUp)
	a.POST("/login", h.Auth.Login)
	a.POST("/admin/login", h.Auth.AdminLogin)
	a.POST("/logout", h.Auth.Logout)

	me := e.Group("/me", g.Authenticate, middleware.RequireRole(auth.RoleBorrower), g.Idempotency)
	me.GET("/application", h.Applications.Mine)
	me.POST("/application/submit", h.Applications.SubmitMine)
	me.GET("/progress", h.Applications.Progress)
	me.GET("/documents", h.Documents.ListMine)
	me.GET("/checklist", h.Documents.Checklist)
	me.POST("/documents", h.Documents.Upload)
	me.DELETE("/documents/:id", h.Documents.Delete)

	// Referral partners book meetings too.
	mt := e.Group("/me/meetings", g.Authenticate, middleware.RequireRole(auth.RoleBorrower, auth.RoleReferral), g.Idempotency)
	mt.POST("", h.Meetings.Schedule)
	mt.GET("", h.Meetings.ListMine)

	pr := e.Group("/me/profile", g.Authenticate, middleware.RequireRole(auth.RoleBorrower, auth.RoleReferral), g.Idempotency)
	pr.GET("", h.Profiles.Mine)
	pr.PUT("", h.Profiles.Update)

	ref := e.Group("/referrals", g.Authenticate, middleware.RequireRole(auth.RoleReferral), g.Idempotency)
	ref.POST("", h.Referrals.Submit)
	ref.GET("", h.Referrals.ListMine)

	adm := e.Group("/admin", g.Authenticate, middleware.RequireRole(auth.RoleAdmin), g.Idempotency)
	adm.GET("/applications", h.Applications.ListSubmitted)
	adm.GET("/applications/:id", h.Applications.Get)
	adm.GET("/applications/:id/history", h.Applications.History)
	adm.POST("/applications/:id/:action", h.Applications.Transition)
	adm.PATCH("/applications/:id/stage", h.Applications.UpdateStage)
	adm.GET("/borrowers", h.Profiles.ListBorrowers)
	adm.GET("/borrowers/:owner_id/documents", h.Documents.ListForReview)
	adm.GET("/documents", h.Documents.ListQueue)
	adm.POST("/documents/:id/approve", h.Documents.Approve)
	adm.POST("/documents/:id/reject", h.Documents.Reject)
	adm.GET("/meetings", h.Meetings.ListAll)
	adm.PATCH("/meetings/:id", h.Meetings.UpdateStatus)
	adm.GET("/referrals", h.Referrals.ListAll)
	adm.PATCH("/referrals/:id", h.Referrals.UpdateStatus)
}
