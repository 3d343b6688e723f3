package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"obrago/internal/config"
	"obrago/internal/domain/account"
	"obrago/internal/domain/admin"
	"obrago/internal/domain/crew"
	"obrago/internal/domain/dashboard"
	"obrago/internal/domain/finance"
	"obrago/internal/domain/material"
	"obrago/internal/domain/notification"
	"obrago/internal/domain/project"
	"obrago/internal/domain/quote"
	"obrago/internal/domain/schedule"
	"obrago/internal/metrics"
	"obrago/internal/middleware"
	"obrago/internal/pkg/jwt"
	"obrago/internal/session"
)

// newMailer picks the console transport in development, Resend when a key
// is configured, and nothing otherwise.
func newMailer(cfg *config.Config) notification.Mailer {
	switch {
	case cfg.EmailDevConsole:
		return notification.ConsoleMailer{}
	case cfg.ResendAPIKey != "":
		return notification.NewResendMailer(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.ResendTimeout)
	default:
		return nil
	}
}

func newRouter(cfg *config.Config, db *gorm.DB, mailer notification.Mailer) (*gin.Engine, error) {
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	// Every origin check in the API uses the SPA origin plus the extra list.
	origins := append([]string{cfg.SiteURL}, cfg.CORSAllowedOrigins...)

	// Identity and session state
	accountRepo := account.NewRepository(db)
	sessions := session.NewService(account.NewPrincipalStore(accountRepo))
	hub := sessions.Hub()
	accountService := account.NewService(accountRepo, tokens, hub, cfg.RecoveryPepper, cfg.RecoveryTokenTTL)

	notificationService := notification.NewService(mailer, accountService, notification.Options{
		SiteURL:        cfg.SiteURL,
		AllowedOrigins: origins,
		FromApproval:   cfg.EmailFromApproval,
		FromReset:      cfg.EmailFromReset,
	})
	adminService := admin.NewService(accountRepo, admin.NewRepository(db), hub, notificationService)

	// Owned entities. Dependents validate obra_id through the project
	// repository; the project service counts their rows before deleting.
	projectRepo := project.NewRepository(db)
	crewService := crew.NewService(crew.NewRepository(db))
	materialService := material.NewService(material.NewRepository(db), projectRepo)
	financeService := finance.NewService(finance.NewRepository(db), projectRepo)
	scheduleService := schedule.NewService(schedule.NewRepository(db), projectRepo)
	quoteService := quote.NewService(quote.NewRepository(db))
	projectService := project.NewService(projectRepo, scheduleService, materialService, financeService)
	dashboardService := dashboard.NewService(projectService, crewService, financeService, materialService, scheduleService)

	resetLimit, err := middleware.RateLimit(cfg.ResetRateLimit)
	if err != nil {
		return nil, fmt.Errorf("reset rate limit: %w", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(origins, !cfg.IsProduction()))
	if cfg.MetricsEnabled {
		metrics.Register()
		r.Use(metrics.Middleware())
		r.GET("/metrics", middleware.InternalTokenAuth(cfg.MetricsToken, cfg.MetricsAllowedIPs), gin.WrapH(metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accountHandler := account.NewHandler(accountService)
	sessionHandler := session.NewHandler(sessions, tokens, origins)
	notificationHandler := notification.NewHandler(notificationService)

	v1 := r.Group("/api/v1")
	{
		// public
		account.RegisterPublicRoutes(v1, accountHandler)
		notification.RegisterPublicRoutes(v1, notificationHandler, resetLimit)
		session.RegisterStreamRoutes(v1, sessionHandler)

		// any valid token, whatever the profile state
		tokenOnly := v1.Group("")
		tokenOnly.Use(middleware.JWTAuth(tokens))
		{
			session.RegisterRoutes(tokenOnly, sessionHandler)
			account.RegisterSessionRoutes(tokenOnly, accountHandler)
		}

		// approved accounts
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(tokens), middleware.IdentityGate(sessions))
		{
			account.RegisterProtectedRoutes(protected, accountHandler)
			dashboard.RegisterRoutes(protected, dashboard.NewHandler(dashboardService))
			project.RegisterRoutes(protected, project.NewHandler(projectService))
			crew.RegisterRoutes(protected, crew.NewHandler(crewService))
			material.RegisterRoutes(protected, material.NewHandler(materialService))
			finance.RegisterRoutes(protected, finance.NewHandler(financeService))
			schedule.RegisterRoutes(protected, schedule.NewHandler(scheduleService))
			quote.RegisterRoutes(protected, quote.NewHandler(quoteService))
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(tokens), middleware.IdentityGate(sessions), middleware.AdminOnly())
		{
			admin.RegisterRoutes(adminGroup, admin.NewHandler(adminService))
		}

		adminSenders := v1.Group("")
		adminSenders.Use(middleware.JWTAuth(tokens), middleware.IdentityGate(sessions), middleware.AdminOnly())
		{
			notification.RegisterAdminRoutes(adminSenders, notificationHandler)
		}
	}

	return r, nil
}
