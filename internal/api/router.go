package api

import (
	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen_go_server/config"
	"github.com/examgen/examgen_go_server/internal/api/handler"
	"github.com/examgen/examgen_go_server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	planHandler         *handler.PlanHandler
	generateHandler     *handler.GenerateHandler
	subscriptionHandler *handler.SubscriptionHandler
	paymentHandler      *handler.PaymentHandler
	complaintHandler    *handler.ComplaintHandler
	adminHandler        *handler.AdminHandler
	users               middleware.UserGetter
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	planHandler *handler.PlanHandler,
	generateHandler *handler.GenerateHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	paymentHandler *handler.PaymentHandler,
	complaintHandler *handler.ComplaintHandler,
	adminHandler *handler.AdminHandler,
	users middleware.UserGetter,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		planHandler:         planHandler,
		generateHandler:     generateHandler,
		subscriptionHandler: subscriptionHandler,
		paymentHandler:      paymentHandler,
		complaintHandler:    complaintHandler,
		adminHandler:        adminHandler,
		users:               users,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// Public: authentication
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/reset-password", r.authHandler.ResetPassword)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// Public: plan catalogue
		api.GET("/plans", r.planHandler.List)

		// Generation works for anonymous callers at the free-tier
		// ceilings; a token raises them to the subscriber's plan
		generate := api.Group("/generate")
		generate.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			generate.POST("", r.generateHandler.Generate)
		}

		// Authenticated
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.POST("/generate/export", r.generateHandler.Export)

			authenticated.GET("/user/profile", r.authHandler.Profile)

			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Subscribe)
				subscriptions.GET("", r.subscriptionHandler.List)
				subscriptions.POST("/:id/cancel", r.subscriptionHandler.Cancel)
				subscriptions.DELETE("/:id", r.subscriptionHandler.DeleteHistory)
			}

			payments := authenticated.Group("/payments")
			{
				payments.GET("", r.paymentHandler.List)
				payments.GET("/latest", r.paymentHandler.Latest)
				payments.POST("/:id/cancel", r.paymentHandler.Cancel)
				payments.DELETE("/:id", r.paymentHandler.DeleteHistory)
			}
			authenticated.POST("/plans/:id/payments", r.paymentHandler.Submit)

			complaints := authenticated.Group("/complaints")
			{
				complaints.POST("", r.complaintHandler.Submit)
				complaints.GET("", r.complaintHandler.List)
				complaints.DELETE("/:id", r.complaintHandler.Delete)
			}
		}

		// Admin
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret))
		admin.Use(middleware.Admin(r.users))
		{
			admin.GET("/dashboard", r.adminHandler.Dashboard)

			admin.GET("/users", r.adminHandler.ListUsers)
			admin.PUT("/users/:id", r.adminHandler.UpdateUser)
			admin.DELETE("/users/:id", r.adminHandler.DeleteUser)
			admin.POST("/users/:id/reset-password", r.adminHandler.ResetUserPassword)

			admin.GET("/plans", r.adminHandler.ListPlans)
			admin.POST("/plans", r.adminHandler.CreatePlan)
			admin.PUT("/plans/:id", r.adminHandler.UpdatePlan)
			admin.DELETE("/plans/:id", r.adminHandler.DeletePlan)

			admin.GET("/payments", r.paymentHandler.ListAll)
			admin.POST("/payments/:id/approve", r.paymentHandler.Approve)
			admin.POST("/payments/:id/reject", r.paymentHandler.Reject)
			admin.DELETE("/payments/:id", r.paymentHandler.Delete)

			admin.GET("/complaints", r.complaintHandler.ListAll)
			admin.POST("/complaints/:id/respond", r.complaintHandler.Respond)
			admin.POST("/complaints/:id/resolve", r.complaintHandler.Resolve)
		}
	}

	return engine
}
