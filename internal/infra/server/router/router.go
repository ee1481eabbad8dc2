// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/invoice-tracker/invoicetrack/internal/integration/entrypoint/controller"
	"github.com/invoice-tracker/invoicetrack/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	invoiceController *controller.InvoiceController
	loginRateLimiter  *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	invoiceController *controller.InvoiceController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		invoiceController: invoiceController,
		loginRateLimiter:  loginRateLimiter,
		authMiddleware:    authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// Auth routes
	if r.authController != nil {
		auth := r.engine.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			if r.loginRateLimiter != nil {
				auth.POST("/token", r.loginRateLimiter.Middleware(), r.authController.Token)
			} else {
				auth.POST("/token", r.authController.Token)
			}
		}
	}

	// Invoice routes (require authentication)
	if r.invoiceController != nil && r.authMiddleware != nil {
		invoices := r.engine.Group("/invoices")
		invoices.Use(r.authMiddleware.Authenticate())
		{
			invoices.GET("/", r.invoiceController.List)
			invoices.POST("/", r.invoiceController.Create)
			invoices.PUT("/:id", r.invoiceController.Update)
			invoices.DELETE("/:id", r.invoiceController.Delete)
		}
	}
}
