package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/meetmind-team/meetmind/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	meetingHandler  *Meeting
	taskHandler     *Task
	documentHandler *Document
	identityHandler *Identity
	sessionMW       echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	meetingHandler *Meeting,
	taskHandler *Task,
	documentHandler *Document,
	identityHandler *Identity,
	sessionMW echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:             cfg,
		meetingHandler:  meetingHandler,
		taskHandler:     taskHandler,
		documentHandler: documentHandler,
		identityHandler: identityHandler,
		sessionMW:       sessionMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	// The provider webhook authenticates via HMAC, not a session
	v1.POST("/webhooks/identity", rt.identityHandler.Webhook)

	// Everything else requires a verified session
	protected := v1.Group("", rt.sessionMW)

	protected.GET("/me", rt.identityHandler.Me)

	rt.setupMeetingRoutes(protected)
	rt.setupTaskRoutes(protected)
	rt.setupDocumentRoutes(protected)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("/analyze", rt.meetingHandler.Analyze)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.POST("", rt.meetingHandler.Create)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.PUT("/:id", rt.meetingHandler.Update)
	meetingGroup.DELETE("/:id", rt.meetingHandler.Delete)
}

// setupTaskRoutes configures task routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	taskGroup := g.Group("/tasks")

	taskGroup.GET("", rt.taskHandler.List)
	taskGroup.POST("", rt.taskHandler.Create)
	taskGroup.GET("/:id", rt.taskHandler.Get)
	taskGroup.PUT("/:id", rt.taskHandler.Update)
	taskGroup.DELETE("/:id", rt.taskHandler.Delete)
	taskGroup.POST("/:id/advance", rt.taskHandler.Advance)
}

// setupDocumentRoutes configures document routes
func (rt *Router) setupDocumentRoutes(g *echo.Group) {
	documentGroup := g.Group("/documents")

	documentGroup.GET("", rt.documentHandler.List)
	documentGroup.POST("/upload", rt.documentHandler.Upload)
	documentGroup.GET("/download", rt.documentHandler.Download)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
