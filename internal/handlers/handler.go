package handlers

import (
	"fmt"
	"net/http"
	"time"

	_ "sslab_simulator/docs"
	"sslab_simulator/internal/logger"
	"sslab_simulator/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type"

	notFoundBody = "Not Found"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	// Paths match exactly; "/api/status/" is a 404 like any other unknown path.
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(h.recovery(), h.requestLogger, cors)
	router.NoRoute(notFound)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Status stream over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/status", h.getStatus)
		api.GET("/devices", h.getDevices)
		api.GET("/environment", h.getEnvironment)
		api.GET("/safety", h.getSafety)
		// Body example: {"action":"power_on","device":"all"}
		api.POST("/control", h.control)
		api.GET("/events", h.getEvents)
	}
}

// cors stamps the panel's CORS headers on every reply and answers preflight
// requests for any path with an empty 200.
func cors(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	header.Set("Access-Control-Allow-Headers", corsAllowHeaders)

	if c.Request.Method == http.MethodOptions {
		header.Set("Content-Type", "application/json")
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Next()
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, notFoundBody)
}

// recovery turns a panic into the same 500 envelope as any other failure.
func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if h.log != nil {
			h.log.Errorw("panic_recovered", "path", c.Request.URL.Path, "panic", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprint(recovered)})
	})
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
