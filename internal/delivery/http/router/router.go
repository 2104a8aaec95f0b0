// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"riptide/config"
	"riptide/internal/delivery/http/middleware"
	"riptide/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config              *config.Config
	UserHandler         *handler.UserHandler
	DeviceTokenHandler  *handler.DeviceTokenHandler
	UploadHandler       *handler.UploadHandler
	DetectionHandler    *handler.DetectionHandler
	HistoryHandler      *handler.HistoryHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg                 *config.Config
	userHandler         *handler.UserHandler
	deviceTokenHandler  *handler.DeviceTokenHandler
	uploadHandler       *handler.UploadHandler
	detectionHandler    *handler.DetectionHandler
	historyHandler      *handler.HistoryHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:                 params.Config,
		userHandler:         params.UserHandler,
		deviceTokenHandler:  params.DeviceTokenHandler,
		uploadHandler:       params.UploadHandler,
		detectionHandler:    params.DetectionHandler,
		historyHandler:      params.HistoryHandler,
		notificationHandler: params.NotificationHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	usersGroup := api.Group("/users")
	{
		usersGroup.POST("/signup", r.userHandler.Signup)
		usersGroup.POST("/login", r.userHandler.Login)
		usersGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
		usersGroup.PUT("/update", r.userHandler.UpdatePassword, r.authMiddleware.Authenticate)
	}

	// Token registration stays open: devices register before any login flow.
	userGroup := api.Group("/user")
	{
		userGroup.POST("/devicetoken", r.deviceTokenHandler.Register)
		userGroup.GET("/devicetoken", r.deviceTokenHandler.Get, r.authMiddleware.Authenticate)
	}

	api.POST("/upload/file", r.uploadHandler.Upload)

	detectionGroup := api.Group("/detection", r.authMiddleware.Authenticate)
	{
		detectionGroup.POST("/", r.detectionHandler.Dispatch)
		detectionGroup.GET("/:id", r.detectionHandler.GetJob)
	}

	// The worker reports outcomes through these POST endpoints.
	historyGroup := api.Group("/history")
	{
		historyGroup.POST("/", r.historyHandler.Record)
		historyGroup.GET("/", r.historyHandler.List, r.authMiddleware.Authenticate)
	}

	notificationGroup := api.Group("/notification")
	{
		notificationGroup.POST("/", r.notificationHandler.Record)
		notificationGroup.POST("/region", r.notificationHandler.RecordRegion)
		notificationGroup.GET("/", r.notificationHandler.List, r.authMiddleware.Authenticate)
	}

	// Read-only mounts for uploaded and derived media.
	e.Static("/static", r.cfg.Media.PublicDir)
	e.Static("/detection", r.cfg.Media.DetectionDir)
	e.Static("/thumbnail", r.cfg.Media.ThumbnailDir)
}
