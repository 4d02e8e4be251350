package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/fitai/fitai-api/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		recovery(),
	)

	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api")
	{
		plans := api.Group("", bodyLimit(cfg.HTTP.MaxBodyBytes))
		plans.POST("/diet", requireReady(handler.dietSvc), handler.Diet)
		plans.POST("/workout", requireReady(handler.workoutSvc), handler.Workout)

		api.GET("/splits", handler.Splits)
		api.GET("/splits/:id", handler.Split)
		api.GET("/options", handler.Options)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         600,
	})

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        corsHandler.Handler(router),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
