package routers

import (
	"fmt"

	"lesson-display-service/internal/app/config"
	"lesson-display-service/internal/app/delivery/http/controllers"
	"lesson-display-service/internal/app/delivery/http/middlewares"
	"lesson-display-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	displayController *controllers.DisplayController,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", constvars.HeaderAPIKey, constvars.HeaderRequestID},
		ExposedHeaders: []string{constvars.HeaderRequestID},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.GlobalRateLimit())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/"+constvars.ResourceDisplay, func(r chi.Router) {
				attachDisplayRoutes(r, middlewares, displayController)
			})
		})
	})
}
