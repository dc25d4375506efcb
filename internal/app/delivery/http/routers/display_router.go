package routers

import (
	"lesson-display-service/internal/app/delivery/http/controllers"
	"lesson-display-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDisplayRoutes(router chi.Router, middlewares *middlewares.Middlewares, displayController *controllers.DisplayController) {
	router.Get("/", displayController.GetDisplay)
	router.Get("/slots", displayController.GetSlots)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.RequireControlAPIKey)
		r.Use(middlewares.ControlRateLimit)

		r.Post("/pause", displayController.Pause)
		r.Post("/resume", displayController.Resume)
		r.Post("/next", displayController.StepNext)
		r.Post("/previous", displayController.StepPrevious)
		r.Post("/refresh", displayController.Refresh)
		r.Put("/override", displayController.ApplyOverride)
		r.Delete("/override", displayController.ClearOverride)
	})
}
