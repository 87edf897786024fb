package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/app"
	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// LifecycleDriver is the slice of the lifecycle service behind the
// transition and unit endpoints.
type LifecycleDriver interface {
	UnitOverrider
	Confirm(ctx context.Context, reservationID string, actor app.Actor) (domain.Reservation, error)
	Cancel(ctx context.Context, reservationID string, actor app.Actor) (domain.Reservation, error)
	CheckIn(ctx context.Context, reservationID string, actor app.Actor) (domain.Reservation, error)
	CheckOut(ctx context.Context, reservationID string, actor app.Actor) (domain.Reservation, error)
	MarkNoShow(ctx context.Context, reservationID string, actor app.Actor) (domain.Reservation, error)
}

// NewRouter assembles the API surface. The logger is used for the request
// log line and for 5xx diagnostics; corsOrigins feeds the CORS allow-list.
func NewRouter(allocation Allocator, lifecycle LifecycleDriver, availability AvailabilityReader, logger *zap.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(corsOrigins))

	r.NotFound(NotFoundHandler())
	r.MethodNotAllowed(MethodNotAllowedHandler())

	r.Get("/health", HealthHandler)

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", HandleAllocate(allocation, logger))
		r.Post("/{id}/confirm", HandleTransition(lifecycle.Confirm, logger))
		r.Post("/{id}/cancel", HandleTransition(lifecycle.Cancel, logger))
		r.Post("/{id}/check-in", HandleTransition(lifecycle.CheckIn, logger))
		r.Post("/{id}/check-out", HandleTransition(lifecycle.CheckOut, logger))
		r.Post("/{id}/no-show", HandleTransition(lifecycle.MarkNoShow, logger))
	})

	r.Patch("/units/{id}/status", HandleUnitStatusOverride(lifecycle, logger))

	r.Get("/services/{id}/availability", HandleUnitAvailability(availability, logger))
	r.Get("/slots/{id}/availability", HandleSlotAvailability(availability, logger))

	return r
}
