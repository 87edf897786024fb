package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/app"
	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// transitionFunc is one lifecycle method of the service, bound at router
// construction. All five transition endpoints share this handler shape.
type transitionFunc func(ctx context.Context, reservationID string, actor app.Actor) (domain.Reservation, error)

// HandleTransition returns the handler for POST /reservations/{id}/<action>.
func HandleTransition(fn transitionFunc, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r.Context(), chi.URLParam(r, "id"), actorFromRequest(r))
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, toReservationResponse(res))
	}
}
