package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/app"
	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// UnitOverrider is the slice of the lifecycle service behind the unit status
// endpoint.
type UnitOverrider interface {
	OverrideUnitStatus(ctx context.Context, unitID string, status domain.UnitStatus, actor app.Actor) (domain.Unit, error)
}

// HandleUnitStatusOverride returns the handler for PATCH /units/{id}/status.
func HandleUnitStatusOverride(svc UnitOverrider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req unitStatusRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, codeValidationError, validationMessage(err))
			return
		}

		unit, err := svc.OverrideUnitStatus(r.Context(), chi.URLParam(r, "id"), domain.UnitStatus(req.Status), actorFromRequest(r))
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, unitResponse{
			ID:        unit.ID,
			ServiceID: unit.ServiceID,
			Number:    unit.Number,
			Status:    string(unit.Status),
		})
	}
}

type unitStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance blocked cleaning"`
}

type unitResponse struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Number    string `json:"number"`
	Status    string `json:"status"`
}
