package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// AvailabilityReader answers the read-only availability endpoints.
type AvailabilityReader interface {
	ListFreeUnits(ctx context.Context, serviceID string, stay domain.Stay) ([]domain.Unit, error)
	SlotAvailability(ctx context.Context, slotID string) (domain.Slot, error)
}

// HandleUnitAvailability returns the handler for
// GET /services/{id}/availability?check_in=...&check_out=...
func HandleUnitAvailability(svc AvailabilityReader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stay, err := stayFromQuery(r)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		units, err := svc.ListFreeUnits(r.Context(), chi.URLParam(r, "id"), stay)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		resp := unitAvailabilityResponse{
			CheckIn:  stay.CheckIn.Format(domain.DateFormat),
			CheckOut: stay.CheckOut.Format(domain.DateFormat),
			Units:    make([]unitResponse, 0, len(units)),
		}
		for _, unit := range units {
			resp.Units = append(resp.Units, unitResponse{
				ID:        unit.ID,
				ServiceID: unit.ServiceID,
				Number:    unit.Number,
				Status:    string(unit.Status),
			})
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleSlotAvailability returns the handler for GET /slots/{id}/availability.
func HandleSlotAvailability(svc AvailabilityReader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := svc.SlotAvailability(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}
		respondJSON(w, http.StatusOK, slotAvailabilityResponse{
			SlotID:     slot.ID,
			ServiceID:  slot.ServiceID,
			StartsAt:   slot.StartsAt,
			EndsAt:     slot.EndsAt,
			Capacity:   slot.Capacity,
			Remaining:  slot.Remaining,
			PriceCents: slot.PriceCents,
		})
	}
}

func stayFromQuery(r *http.Request) (domain.Stay, error) {
	rawIn := r.URL.Query().Get("check_in")
	rawOut := r.URL.Query().Get("check_out")
	if rawIn == "" || rawOut == "" {
		return domain.Stay{}, domain.Validationf("check_in and check_out query parameters are required")
	}

	checkIn, err := time.ParseInLocation(domain.DateFormat, rawIn, time.UTC)
	if err != nil {
		return domain.Stay{}, domain.Validationf("check_in must be a date in the form %s", domain.DateFormat)
	}
	checkOut, err := time.ParseInLocation(domain.DateFormat, rawOut, time.UTC)
	if err != nil {
		return domain.Stay{}, domain.Validationf("check_out must be a date in the form %s", domain.DateFormat)
	}
	return domain.Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

type unitAvailabilityResponse struct {
	CheckIn  string         `json:"check_in"`
	CheckOut string         `json:"check_out"`
	Units    []unitResponse `json:"units"`
}

type slotAvailabilityResponse struct {
	SlotID     string    `json:"slot_id"`
	ServiceID  string    `json:"service_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Capacity   int       `json:"capacity"`
	Remaining  int       `json:"remaining"`
	PriceCents *int64    `json:"price_cents,omitempty"`
}
