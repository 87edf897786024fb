package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/app"
	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

// Allocator is the slice of the allocation service this handler needs.
type Allocator interface {
	Allocate(ctx context.Context, in app.AllocateInput) (domain.Reservation, error)
}

// HandleAllocate returns the handler for POST /reservations. The acting user
// becomes the reservation owner.
func HandleAllocate(svc Allocator, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req allocateRequest
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

		in, err := req.toInput(actorFromRequest(r))
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		res, err := svc.Allocate(r.Context(), in)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}
		respondJSON(w, http.StatusCreated, toReservationResponse(res))
	}
}

type allocateRequest struct {
	ServiceID           string          `json:"service_id" validate:"required,uuid"`
	SlotID              string          `json:"slot_id" validate:"required,uuid"`
	Quantity            int             `json:"quantity" validate:"omitempty,min=1,max=1000"`
	UnitID              string          `json:"unit_id" validate:"omitempty,uuid"`
	CheckIn             string          `json:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut            string          `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
	Extras              []allocateExtra `json:"extras" validate:"omitempty,max=20,dive"`
	RequireConfirmation bool            `json:"require_confirmation"`
}

type allocateExtra struct {
	ExtraID  string `json:"extra_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

func (r allocateRequest) toInput(actor app.Actor) (app.AllocateInput, error) {
	in := app.AllocateInput{
		ServiceID:           r.ServiceID,
		SlotID:              r.SlotID,
		OwnerID:             actor.ID,
		Quantity:            r.Quantity,
		UnitID:              r.UnitID,
		RequireConfirmation: r.RequireConfirmation,
	}

	if r.CheckIn != "" {
		checkIn, err := time.ParseInLocation(domain.DateFormat, r.CheckIn, time.UTC)
		if err != nil {
			return app.AllocateInput{}, domain.Validationf("check_in must be a date in the form %s", domain.DateFormat)
		}
		in.CheckIn = checkIn
	}
	if r.CheckOut != "" {
		checkOut, err := time.ParseInLocation(domain.DateFormat, r.CheckOut, time.UTC)
		if err != nil {
			return app.AllocateInput{}, domain.Validationf("check_out must be a date in the form %s", domain.DateFormat)
		}
		in.CheckOut = checkOut
	}

	for _, extra := range r.Extras {
		in.Extras = append(in.Extras, app.ExtraInput{ExtraID: extra.ExtraID, Quantity: extra.Quantity})
	}
	return in, nil
}

type reservationResponse struct {
	ID              string          `json:"id"`
	ServiceID       string          `json:"service_id"`
	SlotID          string          `json:"slot_id"`
	UnitID          *string         `json:"unit_id,omitempty"`
	OwnerID         string          `json:"owner_id"`
	Quantity        int             `json:"quantity"`
	CheckIn         string          `json:"check_in,omitempty"`
	CheckOut        string          `json:"check_out,omitempty"`
	Nights          int             `json:"nights,omitempty"`
	Status          string          `json:"status"`
	TotalPriceCents int64           `json:"total_price_cents"`
	Extras          []extraResponse `json:"extras,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CheckedInAt     *time.Time      `json:"checked_in_at,omitempty"`
	CheckedOutAt    *time.Time      `json:"checked_out_at,omitempty"`
}

type extraResponse struct {
	ExtraID    string `json:"extra_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

func toReservationResponse(res domain.Reservation) reservationResponse {
	resp := reservationResponse{
		ID:              res.ID,
		ServiceID:       res.ServiceID,
		SlotID:          res.SlotID,
		UnitID:          res.UnitID,
		OwnerID:         res.OwnerID,
		Quantity:        res.Quantity,
		Nights:          res.Nights,
		Status:          string(res.Status),
		TotalPriceCents: res.TotalPriceCents,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
		ConfirmedAt:     res.ConfirmedAt,
		CancelledAt:     res.CancelledAt,
		CheckedInAt:     res.CheckedInAt,
		CheckedOutAt:    res.CheckedOutAt,
	}
	if res.CheckIn != nil {
		resp.CheckIn = res.CheckIn.Format(domain.DateFormat)
	}
	if res.CheckOut != nil {
		resp.CheckOut = res.CheckOut.Format(domain.DateFormat)
	}
	for _, sel := range res.Extras {
		resp.Extras = append(resp.Extras, extraResponse{
			ExtraID:    sel.ExtraID,
			Name:       sel.Name,
			Quantity:   sel.Quantity,
			PriceCents: sel.PriceCents,
		})
	}
	return resp
}
