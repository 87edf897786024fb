package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

func TestHandleUnitAvailability(t *testing.T) {
	t.Parallel()

	units := []domain.Unit{
		{ID: testUnitID, ServiceID: testServiceID, Number: "101", Status: domain.UnitStatusAvailable},
		{ID: "8f9a0b1c-2d3e-44f5-a6b7-c8d9e0f1a2b3", ServiceID: testServiceID, Number: "102", Status: domain.UnitStatusAvailable},
	}

	tests := []struct {
		name           string
		query          string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			query:          "?check_in=2026-02-10&check_out=2026-02-14",
			expectedStatus: http.StatusOK,
			expectedSubstr: `"number":"101"`,
		},
		{
			name:           "echoes the requested range",
			query:          "?check_in=2026-02-10&check_out=2026-02-14",
			expectedStatus: http.StatusOK,
			expectedSubstr: `"check_in":"2026-02-10"`,
		},
		{
			name:           "missing dates",
			query:          "",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedSubstr: "check_in and check_out query parameters are required",
		},
		{
			name:           "malformed check out",
			query:          "?check_in=2026-02-10&check_out=next-friday",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedSubstr: "check_out must be a date in the form 2006-01-02",
		},
		{
			name:           "service not found",
			query:          "?check_in=2026-02-10&check_out=2026-02-14",
			serviceErr:     domain.NotFound("service"),
			expectedStatus: http.StatusNotFound,
			expectedSubstr: `"code":"not_found"`,
		},
		{
			name:           "slot based service",
			query:          "?check_in=2026-02-10&check_out=2026-02-14",
			serviceErr:     domain.Validationf("availability by date range only applies to unit-based services"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedSubstr: "unit-based",
		},
		{
			name:           "reversed range",
			query:          "?check_in=2026-02-14&check_out=2026-02-10",
			serviceErr:     domain.Conflictf("check-out date must be after check-in date"),
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"conflict"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubAvailability{units: units, err: tt.serviceErr}
			r := chi.NewRouter()
			r.Get("/services/{id}/availability", HandleUnitAvailability(svc, zap.NewNop()))

			req := httptest.NewRequest(http.MethodGet, "/services/"+testServiceID+"/availability"+tt.query, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleUnitAvailability_EmptyListIsAnArray(t *testing.T) {
	t.Parallel()

	svc := &stubAvailability{}
	r := chi.NewRouter()
	r.Get("/services/{id}/availability", HandleUnitAvailability(svc, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/services/"+testServiceID+"/availability?check_in=2026-02-10&check_out=2026-02-14", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"units":[]`) {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

func TestHandleSlotAvailability(t *testing.T) {
	t.Parallel()

	price := int64(1500)
	slot := domain.Slot{
		ID:         testSlotID,
		ServiceID:  testServiceID,
		StartsAt:   time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC),
		Capacity:   10,
		Remaining:  4,
		PriceCents: &price,
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := &stubAvailability{slot: slot}
		r := chi.NewRouter()
		r.Get("/slots/{id}/availability", HandleSlotAvailability(svc, zap.NewNop()))

		req := httptest.NewRequest(http.MethodGet, "/slots/"+testSlotID+"/availability", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		for _, want := range []string{`"remaining":4`, `"capacity":10`, `"price_cents":1500`} {
			if !strings.Contains(rec.Body.String(), want) {
				t.Fatalf("expected response to contain %q, got %q", want, rec.Body.String())
			}
		}
	})

	t.Run("slot not found", func(t *testing.T) {
		t.Parallel()

		svc := &stubAvailability{err: domain.NotFound("slot")}
		r := chi.NewRouter()
		r.Get("/slots/{id}/availability", HandleSlotAvailability(svc, zap.NewNop()))

		req := httptest.NewRequest(http.MethodGet, "/slots/"+testSlotID+"/availability", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

type stubAvailability struct {
	units []domain.Unit
	slot  domain.Slot
	err   error
}

func (s *stubAvailability) ListFreeUnits(_ context.Context, _ string, _ domain.Stay) ([]domain.Unit, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.units, nil
}

func (s *stubAvailability) SlotAvailability(_ context.Context, _ string) (domain.Slot, error) {
	if s.err != nil {
		return domain.Slot{}, s.err
	}
	return s.slot, nil
}
