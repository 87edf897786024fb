package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Nicasiomarques/booking-host-sub000/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeValidationError    = "validation_error"
	codeForbidden          = "forbidden"
	codeConflict           = "conflict"
	codeLedgerCorruption   = "ledger_corruption"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the error's kind onto a status code and envelope.
// Domain messages are written for end users, so conflict and validation
// bodies pass them through verbatim; internal details never leave the server.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		writeError(w, http.StatusUnprocessableEntity, codeValidationError, err.Error())
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case domain.KindConflict:
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case domain.KindForbidden:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case domain.KindLedgerCorruption:
		if logger != nil {
			logger.Error("capacity ledger inconsistency", zap.Error(err))
		}
		writeError(w, http.StatusInternalServerError, codeLedgerCorruption, "capacity ledger inconsistency detected")
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
