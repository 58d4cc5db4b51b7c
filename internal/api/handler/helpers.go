package handler

import (
	"customer-registry/internal/api/handler/dto"
	"customer-registry/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	CodeInvalidRequest     = "invalid_request"
	CodeNoFields           = "no_fields"
	CodeNotFound           = "not_found"
	CodeCustomerNotFound   = "customer_not_found"
	CodeEmailExists        = "email_exists"
	CodeConflict           = "conflict"
	CodeLinkedTransactions = "linked_transactions"
	CodeUnauthorized       = "unauthorized"
	CodeInternal           = "internal_error"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: no request body", apperrors.ErrInvalidArgument)
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", apperrors.ErrInvalidArgument, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"code":"internal_error","message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// errorDetail maps a service error to an HTTP status and response body.
// Anything unrecognised is reported as an opaque 500.
func errorDetail(err error) (int, dto.ErrorDetail) {
	var validationError *apperrors.ValidationError
	var linkedErr *apperrors.LinkedRecordsError

	switch {
	case errors.As(err, &linkedErr):
		count := linkedErr.Count
		return http.StatusBadRequest, dto.ErrorDetail{
			Code:    CodeLinkedTransactions,
			Message: "Customer has linked transactions and cannot be deleted.",
			Count:   &count,
		}
	case errors.Is(err, apperrors.ErrLinkedTransactions):
		return http.StatusBadRequest, dto.ErrorDetail{
			Code:    CodeLinkedTransactions,
			Message: "Customer has linked transactions and cannot be deleted.",
		}
	case errors.As(err, &validationError):
		detail := dto.ErrorDetail{
			Code:    validationError.Code,
			Message: validationError.Error(),
			Field:   validationError.Field,
			Fields:  validationError.Fields,
		}
		if detail.Code == "" {
			detail.Code = apperrors.CodeValidationFailed
		}
		if len(detail.Fields) == 0 && detail.Field != "" {
			detail.Fields = []string{detail.Field}
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrNoFields):
		return http.StatusBadRequest, dto.ErrorDetail{Code: CodeNoFields, Message: "No updatable fields supplied."}
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, dto.ErrorDetail{Code: CodeInvalidRequest, Message: err.Error()}
	case errors.Is(err, apperrors.ErrEmailExists):
		return http.StatusConflict, dto.ErrorDetail{Code: CodeEmailExists, Message: "Email already belongs to another customer.", Field: "email"}
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorDetail{Code: CodeConflict, Message: "Request conflicts with existing data."}
	case errors.Is(err, apperrors.ErrCustomerNotFound):
		return http.StatusNotFound, dto.ErrorDetail{Code: CodeNotFound, Message: "Customer not found."}
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.ErrorDetail{Code: CodeNotFound, Message: "Resource not found."}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorDetail{Code: CodeUnauthorized, Message: "Unauthorized."}
	default:
		return http.StatusInternalServerError, dto.ErrorDetail{Code: CodeInternal, Message: "An unexpected error occurred."}
	}
}

func respondError(w http.ResponseWriter, err error) {
	status, detail := errorDetail(err)
	if status == http.StatusInternalServerError {
		slog.Default().Error("Unhandled internal error", "error", err)
	}
	respondJSON(w, status, dto.ErrorResponse{Error: detail})
}

// respondOwnerError is respondError for routes nested under a customer: a
// missing owner is reported as customer_not_found.
func respondOwnerError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrCustomerNotFound) {
		respondJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: dto.ErrorDetail{
			Code:    CodeCustomerNotFound,
			Message: "Customer not found.",
		}})
		return
	}
	respondError(w, err)
}

func logLevelFor(err error) slog.Level {
	status, _ := errorDetail(err)
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelWarn
}

func getIDFromURL(r *http.Request, key string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, key))
	if id == "" {
		return "", fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, key)
	}
	return id, nil
}
