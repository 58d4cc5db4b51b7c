package handler

import (
	"customer-registry/internal/api/handler/dto"
	"customer-registry/internal/domain/address"
	"log/slog"
	"net/http"
)

type AddressHandler struct {
	service address.AddressService
	logger  *slog.Logger
}

func NewAddressHandler(s address.AddressService, l *slog.Logger) *AddressHandler {
	if s == nil {
		panic("address service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AddressHandler{
		service: s,
		logger:  l.With("component", "AddressHandler"),
	}
}

// ListAddresses handles GET /api/customers/{customerID}/addresses
// @Summary List a customer's addresses
// @Description Primary address first, then newest first. An unknown customer id returns 404 customer_not_found rather than an empty list.
// @Tags Addresses
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {array} dto.AddressResponse "Addresses"
// @Failure 404 {object} dto.ErrorResponse "customer_not_found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID}/addresses [get]
// @Security BearerAuth
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("customerID", customerID))

	addrs, err := h.service.ListAddresses(r.Context(), customerID)
	if err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to list addresses", slog.Any("error", err))
		respondOwnerError(w, err)
		return
	}

	logger.DebugContext(r.Context(), "Addresses listed", slog.Int("count", len(addrs)))
	respondJSON(w, http.StatusOK, dto.NewAddressResponses(addrs))
}

// CreateAddress handles POST /api/customers/{customerID}/addresses
// @Summary Add an address to a customer
// @Description Creating with is_primary demotes the other addresses. A customer's only address is always primary.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param request body dto.AddressRequest true "Address payload"
// @Success 201 {object} dto.IDResponse "Address created"
// @Failure 400 {object} dto.ErrorResponse "line1_required"
// @Failure 404 {object} dto.ErrorResponse "customer_not_found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID}/addresses [post]
// @Security BearerAuth
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("customerID", customerID))

	var req dto.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	addr, err := h.service.CreateAddress(r.Context(), customerID, req)
	if err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to create address", slog.Any("error", err))
		respondOwnerError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Address created successfully", slog.String("addressID", addr.ID))
	respondJSON(w, http.StatusCreated, dto.IDResponse{ID: addr.ID})
}

// UpdateAddress handles PUT /api/addresses/{addressID}
// @Summary Update an address
// @Description Partial update. Setting is_primary to true demotes the customer's other addresses.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param addressID path string true "Address ID"
// @Param request body dto.AddressRequest true "Fields to change"
// @Success 200 {object} dto.UpdatedResponse "Address updated"
// @Failure 400 {object} dto.ErrorResponse "no_fields or line1_required"
// @Failure 404 {object} dto.ErrorResponse "not_found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/addresses/{addressID} [put]
// @Security BearerAuth
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := getIDFromURL(r, "addressID")
	if err != nil {
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("addressID", addressID))

	var req dto.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.UpdateAddress(r.Context(), addressID, req); err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to update address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Address updated successfully")
	respondJSON(w, http.StatusOK, dto.UpdatedResponse{Updated: true})
}

// DeleteAddress handles DELETE /api/addresses/{addressID}
// @Summary Delete an address
// @Description If exactly one address remains for the customer it becomes primary.
// @Tags Addresses
// @Produce json
// @Param addressID path string true "Address ID"
// @Success 200 {object} dto.DeletedResponse "Address deleted"
// @Failure 404 {object} dto.ErrorResponse "not_found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/addresses/{addressID} [delete]
// @Security BearerAuth
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := getIDFromURL(r, "addressID")
	if err != nil {
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("addressID", addressID))

	if err := h.service.DeleteAddress(r.Context(), addressID); err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to delete address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Address deleted successfully")
	respondJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: true})
}
