package handler

import (
	"customer-registry/internal/api/handler/dto"
	"customer-registry/internal/domain/customer"
	"log/slog"
	"net/http"
	"strconv"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// CreateCustomer handles POST /api/customers
// @Summary Create a new customer
// @Description Creates a customer. An inline address with a non-blank line1 is stored as the primary address in the same transaction.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer creation request"
// @Success 201 {object} dto.IDResponse "Customer created"
// @Failure 400 {object} dto.ErrorResponse "validation_failed with the offending fields"
// @Failure 409 {object} dto.ErrorResponse "email_exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.Input, req.Address)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.String("customerID", created.ID))
	respondJSON(w, http.StatusCreated, dto.IDResponse{ID: created.ID})
}

// ListCustomers handles GET /api/customers
// @Summary List customers
// @Description Lists customers with exact-match filters, a case-insensitive search, sorting and paging. Each row carries its address count.
// @Tags Customers
// @Produce json
// @Param page query int false "Page number (from 1)"
// @Param pageSize query int false "Page size (1-100, default 10)"
// @Param city query string false "Exact city"
// @Param state query string false "Exact state"
// @Param pincode query string false "Exact pincode"
// @Param search query string false "Substring of first name, last name, email or phone"
// @Param sortBy query string false "Sort column" Enums(first_name, last_name, phone, city, state, pincode, email, account_type, created_at, updated_at)
// @Param sortDir query string false "Sort direction" Enums(asc, desc)
// @Param onlyMultipleAddresses query string false "Only customers with more than one address (true/1/yes/on)"
// @Success 200 {object} dto.CustomerListResponse "Page of customers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	h.logger.DebugContext(r.Context(), "Received list customers request", slog.Any("query", q))

	res, err := h.service.ListCustomers(r.Context(), q)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(res.Customers)), slog.Int("total", res.Total))
	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(res))
}

// parseListQuery reads listing parameters from the query string. Malformed
// numbers are treated as absent and fall back to the defaults.
func parseListQuery(r *http.Request) customer.ListQuery {
	v := r.URL.Query()
	atoi := func(key string) int {
		n, err := strconv.Atoi(v.Get(key))
		if err != nil {
			return 0
		}
		return n
	}
	return customer.ListQuery{
		City:                  v.Get("city"),
		State:                 v.Get("state"),
		Pincode:               v.Get("pincode"),
		Search:                v.Get("search"),
		OnlyMultipleAddresses: customer.ParseBoolish(v.Get("onlyMultipleAddresses")),
		SortBy:                v.Get("sortBy"),
		SortDir:               v.Get("sortDir"),
		Page:                  atoi("page"),
		PageSize:              atoi("pageSize"),
	}
}

// GetCustomer handles GET /api/customers/{customerID}
// @Summary Retrieve a customer
// @Description Returns the customer with its addresses (primary first, then newest) and transactions (newest first).
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerDetailResponse "Customer details"
// @Failure 404 {object} dto.ErrorResponse "not_found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("customerID", customerID))

	detail, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Customer retrieved successfully")
	respondJSON(w, http.StatusOK, dto.NewCustomerDetailResponse(detail))
}

// UpdateCustomer handles PUT /api/customers/{customerID}
// @Summary Update a customer
// @Description Partial update: only supplied fields are written and updated_at is refreshed.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param request body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} dto.UpdatedResponse "Customer updated"
// @Failure 400 {object} dto.ErrorResponse "validation_failed or no_fields"
// @Failure 404 {object} dto.ErrorResponse "not_found"
// @Failure 409 {object} dto.ErrorResponse "email_exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("customerID", customerID))

	var req dto.UpdateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.UpdateCustomer(r.Context(), customerID, req); err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Customer updated successfully")
	respondJSON(w, http.StatusOK, dto.UpdatedResponse{Updated: true})
}

// DeleteCustomer handles DELETE /api/customers/{customerID}
// @Summary Delete a customer
// @Description Deletes a customer and its addresses. Customers with transactions cannot be deleted.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.DeletedResponse "Customer deleted"
// @Failure 400 {object} dto.ErrorResponse "linked_transactions with count"
// @Failure 404 {object} dto.ErrorResponse "not_found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("customerID", customerID))

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to delete customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	logger.InfoContext(r.Context(), "Customer deleted successfully")
	respondJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: true})
}
