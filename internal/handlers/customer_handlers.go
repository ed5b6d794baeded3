package handlers

import (
	"errors"
	"net/http"

	"customers_backend/internal/models"
	"customers_backend/internal/services"
	"customers_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler holds the customer service.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

// CreateCustomer handles the creation of a new customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateCustomer: Failed to bind JSON", requestFields(c))
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateCustomer: Error from customerService.CreateCustomer", requestFields(c))
		respondCustomerError(c, err, "Failed to create customer.")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers handles fetching all active customers.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.customerService.GetCustomers(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetCustomers: Error from customerService.GetCustomers", requestFields(c))
		respondCustomerError(c, err, "Failed to fetch customers.")
		return
	}

	if customers == nil {
		customers = []models.CustomerResponse{}
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomerByID handles fetching a single customer by ID.
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	customerID, ok := parseCustomerID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		utils.LogError(err, "GetCustomerByID: Error from customerService.GetCustomerByID", requestFields(c))
		respondCustomerError(c, err, "Failed to fetch customer.")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles a full-replace update of a customer.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID, ok := parseCustomerID(c)
	if !ok {
		return
	}

	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateCustomer: Failed to bind JSON", requestFields(c))
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		utils.LogError(err, "UpdateCustomer: Error from customerService.UpdateCustomer", requestFields(c))
		respondCustomerError(c, err, "Failed to update customer.")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles soft-deleting a customer.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID, ok := parseCustomerID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		utils.LogError(err, "DeleteCustomer: Error from customerService.DeleteCustomer", requestFields(c))
		respondCustomerError(c, err, "Failed to delete customer.")
		return
	}
	c.Status(http.StatusNoContent)
}

// parseCustomerID reads the :id path parameter. On failure it has already responded.
func parseCustomerID(c *gin.Context) (int64, bool) {
	customerID, err := utils.StrToPositiveInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "customer ID "+err.Error())
		return 0, false
	}
	return customerID, true
}

// respondCustomerError maps service errors onto the API error envelope.
// Unknown errors become a 500 carrying fallback and no internal details.
func respondCustomerError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed.", err.Error()))
	case errors.Is(err, services.ErrImmutableField):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeImmutableField, "Email cannot be changed.", err.Error()))
	case errors.Is(err, services.ErrCustomerAlreadyExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Customer with this email already exists.", err.Error()))
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
	case errors.Is(err, services.ErrCustomerDeleted):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer has been deleted.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, fallback, "Internal error"))
	}
}

func requestFields(c *gin.Context) map[string]interface{} {
	return map[string]interface{}{
		"request_id":  c.GetString(utils.RequestIDKey),
		"customer_id": c.Param("id"),
	}
}
