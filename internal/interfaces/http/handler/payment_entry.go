package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	appledger "github.com/rentmanager/backend/internal/application/ledger"
	"github.com/rentmanager/backend/internal/interfaces/http/middleware"
)

// PaymentEntryHandler handles payment ledger HTTP requests
type PaymentEntryHandler struct {
	BaseHandler
	service *appledger.PaymentEntryService
}

// NewPaymentEntryHandler creates a new PaymentEntryHandler
func NewPaymentEntryHandler(service *appledger.PaymentEntryService) *PaymentEntryHandler {
	return &PaymentEntryHandler{service: service}
}

// Create handles POST /api/v1/payments
func (h *PaymentEntryHandler) Create(c *gin.Context) {
	landlordID, err := getLandlordID(c)
	if err != nil {
		h.Unauthorized(c, "Landlord context required")
		return
	}

	var req appledger.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	entry, err := h.service.CreateEntry(c.Request.Context(), landlordID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// Capture handles POST /api/v1/payments/:id/capture
func (h *PaymentEntryHandler) Capture(c *gin.Context) {
	landlordID, entryID, ok := h.scopedEntryID(c)
	if !ok {
		return
	}

	var req appledger.CaptureEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.service.CaptureEntry(c.Request.Context(), landlordID, entryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// Void handles POST /api/v1/payments/:id/void
func (h *PaymentEntryHandler) Void(c *gin.Context) {
	landlordID, entryID, ok := h.scopedEntryID(c)
	if !ok {
		return
	}

	var req appledger.VoidEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.service.VoidEntry(c.Request.Context(), landlordID, entryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// Get handles GET /api/v1/payments/:id
func (h *PaymentEntryHandler) Get(c *gin.Context) {
	landlordID, entryID, ok := h.scopedEntryID(c)
	if !ok {
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), landlordID, entryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// List handles GET /api/v1/payments
func (h *PaymentEntryHandler) List(c *gin.Context) {
	landlordID, err := getLandlordID(c)
	if err != nil {
		h.Unauthorized(c, "Landlord context required")
		return
	}

	var filter appledger.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	entries, total, err := h.service.ListEntries(c.Request.Context(), landlordID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

func (h *PaymentEntryHandler) scopedEntryID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	landlordID, err := getLandlordID(c)
	if err != nil {
		h.Unauthorized(c, "Landlord context required")
		return uuid.Nil, uuid.Nil, false
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment entry ID")
		return uuid.Nil, uuid.Nil, false
	}

	return landlordID, entryID, true
}
