package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/internal/domain/claims"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/dto"
)

// ClaimHandler handles HTTP requests for Claim documents.
type ClaimHandler struct {
	*BaseHandler
	service *claims.Service
}

// NewClaimHandler creates a new claim handler.
func NewClaimHandler(base *BaseHandler, service *claims.Service) *ClaimHandler {
	return &ClaimHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /document/claims - list with filtering.
func (h *ClaimHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := claims.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if companyID := c.Query("companyId"); companyID != "" {
		if parsed, err := id.Parse(companyID); err == nil {
			filter.CompanyID = &parsed
		}
	}

	if partnerID := c.Query("partnerId"); partnerID != "" {
		if parsed, err := id.Parse(partnerID); err == nil {
			filter.PartnerID = &parsed
		}
	}

	if invoiceID := c.Query("invoiceId"); invoiceID != "" {
		if parsed, err := id.Parse(invoiceID); err == nil {
			filter.InvoiceID = &parsed
		}
	}

	if claimType := c.Query("type"); claimType != "" {
		val := claims.ClaimType(claimType)
		filter.Type = &val
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromClaim(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /document/claims/:id
func (h *ClaimHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	claim, err := h.service.GetByID(ctx, claimID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromClaim(claim))
}

// Create handles POST /document/claims
func (h *ClaimHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateClaimRequest
	if !h.BindJSON(c, &req) {
		return
	}

	claim := req.ToEntity()

	if err := h.service.Create(ctx, claim); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromClaim(claim))
}

// Update handles PUT /document/claims/:id
func (h *ClaimHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateClaimRequest
	if !h.BindJSON(c, &req) {
		return
	}

	claim, err := h.service.GetByID(ctx, claimID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(claim)

	if err := h.service.Update(ctx, claim); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromClaim(claim))
}

// Delete handles DELETE /document/claims/:id - soft delete.
func (h *ClaimHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, claimID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetWarranty handles POST /document/claims/:id/set-warranty - interactive
// warranty evaluation on selected lines.
func (h *ClaimHandler) SetWarranty(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetWarrantyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	claim, err := h.service.SetWarranty(ctx, claimID, req.ToLineIDs())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromClaim(claim))
}

// RefreshWarranty handles POST /document/claims/:id/refresh-warranty -
// reactive recomputation; incomplete inputs blank the warranty fields.
func (h *ClaimHandler) RefreshWarranty(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	claim, err := h.service.RefreshWarranty(ctx, claimID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromClaim(claim))
}

// BuildLines handles POST /document/claims/:id/build-lines - prefill lines
// from the claim's invoice.
func (h *ClaimHandler) BuildLines(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	claim, err := h.service.BuildLinesFromInvoice(ctx, claimID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromClaim(claim))
}

// SetLineState handles POST /document/claims/:id/lines/:lineId/state
func (h *ClaimHandler) SetLineState(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	lineID, err := id.Parse(c.Param("lineId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid line id format"))
		return
	}

	var req dto.SetLineStateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	claim, err := h.service.SetLineState(ctx, claimID, lineID, claims.LineState(req.State))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromClaim(claim))
}
