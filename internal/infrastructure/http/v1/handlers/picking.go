package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/internal/domain/picking"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/dto"
)

// PickingHandler handles HTTP requests for Picking documents. Pickings are
// created from claims and cancelled; their moves are never edited directly.
type PickingHandler struct {
	*BaseHandler
	service *picking.Service
}

// NewPickingHandler creates a new picking handler.
func NewPickingHandler(base *BaseHandler, service *picking.Service) *PickingHandler {
	return &PickingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateForClaim handles POST /document/claims/:id/pickings
func (h *PickingHandler) CreateForClaim(c *gin.Context) {
	ctx := c.Request.Context()

	claimID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CreatePickingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	pick, err := h.service.CreateFromClaim(ctx, req.ToCreateRequest(claimID))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPicking(pick))
}

// List handles GET /document/pickings - list with filtering.
func (h *PickingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := picking.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if claimID := c.Query("claimId"); claimID != "" {
		if parsed, err := id.Parse(claimID); err == nil {
			filter.ClaimID = &parsed
		}
	}

	if pickType := c.Query("type"); pickType != "" {
		val := picking.Type(pickType)
		filter.Type = &val
	}

	if state := c.Query("state"); state != "" {
		val := picking.State(state)
		filter.State = &val
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
		items[i] = dto.FromPicking(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /document/pickings/:id
func (h *PickingHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	pickingID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	pick, err := h.service.GetByID(ctx, pickingID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPicking(pick))
}

// Cancel handles POST /document/pickings/:id/cancel - cancel the picking
// and free its claim lines for a new shipment.
func (h *PickingHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	pickingID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	pick, err := h.service.Cancel(ctx, pickingID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPicking(pick))
}
