package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/invoicing"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler exposes the read-only invoice data used to anchor
// warranty windows and prefill claim lines.
type InvoiceHandler struct {
	*BaseHandler
	repo invoicing.Repository
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, repo invoicing.Repository) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		repo:        repo,
	}
}

// Get handles GET /invoices/:id - invoice header with lines.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	inv, err := h.repo.GetByID(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	lines, err := h.repo.ListLines(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(inv, lines))
}

// GetLine handles GET /invoices/lines/:lineId - one invoice line.
func (h *InvoiceHandler) GetLine(c *gin.Context) {
	ctx := c.Request.Context()

	lineID, err := id.Parse(c.Param("lineId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	line, err := h.repo.GetLine(ctx, lineID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoiceLine(line))
}
