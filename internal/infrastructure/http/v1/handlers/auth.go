package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fevxie/rma/internal/core/apperror"
	appctx "github.com/fevxie/rma/internal/core/context"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/auth"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/dto"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/middleware"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromToken(token))
}

// Register handles POST /auth/register - admin-only user creation.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	companyID, err := id.Parse(req.CompanyID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid company id"))
		return
	}

	user, err := h.service.Register(ctx, req.Email, req.Password, companyID, req.IsAdmin)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":    userCtx.UserID,
		"companyId": userCtx.CompanyID,
		"email":     userCtx.Email,
		"roles":     userCtx.Roles,
		"isAdmin":   userCtx.IsAdmin,
	})
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)

	protected.GET("/me", h.Me)
	// NOTE: user creation is privileged.
	protected.POST("/register", middleware.RequireAdmin(), h.Register)
}
