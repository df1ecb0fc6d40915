package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minibank/minibank/internal/apperrors"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/dto"
	"github.com/minibank/minibank/internal/middleware"
)

// AdminHandler handles the admin-only client directory.
type AdminHandler struct {
	adminService portssvc.AdminSvcFacade
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(as portssvc.AdminSvcFacade) *AdminHandler {
	return &AdminHandler{adminService: as}
}

func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAdminHandler(services.Admin)

	admin := rg.Group("/admin")
	{
		admin.GET("/clients", h.ListClients)
		admin.POST("/clients/blacklist", h.ToggleBlacklist)
	}
}

// ListClients godoc
// @Summary List all clients
// @Description Returns the client directory. Admin callers only.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListClientsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/clients [get]
func (h *AdminHandler) ListClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	callerID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	clients, err := h.adminService.ListClients(c.Request.Context(), callerID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session is no longer valid"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
		default:
			logger.Error("Failed to list clients", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list clients"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// ToggleBlacklist godoc
// @Summary Toggle a client's blacklist flag
// @Description Flips the target client's blacklist flag and returns the updated record. Admin callers only.
// @Tags admin
// @Accept json
// @Produce json
// @Param target body dto.ToggleBlacklistRequest true "Target client"
// @Success 200 {object} dto.AdminClientResponse
// @Failure 400 {object} ErrorResponse "Missing target client id"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 404 {object} ErrorResponse "Target client does not exist"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/clients/blacklist [post]
func (h *AdminHandler) ToggleBlacklist(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	callerID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ToggleBlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "clientID is required"})
		return
	}

	client, err := h.adminService.ToggleBlacklist(c.Request.Context(), callerID, req.ClientID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "clientID is required"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session is no longer valid"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		default:
			logger.Error("Failed to toggle blacklist", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to toggle blacklist"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminClientResponse(client))
}
