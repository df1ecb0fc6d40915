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

// ClientHandler handles the authenticated client's own profile.
type ClientHandler struct {
	clientService portssvc.ClientSvcFacade
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs portssvc.ClientSvcFacade) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

func registerClientRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewClientHandler(services.Client)

	clients := rg.Group("/clients")
	{
		clients.GET("/me", h.GetMyProfile)
		clients.PATCH("/me", h.UpdateMyProfile)
	}
}

// GetMyProfile godoc
// @Summary Get own profile
// @Description Returns the authenticated client's profile.
// @Tags clients
// @Produce json
// @Success 200 {object} dto.ClientResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/me [get]
func (h *ClientHandler) GetMyProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session is no longer valid"})
			return
		}
		logger.Error("Failed to load profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// UpdateMyProfile godoc
// @Summary Update own profile
// @Description Updates the authenticated client's mutable profile fields.
// @Tags clients
// @Accept json
// @Produce json
// @Param profile body dto.UpdateClientRequest true "Profile fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/me [patch]
func (h *ClientHandler) UpdateMyProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session is no longer valid"})
		default:
			logger.Error("Failed to update profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}
