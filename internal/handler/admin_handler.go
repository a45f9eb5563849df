package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"adviceboard/internal/auth"
	"adviceboard/internal/errors"
	"adviceboard/internal/service"
)

// AdminHandler handles admin-only endpoints.
type AdminHandler struct {
	adviceService service.AdviceService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adviceService service.AdviceService) *AdminHandler {
	return &AdminHandler{adviceService: adviceService}
}

// VerifyResponse represents the verify response.
type VerifyResponse struct {
	Message string `json:"message"`
}

// Verify godoc
// @Summary Verify an advice (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advice ID"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/{id}/verify [put]
func (h *AdminHandler) Verify(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid advice id",
			Code:  "INVALID_UUID",
		})
	}

	if _, err := h.adviceService.Verify(c.Request().Context(), auth.CurrentIdentity(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		Message: "advice verified successfully",
	})
}
