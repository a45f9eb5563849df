package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"adviceboard/internal/auth"
	"adviceboard/internal/errors"
	"adviceboard/internal/service"
)

// AdviceHandler handles advice endpoints.
type AdviceHandler struct {
	adviceService service.AdviceService
}

// NewAdviceHandler creates a new advice handler.
func NewAdviceHandler(adviceService service.AdviceService) *AdviceHandler {
	return &AdviceHandler{adviceService: adviceService}
}

// CreateAdviceRequest represents a create request.
type CreateAdviceRequest struct {
	Type  string `json:"type"`
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// UpdateAdviceRequest represents a partial update. Absent fields are left
// unchanged; verified and author_id are not accepted here.
type UpdateAdviceRequest struct {
	Type  *string `json:"type"`
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

// Create godoc
// @Summary Create an advice
// @Tags advice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAdviceRequest true "Advice data"
// @Success 201 {object} model.Advice
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /advice [post]
func (h *AdviceHandler) Create(c echo.Context) error {
	var req CreateAdviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: errors.ErrTitleAndTextRequired.Error(),
			Code:  "TITLE_TEXT_REQUIRED",
		})
	}

	advice, err := h.adviceService.Create(c.Request().Context(), auth.CurrentIdentity(c), service.CreateAdviceInput{
		Type:  req.Type,
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, advice)
}

// List godoc
// @Summary List advice visible to the caller
// @Description Admins see all records, everyone else only verified ones.
// @Tags advice
// @Produce json
// @Success 200 {array} model.Advice
// @Failure 500 {object} errors.ErrorResponse
// @Router /advice [get]
func (h *AdviceHandler) List(c echo.Context) error {
	records, err := h.adviceService.List(c.Request().Context(), auth.CurrentIdentity(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, records)
}

// ListMine godoc
// @Summary List the caller's own advice
// @Tags advice
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Advice
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /advice/my [get]
func (h *AdviceHandler) ListMine(c echo.Context) error {
	records, err := h.adviceService.ListMine(c.Request().Context(), auth.CurrentIdentity(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, records)
}

// GetByID godoc
// @Summary Get one advice by id
// @Tags advice
// @Produce json
// @Param id path string true "Advice ID"
// @Success 200 {object} model.Advice
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /advice/{id} [get]
func (h *AdviceHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid advice id",
			Code:  "INVALID_UUID",
		})
	}

	advice, err := h.adviceService.GetByID(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, advice)
}

// Update godoc
// @Summary Update an advice
// @Description Only type, title and text can be changed, by the author or an admin.
// @Tags advice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advice ID"
// @Param request body UpdateAdviceRequest true "Fields to change"
// @Success 200 {object} model.Advice
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /advice/{id} [put]
func (h *AdviceHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid advice id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateAdviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	advice, err := h.adviceService.Update(c.Request().Context(), auth.CurrentIdentity(c), id, service.UpdateAdviceInput{
		Type:  req.Type,
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, advice)
}

// Delete godoc
// @Summary Delete an advice
// @Tags advice
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advice ID"
// @Success 200 {object} model.Advice
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /advice/{id} [delete]
func (h *AdviceHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid advice id",
			Code:  "INVALID_UUID",
		})
	}

	advice, err := h.adviceService.Delete(c.Request().Context(), auth.CurrentIdentity(c), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, advice)
}
