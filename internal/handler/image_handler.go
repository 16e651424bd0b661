package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"imagify/internal/errors"
	"imagify/internal/service"
)

// ImageHandler handles generation and history endpoints.
type ImageHandler struct {
	generation service.GenerationService
	history    service.HistoryService
}

// NewImageHandler creates a new image handler.
func NewImageHandler(generation service.GenerationService, history service.HistoryService) *ImageHandler {
	return &ImageHandler{generation: generation, history: history}
}

// GenerateRequest represents a text-to-image request.
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Style  string `json:"style"`
}

// GenerateResponse represents a completed generation.
type GenerateResponse struct {
	ResultImage   string `json:"resultImage"`
	ImageURL      string `json:"imageUrl"`
	CreditBalance int    `json:"creditBalance"`
	GenerationID  string `json:"generationId"`
}

// GenerateImage godoc
// @Summary Generate an image from a text prompt
// @Description Costs one credit, taken only when the generation succeeds and its record is stored.
// @Tags image
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateRequest true "Prompt"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 408 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /image/generate-image [post]
func (h *ImageHandler) GenerateImage(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.generation.Generate(c.Request().Context(), user.ID, req.Prompt, req.Style)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, GenerateResponse{
		ResultImage:   result.ImageURL,
		ImageURL:      result.ImageURL,
		CreditBalance: result.CreditBalance,
		GenerationID:  result.GenerationID.String(),
	})
}

// UserGenerations godoc
// @Summary Get the caller's generation history summary
// @Tags image
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.HistorySummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /image/user-generations [get]
func (h *ImageHandler) UserGenerations(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	summary, err := h.history.Summary(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}

// GetGeneration godoc
// @Summary Get one generation record owned by the caller
// @Tags image
// @Produce json
// @Security BearerAuth
// @Param id path string true "Generation ID"
// @Success 200 {object} model.Generation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /image/generation/{id} [get]
func (h *ImageHandler) GetGeneration(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	gen, err := h.history.Get(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"generation": gen})
}
