package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"imagify/internal/errors"
	"imagify/internal/provider"
	"imagify/internal/service"
)

// MediaHandler handles transformation endpoints. Transformations require
// authentication but consume no credits.
type MediaHandler struct {
	transform service.TransformService
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(transform service.TransformService) *MediaHandler {
	return &MediaHandler{transform: transform}
}

// TransformRequest represents a media transformation request.
type TransformRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
	// Optimize-only knobs.
	Quality string `json:"quality,omitempty"`
	Format  string `json:"format,omitempty"`
}

// TransformResponse represents a transformed artifact reference.
type TransformResponse struct {
	ResultImage string `json:"resultImage"`
}

// RemoveBackground godoc
// @Summary Remove the background from a hosted image
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransformRequest true "Source image"
// @Success 200 {object} TransformResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /media/remove-background [post]
func (h *MediaHandler) RemoveBackground(c echo.Context) error {
	return h.handle(c, provider.TransformRemoveBackground)
}

// Upscale godoc
// @Summary Upscale a hosted image
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransformRequest true "Source image"
// @Success 200 {object} TransformResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /media/upscale [post]
func (h *MediaHandler) Upscale(c echo.Context) error {
	return h.handle(c, provider.TransformUpscale)
}

// Enhance godoc
// @Summary Enhance a hosted image
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransformRequest true "Source image"
// @Success 200 {object} TransformResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /media/enhance [post]
func (h *MediaHandler) Enhance(c echo.Context) error {
	return h.handle(c, provider.TransformEnhance)
}

// Optimize godoc
// @Summary Optimize delivery format and quality of a hosted image
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransformRequest true "Source image and options"
// @Success 200 {object} TransformResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /media/optimize [post]
func (h *MediaHandler) Optimize(c echo.Context) error {
	return h.handle(c, provider.TransformOptimize)
}

func (h *MediaHandler) handle(c echo.Context, kind provider.TransformKind) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req TransformRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.transform.Transform(c.Request().Context(), req.ImageURL, kind, provider.TransformOptions{
		Quality: req.Quality,
		Format:  req.Format,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		// Keep the kind-specific message from the workflow.
		httpErr.Message = err.Error()
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TransformResponse{ResultImage: result})
}
