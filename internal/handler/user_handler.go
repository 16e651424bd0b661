package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"imagify/internal/errors"
	"imagify/internal/model"
	"imagify/internal/service"
)

// UserHandler handles authenticated account endpoints.
type UserHandler struct {
	credits service.CreditService
	users   service.PreferencesUpdater
}

// NewUserHandler creates a new user handler.
func NewUserHandler(credits service.CreditService, users service.PreferencesUpdater) *UserHandler {
	return &UserHandler{credits: credits, users: users}
}

// CreditsResponse represents a credit balance response.
type CreditsResponse struct {
	Credits int          `json:"credits"`
	User    UserResponse `json:"user"`
}

// PreferencesRequest updates the nested notification preferences.
type PreferencesRequest struct {
	EmailUpdates bool `json:"email_updates"`
	CreditAlerts bool `json:"credit_alerts"`
}

// GetCredits godoc
// @Summary Get the current credit balance
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CreditsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /credits [get]
func (h *UserHandler) GetCredits(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	balance, fresh, err := h.credits.GetBalance(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CreditsResponse{
		Credits: balance,
		User:    toUserResponse(fresh),
	})
}

// CheckToken godoc
// @Summary Report whether the presented token is valid
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /check-token [get]
func (h *UserHandler) CheckToken(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":   true,
		"user_id": user.ID,
	})
}

// UpdatePreferences godoc
// @Summary Update notification preferences
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PreferencesRequest true "Preferences"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /preferences [put]
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	prefs := model.NotificationPrefs{
		EmailUpdates: req.EmailUpdates,
		CreditAlerts: req.CreditAlerts,
	}
	updated, err := h.users.UpdatePreferences(c.Request().Context(), user.ID, prefs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toUserResponse(updated))
}
