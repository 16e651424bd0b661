package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"imagify/internal/model"
)

// ContextUserKey is where the auth middleware stores the resolved user.
const ContextUserKey = "auth_user"

// currentUser returns the user the authentication gate resolved for this
// request. Handlers behind the gate can rely on it being present; the 401
// here only guards against wiring mistakes.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}
