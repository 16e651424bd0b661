package router

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"imagify/internal/auth"
	"imagify/internal/config"
	errs "imagify/internal/errors"
	"imagify/internal/handler"
	"imagify/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	credits service.CreditService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	imageHandler *handler.ImageHandler,
	mediaHandler *handler.MediaHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/verify-for-reset", authHandler.VerifyForReset)
	api.POST("/reset-password", authHandler.ResetPassword)

	// Secured routes: verify the token, then re-resolve the user against the
	// identity store so a deleted account gets 401 even while its token is
	// still cryptographically valid.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.ContextUserKey,
		// The legacy "token" header is accepted for backward compatibility.
		TokenLookup: "header:Authorization:Bearer ,header:token",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			user, err := credits.GetUser(c.Request().Context(), claims.UserID)
			if err != nil {
				return nil, err
			}
			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var httpErr *errs.HTTPError
			switch {
			case stderrors.Is(err, errs.ErrTokenExpired),
				stderrors.Is(err, errs.ErrInvalidToken),
				stderrors.Is(err, errs.ErrUserNotFound):
				httpErr = errs.MapErrorToHTTP(err)
			default:
				// No token presented at all.
				httpErr = errs.MapErrorToHTTP(errs.ErrUnauthenticated)
			}
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	// Account routes
	secured.GET("/credits", userHandler.GetCredits)
	secured.GET("/check-token", userHandler.CheckToken)
	secured.PUT("/preferences", userHandler.UpdatePreferences)

	// Generation routes
	secured.POST("/image/generate-image", imageHandler.GenerateImage)
	secured.GET("/image/user-generations", imageHandler.UserGenerations)
	secured.GET("/image/generation/:id", imageHandler.GetGeneration)

	// Transformation routes
	secured.POST("/media/remove-background", mediaHandler.RemoveBackground)
	secured.POST("/media/upscale", mediaHandler.Upscale)
	secured.POST("/media/enhance", mediaHandler.Enhance)
	secured.POST("/media/optimize", mediaHandler.Optimize)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
