package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/kenziahmos000/web-project-new/internal/auth"
	"github.com/kenziahmos000/web-project-new/internal/config"
	"github.com/kenziahmos000/web-project-new/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	recipeHandler *handler.RecipeHandler,
	favoriteHandler *handler.FavoriteHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Service banner with the endpoint map.
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Backend is running!",
			"endpoints": echo.Map{
				"auth": echo.Map{
					"register": "POST /api/auth/register",
					"login":    "POST /api/auth/login",
					"me":       "GET /api/auth/me",
					"users":    "GET /api/auth/users (admin only)",
				},
				"recipes": echo.Map{
					"getAll": "GET /api/recipes",
					"getOne": "GET /api/recipes/:id",
					"create": "POST /api/recipes (requires auth)",
					"update": "PUT /api/recipes/:id (requires auth)",
					"delete": "DELETE /api/recipes/:id (requires auth)",
				},
				"favorites": echo.Map{
					"getAll": "GET /api/favorites (requires auth)",
					"add":    "POST /api/favorites/:recipeId (requires auth)",
					"remove": "DELETE /api/favorites/:recipeId (requires auth)",
				},
			},
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded and bundled images are plain static files.
	e.Static("/uploads", cfg.UploadDir)
	e.Static("/assets", cfg.AssetDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/recipes", recipeHandler.List)
	api.GET("/recipes/:id", recipeHandler.Get)

	// Secured routes (require a valid session token)
	secured := api.Group("", auth.Middleware(jwtService))

	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/auth/users", authHandler.ListUsers)

	secured.POST("/recipes", recipeHandler.Create)
	secured.PUT("/recipes/:id", recipeHandler.Update)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)

	secured.GET("/favorites", favoriteHandler.List)
	secured.POST("/favorites/:recipeId", favoriteHandler.Add)
	secured.DELETE("/favorites/:recipeId", favoriteHandler.Remove)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
