package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/devconnector/connector-api/docs"
	"github.com/devconnector/connector-api/internal/api/handler"
	"github.com/devconnector/connector-api/internal/api/middleware"
	"github.com/devconnector/connector-api/internal/core/ports"
	"github.com/devconnector/connector-api/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "connector"

// Deps are the services the router mounts. Checks feed the readiness probe.
type Deps struct {
	Tokens   ports.TokenVerifier
	Auth     ports.AuthService
	Profiles ports.ProfileService
	Posts    ports.PostService
	Accounts ports.AccountService
	Checks   map[string]handlers.Check
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware(metricsSubsystem))

	authHandler := handler.NewAuthHandler(d.Auth)
	profileHandler := handler.NewProfileHandler(d.Profiles, d.Accounts)
	postHandler := handler.NewPostHandler(d.Posts)
	auth := middleware.Auth(d.Tokens)

	// --- Users / auth ---
	e.POST("/api/users", authHandler.Register)
	e.POST("/api/auth", authHandler.Login)
	e.GET("/api/auth", authHandler.Me, auth)

	// --- Profiles ---
	profile := e.Group("/api/profile")
	profile.GET("", profileHandler.List)
	profile.GET("/user/:user_id", profileHandler.GetByUser)
	profile.GET("/me", profileHandler.Me, auth)
	profile.POST("", profileHandler.Upsert, auth)
	profile.DELETE("", profileHandler.DeleteAccount, auth)
	profile.PUT("/experience", profileHandler.AddExperience, auth)
	profile.DELETE("/experience/:exp_id", profileHandler.RemoveExperience, auth)
	profile.PUT("/education", profileHandler.AddEducation, auth)
	profile.DELETE("/education/:edu_id", profileHandler.RemoveEducation, auth)

	// --- Posts (all authenticated) ---
	posts := e.Group("/api/posts", auth)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.DELETE("/:id", postHandler.Delete)
	posts.PUT("/like/:id", postHandler.Like)
	posts.PUT("/unlike/:id", postHandler.Unlike)
	posts.POST("/comment/:id", postHandler.Comment)
	posts.DELETE("/comment/:id/:comment_id", postHandler.RemoveComment)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
