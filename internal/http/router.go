package http

import (
	"github.com/gin-gonic/gin"

	"librarium/internal/auth"
	"librarium/internal/books"
	"librarium/internal/database"
	"librarium/internal/weather"
)

// RouterConfig receives all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	Database      *database.Database
	AuthService   *auth.Service
	TokenService  *auth.TokenService
	Revocations   *auth.RevocationStore
	BookService   *books.Service
	WeatherClient *weather.Client
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Registration and login are public; everything else under /api requires a
// bearer token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	middleware := auth.NewMiddleware(cfg.TokenService, cfg.Revocations)

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService, cfg.TokenService, cfg.Revocations)
	booksController := NewBooksController(cfg.BookService)
	weatherController := NewWeatherController(cfg.WeatherClient)

	router.GET("/", health.Index)
	router.GET("/health", health.Status)

	api := router.Group("/api")

	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)

	protected := api.Group("", middleware.RequireAuth())

	protected.GET("/books", booksController.GetAllBooks)
	protected.GET("/books/:id", booksController.GetBook)
	protected.POST("/books", booksController.CreateBook)
	protected.PUT("/books/:id", booksController.UpdateBook)
	protected.DELETE("/books/:id", booksController.DeleteBook)

	protected.GET("/auth/profile", authController.Profile)
	protected.GET("/auth/users", authController.GetUsers)
	protected.POST("/auth/refresh", authController.Refresh)
	protected.POST("/auth/logout", authController.Logout)
	protected.DELETE("/auth/profile", middleware.RequireFresh(), authController.DeleteAccount)

	protected.GET("/weather/current", weatherController.Current)
	protected.GET("/weather/forecast/3hourly", weatherController.Forecast3Hourly)
	protected.GET("/weather/forecast/daily", weatherController.ForecastDaily)

	return router
}
