package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"librarium/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok (" + string(h.db.Engine) + ")"
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Index lists the API surface, mirroring the root endpoint of the service.
func (h *HealthController) Index(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"message": "Librarium - Books, Users and Weather API",
		"version": h.version,
		"endpoints": gin.H{
			"GET /api/books":                      "List all books",
			"GET /api/books/:id":                  "Get a book by ID",
			"POST /api/books":                     "Create a new book",
			"PUT /api/books/:id":                  "Update a book",
			"DELETE /api/books/:id":               "Delete a book",
			"POST /api/auth/register":             "Register a new user",
			"POST /api/auth/login":                "Log in and receive a bearer token",
			"GET /api/auth/profile":               "Get the authenticated user",
			"GET /api/auth/users":                 "List all users",
			"GET /api/weather/current":            "Current weather for lat/lon",
			"GET /api/weather/forecast/3hourly":   "Three-hourly forecast",
			"GET /api/weather/forecast/daily":     "Daily forecast (days 1-16)",
		},
	})
}
