package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"librarium/internal/weather"
)

const (
	defaultUnits        = "metric"
	defaultLang         = "es"
	defaultForecastDays = 7
)

type WeatherController struct {
	client *weather.Client
}

func NewWeatherController(client *weather.Client) *WeatherController {
	return &WeatherController{
		client: client,
	}
}

func (controller *WeatherController) Current(c *gin.Context) {
	query, ok := parseWeatherQuery(c)
	if !ok {
		return
	}

	body, err := controller.client.Current(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, err, "failed to fetch current weather")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (controller *WeatherController) Forecast3Hourly(c *gin.Context) {
	query, ok := parseWeatherQuery(c)
	if !ok {
		return
	}

	body, err := controller.client.Forecast3Hourly(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, err, "failed to fetch forecast")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (controller *WeatherController) ForecastDaily(c *gin.Context) {
	query, ok := parseWeatherQuery(c)
	if !ok {
		return
	}

	days := defaultForecastDays
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil {
			respondBadRequest(c, "days must be an integer")
			return
		}
		days = parsed
	}

	body, err := controller.client.ForecastDaily(c.Request.Context(), query, days)
	if err != nil {
		respondInternalError(c, err, "failed to fetch daily forecast")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// parseWeatherQuery validates lat/lon before any upstream call is made.
func parseWeatherQuery(c *gin.Context) (weather.Query, bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		respondBadRequest(c, "lat and lon query parameters are required")
		return weather.Query{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondBadRequest(c, "lat must be a number")
		return weather.Query{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		respondBadRequest(c, "lon must be a number")
		return weather.Query{}, false
	}

	if lat < -90 || lat > 90 {
		respondBadRequest(c, "lat must be between -90 and 90")
		return weather.Query{}, false
	}
	if lon < -180 || lon > 180 {
		respondBadRequest(c, "lon must be between -180 and 180")
		return weather.Query{}, false
	}

	units := c.DefaultQuery("units", defaultUnits)
	lang := c.DefaultQuery("lang", defaultLang)

	return weather.Query{Lat: lat, Lon: lon, Units: units, Lang: lang}, true
}
