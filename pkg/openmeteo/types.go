package openmeteo

import (
	"errors"
	"net/http"
)

// ErrLocationNotFound is returned when geocoding yields no result.
var ErrLocationNotFound = errors.New("location not found")

// Config holds Open-Meteo client configuration
type Config struct {
	GeocodingURL string
	ForecastURL  string
	HTTPClient   *http.Client
}

// Validate fills defaults.
func (c *Config) Validate() error {
	if c.GeocodingURL == "" {
		c.GeocodingURL = DefaultGeocodingURL
	}
	if c.ForecastURL == "" {
		c.ForecastURL = DefaultForecastURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// clientImpl is the internal implementation of IClient
type clientImpl struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
}

// Place is a geocoded location.
type Place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Label is "Name, Country" or just the name.
func (p *Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// Current is the current weather at a place.
type Current struct {
	Temperature   float64
	FeelsLike     float64
	Humidity      float64
	Precipitation float64
	WindSpeed     float64
	WindDirection float64
	WeatherCode   int
	Description   string
	IsDay         bool
}

// DailyForecast is one forecast day.
type DailyForecast struct {
	Date          string
	TempMax       float64
	TempMin       float64
	WeatherCode   int
	Description   string
	Precipitation float64
	WindMax       float64
}

// Wire types
type geocodingResponse struct {
	Results []Place `json:"results"`
}

type currentResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		FeelsLike     float64 `json:"apparent_temperature"`
		IsDay         int     `json:"is_day"`
		Precipitation float64 `json:"precipitation"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
	} `json:"current"`
}

type dailyResponse struct {
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		WeatherCode   []int     `json:"weather_code"`
		Precipitation []float64 `json:"precipitation_sum"`
		WindMax       []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}
