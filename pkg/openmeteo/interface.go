package openmeteo

import "context"

// IClient is the Open-Meteo geocoding and forecast API.
type IClient interface {
	// Geocode resolves a place name. ErrLocationNotFound when nothing matches.
	Geocode(ctx context.Context, name string) (*Place, error)
	// Current returns current conditions at a place.
	Current(ctx context.Context, place *Place) (*Current, error)
	// Forecast returns up to days daily forecasts (capped at MaxForecastDays).
	Forecast(ctx context.Context, place *Place, days int) ([]DailyForecast, error)
}

// New creates a new Open-Meteo client. No API key is needed.
func New(cfg Config) (IClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &clientImpl{
		geocodingURL: cfg.GeocodingURL,
		forecastURL:  cfg.ForecastURL,
		httpClient:   cfg.HTTPClient,
	}, nil
}
