package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Geocode implements IClient
func (c *clientImpl) Geocode(ctx context.Context, name string) (*Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLocationNotFound
	}

	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var resp geocodingResponse
	if err := c.get(ctx, c.geocodingURL, q, &resp); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, name)
	}

	place := resp.Results[0]
	if place.Name == "" {
		place.Name = name
	}
	if place.Timezone == "" {
		place.Timezone = "auto"
	}
	return &place, nil
}

// Current implements IClient
func (c *clientImpl) Current(ctx context.Context, place *Place) (*Current, error) {
	q := placeQuery(place)
	q.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,precipitation,weather_code,wind_speed_10m,wind_direction_10m")

	var resp currentResponse
	if err := c.get(ctx, c.forecastURL, q, &resp); err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}

	cur := resp.Current
	return &Current{
		Temperature:   cur.Temperature,
		FeelsLike:     cur.FeelsLike,
		Humidity:      cur.Humidity,
		Precipitation: cur.Precipitation,
		WindSpeed:     cur.WindSpeed,
		WindDirection: cur.WindDirection,
		WeatherCode:   cur.WeatherCode,
		Description:   Describe(cur.WeatherCode),
		IsDay:         cur.IsDay == 1,
	}, nil
}

// Forecast implements IClient
func (c *clientImpl) Forecast(ctx context.Context, place *Place, days int) ([]DailyForecast, error) {
	if days <= 0 {
		days = 1
	}
	if days > MaxForecastDays {
		days = MaxForecastDays
	}

	q := placeQuery(place)
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code,precipitation_sum,wind_speed_10m_max")
	q.Set("forecast_days", strconv.Itoa(days))

	var resp dailyResponse
	if err := c.get(ctx, c.forecastURL, q, &resp); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	d := resp.Daily
	n := len(d.Time)
	for _, l := range []int{len(d.TempMax), len(d.TempMin), len(d.WeatherCode), len(d.Precipitation), len(d.WindMax)} {
		if l < n {
			n = l
		}
	}
	if n > days {
		n = days
	}

	out := make([]DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, DailyForecast{
			Date:          d.Time[i],
			TempMax:       d.TempMax[i],
			TempMin:       d.TempMin[i],
			WeatherCode:   d.WeatherCode[i],
			Description:   Describe(d.WeatherCode[i]),
			Precipitation: d.Precipitation[i],
			WindMax:       d.WindMax[i],
		})
	}
	return out, nil
}

func placeQuery(place *Place) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	tz := place.Timezone
	if tz == "" {
		tz = "auto"
	}
	q.Set("timezone", tz)
	return q
}

func (c *clientImpl) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Open-Meteo API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("open-meteo API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
