package localtools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"voice-assistant/pkg/openmeteo"
)

func (t *Tools) location(req mcp.CallToolRequest) string {
	return t.orDefault(req.GetString(ArgLocation, ""))
}

func (t *Tools) orDefault(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return t.deps.DefaultLocation
	}
	return location
}

type weatherTool struct{ t *Tools }

func (weatherTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolWeather,
		mcp.WithDescription("Get current weather for a location."),
		mcp.WithString(ArgLocation,
			mcp.Description("City or place name (default: "+DefaultLocation+")"),
		),
	)
}

func (w weatherTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(w.t.CurrentWeather(ctx, w.t.location(req))), nil
}

// CurrentWeather answers "what's the weather in <location>" in speech form.
func (t *Tools) CurrentWeather(ctx context.Context, location string) string {
	location = t.orDefault(location)
	if t.deps.Weather == nil {
		return MsgWeatherMissing
	}
	place, err := t.deps.Weather.Geocode(ctx, location)
	if err != nil {
		t.logWeatherErr(ctx, "geocode", err)
		return fmt.Sprintf(MsgLocationNotFound, location)
	}
	cur, err := t.deps.Weather.Current(ctx, place)
	if err != nil {
		t.logWeatherErr(ctx, "current", err)
		return fmt.Sprintf(MsgWeatherDown, place.Name)
	}
	return formatCurrent(place, cur)
}

func formatCurrent(place *openmeteo.Place, cur *openmeteo.Current) string {
	var b strings.Builder
	fmt.Fprintf(&b, "In %s, it's currently %s°C with %s. ", place.Label(), num(cur.Temperature), cur.Description)
	if math.Abs(cur.Temperature-cur.FeelsLike) >= 2 {
		fmt.Fprintf(&b, "It feels like %s°C. ", num(cur.FeelsLike))
	}
	fmt.Fprintf(&b, "Humidity is %s%% and wind speed is %s km/h.", num(cur.Humidity), num(cur.WindSpeed))
	if cur.Precipitation > 0 {
		fmt.Fprintf(&b, " There's %smm of precipitation.", num(cur.Precipitation))
	}
	return b.String()
}

type forecastTool struct{ t *Tools }

func (forecastTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolWeatherForecast,
		mcp.WithDescription("Get a multi-day weather forecast for a location."),
		mcp.WithString(ArgLocation,
			mcp.Description("City or place name (default: "+DefaultLocation+")"),
		),
		mcp.WithNumber(ArgDays,
			mcp.Description("Number of days (default: 3, max: 16)"),
		),
	)
}

func (f forecastTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(f.t.Forecast(ctx, f.t.location(req), intArg(req, ArgDays, DefaultForecastDays))), nil
}

// Forecast answers a multi-day forecast request in speech form.
func (t *Tools) Forecast(ctx context.Context, location string, days int) string {
	location = t.orDefault(location)
	if t.deps.Weather == nil {
		return MsgWeatherMissing
	}
	if days <= 0 {
		days = DefaultForecastDays
	}
	if days > openmeteo.MaxForecastDays {
		days = openmeteo.MaxForecastDays
	}

	place, err := t.deps.Weather.Geocode(ctx, location)
	if err != nil {
		t.logWeatherErr(ctx, "geocode", err)
		return fmt.Sprintf(MsgPlaceNotFound, location)
	}
	daily, err := t.deps.Weather.Forecast(ctx, place, days)
	if err != nil || len(daily) == 0 {
		t.logWeatherErr(ctx, "forecast", err)
		return fmt.Sprintf(MsgForecastDown, place.Name)
	}
	return formatForecast(place, daily, days)
}

func formatForecast(place *openmeteo.Place, daily []openmeteo.DailyForecast, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's the %d-day forecast for %s: ", days, place.Label())
	for i, d := range daily {
		if i == days {
			break
		}
		day := d.Date
		if parsed, err := time.Parse("2006-01-02", d.Date); err == nil {
			day = parsed.Weekday().String()
		}
		fmt.Fprintf(&b, "%s: %s/%s°C, %s. ", day, num(d.TempMax), num(d.TempMin), d.Description)
	}
	return strings.TrimSpace(b.String())
}

type rainTool struct{ t *Tools }

func (rainTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolIsItRaining,
		mcp.WithDescription("Check whether it is raining right now at a location."),
		mcp.WithString(ArgLocation,
			mcp.Description("City or place name (default: "+DefaultLocation+")"),
		),
	)
}

func (r rainTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(r.t.IsItRaining(ctx, r.t.location(req))), nil
}

// IsItRaining answers a yes/no rain question in speech form.
func (t *Tools) IsItRaining(ctx context.Context, location string) string {
	location = t.orDefault(location)
	if t.deps.Weather == nil {
		return MsgWeatherMissing
	}
	place, err := t.deps.Weather.Geocode(ctx, location)
	if err != nil {
		t.logWeatherErr(ctx, "geocode", err)
		return fmt.Sprintf(MsgPlaceNotFound, location)
	}
	cur, err := t.deps.Weather.Current(ctx, place)
	if err != nil {
		t.logWeatherErr(ctx, "current", err)
		return MsgRainDown
	}
	return formatRain(place, cur)
}

func formatRain(place *openmeteo.Place, cur *openmeteo.Current) string {
	if openmeteo.IsRainCode(cur.WeatherCode) || cur.Precipitation > 0 {
		return fmt.Sprintf("Yes, it's currently %s in %s with %smm of precipitation.", cur.Description, place.Name, num(cur.Precipitation))
	}
	return fmt.Sprintf("No, it's not raining in %s. The sky is %s.", place.Name, cur.Description)
}

func (t *Tools) logWeatherErr(ctx context.Context, op string, err error) {
	if err == nil || errors.Is(err, openmeteo.ErrLocationNotFound) {
		return
	}
	t.l.Warnf(ctx, "%s: %s failed: %v", LogPrefixWeather, op, err)
}
