package router

import (
	"regexp"
	"strconv"
	"strings"

	"voice-assistant/internal/model"
)

var reWeather = triggers("weather", "temperature", "forecast", "raining", "rain", "rainy", "umbrella", "sunny", "cloudy", "humidity", "humid")

// locationPatterns are tried in order; capture group 1 is the location.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:weather|raining|rain|forecast|temperature|humidity) (?:in|at|for|of) ([a-z\s]+?)(?:$|\s+today|\s+tomorrow|\s+now|\s+this week)`),
	regexp.MustCompile(`\b(?:in|at) ([a-z\s]+?)$`),
	regexp.MustCompile(`([a-z\s]+?) (?:weather|forecast)\b`),
	regexp.MustCompile(`forecast for ([a-z\s]+?)$`),
	regexp.MustCompile(`(?:umbrella|rain) .*?\b(?:in|at) ([a-z\s]+?)$`),
}

func matchWeather(in input) (model.Intent, bool) {
	if !reWeather.MatchString(in.text) {
		return model.Intent{}, false
	}

	location := extractLocation(in.text)

	if strings.Contains(in.text, "forecast") {
		days := DefaultForecastDays
		if m := reDays.FindStringSubmatch(in.text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				days = n
			}
		}
		return model.Intent{
			Name: model.IntentWeatherForecast,
			Args: location,
			Params: map[string]any{
				model.ParamLocation: location,
				model.ParamDays:     days,
			},
		}, true
	}

	if strings.Contains(in.text, "rain") || strings.Contains(in.text, "umbrella") {
		return model.Intent{Name: model.IntentWeatherRain, Args: location}, true
	}
	return model.Intent{Name: model.IntentWeather, Args: location}, true
}

// extractLocation returns the first non-empty location any pattern yields.
func extractLocation(text string) string {
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if loc := cleanLocation(m[1]); loc != "" {
			return loc
		}
	}
	return ""
}

func cleanLocation(raw string) string {
	var kept []string
	for _, tok := range strings.Fields(raw) {
		if !locationStopwords[tok] && !reWeather.MatchString(tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
