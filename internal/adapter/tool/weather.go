package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"
)

var _ output.ToolPort = (*WeatherTool)(nil)

type WeatherTool struct {
	weather output.WeatherPort
	logger  output.LoggerPort
}

func NewWeatherTool(weather output.WeatherPort, logger output.LoggerPort) *WeatherTool {
	return &WeatherTool{weather: weather, logger: logger}
}

func (t *WeatherTool) Name() entity.ToolName { return entity.ToolGetWeather }
func (t *WeatherTool) Description() string {
	return "Get current weather information for a city: temperature, feels-like temperature, conditions, humidity and wind speed."
}
func (t *WeatherTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"city": map[string]interface{}{
				"type":        "string",
				"minLength":   1,
				"description": "City name (e.g., Paris, London, New York)",
			},
			"units": map[string]interface{}{
				"type":        "string",
				"enum":        []string{string(entity.UnitsMetric), string(entity.UnitsImperial)},
				"default":     string(entity.UnitsMetric),
				"description": "Temperature units",
			},
		},
		"required": []string{"city"},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		City  string              `json:"city"`
		Units entity.WeatherUnits `json:"units"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return fmt.Sprintf("Invalid input for %s: %v", t.Name(), err), nil
	}

	city := strings.TrimSpace(input.City)
	if city == "" {
		return fmt.Sprintf("Invalid input for %s: city is required", t.Name()), nil
	}

	report, err := t.weather.Current(ctx, city)
	if err != nil {
		t.logger.Error("Weather lookup failed", "city", city, "error", err)
		if errors.Is(err, entity.ErrWeatherUnavailable) {
			return fmt.Sprintf("Unable to fetch weather data for %s", city), nil
		}
		return fmt.Sprintf("Error fetching weather data for %s", city), nil
	}

	return formatWeather(report, input.Units), nil
}

func formatWeather(r *entity.WeatherReport, units entity.WeatherUnits) string {
	temp, feels := r.TempC+"°C", r.FeelsLikeC+"°C"
	if units == entity.UnitsImperial {
		temp, feels = r.TempF+"°F", r.FeelsLikeF+"°F"
	}

	return fmt.Sprintf("Weather in %s: %s (feels like %s), %s. Humidity: %s%%, Wind: %s km/h",
		r.City, temp, feels, r.Condition, r.Humidity, r.WindKmph)
}
