package entity

type WeatherUnits string

const (
	UnitsMetric   WeatherUnits = "metric"
	UnitsImperial WeatherUnits = "imperial"
)

// WeatherReport holds current conditions as returned by the weather service.
// Temperatures are kept in both scales so the caller picks the unit.
type WeatherReport struct {
	City       string
	TempC      string
	TempF      string
	FeelsLikeC string
	FeelsLikeF string
	Condition  string
	Humidity   string
	WindKmph   string
}
