package domain

import (
	"fmt"
	"strings"
)

// TempUnit is a temperature display unit
type TempUnit string

// enum of supported temperature units
const (
	Celsius    TempUnit = "C"
	Fahrenheit TempUnit = "F"
)

// ParseTempUnit converts a user-facing unit name into TempUnit
func ParseTempUnit(s string) (TempUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	}
	return "", fmt.Errorf("unknown temperature unit %q", s)
}

// WeatherSnapshot is the current conditions plus short forecast for one location.
// Temperatures already carry the unit suffix.
type WeatherSnapshot struct {
	Location      string     `json:"location"` // query string used to fetch, "auto" for geolocation
	City          string     `json:"city"`
	Country       string     `json:"country"`
	Temperature   string     `json:"temperature"`
	FeelsLike     string     `json:"feels_like"`
	Condition     string     `json:"condition"`
	ConditionCode string     `json:"condition_code"`
	Humidity      string     `json:"humidity"`
	Wind          string     `json:"wind"`
	Forecast      []Forecast `json:"forecast,omitempty"`
	Alerts        []Alert    `json:"alerts,omitempty"`
}

// Forecast is a single forecast day
type Forecast struct {
	Day           string `json:"day"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Condition     string `json:"condition"`
	ConditionCode string `json:"condition_code"`
}

// Alert is a weather warning issued for the location
type Alert struct {
	Headline    string `json:"headline"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Expires     string `json:"expires"`
}
