package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/httpclient"
)

func hourly(codes ...string) string {
	res := make([]string, 0, len(codes))
	for _, c := range codes {
		res = append(res, fmt.Sprintf(`{"weatherCode":%q,"weatherDesc":[{"value":"cond %s"}]}`, c, c))
	}
	return "[" + strings.Join(res, ",") + "]"
}

const alertsWrapped = `{"alert":[
	{"headline":"Flood Watch","severity":"Moderate","desc":"river","expires":"2024-03-16T00:00"},
	{"headline":"","severity":"Minor"},
	{"headline":"Wind Advisory","severity":"Minor","desc":"gusts","expires":"soon"},
	{"headline":"A3"},{"headline":"A4"},{"headline":"A5"},{"headline":"A6"}]}`

func j1Report(alerts string) string {
	return `{
	"current_condition":[{"temp_C":"20","FeelsLikeC":"18","weatherCode":"116","weatherDesc":[{"value":"Partly cloudy"}],
		"humidity":"65","windspeedMiles":"9","winddir16Point":"NW"}],
	"nearest_area":[{"areaName":[{"value":"Springfield"}],"country":[{"value":"United States of America"}]}],
	"weather":[
		{"date":"2024-03-13","maxtempC":"22","mintempC":"10","hourly":` + hourly("113", "113", "113", "113", "176", "113", "113", "113") + `},
		{"date":"2024-03-14","maxtempC":"15","mintempC":"5","hourly":` + hourly("338") + `},
		{"date":"2024-03-15","maxtempC":"-5","mintempC":"-40","hourly":` + hourly("200", "200", "200", "200", "200") + `},
		{"date":"2024-03-16","maxtempC":"1","mintempC":"0","hourly":[]}
	],
	"alerts":` + alerts + `}`
}

// wttr serves j1 and text responses per location path and records requests
type wttr struct {
	mu       sync.Mutex
	requests []string
	j1       map[string]string
	text     map[string]string
}

func (w *wttr) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	w.mu.Lock()
	w.requests = append(w.requests, r.URL.Path+"?"+r.URL.Query().Get("format"))
	w.mu.Unlock()

	src := w.text
	if r.URL.Query().Get("format") == "j1" {
		src = w.j1
	}
	body, ok := src[r.URL.Path]
	if !ok {
		http.NotFound(rw, r)
		return
	}
	_, _ = rw.Write([]byte(body))
}

func newWttr(t *testing.T, w *wttr, unit domain.TempUnit) *Service {
	t.Helper()
	ts := httptest.NewServer(w)
	t.Cleanup(ts.Close)
	return NewService(Params{Client: httpclient.New(httpclient.Config{Timeout: 5 * time.Second}), BaseURL: ts.URL + "/", Unit: unit})
}

func TestService_FetchWeather(t *testing.T) {
	w := &wttr{j1: map[string]string{"/Springfield": j1Report(alertsWrapped)}}
	svc := newWttr(t, w, domain.Celsius)

	res := svc.FetchWeather(context.Background(), "Springfield")
	assert.Equal(t, "Springfield", res.Location)
	assert.Equal(t, "Springfield", res.City)
	assert.Equal(t, "United States of America", res.Country)
	assert.Equal(t, "20C", res.Temperature)
	assert.Equal(t, "18C", res.FeelsLike)
	assert.Equal(t, "116", res.ConditionCode)
	assert.Equal(t, "Partly cloudy", res.Condition)
	assert.Equal(t, "65%", res.Humidity)
	assert.Equal(t, "9 mph NW", res.Wind)

	require.Len(t, res.Forecast, 3)
	assert.Equal(t, domain.Forecast{Day: "Today", High: "22C", Low: "10C", Condition: "cond 176", ConditionCode: "176"}, res.Forecast[0])
	assert.Equal(t, domain.Forecast{Day: "Tomorrow", High: "15C", Low: "5C", Condition: "cond 338", ConditionCode: "338"}, res.Forecast[1])
	assert.Equal(t, domain.Forecast{Day: "Fri", High: "-5C", Low: "-40C", Condition: "cond 200", ConditionCode: "200"}, res.Forecast[2])

	// five alerts examined, the one without headline skipped
	require.Len(t, res.Alerts, 4)
	assert.Equal(t, domain.Alert{Headline: "Flood Watch", Severity: "Moderate", Description: "river", Expires: "2024-03-16T00:00"}, res.Alerts[0])
	assert.Equal(t, "Wind Advisory", res.Alerts[1].Headline)
	assert.Equal(t, "A4", res.Alerts[3].Headline)

	assert.Equal(t, []string{"/Springfield?j1"}, w.requests, "no text fallback when json parsed")
}

func TestService_FetchWeatherFahrenheit(t *testing.T) {
	w := &wttr{j1: map[string]string{"/": j1Report(`[{"headline":"Heat","severity":"Severe"}]`)}}
	svc := newWttr(t, w, domain.Fahrenheit)

	res := svc.FetchWeather(context.Background(), "auto")
	assert.Equal(t, "auto", res.Location)
	assert.Equal(t, "68F", res.Temperature)
	assert.Equal(t, "64F", res.FeelsLike)
	require.Len(t, res.Forecast, 3)
	assert.Equal(t, "23F", res.Forecast[2].High)
	assert.Equal(t, "-40F", res.Forecast[2].Low)
	require.Len(t, res.Alerts, 1)
	assert.Equal(t, "Heat", res.Alerts[0].Headline)
	assert.Equal(t, []string{"/?j1"}, w.requests, "auto goes to the bare endpoint")
}

func TestService_FetchWeatherEscapesLocation(t *testing.T) {
	w := &wttr{j1: map[string]string{"/New York": j1Report(`null`)}}
	svc := newWttr(t, w, domain.Celsius)
	res := svc.FetchWeather(context.Background(), "New York")
	assert.Equal(t, "20C", res.Temperature)
	assert.Empty(t, res.Alerts)
}

func TestService_FetchWeatherTextFallback(t *testing.T) {
	tests := []struct {
		name string
		j1   string
		text string
		want domain.WeatherSnapshot
	}{
		{
			name: "json not available",
			text: "Paris, France|+12°C|Light rain|81%|↙11km/h\n",
			want: domain.WeatherSnapshot{Location: "Paris", City: "Paris, France", Temperature: "+12°C",
				Condition: "Light rain", Humidity: "81%", Wind: "↙11km/h"},
		},
		{
			name: "json without current condition",
			j1:   `{"nearest_area":[{"areaName":[{"value":"Paris"}],"country":[{"value":"France"}]}]}`,
			text: "Paris|+12°C|Clear|50%|5km/h",
			want: domain.WeatherSnapshot{Location: "Paris", City: "Paris", Country: "France", Temperature: "+12°C",
				Condition: "Clear", Humidity: "50%", Wind: "5km/h"},
		},
		{
			name: "broken json",
			j1:   `{"current_condition":[`,
			text: "Paris|+1°C|Snow|90%|1km/h",
			want: domain.WeatherSnapshot{Location: "Paris", City: "Paris", Temperature: "+1°C", Condition: "Snow",
				Humidity: "90%", Wind: "1km/h"},
		},
		{
			name: "too few parts",
			text: "Paris|+12°C|Clear|50%|",
			want: domain.WeatherSnapshot{Location: "Paris"},
		},
		{
			name: "nothing available",
			want: domain.WeatherSnapshot{Location: "Paris"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &wttr{j1: map[string]string{}, text: map[string]string{}}
			if tt.j1 != "" {
				w.j1["/Paris"] = tt.j1
			}
			if tt.text != "" {
				w.text["/Paris"] = tt.text
			}
			svc := newWttr(t, w, domain.Celsius)
			assert.Equal(t, tt.want, svc.FetchWeather(context.Background(), "Paris"))
			assert.Equal(t, []string{"/Paris?j1", "/Paris?" + textFormat}, w.requests)
		})
	}
}

func TestService_FetchAllLocations(t *testing.T) {
	w := &wttr{
		j1:   map[string]string{"/A": j1Report(`[]`), "/B": j1Report(`[]`)},
		text: map[string]string{},
	}
	svc := newWttr(t, w, domain.Celsius)

	done := make(chan []domain.WeatherSnapshot, 1)
	svc.FetchAllLocations(context.Background(), []string{"A", "B", "C"}, func(r []domain.WeatherSnapshot) { done <- r })
	select {
	case res := <-done:
		require.Len(t, res, 3)
		sort.Slice(res, func(i, j int) bool { return res[i].Location < res[j].Location })
		assert.Equal(t, "20C", res[0].Temperature)
		assert.Equal(t, "20C", res[1].Temperature)
		assert.Equal(t, "C", res[2].Location)
		assert.Empty(t, res[2].Temperature)
	case <-time.After(5 * time.Second):
		t.Fatal("completion not called")
	}

	assert.Empty(t, svc.CollectLocations(context.Background(), nil))
}

func TestFormatTemp(t *testing.T) {
	tests := []struct {
		c    string
		unit domain.TempUnit
		want string
	}{
		{"20", domain.Fahrenheit, "68F"},
		{"0", domain.Celsius, "0C"},
		{"-40", domain.Fahrenheit, "-40F"},
		{"0", domain.Fahrenheit, "32F"},
		{"37", domain.Fahrenheit, "99F"},
		{"-1", domain.Fahrenheit, "30F"},
		{"20.7", domain.Fahrenheit, "68F"},
		{"abc", domain.Fahrenheit, "abcF"},
		{"", domain.Celsius, "C"},
	}
	for _, tt := range tests {
		t.Run(tt.c+string(tt.unit), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTemp(tt.c, tt.unit))
		})
	}
}

func TestWeekday(t *testing.T) {
	tests := map[string]string{
		"2024-03-15": "Fri",
		"2024-03-16": "Sat",
		"2024-03-17": "Sun",
		"2024-01-01": "Mon",
		"2024-02-29": "Thu",
		"2000-01-01": "Sat",
		"2023-12-31": "Sun",
		"":           "",
		"tomorrow":   "",
		"2024-13-01": "",
	}
	for date, want := range tests {
		t.Run(date, func(t *testing.T) {
			assert.Equal(t, want, Weekday(date))
		})
	}
}

func TestForecastDay(t *testing.T) {
	assert.Equal(t, "Today", forecastDay(0, "garbage"))
	assert.Equal(t, "Tomorrow", forecastDay(1, ""))
	assert.Equal(t, "Day 3", forecastDay(2, "not a date"))
	assert.Equal(t, "Fri", forecastDay(2, "2024-03-15"))
}

func TestIcon(t *testing.T) {
	tests := map[string]string{
		"113": "weather-clear-symbolic",
		"116": "weather-few-clouds-symbolic",
		"119": "weather-overcast-symbolic",
		"122": "weather-overcast-symbolic",
		"248": "weather-fog-symbolic",
		"296": "weather-showers-scattered-symbolic",
		"308": "weather-showers-symbolic",
		"338": "weather-snow-symbolic",
		"377": "weather-snow-symbolic",
		"389": "weather-storm-symbolic",
		"999": "weather-few-clouds-symbolic",
		"":    "weather-few-clouds-symbolic",
		"abc": "weather-few-clouds-symbolic",
	}
	for code, want := range tests {
		assert.Equal(t, want, Icon(code), code)
	}
}
