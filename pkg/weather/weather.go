// Package weather fetches wttr.in conditions and normalizes them into domain.WeatherSnapshot.
// The j1 json report is used first, the one-line text format is the degraded fallback.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/infodash/pkg/domain"
	"github.com/umputun/infodash/pkg/httpclient"
	"github.com/umputun/infodash/pkg/sanitize"
)

// DefaultBaseURL is the wttr.in endpoint
const DefaultBaseURL = "https://wttr.in"

// AutoLocation asks the provider to geolocate by client ip
const AutoLocation = "auto"

const (
	maxForecastDays = 3
	maxAlerts       = 5
	textFormat      = "%l|%t|%C|%h|%w"
)

// Getter performs GET requests
type Getter interface {
	Get(ctx context.Context, url string) httpclient.Response
}

// Service fetches weather for locations
type Service struct {
	client  Getter
	baseURL string
	unit    domain.TempUnit
}

// Params for NewService. Empty BaseURL means DefaultBaseURL, empty Unit means Celsius.
type Params struct {
	Client  Getter
	BaseURL string
	Unit    domain.TempUnit
}

// NewService makes a weather Service
func NewService(p Params) *Service {
	res := &Service{client: p.Client, baseURL: strings.TrimRight(p.BaseURL, "/"), unit: p.Unit}
	if res.baseURL == "" {
		res.baseURL = DefaultBaseURL
	}
	if res.unit == "" {
		res.unit = domain.Celsius
	}
	return res
}

// FetchWeather returns the snapshot for location. It never fails, fields that could not be
// obtained stay empty.
func (s *Service) FetchWeather(ctx context.Context, location string) domain.WeatherSnapshot {
	res := domain.WeatherSnapshot{Location: location}
	endpoint := s.endpoint(location)

	resp := s.client.Get(ctx, endpoint+"?format=j1")
	if resp.Success && resp.Body != "" {
		if err := s.parseReport([]byte(resp.Body), &res); err != nil {
			lgr.Printf("[DEBUG] can't parse weather report for %q: %v", location, err)
		}
	}
	if res.Temperature != "" {
		return res
	}

	resp = s.client.Get(ctx, endpoint+"?format="+url.QueryEscape(textFormat))
	if !resp.Success || resp.Body == "" {
		lgr.Printf("[DEBUG] no weather for %q, status %d, %s", location, resp.StatusCode, resp.Error)
		return res
	}
	parseText(resp.Body, &res)
	return res
}

// endpoint builds the per-location url, AutoLocation maps to the bare base url
func (s *Service) endpoint(location string) string {
	loc := strings.TrimSpace(location)
	if loc == "" || strings.EqualFold(loc, AutoLocation) {
		return s.baseURL + "/"
	}
	return s.baseURL + "/" + url.PathEscape(loc)
}

// report is the subset of the j1 response used here, all values are strings
type report struct {
	CurrentCondition []struct {
		TempC          string      `json:"temp_C"`
		FeelsLikeC     string      `json:"FeelsLikeC"`
		WeatherCode    string      `json:"weatherCode"`
		WeatherDesc    []valueItem `json:"weatherDesc"`
		Humidity       string      `json:"humidity"`
		WindspeedMiles string      `json:"windspeedMiles"`
		Winddir16Point string      `json:"winddir16Point"`
	} `json:"current_condition"`
	NearestArea []struct {
		AreaName []valueItem `json:"areaName"`
		Country  []valueItem `json:"country"`
	} `json:"nearest_area"`
	Weather []struct {
		Date     string `json:"date"`
		MaxTempC string `json:"maxtempC"`
		MinTempC string `json:"mintempC"`
		Hourly   []struct {
			WeatherCode string      `json:"weatherCode"`
			WeatherDesc []valueItem `json:"weatherDesc"`
		} `json:"hourly"`
	} `json:"weather"`
	Alerts json.RawMessage `json:"alerts"`
}

type valueItem struct {
	Value string `json:"value"`
}

type alertItem struct {
	Headline string `json:"headline"`
	Severity string `json:"severity"`
	Desc     string `json:"desc"`
	Expires  string `json:"expires"`
}

func firstValue(v []valueItem) string {
	if len(v) == 0 {
		return ""
	}
	return sanitize.String(v[0].Value)
}

// parseReport fills res from the j1 json. Temperature is left empty when the report has
// no current condition, which triggers the text fallback.
func (s *Service) parseReport(body []byte, res *domain.WeatherSnapshot) error {
	var r report
	if err := json.Unmarshal([]byte(sanitize.UTF8(body)), &r); err != nil {
		return fmt.Errorf("unmarshal weather report: %w", err)
	}

	if len(r.CurrentCondition) > 0 {
		cc := r.CurrentCondition[0]
		res.Temperature = FormatTemp(sanitize.String(cc.TempC), s.unit)
		res.FeelsLike = FormatTemp(sanitize.String(cc.FeelsLikeC), s.unit)
		res.ConditionCode = sanitize.String(cc.WeatherCode)
		res.Condition = firstValue(cc.WeatherDesc)
		res.Humidity = sanitize.String(cc.Humidity) + "%"
		res.Wind = sanitize.String(cc.WindspeedMiles) + " mph " + sanitize.String(cc.Winddir16Point)
	}

	if len(r.NearestArea) > 0 {
		res.City = firstValue(r.NearestArea[0].AreaName)
		res.Country = firstValue(r.NearestArea[0].Country)
	}

	for i, day := range r.Weather {
		if i >= maxForecastDays {
			break
		}
		f := domain.Forecast{
			Day:  forecastDay(i, day.Date),
			High: FormatTemp(sanitize.String(day.MaxTempC), s.unit),
			Low:  FormatTemp(sanitize.String(day.MinTempC), s.unit),
		}
		if len(day.Hourly) > 0 {
			h := day.Hourly[0]
			if len(day.Hourly) > 4 {
				h = day.Hourly[4] // around midday
			}
			f.ConditionCode = sanitize.String(h.WeatherCode)
			f.Condition = firstValue(h.WeatherDesc)
		}
		res.Forecast = append(res.Forecast, f)
	}

	res.Alerts = parseAlerts(r.Alerts)
	return nil
}

// parseAlerts accepts both {"alert":[...]} and a bare array, anything else gives no alerts
func parseAlerts(raw json.RawMessage) []domain.Alert {
	if len(raw) == 0 {
		return nil
	}
	var items []alertItem
	if err := json.Unmarshal(raw, &items); err != nil {
		var wrapped struct {
			Alert []alertItem `json:"alert"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil
		}
		items = wrapped.Alert
	}

	var res []domain.Alert
	for i, a := range items {
		if i >= maxAlerts {
			break
		}
		if a.Headline == "" {
			continue
		}
		res = append(res, domain.Alert{
			Headline:    sanitize.String(a.Headline),
			Severity:    sanitize.String(a.Severity),
			Description: sanitize.String(a.Desc),
			Expires:     sanitize.String(a.Expires),
		})
	}
	return res
}

// parseText handles the "%l|%t|%C|%h|%w" one-liner, fewer than five non-trailing-empty parts
// leave res untouched
func parseText(body string, res *domain.WeatherSnapshot) {
	parts := strings.Split(strings.ReplaceAll(body, "\n", ""), "|")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 5 {
		return
	}
	res.City = sanitize.String(parts[0])
	res.Temperature = sanitize.String(parts[1])
	res.Condition = sanitize.String(parts[2])
	res.Humidity = sanitize.String(parts[3])
	res.Wind = sanitize.String(parts[4])
}

func forecastDay(idx int, date string) string {
	switch idx {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	if wd := Weekday(date); wd != "" {
		return wd
	}
	return fmt.Sprintf("Day %d", idx+1)
}

var leadingIntRe = regexp.MustCompile(`^\s*([+-]?\d+)`)

// FormatTemp formats a celsius reading with the unit suffix. Fahrenheit is round(c*9/5+32)
// on the integer part of c, a value without leading integer is passed through as is.
func FormatTemp(c string, unit domain.TempUnit) string {
	if unit != domain.Fahrenheit {
		return c + "C"
	}
	m := leadingIntRe.FindStringSubmatch(c)
	if m == nil {
		return c + "F"
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return c + "F"
	}
	return strconv.Itoa(int(math.Round(float64(v)*9/5+32))) + "F"
}

var zellerDays = [...]string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}

// Weekday returns the short weekday name for a YYYY-MM-DD date, empty if date can't be parsed
func Weekday(date string) string {
	var y, m, d int
	if n, err := fmt.Sscanf(strings.TrimSpace(date), "%d-%d-%d", &y, &m, &d); err != nil || n != 3 {
		return ""
	}
	if y <= 0 || m < 1 || m > 12 || d < 1 || d > 31 {
		return ""
	}
	if m < 3 {
		m += 12
		y--
	}
	return zellerDays[(d+13*(m+1)/5+y+y/4-y/100+y/400)%7]
}

var iconCodes = func() map[string]string {
	groups := map[string][]int{
		"clear":             {113},
		"few-clouds":        {116},
		"overcast":          {119, 122},
		"fog":               {143, 248, 260},
		"showers-scattered": {176, 263, 266, 293, 296, 353},
		"showers":           {299, 302, 305, 308, 356, 359},
		"snow": {179, 182, 185, 227, 230, 317, 320, 323, 326, 329, 332, 335, 338, 350, 362, 365, 368,
			371, 374, 377},
		"storm": {200, 386, 389, 392, 395},
	}
	res := map[string]string{}
	for name, codes := range groups {
		for _, c := range codes {
			res[strconv.Itoa(c)] = "weather-" + name + "-symbolic"
		}
	}
	return res
}()

// Icon maps a wttr.in condition code to a symbolic icon name, unknown codes get few-clouds
func Icon(code string) string {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "weather-few-clouds-symbolic"
	}
	if icon, ok := iconCodes[strconv.Itoa(n)]; ok {
		return icon
	}
	return "weather-few-clouds-symbolic"
}
