package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/umputun/infodash/pkg/dashboard"
	"github.com/umputun/infodash/pkg/domain"
)

// column widths in terminal cells
const (
	titleWidth  = 80
	symbolWidth = 8
	nameWidth   = 28
	priceWidth  = 12
	changeWidth = 10
)

// cell truncates s to w display cells and pads it to exactly w
func cell(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// errWriter keeps the first write error so printers can check once at the end
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func printItems(out io.Writer, src string, items []domain.FeedItem) error {
	ew := &errWriter{w: out}
	ew.printf("%s (%d items)\n", color.New(color.Bold).Sprint(src), len(items))
	writeItems(ew, items)
	return ew.err
}

func writeItems(ew *errWriter, items []domain.FeedItem) {
	for _, it := range items {
		ew.printf("  %s  %s\n", runewidth.Truncate(it.Title, titleWidth, "…"), color.New(color.FgCyan).Sprint(it.Source))
		ew.printf("    %s\n", it.Link)
		if it.PubDate != "" {
			ew.printf("    %s\n", it.PubDate)
		}
	}
}

func printDiscovered(out io.Writer, src string, feeds []domain.DiscoveredFeed) error {
	ew := &errWriter{w: out}
	ew.printf("%s (%d feeds)\n", color.New(color.Bold).Sprint(src), len(feeds))
	for _, f := range feeds {
		ew.printf("  %s %s %s\n", cell(f.Type, 5), cell(f.Title, nameWidth), f.URL)
	}
	return ew.err
}

func printQuotes(out io.Writer, quotes []domain.StockQuote) error {
	ew := &errWriter{w: out}
	writeQuotes(ew, quotes)
	return ew.err
}

func writeQuotes(ew *errWriter, quotes []domain.StockQuote) {
	for _, q := range quotes {
		arrow, clr := "▲", color.New(color.FgGreen)
		if !q.IsUp {
			arrow, clr = "▼", color.New(color.FgRed)
		}
		change := strings.TrimSpace(q.Change + " " + q.ChangePercent)
		ew.printf("  %s %s %s %s\n", cell(q.Symbol, symbolWidth), cell(q.Name, nameWidth),
			cell(q.Price, priceWidth), clr.Sprint(arrow+" "+cell(change, changeWidth*2)))
	}
}

func printWeather(out io.Writer, snaps []domain.WeatherSnapshot) error {
	ew := &errWriter{w: out}
	writeWeather(ew, snaps)
	return ew.err
}

func writeWeather(ew *errWriter, snaps []domain.WeatherSnapshot) {
	for _, w := range snaps {
		place := w.City
		if w.Country != "" {
			place += ", " + w.Country
		}
		if place == "" {
			place = w.Location
		}
		if w.Temperature == "" {
			ew.printf("  %s  unavailable\n", place)
			continue
		}
		ew.printf("  %s  %s  %s\n", color.New(color.Bold).Sprint(place), w.Temperature, w.Condition)
		details := []string{}
		if w.FeelsLike != "" {
			details = append(details, "feels like "+w.FeelsLike)
		}
		if w.Humidity != "" {
			details = append(details, "humidity "+w.Humidity)
		}
		if w.Wind != "" {
			details = append(details, "wind "+w.Wind)
		}
		if len(details) > 0 {
			ew.printf("    %s\n", strings.Join(details, ", "))
		}
		for _, f := range w.Forecast {
			ew.printf("    %s %s / %s  %s\n", cell(f.Day, 10), f.High, f.Low, f.Condition)
		}
		for _, a := range w.Alerts {
			ew.printf("    %s %s\n", color.New(color.FgRed).Sprint("alert:"), runewidth.Truncate(a.Headline, titleWidth, "…"))
		}
	}
}

func printDashboard(out io.Writer, snap dashboard.Snapshot) error {
	ew := &errWriter{w: out}
	ew.printf("%s\n", color.New(color.Bold).Sprint("Weather"))
	writeWeather(ew, snap.Weather)
	ew.printf("\n%s\n", color.New(color.Bold).Sprint("Stocks"))
	writeQuotes(ew, snap.Stocks)
	ew.printf("\n%s (%d items)\n", color.New(color.Bold).Sprint("Feeds"), len(snap.Feeds))
	writeItems(ew, snap.Feeds)
	return ew.err
}
