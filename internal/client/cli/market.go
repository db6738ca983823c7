package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/marketpulse/internal/client/models"
)

var errWeatherUsage = errors.New("usage: weather [lat lon]")

// News prints up to six headlines for query.
func (a *App) News(ctx context.Context, query string) error {
	articles, err := a.marketService.Headlines(ctx, query)
	if err := a.trackMode(err); err != nil {
		return sessionError(err)
	}

	if len(articles) == 0 {
		fmt.Fprintln(a.out, "No news available.")
		return nil
	}

	for i, art := range articles {
		fmt.Fprintf(a.out, "%d. %s\n   Source: %s\n   %s\n", i+1, art.Title, art.SourceName(), art.URL)
	}
	return nil
}

// Weather prints current conditions at the given coordinates, or at the
// server's default location when args is empty.
func (a *App) Weather(ctx context.Context, args []string) error {
	at, err := parseCoordinates(args)
	if err != nil {
		return err
	}

	w, err := a.marketService.Weather(ctx, at)
	if err := a.trackMode(err); err != nil {
		return sessionError(err)
	}

	fmt.Fprintf(a.out, "%.1f°C, %s\n", w.Current.TempC, w.Current.Condition.Text)
	if w.Location.Name != "" {
		fmt.Fprintf(a.out, "%s, %s\n", w.Location.Name, w.Location.Region)
	}
	return nil
}

func parseCoordinates(args []string) (*models.Coordinates, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 2:
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, errWeatherUsage
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, errWeatherUsage
		}
		return &models.Coordinates{Lat: lat, Lon: lon}, nil
	default:
		return nil, errWeatherUsage
	}
}
