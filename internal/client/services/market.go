package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/marketpulse/internal/client/client"
	"github.com/dmitrijs2005/marketpulse/internal/client/models"
)

// MaxHeadlines is how many articles the CLI shows per search.
const MaxHeadlines = 6

// MarketService fetches the gated news and weather feeds.
type MarketService interface {
	Headlines(ctx context.Context, query string) ([]models.Article, error)
	Weather(ctx context.Context, at *models.Coordinates) (*models.Weather, error)
}

type marketService struct {
	client client.Client
	auth   *authService
}

// NewMarketService builds a MarketService. When auth is the AuthService
// returned by NewAuthService, a rejected token also ends its session.
func NewMarketService(c client.Client, auth AuthService) MarketService {
	as, _ := auth.(*authService)
	return &marketService{client: c, auth: as}
}

// Headlines returns at most MaxHeadlines articles for query; a blank query
// uses the server default.
func (m *marketService) Headlines(ctx context.Context, query string) ([]models.Article, error) {
	articles, err := m.client.MarketData(ctx, strings.TrimSpace(query))
	if err != nil {
		m.dropExpired(err)
		return nil, err
	}
	if len(articles) > MaxHeadlines {
		articles = articles[:MaxHeadlines]
	}
	return articles, nil
}

func (m *marketService) Weather(ctx context.Context, at *models.Coordinates) (*models.Weather, error) {
	w, err := m.client.Weather(ctx, at)
	if err != nil {
		m.dropExpired(err)
		return nil, err
	}
	return w, nil
}

func (m *marketService) dropExpired(err error) {
	if m.auth != nil {
		m.auth.dropExpired(err)
	}
}

func isUnauthorized(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}
