package client

import (
	"context"

	"github.com/dmitrijs2005/marketpulse/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) error
	Logout()
	Me(ctx context.Context) (*models.User, error)
	MarketData(ctx context.Context, query string) ([]models.Article, error)
	Weather(ctx context.Context, at *models.Coordinates) (*models.Weather, error)
	Ping(ctx context.Context) error
}
