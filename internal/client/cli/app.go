package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/marketpulse/internal/client/client"
	"github.com/dmitrijs2005/marketpulse/internal/client/config"
	"github.com/dmitrijs2005/marketpulse/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	authService   services.AuthService
	marketService services.MarketService
	Mode          Mode
	reader        *bufio.Reader
	out           io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(apiClient)
	ms := services.NewMarketService(apiClient, as)

	return &App{
		config:        c,
		authService:   as,
		marketService: ms,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

// trackMode flips the connectivity indicator based on the outcome of an
// API call and passes err through.
func (a *App) trackMode(err error) error {
	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
	default:
		// the server answered, so it is reachable
		a.setMode(ModeOnline)
	}
	return err
}

func (a *App) isLoggedIn() bool {
	return a.authService.UserName() != ""
}

func (a *App) getStatus() string {
	s := ""
	if name := a.authService.UserName(); name != "" {
		s = name + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run probes the server once, then runs the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to marketpulse CLI, server %s (type 'help' for commands)\n", a.config.ServerBaseURL)
	_ = a.trackMode(a.authService.Ping(ctx))

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
