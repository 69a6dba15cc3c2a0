// Package cli implements the interactive TaskTrack client. It keeps the
// session token in memory only, attaches it to every request through the
// API client, and refuses task commands until the user has signed in.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/tasktrack/internal/client/api"
	"github.com/dmitrijs2005/tasktrack/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	client := api.New(c.ServerBaseURL, c.RequestTimeout)

	return &App{
		config: c,
		client: client,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Authenticated()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
