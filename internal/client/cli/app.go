package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/xferclient/internal/client/client"
	"github.com/dmitrijs2005/xferclient/internal/client/config"
	"github.com/dmitrijs2005/xferclient/internal/client/models"
	"github.com/dmitrijs2005/xferclient/internal/client/services"
	"github.com/dmitrijs2005/xferclient/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	client  client.Client
	opts    services.Options
	session *services.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	merge, err := services.ParseMergeStrategy(c.MergeStrategy)
	if err != nil {
		return nil, err
	}

	logger := logging.NewTextLogger(os.Stderr, level)

	apiClient, err := client.NewHTTPClient(c.BackendURL, &http.Client{Timeout: c.RequestTimeout}, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		logger: logger,
		client: apiClient,
		opts:   services.Options{Merge: merge},
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts a session and blocks in the REPL until the user exits or stdin
// is closed.
func (a *App) Run(ctx context.Context) {
	a.startSession(ctx)
	defer func() { a.session.Close() }()

	fmt.Fprintf(a.out, "Transfer client, backend %s. Type 'help' for commands.\n", a.config.BackendURL)
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// startSession replaces the current session with a fresh one and loads the
// server defaults into it. A config failure leaves the defaults in place.
func (a *App) startSession(ctx context.Context) {
	if a.session != nil {
		a.session.Close()
	}
	a.session = services.NewSession(a.client, a.logger, a.opts)

	if err := a.session.SyncConfig(ctx); err != nil {
		fmt.Fprintln(a.out, "warning: server defaults not loaded:", err)
		return
	}
	fmt.Fprintln(a.out, "Server defaults loaded.")
}

// status renders the prompt summary: the cipher mode and whether the
// descriptor can be submitted.
func (a *App) status() string {
	mode, _ := a.session.Get(models.FieldCipherMode)
	n := len(a.session.Validate())
	if n == 0 {
		return fmt.Sprintf("[%s ready]", mode)
	}
	return fmt.Sprintf("[%s %d missing]", mode, n)
}
