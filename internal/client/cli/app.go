package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/soulbloom/internal/client/client"
	"github.com/dmitrijs2005/soulbloom/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
	email  string
}

// NewApp connects the CLI to the configured server over stdin/stdout.
func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (app *App) isLoggedIn() bool {
	return app.client.LoggedIn()
}

func (app *App) status() string {
	if app.isLoggedIn() {
		return app.email
	}
	return "(not logged in)"
}

// report prints err for the user and returns it unchanged.
func (app *App) report(err error) error {
	if err != nil {
		fmt.Fprintf(app.out, "error: %v\n", err)
	}
	return err
}

// Run starts the REPL and closes the connection when it ends.
func (app *App) Run(ctx context.Context) error {
	defer app.client.Close()

	fmt.Fprintln(app.out, "soulbloom CLI (type 'help' for commands)")
	runREPL(ctx, app, app.out, app.status, app.reader)
	return nil
}
