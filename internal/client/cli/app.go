package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/recipebox/internal/client/auth"
	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/config"
	"github.com/dmitrijs2005/recipebox/internal/client/credentials"
	"github.com/dmitrijs2005/recipebox/internal/client/services"
	"github.com/dmitrijs2005/recipebox/internal/client/storage"
	"github.com/dmitrijs2005/recipebox/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *storage.DB
	client  client.Client
	session *services.SessionManager
	prefs   *services.PreferenceStore
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens storage, builds the services and restores persisted state.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	db, err := storage.Open(ctx, c.DatabaseDSN, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	app, err := newApp(ctx, c, db, log, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, db *storage.DB, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	verifier := credentials.NewStaticVerifier(credentials.DemoAccounts())
	backend := client.NewLocalClient(verifier, auth.NewIssuer(), c.LoginDelay, c.FetchDelay)

	session := services.NewSessionManager(backend, db, log)
	if err := session.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	prefs := services.NewPreferenceStore(db, log)
	if err := prefs.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("restore preferences: %w", err)
	}

	return &App{
		config:  c,
		log:     log,
		db:      db,
		client:  backend,
		session: session,
		prefs:   prefs,
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

// Run blocks in the REPL and closes the app when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to recipebox (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	if err := a.client.Close(); err != nil {
		return err
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	name := "guest"
	if u, ok := a.session.User(); ok {
		name = u.Username
	}
	if a.prefs.DarkMode() {
		return name + " dark"
	}
	return name
}
