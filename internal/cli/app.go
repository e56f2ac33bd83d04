package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"stocktrack/internal/api"
	"stocktrack/internal/config"
	"stocktrack/internal/credstore"
	"stocktrack/internal/logging"
	"stocktrack/internal/notify"
	"stocktrack/internal/session"
	"stocktrack/internal/store"

	_ "modernc.org/sqlite"
)

// App wires the session manager, the product store and the interactive REPL
// together.
type App struct {
	config  *config.Config
	session *session.Manager
	store   *store.Store
	client  api.Client
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
	online  bool
}

// NewApp builds the full dependency graph: local credential store, HTTP API
// client, session manager and product store.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	creds, db, err := credstore.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init credential store: %w", err)
	}

	client := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout)
	notifier := notify.NewConsole(os.Stdout)

	sess := session.NewManager(client, creds, notifier, log)
	st := store.New(client, notifier, log)

	return &App{
		config:  cfg,
		session: sess,
		store:   st,
		client:  client,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		online:  true,
	}, nil
}

// Run resolves the session from the persisted credential and then drives the
// REPL alongside a background connectivity watcher until the user exits or
// ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		_ = a.client.Close()
		_ = a.db.Close()
	}()

	if err := a.session.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}
	if p := a.session.Principal(); p != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", p.Name)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.watchConnectivity(ctx, a.config.PingInterval)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		scanner := bufio.NewScanner(os.Stdin)
		runREPL(ctx, a, a.statusLine, scanner)
		return nil
	})
	return g.Wait()
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}

func (a *App) statusLine() string {
	if p := a.session.Principal(); p != nil {
		return p.Email
	}
	return a.session.Status().String()
}

func (a *App) setOnline(ctx context.Context, online bool) {
	if a.online != online {
		a.online = online
		if online {
			a.log.Info(ctx, "server reachable again")
		} else {
			a.log.Warn(ctx, "server unreachable")
		}
	}
}

// watchConnectivity periodically probes the server and logs reachability
// transitions.
func (a *App) watchConnectivity(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()
			a.setOnline(ctx, err == nil)

		case <-ctx.Done():
			return
		}
	}
}
