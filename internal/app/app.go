package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log     logrus.FieldLogger
	config  *config.Config
	router  *http.ServeMux
	store   *session.Store
	jwt     *config.JWT
	cookies *config.Cookies
	ws      *config.WebSocket
}

func New(log logrus.FieldLogger, c *config.Config) (*App, error) {
	jwt, err := config.NewJWT(c.JWT)
	if err != nil {
		return nil, err
	}

	app := &App{
		log:     log,
		config:  c,
		router:  http.NewServeMux(),
		store:   session.NewStore(c.Session.TTL, log),
		jwt:     jwt,
		cookies: config.NewCookies(c.Cookies),
		ws:      config.NewWebSocket(c.Cors),
	}

	app.loadRoutes()

	return app, nil
}

// Handler is the router wrapped in the middleware stack.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(a.config.Cors),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is done, then shuts the server down. The session
// sweeper runs alongside the server.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.WithField("addr", a.config.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return a.store.Run(ctx, a.config.Session.SweepInterval)
	})

	return g.Wait()
}
