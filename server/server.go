package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"gitlab.com/paramountdax-exchange/site_maintenance/actions"
	"gitlab.com/paramountdax-exchange/site_maintenance/config"
	"gitlab.com/paramountdax-exchange/site_maintenance/crons"
	"gitlab.com/paramountdax-exchange/site_maintenance/events"
	"gitlab.com/paramountdax-exchange/site_maintenance/featureflags"
	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
	"gitlab.com/paramountdax-exchange/site_maintenance/monitor"
	"gitlab.com/paramountdax-exchange/site_maintenance/settings"
)

// Server interface
type Server interface {
	Listen()
}

type server struct {
	config      config.Config
	actions     *actions.Actions
	maintenance *maintenance.Service
	dispatcher  *events.Dispatcher
	store       settings.Store
	ctx         context.Context
	close       context.CancelFunc
	HTTP        *http.Server
}

// NewServer constructor
func NewServer(cfg config.Config) Server {
	ctx, close := context.WithCancel(context.Background())

	store, err := settings.Open(cfg.Storage, cfg.Redis, cfg.Database)
	if err != nil {
		log.Fatal().Str("section", "server").Err(err).Msg("Unable to open settings store")
	}
	svc := NewMaintenance(cfg, store)
	// seed the defaults, options already stored are kept
	if err := svc.Repository().Activate(ctx); err != nil {
		log.Fatal().Str("section", "server").Err(err).Msg("Unable to write default maintenance options")
	}
	dispatcher := NewDispatcher(svc)

	crons.Start(cfg.Crons, crons.Dependencies{
		Maintenance: svc,
		Permissions: func() map[string][]string { return cfg.Permissions },
	})

	return &server{
		config:      cfg,
		maintenance: svc,
		dispatcher:  dispatcher,
		store:       store,
		actions:     actions.NewActions(ctx, cfg, svc, dispatcher),
		ctx:         ctx,
		close:       close,
	}
}

// NewMaintenance builds the maintenance service on top of the given store
func NewMaintenance(cfg config.Config, store settings.Store) *maintenance.Service {
	repo := settings.NewRepository(store)
	repo.SetSiteDefaults(cfg.Site.Defaults())
	return maintenance.NewService(repo, maintenance.NewUpdateTracker(), cfg.Maintenance)
}

// NewDispatcher registers the maintenance listeners
func NewDispatcher(svc *maintenance.Service) *events.Dispatcher {
	dispatcher := events.NewDispatcher()
	dispatcher.OnRequest(svc)
	dispatcher.OnUpdate(svc.Tracker())
	dispatcher.OnDefaultMaintenance(svc.Tracker())
	return dispatcher
}

// Listen for incoming requests until a termination signal is received
func (srv *server) Listen() {
	srv.HTTP = srv.newHTTPServer()

	group, ctx := errgroup.WithContext(srv.ctx)
	group.Go(func() error {
		err := srv.ListenToRequests()
		if err != nil {
			monitor.ShutdownServer()
		}
		return err
	})
	group.Go(func() error {
		monitor.LoopProfilingServer(srv.config.Server.Monitoring)
		return nil
	})
	group.Go(func() error {
		srv.stopOnSignal(ctx)
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Str("section", "server").Msg("Server stopped unexpectedly")
	}
	srv.close()
}

func (srv *server) stopOnSignal(ctx context.Context) {
	// listen for termination signals
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)
	select {
	case sig := <-sigc:
		log.Info().Str("section", "server").Str("app_event", "terminate").Str("signal", sig.String()).Msg("Shutting down services")
		srv.closeApp(5 * time.Second)
	case <-ctx.Done():
	}
}

func (srv *server) closeApp(timeout time.Duration) {
	// define a timeout in which the graceful shutdown procedure should happen before forcing the shutdown
	timeoutFunc := time.AfterFunc(timeout, func() {
		log.Printf("timeout %d ms has been elapsed, force exit", timeout.Milliseconds())
		os.Exit(0)
	})
	defer timeoutFunc.Stop()

	monitor.ShutdownServer()
	if err := srv.HTTP.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Str("section", "server").Str("action", "terminate").Msg("Unable to shutdown HTTP server")
	}

	crons.Close()
	featureflags.Close()
	settings.Close(srv.store)

	log.Info().Str("section", "server").Str("app_event", "terminate").Str("state", "complete").Msg("All workers terminated")
}
