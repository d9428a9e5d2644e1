package actions

import (
	"context"
	"net/http/httputil"

	"gitlab.com/paramountdax-exchange/site_maintenance/config"
	"gitlab.com/paramountdax-exchange/site_maintenance/events"
	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
)

// Actions structure
type Actions struct {
	ctx            context.Context
	cfg            config.Config
	maintenance    *maintenance.Service
	dispatcher     *events.Dispatcher
	upstream       *httputil.ReverseProxy
	jwtTokenSecret string
}

// NewActions constructor
func NewActions(ctx context.Context, cfg config.Config, svc *maintenance.Service, dispatcher *events.Dispatcher) *Actions {
	return &Actions{
		ctx:            ctx,
		cfg:            cfg,
		maintenance:    svc,
		dispatcher:     dispatcher,
		upstream:       newUpstreamProxy(cfg.Server.API.Upstream),
		jwtTokenSecret: cfg.Server.API.JWTTokenSecret,
	}
}
