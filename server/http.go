package server

import (
	"fmt"
	"net/http"

	limit "github.com/bu/gin-access-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/actions"
	"gitlab.com/paramountdax-exchange/site_maintenance/config"
	"gitlab.com/paramountdax-exchange/site_maintenance/logger"
	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

// NewRouter registers the admin API and the maintenance gate.
// Every path not handled by the admin API goes through the gate.
func NewRouter(a *actions.Actions, cfg config.Config) *gin.Engine {
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	if len(cfg.Server.API.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.API.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Length", "Content-Type", "Accept", "Accept-Language", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "OPTIONS"}

	r.Use(cors.New(corsConfig))
	r.Use(gin.Recovery()) // Recovery middleware recovers from any panics and writes a 500 if there was one.
	r.Use(logger.SetLogger(logger.Config{SkipPath: []string{"/ping"}}))
	r.Use(a.Identify())

	r.GET("/ping", actions.Ping)

	admin := r.Group("/admin")
	{
		limit.TrustedHeaderField = "X-Forwarded-For"
		admin.Use(limit.CIDR(cfg.Server.Admin.AllowedIPs))
		admin.Use(a.Restrict())

		admin.GET("/maintenance", a.HasPerm(model.PermMaintenanceView), a.GetMaintenanceStatus)
		admin.PUT("/maintenance", a.HasPerm(model.PermMaintenanceManage), a.UpdateMaintenanceSettings)
		admin.GET("/maintenance/notices", a.HasPerm(model.PermMaintenanceView), a.GetMaintenanceNotices)
		admin.GET("/maintenance/preview", a.HasPerm(model.PermMaintenanceView), a.PreviewMaintenance)
		admin.GET("/roles", a.HasPerm(model.PermMaintenanceView), a.GetRoles)

		admin.POST("/updates/start", a.HasPerm(model.PermUpdatesNotify), a.StartUpdate)
		admin.POST("/updates/finish", a.HasPerm(model.PermUpdatesNotify), a.FinishUpdate)
		admin.GET("/updates/default-maintenance", a.HasPerm(model.PermUpdatesNotify), a.GetDefaultMaintenance)
	}

	r.NoRoute(a.CheckMaintenanceMode(), a.Forward)
	return r
}

func (srv *server) newHTTPServer() *http.Server {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.config.Server.API.Port),
		Handler: NewRouter(srv.actions, srv.config),
	}
	httpServer.SetKeepAlivesEnabled(srv.config.Server.API.KeepAlive)
	return httpServer
}

// ListenToRequests serves the HTTP API until the server is shut down
func (srv *server) ListenToRequests() error {
	log.Info().Str("worker", "http_listen_to_requests").Str("action", "start").Int("port", srv.config.Server.API.Port).Msg("HTTP Listen to requests - started")
	defer log.Info().Str("worker", "http_listen_to_requests").Str("action", "stop").Msg("HTTP Listen to requests - stopped")

	if err := srv.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Str("section", "server").Str("action", "ListenToRequests").Msgf("Unable to listen %d port", srv.config.Server.API.Port)
		return err
	}
	return nil
}
