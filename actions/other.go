package actions

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/httputils"
	"gitlab.com/paramountdax-exchange/site_maintenance/logger"
)

// Ping godoc
// swagger:route GET /ping misc ping
// Ping
//
// Ping the server
//
//	Produces:
//	- application/json
//
//	Responses:
//	  200: StringResp
func Ping(c *gin.Context) {
	c.JSON(200, "pong")
}

func abortWithError(c *gin.Context, code int, message string) {
	l := getlog(c)
	l.Debug().Stack().Int("resp_code", code).Msg(message)
	c.AbortWithStatusJSON(code, httputils.RequestError{Error: message})
}

func getlog(c *gin.Context) zerolog.Logger {
	return logger.GetLogger(c)
}

func newUpstreamProxy(upstream string) *httputil.ReverseProxy {
	if upstream == "" {
		return nil
	}
	target, err := url.Parse(upstream)
	if err != nil || target.Host == "" {
		log.Fatal().Err(err).Str("section", "actions").Str("upstream", upstream).Msg("Invalid upstream url")
		return nil
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("section", "proxy").Str("path", r.URL.Path).Msg("Unable to reach upstream site")
		w.WriteHeader(BadGateway)
	}
	return proxy
}

// Forward sends an allowed request to the upstream site
func (actions *Actions) Forward(c *gin.Context) {
	if actions.upstream == nil {
		c.Status(NoContent)
		return
	}
	actions.upstream.ServeHTTP(c.Writer, c.Request)
}
