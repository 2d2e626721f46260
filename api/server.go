package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/nzai/qs/recorder"
	"github.com/nzai/qs/schedulers"
	"github.com/nzai/qs/tables"
	"go.uber.org/zap"
)

// Server api server
type Server struct {
	engine   *gin.Engine
	recorder *recorder.Recorder
	appender *tables.Appender
	worker   *schedulers.Worker
	location *time.Location
	tickers  []string
	apiKey   string
}

// NewServer create api server. worker may be nil when the background
// poller is disabled.
func NewServer(rec *recorder.Recorder, appender *tables.Appender, worker *schedulers.Worker, location *time.Location, tickers []string, apiKey string) *Server {
	gin.SetMode(gin.ReleaseMode)
	server := &Server{
		engine:   gin.New(),
		recorder: rec,
		appender: appender,
		worker:   worker,
		location: location,
		tickers:  tickers,
		apiKey:   apiKey,
	}

	server.engine.Use(server.requestID(), server.logger(), server.recovery())

	pprof.Register(server.engine, "/debug/pprof")

	server.registeRoute()

	zap.L().Debug("register route success")

	return server
}

func (s Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}
