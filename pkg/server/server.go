// Package server provides the HTTP REST facade over the resource
// service. It uses Echo to serve the cached resource endpoints and the
// peering report.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/config"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/proxy"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// Server is the REST facade.
type Server struct {
	echo    *echo.Echo
	service *proxy.Service
	config  *config.Config
}

// New creates the API server around a resource service.
func New(cfg *config.Config, service *proxy.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	s := &Server{echo: e, service: service, config: cfg}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())

	if s.config.Server.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Server.RateLimit),
		)))
	}
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/ping", s.ping)
	api.GET("/subscriptions", s.listSubscriptions)

	sub := api.Group("/subscriptions/:subscription_id")
	sub.GET("/resource-groups", s.listResourceGroups)
	sub.GET("/resource-groups/:resource_group/virtual-machines", s.listVirtualMachines)
	sub.GET("/resource-groups/:resource_group/virtual-machines/:vm_name", s.getVirtualMachine)
	sub.GET("/resource-groups/:resource_group/virtual-machines/:vm_name/routes", s.getVMEffectiveRoutes)
	sub.GET("/routetables", s.listRouteTables)
	sub.GET("/resource-groups/:resource_group/routetables/:route_table", s.getRouteTable)
	sub.GET("/virtual-networks", s.listVirtualNetworks)

	api.GET("/vm-report", s.vmReport)
	api.GET("/vnet-peering-report/subscriptions/:subscription_id", s.peeringReport)
}

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	util.Infof("API server listening on %s", s.config.Server.Addr())
	srv := &http.Server{
		Addr:         s.config.Server.Addr(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}
	return s.echo.StartServer(srv)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
