package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/proxy"
)

// refreshRequested reports whether the caller asked to bypass the cache.
func refreshRequested(c echo.Context) bool {
	return c.QueryParam("refresh-cache") == "true"
}

func (s *Server) ping(c echo.Context) error {
	return c.JSON(http.StatusOK, "pong")
}

func (s *Server) listSubscriptions(c echo.Context) error {
	subs, err := s.service.Subscriptions(c.Request().Context(), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

func (s *Server) listResourceGroups(c echo.Context) error {
	groups, err := s.service.ResourceGroups(c.Request().Context(), c.Param("subscription_id"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

func (s *Server) listVirtualMachines(c echo.Context) error {
	vms, err := s.service.VirtualMachines(c.Request().Context(),
		c.Param("subscription_id"), c.Param("resource_group"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vms)
}

func (s *Server) getVirtualMachine(c echo.Context) error {
	detail, err := s.service.VMDetails(c.Request().Context(),
		c.Param("subscription_id"), c.Param("resource_group"), c.Param("vm_name"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) getVMEffectiveRoutes(c echo.Context) error {
	routes, err := s.service.VMEffectiveRoutes(c.Request().Context(),
		c.Param("subscription_id"), c.Param("resource_group"), c.Param("vm_name"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, routes)
}

func (s *Server) listRouteTables(c echo.Context) error {
	tables, err := s.service.RouteTables(c.Request().Context(), c.Param("subscription_id"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tables)
}

func (s *Server) getRouteTable(c echo.Context) error {
	rt, err := s.service.RouteTable(c.Request().Context(),
		c.Param("subscription_id"), c.Param("resource_group"), c.Param("route_table"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rt)
}

func (s *Server) listVirtualNetworks(c echo.Context) error {
	vnets, err := s.service.VirtualNetworks(c.Request().Context(),
		c.Param("subscription_id"), c.QueryParam("resource-group"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vnets)
}

func (s *Server) vmReport(c echo.Context) error {
	report, err := s.service.VMReport(c.Request().Context(), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// PeeringReportResponse bundles the reconciled pairs with their summary.
type PeeringReportResponse struct {
	Pairs   []azure.PeeringPair  `json:"pairs"`
	Summary azure.PeeringSummary `json:"summary"`
}

func (s *Server) peeringReport(c echo.Context) error {
	pairs, err := s.service.PeeringReport(c.Request().Context(),
		c.Param("subscription_id"), c.QueryParam("resource-group"), refreshRequested(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PeeringReportResponse{
		Pairs:   pairs,
		Summary: proxy.SummarizePeerings(pairs),
	})
}
