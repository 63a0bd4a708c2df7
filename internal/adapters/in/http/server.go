// Package http is the inbound HTTP adapter: the integrator-facing REST API
// for orders and quotes, authenticated by per-account API keys.
package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/commands"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/application/usecases/queries"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/account"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/kernel"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/domain/model/order"
	"github.com/CosmicQuant/tumafast-sub002/internal/core/ports"
	"github.com/CosmicQuant/tumafast-sub002/internal/pkg/metrics"
)

// Server coordinates between the HTTP endpoints and the application use cases.
type Server struct {
	createOrderHandler commands.CreateOrderCommandHandler
	updateOrderHandler commands.UpdateOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	getOrderHandler queries.GetOrderQueryHandler
	quoteHandler    queries.QuoteQueryHandler

	trackingBaseURL string
}

// NewServer creates the HTTP server with the required command and query
// handlers. trackingBaseURL is the public tracking page prefix; the order id
// is appended to it.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	quoteHandler queries.QuoteQueryHandler,
	trackingBaseURL string,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		updateOrderHandler: updateOrderHandler,
		cancelOrderHandler: cancelOrderHandler,
		getOrderHandler:    getOrderHandler,
		quoteHandler:       quoteHandler,
		trackingBaseURL:    trackingBaseURL,
	}
}

// RegisterRoutes mounts the API under /v1 behind API key authentication,
// plus the unauthenticated health and metrics endpoints.
func (s *Server) RegisterRoutes(e *echo.Echo, resolver ports.AccountResolver) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1", AuthMiddleware(resolver), requestMetrics())
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PATCH("/orders/:id", s.UpdateOrder)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/quotes", s.CreateQuote)
}

func requestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			metrics.APIRequests.WithLabelValues(
				c.Path(), strconv.Itoa(c.Response().Status),
			).Inc()
			return err
		}
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /v1/orders. The initial price is the same
// calculation the quote endpoint performs for the requested route.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest,
			newErrorBody(codeValidationError, "Invalid request body"))
	}

	ref := authenticatedAccount(c)

	stops, err := req.stops()
	if err != nil {
		return s.fail(c, err)
	}

	details := order.Details{
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		Vehicle:     req.Vehicle,
		ServiceType: req.ServiceType,
		Items:       req.items(),
		Recipient:   req.recipient(),
		Stops:       stops,
		PickupTime:  req.PickupTime,
		Scheduled:   req.Scheduled,
		Environment: environmentFor(ref.Mode),
		Metadata:    req.Metadata,
	}

	quoteQuery, err := queries.NewQuoteQuery(
		req.Pickup, req.Dropoff, req.Vehicle, req.ServiceType,
		queries.QuoteOptions{Fragile: details.Items.Fragile},
	)
	if err != nil {
		return s.fail(c, err)
	}
	quote, err := s.quoteHandler.Handle(c.Request().Context(), quoteQuery)
	if err != nil {
		return s.fail(c, err)
	}
	details.Price = quote.Amount

	cmd, err := commands.NewCreateOrderCommand(ref.ID, details)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.failCreate(c, err)
	}

	return c.JSON(http.StatusCreated, orderCreatedResponse{
		ID:          created.ID().String(),
		Object:      "order",
		Status:      string(created.Status()),
		Created:     created.CreatedAt().UnixMilli(),
		TrackingURL: s.trackingBaseURL + created.ID().String(),
		Environment: created.Environment(),
	})
}

// GetOrder handles GET /v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := kernel.IDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound,
			newErrorBody(codeResourceMissing, "Order not found"))
	}

	query, err := queries.NewGetOrderQuery(id, authenticatedAccount(c).ID)
	if err != nil {
		return s.fail(c, err)
	}

	found, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse{
		ID:          found.ID().String(),
		Object:      "order",
		Status:      string(found.Status()),
		Driver:      driverFromDomain(found.Driver()),
		TrackingURL: s.trackingBaseURL + found.ID().String(),
	})
}

// UpdateOrder handles PATCH /v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := kernel.IDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound,
			newErrorBody(codeResourceMissing, "Order not found"))
	}

	var req patchOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest,
			newErrorBody(codeValidationError, "Invalid request body"))
	}

	patch, err := req.toPatch()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(id, authenticatedAccount(c).ID, patch)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.updateOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderUpdatedResponse{
		ID:       result.Order.ID().String(),
		Object:   "order",
		Status:   string(result.Order.Status()),
		Updated:  true,
		Changes:  result.Changes,
		NewPrice: result.Order.Price(),
	})
}

// CancelOrder handles POST /v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := kernel.IDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound,
			newErrorBody(codeResourceMissing, "Order not found"))
	}

	cmd, err := commands.NewCancelOrderCommand(id, authenticatedAccount(c).ID)
	if err != nil {
		return s.fail(c, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderCancelledResponse{
		ID:        cancelled.ID().String(),
		Object:    "order",
		Status:    string(cancelled.Status()),
		Cancelled: true,
	})
}

// CreateQuote handles POST /v1/quotes.
func (s *Server) CreateQuote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest,
			newErrorBody(codeValidationError, "Invalid request body"))
	}

	query, err := queries.NewQuoteQuery(
		req.Pickup, req.Dropoff, req.Vehicle, req.ServiceType,
		queries.QuoteOptions{
			Fragile:            req.Fragile,
			EstimatedBasePrice: req.EstimatedBasePrice,
			RecommendedVehicle: req.RecommendedVehicle,
		},
	)
	if err != nil {
		return s.fail(c, err)
	}

	quote, err := s.quoteHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, quote)
}

func (s *Server) fail(c echo.Context, err error) error {
	status, body := mapError(err)
	return c.JSON(status, body)
}

// failCreate reports creation failures. The create endpoint keeps its own
// 500 code and message for compatibility with existing integrations.
func (s *Server) failCreate(c echo.Context, err error) error {
	status, body := mapError(err)
	if status == http.StatusInternalServerError {
		body = newErrorBody(codeAPIError, "Internal server error while processing request.")
	}
	return c.JSON(status, body)
}

func environmentFor(mode account.Mode) string {
	if mode == account.ModeLive {
		return "live"
	}
	return "test"
}
