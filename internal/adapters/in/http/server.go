package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"parcel/internal/core/application/orderflow"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers consumed by the server. The command and query handlers satisfy
// them directly.
type (
	QuoteHandler interface {
		Handle(ctx context.Context, cmd commands.QuoteShipmentCommand) (shipment.PricingBreakdown, error)
	}
	ConfirmHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmShipmentCommand) (*shipment.Shipment, error)
	}
	ResetHandler interface {
		Handle(ctx context.Context, cmd commands.ResetFlowCommand) error
	}
	SwitchServiceTypeHandler interface {
		Handle(ctx context.Context, cmd commands.SwitchServiceTypeCommand) (orderflow.State, error)
	}
	AdvanceHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceShipmentCommand) (*shipment.Shipment, error)
	}
	GetShipmentHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentQuery) (queries.GetShipmentQueryResponse, error)
	}
	ListShipmentsHandler interface {
		Handle(ctx context.Context, query queries.ListShipmentsByStatusQuery) ([]queries.ShipmentSummary, error)
	}
	// FlowLookup reads a session's flow without starting one.
	FlowLookup interface {
		Lookup(session string) (*orderflow.Flow, bool)
	}
)

// Server serves the back-office API: the quote/confirm flow for new bookings
// and the checklist steps for confirmed shipments.
type Server struct {
	// Command handlers
	quoteHandler      QuoteHandler
	confirmHandler    ConfirmHandler
	resetHandler      ResetHandler
	switchTypeHandler SwitchServiceTypeHandler
	advanceHandler    AdvanceHandler

	// Query handlers
	getShipmentHandler   GetShipmentHandler
	listShipmentsHandler ListShipmentsHandler
	flows                FlowLookup

	logger *slog.Logger
}

// Handlers groups everything NewServer needs.
type Handlers struct {
	Quote             QuoteHandler
	Confirm           ConfirmHandler
	Reset             ResetHandler
	SwitchServiceType SwitchServiceTypeHandler
	Advance           AdvanceHandler
	GetShipment       GetShipmentHandler
	ListShipments     ListShipmentsHandler
	Flows             FlowLookup
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		quoteHandler:         h.Quote,
		confirmHandler:       h.Confirm,
		resetHandler:         h.Reset,
		switchTypeHandler:    h.SwitchServiceType,
		advanceHandler:       h.Advance,
		getShipmentHandler:   h.GetShipment,
		listShipmentsHandler: h.ListShipments,
		flows:                h.Flows,
		logger:               logger.With("component", "http"),
	}
}

// Register mounts the API, the health check and the Swagger UI on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	flows := v1.Group("/flows/:session")
	flows.GET("", s.GetFlow)
	flows.DELETE("", s.ResetFlow)
	flows.POST("/quote", s.QuoteShipment)
	flows.POST("/service-type", s.SwitchServiceType)
	flows.POST("/confirm", s.ConfirmShipment)
	flows.POST("/confirm/retry", s.RetryConfirmShipment)

	v1.GET("/shipments", s.ListShipments)
	v1.GET("/shipments/:id", s.GetShipment)
	v1.POST("/shipments/:id/steps/:step", s.AdvanceShipment)
}

// GetFlow godoc
//
//	@Summary	Current state of a booking flow
//	@Tags		flows
//	@Produce	json
//	@Param		session	path		string	true	"Client session"
//	@Success	200		{object}	Flow
//	@Failure	404		{object}	Error
//	@Router		/api/v1/flows/{session} [get]
func (s *Server) GetFlow(c echo.Context) error {
	f, ok := s.flows.Lookup(c.Param("session"))
	if !ok {
		return c.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No flow for this session",
		})
	}
	return c.JSON(http.StatusOK, toFlow(f.State()))
}

// QuoteShipment godoc
//
//	@Summary	Replace the booking data and request a quote
//	@Tags		flows
//	@Accept		json
//	@Produce	json
//	@Param		session	path		string			true	"Client session"
//	@Param		intake	body		IntakeRequest	true	"Booking data"
//	@Success	200		{object}	Quote
//	@Failure	400		{object}	Error
//	@Failure	409		{object}	Error
//	@Failure	422		{object}	Error
//	@Failure	502		{object}	Error
//	@Router		/api/v1/flows/{session}/quote [post]
func (s *Server) QuoteShipment(c echo.Context) error {
	var req IntakeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	intake, err := req.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewQuoteShipmentCommand(c.Param("session"), intake)
	if err != nil {
		return s.fail(c, err)
	}

	pricing, err := s.quoteHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toQuote(pricing))
}

// SwitchServiceType godoc
//
//	@Summary	Migrate every item to another service type
//	@Tags		flows
//	@Accept		json
//	@Produce	json
//	@Param		session	path		string				true	"Client session"
//	@Param		body	body		ServiceTypeRequest	true	"Target service type"
//	@Success	200		{object}	Flow
//	@Failure	400		{object}	Error
//	@Failure	409		{object}	Error
//	@Router		/api/v1/flows/{session}/service-type [post]
func (s *Server) SwitchServiceType(c echo.Context) error {
	var req ServiceTypeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	st, err := shipment.ParseServiceType(req.ServiceType)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSwitchServiceTypeCommand(c.Param("session"), st)
	if err != nil {
		return s.fail(c, err)
	}

	state, err := s.switchTypeHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toFlow(state))
}

// ConfirmShipment godoc
//
//	@Summary	Create and confirm the quoted order
//	@Tags		flows
//	@Produce	json
//	@Param		session	path		string	true	"Client session"
//	@Success	201		{object}	Shipment
//	@Failure	409		{object}	Error	"In flight, not quoted, or created but not confirmed"
//	@Failure	422		{object}	Error
//	@Failure	502		{object}	Error
//	@Router		/api/v1/flows/{session}/confirm [post]
func (s *Server) ConfirmShipment(c echo.Context) error {
	cmd, err := commands.NewConfirmShipmentCommand(c.Param("session"))
	if err != nil {
		return s.fail(c, err)
	}
	return s.confirm(c, cmd)
}

// RetryConfirmShipment godoc
//
//	@Summary	Retry the last failed confirmation with the same idempotency key
//	@Tags		flows
//	@Produce	json
//	@Param		session	path		string	true	"Client session"
//	@Success	201		{object}	Shipment
//	@Failure	409		{object}	Error
//	@Failure	502		{object}	Error
//	@Router		/api/v1/flows/{session}/confirm/retry [post]
func (s *Server) RetryConfirmShipment(c echo.Context) error {
	cmd, err := commands.NewRetryConfirmShipmentCommand(c.Param("session"))
	if err != nil {
		return s.fail(c, err)
	}
	return s.confirm(c, cmd)
}

func (s *Server) confirm(c echo.Context, cmd commands.ConfirmShipmentCommand) error {
	sh, err := s.confirmHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toShipment(sh))
}

// ResetFlow godoc
//
//	@Summary	Abandon the booking flow
//	@Tags		flows
//	@Param		session	path	string	true	"Client session"
//	@Success	204
//	@Failure	409	{object}	Error
//	@Router		/api/v1/flows/{session} [delete]
func (s *Server) ResetFlow(c echo.Context) error {
	cmd, err := commands.NewResetFlowCommand(c.Param("session"))
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.resetHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetShipment godoc
//
//	@Summary	Shipment with its fees, deviations and available steps
//	@Tags		shipments
//	@Produce	json
//	@Param		id	path		string	true	"Shipment id"
//	@Success	200	{object}	Shipment
//	@Failure	400	{object}	Error
//	@Failure	404	{object}	Error
//	@Router		/api/v1/shipments/{id} [get]
func (s *Server) GetShipment(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("shipment id", err))
	}

	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.getShipmentHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toShipmentView(view))
}

// ListShipments godoc
//
//	@Summary	Shipments in one status, most recently updated first
//	@Tags		shipments
//	@Produce	json
//	@Param		status	query		string	true	"Status name"
//	@Param		limit	query		int		false	"Page size, 100 by default"
//	@Success	200		{array}		ShipmentSummary
//	@Failure	400		{object}	Error
//	@Router		/api/v1/shipments [get]
func (s *Server) ListShipments(c echo.Context) error {
	status, err := shipment.ParseStatus(c.QueryParam("status"))
	if err != nil {
		return s.fail(c, err)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
	}

	query, err := queries.NewListShipmentsByStatusQuery(status, limit)
	if err != nil {
		return s.fail(c, err)
	}

	list, err := s.listShipmentsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toShipmentSummaries(list))
}

// AdvanceShipment godoc
//
//	@Summary	Apply one checklist step to a shipment
//	@Tags		shipments
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Shipment id"
//	@Param		step	path		string		true	"Step name, e.g. CHECK_ITEM"
//	@Param		body	body		StepRequest	true	"Checklist answers and stage data"
//	@Success	200		{object}	Shipment
//	@Failure	400		{object}	Error
//	@Failure	404		{object}	Error
//	@Failure	409		{object}	Error	"Step not allowed, gate unsatisfied, or shipment busy"
//	@Failure	502		{object}	Error
//	@Router		/api/v1/shipments/{id}/steps/{step} [post]
func (s *Server) AdvanceShipment(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("shipment id", err))
	}

	step, err := shipment.ParseStep(c.Param("step"))
	if err != nil {
		return s.fail(c, err)
	}

	var req StepRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	data, err := req.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAdvanceShipmentCommand(id, step, data)
	if err != nil {
		return s.fail(c, err)
	}

	sh, err := s.advanceHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toShipment(sh))
}
