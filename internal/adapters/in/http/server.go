// Package http exposes the dispatch use cases over a REST API.
// Handlers translate between the wire format and commands/queries; all
// business rules, including concurrency control, live below this layer. The
// one rule enforced here is the finalize-delivery gate: a driver finishing a
// cash order must confirm the cash was collected before the delivered
// transition is issued.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP routes to the application's command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	claimOrderHandler      commands.ClaimOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	confirmPaymentHandler  commands.ConfirmPaymentCommandHandler

	// Query handlers
	getDriverOrdersHandler    queries.GetDriverOrdersQueryHandler
	getOrderHandler           queries.GetOrderQueryHandler
	getWalletStatementHandler queries.GetWalletStatementQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	getDriverOrdersHandler queries.GetDriverOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getWalletStatementHandler queries.GetWalletStatementQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		claimOrderHandler:         claimOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		confirmPaymentHandler:     confirmPaymentHandler,
		getDriverOrdersHandler:    getDriverOrdersHandler,
		getOrderHandler:           getOrderHandler,
		getWalletStatementHandler: getWalletStatementHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.POST("/orders/:orderID/transition", s.TransitionOrder)
	api.POST("/orders/:orderID/finalize", s.FinalizeDelivery)
	api.POST("/orders/:orderID/payment-confirmation", s.ConfirmPayment)
	api.GET("/drivers/:driverID/orders", s.GetDriverOrders)
	api.GET("/tenants/:tenantID/wallet", s.GetWalletStatement)

	e.GET("/health", s.Health)
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid request body")
	}

	tenantID, err := kernel.UUIDFromString(req.TenantID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid tenantId: "+err.Error())
	}
	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid clientId: "+err.Error())
	}
	total, err := kernel.NewMoney(req.TotalCents)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid totalCents: "+err.Error())
	}
	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid paymentMethod: "+err.Error())
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, tenantID, clientID, total, paymentMethod)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid order id: "+err.Error())
	}

	var req ClaimOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid driverId: "+err.Error())
	}
	tenantID, err := kernel.UUIDFromString(req.TenantID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid tenantId: "+err.Error())
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, driverID, tenantID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:orderID/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid order id: "+err.Error())
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid target: "+err.Error())
	}

	actor, err := actorFromRequest(req.Actor)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target, order.TransitionContext{
		CancelReason:       req.CancelReason,
		ProblemCategory:    req.ProblemCategory,
		ProblemDescription: req.ProblemDescription,
	})
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FinalizeDelivery handles POST /api/v1/orders/:orderID/finalize.
//
// This is the driver's at-the-door endpoint. outcome=success issues the
// delivered transition; for cash orders the request must carry
// cashCollected=true or the transition is refused before it starts.
// outcome=problem routes the order to the pending-problem state with a
// mandatory category and description.
func (s *Server) FinalizeDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid order id: "+err.Error())
	}

	var req FinalizeDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid driverId: "+err.Error())
	}
	tenantID, err := kernel.UUIDFromString(req.TenantID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid tenantId: "+err.Error())
	}

	actor, err := order.NewDriverActor(driverID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	var target order.Status
	var transitionCtx order.TransitionContext

	switch req.Outcome {
	case "success":
		detail, queryErr := s.loadOrder(ctx, orderID, tenantID)
		if queryErr != nil {
			return respondDomainError(ctx, queryErr)
		}
		if detail.PaymentMethod == order.Cash.String() && !req.CashCollected {
			return respondError(ctx, http.StatusBadRequest,
				"cash orders require cashCollected to be confirmed before delivery")
		}
		target = order.Delivered
	case "problem":
		target = order.PendingProblem
		transitionCtx = order.TransitionContext{
			ProblemCategory:    req.ProblemCategory,
			ProblemDescription: req.ProblemDescription,
		}
	default:
		return respondError(ctx, http.StatusBadRequest, "outcome must be success or problem")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target, transitionCtx)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmPayment handles POST /api/v1/orders/:orderID/payment-confirmation.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid order id: "+err.Error())
	}

	var req ConfirmPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid request body")
	}

	tenantID, err := kernel.UUIDFromString(req.TenantID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid tenantId: "+err.Error())
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, tenantID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	if handleErr := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:orderID?tenantId=...
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid order id: "+err.Error())
	}
	tenantID, err := kernel.UUIDFromString(ctx.QueryParam("tenantId"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid tenantId: "+err.Error())
	}

	detail, err := s.loadOrder(ctx, orderID, tenantID)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetail(detail))
}

// GetDriverOrders handles GET /api/v1/drivers/:driverID/orders?tenantId=...
func (s *Server) GetDriverOrders(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driverID"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid driver id: "+err.Error())
	}
	tenantID, err := kernel.UUIDFromString(ctx.QueryParam("tenantId"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid tenantId: "+err.Error())
	}

	query, err := queries.NewGetDriverOrdersQuery(driverID, tenantID)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	board, err := s.getDriverOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	response := make([]DriverOrder, len(board))
	for i, item := range board {
		response[i] = DriverOrder{
			ID:            item.ID.String(),
			Status:        item.Status.String(),
			StatusLabel:   item.StatusLabel,
			TotalCents:    item.TotalCents,
			PaymentMethod: item.PaymentMethod,
			Mine:          item.Mine,
			CreatedAt:     item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWalletStatement handles GET /api/v1/tenants/:tenantID/wallet?limit=...
func (s *Server) GetWalletStatement(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.Param("tenantID"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "invalid tenant id: "+err.Error())
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return respondError(ctx, http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewGetWalletStatementQuery(tenantID, limit)
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, err.Error())
	}

	statement, err := s.getWalletStatementHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	entries := make([]WalletEntry, len(statement.Entries))
	for i, entry := range statement.Entries {
		entries[i] = WalletEntry{
			ID:            entry.ID.String(),
			OrderID:       entry.OrderID.String(),
			AmountCents:   entry.AmountCents,
			Type:          entry.Type,
			PaymentMethod: entry.PaymentMethod,
			Description:   entry.Description,
			CreatedAt:     entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, WalletStatement{
		TenantID:     statement.TenantID.String(),
		BalanceCents: statement.BalanceCents,
		UpdatedAt:    statement.UpdatedAt,
		Entries:      entries,
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) loadOrder(
	ctx echo.Context,
	orderID kernel.UUID,
	tenantID kernel.UUID,
) (queries.GetOrderQueryResponse, error) {
	query, err := queries.NewGetOrderQuery(orderID, tenantID)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	return s.getOrderHandler.Handle(ctx.Request().Context(), query)
}

func toOrderDetail(resp queries.GetOrderQueryResponse) OrderDetail {
	nextStates := make([]string, len(resp.NextStates))
	for i, status := range resp.NextStates {
		nextStates[i] = status.String()
	}

	detail := OrderDetail{
		ID:                 resp.ID.String(),
		ClientID:           resp.ClientID.String(),
		Status:             resp.Status.String(),
		StatusLabel:        resp.StatusLabel,
		NextStates:         nextStates,
		TotalCents:         resp.TotalCents,
		PaymentMethod:      resp.PaymentMethod,
		PaymentStatus:      resp.PaymentStatus,
		CancelReason:       resp.CancelReason,
		ProblemCategory:    resp.ProblemCategory,
		ProblemDescription: resp.ProblemDescription,
		CreatedAt:          resp.CreatedAt,
		AcceptedAt:         resp.AcceptedAt,
		PreparingAt:        resp.PreparingAt,
		ReadyAt:            resp.ReadyAt,
		PickedUpAt:         resp.PickedUpAt,
		OnWayAt:            resp.OnWayAt,
		AtDoorAt:           resp.AtDoorAt,
		DeliveredAt:        resp.DeliveredAt,
		CanceledAt:         resp.CanceledAt,
	}
	if resp.AssignedDriver != nil {
		id := resp.AssignedDriver.String()
		detail.AssignedDriver = &id
	}
	return detail
}

func actorFromRequest(req ActorRequest) (order.Actor, error) {
	id, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		return order.Actor{}, errors.New("invalid actor id: " + err.Error())
	}

	switch req.Kind {
	case "company":
		return order.NewCompanyActor(id)
	case "driver":
		return order.NewDriverActor(id)
	default:
		return order.Actor{}, errors.New("actor kind must be company or driver")
	}
}

// respondDomainError maps application and domain errors to HTTP statuses.
func respondDomainError(ctx echo.Context, err error) error {
	var invalidTransition *order.InvalidTransitionError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrActorForbidden),
		errors.Is(err, commands.ErrNotAuthorizedForTenant):
		return respondError(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, commands.ErrOrderAlreadyClaimed),
		errors.Is(err, commands.ErrDriverBusy),
		errors.Is(err, errs.ErrConcurrentUpdate):
		return respondError(ctx, http.StatusConflict, err.Error())
	case errors.As(err, &invalidTransition):
		return respondError(ctx, http.StatusUnprocessableEntity, invalidTransition.Error())
	case errors.Is(err, order.ErrDriverRequired):
		return respondError(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrReasonIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respondError(ctx, http.StatusBadRequest, err.Error())
	default:
		return respondError(ctx, http.StatusInternalServerError, "internal error")
	}
}

func respondError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
