package http

import (
	"net/http"

	"deliverytracker/internal/core/application/addressing"
	"deliverytracker/internal/core/application/usecases/commands"
	"deliverytracker/internal/core/application/usecases/queries"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
// Both addresses are resolved from their postal codes before anything is stored.
func (s *Server) CreateOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var body createOrderRequest
	if err = c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	origin, err := addressing.NewRequest(body.OriginAddress.CEP, body.OriginAddress.Number, body.OriginAddress.Complement)
	if err != nil {
		return err
	}
	destination, err := addressing.NewRequest(
		body.DestinationAddress.CEP, body.DestinationAddress.Number, body.DestinationAddress.Complement)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(caller.ID(), origin, destination)
	if err != nil {
		return err
	}

	created, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.renderCommitted(c, http.StatusCreated, caller, created)
}

// ListOwnOrders handles GET /api/v1/orders.
func (s *Server) ListOwnOrders(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	status, err := statusFilter(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListOwnOrdersQuery(caller.ID(), status)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

// ListAllOrders handles GET /api/v1/orders/all. Admin only.
func (s *Server) ListAllOrders(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListAllOrdersQuery(status)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

func (s *Server) listOrders(c echo.Context, query queries.ListOrdersQuery) error {
	rows, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListFromSummaries(rows))
}

// OrderStatusSummary handles GET /api/v1/orders/summary. Admin only.
func (s *Server) OrderStatusSummary(c echo.Context) error {
	counts, err := s.h.OrderStatusSummary.Handle(c.Request().Context(), queries.NewOrderStatusSummaryQuery())
	if err != nil {
		return err
	}

	resp := OrderStatusSummaryResponse{ByStatus: make([]StatusCountResponse, len(counts))}
	for i, sc := range counts {
		resp.ByStatus[i] = StatusCountResponse{Status: sc.Status, Count: sc.Count}
		resp.Total += sc.Count
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/v1/orders/{order_id}.
func (s *Server) GetOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "order_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(caller, orderID)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{order_id}/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "order_id")
	if err != nil {
		return err
	}

	var body statusUpdateRequest
	if err = c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(caller, orderID, status)
	if err != nil {
		return err
	}
	updated, err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.renderCommitted(c, http.StatusOK, caller, updated)
}

// TrackOrder handles GET /api/v1/tracking/{tracking_code}. No credential is required.
func (s *Server) TrackOrder(c echo.Context) error {
	query, err := queries.NewTrackOrderQuery(c.Param("tracking_code"))
	if err != nil {
		return err
	}

	view, err := s.h.TrackOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackingFromView(view))
}

// renderCommitted answers a successful write with the full order. The write
// is already committed, so a failed re-read still answers with status and the
// order without its addresses.
func (s *Server) renderCommitted(c echo.Context, status int, caller *user.User, o *order.Order) error {
	ctx := c.Request().Context()

	query, err := queries.NewGetOrderQuery(caller, o.ID())
	if err == nil {
		var view queries.OrderView
		if view, err = s.h.GetOrder.Handle(ctx, query); err == nil {
			return c.JSON(status, orderFromView(view))
		}
	}

	s.logger.ErrorContext(ctx, "Committed order could not be re-read",
		"order_id", o.ID(), "status", o.Status().String(), "error", err)
	return c.JSON(status, orderFromDomain(o))
}
