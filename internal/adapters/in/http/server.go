package http

import (
	"context"
	"log/slog"
	"net/http"

	"deliverytracker/internal/core/application/usecases/commands"
	"deliverytracker/internal/core/application/usecases/queries"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/core/domain/services"
	"deliverytracker/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Use case contracts consumed by the server. The concrete handlers live in
// usecases/commands and usecases/queries; the composition root passes them in.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	RegisterUserHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterUserCommand) (*user.User, error)
	}
	ChangeUserRoleHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeUserRoleCommand) (*user.User, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
	}
	TrackOrderHandler interface {
		Handle(ctx context.Context, query queries.TrackOrderQuery) (queries.TrackingView, error)
	}
	GetUserHandler interface {
		Handle(ctx context.Context, query queries.GetUserQuery) (queries.UserView, error)
	}
	ListUsersHandler interface {
		Handle(ctx context.Context, query queries.ListUsersQuery) ([]queries.UserView, error)
	}
	OrderStatusSummaryHandler interface {
		Handle(ctx context.Context, query queries.OrderStatusSummaryQuery) ([]queries.StatusCount, error)
	}
	Authenticator interface {
		Authenticate(ctx context.Context, token string) (*user.User, error)
		Login(ctx context.Context, email, password string) (ports.AccessToken, *user.User, error)
	}
)

// Handlers groups every use case the server dispatches to.
type Handlers struct {
	CreateOrder        CreateOrderHandler
	UpdateOrderStatus  UpdateOrderStatusHandler
	RegisterUser       RegisterUserHandler
	ChangeUserRole     ChangeUserRoleHandler
	GetOrder           GetOrderHandler
	ListOrders         ListOrdersHandler
	TrackOrder         TrackOrderHandler
	GetUser            GetUserHandler
	ListUsers          ListUsersHandler
	OrderStatusSummary OrderStatusSummaryHandler
	Authenticator      Authenticator
}

// Server translates HTTP requests into commands and queries and renders the results.
type Server struct {
	h      Handlers
	policy services.AccessPolicy
	clock  ports.Clock
	logger *slog.Logger
}

// NewServer creates a Server over the given use cases.
func NewServer(h Handlers, clock ports.Clock, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		policy: services.NewAccessPolicy(),
		clock:  clock,
		logger: logger.With("component", "http_server"),
	}
}

// Options controls the cross-cutting middleware installed by NewEcho.
type Options struct {
	AllowedOrigins []string
}

// NewEcho builds an echo instance with middleware, error handling, API routes
// and the OpenAPI document.
func NewEcho(s *Server, opts Options) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	installMiddleware(e, s.logger, opts)

	if err := registerDocs(e); err != nil {
		return nil, err
	}
	s.Register(e)

	return e, nil
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")

	v1.POST("/users", s.RegisterUser)
	v1.POST("/auth/login", s.Login)
	v1.GET("/tracking/:tracking_code", s.TrackOrder)

	authed := []echo.MiddlewareFunc{s.authenticate}
	v1.GET("/users/me", s.GetMe, authed...)
	v1.POST("/orders", s.CreateOrder, authed...)
	v1.GET("/orders", s.ListOwnOrders, authed...)
	v1.GET("/orders/:order_id", s.GetOrder, authed...)
	v1.PATCH("/orders/:order_id/status", s.UpdateOrderStatus, authed...)

	admin := []echo.MiddlewareFunc{s.authenticate, s.requireAdmin}
	v1.GET("/users", s.ListUsers, admin...)
	v1.GET("/users/:user_id", s.GetUser, admin...)
	v1.PATCH("/users/:user_id/role", s.ChangeUserRole, admin...)
	v1.GET("/orders/all", s.ListAllOrders, admin...)
	v1.GET("/orders/summary", s.OrderStatusSummary, admin...)
}
