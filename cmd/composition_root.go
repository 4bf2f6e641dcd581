package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "deliverytracker/internal/adapters/in/http"
	"deliverytracker/internal/adapters/out/nominatim"
	"deliverytracker/internal/adapters/out/postgres"
	"deliverytracker/internal/adapters/out/rediscache"
	"deliverytracker/internal/adapters/out/security"
	"deliverytracker/internal/adapters/out/viacep"
	"deliverytracker/internal/core/application/addressing"
	"deliverytracker/internal/core/application/identity"
	"deliverytracker/internal/core/application/usecases/commands"
	"deliverytracker/internal/core/application/usecases/queries"
	"deliverytracker/internal/core/ports"
	"deliverytracker/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. It owns no goroutines;
// callers start the HTTP server and jobs it builds.
type CompositionRoot struct {
	cfg        *Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	redis      *redis.Client
	clock      ports.Clock
	hasher     *security.Argon2Hasher
	logger     *slog.Logger
}

// NewCompositionRoot creates the root. When Redis is configured it is pinged
// once; an unreachable Redis disables caching instead of failing startup.
func NewCompositionRoot(ctx context.Context, cfg *Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		clock:      security.SystemClock{},
		hasher:     security.NewArgon2Hasher(security.Argon2Params{}),
		logger:     logger,
	}

	if cfg.RedisEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.WarnContext(ctx, "Redis unreachable, lookup cache disabled", "addr", cfg.RedisAddr, "error", err)
			_ = client.Close()
		} else {
			c.redis = client
		}
	}

	return c
}

// Close releases the connections held by the root.
func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

// CreateRouteResolver builds the address fetch stage, cached when Redis is available.
func (c *CompositionRoot) CreateRouteResolver() *addressing.Resolver {
	client := &http.Client{Timeout: c.cfg.ExternalCallTimeout}

	var postal ports.PostalCodeLookup = viacep.NewClient(c.cfg.ViaCEPBaseURL, client)
	var geocoder ports.Geocoder = nominatim.NewClient(nominatim.Config{
		BaseURL:   c.cfg.NominatimBaseURL,
		UserAgent: c.cfg.NominatimUserAgent,
		Country:   c.cfg.GeocodeCountry,
	}, client)

	if c.redis != nil {
		postal = rediscache.NewPostalCodeLookup(postal, c.redis, c.cfg.CacheTTL, c.logger)
		geocoder = rediscache.NewGeocoder(geocoder, c.redis, c.cfg.CacheTTL, c.logger)
	}

	return addressing.NewResolver(postal, geocoder, c.cfg.ExternalCallTimeout, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.CreateRouteResolver(), c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	h := commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() *commands.RegisterUserCommandHandler {
	h := commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateChangeUserRoleCommandHandler() *commands.ChangeUserRoleCommandHandler {
	h := commands.NewChangeUserRoleCommandHandler(c.userUoWFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateEnsureAdminCommandHandler() *commands.EnsureAdminCommandHandler {
	h := commands.NewEnsureAdminCommandHandler(c.userUoWFactory(), c.hasher, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderStatusSummaryQueryHandler() queries.OrderStatusSummaryQueryHandler {
	return queries.NewOrderStatusSummaryQueryHandler(c.gormDB)
}

// CreateAuthenticator builds token and password verification. Reads go
// straight to the pool through a unit of work that never begins.
func (c *CompositionRoot) CreateAuthenticator() (*identity.Authenticator, error) {
	tokens, err := security.NewJWTTokenService(c.cfg.JWTSecret, c.cfg.AccessTokenTTL, c.clock)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	return identity.NewAuthenticator(c.uowFactory.Create().UserRepository(), tokens, c.hasher, c.logger), nil
}

// CreateEcho builds the HTTP server with every route.
func (c *CompositionRoot) CreateEcho() (*echo.Echo, error) {
	authenticator, err := c.CreateAuthenticator()
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus:  c.CreateUpdateOrderStatusCommandHandler(),
		RegisterUser:       c.CreateRegisterUserCommandHandler(),
		ChangeUserRole:     c.CreateChangeUserRoleCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		TrackOrder:         c.CreateTrackOrderQueryHandler(),
		GetUser:            c.CreateGetUserQueryHandler(),
		ListUsers:          c.CreateListUsersQueryHandler(),
		OrderStatusSummary: c.CreateOrderStatusSummaryQueryHandler(),
		Authenticator:      authenticator,
	}, c.clock, c.logger)

	return httpadapter.NewEcho(server, httpadapter.Options{AllowedOrigins: c.cfg.CORSAllowedOrigins})
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateOrderStatusSummaryQueryHandler(), c.cfg.StatusReportSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
