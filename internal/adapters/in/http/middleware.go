package http

import (
	"fmt"
	"log/slog"
	"strings"

	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const callerKey = "caller"

func installMiddleware(e *echo.Echo, logger *slog.Logger, opts Options) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())

	if len(opts.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     opts.AllowedOrigins,
			AllowCredentials: true,
		}))
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= 500 {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))
}

// authenticate resolves the bearer token into the calling user.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}

		caller, err := s.h.Authenticator.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(callerKey, caller)
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := callerFrom(c)
		if err != nil {
			return err
		}
		if err = s.policy.RequireAdmin(caller); err != nil {
			return err
		}
		return next(c)
	}
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: missing bearer token", errs.ErrUnauthenticated)
	}
	return strings.TrimSpace(token), nil
}

func callerFrom(c echo.Context) (*user.User, error) {
	caller, ok := c.Get(callerKey).(*user.User)
	if !ok || caller == nil {
		return nil, fmt.Errorf("%w: no caller on request", errs.ErrUnauthenticated)
	}
	return caller, nil
}
