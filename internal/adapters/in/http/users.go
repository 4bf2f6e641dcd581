package http

import (
	"net/http"

	"deliverytracker/internal/core/application/usecases/commands"
	"deliverytracker/internal/core/application/usecases/queries"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RegisterUser handles POST /api/v1/users. New accounts always get the user role.
func (s *Server) RegisterUser(c echo.Context) error {
	var body registerUserRequest
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewRegisterUserCommand(body.Email, body.Password, body.FullName)
	if err != nil {
		return err
	}

	created, err := s.h.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userFromDomain(created))
}

// Login handles POST /api/v1/auth/login with an OAuth2 password form
// where "username" carries the email.
func (s *Server) Login(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}

	token, _, err := s.h.Authenticator.Login(c.Request().Context(), email, password)
	if err != nil {
		return err
	}

	expiresIn := int64(token.ExpiresAt.Sub(s.clock.Now()).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token.Value,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	})
}

// GetMe handles GET /api/v1/users/me.
func (s *Server) GetMe(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFromDomain(caller))
}

// ListUsers handles GET /api/v1/users. Admin only.
func (s *Server) ListUsers(c echo.Context) error {
	views, err := s.h.ListUsers.Handle(c.Request().Context(), queries.NewListUsersQuery())
	if err != nil {
		return err
	}

	resp := make([]UserResponse, len(views))
	for i, v := range views {
		resp[i] = userFromView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUser handles GET /api/v1/users/{user_id}. Admin only.
func (s *Server) GetUser(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserQuery(userID)
	if err != nil {
		return err
	}

	view, err := s.h.GetUser.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFromView(view))
}

// ChangeUserRole handles PATCH /api/v1/users/{user_id}/role. Admin only.
func (s *Server) ChangeUserRole(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	var body roleUpdateRequest
	if err = c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	role, err := user.ParseRole(body.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeUserRoleCommand(caller, userID, role)
	if err != nil {
		return err
	}

	updated, err := s.h.ChangeUserRole.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFromDomain(updated))
}
