package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tanvirrahman/matrimony/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c echo.Context) error {
	req := &credentialsRequest{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	created, err := s.accounts.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]any{"email": req.Email, "created": created})
}

func (s *Server) handleLogin(c echo.Context) error {
	req := &credentialsRequest{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	token, err := s.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	s.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, map[string]any{"email": req.Email})
}

func (s *Server) handleLogout(c echo.Context) error {
	s.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
