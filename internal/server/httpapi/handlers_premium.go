package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

func (s *Server) handleRequestPremium(c echo.Context) error {
	req := &struct {
		BioID int64 `json:"bioId"`
	}{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	if err := s.accounts.RequestPremium(c.Request().Context(), identityFrom(c).Email, req.BioID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleApprovePremium(c echo.Context) error {
	req := &struct {
		Email string `json:"email"`
	}{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	if err := s.accounts.ApprovePremium(c.Request().Context(), identityFrom(c).Email, req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleListRequested(c echo.Context) error {
	list, err := s.accounts.ListRequested(c.Request().Context(), identityFrom(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*models.Account{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handlePromote(c echo.Context) error {
	req := &struct {
		Email string `json:"email"`
	}{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	if err := s.accounts.PromoteToAdmin(c.Request().Context(), identityFrom(c).Email, req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.reports.Stats(c.Request().Context(), identityFrom(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
