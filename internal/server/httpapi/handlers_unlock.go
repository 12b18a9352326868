package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

func (s *Server) handleRecordUnlock(c echo.Context) error {
	req := &struct {
		BioID       int64 `json:"bioId"`
		AmountCents int64 `json:"amountCents"`
	}{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	u, err := s.unlocks.Record(c.Request().Context(), identityFrom(c).Email, req.BioID, req.AmountCents)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) handleMyUnlocks(c echo.Context) error {
	list, err := s.unlocks.ListMine(c.Request().Context(), identityFrom(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*models.ContactUnlockDetail{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handlePendingUnlocks(c echo.Context) error {
	list, err := s.unlocks.ListPending(c.Request().Context(), identityFrom(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*models.ContactUnlock{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleApproveUnlock(c echo.Context) error {
	if err := s.unlocks.Approve(c.Request().Context(), identityFrom(c).Email, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handlePaymentIntent(c echo.Context) error {
	req := &struct {
		Amount float64 `json:"amount"`
	}{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	secret, err := s.unlocks.CreatePaymentIntent(c.Request().Context(), req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"clientSecret": secret})
}
