package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

func (s *Server) handleSubmitProfile(c echo.Context) error {
	p := &models.Profile{}
	if err := c.Bind(p); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	created, bioID, err := s.profiles.Submit(c.Request().Context(), identityFrom(c).Email, p)
	if err != nil {
		return writeError(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]any{"created": created, "bioId": bioID})
}

func (s *Server) handleListProfiles(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		category = "all"
	}

	// "all" is the browse sentinel for an unbounded listing, same as no limit.
	limit := 0
	if v := c.QueryParam("limit"); v != "" && v != "all" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, common.ErrInvalidArgument)
		}
		limit = n
	}

	list, err := s.profiles.PublicList(c.Request().Context(), category, limit)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*models.ProfileSummary{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleProfileByID(c echo.Context) error {
	bioID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	p, err := s.profiles.ByID(c.Request().Context(), viewerEmail(c), bioID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleOwnProfile(c echo.Context) error {
	p, err := s.profiles.FullByOwner(c.Request().Context(), identityFrom(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
