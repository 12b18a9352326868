package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

func (s *Server) handleAddFavorite(c echo.Context) error {
	req := &struct {
		BioID int64 `json:"bioId"`
	}{}
	if err := c.Bind(req); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	f, err := s.favorites.Add(c.Request().Context(), identityFrom(c).Email, req.BioID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (s *Server) handleListFavorites(c echo.Context) error {
	list, err := s.favorites.List(c.Request().Context(), identityFrom(c).Email)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*models.FavoriteDetail{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleRemoveFavorite(c echo.Context) error {
	if err := s.favorites.Remove(c.Request().Context(), identityFrom(c).Email, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCreateStory(c echo.Context) error {
	story := &models.SuccessStory{}
	if err := c.Bind(story); err != nil {
		return writeError(c, common.ErrInvalidArgument)
	}

	created, err := s.stories.Create(c.Request().Context(), story)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListStories(c echo.Context) error {
	list, err := s.stories.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*models.SuccessStory{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleStoryByID(c echo.Context) error {
	story, err := s.stories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, story)
}

func (s *Server) handlePhotoUploadURL(c echo.Context) error {
	key, url, err := s.photos.UploadURL(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"key": key, "url": url})
}

func (s *Server) handlePhotoDownloadURL(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return writeError(c, common.ErrInvalidArgument)
	}

	url, err := s.photos.DownloadURL(c.Request().Context(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
