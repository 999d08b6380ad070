package echo

import (
	"net/http"
	"strings"

	"github.com/fwojciec/lectio"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleConfessions(c echo.Context) error {
	confessions, err := s.service.Confessions.FindConfessions(c.Request().Context())
	if err != nil {
		return err
	}
	if confessions == nil {
		confessions = []*lectio.Confession{}
	}
	return c.JSON(http.StatusOK, confessions)
}

func (s *Server) handleContents(c echo.Context) error {
	contents, err := s.service.Contents(c.Request().Context(), c.Param("command"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contents)
}

func (s *Server) handleSection(c echo.Context) error {
	section, err := s.service.LookupSection(c.Request().Context(), c.Param("command"), c.Param("address"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, section)
}

// handleSectionSearch handles GET /confessions/:command/search?terms=...&limit=20.
func (s *Server) handleSectionSearch(c echo.Context) error {
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}

	res, err := s.service.SearchSections(c.Request().Context(), c.Param("command"), strings.Fields(c.QueryParam("terms")), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
