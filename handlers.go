package pagebuilder

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleIndex selects the page from the query string or form, as a CGI
// gateway would pass it.
func (s *Server) handleIndex(c echo.Context) error {
	req, err := RequestFromHTTP(c.Request())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return s.renderPage(c, req)
}

func (s *Server) handlePage(c echo.Context) error {
	return s.renderPage(c, PageRequest(c.Param("page")))
}

func (s *Server) renderPage(c echo.Context, req Request) error {
	site, err := s.Sites.Get()
	if err != nil {
		return err
	}
	doc, err := Render(site, ModeServed, req, s.Options)
	if err != nil {
		return err
	}
	return RenderDocument(c, doc)
}

func (s *Server) handleSitemap(c echo.Context) error {
	site, err := s.Sites.Get()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, site); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		if s.renderNotFound(c) == nil {
			return
		}
	}
	code := http.StatusInternalServerError
	if he != nil {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = c.String(code, http.StatusText(code))
		return
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}

// renderNotFound answers unrouted paths with the registry's 404 entry.
func (s *Server) renderNotFound(c echo.Context) error {
	site, err := s.Sites.Get()
	if err != nil {
		return err
	}
	page, err := Resolver{Registry: site.Registry, Mode: ModeServed}.entry(NotFoundPage, true)
	if err != nil {
		return err
	}
	doc, err := Builder{Config: site.Config, Mode: ModeServed}.Build(page)
	if err != nil {
		return err
	}
	return RenderDocument(c, doc)
}
