// Package pagebuilder renders site pages by stitching a header, a content and a
// footer template together, substituting {name} placeholders from config.json
// and the selected entry of pages.json.
//
// A page is chosen by name through a Resolver, composed by a Builder, and
// emitted as a Document. The same pipeline backs the CGI handler, the local
// command-line renderer, the development server and the static exporter.
package pagebuilder

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Server is a development HTTP server for a site. It renders pages the way a
// CGI gateway would, but sends headers through net/http.
type Server struct {
	Options Options
	Echo    *echo.Echo
	Sites   *SiteCache
}

// Option configures additional Server behavior.
type Option func(*Server)

// WithLogger replaces the Echo logger.
func WithLogger(l echo.Logger) Option {
	return func(s *Server) {
		s.Echo.Logger = l
	}
}

// WithStaticDir sets the directory served under /public.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.Options.StaticDir = dir
	}
}

// NewServer creates a Server with middleware and routes in place.
func NewServer(opts Options, options ...Option) *Server {
	opts.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Options: opts,
		Echo:    e,
	}
	for _, opt := range options {
		opt(s)
	}
	s.Sites = NewSiteCache(s.Options)

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Start listens on Options.Addr until the server is closed.
func (s *Server) Start() error {
	s.Echo.Logger.Infof("serving %s on %s", s.Options.PagesPath, s.Options.Addr)
	if err := s.Echo.Start(s.Options.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops the listener immediately.
func (s *Server) Close() error {
	return s.Echo.Close()
}

func (s *Server) setupRoutes() {
	e := s.Echo

	e.Static("/public", s.Options.StaticDir)
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/", s.handleIndex)
	e.POST("/", s.handleIndex)
	e.GET("/:page", s.handlePage)
}
