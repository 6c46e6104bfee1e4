// Package server exposes the portfolio page over HTTP with gin. Each
// visitor gets a page view keyed by a cookie; htmx requests deliver the
// view's interaction events.
package server

import (
	"bytes"
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio/internal/page"
	"github.com/Zachkp/portfolio/web"
)

const (
	viewCookie    = "portfolio_view"
	viewCookieAge = 3600 * 24 * 365
)

// Server is the HTTP front of the page views.
type Server struct {
	engine *gin.Engine
	tmpl   *template.Template
	views  *page.Registry
	addr   string
}

// New builds the gin engine and its routes.
func New(addr string, views *page.Registry) (*Server, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}

	s := &Server{
		engine: gin.Default(),
		tmpl:   tmpl,
		views:  views,
		addr:   addr,
	}
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.StaticFS("/static", web.Static())
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)

	r.POST("/reveal/*region", s.handleReveal)
	r.POST("/reveal-unsupported", s.handleRevealUnsupported)

	r.POST("/theme/toggle", s.handleToggleMode)

	r.POST("/projects/:slug/select", s.handleSelectProject)
	r.POST("/projects/dismiss", s.handleDismissProject)

	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact/edit", s.handleContactEdit)
	r.POST("/contact", s.handleContactSubmit)
}

// Handler returns the engine as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving portfolio on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	return nil
}

// view returns the caller's page view, issuing a cookie for new visitors.
func (s *Server) view(c *gin.Context) *page.View {
	id, _ := c.Cookie(viewCookie)
	v := s.views.View(c.Request.Context(), id)
	if v.ID != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(viewCookie, v.ID, viewCookieAge, "/", "", false, true)
	}
	return v
}

// renderSections executes each section template so the layout can place
// them in composition order.
func (s *Server) renderSections(doc page.Document) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(doc.Sections))
	var buf bytes.Buffer
	for _, sec := range doc.Sections {
		buf.Reset()
		if err := s.tmpl.ExecuteTemplate(&buf, sec.Template, sec.Data); err != nil {
			return nil, errors.Wrapf(err, "rendering section %s", sec.Name)
		}
		out = append(out, template.HTML(buf.String()))
	}
	return out, nil
}
