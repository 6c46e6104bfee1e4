package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/overlay"
	"github.com/Zachkp/portfolio/internal/reveal"
)

func (s *Server) handleIndex(c *gin.Context) {
	v := s.view(c)
	doc := v.Document()

	sections, err := s.renderSections(doc)
	if err != nil {
		log.Printf("Error rendering page for %s: %v", v.ID, err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Doc":      doc,
		"Sections": sections,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"views":  s.views.Len(),
	})
}

func (s *Server) handleReveal(c *gin.Context) {
	v := s.view(c)
	region := reveal.Region(strings.TrimPrefix(c.Param("region"), "/"))

	ratio, err := strconv.ParseFloat(c.PostForm("ratio"), 64)
	if err != nil {
		err = errors.Wrapf(reveal.ErrInvalidRatio, "parsing %q", c.PostForm("ratio"))
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	res, err := v.Reveal(region, ratio)
	if err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleRevealUnsupported(c *gin.Context) {
	s.view(c).DisableReveal()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleToggleMode(c *gin.Context) {
	nav := s.view(c).ToggleMode(c.Request.Context())
	c.Header("HX-Trigger", `{"displayMode":"`+nav.Class+`"}`)
	c.HTML(http.StatusOK, "navbar", nav)
}

func (s *Server) handleSelectProject(c *gin.Context) {
	v := s.view(c)
	ov, err := v.SelectProject(c.Param("slug"))
	if err != nil {
		// the overlay is already closed; render that
		log.Printf("View %s selected %q: %v", v.ID, c.Param("slug"), err)
	}
	c.HTML(http.StatusOK, "overlay", ov)
}

func (s *Server) handleDismissProject(c *gin.Context) {
	from := overlay.ParseOrigin(c.PostForm("origin"))
	ov := s.view(c).DismissProject(from)
	c.HTML(http.StatusOK, "overlay", ov)
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", s.view(c).Form())
}

func (s *Server) handleContactEdit(c *gin.Context) {
	v := s.view(c)
	field := c.PostForm("field")
	if err := v.EditDraft(field, c.PostForm(field)); err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleContactSubmit(c *gin.Context) {
	v := s.view(c)

	var d contact.Draft
	if err := c.ShouldBind(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if d.Name == "" {
		d.Name = c.PostForm("fullName")
	}

	form, err := v.SubmitDraft(d)
	if err != nil {
		log.Printf("View %s contact submission rejected: %v", v.ID, err)
	}
	// the fragment carries the outcome, including highlighted fields
	c.HTML(http.StatusOK, "contact-form", form)
}
