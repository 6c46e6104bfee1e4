package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/overlay"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// HTTPStatus maps domain errors to status codes.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if _, ok := errors.Cause(err).(*contact.ValidationError); ok {
		return http.StatusUnprocessableEntity
	}
	switch errors.Cause(err) {
	case reveal.ErrUnknownRegion, overlay.ErrUnknownProject:
		return http.StatusNotFound
	case reveal.ErrInvalidRatio, contact.ErrUnknownField:
		return http.StatusBadRequest
	case contact.ErrBusy, contact.ErrNotEditable:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
