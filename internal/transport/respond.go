package transport

import (
	"errors"
	"net/http"
	"strconv"

	"recrent-shop/internal/middleware"
	"recrent-shop/internal/service"

	"github.com/go-chi/chi/v5"
)

// respondDecodeError answers a DecodeAndValidate failure with 400
func respondDecodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}

// respondServiceValidation answers a service.ValidationError with 400 and
// reports whether err was one.
func respondServiceValidation(w http.ResponseWriter, err error) bool {
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	fields := make([]middleware.ValidationError, len(vErr.Fields))
	for i, f := range vErr.Fields {
		fields[i] = middleware.ValidationError{Field: f.Field, Message: f.Message}
	}
	middleware.RespondWithValidationErrors(w, fields)
	return true
}

// idParam parses a positive integer route parameter
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
