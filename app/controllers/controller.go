// Package controllers adapts HTTP requests to the services and maps
// service errors onto status codes.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/auth"
	"github.com/shashiranjanraj/market/pkg/bind"
	"github.com/shashiranjanraj/market/pkg/logger"
	"github.com/shashiranjanraj/market/pkg/response"
)

// errBadParam marks a malformed path or query parameter.
type errBadParam struct {
	name, reason string
}

func (e errBadParam) Error() string { return e.name + ": " + e.reason }

func parseID(name, raw string) (uint, error) {
	if raw == "" {
		return 0, errBadParam{name, "is required"}
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, errBadParam{name, "must be a positive integer"}
	}
	return uint(n), nil
}

// pathID reads the {id} URL parameter.
func pathID(r *http.Request) (uint, error) {
	return parseID("id", chi.URLParam(r, "id"))
}

func queryID(r *http.Request, name string) (uint, error) {
	return parseID(name, r.URL.Query().Get(name))
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errBadParam{name, "is required"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadParam{name, "must be an integer"}
	}
	return n, nil
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := bind.JSON(w, r, dst); err != nil {
		return errBadParam{"body", err.Error()}
	}
	return nil
}

// fail writes the envelope for err. Unexpected errors are logged and
// reported as 500 without details.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var bad errBadParam
	switch {
	case errors.As(err, &bad):
		response.ValidationError(w, map[string]string{bad.name: bad.reason})
	case errors.Is(err, services.ErrInvalidInput):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrNoPendingCart),
		errors.Is(err, models.ErrNoWishlist),
		errors.Is(err, models.ErrEntryNotInCart),
		errors.Is(err, models.ErrNotInWishlist),
		errors.Is(err, services.ErrUnavailable),
		errors.Is(err, services.ErrEmailTaken):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case auth.Kind(err) != "unknown":
		response.Error(w, http.StatusUnauthorized, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
