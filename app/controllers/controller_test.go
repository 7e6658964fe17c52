package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/auth"
)

func TestFail_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errBadParam{"id", "is required"}, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: name is required", services.ErrInvalidInput), http.StatusUnprocessableEntity},
		{fmt.Errorf("product 3: %w", services.ErrNotFound), http.StatusNotFound},
		{models.ErrNoPendingCart, http.StatusConflict},
		{models.ErrNoWishlist, http.StatusConflict},
		{models.ErrEntryNotInCart, http.StatusConflict},
		{models.ErrNotInWishlist, http.StatusConflict},
		{services.ErrUnavailable, http.StatusConflict},
		{services.ErrEmailTaken, http.StatusConflict},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrTokenExpired, http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestFail_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("dsn=postgres://secret"))
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestParseID(t *testing.T) {
	id, err := parseID("id", "12")
	assert.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, raw := range []string{"", "0", "-1", "x", "99999999999"} {
		_, err := parseID("id", raw)
		var bad errBadParam
		assert.ErrorAs(t, err, &bad, raw)
	}
}
