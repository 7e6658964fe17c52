package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/market/pkg/router"
)

func tag(name string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupsAndMiddlewareOrder(t *testing.T) {
	r := router.New()
	users := r.Group("/users/", tag("group"))
	users.Get("/{id}", "users.show", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(req, "id")))
	}, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))
	assert.Equal(t, "7", rec.Body.String())
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))
}

func TestNestedGroupsJoinPaths(t *testing.T) {
	r := router.New()
	r.Group("/users").Group("{id}").Post("cart/add", "users.cart.add", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(req, "id")))
	})

	require.Len(t, r.Routes(), 1)
	assert.Equal(t, router.Route{Method: http.MethodPost, Path: "/users/{id}/cart/add", Name: "users.cart.add"}, r.Routes()[0])

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/3/cart/add", nil))
	assert.Equal(t, "3", rec.Body.String())
}

func TestRoutesSorted(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}
	r := router.New()
	r.Post("/products/{id}", "products.update", noop)
	r.Get("/products", "products.index", noop)
	r.Delete("/products/{id}", "", noop)
	r.Get("/products/{id}", "products.show", noop)

	assert.Equal(t, []router.Route{
		{Method: http.MethodGet, Path: "/products", Name: "products.index"},
		{Method: http.MethodDelete, Path: "/products/{id}"},
		{Method: http.MethodGet, Path: "/products/{id}", Name: "products.show"},
		{Method: http.MethodPost, Path: "/products/{id}", Name: "products.update"},
	}, r.Routes())
}
