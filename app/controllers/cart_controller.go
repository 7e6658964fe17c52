package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/response"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// cartView adds the computed totals to a cart.
type cartView struct {
	models.Cart
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

func viewCart(c models.Cart) cartView {
	return cartView{Cart: c, TotalQuantity: c.TotalQuantity(), TotalPrice: c.TotalPrice()}
}

func viewCarts(carts []models.Cart) []cartView {
	out := make([]cartView, len(carts))
	for i, c := range carts {
		out[i] = viewCart(c)
	}
	return out
}

func (c *CartController) Store(w http.ResponseWriter, r *http.Request) {
	cart, err := c.carts.Create(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, viewCart(cart))
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	cart, err := c.carts.Find(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, viewCart(cart))
}

func (c *CartController) Index(w http.ResponseWriter, r *http.Request) {
	carts, err := c.carts.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, viewCarts(carts))
}

func (c *CartController) SortedByQuantity(w http.ResponseWriter, r *http.Request) {
	carts, err := c.carts.SortedByQuantity(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, viewCarts(carts))
}

func (c *CartController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := c.carts.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Cart deleted", nil)
}

func (c *CartController) DestroyAll(w http.ResponseWriter, r *http.Request) {
	if err := c.carts.DeleteAll(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "All carts deleted", nil)
}

// AddEntry handles POST /carts/{id}/add?cartEntryId=.
func (c *CartController) AddEntry(w http.ResponseWriter, r *http.Request) {
	c.withEntry(w, r, c.carts.AddEntry)
}

// RemoveEntry handles POST /carts/{id}/remove?cartEntryId=.
func (c *CartController) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	c.withEntry(w, r, c.carts.RemoveEntry)
}

func (c *CartController) withEntry(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, cartID, entryID uint) (models.Cart, error)) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	entryID, err := queryID(r, "cartEntryId")
	if err != nil {
		fail(w, r, err)
		return
	}
	cart, err := op(r.Context(), id, entryID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, viewCart(cart))
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	cart, err := c.carts.Clear(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, viewCart(cart))
}
