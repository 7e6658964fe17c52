package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/response"
)

type WishlistController struct {
	lists *services.WishlistService
}

func NewWishlistController(lists *services.WishlistService) *WishlistController {
	return &WishlistController{lists: lists}
}

func (c *WishlistController) Store(w http.ResponseWriter, r *http.Request) {
	list, err := c.lists.Create(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, list)
}

func (c *WishlistController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	list, err := c.lists.Find(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, list)
}

func (c *WishlistController) Index(w http.ResponseWriter, r *http.Request) {
	lists, err := c.lists.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, lists)
}

func (c *WishlistController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := c.lists.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Wishlist deleted", nil)
}

func (c *WishlistController) DestroyAll(w http.ResponseWriter, r *http.Request) {
	if err := c.lists.DeleteAll(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "All wishlists deleted", nil)
}

// AddProduct handles POST /wishlists/{id}/add?productId=.
func (c *WishlistController) AddProduct(w http.ResponseWriter, r *http.Request) {
	c.withProduct(w, r, c.lists.AddProduct)
}

// RemoveProduct handles POST /wishlists/{id}/remove?productId=.
func (c *WishlistController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c.withProduct(w, r, c.lists.RemoveProduct)
}

func (c *WishlistController) withProduct(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id, productID uint) (models.Wishlist, error)) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	productID, err := queryID(r, "productId")
	if err != nil {
		fail(w, r, err)
		return
	}
	list, err := op(r.Context(), id, productID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, list)
}

func (c *WishlistController) Clear(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	list, err := c.lists.Clear(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, list)
}
