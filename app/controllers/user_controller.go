package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/response"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type userOp func(ctx context.Context, userID uint) (models.User, error)

type userRefOp func(ctx context.Context, userID, refID uint) (models.User, error)

// run resolves {id} and answers with the user returned by op.
func (c *UserController) run(w http.ResponseWriter, r *http.Request, op userOp) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	u, err := op(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}

// runRef is run with a second id taken from the query parameter param.
func (c *UserController) runRef(w http.ResponseWriter, r *http.Request, param string, op userRefOp) {
	ref, err := queryID(r, param)
	if err != nil {
		fail(w, r, err)
		return
	}
	c.run(w, r, func(ctx context.Context, id uint) (models.User, error) {
		return op(ctx, id, ref)
	})
}

func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.users.Find)
}

func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, users)
}

func (c *UserController) SortedByOrderCount(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.SortedByOrderCount(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, users)
}

// Update applies the changes in the body to the user it names.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
		services.UserChanges
	}
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.ID == 0 {
		fail(w, r, errBadParam{"id", "is required"})
		return
	}
	u, err := c.users.Update(r.Context(), req.ID, req.UserChanges)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}

func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := c.users.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "User deleted", nil)
}

func (c *UserController) DestroyAll(w http.ResponseWriter, r *http.Request) {
	if err := c.users.DeleteAll(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "All users deleted", nil)
}

func (c *UserController) Cart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	cart, err := c.users.GetCart(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if cart == nil {
		response.Message(w, "No pending cart", nil)
		return
	}
	response.Success(w, viewCart(*cart))
}

func (c *UserController) AssignCart(w http.ResponseWriter, r *http.Request) {
	c.runRef(w, r, "cartId", c.users.AssignCart)
}

func (c *UserController) AddToCart(w http.ResponseWriter, r *http.Request) {
	c.runRef(w, r, "cartEntryId", c.users.AddToCart)
}

func (c *UserController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	c.runRef(w, r, "cartEntryId", c.users.RemoveFromCart)
}

func (c *UserController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.users.RemoveCart)
}

func (c *UserController) Checkout(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	res, err := c.users.Checkout(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}

	msg := "Cart checked out"
	if !res.Applied {
		msg = "Cart archived without stock change: " + models.ErrValidationFailed.Error()
	}
	response.Message(w, msg, map[string]interface{}{
		"applied": res.Applied,
		"cart":    viewCart(res.Cart),
	})
}

func (c *UserController) Wishlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	list, err := c.users.GetWishlist(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if list == nil {
		response.Message(w, "No wishlist", nil)
		return
	}
	response.Success(w, list)
}

func (c *UserController) AssignWishlist(w http.ResponseWriter, r *http.Request) {
	c.runRef(w, r, "wishlistId", c.users.AssignWishlist)
}

func (c *UserController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	c.runRef(w, r, "productId", c.users.AddToWishlist)
}

func (c *UserController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	c.runRef(w, r, "productId", c.users.RemoveFromWishlist)
}

func (c *UserController) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, c.users.RemoveWishlist)
}

func (c *UserController) OrderHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	history, err := c.users.OrderHistory(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, viewCarts(history))
}
