package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/response"
)

type CartEntryController struct {
	entries *services.CartEntryService
}

func NewCartEntryController(entries *services.CartEntryService) *CartEntryController {
	return &CartEntryController{entries: entries}
}

// Store creates an entry from the quantity and productId query parameters.
func (c *CartEntryController) Store(w http.ResponseWriter, r *http.Request) {
	qty, err := queryInt(r, "quantity")
	if err != nil {
		fail(w, r, err)
		return
	}
	productID, err := queryID(r, "productId")
	if err != nil {
		fail(w, r, err)
		return
	}
	e, err := c.entries.Create(r.Context(), qty, productID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, e)
}

func (c *CartEntryController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	e, err := c.entries.Find(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, e)
}

func (c *CartEntryController) Index(w http.ResponseWriter, r *http.Request) {
	entries, err := c.entries.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, entries)
}

// Update changes the quantity of the entry named in the body.
func (c *CartEntryController) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       uint `json:"id"`
		Quantity int  `json:"quantity"`
	}
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.ID == 0 {
		fail(w, r, errBadParam{"id", "is required"})
		return
	}
	e, err := c.entries.Update(r.Context(), req.ID, req.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, e)
}

func (c *CartEntryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := c.entries.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Cart entry deleted", nil)
}

func (c *CartEntryController) DestroyAll(w http.ResponseWriter, r *http.Request) {
	if err := c.entries.DeleteAll(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "All cart entries deleted", nil)
}
