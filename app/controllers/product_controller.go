package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/response"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

type productRequest struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (req productRequest) model() models.Product {
	return models.Product{Model: models.Model{ID: req.ID}, Name: req.Name, Price: req.Price, Stock: req.Stock}
}

func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	p := req.model()
	if err := c.products.Create(r.Context(), &p); err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, p)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	p, err := c.products.Find(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, p)
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.ID == 0 {
		fail(w, r, errBadParam{"id", "is required"})
		return
	}
	p := req.model()
	if err := c.products.Update(r.Context(), &p); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, p)
}

func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := c.products.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Product deleted", nil)
}

func (c *ProductController) DestroyAll(w http.ResponseWriter, r *http.Request) {
	if err := c.products.DeleteAll(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "All products deleted", nil)
}
