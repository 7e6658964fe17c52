// Package routes maps the market API onto the controllers.
package routes

import (
	"github.com/shashiranjanraj/market/app/controllers"
	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/pkg/middleware"
	"github.com/shashiranjanraj/market/pkg/router"
)

// RegisterAPI mounts every endpoint. The public auth endpoints go through
// throttle; everything else requires an authenticated caller.
func RegisterAPI(r *router.Router, s *services.Container, throttle router.Middleware) {
	authC := controllers.NewAuthController(s.Auth, s.Users, s.Tokens)
	productC := controllers.NewProductController(s.Products)
	entryC := controllers.NewCartEntryController(s.Entries)
	cartC := controllers.NewCartController(s.Carts)
	wishlistC := controllers.NewWishlistController(s.Wishlists)
	userC := controllers.NewUserController(s.Users)

	public := r.Group("/", throttle)
	public.Post("/register", "auth.register", authC.Register)
	public.Post("/auth", "auth.login", authC.Login)

	protected := r.Group("/", middleware.RequireAuth)
	protected.Get("/me", "auth.me", authC.Me)

	products := protected.Group("/products")
	products.Post("/create", "products.create", productC.Store)
	products.Get("/", "products.index", productC.Index)
	products.Get("/{id}", "products.show", productC.Show)
	products.Post("/update", "products.update", productC.Update)
	products.Delete("/delete/{id}", "products.delete", productC.Destroy)
	products.Delete("/delete", "products.delete_all", productC.DestroyAll)

	entries := protected.Group("/cartentry")
	entries.Post("/create", "cartentry.create", entryC.Store)
	entries.Get("/", "cartentry.index", entryC.Index)
	entries.Get("/{id}", "cartentry.show", entryC.Show)
	entries.Post("/update", "cartentry.update", entryC.Update)
	entries.Delete("/delete/{id}", "cartentry.delete", entryC.Destroy)
	entries.Delete("/delete", "cartentry.delete_all", entryC.DestroyAll)

	carts := protected.Group("/carts")
	carts.Post("/create", "carts.create", cartC.Store)
	carts.Get("/", "carts.index", cartC.Index)
	carts.Get("/sorted_by_total_quantity", "carts.sorted", cartC.SortedByQuantity)
	carts.Get("/{id}", "carts.show", cartC.Show)
	carts.Post("/{id}/add", "carts.add", cartC.AddEntry)
	carts.Post("/{id}/remove", "carts.remove", cartC.RemoveEntry)
	carts.Post("/{id}/clear", "carts.clear", cartC.Clear)
	carts.Delete("/delete/{id}", "carts.delete", cartC.Destroy)
	carts.Delete("/delete", "carts.delete_all", cartC.DestroyAll)

	lists := protected.Group("/wishlists")
	lists.Post("/create", "wishlists.create", wishlistC.Store)
	lists.Get("/", "wishlists.index", wishlistC.Index)
	lists.Get("/{id}", "wishlists.show", wishlistC.Show)
	lists.Post("/{id}/add", "wishlists.add", wishlistC.AddProduct)
	lists.Post("/{id}/remove", "wishlists.remove", wishlistC.RemoveProduct)
	lists.Post("/{id}/clear", "wishlists.clear", wishlistC.Clear)
	lists.Delete("/delete/{id}", "wishlists.delete", wishlistC.Destroy)
	lists.Delete("/delete", "wishlists.delete_all", wishlistC.DestroyAll)

	users := protected.Group("/users")
	users.Get("/", "users.index", userC.Index)
	users.Get("/sorted_by_number_of_orders", "users.sorted", userC.SortedByOrderCount)
	users.Get("/{id}", "users.show", userC.Show)
	users.Post("/update", "users.update", userC.Update)
	users.Delete("/delete/{id}", "users.delete", userC.Destroy)
	users.Delete("/delete", "users.delete_all", userC.DestroyAll)

	user := users.Group("/{id}")
	user.Get("/cart", "users.cart", userC.Cart)
	user.Post("/cart/assign", "users.cart.assign", userC.AssignCart)
	user.Post("/cart/add", "users.cart.add", userC.AddToCart)
	user.Post("/cart/remove", "users.cart.remove", userC.RemoveFromCart)
	user.Post("/cart/clear", "users.cart.clear", userC.ClearCart)
	user.Post("/cart/checkout", "users.cart.checkout", userC.Checkout)
	user.Get("/wishlist", "users.wishlist", userC.Wishlist)
	user.Post("/wishlist/assign", "users.wishlist.assign", userC.AssignWishlist)
	user.Post("/wishlist/add", "users.wishlist.add", userC.AddToWishlist)
	user.Post("/wishlist/remove", "users.wishlist.remove", userC.RemoveFromWishlist)
	user.Post("/wishlist/clear", "users.wishlist.clear", userC.ClearWishlist)
	user.Get("/orderHistory", "users.order_history", userC.OrderHistory)
}
