package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
	"github.com/veronosmani/CanteenOrderingSystem/internal/checkout"
	"github.com/veronosmani/CanteenOrderingSystem/internal/httpx"
	"github.com/veronosmani/CanteenOrderingSystem/internal/menu"
	"github.com/veronosmani/CanteenOrderingSystem/internal/order"
	"github.com/veronosmani/CanteenOrderingSystem/internal/pricing"
	"github.com/veronosmani/CanteenOrderingSystem/internal/user"
)

type deps struct {
	menu     menu.Repository
	orders   order.Repository
	cart     *cart.Cart
	checkout *checkout.Service
	user     user.User
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.GET("/menu", listMenuHandler(d.menu))
	r.GET("/menu/:id", getMenuItemHandler(d.menu))
	r.POST("/menu", createMenuItemHandler(d.menu))
	r.PUT("/menu/:id/availability", toggleAvailabilityHandler(d.menu))

	r.GET("/cart", getCartHandler(d.cart))
	r.POST("/cart/items", addCartItemHandler(d.cart))
	r.DELETE("/cart/items/:id", removeCartItemHandler(d.cart))
	r.DELETE("/cart", clearCartHandler(d.cart))

	r.POST("/checkout", checkoutHandler(d.checkout, d.cart, d.user))

	r.GET("/orders", listOrdersHandler(d.orders))
	r.GET("/orders/:id", getOrderHandler(d.orders))
	r.POST("/orders/:id/advance", advanceOrderHandler(d.checkout))
	r.PUT("/orders/:id/status", updateOrderStatusHandler(d.orders))

	return r
}

// ===== menu =====

func listMenuHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.FindAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list menu failed"})
			return
		}

		category := c.Query("category")
		tag := c.Query("tag")
		available := c.Query("available")
		out := make([]menu.Item, 0, len(items))
		for _, it := range items {
			if category != "" && it.Category != category {
				continue
			}
			if tag != "" && !it.HasTag(tag) {
				continue
			}
			if available == "true" && !it.Available {
				continue
			}
			if available == "false" && it.Available {
				continue
			}
			out = append(out, it)
		}
		c.JSON(http.StatusOK, gin.H{"items": out})
	}
}

func getMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		it, err := repo.FindByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, menu.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get menu item failed"})
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

type createMenuItemRequest struct {
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Available *bool    `json:"available"`
}

func createMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative decimal"})
			return
		}
		it := menu.Item{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Price:     price,
			Category:  req.Category,
			Tags:      req.Tags,
			Available: true,
		}
		if req.Available != nil {
			it.Available = *req.Available
		}
		if err := repo.Save(c.Request.Context(), &it); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save menu item failed"})
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

func toggleAvailabilityHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Available *bool `json:"available"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available is required"})
			return
		}
		if err := repo.ToggleAvailability(c.Request.Context(), c.Param("id"), *req.Available); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "toggle availability failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ===== cart =====

func getCartHandler(ct *cart.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": ct.Items()})
	}
}

type addCartItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   *int   `json:"quantity"`
}

func addCartItemHandler(ct *cart.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.MenuItemID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "menu_item_id is required"})
			return
		}
		qty := 1
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		// non-positive quantities are ignored by the cart, not rejected here
		ct.AddItem(req.MenuItemID, qty)
		c.JSON(http.StatusOK, gin.H{"items": ct.Items()})
	}
}

func removeCartItemHandler(ct *cart.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct.RemoveItem(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"items": ct.Items()})
	}
}

func clearCartHandler(ct *cart.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct.Clear()
		c.Status(http.StatusNoContent)
	}
}

// ===== checkout =====

type checkoutRequest struct {
	Pricing    string `json:"pricing"`
	PickupTime string `json:"pickup_time"`
}

func strategyFor(name string) (pricing.Strategy, bool) {
	switch name {
	case "", "simple":
		return pricing.Simple{}, true
	case "combo":
		return pricing.Combo{}, true
	default:
		return nil, false
	}
}

func checkoutHandler(svc *checkout.Service, ct *cart.Cart, active user.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
				return
			}
		}
		strat, ok := strategyFor(req.Pricing)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pricing strategy"})
			return
		}
		var pickup time.Time
		if req.PickupTime != "" {
			t, err := time.Parse(time.RFC3339, req.PickupTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "pickup_time must be RFC3339"})
				return
			}
			pickup = t
		}

		o, err := svc.PlaceOrder(c.Request.Context(), active.ID, ct, strat, pickup)
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "place order failed"})
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// ===== orders =====

func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			orders []order.Order
			err    error
		)
		if st := c.Query("status"); st != "" {
			status := order.Status(st)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			orders, err = repo.FindByStatus(c.Request.Context(), status)
		} else {
			orders, err = repo.FindAll(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list orders failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.FindByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get order failed"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func advanceOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.AdvanceOrder(c.Request.Context(), c.Param("id"))
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "advance order failed"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func updateOrderStatusHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		status := order.Status(req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		// direct repository write: no lifecycle check, unknown id is a no-op
		if err := repo.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update status failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
