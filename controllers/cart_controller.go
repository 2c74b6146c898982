package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/karanxgill/AllHoursCafe/middlewares"
	"github.com/karanxgill/AllHoursCafe/pkg/resp"
	"github.com/karanxgill/AllHoursCafe/services"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

func (ctl *CartController) Get(c *gin.Context) {
	lines := ctl.cart.Get(c.Request.Context(), middlewares.SessionID(c))
	resp.OK(c, lines)
}

// Replace swaps the whole cart for the posted lines. Only item id and
// quantity are taken from the client; names and prices come from the catalog.
func (ctl *CartController) Replace(c *gin.Context) {
	var lines []services.CartLine
	if err := c.ShouldBindJSON(&lines); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.cart.Set(c.Request.Context(), middlewares.SessionID(c), lines)
	if errors.Is(err, services.ErrUnknownMenuItem) {
		resp.BadRequest(c, "item is not on the menu")
		return
	}
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, out)
}

// SetItem upserts one cart line. Quantity 0 removes the line.
func (ctl *CartController) SetItem(c *gin.Context) {
	var req struct {
		ItemID   uint `json:"itemId" binding:"required"`
		Quantity int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	lines, err := ctl.cart.SetItem(c.Request.Context(), middlewares.SessionID(c), req.ItemID, req.Quantity)
	if errors.Is(err, services.ErrUnknownMenuItem) {
		resp.BadRequest(c, "item is not on the menu")
		return
	}
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, lines)
}

func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.cart.Clear(c.Request.Context(), middlewares.SessionID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
