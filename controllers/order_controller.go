package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/pkg/resp"
	"github.com/karanxgill/AllHoursCafe/services"
	"github.com/karanxgill/AllHoursCafe/utils"
)

type OrderController struct {
	checkout *services.CheckoutService
}

func NewOrderController(checkout *services.CheckoutService) *OrderController {
	return &OrderController{checkout: checkout}
}

// Get returns one order. Orders are linked to accounts by email, so the
// caller must own the email on the order unless they are staff.
func (ctl *OrderController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := ctl.checkout.GetOrder(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "order not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	if o.CustomerEmail != utils.CurrentUserEmail(c) && utils.CurrentRole(c) != "admin" {
		resp.Forbidden(c, "not your order")
		return
	}
	resp.OK(c, o)
}

func (ctl *OrderController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := ctl.checkout.ListOrders(utils.CurrentUserEmail(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}
