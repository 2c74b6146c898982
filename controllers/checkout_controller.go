package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/middlewares"
	"github.com/karanxgill/AllHoursCafe/pkg/resp"
	"github.com/karanxgill/AllHoursCafe/services"
	"github.com/karanxgill/AllHoursCafe/utils"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// Summary backs the checkout page. An empty cart bounces the user back to the
// menu, and a delivery checkout with no saved address bounces to address
// entry instead of rendering a dead page.
func (ctl *CheckoutController) Summary(c *gin.Context) {
	orderType := c.Query("orderType")
	sum, err := ctl.checkout.Summary(c.Request.Context(), middlewares.SessionID(c), utils.CurrentUserID(c), orderType)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		resp.Redirect(c, http.StatusConflict, "/menu", "cart is empty")
	case errors.Is(err, services.ErrNoAddress):
		resp.Redirect(c, http.StatusConflict, "/address", "add a delivery address first")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, sum)
	}
}

func (ctl *CheckoutController) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	o, err := ctl.checkout.Submit(c.Request.Context(), middlewares.SessionID(c), utils.CurrentUserID(c), req)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		resp.Redirect(c, http.StatusConflict, "/menu", "cart is empty")
	case errors.Is(err, services.ErrNoAddress):
		resp.Redirect(c, http.StatusConflict, "/address", "add a delivery address first")
	case errors.Is(err, services.ErrAddressLookup):
		resp.ServerError(c, err)
	case err != nil:
		resp.BadRequest(c, err.Error())
	default:
		resp.Created(c, o)
	}
}

// PaymentForm returns the self-submitting gateway form as HTML.
func (ctl *CheckoutController) PaymentForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	html, err := ctl.checkout.PaymentForm(id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "order not found")
	case errors.Is(err, services.ErrAlreadyPaid):
		resp.BadRequest(c, "order is already paid")
	case err != nil:
		resp.ServerError(c, err)
	default:
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}

// PaymentSuccess absorbs the gateway's success callback. The gateway posts
// the signed fields; some integrations bounce through a GET redirect, so both
// are accepted.
func (ctl *CheckoutController) PaymentSuccess(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := ctl.checkout.HandlePaymentSuccess(c.Request.Context(), middlewares.SessionID(c), id, callbackParams(c))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "order not found")
	case errors.Is(err, services.ErrUntrustedCallback):
		resp.BadRequest(c, "payment verification failed")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, o)
	}
}

func (ctl *CheckoutController) PaymentFailure(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := ctl.checkout.HandlePaymentFailure(id, callbackParams(c))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "order not found")
	case errors.Is(err, services.ErrUntrustedCallback):
		resp.BadRequest(c, "payment verification failed")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, o)
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id64), true
}

// callbackParams reads the gateway's signed fields from either the posted
// form or the query string.
func callbackParams(c *gin.Context) services.CallbackParams {
	get := func(key string) string {
		if v := c.PostForm(key); v != "" {
			return v
		}
		return c.Query(key)
	}
	return services.CallbackParams{
		Status:      get("status"),
		Email:       get("email"),
		FirstName:   get("firstname"),
		ProductInfo: get("productinfo"),
		Amount:      get("amount"),
		TxnID:       get("txnid"),
		Hash:        get("hash"),
	}
}
