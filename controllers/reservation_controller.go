package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/pkg/resp"
	"github.com/karanxgill/AllHoursCafe/services"
)

type ReservationController struct {
	reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{reservations: reservations}
}

func (ctl *ReservationController) Create(c *gin.Context) {
	var req services.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rv, err := ctl.reservations.Create(req)
	if errors.Is(err, services.ErrBadReservation) {
		resp.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, rv)
}

func (ctl *ReservationController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rv, err := ctl.reservations.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "reservation not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rv)
}

func (ctl *ReservationController) PaymentForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	html, err := ctl.reservations.PaymentForm(id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "reservation not found")
	case errors.Is(err, services.ErrAlreadyPaid):
		resp.BadRequest(c, "deposit is already paid")
	case err != nil:
		resp.ServerError(c, err)
	default:
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}

func (ctl *ReservationController) PaymentSuccess(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rv, err := ctl.reservations.HandlePaymentSuccess(id, callbackParams(c))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "reservation not found")
	case errors.Is(err, services.ErrUntrustedCallback):
		resp.BadRequest(c, "payment verification failed")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, rv)
	}
}

func (ctl *ReservationController) PaymentFailure(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rv, err := ctl.reservations.HandlePaymentFailure(id, callbackParams(c))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "reservation not found")
	case errors.Is(err, services.ErrUntrustedCallback):
		resp.BadRequest(c, "payment verification failed")
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, rv)
	}
}
