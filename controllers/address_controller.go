package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/karanxgill/AllHoursCafe/pkg/resp"
	"github.com/karanxgill/AllHoursCafe/services"
	"github.com/karanxgill/AllHoursCafe/utils"
)

type AddressController struct {
	addresses *services.AddressService
	checkout  *services.CheckoutService
}

func NewAddressController(addresses *services.AddressService, checkout *services.CheckoutService) *AddressController {
	return &AddressController{addresses: addresses, checkout: checkout}
}

func (ctl *AddressController) List(c *gin.Context) {
	rows, err := ctl.addresses.List(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// Resolve runs the full lookup chain, including orphan recovery, and is what
// the checkout page calls.
func (ctl *AddressController) Resolve(c *gin.Context) {
	rows, err := ctl.addresses.ResolveForUser(utils.CurrentUserID(c))
	switch {
	case errors.Is(err, services.ErrNoAddress):
		resp.OK(c, []entity.SavedAddress{})
	case err != nil:
		resp.ServerError(c, err)
	default:
		resp.OK(c, rows)
	}
}

type addressInput struct {
	Name            string `json:"name"`
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerPhone   string `json:"customerPhone"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	City            string `json:"city" binding:"required"`
	State           string `json:"state"`
	PostalCode      string `json:"postalCode" binding:"required"`
	IsDefault       bool   `json:"isDefault"`
}

func (in addressInput) toEntity() entity.SavedAddress {
	return entity.SavedAddress{
		Name:            in.Name,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		DeliveryAddress: in.DeliveryAddress,
		City:            in.City,
		State:           in.State,
		PostalCode:      in.PostalCode,
		IsDefault:       in.IsDefault,
	}
}

func (ctl *AddressController) Create(c *gin.Context) {
	var in addressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	a := in.toEntity()
	if err := ctl.addresses.Create(utils.CurrentUserID(c), &a); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, a)
}

func (ctl *AddressController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in addressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	a := in.toEntity()
	a.ID = id
	err := ctl.addresses.Update(utils.CurrentUserID(c), &a)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "address not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, a)
}

func (ctl *AddressController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := ctl.addresses.Delete(id, utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "address not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func (ctl *AddressController) SetDefault(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := ctl.addresses.SetDefault(id, utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "address not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"default": id})
}

// CreateFromOrder copies the delivery address of one of the user's past
// orders into the address book.
func (ctl *AddressController) CreateFromOrder(c *gin.Context) {
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
	if o.CustomerEmail != utils.CurrentUserEmail(c) {
		resp.Forbidden(c, "not your order")
		return
	}

	if err := ctl.addresses.CreateFromOrder(utils.CurrentUserID(c), o); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"saved": true})
}
