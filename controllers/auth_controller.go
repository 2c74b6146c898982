package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/karanxgill/AllHoursCafe/pkg/resp"
	"github.com/karanxgill/AllHoursCafe/services"
	"github.com/karanxgill/AllHoursCafe/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	u, err := ctl.auth.Register(req)
	if errors.Is(err, services.ErrEmailTaken) {
		resp.BadRequest(c, "email already registered")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, u)
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, u, err := ctl.auth.Login(req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		resp.Unauthorized(c, "invalid email or password")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": u})
}

func (ctl *AuthController) Profile(c *gin.Context) {
	u, err := ctl.auth.Profile(utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "user not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, u)
}

func (ctl *AuthController) UpdateProfile(c *gin.Context) {
	var upd services.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	u, err := ctl.auth.UpdateProfile(utils.CurrentUserID(c), upd)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, u)
}
