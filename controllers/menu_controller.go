package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/karanxgill/AllHoursCafe/pkg/resp"
	"github.com/karanxgill/AllHoursCafe/services"
)

type MenuController struct {
	menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

func (ctl *MenuController) Categories(c *gin.Context) {
	cats, err := ctl.menu.Categories()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cats)
}

func (ctl *MenuController) Items(c *gin.Context) {
	var categoryID uint
	if raw := c.Query("categoryId"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid categoryId")
			return
		}
		categoryID = uint(id64)
	}

	items, err := ctl.menu.Items(categoryID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}
