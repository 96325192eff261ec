package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

type MenuItemController struct {
	Service *services.OutletService
}

func NewMenuItemController(svc *services.OutletService) *MenuItemController {
	return &MenuItemController{Service: svc}
}

// CreateMenuItem
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	outletID, ok := parseID(c, "id")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	item, err := mc.Service.CreateMenuItem(c.Request.Context(), outletID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, item)
}

// GetMenuItemByID
func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	outletID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	item, err := mc.Service.GetMenuItem(c.Request.Context(), outletID, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}
