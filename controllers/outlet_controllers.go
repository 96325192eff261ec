package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/schemas"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

type OutletController struct {
	Service *services.OutletService
}

func NewOutletController(svc *services.OutletService) *OutletController {
	return &OutletController{Service: svc}
}

// GetAllOutlets
func (oc *OutletController) GetAllOutlets(c *gin.Context) {
	outlets, err := oc.Service.ListOutlets(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, outlets)
}

// GetOutletByID
func (oc *OutletController) GetOutletByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	outlet, err := oc.Service.GetOutlet(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, outlet)
}

// CreateOutlet
func (oc *OutletController) CreateOutlet(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	outlet, err := oc.Service.CreateOutlet(c.Request.Context(), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, outlet)
}

// UpdateOutlet (admin)
func (oc *OutletController) UpdateOutlet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	outlet, err := oc.Service.UpdateOutlet(c.Request.Context(), id, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, outlet)
}

// DeleteOutlet (admin)
func (oc *OutletController) DeleteOutlet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := oc.Service.DeleteOutlet(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"detail": "Outlet deleted"})
}

// GetOutletMenu returns the outlet with its menu items.
func (oc *OutletController) GetOutletMenu(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	menu, err := oc.Service.ListMenuItems(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, menu)
}

// GetOutletProducts serves the same data as GetOutletMenu under the older
// "products" key.
func (oc *OutletController) GetOutletProducts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	menu, err := oc.Service.ListMenuItems(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, schemas.OutletWithProducts{
		Outlet:   menu.Outlet,
		Products: menu.MenuItems,
	})
}

// GetOutletSummary
func (oc *OutletController) GetOutletSummary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	summary, err := oc.Service.OrderSummary(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, summary)
}
