package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

type OrderController struct {
	Service *services.OutletService
}

func NewOrderController(svc *services.OutletService) *OrderController {
	return &OrderController{Service: svc}
}

// GetAllOrders lists the orders of one outlet.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	outletID, ok := parseID(c, "id")
	if !ok {
		return
	}
	orders, err := oc.Service.ListOrders(c.Request.Context(), outletID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

// GetOrderByID
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	outletID, ok := parseID(c, "id")
	if !ok {
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	order, err := oc.Service.GetOrder(c.Request.Context(), outletID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}

// CreateOrder
func (oc *OrderController) CreateOrder(c *gin.Context) {
	outletID, ok := parseID(c, "id")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	order, err := oc.Service.CreateOrder(c.Request.Context(), outletID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, order)
}

// CompleteOrder marks the order completed. The body is optional and may
// carry the payment method.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	outletID, ok := parseID(c, "id")
	if !ok {
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	order, err := oc.Service.CompleteOrder(c.Request.Context(), outletID, orderID, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}
