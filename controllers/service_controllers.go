package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/schemas"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

type ServiceController struct {
	Service *services.OutletService
	Name    string
	Version string
}

func NewServiceController(svc *services.OutletService, name, version string) *ServiceController {
	return &ServiceController{Service: svc, Name: name, Version: version}
}

// Root identifies the service.
func (sc *ServiceController) Root(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, schemas.ServiceInfo{
		Service: sc.Name,
		Version: sc.Version,
		Status:  "ok",
	})
}

// Healthz pings the store.
func (sc *ServiceController) Healthz(c *gin.Context) {
	if err := sc.Service.Ping(c.Request.Context()); err != nil {
		utils.ErrorLogger.Errorf("Health check failed: %v", err)
		utils.RespondDetail(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
