package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-outlets/config"
	"github.com/yeremiapane/coffee-outlets/controllers"
	"github.com/yeremiapane/coffee-outlets/kds"
	"github.com/yeremiapane/coffee-outlets/middlewares"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

func SetupRouter(cfg *config.Config, svc *services.OutletService, hub *kds.Hub) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())

	r.NoMethod(func(c *gin.Context) {
		utils.RespondDetail(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.RespondDetail(c, http.StatusNotFound, "Not Found")
	})

	serviceCtrl := controllers.NewServiceController(svc, config.ServiceName, config.ServiceVersion)
	outletCtrl := controllers.NewOutletController(svc)
	menuItemCtrl := controllers.NewMenuItemController(svc)
	orderCtrl := controllers.NewOrderController(svc)
	boardCtrl := controllers.NewBoardController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/", serviceCtrl.Root)
	r.GET("/healthz", serviceCtrl.Healthz)

	outlets := r.Group("/outlets")
	{
		outlets.GET("/", outletCtrl.GetAllOutlets)
		outlets.POST("/", outletCtrl.CreateOutlet)
		outlets.GET("/:id", outletCtrl.GetOutletByID)
		outlets.GET("/:id/summary", outletCtrl.GetOutletSummary)

		outlets.GET("/:id/menu-items", outletCtrl.GetOutletMenu)
		outlets.GET("/:id/products", outletCtrl.GetOutletProducts)
		outlets.POST("/:id/menu-items", menuItemCtrl.CreateMenuItem)
		outlets.GET("/:id/menu-items/:item_id", menuItemCtrl.GetMenuItemByID)

		outlets.GET("/:id/orders", orderCtrl.GetAllOrders)
		outlets.POST("/:id/orders", orderCtrl.CreateOrder)
		outlets.GET("/:id/orders/:order_id", orderCtrl.GetOrderByID)
		outlets.POST("/:id/orders/:order_id/complete", orderCtrl.CompleteOrder)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware("admin"))
	{
		admin.PATCH("/outlets/:id", outletCtrl.UpdateOutlet)
		admin.DELETE("/outlets/:id", outletCtrl.DeleteOutlet)
	}

	// Order board for baristas and shift leads
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware("admin", "staff"))
	{
		ws.GET("/orders", boardCtrl.OrderBoard)
	}

	return r
}
