package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/coffee-outlets/kds"
	"github.com/yeremiapane/coffee-outlets/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the board is token-gated
	},
}

type BoardController struct {
	Hub *kds.Hub
}

func NewBoardController(hub *kds.Hub) *BoardController {
	return &BoardController{Hub: hub}
}

// OrderBoard upgrades to a websocket and streams order events. The optional
// outlet_id query narrows the stream to one outlet.
func (bc *BoardController) OrderBoard(c *gin.Context) {
	var outletID uint
	if raw := c.Query("outlet_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.RespondDetail(c, http.StatusUnprocessableEntity, "outlet_id should be a valid integer")
			return
		}
		outletID = uint(id)
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Order board upgrade failed: %v", err)
		return
	}

	bc.Hub.RegisterClient(ws, outletID)
	utils.InfoLogger.Printf("Order board client joined (outlet=%d, clients=%d)", outletID, bc.Hub.ClientCount())

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	bc.Hub.UnregisterClient(ws)
}
