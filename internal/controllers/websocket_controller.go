package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appwebsocket "courier-system/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketController подключает панели дашборда к рассылке
// уведомлений о пересборке отчета.
type WebSocketController struct {
	hub    *appwebsocket.Hub
	logger *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, logger: logger}
}

func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("Не удалось обновить соединение до websocket", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn)
	c.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
	return nil
}
