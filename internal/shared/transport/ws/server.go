package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"IdleKingdoms/modules/kit/logx"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 客户端来自移动端 webview，放开 Origin 校验
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GinHandler 把 HTTP 连接升级为 ws 会话并启动收发循环。
func GinHandler(router *Router, needSecret bool, l logx.Logger, onOpen func(conn WSConn)) gin.HandlerFunc {
	return func(c *gin.Context) {
		wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			l.Error("ws upgrade failed", zap.Error(err))
			return
		}
		server := NewWsServer(wsConn, needSecret, l)
		server.Router(router)
		server.Run()
		if onOpen != nil {
			onOpen(server)
		}
	}
}
