package interfaces

import (
	"github.com/gin-gonic/gin"

	"IdleKingdoms/internal/autobattle/actor"
	handlerhttp "IdleKingdoms/internal/autobattle/interfaces/handler/http"
	handlerws "IdleKingdoms/internal/autobattle/interfaces/handler/ws"
	"IdleKingdoms/internal/shared/session"
	transporthttp "IdleKingdoms/internal/shared/transport/http"
	"IdleKingdoms/internal/shared/transport/ws"
)

type Module struct {
	wsHandler   *handlerws.WsHandler
	httpHandler *handlerhttp.HttpHandler
}

func New(runtime *actor.Runtime, sessions session.Manager) *Module {
	return &Module{
		wsHandler:   handlerws.NewWsHandler(runtime, sessions),
		httpHandler: handlerhttp.NewHttpHandler(runtime),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
