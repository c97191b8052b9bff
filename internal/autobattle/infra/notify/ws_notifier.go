package notify

import (
	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/session"
)

// WsNotifier 把领域事件推给该存档位绑定的在线连接。
// 离线时静默丢弃：事件只服务于在线展示，离线进度由补结算重建。
type WsNotifier struct {
	sessions session.Manager
}

func NewWsNotifier(sessions session.Manager) *WsNotifier {
	return &WsNotifier{sessions: sessions}
}

func (n *WsNotifier) Notify(playerID entity.PlayerID, kind entity.EventKind, payload any) {
	conn, ok := n.sessions.GetConn(int(playerID))
	if !ok {
		return
	}
	conn.Push(string(kind), payload)
}
