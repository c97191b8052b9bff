package notify

import (
	"go.uber.org/zap"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/logs"
)

// LogNotifier 把事件写进结构化日志，无会话环境（离线结算压测、脚本）用。
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(playerID entity.PlayerID, kind entity.EventKind, payload any) {
	logs.Info("automation event",
		zap.Int("player_id", int(playerID)),
		zap.String("kind", string(kind)),
		zap.Any("payload", payload),
	)
}

// FanoutNotifier 按顺序把事件转发给多个下游。
type FanoutNotifier struct {
	targets []Notifier
}

type Notifier interface {
	Notify(playerID entity.PlayerID, kind entity.EventKind, payload any)
}

func NewFanoutNotifier(targets ...Notifier) *FanoutNotifier {
	return &FanoutNotifier{targets: targets}
}

func (n *FanoutNotifier) Notify(playerID entity.PlayerID, kind entity.EventKind, payload any) {
	for _, t := range n.targets {
		t.Notify(playerID, kind, payload)
	}
}
