package port

import (
	"context"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/balance"
)

// PlayerRepository 是存档持久化端口。核心逻辑不关心落盘格式与存储引擎。
type PlayerRepository interface {
	LoadSlot(ctx context.Context, id entity.PlayerID) (*entity.PlayerPersistSnapshot, error)
	SaveSnapshot(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error
}

// CityCatalog 是只读城池目录。
type CityCatalog interface {
	ByID(id entity.CityID) (entity.CityTarget, bool)
	All() []entity.CityTarget
	// EligibleFor 返回等级达标的候选（不含归属过滤，归属在玩家侧判断）。
	EligibleFor(level int) []entity.CityTarget
}

// EventNotifier 把领域事件推给在线客户端/日志消费方。
// 投递是 fire-and-forget：核心逻辑不等待、不重试、不感知失败。
type EventNotifier interface {
	Notify(playerID entity.PlayerID, kind entity.EventKind, payload any)
}

// ConfigSource 提供数值调参表，核心逻辑只把它当数据。
type ConfigSource interface {
	Balance() balance.Config
}
