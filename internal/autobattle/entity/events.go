package entity

// 领域事件：由服务层产出、经通知端口推送给在线客户端。
// 事件只描述已发生的事实，不携带可变实体引用。

type EventKind string

const (
	EventBattleStarted   EventKind = "battle.started"
	EventBattleCompleted EventKind = "battle.completed"
	EventCityConquered   EventKind = "city.conquered"
	EventOfflineSettled  EventKind = "offline.settled"
	EventStateChanged    EventKind = "automation.state_changed"
)

type BattleStartedEvent struct {
	PlayerID    PlayerID `json:"player_id"`
	CityID      CityID   `json:"city_id"`
	CityName    string   `json:"city_name"`
	Troops      int      `json:"troops"`
	SuccessProb float64  `json:"success_prob"`
}

type BattleCompletedEvent struct {
	PlayerID  PlayerID      `json:"player_id"`
	CityID    CityID        `json:"city_id"`
	CityName  string        `json:"city_name"`
	Victory   bool          `json:"victory"`
	TroopLoss int           `json:"troop_loss"`
	Loot      ResourceDelta `json:"loot"`
}

type CityConqueredEvent struct {
	PlayerID PlayerID `json:"player_id"`
	CityID   CityID   `json:"city_id"`
	CityName string   `json:"city_name"`
}

type OfflineSettledEvent struct {
	PlayerID PlayerID               `json:"player_id"`
	Result   *OfflineProgressResult `json:"result"`
}

type StateChangedEvent struct {
	PlayerID PlayerID        `json:"player_id"`
	State    AutomationState `json:"state"`
}
