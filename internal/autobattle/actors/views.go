package actors

import "IdleKingdoms/internal/autobattle/entity"

// StatusView 是对外展示的存档位状态快照。
type StatusView struct {
	PlayerID  PlayerID                  `json:"player_id"`
	State     entity.AutomationState    `json:"state"`
	Level     int                       `json:"level"`
	Power     float64                   `json:"power"`
	Attribute entity.RoleAttribute      `json:"attribute"`
	Gold      int                       `json:"gold"`
	Troops    int                       `json:"troops"`
	Food      int                       `json:"food"`
	Cities    []entity.CityID           `json:"cities"`
	Stats     entity.StatisticsSnapshot `json:"stats"`
	Config    entity.AutomationConfig   `json:"config"`
	WinRate   float64                   `json:"win_rate"`
}

func buildStatusView(slot *entity.SaveSlotEntity) *StatusView {
	p := slot.Player()
	cities := make([]entity.CityID, 0, p.CityCount())
	p.ForEachCity(func(id entity.CityID) {
		cities = append(cities, id)
	})

	return &StatusView{
		PlayerID:  p.ID(),
		State:     slot.State(),
		Level:     p.Level(),
		Power:     p.PowerRating(),
		Attribute: p.Attribute(),
		Gold:      p.Resource().Gold(),
		Troops:    p.Resource().Troops(),
		Food:      p.Resource().Food(),
		Cities:    cities,
		Stats:     slot.Stats().Snapshot(),
		Config:    slot.Config(),
		WinRate:   slot.Stats().WinRate(),
	}
}
