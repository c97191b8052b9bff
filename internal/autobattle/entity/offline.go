package entity

// NarrativeEvent 是离线结算期间触发的稀有叙事事件。
type NarrativeEvent struct {
	Hour int    `json:"hour"`
	Text string `json:"text"`
}

// OfflineProgressResult 是一次离线补结算的聚合结果。
// 每次带时间差的加载只产出一份，合并进玩家状态后即丢弃。
type OfflineProgressResult struct {
	HoursSimulated  int              `json:"hours_simulated"`
	BattlesFought   int              `json:"battles_fought"`
	Victories       int              `json:"victories"`
	Defeats         int              `json:"defeats"`
	ResourcesGained ResourceDelta    `json:"resources_gained"`
	ResourcesLost   ResourceDelta    `json:"resources_lost"`
	CitiesConquered []CityID         `json:"cities_conquered"`
	WinRate         float64          `json:"win_rate"`
	ScalingApplied  float64          `json:"scaling_applied"`
	Events          []NarrativeEvent `json:"events"`
	Stats           StatisticsSnapshot
}

// NetDelta 返回应合并进账本的净增减。
func (r *OfflineProgressResult) NetDelta() ResourceDelta {
	return ResourceDelta{
		Gold:   r.ResourcesGained.Gold - r.ResourcesLost.Gold,
		Troops: r.ResourcesGained.Troops - r.ResourcesLost.Troops,
		Food:   r.ResourcesGained.Food - r.ResourcesLost.Food,
	}
}
