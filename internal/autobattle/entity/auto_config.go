package entity

// Aggression 是挂机策略的激进档位。
type Aggression string

const (
	AggressionConservative Aggression = "conservative"
	AggressionBalanced     Aggression = "balanced"
	AggressionAggressive   Aggression = "aggressive"
)

func (a Aggression) Valid() bool {
	switch a {
	case AggressionConservative, AggressionBalanced, AggressionAggressive:
		return true
	}
	return false
}

// AutomationConfig 是挂机与离线结算的行为配置。
// 平衡数值（胜率带、损兵比例）在 balance 调参表里，这里只放玩家可调项。
type AutomationConfig struct {
	Aggression             Aggression `json:"aggression"`
	ReservePercent         int        `json:"reserve_percent"` // 0~100，单场战斗最多动用的资源比例
	MaxSimultaneousBattles int        `json:"max_simultaneous_battles"`

	MaxOfflineHours    int     `json:"max_offline_hours"`
	DiminishOnsetHour  int     `json:"diminish_onset_hour"`
	DiminishRate       float64 `json:"diminish_rate"`
	MinDiminishFactor  float64 `json:"min_diminish_factor"`
	MaxBattlesPerHour  int     `json:"max_battles_per_hour"`
	BattleFrequencySec int     `json:"battle_frequency_sec"`
}

// DefaultAutomationConfig 是新建存档与脏配置兜底使用的默认档。
func DefaultAutomationConfig() AutomationConfig {
	return AutomationConfig{
		Aggression:             AggressionBalanced,
		ReservePercent:         20,
		MaxSimultaneousBattles: 1,
		MaxOfflineHours:        24,
		DiminishOnsetHour:      8,
		DiminishRate:           0.08,
		MinDiminishFactor:      0.2,
		MaxBattlesPerHour:      20,
		BattleFrequencySec:     180,
	}
}

// Validate 校验配置合法性。非法配置由调用方丢弃并保留旧值。
func (c AutomationConfig) Validate() bool {
	if !c.Aggression.Valid() {
		return false
	}
	if c.ReservePercent < 0 || c.ReservePercent > 100 {
		return false
	}
	if c.MaxSimultaneousBattles < 1 {
		return false
	}
	if c.MaxOfflineHours < 1 {
		return false
	}
	if c.DiminishOnsetHour < 0 || c.DiminishOnsetHour > c.MaxOfflineHours {
		return false
	}
	if c.DiminishRate < 0 || c.DiminishRate > 1 {
		return false
	}
	if c.MinDiminishFactor <= 0 || c.MinDiminishFactor > 1 {
		return false
	}
	if c.MaxBattlesPerHour < 1 {
		return false
	}
	if c.BattleFrequencySec < 1 {
		return false
	}
	return true
}

// SpendCap 返回单场战斗允许动用的资源上限（保留线以下不可动）。
func (c AutomationConfig) SpendCap(current int) int {
	return current * c.ReservePercent / 100
}
