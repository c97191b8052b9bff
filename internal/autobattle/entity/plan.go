package entity

// BattlePlan 是单个决策周期的出兵方案，仅存在于一次 tick 内，不落盘。
type BattlePlan struct {
	Target          CityTarget
	AllocatedTroops int
	EstGoldCost     int
	EstTroopCost    int
	SuccessProb     float64
}

// BattleOutcome 是一次战斗判定的结果。
type BattleOutcome struct {
	Victory     bool
	SuccessProb float64
	TroopLoss   int
	Loot        ResourceDelta
}
