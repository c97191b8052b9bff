package service

import (
	"math"

	"IdleKingdoms/internal/shared/gameconfig/balance"
)

// DifficultyScaler 根据累计战斗数与连胜/连败推导难度与奖励系数。
// 曲线取对数：长挂机不滚雪球，也不会停滞。
type DifficultyScaler struct {
	tune balance.ScalingTuning
}

func NewDifficultyScaler(tune balance.ScalingTuning) *DifficultyScaler {
	return &DifficultyScaler{tune: tune}
}

// ScalingFactor 返回 [1, MaxScaling] 内随战斗数单调不减的难度系数。
func (s *DifficultyScaler) ScalingFactor(battlesCompleted int) float64 {
	if battlesCompleted < 0 {
		battlesCompleted = 0
	}
	f := 1 + s.tune.DifficultyGrowth*math.Log1p(float64(battlesCompleted)/50)
	return math.Min(f, s.tune.MaxScaling)
}

// RewardScaling 返回 [1, MaxRewardScaling] 的掉落补偿系数，曲线同上但更平缓。
func (s *DifficultyScaler) RewardScaling(battlesCompleted int) float64 {
	if battlesCompleted < 0 {
		battlesCompleted = 0
	}
	f := 1 + s.tune.RewardGrowth*math.Log1p(float64(battlesCompleted)/50)
	return math.Min(f, s.tune.MaxRewardScaling)
}

// StreakModifier 连胜抬高难度、连败作为保底机制压低难度；两侧都有封顶场数。
func (s *DifficultyScaler) StreakModifier(consecutiveVictories, consecutiveDefeats int) float64 {
	v := min(max(0, consecutiveVictories), s.tune.StreakLimit)
	d := min(max(0, consecutiveDefeats), s.tune.StreakLimit)
	return 1 + s.tune.StreakStep*float64(v) - s.tune.StreakStep*float64(d)
}

// EnemyPowerScaling 把守军基础战力放大到当前难度档。
func (s *DifficultyScaler) EnemyPowerScaling(basePower float64, battlesCompleted int) float64 {
	if basePower < 0 {
		basePower = 0
	}
	return basePower * s.ScalingFactor(battlesCompleted)
}
