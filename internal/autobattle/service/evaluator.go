package service

import (
	"IdleKingdoms/internal/autobattle/entity"
)

// TargetEvaluator 给候选城池打分并按激进档位选择最优目标。
type TargetEvaluator struct{}

func NewTargetEvaluator() *TargetEvaluator {
	return &TargetEvaluator{}
}

// DefenderBasePower 把守军与难度折算成守方基础战力（未含难度系数放大）。
func DefenderBasePower(c entity.CityTarget) float64 {
	return float64(c.Garrison) + float64(c.Difficulty)*20
}

// Evaluate 返回 ≥0 的目标分。固定战力下，难度越高分越低（严格递减）。
func (e *TargetEvaluator) Evaluate(c entity.CityTarget, player *entity.PlayerEntity) float64 {
	power := player.PowerRating()
	if power <= 0 {
		return 0
	}
	threat := float64(c.Difficulty)*25 + float64(c.Garrison)*0.8
	base := power / (power + threat)

	// 产出越高越值得打；同威胁同产出时分数只由战力决定
	value := float64(c.Yield.Gold) + float64(c.Yield.Food)*0.8 + float64(c.Yield.Troops)*1.5
	return base * (1 + value/1000)
}

// SelectOptimalTarget 在候选里选一个目标；过滤未解锁与已拥有的城池。
// 没有可打目标返回 false，这不是错误，调用方按“本回合无动作”处理。
func (e *TargetEvaluator) SelectOptimalTarget(candidates []entity.CityTarget, player *entity.PlayerEntity, aggression entity.Aggression) (entity.CityTarget, bool) {
	var (
		best   entity.CityTarget
		bestV  float64
		picked bool
	)
	power := player.PowerRating()

	for _, c := range candidates {
		if !c.Unlocked(player.Level()) || player.OwnsCity(c.ID) {
			continue
		}

		var v float64
		switch aggression {
		case entity.AggressionConservative:
			// 永远挑最容易的：用负难度做比较键，难度同档再看分数
			v = float64(-c.Difficulty)*1000 + e.Evaluate(c, player)
		case entity.AggressionAggressive:
			v = e.Evaluate(c, player)
			// 战力压制守军时，难度越高越优先
			if power > DefenderBasePower(c)*1.2 {
				v *= 1 + float64(c.Difficulty)/100*0.8
			}
		default:
			v = e.Evaluate(c, player)
		}

		if !picked || v > bestV {
			best, bestV, picked = c, v, true
		}
	}
	return best, picked
}
