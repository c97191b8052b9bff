package service

import (
	"math"
	"math/rand"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/balance"
)

// 兵饷：每出动 1 兵的金币开销
const goldPerTroop = 2

// BattleSimulator 负责出兵方案与单场战斗判定。
// 随机源由外部注入，离线结算传入固定种子即可复现。
type BattleSimulator struct {
	tune balance.BattleTuning
}

func NewBattleSimulator(tune balance.BattleTuning) *BattleSimulator {
	return &BattleSimulator{tune: tune}
}

// PlanAssault 产出一份出兵方案。资源闸门是硬前置条件：
// 金币与兵力的动用量都不得越过保留线，越线直接拒绝而不是缩水执行。
func (b *BattleSimulator) PlanAssault(target entity.CityTarget, player *entity.PlayerEntity, cfg entity.AutomationConfig, prob float64) (*entity.BattlePlan, error) {
	res := player.Resource()

	// 至少要有守军半数的兵力才值得开打
	minTroops := max(1, target.Garrison/2)

	troopCap := cfg.SpendCap(res.Troops())
	if troopCap < minTroops {
		if res.Troops() < minTroops {
			return nil, entity.ErrInsufficientTroops
		}
		return nil, entity.ErrReserveBreached
	}

	// 出兵量到守军两倍即饱和，多带无益
	allocated := min(troopCap, target.Garrison*2)
	allocated = max(allocated, minTroops)

	goldCost := allocated * goldPerTroop
	if goldCost > cfg.SpendCap(res.Gold()) {
		return nil, entity.ErrReserveBreached
	}

	return &entity.BattlePlan{
		Target:          target,
		AllocatedTroops: allocated,
		EstGoldCost:     goldCost,
		EstTroopCost:    int(float64(allocated)*b.tune.DefeatLossFrac + 0.5),
		SuccessProb:     prob,
	}, nil
}

// SuccessProbability 计算胜率：基础带 + 战力差斜率，再按近期胜率向锚点回拉。
// 回拉修正有绝对上限，最终值始终落在 [min, max]，永不确定。
func (b *BattleSimulator) SuccessProbability(attackerPower, defenderPower float64, stats *entity.StatisticsEntity) float64 {
	p := b.tune.BaseSuccessRate + (attackerPower-defenderPower)*b.tune.Sensitivity

	if stats != nil && stats.BattlesCompleted() >= b.tune.MinSampleBattles {
		nudge := (b.tune.TargetWinRate - stats.WinRate()) * b.tune.BalanceStrength
		nudge = math.Max(-b.tune.MaxBalanceNudge, math.Min(b.tune.MaxBalanceNudge, nudge))
		p += nudge
	}

	return math.Max(b.tune.MinSuccessRate, math.Min(b.tune.MaxSuccessRate, p))
}

// Simulate 判定一场战斗：掷骰定胜负，按配置比例折算损兵，胜利按奖励系数折算掉落。
func (b *BattleSimulator) Simulate(plan *entity.BattlePlan, rewardScale float64, rng *rand.Rand) entity.BattleOutcome {
	victory := rng.Float64() < plan.SuccessProb

	lossFrac := b.tune.DefeatLossFrac
	if victory {
		lossFrac = b.tune.VictoryLossFrac
	}
	loss := min(plan.AllocatedTroops, int(float64(plan.AllocatedTroops)*lossFrac+0.5))

	out := entity.BattleOutcome{
		Victory:     victory,
		SuccessProb: plan.SuccessProb,
		TroopLoss:   loss,
	}
	if victory {
		out.Loot = b.lootFor(plan.Target, rewardScale)
	}
	return out
}

func (b *BattleSimulator) lootFor(target entity.CityTarget, rewardScale float64) entity.ResourceDelta {
	if rewardScale < 1 {
		rewardScale = 1
	}
	return entity.ResourceDelta{
		Gold:   int((float64(target.Yield.Gold)*4 + float64(target.Difficulty)*30) * rewardScale),
		Troops: int(float64(target.Yield.Troops) * 2 * rewardScale),
		Food:   int((float64(target.Yield.Food)*3 + float64(target.Difficulty)*10) * rewardScale),
	}
}
