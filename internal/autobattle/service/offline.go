package service

import (
	"math/rand"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/balance"
)

// OfflineCalculator 把离线时长压缩成一次批量模拟。
// 对输入是纯函数：在玩家与统计的副本上推进，随机源注入，固定种子可复现。
type OfflineCalculator struct {
	conf      balance.Config
	evaluator *TargetEvaluator
	scaler    *DifficultyScaler
	battles   *BattleSimulator
}

func NewOfflineCalculator(conf balance.Config) *OfflineCalculator {
	return &OfflineCalculator{
		conf:      conf,
		evaluator: NewTargetEvaluator(),
		scaler:    NewDifficultyScaler(conf.Scaling),
		battles:   NewBattleSimulator(conf.Battle),
	}
}

// Calculate 结算 offlineHours 小时的离线进度。
// candidates 传完整城池目录即可，归属与解锁在内部过滤。
func (o *OfflineCalculator) Calculate(
	player *entity.PlayerEntity,
	stats *entity.StatisticsEntity,
	cfg entity.AutomationConfig,
	candidates []entity.CityTarget,
	offlineHours int,
	rng *rand.Rand,
) *entity.OfflineProgressResult {
	// 超出上限按上限结算；负数视为 0
	hours := min(max(0, offlineHours), cfg.MaxOfflineHours)

	// 在副本上推进，不碰在线状态
	work := entity.HydratePlayerEntity(player.Snapshot(), entity.HydrateResourceEntity(player.Resource().Snapshot()))
	simStats := stats.Clone()

	lookup := make(map[entity.CityID]entity.CityTarget, len(candidates))
	for _, c := range candidates {
		lookup[c.ID] = c
	}

	attemptsPerHour := cfg.MaxBattlesPerHour
	if cfg.BattleFrequencySec > 0 {
		attemptsPerHour = min(attemptsPerHour, 3600/cfg.BattleFrequencySec)
	}

	result := &entity.OfflineProgressResult{
		HoursSimulated:  hours,
		CitiesConquered: []entity.CityID{},
		Events:          []entity.NarrativeEvent{},
	}
	banked := 0

	for hour := 0; hour < hours; hour++ {
		factor := o.diminishFactor(hour, cfg)

		for attempt := 0; attempt < attemptsPerHour; attempt++ {
			target, ok := o.evaluator.SelectOptimalTarget(candidates, work, cfg.Aggression)
			if !ok {
				break
			}

			defPower := o.scaler.EnemyPowerScaling(DefenderBasePower(target), simStats.BattlesCompleted()) *
				o.scaler.StreakModifier(simStats.ConsecutiveVictories(), simStats.ConsecutiveDefeats())
			prob := o.battles.SuccessProbability(work.PowerRating(), defPower, simStats)

			plan, err := o.battles.PlanAssault(target, work, cfg, prob)
			if err != nil {
				// 资源闸门失败不是错误：这个小时不再出兵
				break
			}
			if !work.Resource().Spend(entity.ResourceDelta{Gold: plan.EstGoldCost}) {
				break
			}
			result.ResourcesLost.Gold += plan.EstGoldCost

			out := o.battles.Simulate(plan, o.scaler.RewardScaling(simStats.BattlesCompleted()), rng)
			result.BattlesFought++

			// 损兵封顶为现有兵力，账本永不为负
			loss := min(out.TroopLoss, work.Resource().Troops())
			work.Resource().Apply(entity.ResourceDelta{Troops: -loss})
			result.ResourcesLost.Troops += loss

			if out.Victory {
				simStats.RecordVictory()
				result.Victories++
				banked++

				loot := scaleDelta(out.Loot, factor)
				work.Resource().Apply(loot)
				result.ResourcesGained = result.ResourcesGained.Add(loot)

				if rollConquest(target, banked, o.conf.Conquest, rng) {
					work.AddCity(target.ID)
					result.CitiesConquered = append(result.CitiesConquered, target.ID)
					banked = 0
				}
			} else {
				simStats.RecordDefeat()
				result.Defeats++
			}

			if len(result.Events) < o.conf.Events.MaxEventsPerCalc &&
				len(o.conf.Events.Narratives) > 0 &&
				rng.Float64() < o.conf.Events.BaseEventChance {
				result.Events = append(result.Events, entity.NarrativeEvent{
					Hour: hour,
					Text: o.conf.Events.Narratives[rng.Intn(len(o.conf.Events.Narratives))],
				})
			}
		}

		// 已拥有城池的每小时产出，同样受衰减
		yield := scaleDelta(work.CityYield(func(id entity.CityID) (entity.CityTarget, bool) {
			c, ok := lookup[id]
			return c, ok
		}), factor)
		work.Resource().Apply(yield)
		result.ResourcesGained = result.ResourcesGained.Add(yield)
	}

	if result.BattlesFought > 0 {
		result.WinRate = float64(result.Victories) / float64(result.BattlesFought)
	}
	result.ScalingApplied = o.scaler.ScalingFactor(simStats.BattlesCompleted())
	result.Stats = simStats.Snapshot()
	return result
}

// diminishFactor 返回该小时的收益衰减系数：超过起始小时后线性衰减，有下限。
func (o *OfflineCalculator) diminishFactor(hour int, cfg entity.AutomationConfig) float64 {
	if hour < cfg.DiminishOnsetHour {
		return 1
	}
	f := 1 - cfg.DiminishRate*float64(hour-cfg.DiminishOnsetHour+1)
	if f < cfg.MinDiminishFactor {
		return cfg.MinDiminishFactor
	}
	return f
}

func scaleDelta(d entity.ResourceDelta, factor float64) entity.ResourceDelta {
	if factor >= 1 {
		return d
	}
	return entity.ResourceDelta{
		Gold:   int(float64(d.Gold) * factor),
		Troops: int(float64(d.Troops) * factor),
		Food:   int(float64(d.Food) * factor),
	}
}

// ApplyOfflineResult 把离线结算结果合并进在线存档。只在加载存档时调用一次。
func ApplyOfflineResult(slot *entity.SaveSlotEntity, result *entity.OfflineProgressResult) {
	if result == nil {
		return
	}
	slot.Player().Resource().Apply(result.NetDelta())
	for _, id := range result.CitiesConquered {
		slot.Player().AddCity(id)
	}
	slot.Stats().Overwrite(result.Stats)
}
