package service

import (
	"math/rand"
	"time"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/autobattle/service/port"
)

// AutomationController 驱动单个存档位的挂机循环：
// 选目标 → 资源闸门 → 战斗判定 → 结果入账 → 事件外发。
// 所有依赖构造时注入；同一存档位由单个 actor 串行调用，内部不加锁。
type AutomationController struct {
	slot     *entity.SaveSlotEntity
	catalog  port.CityCatalog
	notifier port.EventNotifier
	conf     port.ConfigSource
	rng      *rand.Rand

	evaluator *TargetEvaluator

	activeBattles int
	deferredTicks int
	banked        int // 距上次攻占以来的累计胜场
}

func NewAutomationController(
	slot *entity.SaveSlotEntity,
	catalog port.CityCatalog,
	notifier port.EventNotifier,
	conf port.ConfigSource,
	rng *rand.Rand,
) *AutomationController {
	return &AutomationController{
		slot:      slot,
		catalog:   catalog,
		notifier:  notifier,
		conf:      conf,
		rng:       rng,
		evaluator: NewTargetEvaluator(),
	}
}

func (c *AutomationController) Slot() *entity.SaveSlotEntity { return c.slot }

// Start 从 Stopped/Paused 进入 Running。重复 Start 是无害的幂等操作。
func (c *AutomationController) Start() {
	if c.slot.State() == entity.StateRunning {
		return
	}
	c.slot.SetState(entity.StateRunning)
	c.notifyState()
}

// Pause 暂停出兵，保留全部计数；reason 只进事件流，不影响行为。
func (c *AutomationController) Pause(reason string) {
	if c.slot.State() != entity.StateRunning {
		return
	}
	c.slot.SetState(entity.StatePaused)
	c.notifier.Notify(c.slot.Player().ID(), entity.EventStateChanged, entity.StateChangedEvent{
		PlayerID: c.slot.Player().ID(),
		State:    entity.StatePaused,
	})
	_ = reason
}

// Resume 只允许从 Paused 回到 Running。
func (c *AutomationController) Resume() error {
	if c.slot.State() != entity.StatePaused {
		return entity.ErrAutomationNotActive
	}
	c.slot.SetState(entity.StateRunning)
	c.notifyState()
	return nil
}

// Stop 从任意状态进入 Stopped，清空在途战斗与延期计数。
func (c *AutomationController) Stop() {
	c.activeBattles = 0
	c.deferredTicks = 0
	if c.slot.State() == entity.StateStopped {
		return
	}
	c.slot.SetState(entity.StateStopped)
	c.notifyState()
}

// UpdateConfig 替换挂机配置；非法配置拒绝并保留旧值。
func (c *AutomationController) UpdateConfig(cfg entity.AutomationConfig) error {
	if !c.slot.UpdateConfig(cfg) {
		return entity.ErrInvalidConfig
	}
	return nil
}

// TickInterval 返回当前出兵间隔：基础间隔随难度档放缓，高档位节奏更慢。
func (c *AutomationController) TickInterval() time.Duration {
	scaler := NewDifficultyScaler(c.conf.Balance().Scaling)
	base := float64(c.slot.Config().BattleFrequencySec)
	slowdown := 1 + (scaler.ScalingFactor(c.slot.Stats().BattlesCompleted())-1)*0.25
	return time.Duration(base*slowdown) * time.Second
}

// Tick 执行一个决策周期。未运行、无目标、资源闸门失败都是静默跳过，
// 返回 (nil, nil) 表示本回合无动作。
func (c *AutomationController) Tick(now int64) (*entity.BattleOutcome, error) {
	if c.slot.State() != entity.StateRunning {
		return nil, nil
	}

	cfg := c.slot.Config()
	budget := cfg.MaxSimultaneousBattles - c.activeBattles
	if budget <= 0 {
		// 超预算的 tick 延期而不是丢弃
		c.deferredTicks++
		return nil, nil
	}

	attempts := 1
	if c.deferredTicks > 0 && budget > 1 {
		c.deferredTicks--
		attempts++
	}

	var last *entity.BattleOutcome
	for i := 0; i < attempts; i++ {
		out, err := c.runBattle(now, cfg)
		if err != nil {
			return last, err
		}
		if out == nil {
			break
		}
		last = out
	}
	return last, nil
}

func (c *AutomationController) runBattle(now int64, cfg entity.AutomationConfig) (*entity.BattleOutcome, error) {
	conf := c.conf.Balance()
	scaler := NewDifficultyScaler(conf.Scaling)
	sim := NewBattleSimulator(conf.Battle)

	player := c.slot.Player()
	stats := c.slot.Stats()

	target, ok := c.evaluator.SelectOptimalTarget(c.catalog.EligibleFor(player.Level()), player, cfg.Aggression)
	if !ok {
		return nil, nil
	}

	defPower := scaler.EnemyPowerScaling(DefenderBasePower(target), stats.BattlesCompleted()) *
		scaler.StreakModifier(stats.ConsecutiveVictories(), stats.ConsecutiveDefeats())
	prob := sim.SuccessProbability(player.PowerRating(), defPower, stats)

	plan, err := sim.PlanAssault(target, player, cfg, prob)
	if err != nil {
		// 资源闸门失败不是错误，本回合无动作
		return nil, nil
	}
	if !player.Resource().Spend(entity.ResourceDelta{Gold: plan.EstGoldCost}) {
		return nil, nil
	}

	c.activeBattles++
	defer func() { c.activeBattles-- }()

	c.notifier.Notify(player.ID(), entity.EventBattleStarted, entity.BattleStartedEvent{
		PlayerID:    player.ID(),
		CityID:      target.ID,
		CityName:    target.Name,
		Troops:      plan.AllocatedTroops,
		SuccessProb: plan.SuccessProb,
	})

	out := sim.Simulate(plan, scaler.RewardScaling(stats.BattlesCompleted()), c.rng)

	loss := min(out.TroopLoss, player.Resource().Troops())
	player.Resource().Apply(entity.ResourceDelta{Troops: -loss})

	if out.Victory {
		stats.RecordVictory()
		c.banked++
		player.Resource().Apply(out.Loot)

		if rollConquest(target, c.banked, conf.Conquest, c.rng) {
			player.AddCity(target.ID)
			c.banked = 0
			c.notifier.Notify(player.ID(), entity.EventCityConquered, entity.CityConqueredEvent{
				PlayerID: player.ID(),
				CityID:   target.ID,
				CityName: target.Name,
			})
		}
	} else {
		stats.RecordDefeat()
	}

	c.notifier.Notify(player.ID(), entity.EventBattleCompleted, entity.BattleCompletedEvent{
		PlayerID:  player.ID(),
		CityID:    target.ID,
		CityName:  target.Name,
		Victory:   out.Victory,
		TroopLoss: loss,
		Loot:      out.Loot,
	})

	c.slot.Touch(now)
	return &out, nil
}

// SettleOffline 按距上次活跃的时间差做一次离线补结算并合并进存档。
// 时间差不足 1 小时只刷新活跃时间，返回 nil。
func (c *AutomationController) SettleOffline(now int64) *entity.OfflineProgressResult {
	gapHours := int((now - c.slot.LastActiveAt()) / 3600)
	if gapHours < 1 {
		c.slot.Touch(now)
		return nil
	}

	calc := NewOfflineCalculator(c.conf.Balance())
	result := calc.Calculate(
		c.slot.Player(),
		c.slot.Stats(),
		c.slot.Config(),
		c.catalog.All(),
		gapHours,
		c.rng,
	)
	ApplyOfflineResult(c.slot, result)
	c.slot.Touch(now)

	c.notifier.Notify(c.slot.Player().ID(), entity.EventOfflineSettled, entity.OfflineSettledEvent{
		PlayerID: c.slot.Player().ID(),
		Result:   result,
	})
	return result
}

func (c *AutomationController) notifyState() {
	c.notifier.Notify(c.slot.Player().ID(), entity.EventStateChanged, entity.StateChangedEvent{
		PlayerID: c.slot.Player().ID(),
		State:    c.slot.State(),
	})
}
