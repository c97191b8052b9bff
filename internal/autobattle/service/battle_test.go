package service

import (
	"errors"
	"math/rand"
	"testing"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/balance"
)

func TestSuccessProbability_随战力差单调且被钳制(t *testing.T) {
	sim := NewBattleSimulator(balance.Default().Battle)

	prev := -1.0
	for _, diff := range []float64{-100000, -2000, -500, 0, 500, 2000, 100000} {
		p := sim.SuccessProbability(1000+diff, 1000, nil)
		if p < 0.05 || p > 0.95 {
			t.Fatalf("期望胜率落在 [0.05,0.95], diff=%v got=%v", diff, p)
		}
		if p < prev {
			t.Fatalf("期望胜率随战力差单调不减, diff=%v got=%v prev=%v", diff, p, prev)
		}
		prev = p
	}

	// 极端战力差触到上下限
	if p := sim.SuccessProbability(1e9, 0, nil); p != 0.95 {
		t.Fatalf("期望极端优势钳到 0.95, got=%v", p)
	}
	if p := sim.SuccessProbability(0, 1e9, nil); p != 0.05 {
		t.Fatalf("期望极端劣势钳到 0.05, got=%v", p)
	}
}

func TestSuccessProbability_动态平衡回拉有界(t *testing.T) {
	sim := NewBattleSimulator(balance.Default().Battle)

	// 胜率远低于锚点：回拉向上，但不超过修正上限
	losing := entity.HydrateStatisticsEntity(entity.StatisticsSnapshot{
		BattlesCompleted: 100, Victories: 10, Defeats: 90, ConsecutiveDefeats: 5,
	})
	base := sim.SuccessProbability(1000, 1000, nil)
	nudged := sim.SuccessProbability(1000, 1000, losing)
	if nudged <= base {
		t.Fatalf("期望低胜率时向上回拉, base=%v nudged=%v", base, nudged)
	}
	if nudged-base > 0.15+1e-9 {
		t.Fatalf("期望回拉不超过上限 0.15, got=%v", nudged-base)
	}

	// 胜率远高于锚点：回拉向下
	winning := entity.HydrateStatisticsEntity(entity.StatisticsSnapshot{
		BattlesCompleted: 100, Victories: 98, Defeats: 2, ConsecutiveVictories: 5,
	})
	if got := sim.SuccessProbability(1000, 1000, winning); got >= base {
		t.Fatalf("期望高胜率时向下回拉, base=%v got=%v", base, got)
	}

	// 样本不足时不做回拉
	few := entity.HydrateStatisticsEntity(entity.StatisticsSnapshot{BattlesCompleted: 3, Victories: 0, Defeats: 3})
	if got := sim.SuccessProbability(1000, 1000, few); got != base {
		t.Fatalf("期望样本不足时无回拉, base=%v got=%v", base, got)
	}
}

func TestPlanAssault_资源保留线是硬前置(t *testing.T) {
	sim := NewBattleSimulator(balance.Default().Battle)
	cfg := entity.DefaultAutomationConfig() // reserve 20%

	// 金币 8000、保留 20% → 单场最多动用 1600；
	// 守军 1000 → 出兵 2000、军费 4000，战后剩余会跌破 6400，必须拒绝
	p := testPlayer(10, 8000, 10000)
	_, err := sim.PlanAssault(makeCity(1, 50, 1000, 1), p, cfg, 0.6)
	if !errors.Is(err, entity.ErrReserveBreached) {
		t.Fatalf("期望触及保留线被拒绝, err=%v", err)
	}

	// 守军 300 → 出兵 600、军费 1200 ≤ 1600，放行
	plan, err := sim.PlanAssault(makeCity(2, 50, 300, 1), p, cfg, 0.6)
	if err != nil {
		t.Fatalf("期望闸门内的方案放行, err=%v", err)
	}
	if plan.AllocatedTroops != 600 || plan.EstGoldCost != 1200 {
		t.Fatalf("期望出兵 600 军费 1200, got troops=%d gold=%d", plan.AllocatedTroops, plan.EstGoldCost)
	}
}

func TestPlanAssault_兵力不足整体拒绝(t *testing.T) {
	sim := NewBattleSimulator(balance.Default().Battle)
	cfg := entity.DefaultAutomationConfig()

	// 总兵力都凑不齐守军半数
	p := testPlayer(10, 8000, 100)
	_, err := sim.PlanAssault(makeCity(1, 50, 1000, 1), p, cfg, 0.6)
	if !errors.Is(err, entity.ErrInsufficientTroops) {
		t.Fatalf("期望兵力不足被拒绝, err=%v", err)
	}

	// 兵力够但保留线内可动用量不够
	p = testPlayer(10, 8000, 600)
	_, err = sim.PlanAssault(makeCity(2, 50, 1000, 1), p, cfg, 0.6)
	if !errors.Is(err, entity.ErrReserveBreached) {
		t.Fatalf("期望保留线内兵力不足被拒绝, err=%v", err)
	}
}

func TestSimulate_损兵比例随胜负变化(t *testing.T) {
	sim := NewBattleSimulator(balance.Default().Battle)
	plan := &entity.BattlePlan{
		Target:          makeCity(1, 30, 200, 1),
		AllocatedTroops: 1000,
	}

	// 必胜：损兵 10%，有掉落
	plan.SuccessProb = 1.0
	out := sim.Simulate(plan, 1.0, rand.New(rand.NewSource(1)))
	if !out.Victory {
		t.Fatalf("期望 prob=1 必胜")
	}
	if out.TroopLoss != 100 {
		t.Fatalf("期望胜利损兵 100, got=%d", out.TroopLoss)
	}
	if out.Loot.Gold <= 0 {
		t.Fatalf("期望胜利有金币掉落, got=%d", out.Loot.Gold)
	}

	// 必败：损兵 30%，无掉落
	plan.SuccessProb = 0.0
	out = sim.Simulate(plan, 1.0, rand.New(rand.NewSource(1)))
	if out.Victory {
		t.Fatalf("期望 prob=0 必败")
	}
	if out.TroopLoss != 300 {
		t.Fatalf("期望战败损兵 300, got=%d", out.TroopLoss)
	}
	if out.Loot != (entity.ResourceDelta{}) {
		t.Fatalf("期望战败无掉落, got=%+v", out.Loot)
	}
}
