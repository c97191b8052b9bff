package service

import (
	"testing"

	"IdleKingdoms/internal/shared/gameconfig/balance"
)

func TestScalingFactor_单调不减且有界(t *testing.T) {
	s := NewDifficultyScaler(balance.Default().Scaling)

	prev := 0.0
	for _, n := range []int{0, 1, 5, 20, 100, 500, 2000, 100000} {
		f := s.ScalingFactor(n)
		if f < 1.0 || f > 10.0 {
			t.Fatalf("期望 scalingFactor 落在 [1,10], n=%d got=%v", n, f)
		}
		if f < prev {
			t.Fatalf("期望单调不减, n=%d got=%v prev=%v", n, f, prev)
		}
		prev = f
	}

	if s.ScalingFactor(-5) != 1.0 {
		t.Fatalf("期望负数战斗数按 0 处理")
	}
}

func TestRewardScaling_单调不减且有界(t *testing.T) {
	s := NewDifficultyScaler(balance.Default().Scaling)

	prev := 0.0
	for _, n := range []int{0, 10, 100, 1000, 1000000} {
		f := s.RewardScaling(n)
		if f < 1.0 || f > 3.0 {
			t.Fatalf("期望 rewardScaling 落在 [1,3], n=%d got=%v", n, f)
		}
		if f < prev {
			t.Fatalf("期望单调不减, n=%d got=%v prev=%v", n, f, prev)
		}
		prev = f
	}
}

func TestStreakModifier_连胜抬高连败压低(t *testing.T) {
	s := NewDifficultyScaler(balance.Default().Scaling)

	neutral := s.StreakModifier(0, 0)
	if got := s.StreakModifier(3, 0); got <= neutral {
		t.Fatalf("期望连胜修正高于中立, got=%v neutral=%v", got, neutral)
	}
	if got := s.StreakModifier(0, 3); got >= neutral {
		t.Fatalf("期望连败修正低于中立, got=%v neutral=%v", got, neutral)
	}

	// 中立值严格位于两个极端之间
	allWin := s.StreakModifier(100, 0)
	allLose := s.StreakModifier(0, 100)
	if !(allLose < neutral && neutral < allWin) {
		t.Fatalf("期望 allLose < neutral < allWin, got %v %v %v", allLose, neutral, allWin)
	}

	// 超过封顶场数后不再增长
	if s.StreakModifier(100, 0) != s.StreakModifier(8, 0) {
		t.Fatalf("期望连胜修正在封顶场数后不再增长")
	}
}

func TestEnemyPowerScaling_不低于基础战力(t *testing.T) {
	s := NewDifficultyScaler(balance.Default().Scaling)

	base := 500.0
	prev := 0.0
	for _, n := range []int{0, 10, 100, 1000} {
		p := s.EnemyPowerScaling(base, n)
		if p < base {
			t.Fatalf("期望放大后不低于基础战力, n=%d got=%v", n, p)
		}
		if p < prev {
			t.Fatalf("期望随战斗数单调不减, n=%d got=%v prev=%v", n, p, prev)
		}
		prev = p
	}
}
