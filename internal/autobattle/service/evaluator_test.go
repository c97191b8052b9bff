package service

import (
	"testing"

	"IdleKingdoms/internal/autobattle/entity"
)

func testPlayer(level, gold, troops int) *entity.PlayerEntity {
	attr := entity.RoleAttribute{Martial: 80, Intelligence: 70, Governance: 60, Politics: 50, Charisma: 40, Destiny: 30}
	return entity.NewPlayerEntity(1, level, attr, entity.NewResourceEntity(gold, troops, 500))
}

func makeCity(id int, difficulty, garrison, unlock int) entity.CityTarget {
	return entity.CityTarget{
		ID:          entity.CityID(id),
		Name:        "城",
		Tier:        entity.TierSmall,
		Difficulty:  difficulty,
		Garrison:    garrison,
		UnlockLevel: unlock,
		Yield:       entity.ResourceDelta{Gold: 100, Troops: 10, Food: 50},
	}
}

func TestEvaluate_固定战力下难度越高分越低(t *testing.T) {
	e := NewTargetEvaluator()
	p := testPlayer(10, 8000, 1000)

	prev := -1.0
	for d := 90; d >= 10; d -= 10 {
		score := e.Evaluate(makeCity(d, d, 300, 1), p)
		if score < 0 {
			t.Fatalf("期望分数 ≥ 0, got=%v", score)
		}
		if prev >= 0 && score <= prev {
			t.Fatalf("期望难度下降分数严格上升, difficulty=%d score=%v prev=%v", d, score, prev)
		}
		prev = score
	}
}

func TestSelectOptimalTarget_空候选返回无目标(t *testing.T) {
	e := NewTargetEvaluator()
	p := testPlayer(10, 8000, 1000)

	if _, ok := e.SelectOptimalTarget(nil, p, entity.AggressionBalanced); ok {
		t.Fatalf("期望空候选返回无目标")
	}
	if _, ok := e.SelectOptimalTarget([]entity.CityTarget{}, p, entity.AggressionBalanced); ok {
		t.Fatalf("期望空切片返回无目标")
	}
}

func TestSelectOptimalTarget_过滤未解锁与已拥有(t *testing.T) {
	e := NewTargetEvaluator()
	p := testPlayer(5, 8000, 1000)

	locked := makeCity(1, 10, 100, 20)
	owned := makeCity(2, 10, 100, 1)
	open := makeCity(3, 50, 500, 1)
	p.AddCity(owned.ID)

	got, ok := e.SelectOptimalTarget([]entity.CityTarget{locked, owned, open}, p, entity.AggressionBalanced)
	if !ok || got.ID != open.ID {
		t.Fatalf("期望只剩可打目标 3, ok=%v got=%v", ok, got.ID)
	}

	// 全部不可打时返回无目标
	if _, ok := e.SelectOptimalTarget([]entity.CityTarget{locked, owned}, p, entity.AggressionBalanced); ok {
		t.Fatalf("期望无可打目标")
	}
}

func TestSelectOptimalTarget_保守档挑最低难度(t *testing.T) {
	e := NewTargetEvaluator()
	p := testPlayer(10, 8000, 1000)

	easy := makeCity(1, 15, 200, 1)
	hard := makeCity(2, 80, 200, 1)
	// 高难度目标给夸张产出，保守档也不该被诱惑
	hard.Yield = entity.ResourceDelta{Gold: 100000}

	got, ok := e.SelectOptimalTarget([]entity.CityTarget{hard, easy}, p, entity.AggressionConservative)
	if !ok || got.ID != easy.ID {
		t.Fatalf("期望保守档选择最低难度目标, got=%v", got.ID)
	}
}

func TestSelectOptimalTarget_激进档在战力压制时偏向高难度(t *testing.T) {
	e := NewTargetEvaluator()
	// 战力拉满，确保对两个目标都构成压制
	p := testPlayer(50, 100000, 20000)

	easy := makeCity(1, 10, 100, 1)
	hard := makeCity(2, 70, 200, 1)

	got, ok := e.SelectOptimalTarget([]entity.CityTarget{easy, hard}, p, entity.AggressionAggressive)
	if !ok || got.ID != hard.ID {
		t.Fatalf("期望激进档选择高难度目标, got=%v", got.ID)
	}
}
