package service

import (
	"math/rand"
	"reflect"
	"testing"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/balance"
)

func offlineCatalog() []entity.CityTarget {
	return []entity.CityTarget{
		makeCity(1, 10, 100, 1),
		makeCity(2, 25, 200, 1),
		makeCity(3, 45, 400, 5),
	}
}

func TestCalculate_超过上限按上限结算(t *testing.T) {
	calc := NewOfflineCalculator(balance.Default())
	cfg := entity.DefaultAutomationConfig()
	cfg.MaxOfflineHours = 5

	run := func(hours int) *entity.OfflineProgressResult {
		p := testPlayer(10, 50000, 2000)
		return calc.Calculate(p, entity.NewStatisticsEntity(), cfg, offlineCatalog(), hours, rand.New(rand.NewSource(42)))
	}

	capped := run(5)
	over := run(50)
	if !reflect.DeepEqual(capped, over) {
		t.Fatalf("期望超出上限与恰好上限结果一致:\ncapped=%+v\nover=%+v", capped, over)
	}
	if over.HoursSimulated != 5 {
		t.Fatalf("期望按 5 小时结算, got=%d", over.HoursSimulated)
	}

	if got := run(-3); got.BattlesFought != 0 || got.HoursSimulated != 0 {
		t.Fatalf("期望负时长结算为空, got=%+v", got)
	}
}

func TestCalculate_固定种子可复现(t *testing.T) {
	calc := NewOfflineCalculator(balance.Default())
	cfg := entity.DefaultAutomationConfig()

	run := func() *entity.OfflineProgressResult {
		p := testPlayer(10, 50000, 2000)
		return calc.Calculate(p, entity.NewStatisticsEntity(), cfg, offlineCatalog(), 8, rand.New(rand.NewSource(7)))
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Fatalf("期望固定种子两次结算完全一致")
	}
}

func TestCalculate_不触碰在线状态(t *testing.T) {
	calc := NewOfflineCalculator(balance.Default())
	p := testPlayer(10, 50000, 2000)
	stats := entity.NewStatisticsEntity()
	stats.RecordVictory()

	before := p.Snapshot()
	beforeRes := p.Resource().Snapshot()
	beforeStats := stats.Snapshot()

	calc.Calculate(p, stats, entity.DefaultAutomationConfig(), offlineCatalog(), 12, rand.New(rand.NewSource(3)))

	if !reflect.DeepEqual(before, p.Snapshot()) || beforeRes != p.Resource().Snapshot() {
		t.Fatalf("期望结算不修改传入的玩家")
	}
	if beforeStats != stats.Snapshot() {
		t.Fatalf("期望结算不修改传入的统计")
	}
}

func TestCalculate_零战绩玩家离线四小时有产出(t *testing.T) {
	calc := NewOfflineCalculator(balance.Default())
	p := testPlayer(10, 50000, 2000)

	got := calc.Calculate(p, entity.NewStatisticsEntity(), entity.DefaultAutomationConfig(), offlineCatalog(), 4, rand.New(rand.NewSource(11)))

	if got.BattlesFought <= 0 {
		t.Fatalf("期望有战斗发生, got=%d", got.BattlesFought)
	}
	if got.ResourcesGained.Gold <= 0 {
		t.Fatalf("期望有金币入账, got=%d", got.ResourcesGained.Gold)
	}
	if got.Victories+got.Defeats != got.BattlesFought {
		t.Fatalf("期望胜负之和等于总场次, v=%d d=%d total=%d", got.Victories, got.Defeats, got.BattlesFought)
	}
	if got.CitiesConquered == nil || got.Events == nil {
		t.Fatalf("期望结果字段全部就位")
	}
	if got.ScalingApplied < 1.0 || got.ScalingApplied > 10.0 {
		t.Fatalf("期望难度系数落在 [1,10], got=%v", got.ScalingApplied)
	}
	if got.WinRate < 0 || got.WinRate > 1 {
		t.Fatalf("期望胜率落在 [0,1], got=%v", got.WinRate)
	}
}

func TestCalculate_衰减起始后每小时产出严格变低(t *testing.T) {
	calc := NewOfflineCalculator(balance.Default())

	cfg := entity.DefaultAutomationConfig()
	cfg.DiminishOnsetHour = 2
	cfg.DiminishRate = 0.25
	cfg.MinDiminishFactor = 0.2
	cfg.MaxOfflineHours = 4

	// 无兵出征，收益只来自已拥有城池的固定产出，逐小时可精确核对
	p := testPlayer(10, 50000, 0)
	rich := makeCity(9, 10, 100, 1)
	rich.Yield = entity.ResourceDelta{Gold: 1000}
	p.AddCity(rich.ID)

	got := calc.Calculate(p, entity.NewStatisticsEntity(), cfg, []entity.CityTarget{rich}, 4, rand.New(rand.NewSource(1)))

	// h0=1000 h1=1000 h2=750 h3=500
	if got.ResourcesGained.Gold != 3250 {
		t.Fatalf("期望四小时产出 3250, got=%d", got.ResourcesGained.Gold)
	}
	if got.BattlesFought != 0 {
		t.Fatalf("期望无兵时零战斗, got=%d", got.BattlesFought)
	}
}

func TestDiminishFactor_线性衰减有下限(t *testing.T) {
	calc := NewOfflineCalculator(balance.Default())
	cfg := entity.DefaultAutomationConfig() // onset 8, rate 0.08, floor 0.2

	if f := calc.diminishFactor(0, cfg); f != 1 {
		t.Fatalf("期望起始前无衰减, got=%v", f)
	}
	if f := calc.diminishFactor(7, cfg); f != 1 {
		t.Fatalf("期望第 7 小时仍无衰减, got=%v", f)
	}

	prev := 1.0
	for h := 8; h < 24; h++ {
		f := calc.diminishFactor(h, cfg)
		if f > prev {
			t.Fatalf("期望衰减因子单调不增, h=%d got=%v prev=%v", h, f, prev)
		}
		if f < 0.2 {
			t.Fatalf("期望衰减不低于下限 0.2, h=%d got=%v", h, f)
		}
		prev = f
	}
	if calc.diminishFactor(100, cfg) != 0.2 {
		t.Fatalf("期望长时间后贴住下限")
	}
}

func TestApplyOfflineResult_合并进存档(t *testing.T) {
	slot := entityTestSlot()
	result := &entity.OfflineProgressResult{
		ResourcesGained: entity.ResourceDelta{Gold: 500, Troops: 100},
		ResourcesLost:   entity.ResourceDelta{Gold: 200, Troops: 50},
		CitiesConquered: []entity.CityID{7},
		Stats: entity.StatisticsSnapshot{
			BattlesCompleted: 10, Victories: 7, Defeats: 3, ConsecutiveVictories: 2,
		},
	}

	ApplyOfflineResult(slot, result)

	if slot.Player().Resource().Gold() != 8300 {
		t.Fatalf("期望金币净增 300, got=%d", slot.Player().Resource().Gold())
	}
	if !slot.Player().OwnsCity(7) {
		t.Fatalf("期望攻占的城池入账")
	}
	if slot.Stats().BattlesCompleted() != 10 || slot.Stats().ConsecutiveVictories() != 2 {
		t.Fatalf("期望统计被覆盖, battles=%d", slot.Stats().BattlesCompleted())
	}
	if !slot.Dirty() {
		t.Fatalf("期望合并后存档置脏")
	}
}

func entityTestSlot() *entity.SaveSlotEntity {
	p := entity.NewPlayerEntity(1, 10, entity.RoleAttribute{Martial: 80}, entity.NewResourceEntity(8000, 500, 300))
	return entity.NewSaveSlotEntity(p, entity.NewStatisticsEntity(), entity.DefaultAutomationConfig(), 1700000000)
}
