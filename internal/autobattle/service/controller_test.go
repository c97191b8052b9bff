package service

import (
	"errors"
	"math/rand"
	"testing"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/balance"
)

type fakeCatalog struct {
	cities []entity.CityTarget
}

func (f *fakeCatalog) ByID(id entity.CityID) (entity.CityTarget, bool) {
	for _, c := range f.cities {
		if c.ID == id {
			return c, true
		}
	}
	return entity.CityTarget{}, false
}

func (f *fakeCatalog) All() []entity.CityTarget { return f.cities }

func (f *fakeCatalog) EligibleFor(level int) []entity.CityTarget {
	out := make([]entity.CityTarget, 0, len(f.cities))
	for _, c := range f.cities {
		if c.Unlocked(level) {
			out = append(out, c)
		}
	}
	return out
}

type fakeNotifier struct {
	kinds []entity.EventKind
}

func (f *fakeNotifier) Notify(_ entity.PlayerID, kind entity.EventKind, _ any) {
	f.kinds = append(f.kinds, kind)
}

func (f *fakeNotifier) has(kind entity.EventKind) bool {
	for _, k := range f.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

type fakeConfigSource struct {
	conf balance.Config
}

func (f *fakeConfigSource) Balance() balance.Config { return f.conf }

func newTestController(gold, troops int) (*AutomationController, *fakeNotifier) {
	p := entity.NewPlayerEntity(1, 10,
		entity.RoleAttribute{Martial: 80, Intelligence: 70, Governance: 60, Politics: 50, Charisma: 40, Destiny: 30},
		entity.NewResourceEntity(gold, troops, 500))
	slot := entity.NewSaveSlotEntity(p, entity.NewStatisticsEntity(), entity.DefaultAutomationConfig(), 1700000000)

	notifier := &fakeNotifier{}
	ctrl := NewAutomationController(
		slot,
		&fakeCatalog{cities: offlineCatalog()},
		notifier,
		&fakeConfigSource{conf: balance.Default()},
		rand.New(rand.NewSource(17)),
	)
	return ctrl, notifier
}

func TestTick_未运行时静默跳过(t *testing.T) {
	ctrl, _ := newTestController(50000, 2000)

	out, err := ctrl.Tick(1700003600)
	if out != nil || err != nil {
		t.Fatalf("期望 Stopped 状态 tick 无动作, out=%v err=%v", out, err)
	}
	if ctrl.Slot().Stats().BattlesCompleted() != 0 {
		t.Fatalf("期望无状态变化")
	}
}

func TestTick_运行时完成一场战斗并外发事件(t *testing.T) {
	ctrl, notifier := newTestController(50000, 2000)
	ctrl.Start()

	goldBefore := ctrl.Slot().Player().Resource().Gold()
	out, err := ctrl.Tick(1700003600)
	if err != nil {
		t.Fatalf("期望 tick 成功, err=%v", err)
	}
	if out == nil {
		t.Fatalf("期望产出战斗结果")
	}
	if ctrl.Slot().Stats().BattlesCompleted() != 1 {
		t.Fatalf("期望统计入账, got=%d", ctrl.Slot().Stats().BattlesCompleted())
	}
	if ctrl.Slot().Player().Resource().Gold() == goldBefore && !out.Victory {
		t.Fatalf("期望军费已扣除")
	}
	if !notifier.has(entity.EventBattleStarted) || !notifier.has(entity.EventBattleCompleted) {
		t.Fatalf("期望外发开战与战毕事件, got=%v", notifier.kinds)
	}
	if ctrl.Slot().LastActiveAt() != 1700003600 {
		t.Fatalf("期望活跃时间刷新")
	}
}

func TestTick_暂停后是幂等空操作(t *testing.T) {
	ctrl, _ := newTestController(50000, 2000)
	ctrl.Start()
	ctrl.Pause("玩家接管")

	statsBefore := ctrl.Slot().Stats().Snapshot()
	resBefore := ctrl.Slot().Player().Resource().Snapshot()

	for i := 0; i < 3; i++ {
		out, err := ctrl.Tick(1700003600)
		if out != nil || err != nil {
			t.Fatalf("期望暂停期间 tick 无动作, out=%v err=%v", out, err)
		}
	}
	if statsBefore != ctrl.Slot().Stats().Snapshot() || resBefore != ctrl.Slot().Player().Resource().Snapshot() {
		t.Fatalf("期望暂停期间状态零变化")
	}

	// 恢复后继续出兵
	if err := ctrl.Resume(); err != nil {
		t.Fatalf("期望从 Paused 恢复成功, err=%v", err)
	}
	if out, _ := ctrl.Tick(1700007200); out == nil {
		t.Fatalf("期望恢复后 tick 恢复出兵")
	}
}

func TestResume_只能从暂停态恢复(t *testing.T) {
	ctrl, _ := newTestController(50000, 2000)

	if err := ctrl.Resume(); !errors.Is(err, entity.ErrAutomationNotActive) {
		t.Fatalf("期望 Stopped 态 Resume 被拒绝, err=%v", err)
	}
	ctrl.Start()
	if err := ctrl.Resume(); !errors.Is(err, entity.ErrAutomationNotActive) {
		t.Fatalf("期望 Running 态 Resume 被拒绝, err=%v", err)
	}
}

func TestStop_任意状态可停并清空在途计数(t *testing.T) {
	ctrl, notifier := newTestController(50000, 2000)
	ctrl.Start()
	ctrl.deferredTicks = 3
	ctrl.Stop()

	if ctrl.Slot().State() != entity.StateStopped {
		t.Fatalf("期望进入 Stopped, got=%s", ctrl.Slot().State())
	}
	if ctrl.deferredTicks != 0 || ctrl.activeBattles != 0 {
		t.Fatalf("期望在途计数清零")
	}
	if !notifier.has(entity.EventStateChanged) {
		t.Fatalf("期望外发状态变更事件")
	}
}

func TestUpdateConfig_非法配置被拒绝并保留旧值(t *testing.T) {
	ctrl, _ := newTestController(50000, 2000)
	old := ctrl.Slot().Config()

	bad := old
	bad.ReservePercent = 101
	if err := ctrl.UpdateConfig(bad); !errors.Is(err, entity.ErrInvalidConfig) {
		t.Fatalf("期望非法配置返回 ErrInvalidConfig, err=%v", err)
	}
	if ctrl.Slot().Config() != old {
		t.Fatalf("期望旧配置保留")
	}
}

func TestTick_超出并发预算延期不丢弃(t *testing.T) {
	ctrl, _ := newTestController(50000, 2000)
	ctrl.Start()

	// 人为占满并发预算
	ctrl.activeBattles = ctrl.Slot().Config().MaxSimultaneousBattles
	out, err := ctrl.Tick(1700003600)
	if out != nil || err != nil {
		t.Fatalf("期望超预算 tick 被延期, out=%v err=%v", out, err)
	}
	if ctrl.deferredTicks != 1 {
		t.Fatalf("期望延期计数 +1, got=%d", ctrl.deferredTicks)
	}

	// 预算释放后，延期的 tick 在下个周期补跑
	ctrl.activeBattles = 0
	cfg := ctrl.Slot().Config()
	cfg.MaxSimultaneousBattles = 2
	if err := ctrl.UpdateConfig(cfg); err != nil {
		t.Fatalf("期望调大并发预算成功, err=%v", err)
	}
	if _, err := ctrl.Tick(1700003700); err != nil {
		t.Fatalf("期望补跑成功, err=%v", err)
	}
	if ctrl.deferredTicks != 0 {
		t.Fatalf("期望延期计数清零, got=%d", ctrl.deferredTicks)
	}
	if ctrl.Slot().Stats().BattlesCompleted() != 2 {
		t.Fatalf("期望本周期补跑一场, got=%d", ctrl.Slot().Stats().BattlesCompleted())
	}
}

func TestSettleOffline_时间差不足一小时只刷新活跃时间(t *testing.T) {
	ctrl, notifier := newTestController(50000, 2000)

	if got := ctrl.SettleOffline(1700000100); got != nil {
		t.Fatalf("期望不足一小时不结算, got=%+v", got)
	}
	if ctrl.Slot().LastActiveAt() != 1700000100 {
		t.Fatalf("期望活跃时间刷新")
	}
	if notifier.has(entity.EventOfflineSettled) {
		t.Fatalf("期望不外发离线结算事件")
	}
}

func TestSettleOffline_按时间差结算并合并(t *testing.T) {
	ctrl, notifier := newTestController(50000, 2000)

	got := ctrl.SettleOffline(1700000000 + 4*3600)
	if got == nil {
		t.Fatalf("期望产出离线结算结果")
	}
	if got.HoursSimulated != 4 {
		t.Fatalf("期望结算 4 小时, got=%d", got.HoursSimulated)
	}
	if ctrl.Slot().Stats().BattlesCompleted() != got.BattlesFought {
		t.Fatalf("期望统计合并进存档, slot=%d result=%d",
			ctrl.Slot().Stats().BattlesCompleted(), got.BattlesFought)
	}
	if !notifier.has(entity.EventOfflineSettled) {
		t.Fatalf("期望外发离线结算事件")
	}
}
