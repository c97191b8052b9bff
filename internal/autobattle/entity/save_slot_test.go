package entity

import "testing"

func newTestSlot() *SaveSlotEntity {
	p := NewPlayerEntity(1, 10, RoleAttribute{Martial: 80, Intelligence: 70}, NewResourceEntity(8000, 500, 300))
	return NewSaveSlotEntity(p, NewStatisticsEntity(), DefaultAutomationConfig(), 1700000000)
}

func TestUpdateConfig_非法配置被拒绝并保留旧值(t *testing.T) {
	slot := newTestSlot()
	old := slot.Config()

	bad := old
	bad.ReservePercent = 150
	if slot.UpdateConfig(bad) {
		t.Fatalf("期望 reserve_percent=150 被拒绝")
	}
	if slot.Config() != old {
		t.Fatalf("期望拒绝后保留旧配置")
	}

	bad = old
	bad.Aggression = "reckless"
	if slot.UpdateConfig(bad) {
		t.Fatalf("期望未知激进档位被拒绝")
	}

	good := old
	good.Aggression = AggressionAggressive
	good.ReservePercent = 35
	if !slot.UpdateConfig(good) {
		t.Fatalf("期望合法配置被接受")
	}
	if slot.Config().ReservePercent != 35 {
		t.Fatalf("期望新配置生效, got=%d", slot.Config().ReservePercent)
	}
}

func TestBuildPersistSnapshot_只导出脏的部分(t *testing.T) {
	slot := newTestSlot()
	slot.ClearDirty()

	if _, ok := slot.BuildPersistSnapshot(1); ok {
		t.Fatalf("期望无脏数据时不产出快照")
	}

	slot.Player().Resource().Apply(ResourceDelta{Gold: -100})
	snap, ok := slot.BuildPersistSnapshot(2)
	if !ok {
		t.Fatalf("期望账本变脏后产出快照")
	}
	if !snap.SavePlayer || snap.SaveStats {
		t.Fatalf("期望只标记玩家部分, savePlayer=%v saveStats=%v", snap.SavePlayer, snap.SaveStats)
	}
	if snap.Resource.Gold != 7900 {
		t.Fatalf("期望快照携带最新账本, gold=%d", snap.Resource.Gold)
	}
	if snap.Version != 2 {
		t.Fatalf("期望 version=2, got=%d", snap.Version)
	}
}

func TestHydrateSaveSlot_脏配置回退默认档(t *testing.T) {
	slot := newTestSlot()
	snap := slot.BuildFullSnapshot(1)
	snap.Config.MaxBattlesPerHour = 0
	snap.State = AutomationState("limbo")

	restored := HydrateSaveSlotEntity(snap)
	if restored.Config() != DefaultAutomationConfig() {
		t.Fatalf("期望非法配置回退默认档, got=%+v", restored.Config())
	}
	if restored.State() != StateStopped {
		t.Fatalf("期望未知运行态回退 stopped, got=%s", restored.State())
	}
}

func TestTouch_时间只能前进(t *testing.T) {
	slot := newTestSlot()
	slot.ClearDirty()

	slot.Touch(1600000000)
	if slot.LastActiveAt() != 1700000000 {
		t.Fatalf("期望回拨时间被忽略, got=%d", slot.LastActiveAt())
	}
	if slot.Dirty() {
		t.Fatalf("期望忽略回拨时不置脏")
	}

	slot.Touch(1700000100)
	if slot.LastActiveAt() != 1700000100 {
		t.Fatalf("期望时间前进生效, got=%d", slot.LastActiveAt())
	}
}
