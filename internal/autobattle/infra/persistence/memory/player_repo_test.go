package memory

import (
	"context"
	"errors"
	"testing"

	"IdleKingdoms/internal/autobattle/entity"
)

func fullSnapshot(version uint64) *entity.PlayerPersistSnapshot {
	return &entity.PlayerPersistSnapshot{
		Version: version,
		Player: entity.PlayerSnapshot{
			PlayerID: 1,
			Level:    3,
			Cities:   []entity.CityID{101},
		},
		Resource:   entity.ResourceSnapshot{Gold: 5000, Troops: 800, Food: 2000},
		Stats:      entity.StatisticsSnapshot{BattlesCompleted: 4, Victories: 3, Defeats: 1},
		Config:     entity.DefaultAutomationConfig(),
		State:      entity.StateRunning,
		SavePlayer: true,
		SaveStats:  true,
		SaveMeta:   true,
	}
}

func TestMemoryRepo_不存在的存档应返回未找到(t *testing.T) {
	repo := NewPlayerRepo()

	_, err := repo.LoadSlot(context.Background(), 99)
	if !errors.Is(err, entity.ErrPlayerNotFound) {
		t.Fatalf("期望 ErrPlayerNotFound，实际 %v", err)
	}
}

func TestMemoryRepo_分段保存只覆盖标脏的段(t *testing.T) {
	repo := NewPlayerRepo()
	ctx := context.Background()

	if err := repo.SaveSnapshot(ctx, 1, fullSnapshot(1)); err != nil {
		t.Fatalf("首次保存失败: %v", err)
	}

	// 只标脏 stats 段，player 段内容被改动但不应写入
	partial := fullSnapshot(2)
	partial.SavePlayer = false
	partial.SaveMeta = false
	partial.Resource.Gold = 1
	partial.Stats.Victories = 9

	if err := repo.SaveSnapshot(ctx, 1, partial); err != nil {
		t.Fatalf("分段保存失败: %v", err)
	}

	got, err := repo.LoadSlot(ctx, 1)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if got.Resource.Gold != 5000 {
		t.Fatalf("未标脏的 player 段被覆盖: gold=%d", got.Resource.Gold)
	}
	if got.Stats.Victories != 9 {
		t.Fatalf("标脏的 stats 段未生效: victories=%d", got.Stats.Victories)
	}
	if got.Version != 2 {
		t.Fatalf("version 应跟随最新快照，实际 %d", got.Version)
	}
}

func TestMemoryRepo_读取返回副本(t *testing.T) {
	repo := NewPlayerRepo()
	ctx := context.Background()

	if err := repo.SaveSnapshot(ctx, 1, fullSnapshot(1)); err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	first, _ := repo.LoadSlot(ctx, 1)
	first.Resource.Gold = -1

	second, _ := repo.LoadSlot(ctx, 1)
	if second.Resource.Gold != 5000 {
		t.Fatalf("修改返回值不应影响仓储内数据: gold=%d", second.Resource.Gold)
	}
}
