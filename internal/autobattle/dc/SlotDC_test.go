package dc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/autobattle/infra/persistence/memory"
)

func newTestSlot(id entity.PlayerID) *entity.SaveSlotEntity {
	player := entity.NewPlayerEntity(id, 1, entity.RoleAttribute{}, entity.NewResourceEntity(5000, 800, 2000))
	return entity.NewSaveSlotEntity(player, entity.NewStatisticsEntity(), entity.DefaultAutomationConfig(), time.Now().Unix())
}

// waitFor 轮询等待异步写库完成。
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("等待异步落盘超时")
}

func TestSlotDC_Adopt后应异步写入全量快照(t *testing.T) {
	repo := memory.NewPlayerRepo()
	d := NewSlotDC(repo)
	defer func() { _ = d.Close(context.Background()) }()

	d.Adopt(1, newTestSlot(1))

	waitFor(t, func() bool {
		_, err := repo.LoadSlot(context.Background(), 1)
		return err == nil
	})

	got, err := repo.LoadSlot(context.Background(), 1)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if got.Resource.Gold != 5000 || got.State != entity.StateStopped {
		t.Fatalf("全量快照内容不符: gold=%d state=%s", got.Resource.Gold, got.State)
	}
}

func TestSlotDC_Flush只在脏时入队且清脏(t *testing.T) {
	repo := memory.NewPlayerRepo()
	d := NewSlotDC(repo)
	defer func() { _ = d.Close(context.Background()) }()

	d.Adopt(1, newTestSlot(1))
	waitFor(t, func() bool {
		_, err := repo.LoadSlot(context.Background(), 1)
		return err == nil
	})
	first, _ := repo.LoadSlot(context.Background(), 1)

	// 未脏：Flush 不应产生新版本
	d.Flush(context.Background())
	time.Sleep(50 * time.Millisecond)
	same, _ := repo.LoadSlot(context.Background(), 1)
	if same.Version != first.Version {
		t.Fatalf("未脏不应写库: version %d -> %d", first.Version, same.Version)
	}

	d.Entity().Player().Resource().Apply(entity.ResourceDelta{Gold: 100})
	if !d.IsDirty() {
		t.Fatalf("资源变动后应标脏")
	}
	d.Flush(context.Background())
	if d.IsDirty() {
		t.Fatalf("Flush 后实体应清脏")
	}

	waitFor(t, func() bool {
		got, err := repo.LoadSlot(context.Background(), 1)
		return err == nil && got.Resource.Gold == 5100
	})
}

type flakyRepo struct {
	mu    sync.Mutex
	fails int
	saved []*entity.PlayerPersistSnapshot
}

func (r *flakyRepo) LoadSlot(ctx context.Context, id entity.PlayerID) (*entity.PlayerPersistSnapshot, error) {
	return nil, entity.ErrPlayerNotFound
}

func (r *flakyRepo) SaveSnapshot(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fails > 0 {
		r.fails--
		return errors.New("db down")
	}
	r.saved = append(r.saved, s)
	return nil
}

func (r *flakyRepo) savedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func TestSlotDC_写库失败应重排重试(t *testing.T) {
	repo := &flakyRepo{fails: 2}
	d := NewSlotDC(repo)
	defer func() { _ = d.Close(context.Background()) }()

	d.Adopt(1, newTestSlot(1))

	waitFor(t, func() bool { return repo.savedCount() == 1 })
	if repo.saved[0].Version != 1 {
		t.Fatalf("重试后落盘的应是同一版本快照，实际 version=%d", repo.saved[0].Version)
	}
}
