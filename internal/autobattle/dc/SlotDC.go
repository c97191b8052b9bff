package dc

import (
	"context"
	"sync"
	"time"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/autobattle/service/port"
)

type PlayerID = entity.PlayerID

// SlotDC 负责单个存档位的落盘节奏：脏检查 + 同步快照 + 异步写库。
// 持久化粒度是“脏段整段保存”（player/stats/meta 各一段），不是列级更新。
// 状态修改必须统一走 actor 命令；绕过 dc 的写会被更高 version 的快照覆盖。
type SlotDC struct {
	repo       port.PlayerRepository
	playerID   PlayerID
	entity     *entity.SaveSlotEntity
	flushEvery time.Duration

	mu      sync.Mutex
	pending *entity.PlayerPersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewSlotDC(repo port.PlayerRepository) *SlotDC {
	d := &SlotDC{
		repo:       repo,
		flushEvery: 3000 * time.Millisecond,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *SlotDC) Load(ctx context.Context, playerID PlayerID) (*entity.SaveSlotEntity, error) {
	snap, err := d.repo.LoadSlot(ctx, playerID)
	if err != nil {
		return nil, err
	}
	d.playerID = playerID
	d.entity = entity.HydrateSaveSlotEntity(snap)
	d.mu.Lock()
	if snap.Version > d.version {
		d.version = snap.Version
	}
	d.mu.Unlock()
	return d.entity, nil
}

// Adopt 接管一个新建的存档位（首次建档，库里还没有行）。
func (d *SlotDC) Adopt(playerID PlayerID, slot *entity.SaveSlotEntity) {
	d.playerID = playerID
	d.entity = slot
	d.enqueueLatest(slot.BuildFullSnapshot(d.nextVersion()))
}

func (d *SlotDC) Flush(ctx context.Context) {
	_ = ctx
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

func (d *SlotDC) IsDirty() bool {
	if d.entity == nil {
		return false
	}
	return d.entity.Dirty()
}

func (d *SlotDC) Entity() *entity.SaveSlotEntity {
	return d.entity
}

func (d *SlotDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *SlotDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *SlotDC) nextVersion() uint64 {
	d.mu.Lock()
	d.version++
	v := d.version
	d.mu.Unlock()
	return v
}

func (d *SlotDC) buildNextSnapshot() (*entity.PlayerPersistSnapshot, bool) {
	if d.entity == nil {
		return nil, false
	}
	s, ok := d.entity.BuildPersistSnapshot(d.nextVersion())
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *SlotDC) enqueueLatest(s *entity.PlayerPersistSnapshot) {
	if s == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *SlotDC) popPending() *entity.PlayerPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *SlotDC) requeueOnError(s *entity.PlayerPersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *SlotDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *SlotDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.repo.SaveSnapshot(context.TODO(), d.playerID, s); err != nil {
			// 写库失败时重排当前快照；若已有更新快照，会被更高 version 覆盖。
			d.requeueOnError(s)
			time.Sleep(200 * time.Millisecond)
			continue
		}
	}
}
