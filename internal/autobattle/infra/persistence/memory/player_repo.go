package memory

import (
	"context"
	"sync"

	"IdleKingdoms/internal/autobattle/entity"
)

// PlayerRepo 是进程内存档仓储，开发与测试环境用。
type PlayerRepo struct {
	mu    sync.RWMutex
	slots map[entity.PlayerID]*entity.PlayerPersistSnapshot
}

func NewPlayerRepo() *PlayerRepo {
	return &PlayerRepo{slots: make(map[entity.PlayerID]*entity.PlayerPersistSnapshot)}
}

func (r *PlayerRepo) LoadSlot(ctx context.Context, id entity.PlayerID) (*entity.PlayerPersistSnapshot, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slots[id]
	if !ok {
		return nil, entity.ErrPlayerNotFound
	}
	clone := *s
	return &clone, nil
}

// SaveSnapshot 分段合并：只覆盖快照里标脏的部分。
func (r *PlayerRepo) SaveSnapshot(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.slots[id]
	if !ok {
		clone := *s
		r.slots[id] = &clone
		return nil
	}

	cur.Version = s.Version
	if s.SavePlayer {
		cur.Player = s.Player
		cur.Resource = s.Resource
		cur.SavePlayer = true
	}
	if s.SaveStats {
		cur.Stats = s.Stats
		cur.SaveStats = true
	}
	if s.SaveMeta {
		cur.Config = s.Config
		cur.State = s.State
		cur.LastActiveAt = s.LastActiveAt
		cur.SaveMeta = true
	}
	return nil
}
