package entity

// AutomationState 是挂机控制器的运行态。
type AutomationState string

const (
	StateStopped AutomationState = "stopped"
	StateRunning AutomationState = "running"
	StatePaused  AutomationState = "paused"
)

// SaveSlotEntity 是一个存档位的聚合根：玩家、统计、挂机配置与运行态。
// 同一存档位的所有修改都经由单个 actor 串行处理，实体本身不加锁。
type SaveSlotEntity struct {
	player *PlayerEntity
	stats  *StatisticsEntity
	config AutomationConfig
	state  AutomationState

	lastActiveAt int64 // unix 秒，用于离线补结算
	metaDirty    bool
}

func NewSaveSlotEntity(player *PlayerEntity, stats *StatisticsEntity, config AutomationConfig, now int64) *SaveSlotEntity {
	return &SaveSlotEntity{
		player:       player,
		stats:        stats,
		config:       config,
		state:        StateStopped,
		lastActiveAt: now,
	}
}

func HydrateSaveSlotEntity(s *PlayerPersistSnapshot) *SaveSlotEntity {
	resource := HydrateResourceEntity(s.Resource)
	slot := &SaveSlotEntity{
		player:       HydratePlayerEntity(s.Player, resource),
		stats:        HydrateStatisticsEntity(s.Stats),
		config:       s.Config,
		state:        s.State,
		lastActiveAt: s.LastActiveAt,
	}
	if !slot.config.Validate() {
		slot.config = DefaultAutomationConfig()
	}
	switch slot.state {
	case StateRunning, StatePaused, StateStopped:
	default:
		slot.state = StateStopped
	}
	return slot
}

func (s *SaveSlotEntity) Player() *PlayerEntity    { return s.player }
func (s *SaveSlotEntity) Stats() *StatisticsEntity { return s.stats }
func (s *SaveSlotEntity) Config() AutomationConfig { return s.config }
func (s *SaveSlotEntity) State() AutomationState   { return s.state }
func (s *SaveSlotEntity) LastActiveAt() int64      { return s.lastActiveAt }

// UpdateConfig 替换挂机配置；非法配置直接拒绝并保留旧值。
func (s *SaveSlotEntity) UpdateConfig(c AutomationConfig) bool {
	if !c.Validate() {
		return false
	}
	s.config = c
	s.metaDirty = true
	return true
}

func (s *SaveSlotEntity) SetState(state AutomationState) {
	if s.state == state {
		return
	}
	s.state = state
	s.metaDirty = true
}

func (s *SaveSlotEntity) Touch(now int64) {
	if now <= s.lastActiveAt {
		return
	}
	s.lastActiveAt = now
	s.metaDirty = true
}

func (s *SaveSlotEntity) Dirty() bool {
	if s == nil {
		return false
	}
	return s.metaDirty || s.player.Dirty() || s.stats.Dirty()
}

func (s *SaveSlotEntity) ClearDirty() {
	if s == nil {
		return
	}
	s.metaDirty = false
	s.player.ClearDirty()
	s.stats.ClearDirty()
}

func (s *SaveSlotEntity) BuildPersistSnapshot(version uint64) (*PlayerPersistSnapshot, bool) {
	if s == nil {
		return nil, false
	}

	savePlayer := s.player != nil && s.player.Dirty()
	saveStats := s.stats != nil && s.stats.Dirty()
	saveMeta := s.metaDirty
	if !savePlayer && !saveStats && !saveMeta {
		return nil, false
	}

	snap := &PlayerPersistSnapshot{
		Version:      version,
		SavePlayer:   savePlayer,
		SaveStats:    saveStats,
		SaveMeta:     saveMeta,
		Config:       s.config,
		State:        s.state,
		LastActiveAt: s.lastActiveAt,
	}
	if savePlayer {
		snap.Player = s.player.Snapshot()
		snap.Resource = s.player.Resource().Snapshot()
	}
	if saveStats {
		snap.Stats = s.stats.Snapshot()
	}
	return snap, true
}

// BuildFullSnapshot 无视脏标记导出完整快照，用于首次建档与存档迁移。
func (s *SaveSlotEntity) BuildFullSnapshot(version uint64) *PlayerPersistSnapshot {
	return &PlayerPersistSnapshot{
		Version:      version,
		Player:       s.player.Snapshot(),
		Resource:     s.player.Resource().Snapshot(),
		Stats:        s.stats.Snapshot(),
		Config:       s.config,
		State:        s.state,
		LastActiveAt: s.lastActiveAt,
		SavePlayer:   true,
		SaveStats:    true,
		SaveMeta:     true,
	}
}
