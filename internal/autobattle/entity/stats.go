package entity

// StatisticsEntity 累计战斗与连胜/连败计数。
// 不变式：consecutiveVictories 和 consecutiveDefeats 互斥，胜场清空败方连击，反之亦然。
type StatisticsEntity struct {
	battlesCompleted     int
	victories            int
	defeats              int
	consecutiveVictories int
	consecutiveDefeats   int
	dirty                bool
}

type StatisticsSnapshot struct {
	BattlesCompleted     int
	Victories            int
	Defeats              int
	ConsecutiveVictories int
	ConsecutiveDefeats   int
}

func NewStatisticsEntity() *StatisticsEntity {
	return &StatisticsEntity{}
}

// HydrateStatisticsEntity 从持久化数据恢复；负数计数视为脏数据钳到 0。
func HydrateStatisticsEntity(s StatisticsSnapshot) *StatisticsEntity {
	e := &StatisticsEntity{
		battlesCompleted:     max(0, s.BattlesCompleted),
		victories:            max(0, s.Victories),
		defeats:              max(0, s.Defeats),
		consecutiveVictories: max(0, s.ConsecutiveVictories),
		consecutiveDefeats:   max(0, s.ConsecutiveDefeats),
	}
	// 互斥不变式：两个连击同时非零时只保留连胜
	if e.consecutiveVictories > 0 && e.consecutiveDefeats > 0 {
		e.consecutiveDefeats = 0
	}
	return e
}

func (s *StatisticsEntity) BattlesCompleted() int     { return s.battlesCompleted }
func (s *StatisticsEntity) Victories() int            { return s.victories }
func (s *StatisticsEntity) Defeats() int              { return s.defeats }
func (s *StatisticsEntity) ConsecutiveVictories() int { return s.consecutiveVictories }
func (s *StatisticsEntity) ConsecutiveDefeats() int   { return s.consecutiveDefeats }

func (s *StatisticsEntity) RecordVictory() {
	s.battlesCompleted++
	s.victories++
	s.consecutiveVictories++
	s.consecutiveDefeats = 0
	s.dirty = true
}

func (s *StatisticsEntity) RecordDefeat() {
	s.battlesCompleted++
	s.defeats++
	s.consecutiveDefeats++
	s.consecutiveVictories = 0
	s.dirty = true
}

// WinRate 返回 [0,1] 的累计胜率；无战斗时返回 0。
func (s *StatisticsEntity) WinRate() float64 {
	if s.battlesCompleted == 0 {
		return 0
	}
	return float64(s.victories) / float64(s.battlesCompleted)
}

// Clone 返回独立副本，离线结算在副本上推进，不影响在线状态。
func (s *StatisticsEntity) Clone() *StatisticsEntity {
	c := *s
	c.dirty = false
	return &c
}

// Overwrite 用结算后的快照整体覆盖计数并置脏（离线合并用）。
func (s *StatisticsEntity) Overwrite(snap StatisticsSnapshot) {
	restored := HydrateStatisticsEntity(snap)
	restored.dirty = true
	*s = *restored
}

func (s *StatisticsEntity) Snapshot() StatisticsSnapshot {
	return StatisticsSnapshot{
		BattlesCompleted:     s.battlesCompleted,
		Victories:            s.victories,
		Defeats:              s.defeats,
		ConsecutiveVictories: s.consecutiveVictories,
		ConsecutiveDefeats:   s.consecutiveDefeats,
	}
}

func (s *StatisticsEntity) Dirty() bool {
	if s == nil {
		return false
	}
	return s.dirty
}

func (s *StatisticsEntity) ClearDirty() {
	if s == nil {
		return
	}
	s.dirty = false
}
