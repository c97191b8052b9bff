package entity

import "testing"

func TestRecord_连胜连败互斥(t *testing.T) {
	s := NewStatisticsEntity()
	s.RecordVictory()
	s.RecordVictory()
	if s.ConsecutiveVictories() != 2 || s.ConsecutiveDefeats() != 0 {
		t.Fatalf("期望连胜=2 连败=0, got v=%d d=%d", s.ConsecutiveVictories(), s.ConsecutiveDefeats())
	}

	s.RecordDefeat()
	if s.ConsecutiveVictories() != 0 || s.ConsecutiveDefeats() != 1 {
		t.Fatalf("期望败场清空连胜, got v=%d d=%d", s.ConsecutiveVictories(), s.ConsecutiveDefeats())
	}

	s.RecordVictory()
	if s.ConsecutiveVictories() != 1 || s.ConsecutiveDefeats() != 0 {
		t.Fatalf("期望胜场清空连败, got v=%d d=%d", s.ConsecutiveVictories(), s.ConsecutiveDefeats())
	}
}

func TestWinRate_无战斗返回零(t *testing.T) {
	s := NewStatisticsEntity()
	if s.WinRate() != 0 {
		t.Fatalf("期望无战斗胜率为 0, got=%v", s.WinRate())
	}
	s.RecordVictory()
	s.RecordVictory()
	s.RecordDefeat()
	want := 2.0 / 3.0
	if got := s.WinRate(); got != want {
		t.Fatalf("期望胜率=%v, got=%v", want, got)
	}
}

func TestHydrateStatistics_修复互斥不变式(t *testing.T) {
	e := HydrateStatisticsEntity(StatisticsSnapshot{
		BattlesCompleted:     10,
		Victories:            6,
		Defeats:              4,
		ConsecutiveVictories: 3,
		ConsecutiveDefeats:   2,
	})
	if e.ConsecutiveVictories() != 3 || e.ConsecutiveDefeats() != 0 {
		t.Fatalf("期望两连击同时非零时只保留连胜, got v=%d d=%d", e.ConsecutiveVictories(), e.ConsecutiveDefeats())
	}

	e = HydrateStatisticsEntity(StatisticsSnapshot{Victories: -1, Defeats: -2})
	if e.Victories() != 0 || e.Defeats() != 0 {
		t.Fatalf("期望负数计数钳到 0")
	}
}

func TestClone_副本推进不影响原件(t *testing.T) {
	s := NewStatisticsEntity()
	s.RecordVictory()

	c := s.Clone()
	c.RecordDefeat()
	c.RecordDefeat()

	if s.BattlesCompleted() != 1 || s.Defeats() != 0 {
		t.Fatalf("期望原件不变, battles=%d defeats=%d", s.BattlesCompleted(), s.Defeats())
	}
	if c.BattlesCompleted() != 3 || c.ConsecutiveDefeats() != 2 {
		t.Fatalf("期望副本独立推进, battles=%d 连败=%d", c.BattlesCompleted(), c.ConsecutiveDefeats())
	}
}
