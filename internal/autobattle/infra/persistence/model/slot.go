package model

import (
	"encoding/json"

	"IdleKingdoms/internal/autobattle/entity"
)

// model
type Player struct {
	PlayerId     uint32 `gorm:"column:player_id;type:int UNSIGNED;comment:存档位;primaryKey;not null;" json:"player_id"` // 存档位
	Level        uint32 `gorm:"column:level;type:int UNSIGNED;comment:等级;not null;default:1;" json:"level"`           // 等级
	Martial      uint32 `gorm:"column:martial;type:int UNSIGNED;comment:武力;not null;default:0;" json:"martial"`       // 武力
	Intelligence uint32 `gorm:"column:intelligence;type:int UNSIGNED;comment:智力;not null;default:0;" json:"intelligence"`
	Governance   uint32 `gorm:"column:governance;type:int UNSIGNED;comment:统御;not null;default:0;" json:"governance"`
	Politics     uint32 `gorm:"column:politics;type:int UNSIGNED;comment:内政;not null;default:0;" json:"politics"`
	Charisma     uint32 `gorm:"column:charisma;type:int UNSIGNED;comment:魅力;not null;default:0;" json:"charisma"`
	Destiny      uint32 `gorm:"column:destiny;type:int UNSIGNED;comment:天命;not null;default:0;" json:"destiny"`
	Gold         uint32 `gorm:"column:gold;type:int UNSIGNED;comment:金币;not null;default:0;" json:"gold"`    // 金币
	Troops       uint32 `gorm:"column:troops;type:int UNSIGNED;comment:兵力;not null;default:0;" json:"troops"` // 兵力
	Food         uint32 `gorm:"column:food;type:int UNSIGNED;comment:粮食;not null;default:0;" json:"food"`     // 粮食
	Cities       string `gorm:"column:cities;type:varchar(2000);comment:已拥有城池(JSON);" json:"cities"`          // 已拥有城池(JSON)
	Skills       string `gorm:"column:skills;type:varchar(500);comment:已选技能(JSON);" json:"skills"`            // 已选技能(JSON)
	Equipment    string `gorm:"column:equipment;type:varchar(500);comment:装备(JSON);" json:"equipment"`        // 装备(JSON)
}

func (p *Player) TableName() string {
	return "auto_player"
}

// model
type Stats struct {
	PlayerId             uint32 `gorm:"column:player_id;type:int UNSIGNED;comment:存档位;primaryKey;not null;" json:"player_id"`
	BattlesCompleted     uint32 `gorm:"column:battles_completed;type:int UNSIGNED;comment:累计战斗;not null;default:0;" json:"battles_completed"`
	Victories            uint32 `gorm:"column:victories;type:int UNSIGNED;comment:累计胜场;not null;default:0;" json:"victories"`
	Defeats              uint32 `gorm:"column:defeats;type:int UNSIGNED;comment:累计败场;not null;default:0;" json:"defeats"`
	ConsecutiveVictories uint32 `gorm:"column:consecutive_victories;type:int UNSIGNED;comment:连胜;not null;default:0;" json:"consecutive_victories"`
	ConsecutiveDefeats   uint32 `gorm:"column:consecutive_defeats;type:int UNSIGNED;comment:连败;not null;default:0;" json:"consecutive_defeats"`
}

func (s *Stats) TableName() string {
	return "auto_stats"
}

// model
type Meta struct {
	PlayerId     uint32 `gorm:"column:player_id;type:int UNSIGNED;comment:存档位;primaryKey;not null;" json:"player_id"`
	Config       string `gorm:"column:config;type:varchar(1000);comment:挂机配置(JSON);" json:"config"` // 挂机配置(JSON)
	State        string `gorm:"column:state;type:varchar(20);comment:运行态;not null;default:stopped;" json:"state"`
	LastActiveAt int64  `gorm:"column:last_active_at;type:bigint;comment:最后活跃(unix 秒);not null;default:0;" json:"last_active_at"`
	Version      uint64 `gorm:"column:version;type:bigint UNSIGNED;comment:快照版本;not null;default:0;" json:"version"`
}

func (m *Meta) TableName() string {
	return "auto_meta"
}

func PlayerFromSnapshot(p entity.PlayerSnapshot, r entity.ResourceSnapshot) *Player {
	cities, _ := json.Marshal(p.Cities)
	skills, _ := json.Marshal(p.Skills)
	equipment, _ := json.Marshal(p.Equipment)
	return &Player{
		PlayerId:     uint32(p.PlayerID),
		Level:        uint32(max(1, p.Level)),
		Martial:      uint32(max(0, p.Attribute.Martial)),
		Intelligence: uint32(max(0, p.Attribute.Intelligence)),
		Governance:   uint32(max(0, p.Attribute.Governance)),
		Politics:     uint32(max(0, p.Attribute.Politics)),
		Charisma:     uint32(max(0, p.Attribute.Charisma)),
		Destiny:      uint32(max(0, p.Attribute.Destiny)),
		Gold:         uint32(max(0, r.Gold)),
		Troops:       uint32(max(0, r.Troops)),
		Food:         uint32(max(0, r.Food)),
		Cities:       string(cities),
		Skills:       string(skills),
		Equipment:    string(equipment),
	}
}

func PlayerToSnapshot(m *Player) (entity.PlayerSnapshot, entity.ResourceSnapshot) {
	var cities []entity.CityID
	var skills, equipment []int
	_ = json.Unmarshal([]byte(m.Cities), &cities)
	_ = json.Unmarshal([]byte(m.Skills), &skills)
	_ = json.Unmarshal([]byte(m.Equipment), &equipment)

	return entity.PlayerSnapshot{
			PlayerID: entity.PlayerID(m.PlayerId),
			Level:    int(m.Level),
			Attribute: entity.RoleAttribute{
				Martial:      int(m.Martial),
				Intelligence: int(m.Intelligence),
				Governance:   int(m.Governance),
				Politics:     int(m.Politics),
				Charisma:     int(m.Charisma),
				Destiny:      int(m.Destiny),
			},
			Cities:    cities,
			Skills:    skills,
			Equipment: equipment,
		}, entity.ResourceSnapshot{
			Gold:   int(m.Gold),
			Troops: int(m.Troops),
			Food:   int(m.Food),
		}
}

func StatsFromSnapshot(id entity.PlayerID, s entity.StatisticsSnapshot) *Stats {
	return &Stats{
		PlayerId:             uint32(id),
		BattlesCompleted:     uint32(max(0, s.BattlesCompleted)),
		Victories:            uint32(max(0, s.Victories)),
		Defeats:              uint32(max(0, s.Defeats)),
		ConsecutiveVictories: uint32(max(0, s.ConsecutiveVictories)),
		ConsecutiveDefeats:   uint32(max(0, s.ConsecutiveDefeats)),
	}
}

func StatsToSnapshot(m *Stats) entity.StatisticsSnapshot {
	return entity.StatisticsSnapshot{
		BattlesCompleted:     int(m.BattlesCompleted),
		Victories:            int(m.Victories),
		Defeats:              int(m.Defeats),
		ConsecutiveVictories: int(m.ConsecutiveVictories),
		ConsecutiveDefeats:   int(m.ConsecutiveDefeats),
	}
}

func MetaFromSnapshot(id entity.PlayerID, s *entity.PlayerPersistSnapshot) *Meta {
	config, _ := json.Marshal(s.Config)
	return &Meta{
		PlayerId:     uint32(id),
		Config:       string(config),
		State:        string(s.State),
		LastActiveAt: s.LastActiveAt,
		Version:      s.Version,
	}
}

func MetaToSnapshot(m *Meta, out *entity.PlayerPersistSnapshot) {
	var cfg entity.AutomationConfig
	if json.Unmarshal([]byte(m.Config), &cfg) == nil {
		out.Config = cfg
	}
	out.State = entity.AutomationState(m.State)
	out.LastActiveAt = m.LastActiveAt
	out.Version = m.Version
}
