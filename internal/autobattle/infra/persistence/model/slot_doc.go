package model

import "IdleKingdoms/internal/autobattle/entity"

// SlotDoc 是 MongoDB 的整档文档形态：一个存档位一个文档。
type SlotDoc struct {
	PlayerID     int64          `bson:"_id"`
	Version      uint64         `bson:"version"`
	Level        int            `bson:"level"`
	Attribute    AttributeDoc   `bson:"attribute"`
	Gold         int            `bson:"gold"`
	Troops       int            `bson:"troops"`
	Food         int            `bson:"food"`
	Cities       []int          `bson:"cities"`
	Skills       []int          `bson:"skills"`
	Equipment    []int          `bson:"equipment"`
	Stats        StatsDoc       `bson:"stats"`
	Config       entity.AutomationConfig `bson:"config"`
	State        string         `bson:"state"`
	LastActiveAt int64          `bson:"last_active_at"`
}

type AttributeDoc struct {
	Martial      int `bson:"martial"`
	Intelligence int `bson:"intelligence"`
	Governance   int `bson:"governance"`
	Politics     int `bson:"politics"`
	Charisma     int `bson:"charisma"`
	Destiny      int `bson:"destiny"`
}

type StatsDoc struct {
	BattlesCompleted     int `bson:"battles_completed"`
	Victories            int `bson:"victories"`
	Defeats              int `bson:"defeats"`
	ConsecutiveVictories int `bson:"consecutive_victories"`
	ConsecutiveDefeats   int `bson:"consecutive_defeats"`
}

func SlotDocFromSnapshot(s *entity.PlayerPersistSnapshot) SlotDoc {
	cities := make([]int, 0, len(s.Player.Cities))
	for _, id := range s.Player.Cities {
		cities = append(cities, int(id))
	}
	return SlotDoc{
		PlayerID: int64(s.Player.PlayerID),
		Version:  s.Version,
		Level:    s.Player.Level,
		Attribute: AttributeDoc{
			Martial:      s.Player.Attribute.Martial,
			Intelligence: s.Player.Attribute.Intelligence,
			Governance:   s.Player.Attribute.Governance,
			Politics:     s.Player.Attribute.Politics,
			Charisma:     s.Player.Attribute.Charisma,
			Destiny:      s.Player.Attribute.Destiny,
		},
		Gold:      s.Resource.Gold,
		Troops:    s.Resource.Troops,
		Food:      s.Resource.Food,
		Cities:    cities,
		Skills:    s.Player.Skills,
		Equipment: s.Player.Equipment,
		Stats: StatsDoc{
			BattlesCompleted:     s.Stats.BattlesCompleted,
			Victories:            s.Stats.Victories,
			Defeats:              s.Stats.Defeats,
			ConsecutiveVictories: s.Stats.ConsecutiveVictories,
			ConsecutiveDefeats:   s.Stats.ConsecutiveDefeats,
		},
		Config:       s.Config,
		State:        string(s.State),
		LastActiveAt: s.LastActiveAt,
	}
}

func SlotDocToSnapshot(doc SlotDoc) *entity.PlayerPersistSnapshot {
	cities := make([]entity.CityID, 0, len(doc.Cities))
	for _, id := range doc.Cities {
		cities = append(cities, entity.CityID(id))
	}
	return &entity.PlayerPersistSnapshot{
		Version: doc.Version,
		Player: entity.PlayerSnapshot{
			PlayerID: entity.PlayerID(doc.PlayerID),
			Level:    doc.Level,
			Attribute: entity.RoleAttribute{
				Martial:      doc.Attribute.Martial,
				Intelligence: doc.Attribute.Intelligence,
				Governance:   doc.Attribute.Governance,
				Politics:     doc.Attribute.Politics,
				Charisma:     doc.Attribute.Charisma,
				Destiny:      doc.Attribute.Destiny,
			},
			Cities:    cities,
			Skills:    doc.Skills,
			Equipment: doc.Equipment,
		},
		Resource: entity.ResourceSnapshot{
			Gold:   doc.Gold,
			Troops: doc.Troops,
			Food:   doc.Food,
		},
		Stats: entity.StatisticsSnapshot{
			BattlesCompleted:     doc.Stats.BattlesCompleted,
			Victories:            doc.Stats.Victories,
			Defeats:              doc.Stats.Defeats,
			ConsecutiveVictories: doc.Stats.ConsecutiveVictories,
			ConsecutiveDefeats:   doc.Stats.ConsecutiveDefeats,
		},
		Config:       doc.Config,
		State:        entity.AutomationState(doc.State),
		LastActiveAt: doc.LastActiveAt,
		SavePlayer:   true,
		SaveStats:    true,
		SaveMeta:     true,
	}
}
