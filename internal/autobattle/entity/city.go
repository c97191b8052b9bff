package entity

type CityID int

// Tier 是城池规模档位。
type Tier string

const (
	TierSmall   Tier = "small"
	TierMedium  Tier = "medium"
	TierMajor   Tier = "major"
	TierCapital Tier = "capital"
)

// CityTarget 是一条只读的候选目标数据；归属状态在玩家侧维护。
type CityTarget struct {
	ID          CityID
	Name        string
	Tier        Tier
	Difficulty  int // 0~100
	Garrison    int
	UnlockLevel int
	Yield       ResourceDelta // 每回合产出
}

// Unlocked 判断玩家等级是否满足解锁条件。
func (c CityTarget) Unlocked(level int) bool {
	return level >= c.UnlockLevel
}
