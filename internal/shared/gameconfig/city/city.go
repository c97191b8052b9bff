package city

import (
	"path/filepath"
	"runtime"
	"sort"

	"IdleKingdoms/internal/shared/config"
)

// Tier 是城池规模档位。
type Tier string

const (
	TierSmall   Tier = "small"
	TierMedium  Tier = "medium"
	TierMajor   Tier = "major"
	TierCapital Tier = "capital"
)

func (t Tier) Valid() bool {
	switch t {
	case TierSmall, TierMedium, TierMajor, TierCapital:
		return true
	}
	return false
}

type catalog struct {
	Title string       `json:"title"`
	CList []CityDetail `json:"list"`
	CMap  map[int]CityDetail
}

// CityDetail 是一条城池参考数据（只读，归属状态由玩家侧维护）。
type CityDetail struct {
	CfgId       int    `json:"cfgId"`
	Name        string `json:"name"`
	Tier        Tier   `json:"tier"`
	Difficulty  int    `json:"difficulty"` // 0~100
	Garrison    int    `json:"garrison"`   // 守军强度
	UnlockLevel int    `json:"unlock_level"`
	YieldGold   int    `json:"yield_gold"` // 每回合产出
	YieldTroops int    `json:"yield_troops"`
	YieldFood   int    `json:"yield_food"`
}

var Catalog = &catalog{}

// Load 读取城池表。path 为空时使用包目录下的 basic.json。
func Load(path string) {
	if path == "" {
		_, file, _, ok := runtime.Caller(0)
		if !ok {
			panic("load city config failed: runtime.Caller(0) error")
		}
		path = filepath.Join(filepath.Dir(file), "basic.json")
	}
	config.LoadJSON(path, Catalog)

	Catalog.CMap = make(map[int]CityDetail, len(Catalog.CList))
	for _, v := range Catalog.CList {
		Catalog.CMap[v.CfgId] = v
	}
}

// ByID 按配置 ID 查询。
func ByID(cfgID int) (CityDetail, bool) {
	v, ok := Catalog.CMap[cfgID]
	return v, ok
}

// All 返回全部城池，按难度升序（演出顺序稳定，便于测试）。
func All() []CityDetail {
	out := make([]CityDetail, len(Catalog.CList))
	copy(out, Catalog.CList)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Difficulty != out[j].Difficulty {
			return out[i].Difficulty < out[j].Difficulty
		}
		return out[i].CfgId < out[j].CfgId
	})
	return out
}

// EligibleFor 过滤出玩家等级已解锁的城池。
func EligibleFor(level int) []CityDetail {
	out := make([]CityDetail, 0, len(Catalog.CList))
	for _, v := range All() {
		if level >= v.UnlockLevel {
			out = append(out, v)
		}
	}
	return out
}
