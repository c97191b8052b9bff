package catalog

import (
	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/city"
)

// CityCatalog 把共享配置层的城池表适配成领域侧的只读目录。
type CityCatalog struct{}

func NewCityCatalog() *CityCatalog {
	return &CityCatalog{}
}

func (c *CityCatalog) ByID(id entity.CityID) (entity.CityTarget, bool) {
	detail, ok := city.ByID(int(id))
	if !ok {
		return entity.CityTarget{}, false
	}
	return toTarget(detail), true
}

func (c *CityCatalog) All() []entity.CityTarget {
	return toTargets(city.All())
}

func (c *CityCatalog) EligibleFor(level int) []entity.CityTarget {
	return toTargets(city.EligibleFor(level))
}

func toTargets(details []city.CityDetail) []entity.CityTarget {
	out := make([]entity.CityTarget, 0, len(details))
	for _, d := range details {
		out = append(out, toTarget(d))
	}
	return out
}

func toTarget(d city.CityDetail) entity.CityTarget {
	return entity.CityTarget{
		ID:          entity.CityID(d.CfgId),
		Name:        d.Name,
		Tier:        entity.Tier(d.Tier),
		Difficulty:  d.Difficulty,
		Garrison:    d.Garrison,
		UnlockLevel: d.UnlockLevel,
		Yield: entity.ResourceDelta{
			Gold:   d.YieldGold,
			Troops: d.YieldTroops,
			Food:   d.YieldFood,
		},
	}
}
