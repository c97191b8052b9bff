package entity

type PlayerID int

// entity
type PlayerEntity struct {
	playerID  PlayerID
	level     int
	attribute RoleAttribute
	resource  *ResourceEntity
	cities    map[CityID]struct{}
	skills    []int
	equipment []int
	dirty     bool
}

type PlayerSnapshot struct {
	PlayerID  PlayerID
	Level     int
	Attribute RoleAttribute
	Cities    []CityID
	Skills    []int
	Equipment []int
}

func NewPlayerEntity(id PlayerID, level int, attr RoleAttribute, resource *ResourceEntity) *PlayerEntity {
	if level < 1 {
		level = 1
	}
	if resource == nil {
		resource = NewResourceEntity(0, 0, 0)
	}
	return &PlayerEntity{
		playerID:  id,
		level:     level,
		attribute: attr,
		resource:  resource,
		cities:    make(map[CityID]struct{}),
	}
}

func HydratePlayerEntity(s PlayerSnapshot, resource *ResourceEntity) *PlayerEntity {
	p := NewPlayerEntity(s.PlayerID, s.Level, s.Attribute, resource)
	for _, id := range s.Cities {
		p.cities[id] = struct{}{}
	}
	p.skills = append(p.skills, s.Skills...)
	p.equipment = append(p.equipment, s.Equipment...)
	return p
}

func (p *PlayerEntity) ID() PlayerID              { return p.playerID }
func (p *PlayerEntity) Level() int                { return p.level }
func (p *PlayerEntity) Attribute() RoleAttribute  { return p.attribute }
func (p *PlayerEntity) Resource() *ResourceEntity { return p.resource }

// PowerRating 把等级、属性和现役兵力折算成单一战力值，用于目标评估与胜率计算。
func (p *PlayerEntity) PowerRating() float64 {
	return float64(p.level)*50 +
		float64(p.attribute.Sum())*8 +
		float64(p.resource.Troops())*0.5
}

func (p *PlayerEntity) OwnsCity(id CityID) bool {
	_, ok := p.cities[id]
	return ok
}

func (p *PlayerEntity) AddCity(id CityID) {
	if _, ok := p.cities[id]; ok {
		return
	}
	p.cities[id] = struct{}{}
	p.dirty = true
}

func (p *PlayerEntity) CityCount() int {
	return len(p.cities)
}

func (p *PlayerEntity) ForEachCity(fn func(id CityID)) {
	for id := range p.cities {
		fn(id)
	}
}

// CityYield 汇总已拥有城池的每回合产出。
func (p *PlayerEntity) CityYield(lookup func(id CityID) (CityTarget, bool)) ResourceDelta {
	var total ResourceDelta
	for id := range p.cities {
		if c, ok := lookup(id); ok {
			total = total.Add(c.Yield)
		}
	}
	return total
}

func (p *PlayerEntity) Skills() []int {
	out := make([]int, len(p.skills))
	copy(out, p.skills)
	return out
}

func (p *PlayerEntity) SelectSkills(skills []int) {
	p.skills = append(p.skills[:0], skills...)
	p.dirty = true
}

func (p *PlayerEntity) Equipment() []int {
	out := make([]int, len(p.equipment))
	copy(out, p.equipment)
	return out
}

func (p *PlayerEntity) GainLevel(n int) {
	if n <= 0 {
		return
	}
	p.level += n
	p.dirty = true
}

func (p *PlayerEntity) Dirty() bool {
	if p == nil {
		return false
	}
	return p.dirty || p.resource.Dirty()
}

func (p *PlayerEntity) ClearDirty() {
	if p == nil {
		return
	}
	p.dirty = false
	p.resource.ClearDirty()
}

func (p *PlayerEntity) Snapshot() PlayerSnapshot {
	cities := make([]CityID, 0, len(p.cities))
	for id := range p.cities {
		cities = append(cities, id)
	}
	return PlayerSnapshot{
		PlayerID:  p.playerID,
		Level:     p.level,
		Attribute: p.attribute,
		Cities:    cities,
		Skills:    append([]int(nil), p.skills...),
		Equipment: append([]int(nil), p.equipment...),
	}
}
