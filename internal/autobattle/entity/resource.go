package entity

// ResourceKind 标识账本中的一种资源。
type ResourceKind string

const (
	ResourceGold   ResourceKind = "gold"
	ResourceTroops ResourceKind = "troops"
	ResourceFood   ResourceKind = "food"
)

// ResourceDelta 是一次结算对账本的增减（可为负）。
type ResourceDelta struct {
	Gold   int `json:"gold"`
	Troops int `json:"troops"`
	Food   int `json:"food"`
}

func (d ResourceDelta) Add(other ResourceDelta) ResourceDelta {
	return ResourceDelta{
		Gold:   d.Gold + other.Gold,
		Troops: d.Troops + other.Troops,
		Food:   d.Food + other.Food,
	}
}

// entity
type ResourceEntity struct {
	gold   int
	troops int
	food   int
	dirty  bool
}

type ResourceSnapshot struct {
	Gold   int
	Troops int
	Food   int
}

func NewResourceEntity(gold, troops, food int) *ResourceEntity {
	return &ResourceEntity{
		gold:   max(0, gold),
		troops: max(0, troops),
		food:   max(0, food),
	}
}

func HydrateResourceEntity(s ResourceSnapshot) *ResourceEntity {
	// 账本不允许负值：脏数据钳到 0
	return NewResourceEntity(s.Gold, s.Troops, s.Food)
}

func (r *ResourceEntity) Gold() int   { return r.gold }
func (r *ResourceEntity) Troops() int { return r.troops }
func (r *ResourceEntity) Food() int   { return r.food }

// Apply 应用一次增减，负向部分封底为当前持有量（账本永不为负）。
func (r *ResourceEntity) Apply(d ResourceDelta) {
	r.gold = max(0, r.gold+d.Gold)
	r.troops = max(0, r.troops+d.Troops)
	r.food = max(0, r.food+d.Food)
	r.dirty = true
}

// Spend 严格扣减：任一资源不足时整体失败，不做部分扣减。
func (r *ResourceEntity) Spend(cost ResourceDelta) bool {
	if cost.Gold < 0 || cost.Troops < 0 || cost.Food < 0 {
		return false
	}
	if r.gold < cost.Gold || r.troops < cost.Troops || r.food < cost.Food {
		return false
	}
	r.gold -= cost.Gold
	r.troops -= cost.Troops
	r.food -= cost.Food
	r.dirty = true
	return true
}

func (r *ResourceEntity) Set(kind ResourceKind, value int) {
	value = max(0, value)
	switch kind {
	case ResourceGold:
		r.gold = value
	case ResourceTroops:
		r.troops = value
	case ResourceFood:
		r.food = value
	default:
		return
	}
	r.dirty = true
}

func (r *ResourceEntity) Snapshot() ResourceSnapshot {
	return ResourceSnapshot{
		Gold:   r.gold,
		Troops: r.troops,
		Food:   r.food,
	}
}

func (r *ResourceEntity) Dirty() bool {
	if r == nil {
		return false
	}
	return r.dirty
}

func (r *ResourceEntity) ClearDirty() {
	if r == nil {
		return
	}
	r.dirty = false
}
