package entity

// RoleAttribute 是六维属性。
type RoleAttribute struct {
	Martial      int `json:"martial"`      // 武力
	Intelligence int `json:"intelligence"` // 智力
	Governance   int `json:"governance"`   // 统御
	Politics     int `json:"politics"`     // 内政
	Charisma     int `json:"charisma"`     // 魅力
	Destiny      int `json:"destiny"`      // 天命
}

func (a RoleAttribute) Sum() int {
	return a.Martial + a.Intelligence + a.Governance + a.Politics + a.Charisma + a.Destiny
}
