package dto

import (
	"IdleKingdoms/internal/autobattle/actors"
	"IdleKingdoms/internal/autobattle/entity"
)

type EnterReq struct {
	PlayerID int `json:"player_id" mapstructure:"player_id"`
}

type EnterResp struct {
	Token   string                        `json:"token,omitempty"`
	Status  *actors.StatusView            `json:"status"`
	Offline *entity.OfflineProgressResult `json:"offline,omitempty"`
	Time    int64                         `json:"time"`
}

type StatusResp struct {
	Status *actors.StatusView `json:"status"`
}

type PauseReq struct {
	Reason string `json:"reason" mapstructure:"reason"`
}

type ConfigReq struct {
	Config entity.AutomationConfig `json:"config" mapstructure:"config"`
}
