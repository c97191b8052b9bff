package actors

import "IdleKingdoms/internal/autobattle/entity"

// SlotCommand 是所有存档位命令的共同形态，manager 据此路由到子 actor。
type SlotCommand interface {
	SlotID() PlayerID
}

// EnterCmd 加载（或新建）存档位并做离线补结算。
type EnterCmd struct {
	PlayerID PlayerID
	Now      int64
}

// StatusCmd 查询存档位当前状态。
type StatusCmd struct {
	PlayerID PlayerID
}

// StartCmd 启动挂机。
type StartCmd struct {
	PlayerID PlayerID
}

// PauseCmd 暂停挂机；Reason 只进事件流。
type PauseCmd struct {
	PlayerID PlayerID
	Reason   string
}

// ResumeCmd 从暂停恢复。
type ResumeCmd struct {
	PlayerID PlayerID
}

// StopCmd 停止挂机并清空在途战斗。
type StopCmd struct {
	PlayerID PlayerID
}

// UpdateConfigCmd 替换挂机配置。
type UpdateConfigCmd struct {
	PlayerID PlayerID
	Config   entity.AutomationConfig
}

func (c EnterCmd) SlotID() PlayerID        { return c.PlayerID }
func (c StatusCmd) SlotID() PlayerID       { return c.PlayerID }
func (c StartCmd) SlotID() PlayerID        { return c.PlayerID }
func (c PauseCmd) SlotID() PlayerID        { return c.PlayerID }
func (c ResumeCmd) SlotID() PlayerID       { return c.PlayerID }
func (c StopCmd) SlotID() PlayerID         { return c.PlayerID }
func (c UpdateConfigCmd) SlotID() PlayerID { return c.PlayerID }

// SlotReply 是命令的统一回包。
type SlotReply struct {
	Ok      bool
	Reason  string
	Status  *StatusView
	Offline *entity.OfflineProgressResult
}

func okReply() *SlotReply {
	return &SlotReply{Ok: true}
}

func fail(reason string) *SlotReply {
	return &SlotReply{Ok: false, Reason: reason}
}
