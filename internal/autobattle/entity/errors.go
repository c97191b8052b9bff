package entity

import "IdleKingdoms/modules/kit/errx"

// Code 表示领域错误码（对外语义的唯一来源之一）。
//
// 约定：
// - 领域层只关心“是什么错”（code）以及“业务上下文”（data）
// - cause 仅用于溯源/日志，不参与对外语义
type Code = errx.Code

const (
	CodePlayerNotFound      Code = "AUTO_PLAYER_NOT_FOUND"
	CodeTargetNotEligible   Code = "AUTO_TARGET_NOT_ELIGIBLE"
	CodeInsufficientTroops  Code = "AUTO_INSUFFICIENT_TROOPS"
	CodeReserveBreached     Code = "AUTO_RESERVE_BREACHED"
	CodeInvalidConfig       Code = "AUTO_INVALID_CONFIG"
	CodeAutomationNotActive Code = "AUTO_NOT_ACTIVE"
	// CodeSystemUnavailable 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

// Error 复用通用错误模型：领域层通常不需要 msg，但可以使用 code/data/cause/stack。
type Error = errx.Error

var (
	ErrPlayerNotFound      = errx.NewBiz(CodePlayerNotFound, "存档不存在")
	ErrTargetNotEligible   = errx.NewBiz(CodeTargetNotEligible, "目标不可攻打")
	ErrInsufficientTroops  = errx.NewBiz(CodeInsufficientTroops, "可用兵力不足")
	ErrReserveBreached     = errx.NewBiz(CodeReserveBreached, "触及资源保留线")
	ErrInvalidConfig       = errx.NewBiz(CodeInvalidConfig, "挂机配置非法")
	ErrAutomationNotActive = errx.NewBiz(CodeAutomationNotActive, "挂机未在运行")
	ErrSystemUnavailable   = errx.ErrUnavailable
)
