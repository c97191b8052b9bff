package transport

// BizCode 是业务码的强类型封装，减少日志上下文里的误传风险。
type BizCode int

const (
	OK           = 0
	InvalidParam = 1
	Forbidden    = 2
	SystemError  = 500
)
