package ws

// WSConn 是会话层看到的连接抽象（推送、断开、属性）。
type WSConn interface {
	Addr() string
	Push(name string, data any)
	Close()
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Done() <-chan struct{}
}

// ReqBody 是客户端上行消息体。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// RespBody 是服务端下行消息体。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Code int    `json:"code"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// Heartbeat 心跳消息：客户端带 ctime，服务端补 stime 回包。
type Heartbeat struct {
	CTime int64 `json:"ctime" mapstructure:"ctime"`
	STime int64 `json:"stime" mapstructure:"stime"`
}

const (
	HeartbeatMsg = "heartbeat"
	HandshakeMsg = "handshake"
	SecretKey    = "secret_key"
	ConnKeyUID   = "uid"
)

// Handshake 握手下发的密钥载荷。
type Handshake struct {
	Key string `json:"key"`
}
