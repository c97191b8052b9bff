package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"IdleKingdoms/internal/shared/security"
	"IdleKingdoms/internal/shared/utils"
	"IdleKingdoms/modules/kit/logx"
)

// WsServer 是单条客户端连接的收发循环。
// 帧格式与客户端约定：zlib 压缩 + AES-CBC 加密（need_secret 时）后的 JSON。
type WsServer struct {
	conn       *websocket.Conn
	router     *Router
	outChan    chan *WsMsgResp
	property   map[string]any
	needSecret bool
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, needSecret bool, l logx.Logger) *WsServer {
	if l == nil {
		l = logx.Nop()
	}
	return &WsServer{
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, 1000),
		property:   make(map[string]any),
		needSecret: needSecret,
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

// Push 把一条下行消息排入发送队列（fire-and-forget，队列满则丢弃并告警）。
func (s *WsServer) Push(name string, data any) {
	rsp := WsMsgResp{
		Body: &RespBody{
			Seq:  0,
			Name: name,
			Msg:  data,
		},
	}
	select {
	case s.outChan <- &rsp:
	default:
		s.log.Warn("ws push queue full, drop message", zap.String("name", name))
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
	if s.needSecret {
		s.handshake()
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// handshake 生成连接级密钥并以明文帧下发，之后的帧全部走 AES。
func (s *WsServer) handshake() {
	id, err := utils.NextSnowflakeID()
	if err != nil {
		s.log.Error("ws handshake gen key failed", zap.Error(err))
		return
	}
	key := fmt.Sprintf("%016x", uint64(id))[:16]
	s.SetProperty(SecretKey, key)
	s.Push(HandshakeMsg, &Handshake{Key: key})
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		body, err := s.decode(data)
		if err != nil {
			s.log.Warn("ws decode request failed", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: body, Conn: s}
		// req 和 resp 的 Seq 必须一致
		resp := WsMsgResp{Body: &RespBody{Seq: body.Seq, Name: body.Name}}
		if body.Name == HeartbeatMsg {
			h := &Heartbeat{}
			_ = mapstructure.Decode(body.Msg, h)
			h.STime = time.Now().UnixNano() / 1e6
			resp.Body.Msg = h
		} else if s.router != nil {
			s.router.Dispatch(&req, &resp)
		}

		select {
		case s.outChan <- &resp:
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg, ok := <-s.outChan:
			if !ok {
				return
			}
			if msg.Body.Name != HeartbeatMsg {
				s.log.Debug("ws write msg", zap.String("name", msg.Body.Name))
			}
			s.write(msg)
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) write(msg *WsMsgResp) {
	raw, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws marshal resp failed", zap.Error(err))
		return
	}

	// 握手帧必须明文，客户端此时还没有密钥
	if s.needSecret && msg.Body.Name != HandshakeMsg {
		secretKey := s.GetProperty(SecretKey)
		key, ok := secretKey.(string)
		if !ok || key == "" {
			s.log.Error("ws write missing secret key", zap.String("name", msg.Body.Name))
			return
		}
		raw, err = security.AesCBCEncrypt(raw, []byte(key), []byte(key), openssl.ZEROS_PADDING)
		if err != nil {
			s.log.Error("ws encrypt resp failed", zap.Error(err))
			return
		}
	}

	zipped, err := security.Zip(raw)
	if err != nil {
		s.log.Error("ws zip resp failed", zap.Error(err))
		return
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, zipped); err != nil {
		s.Close()
	}
}

func (s *WsServer) decode(data []byte) (*ReqBody, error) {
	raw, err := security.UnZip(data)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}

	if s.needSecret {
		secretKey := s.GetProperty(SecretKey)
		key, ok := secretKey.(string)
		if !ok || key == "" {
			// 密钥还没下发，重新握手
			s.handshake()
			return nil, fmt.Errorf("secret key not ready")
		}
		raw, err = security.AesCBCDecrypt(raw, []byte(key), []byte(key), openssl.ZEROS_PADDING)
		if err != nil {
			s.handshake()
			return nil, fmt.Errorf("decrypt: %w", err)
		}
	}

	body := &ReqBody{}
	if err := json.Unmarshal(raw, body); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return body, nil
}
