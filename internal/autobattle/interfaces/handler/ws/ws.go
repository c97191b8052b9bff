package ws

import (
	"context"
	"time"

	"IdleKingdoms/internal/autobattle/actor"
	"IdleKingdoms/internal/autobattle/actors"
	"IdleKingdoms/internal/autobattle/interfaces/handler/dto"
	"IdleKingdoms/internal/shared/security"
	"IdleKingdoms/internal/shared/session"
	"IdleKingdoms/internal/shared/transport"
	"IdleKingdoms/internal/shared/transport/ws"
)

// WsHandler 是战场实时通道：进入存档后绑定会话，事件经该连接推送。
type WsHandler struct {
	runtime  *actor.Runtime
	sessions session.Manager
}

func NewWsHandler(runtime *actor.Runtime, sessions session.Manager) *WsHandler {
	return &WsHandler{runtime: runtime, sessions: sessions}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	group := r.Group("automation")
	group.Handle("enter", h.enter)
	group.Handle("status", h.status)
	group.Handle("start", h.start)
	group.Handle("pause", h.pause)
	group.Handle("resume", h.resume)
	group.Handle("stop", h.stop)
	group.Handle("updateConfig", h.updateConfig)
}

type wsEnterReq struct {
	Token string `json:"token" mapstructure:"token"`
}

// enter 校验 token、绑定会话、触发离线补结算。
func (h *WsHandler) enter(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq == nil || wsReq.Body == nil || wsReq.Conn == nil || wsResp == nil || wsResp.Body == nil {
		h.fail(ctx, wsResp, transport.InvalidParam, "参数有误")
		return
	}

	var req wsEnterReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(ctx, wsResp, transport.InvalidParam, "参数有误")
		return
	}
	_, claims, err := security.ParseToken(req.Token)
	if err != nil {
		h.fail(ctx, wsResp, transport.Forbidden, "token 无效")
		return
	}

	reply, err := h.runtime.Handle(ctx, actors.EnterCmd{
		PlayerID: actors.PlayerID(claims.Uid),
		Now:      time.Now().Unix(),
	})
	if err != nil {
		h.fail(ctx, wsResp, actor.CodeFromError(err), "进入存档失败")
		return
	}
	if !reply.Ok {
		h.fail(ctx, wsResp, transport.Forbidden, reply.Reason)
		return
	}

	wsReq.Conn.SetProperty(ws.ConnKeyUID, claims.Uid)
	h.sessions.Bind(claims.Uid, req.Token, wsReq.Conn)
	h.ok(ctx, wsResp, dto.EnterResp{
		Status:  reply.Status,
		Offline: reply.Offline,
		Time:    time.Now().UnixMilli(),
	})
}

func (h *WsHandler) status(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.boundUID(wsReq)
	if !ok {
		h.fail(ctx, wsResp, transport.Forbidden, "会话未绑定")
		return
	}
	h.command(ctx, wsResp, actors.StatusCmd{PlayerID: uid}, true)
}

func (h *WsHandler) start(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.boundUID(wsReq)
	if !ok {
		h.fail(ctx, wsResp, transport.Forbidden, "会话未绑定")
		return
	}
	h.command(ctx, wsResp, actors.StartCmd{PlayerID: uid}, false)
}

func (h *WsHandler) pause(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.boundUID(wsReq)
	if !ok {
		h.fail(ctx, wsResp, transport.Forbidden, "会话未绑定")
		return
	}
	var req dto.PauseReq
	_ = ws.BindJSON(wsReq, &req)
	h.command(ctx, wsResp, actors.PauseCmd{PlayerID: uid, Reason: req.Reason}, false)
}

func (h *WsHandler) resume(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.boundUID(wsReq)
	if !ok {
		h.fail(ctx, wsResp, transport.Forbidden, "会话未绑定")
		return
	}
	h.command(ctx, wsResp, actors.ResumeCmd{PlayerID: uid}, false)
}

func (h *WsHandler) stop(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.boundUID(wsReq)
	if !ok {
		h.fail(ctx, wsResp, transport.Forbidden, "会话未绑定")
		return
	}
	h.command(ctx, wsResp, actors.StopCmd{PlayerID: uid}, false)
}

func (h *WsHandler) updateConfig(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	uid, ok := h.boundUID(wsReq)
	if !ok {
		h.fail(ctx, wsResp, transport.Forbidden, "会话未绑定")
		return
	}
	var req dto.ConfigReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(ctx, wsResp, transport.InvalidParam, "参数有误")
		return
	}
	h.command(ctx, wsResp, actors.UpdateConfigCmd{PlayerID: uid, Config: req.Config}, false)
}

func (h *WsHandler) command(ctx context.Context, wsResp *ws.WsMsgResp, cmd actors.SlotCommand, withStatus bool) {
	reply, err := h.runtime.Handle(ctx, cmd)
	if err != nil {
		h.fail(ctx, wsResp, actor.CodeFromError(err), "操作失败")
		return
	}
	if !reply.Ok {
		h.fail(ctx, wsResp, transport.Forbidden, reply.Reason)
		return
	}
	if withStatus {
		h.ok(ctx, wsResp, dto.StatusResp{Status: reply.Status})
		return
	}
	h.ok(ctx, wsResp, "ok")
}

func (h *WsHandler) boundUID(wsReq *ws.WsMsgReq) (actors.PlayerID, bool) {
	if wsReq == nil || wsReq.Conn == nil {
		return 0, false
	}
	uid, ok := h.sessions.GetUID(wsReq.Conn)
	if !ok {
		return 0, false
	}
	return actors.PlayerID(uid), true
}

func (h *WsHandler) ok(ctx context.Context, resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
	transport.SetBizCode(ctx, transport.BizCode(transport.OK))
}

func (h *WsHandler) fail(ctx context.Context, resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
	transport.SetBizCode(ctx, transport.BizCode(code))
	transport.SetErrorReason(ctx, msg)
}
