package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"IdleKingdoms/internal/autobattle/actor"
	"IdleKingdoms/internal/autobattle/actors"
	"IdleKingdoms/internal/autobattle/interfaces/handler/dto"
	"IdleKingdoms/internal/shared/security"
	"IdleKingdoms/internal/shared/transport"
)

// HttpHandler 是控制面入口：存档加载、挂机启停、配置更新。
// 实时事件走 ws 推送，这里只有请求/响应。
type HttpHandler struct {
	runtime *actor.Runtime
}

func NewHttpHandler(runtime *actor.Runtime) *HttpHandler {
	return &HttpHandler{runtime: runtime}
}

func (h *HttpHandler) RegisterRoutes(g *gin.RouterGroup) {
	api := g.Group("/api/automation")
	api.POST("/enter", h.enter)

	authed := api.Group("")
	authed.Use(h.auth)
	authed.GET("/status", h.status)
	authed.POST("/start", h.start)
	authed.POST("/pause", h.pause)
	authed.POST("/resume", h.resume)
	authed.POST("/stop", h.stop)
	authed.PUT("/config", h.updateConfig)
}

// auth 从 Authorization 头解析 token，把存档位写进 gin 上下文。
func (h *HttpHandler) auth(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	_, claims, err := security.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.Forbidden, "msg": "token 无效"})
		return
	}
	c.Set("uid", claims.Uid)
	c.Next()
}

func (h *HttpHandler) enter(c *gin.Context) {
	var req dto.EnterReq
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "msg": "参数有误"})
		return
	}

	reply, err := h.runtime.Handle(c.Request.Context(), actors.EnterCmd{
		PlayerID: actors.PlayerID(req.PlayerID),
		Now:      time.Now().Unix(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": actor.CodeFromError(err), "msg": "进入存档失败"})
		return
	}
	if !reply.Ok {
		c.JSON(http.StatusOK, gin.H{"code": transport.Forbidden, "msg": reply.Reason})
		return
	}

	token, err := security.Award(req.PlayerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": transport.SystemError, "msg": "签发 token 失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": transport.OK, "msg": dto.EnterResp{
		Token:   token,
		Status:  reply.Status,
		Offline: reply.Offline,
		Time:    time.Now().UnixMilli(),
	}})
}

func (h *HttpHandler) status(c *gin.Context) {
	h.command(c, actors.StatusCmd{PlayerID: h.uid(c)}, true)
}

func (h *HttpHandler) start(c *gin.Context) {
	h.command(c, actors.StartCmd{PlayerID: h.uid(c)}, false)
}

func (h *HttpHandler) pause(c *gin.Context) {
	var req dto.PauseReq
	_ = c.ShouldBindJSON(&req)
	h.command(c, actors.PauseCmd{PlayerID: h.uid(c), Reason: req.Reason}, false)
}

func (h *HttpHandler) resume(c *gin.Context) {
	h.command(c, actors.ResumeCmd{PlayerID: h.uid(c)}, false)
}

func (h *HttpHandler) stop(c *gin.Context) {
	h.command(c, actors.StopCmd{PlayerID: h.uid(c)}, false)
}

func (h *HttpHandler) updateConfig(c *gin.Context) {
	var req dto.ConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": transport.InvalidParam, "msg": "参数有误"})
		return
	}
	h.command(c, actors.UpdateConfigCmd{PlayerID: h.uid(c), Config: req.Config}, false)
}

func (h *HttpHandler) command(c *gin.Context, cmd actors.SlotCommand, withStatus bool) {
	reply, err := h.runtime.Handle(c.Request.Context(), cmd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": actor.CodeFromError(err), "msg": "操作失败"})
		return
	}
	if !reply.Ok {
		c.JSON(http.StatusOK, gin.H{"code": transport.Forbidden, "msg": reply.Reason})
		return
	}
	if withStatus {
		c.JSON(http.StatusOK, gin.H{"code": transport.OK, "msg": dto.StatusResp{Status: reply.Status}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": transport.OK, "msg": "ok"})
}

func (h *HttpHandler) uid(c *gin.Context) actors.PlayerID {
	raw, _ := c.Get("uid")
	uid, _ := raw.(int)
	if uid == 0 {
		// auth 中间件之外不会走到这里；兜底解析路径参数
		uid, _ = strconv.Atoi(c.Param("player_id"))
	}
	return actors.PlayerID(uid)
}
