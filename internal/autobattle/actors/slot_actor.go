package actors

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"IdleKingdoms/internal/autobattle/dc"
	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/autobattle/service"
	"IdleKingdoms/internal/autobattle/service/port"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// 新档的起始配置
const (
	starterLevel  = 1
	starterGold   = 5000
	starterTroops = 800
	starterFood   = 2000
)

// SlotActor 串行处理一个存档位的全部命令与周期 tick。
type SlotActor struct {
	state      State
	playerID   PlayerID
	dc         *dc.SlotDC
	entity     *entity.SaveSlotEntity
	controller *service.AutomationController

	catalog  port.CityCatalog
	notifier port.EventNotifier
	conf     port.ConfigSource

	flushStop  chan struct{}
	battleStop chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

type battleTick struct{}

func (battleTick) NotInfluenceReceiveTimeout() {}

func NewSlotActor(playerID PlayerID, repo port.PlayerRepository, catalog port.CityCatalog, notifier port.EventNotifier, conf port.ConfigSource) *SlotActor {
	return &SlotActor{
		state:    None,
		playerID: playerID,
		dc:       dc.NewSlotDC(repo),
		catalog:  catalog,
		notifier: notifier,
		conf:     conf,
	}
}

func (a *SlotActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.state = Init
		a.init(ctx)
		return
	case *actor.Stopping:
		a.stopLoops()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.dc.Close(closeCtx); err != nil {
			ctx.Logger().Error("slot dc close failed", "player_id", a.playerID, "err", err)
		}
		a.state = Stopping
		return
	case *actor.Stopped:
		a.stopLoops()
		a.state = Offline
		return
	case *actor.Restarting:
		a.stopLoops()
		a.state = Init
		return
	case flushTick:
		if a.state != Online {
			return
		}
		a.dc.Flush(context.TODO())
		return
	case battleTick:
		if a.state != Online {
			return
		}
		if _, err := a.controller.Tick(time.Now().Unix()); err != nil {
			ctx.Logger().Error("automation tick failed", "player_id", a.playerID, "err", err)
		}
		a.scheduleBattleTick(ctx)
		return
	case SlotCommand:
		if a.state != Online {
			ctx.Respond(fail("slot not online"))
			return
		}
		ctx.Respond(a.handleCommand(msg))
	default:
		return
	}
}

func (a *SlotActor) init(ctx actor.Context) {
	e, err := a.dc.Load(context.TODO(), a.playerID)
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrPlayerNotFound):
		// 首次进入即建档
		e = newStarterSlot(a.playerID, time.Now().Unix())
		a.dc.Adopt(a.playerID, e)
	default:
		ctx.Logger().Error("slot load failed", "player_id", a.playerID, "err", err)
		a.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}

	a.state = Online
	a.entity = e
	a.controller = service.NewAutomationController(
		e,
		a.catalog,
		a.notifier,
		a.conf,
		rand.New(rand.NewSource(time.Now().UnixNano()^int64(a.playerID))),
	)
	a.startFlushLoop(ctx)
	a.scheduleBattleTick(ctx)
}

func (a *SlotActor) handleCommand(cmd SlotCommand) *SlotReply {
	switch msg := cmd.(type) {
	case EnterCmd:
		result := a.controller.SettleOffline(msg.Now)
		return &SlotReply{Ok: true, Status: buildStatusView(a.entity), Offline: result}
	case StatusCmd:
		return &SlotReply{Ok: true, Status: buildStatusView(a.entity)}
	case StartCmd:
		a.controller.Start()
		return okReply()
	case PauseCmd:
		a.controller.Pause(msg.Reason)
		return okReply()
	case ResumeCmd:
		if err := a.controller.Resume(); err != nil {
			return fail(err.Error())
		}
		return okReply()
	case StopCmd:
		a.controller.Stop()
		return okReply()
	case UpdateConfigCmd:
		if err := a.controller.UpdateConfig(msg.Config); err != nil {
			return fail(err.Error())
		}
		return okReply()
	default:
		return fail("unknown command")
	}
}

func newStarterSlot(playerID PlayerID, now int64) *entity.SaveSlotEntity {
	attr := entity.RoleAttribute{Martial: 60, Intelligence: 55, Governance: 50, Politics: 45, Charisma: 40, Destiny: 30}
	player := entity.NewPlayerEntity(playerID, starterLevel, attr,
		entity.NewResourceEntity(starterGold, starterTroops, starterFood))
	return entity.NewSaveSlotEntity(player, entity.NewStatisticsEntity(), entity.DefaultAutomationConfig(), now)
}

func (a *SlotActor) startFlushLoop(ctx actor.Context) {
	if a.flushStop != nil {
		return
	}
	interval := a.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	a.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(a.flushStop, interval)
}

// scheduleBattleTick 安排下一次出兵 tick。
// 间隔随战斗数增长，每次都在 actor 内重新计算，定时器只负责投递消息。
func (a *SlotActor) scheduleBattleTick(ctx actor.Context) {
	interval := a.controller.TickInterval()
	if interval <= 0 {
		return
	}
	if a.battleStop == nil {
		a.battleStop = make(chan struct{})
	}
	stop := a.battleStop
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	time.AfterFunc(interval, func() {
		select {
		case <-stop:
		default:
			root.Send(self, battleTick{})
		}
	})
}

func (a *SlotActor) stopLoops() {
	if a.flushStop != nil {
		close(a.flushStop)
		a.flushStop = nil
	}
	if a.battleStop != nil {
		close(a.battleStop)
		a.battleStop = nil
	}
}
