package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/autobattle/service/port"
)

type PlayerID = entity.PlayerID

// ManagerActor 只做路由：按存档位懒创建子 actor 并转发命令。
type ManagerActor struct {
	repo     port.PlayerRepository
	catalog  port.CityCatalog
	notifier port.EventNotifier
	conf     port.ConfigSource

	slotActors map[PlayerID]*actor.PID
}

func NewManagerActor(repo port.PlayerRepository, catalog port.CityCatalog, notifier port.EventNotifier, conf port.ConfigSource) *ManagerActor {
	return &ManagerActor{
		repo:       repo,
		catalog:    catalog,
		notifier:   notifier,
		conf:       conf,
		slotActors: make(map[PlayerID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	cmd, ok := ctx.Message().(SlotCommand)
	if !ok {
		return
	}
	if cmd.SlotID() <= 0 {
		ctx.Respond(fail("invalid player_id"))
		return
	}

	ctx.Forward(m.getOrSpawn(ctx, cmd.SlotID()))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, playerID PlayerID) *actor.PID {
	if pid, ok := m.slotActors[playerID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewSlotActor(playerID, m.repo, m.catalog, m.notifier, m.conf)
	})
	pid := ctx.Spawn(props)
	m.slotActors[playerID] = pid
	return pid
}
