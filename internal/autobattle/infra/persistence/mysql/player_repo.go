package mysql

import (
	"context"
	"errors"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/autobattle/errs"
	"IdleKingdoms/internal/autobattle/infra/persistence/model"

	"gorm.io/gorm"
)

const (
	OpLoadSlot     = "repo.autobattle.LoadSlot"
	OpSaveSnapshot = "repo.autobattle.SaveSnapshot"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) WithTx(tx *gorm.DB) *PlayerRepo {
	return &PlayerRepo{db: tx}
}

func (r *PlayerRepo) LoadSlot(ctx context.Context, id entity.PlayerID) (*entity.PlayerPersistSnapshot, error) {
	var pm model.Player
	err := r.db.WithContext(ctx).Where("player_id = ?", int(id)).First(&pm).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, entity.ErrPlayerNotFound
	default:
		// 纯技术错误（连接超时等），保持原样包装返回给上级
		return nil, errs.Wrap(OpLoadSlot, errs.KindInfra, err, map[string]any{"player_id": id})
	}

	snap := &entity.PlayerPersistSnapshot{
		SavePlayer: true,
		SaveStats:  true,
		SaveMeta:   true,
	}
	snap.Player, snap.Resource = model.PlayerToSnapshot(&pm)

	// 统计与元数据允许缺行：新档只有 player 行时按零值恢复
	var sm model.Stats
	err = r.db.WithContext(ctx).Where("player_id = ?", int(id)).First(&sm).Error
	switch {
	case err == nil:
		snap.Stats = model.StatsToSnapshot(&sm)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, errs.Wrap(OpLoadSlot, errs.KindInfra, err, map[string]any{"player_id": id})
	}

	var mm model.Meta
	err = r.db.WithContext(ctx).Where("player_id = ?", int(id)).First(&mm).Error
	switch {
	case err == nil:
		model.MetaToSnapshot(&mm, snap)
	case errors.Is(err, gorm.ErrRecordNotFound):
		snap.Config = entity.DefaultAutomationConfig()
		snap.State = entity.StateStopped
	default:
		return nil, errs.Wrap(OpLoadSlot, errs.KindInfra, err, map[string]any{"player_id": id})
	}

	return snap, nil
}

func (r *PlayerRepo) SaveSnapshot(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error {
	if s == nil {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)
		if s.SavePlayer {
			if err := txRepo.savePlayer(ctx, id, s); err != nil {
				return err
			}
		}
		if s.SaveStats {
			if err := txRepo.saveStats(ctx, id, s); err != nil {
				return err
			}
		}
		if s.SaveMeta {
			if err := txRepo.saveMeta(ctx, id, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PlayerRepo) savePlayer(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error {
	m := model.PlayerFromSnapshot(s.Player, s.Resource)
	m.PlayerId = uint32(id)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return errs.Wrap(OpSaveSnapshot, errs.KindInfra, err, map[string]any{"player_id": id, "part": "player"})
	}
	return nil
}

func (r *PlayerRepo) saveStats(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error {
	if err := r.db.WithContext(ctx).Save(model.StatsFromSnapshot(id, s.Stats)).Error; err != nil {
		return errs.Wrap(OpSaveSnapshot, errs.KindInfra, err, map[string]any{"player_id": id, "part": "stats"})
	}
	return nil
}

func (r *PlayerRepo) saveMeta(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error {
	if err := r.db.WithContext(ctx).Save(model.MetaFromSnapshot(id, s)).Error; err != nil {
		return errs.Wrap(OpSaveSnapshot, errs.KindInfra, err, map[string]any{"player_id": id, "part": "meta"})
	}
	return nil
}
