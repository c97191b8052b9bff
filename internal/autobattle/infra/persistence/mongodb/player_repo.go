package mongodb

import (
	"context"
	"errors"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/autobattle/errs"
	"IdleKingdoms/internal/autobattle/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultSlotCollectionName = "auto_slot"

const (
	OpLoadSlot     = "repo.autobattle.LoadSlot"
	OpSaveSnapshot = "repo.autobattle.SaveSnapshot"
)

type PlayerRepo struct {
	coll *mongo.Collection
}

func NewPlayerRepo(db *mongo.Database) *PlayerRepo {
	if db == nil {
		return &PlayerRepo{}
	}
	return &PlayerRepo{coll: db.Collection(defaultSlotCollectionName)}
}

func (r *PlayerRepo) LoadSlot(ctx context.Context, id entity.PlayerID) (*entity.PlayerPersistSnapshot, error) {
	if r == nil || r.coll == nil {
		return nil, errs.Wrap(OpLoadSlot, errs.KindInfra, errors.New("mongodb slot collection is nil"), nil)
	}

	var doc model.SlotDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if err == nil {
		return model.SlotDocToSnapshot(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrPlayerNotFound
	}
	return nil, errs.Wrap(OpLoadSlot, errs.KindInfra, err, map[string]any{"player_id": id})
}

// SaveSnapshot 按脏标记做分段 $set：没变的部分不碰，避免覆盖并发会话的写入。
func (r *PlayerRepo) SaveSnapshot(ctx context.Context, id entity.PlayerID, s *entity.PlayerPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errs.Wrap(OpSaveSnapshot, errs.KindInfra, errors.New("mongodb slot collection is nil"), nil)
	}

	doc := model.SlotDocFromSnapshot(s)
	set := bson.M{"version": doc.Version}
	if s.SavePlayer {
		set["level"] = doc.Level
		set["attribute"] = doc.Attribute
		set["gold"] = doc.Gold
		set["troops"] = doc.Troops
		set["food"] = doc.Food
		set["cities"] = doc.Cities
		set["skills"] = doc.Skills
		set["equipment"] = doc.Equipment
	}
	if s.SaveStats {
		set["stats"] = doc.Stats
	}
	if s.SaveMeta {
		set["config"] = doc.Config
		set["state"] = doc.State
		set["last_active_at"] = doc.LastActiveAt
	}

	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": int64(id)},
		bson.M{"$set": set},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return errs.Wrap(OpSaveSnapshot, errs.KindInfra, err, map[string]any{"player_id": id})
	}
	return nil
}
