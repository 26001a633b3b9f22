package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type failingUpdates struct {
	repository.ItemRepository
	err error
}

func (f failingUpdates) Update(context.Context, string, model.Item) (*model.UpdateResult, error) {
	return nil, f.err
}

func seedItem(t *testing.T, items repository.ItemRepository) string {
	t.Helper()
	res, err := items.Insert(context.Background(), model.Item{"title": "Watch", "status": "lost"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return res.InsertedID.(bson.ObjectID).Hex()
}

func TestCreateMarksItemRecovered(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	items := store.Items()
	id := seedItem(t, items)

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewRecoveryService(items, store.Recoveries(), store, BestEffort, WithClock(func() time.Time { return fixed }))

	out, err := svc.Create(ctx, model.RecoveryRequest{
		ItemID:       id,
		Title:        "Watch",
		RecoveryDate: "2024-05-30",
		RecoveredBy:  map[string]any{"email": "finder@x.io"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.Message != RecoveryCompletedMessage || !out.RecoveryResult.Acknowledged {
		t.Fatalf("unexpected outcome %#v", out)
	}
	if out.UpdateResult.MatchedCount != 1 || out.UpdateResult.ModifiedCount != 1 {
		t.Fatalf("unexpected update result %#v", out.UpdateResult)
	}

	item, _ := items.FindByID(ctx, id)
	if item["status"] != "recovered" {
		t.Fatalf("status = %v", item["status"])
	}

	recs, _ := store.Recoveries().FindAll(ctx)
	if len(recs) != 1 {
		t.Fatalf("recoveries = %d", len(recs))
	}
	if recs[0]["itemId"] != id || !recs[0]["recoveredAt"].(time.Time).Equal(fixed) {
		t.Fatalf("unexpected recovery %#v", recs[0])
	}
	if d, ok := recs[0]["recoveryDate"].(time.Time); !ok || d.Format("2006-01-02") != "2024-05-30" {
		t.Fatalf("recoveryDate = %#v", recs[0]["recoveryDate"])
	}
}

func TestCreateUnknownItemStillRecordsRecovery(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewRecoveryService(store.Items(), store.Recoveries(), store, BestEffort)

	out, err := svc.Create(ctx, model.RecoveryRequest{ItemID: bson.NewObjectID().Hex()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.UpdateResult.MatchedCount != 0 {
		t.Fatalf("matched = %d", out.UpdateResult.MatchedCount)
	}
	recs, _ := store.Recoveries().FindAll(ctx)
	if len(recs) != 1 {
		t.Fatalf("recoveries = %d", len(recs))
	}
}

func TestCreateBestEffortLeavesOrphanOnFailure(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	boom := errors.New("boom")
	items := failingUpdates{ItemRepository: store.Items(), err: boom}
	svc := NewRecoveryService(items, store.Recoveries(), store, BestEffort)

	if _, err := svc.Create(ctx, model.RecoveryRequest{ItemID: seedItem(t, store.Items())}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	recs, _ := store.Recoveries().FindAll(ctx)
	if len(recs) != 1 {
		t.Fatalf("best effort should keep the recovery record, got %d", len(recs))
	}
}

func TestCreateTransactionalRollsBack(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	items := failingUpdates{ItemRepository: store.Items(), err: errors.New("boom")}
	svc := NewRecoveryService(items, store.Recoveries(), store, Transactional)

	if _, err := svc.Create(ctx, model.RecoveryRequest{ItemID: seedItem(t, store.Items())}); err == nil {
		t.Fatal("expected error")
	}
	recs, _ := store.Recoveries().FindAll(ctx)
	if len(recs) != 0 {
		t.Fatalf("transaction should roll back the recovery record, got %d", len(recs))
	}
}

func TestCreateMalformedItemID(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewRecoveryService(store.Items(), store.Recoveries(), store, Transactional)

	_, err := svc.Create(context.Background(), model.RecoveryRequest{ItemID: "not-an-id"})
	if !errors.Is(err, repository.ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
}
