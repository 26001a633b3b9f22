package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/pkg/cache"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func insertItem(t *testing.T, repo ItemRepository, item model.Item) string {
	t.Helper()
	res, err := repo.Insert(context.Background(), item)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok || !res.Acknowledged {
		t.Fatalf("unexpected insert result %#v", res)
	}
	return oid.Hex()
}

func TestMemoryInsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Items()

	id := insertItem(t, repo, model.Item{"title": "Umbrella", "contact": bson.M{"email": "a@x.io"}})

	got, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got["title"] != "Umbrella" {
		t.Fatalf("unexpected item %#v", got)
	}

	got["title"] = "mutated"
	again, _ := repo.FindByID(ctx, id)
	if again["title"] != "Umbrella" {
		t.Fatal("stored document was mutated through a returned copy")
	}

	missing, err := repo.FindByID(ctx, bson.NewObjectID().Hex())
	if err != nil || missing != nil {
		t.Fatalf("absent id = %#v, %v; want nil, nil", missing, err)
	}

	if _, err := repo.FindByID(ctx, "abc"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("malformed id err = %v, want ErrInvalidID", err)
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 1 {
		t.Fatalf("FindAll len = %d", len(all))
	}
}

func TestMemoryFindAllEmptyIsNotNil(t *testing.T) {
	all, err := NewMemoryStore().Items().FindAll(context.Background())
	if err != nil || all == nil || len(all) != 0 {
		t.Fatalf("FindAll = %#v, %v", all, err)
	}
}

func TestMemoryFindLatestSortsByDateDescending(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Items()

	for _, d := range []any{"2024-03-01", "2024-01-01", nil, "2024-05-01", "2023-12-31", "2024-04-01", "2024-02-01"} {
		item := model.Item{"title": d}
		if d != nil {
			item["date"] = d
		}
		insertItem(t, repo, item)
	}

	latest, err := repo.FindLatest(ctx, 6)
	if err != nil {
		t.Fatalf("FindLatest: %v", err)
	}
	want := []string{"2024-05-01", "2024-04-01", "2024-03-01", "2024-02-01", "2024-01-01", "2023-12-31"}
	if len(latest) != len(want) {
		t.Fatalf("len = %d, want %d", len(latest), len(want))
	}
	for i, w := range want {
		if latest[i]["date"] != w {
			t.Fatalf("latest[%d].date = %v, want %s", i, latest[i]["date"], w)
		}
	}
}

func TestMemoryFindByContactEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Items()

	insertItem(t, repo, model.Item{"title": "a", "contact": bson.M{"email": "a@x.io"}})
	insertItem(t, repo, model.Item{"title": "b", "contact": bson.M{"email": "b@x.io"}})
	insertItem(t, repo, model.Item{"title": "c"})
	insertItem(t, repo, model.Item{"title": "d", "contact": bson.M{"email": nil}})

	email := "a@x.io"
	mine, _ := repo.FindByContactEmail(ctx, &email)
	if len(mine) != 1 || mine[0]["title"] != "a" {
		t.Fatalf("email match = %#v", mine)
	}

	none, _ := repo.FindByContactEmail(ctx, nil)
	if len(none) != 2 || none[0]["title"] != "c" || none[1]["title"] != "d" {
		t.Fatalf("nil email match = %#v", none)
	}
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Items()
	id := insertItem(t, repo, model.Item{"title": "Wallet", "status": "lost"})

	res, err := repo.Update(ctx, id, model.Item{"status": "recovered", "contact.email": "z@x.io"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.MatchedCount != 1 || res.ModifiedCount != 1 {
		t.Fatalf("unexpected result %#v", res)
	}
	got, _ := repo.FindByID(ctx, id)
	if got["status"] != "recovered" || got["title"] != "Wallet" {
		t.Fatalf("unexpected item %#v", got)
	}
	if v, _ := getPath(got, "contact.email"); v != "z@x.io" {
		t.Fatalf("dotted set not applied: %#v", got)
	}

	res, _ = repo.Update(ctx, id, model.Item{"status": "recovered"})
	if res.MatchedCount != 1 || res.ModifiedCount != 0 {
		t.Fatalf("no-op update result %#v", res)
	}

	res, _ = repo.Update(ctx, bson.NewObjectID().Hex(), model.Item{"status": "x"})
	if res.MatchedCount != 0 || res.ModifiedCount != 0 {
		t.Fatalf("unmatched update result %#v", res)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Items()
	id := insertItem(t, repo, model.Item{"title": "Keys"})

	res, err := repo.Delete(ctx, id)
	if err != nil || res.DeletedCount != 1 {
		t.Fatalf("Delete = %#v, %v", res, err)
	}
	res, _ = repo.Delete(ctx, id)
	if res.DeletedCount != 0 {
		t.Fatalf("second delete count = %d", res.DeletedCount)
	}
	if _, err := repo.Delete(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("malformed id err = %v", err)
	}
}

func TestMemoryTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	items, recoveries := store.Items(), store.Recoveries()
	id := insertItem(t, items, model.Item{"title": "Phone", "status": "lost"})

	boom := errors.New("boom")
	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		rec := model.NewRecovery(model.RecoveryRequest{ItemID: id}, time.Now())
		if _, err := recoveries.Insert(ctx, rec); err != nil {
			return err
		}
		if _, err := items.Update(ctx, id, model.Item{"status": "recovered"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	all, _ := recoveries.FindAll(ctx)
	if len(all) != 0 {
		t.Fatalf("recovery survived rollback: %#v", all)
	}
	got, _ := items.FindByID(ctx, id)
	if got["status"] != "lost" {
		t.Fatalf("status = %v after rollback", got["status"])
	}
}

func TestCachedItemRepositoryInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewLRUCache(16, time.Minute)
	defer mem.Stop()

	inner := NewMemoryStore().Items()
	repo := NewCachedItemRepository(inner, cache.NewMultiLevel[model.Item](mem, nil, time.Minute, time.Minute))
	id := insertItem(t, repo, model.Item{"title": "Bag", "status": "lost"})

	if got, _ := repo.FindByID(ctx, id); got["status"] != "lost" {
		t.Fatalf("first read = %#v", got)
	}
	if mem.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", mem.Len())
	}

	if _, err := repo.Update(ctx, id, model.Item{"status": "recovered"}); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.FindByID(ctx, id); got["status"] != "recovered" {
		t.Fatalf("read after update = %#v", got)
	}

	if _, err := repo.Delete(ctx, id); err != nil {
		t.Fatal(err)
	}
	if got, err := repo.FindByID(ctx, id); got != nil || err != nil {
		t.Fatalf("read after delete = %#v, %v", got, err)
	}
}
