package repository

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"

	"github.com/duccv/whereisit/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memoryTxKey struct{}

// MemoryStore keeps both collections in process, in insertion order. Every read
// returns copies, so callers may not mutate stored documents.
type MemoryStore struct {
	mu         sync.RWMutex
	items      []bson.M
	recoveries []bson.M

	// writeMu serializes writers with transactions so a rollback cannot discard a
	// concurrent request's write.
	writeMu sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Items() ItemRepository {
	return &memoryItemRepository{store: s}
}

func (s *MemoryStore) Recoveries() RecoveryRepository {
	return &memoryRecoveryRepository{store: s}
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}

// WithTransaction snapshots both collections and restores them when fn fails.
func (s *MemoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memoryTxKey{}) != nil {
		return fn(ctx)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	items, recoveries := cloneAll(s.items), cloneAll(s.recoveries)
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, memoryTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.items, s.recoveries = items, recoveries
		s.mu.Unlock()
		return err
	}
	return nil
}

// write runs fn with exclusive access to the collections.
func (s *MemoryStore) write(ctx context.Context, fn func()) {
	if ctx.Value(memoryTxKey{}) == nil {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func cloneAll(docs []bson.M) []bson.M {
	out := make([]bson.M, len(docs))
	for i, d := range docs {
		out[i] = cloneDoc(d)
	}
	return out
}

type memoryItemRepository struct {
	store *MemoryStore
}

func (r *memoryItemRepository) filter(match func(bson.M) bool) []model.Item {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]model.Item, 0)
	for _, doc := range r.store.items {
		if match == nil || match(doc) {
			out = append(out, cloneDoc(doc))
		}
	}
	return out
}

func (r *memoryItemRepository) FindAll(context.Context) ([]model.Item, error) {
	return r.filter(nil), nil
}

func (r *memoryItemRepository) FindByID(_ context.Context, id string) (model.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if i := r.store.indexOf(oid); i >= 0 {
		return cloneDoc(r.store.items[i]), nil
	}
	return nil, nil
}

func (r *memoryItemRepository) FindLatest(_ context.Context, limit int64) ([]model.Item, error) {
	items := r.filter(nil)
	sort.SliceStable(items, func(i, j int) bool {
		return compareValues(items[i][model.ItemDateField], items[j][model.ItemDateField]) > 0
	})
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *memoryItemRepository) FindByContactEmail(_ context.Context, email *string) ([]model.Item, error) {
	return r.filter(func(doc bson.M) bool {
		v, _ := getPath(doc, model.ItemContactEmail)
		if email == nil {
			return v == nil
		}
		s, ok := v.(string)
		return ok && s == *email
	}), nil
}

func (r *memoryItemRepository) Insert(ctx context.Context, item model.Item) (*model.InsertResult, error) {
	doc := cloneDoc(item)
	if doc == nil {
		doc = bson.M{}
	}
	id, ok := doc[model.ItemIDField]
	if !ok {
		id = bson.NewObjectID()
		doc[model.ItemIDField] = id
	}

	var err error
	r.store.write(ctx, func() {
		if oid, isOID := id.(bson.ObjectID); isOID && r.store.indexOf(oid) >= 0 {
			err = errors.New("duplicate key error: _id already exists")
			return
		}
		r.store.items = append(r.store.items, doc)
	})
	if err != nil {
		return nil, err
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *memoryItemRepository) Update(ctx context.Context, id string, set model.Item) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res := &model.UpdateResult{Acknowledged: true}
	r.store.write(ctx, func() {
		i := r.store.indexOf(oid)
		if i < 0 {
			return
		}
		res.MatchedCount = 1

		updated := cloneDoc(r.store.items[i])
		for path, v := range set {
			if err = setPath(updated, path, cloneValue(v)); err != nil {
				return
			}
		}
		if !reflect.DeepEqual(updated, r.store.items[i]) {
			r.store.items[i] = updated
			res.ModifiedCount = 1
		}
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *memoryItemRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res := &model.DeleteResult{Acknowledged: true}
	r.store.write(ctx, func() {
		if i := r.store.indexOf(oid); i >= 0 {
			r.store.items = append(r.store.items[:i], r.store.items[i+1:]...)
			res.DeletedCount = 1
		}
	})
	return res, nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(oid bson.ObjectID) int {
	for i, doc := range s.items {
		if id, ok := doc[model.ItemIDField].(bson.ObjectID); ok && id == oid {
			return i
		}
	}
	return -1
}

type memoryRecoveryRepository struct {
	store *MemoryStore
}

func (r *memoryRecoveryRepository) FindAll(context.Context) ([]bson.M, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return cloneAll(r.store.recoveries), nil
}

func (r *memoryRecoveryRepository) Insert(ctx context.Context, recovery *model.Recovery) (*model.InsertResult, error) {
	doc := recovery.Document()
	r.store.write(ctx, func() {
		r.store.recoveries = append(r.store.recoveries, doc)
	})
	return &model.InsertResult{Acknowledged: true, InsertedID: recovery.ID}, nil
}
