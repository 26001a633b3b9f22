package repository

import (
	"context"

	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/pkg/cache"
)

// CachedItemRepository serves FindByID through a read cache. Writes to an item go
// to the wrapped repository and then evict its key.
type CachedItemRepository struct {
	ItemRepository
	cache *cache.MultiLevel[model.Item]
}

func NewCachedItemRepository(inner ItemRepository, c *cache.MultiLevel[model.Item]) *CachedItemRepository {
	return &CachedItemRepository{ItemRepository: inner, cache: c}
}

func itemCacheKey(id string) string {
	return "whereisit:item:" + id
}

func (r *CachedItemRepository) FindByID(ctx context.Context, id string) (model.Item, error) {
	item, _, err := r.cache.GetOrLoad(ctx, itemCacheKey(id), func(ctx context.Context) (model.Item, bool, error) {
		item, err := r.ItemRepository.FindByID(ctx, id)
		return item, item != nil, err
	})
	return item, err
}

func (r *CachedItemRepository) Update(ctx context.Context, id string, set model.Item) (*model.UpdateResult, error) {
	defer r.cache.Invalidate(ctx, itemCacheKey(id))
	return r.ItemRepository.Update(ctx, id, set)
}

func (r *CachedItemRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	defer r.cache.Invalidate(ctx, itemCacheKey(id))
	return r.ItemRepository.Delete(ctx, id)
}
