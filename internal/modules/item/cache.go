package item

import (
	"context"
	"strconv"
)

// Cache key scheme. The keys are an explicit contract between the item
// service and the cache: every mutation of an item must delete its singular
// key and the collection key before the response is returned.
const listKey = "item:list"

func itemKey(id int64) string {
	return "item:" + strconv.FormatInt(id, 10)
}

// Cache is the read-through cache over the item store. Entries are
// disposable derived copies with a bounded TTL; mutations invalidate,
// they never repopulate.
type Cache interface {
	GetItem(ctx context.Context, id int64) (*Item, bool, error)
	SetItem(ctx context.Context, it *Item) error
	GetList(ctx context.Context) ([]Item, bool, error)
	SetList(ctx context.Context, items []Item) error
	// InvalidateItem deletes both the item's singular key and the
	// collection key, so a mutation site cannot forget one of the pair.
	InvalidateItem(ctx context.Context, id int64) error
	// InvalidateList deletes the collection key only (for creates, which
	// have no singular key yet).
	InvalidateList(ctx context.Context) error
}
