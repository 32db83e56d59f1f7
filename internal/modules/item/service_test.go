package item

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/Onkar-Kul/simple-inventory-management/internal/apierr"
	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/user"
)

// Mock Repository
type mockRepo struct {
	mu        sync.Mutex
	items     map[int64]Item
	nextID    int64
	listCalls int
	createErr error
	updateErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]Item{}, nextID: 1}
}

func (m *mockRepo) Create(ctx context.Context, it *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.items {
		if existing.Name == it.Name {
			return ErrDuplicateName
		}
	}
	it.ID = m.nextID
	m.nextID++
	m.items[it.ID] = *it
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *mockRepo) List(ctx context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := make([]Item, 0, len(m.items))
	for id := int64(1); id < m.nextID; id++ {
		if it, ok := m.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(ctx context.Context, it *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.items[it.ID]; !ok {
		return ErrNotFound
	}
	m.items[it.ID] = *it
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Mock Cache
type mockCache struct {
	mu      sync.Mutex
	items   map[int64]Item
	list    []Item
	hasList bool
	getErr  error
	delErr  error
}

func newMockCache() *mockCache {
	return &mockCache{items: map[int64]Item{}}
}

func (m *mockCache) GetItem(ctx context.Context, id int64) (*Item, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	it, ok := m.items[id]
	if !ok {
		return nil, false, nil
	}
	return &it, true, nil
}

func (m *mockCache) SetItem(ctx context.Context, it *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.ID] = *it
	return nil
}

func (m *mockCache) GetList(ctx context.Context) ([]Item, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	if !m.hasList {
		return nil, false, nil
	}
	return m.list, true, nil
}

func (m *mockCache) SetList(ctx context.Context, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = items
	m.hasList = true
	return nil
}

func (m *mockCache) InvalidateItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.items, id)
	m.list = nil
	m.hasList = false
	return nil
}

func (m *mockCache) InvalidateList(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	m.list = nil
	m.hasList = false
	return nil
}

func newTestService(repo Repository, cache Cache) Service {
	return NewService(repo, cache, zap.NewNop().Sugar())
}

func itemAdder() *user.User { return &user.User{IsItemAdder: true} }
func staffUser() *user.User { return &user.User{IsStaff: true} }
func plainUser() *user.User { return &user.User{} }

func wantKind(t *testing.T, err error, kind apierr.Kind) *apierr.Error {
	t.Helper()
	e, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected *apierr.Error, got %v", err)
	}
	if e.Kind != kind {
		t.Fatalf("expected kind %d, got %d (%v)", kind, e.Kind, err)
	}
	return e
}

func TestCreate_Success(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)

	it, err := svc.Create(context.Background(), CreateItemRequest{
		Name:        "Widget",
		Description: "d",
		Quantity:    5,
		Price:       10.99,
	}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if it.ID == 0 {
		t.Error("expected assigned id")
	}
	if it.Quantity != 5 || it.Price != 10.99 {
		t.Errorf("unexpected item: %+v", it)
	}
}

func TestCreate_InvalidatesListCache(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	// Populate the list cache, then create.
	if _, _, err := svc.List(ctx, plainUser()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !cache.hasList {
		t.Fatal("expected list cache populated")
	}

	if _, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 2.50}, itemAdder()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cache.hasList {
		t.Error("expected list cache invalidated after create")
	}

	// The next list must include the new item.
	items, fromCache, err := svc.List(ctx, plainUser())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if fromCache {
		t.Error("expected fresh list after invalidation")
	}
	if len(items) != 1 || items[0].Name != "Widget" {
		t.Errorf("unexpected list: %+v", items)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, newMockCache())
	ctx := context.Background()

	req := CreateItemRequest{Name: "Widget", Description: "d", Quantity: 5, Price: 10.99}
	if _, err := svc.Create(ctx, req, itemAdder()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(ctx, req, itemAdder())
	e := wantKind(t, err, apierr.KindConflict)
	if e.Message != "Item already exists." {
		t.Errorf("unexpected message: %q", e.Message)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 item, got %d", len(repo.items))
	}
}

func TestCreate_DuplicateNameRace(t *testing.T) {
	// The pre-check passes but the store's unique index rejects the insert.
	repo := newMockRepo()
	repo.createErr = ErrDuplicateName
	svc := newTestService(repo, newMockCache())

	_, err := svc.Create(context.Background(), CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}, itemAdder())
	wantKind(t, err, apierr.KindConflict)
}

func TestCreate_ValidationReportsAllFields(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockCache())

	_, err := svc.Create(context.Background(), CreateItemRequest{
		Name:        "",
		Description: "",
		Quantity:    -1,
		Price:       10.999,
	}, itemAdder())
	e := wantKind(t, err, apierr.KindValidation)
	for _, field := range []string{"name", "description", "quantity", "price"} {
		if _, ok := e.Fields[field]; !ok {
			t.Errorf("expected error for field %q, got %v", field, e.Fields)
		}
	}
}

func TestCreate_PermissionDenied(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, newMockCache())

	req := CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}
	for _, caller := range []*user.User{nil, plainUser()} {
		_, err := svc.Create(context.Background(), req, caller)
		wantKind(t, err, apierr.KindForbidden)
	}
	if len(repo.items) != 0 {
		t.Error("expected no items created")
	}

	if _, err := svc.Create(context.Background(), req, staffUser()); err != nil {
		t.Errorf("staff create failed: %v", err)
	}
}

func TestRetrieve_ReadThrough(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	it, fromCache, err := svc.Retrieve(ctx, created.ID, plainUser())
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if fromCache {
		t.Error("first retrieve should miss the cache")
	}
	if it.Name != "Widget" {
		t.Errorf("unexpected item: %+v", it)
	}

	it, fromCache, err = svc.Retrieve(ctx, created.ID, plainUser())
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if !fromCache {
		t.Error("second retrieve should hit the cache")
	}
	if it.Name != "Widget" {
		t.Errorf("unexpected cached item: %+v", it)
	}
}

func TestRetrieve_CacheHitSkipsStore(t *testing.T) {
	// An out-of-band store mutation is not visible while the cache entry lives.
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := svc.Retrieve(ctx, created.ID, plainUser()); err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	// Mutate the store directly, bypassing the service.
	repo.mu.Lock()
	stale := repo.items[created.ID]
	stale.Quantity = 99
	repo.items[created.ID] = stale
	repo.mu.Unlock()

	it, fromCache, err := svc.Retrieve(ctx, created.ID, plainUser())
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if !fromCache || it.Quantity != 1 {
		t.Errorf("expected stale cached quantity 1, got fromCache=%v quantity=%d", fromCache, it.Quantity)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockCache())
	_, _, err := svc.Retrieve(context.Background(), 42, plainUser())
	wantKind(t, err, apierr.KindNotFound)
}

func TestRetrieve_CacheErrorFallsBackToStore(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	svc := newTestService(repo, cache)
	ctx := context.Background()

	repo.items[1] = Item{ID: 1, Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}
	repo.nextID = 2

	it, fromCache, err := svc.Retrieve(ctx, 1, plainUser())
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if fromCache || it.Name != "Widget" {
		t.Errorf("expected store fallback, got fromCache=%v item=%+v", fromCache, it)
	}
}

func TestList_CachedFlag(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}, itemAdder()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, fromCache, err := svc.List(ctx, plainUser())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if fromCache || len(items) != 1 {
		t.Fatalf("expected fresh list of 1, got fromCache=%v len=%d", fromCache, len(items))
	}

	storeCalls := repo.listCalls
	items, fromCache, err = svc.List(ctx, plainUser())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !fromCache || len(items) != 1 {
		t.Errorf("expected cached list, got fromCache=%v len=%d", fromCache, len(items))
	}
	if repo.listCalls != storeCalls {
		t.Error("cache hit must not consult the store")
	}
}

func TestList_PermissionDenied(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockCache())
	_, _, err := svc.List(context.Background(), nil)
	wantKind(t, err, apierr.KindForbidden)
}

func TestUpdate_PartialMergesFields(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 5, Price: 10.99}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	quantity := 7
	updated, err := svc.Update(ctx, created.ID, UpdateItemRequest{Quantity: &quantity}, true, itemAdder())
	if err != nil {
		t.Fatalf("partial update failed: %v", err)
	}
	if updated.Quantity != 7 || updated.Name != "Widget" || updated.Price != 10.99 {
		t.Errorf("unexpected merge result: %+v", updated)
	}
}

func TestUpdate_FullRequiresAllFields(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, newMockCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 5, Price: 10.99}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	quantity := 7
	_, err = svc.Update(ctx, created.ID, UpdateItemRequest{Quantity: &quantity}, false, itemAdder())
	e := wantKind(t, err, apierr.KindValidation)
	for _, field := range []string{"name", "description", "price"} {
		if _, ok := e.Fields[field]; !ok {
			t.Errorf("expected error for field %q, got %v", field, e.Fields)
		}
	}
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 5, Price: 10.99}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// Warm both cache keys.
	if _, _, err := svc.Retrieve(ctx, created.ID, plainUser()); err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if _, _, err := svc.List(ctx, plainUser()); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	quantity := 9
	if _, err := svc.Update(ctx, created.ID, UpdateItemRequest{Quantity: &quantity}, true, itemAdder()); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// Subsequent reads must never see pre-mutation data.
	it, fromCache, err := svc.Retrieve(ctx, created.ID, plainUser())
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if fromCache {
		t.Error("expected cache miss after update")
	}
	if it.Quantity != 9 {
		t.Errorf("expected quantity 9, got %d", it.Quantity)
	}

	items, fromCache, err := svc.List(ctx, plainUser())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if fromCache {
		t.Error("expected list cache miss after update")
	}
	if items[0].Quantity != 9 {
		t.Errorf("expected listed quantity 9, got %d", items[0].Quantity)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockCache())
	name := "Widget"
	_, err := svc.Update(context.Background(), 42, UpdateItemRequest{Name: &name}, true, itemAdder())
	wantKind(t, err, apierr.KindNotFound)
}

func TestUpdate_PermissionDenied(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockCache())
	name := "Widget"
	_, err := svc.Update(context.Background(), 1, UpdateItemRequest{Name: &name}, true, plainUser())
	wantKind(t, err, apierr.KindForbidden)
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := svc.Retrieve(ctx, created.ID, plainUser()); err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if _, _, err := svc.List(ctx, plainUser()); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, itemAdder()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, _, err = svc.Retrieve(ctx, created.ID, plainUser())
	wantKind(t, err, apierr.KindNotFound)

	items, _, err := svc.List(ctx, plainUser())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list after delete, got %+v", items)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockCache())
	err := svc.Delete(context.Background(), 42, itemAdder())
	wantKind(t, err, apierr.KindNotFound)
}

func TestDelete_PermissionDenied(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockCache())
	err := svc.Delete(context.Background(), 1, plainUser())
	wantKind(t, err, apierr.KindForbidden)
}

func TestMutation_FailsWhenInvalidationFails(t *testing.T) {
	repo := newMockRepo()
	cache := newMockCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemRequest{Name: "Widget", Description: "d", Quantity: 1, Price: 1.00}, itemAdder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cache.delErr = errors.New("redis down")

	quantity := 2
	if _, err := svc.Update(ctx, created.ID, UpdateItemRequest{Quantity: &quantity}, true, itemAdder()); err == nil {
		t.Error("expected update to fail when invalidation fails")
	}
	if err := svc.Delete(ctx, created.ID, itemAdder()); err == nil {
		t.Error("expected delete to fail when invalidation fails")
	}
}
