package taxonomy

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
	"github.com/worksuite/backend/internal/domain/taxonomy"
)

// fakeRepository is an in-memory taxonomy.Repository used by the
// service and propagator tests. It enforces the same (scope, value)
// uniqueness the storage layer does.
type fakeRepository struct {
	mu    sync.Mutex
	items map[taxonomy.Kind][]taxonomy.Item

	failCreateValues map[string]error
	seq              int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		items:            make(map[taxonomy.Kind][]taxonomy.Item),
		failCreateValues: make(map[string]error),
	}
}

func scopeEqual(a, b taxonomy.Scope) bool {
	eq := func(x, y *uuid.UUID) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	}
	return eq(a.TenantID, b.TenantID) && eq(a.OrganizationID, b.OrganizationID) &&
		eq(a.ProjectID, b.ProjectID) && eq(a.TeamID, b.TeamID)
}

func (r *fakeRepository) matches(item *taxonomy.Item, scope taxonomy.Scope) bool {
	if !scopeEqual(item.Scope(), scope) {
		return false
	}
	if scope.IsGlobal() {
		return item.IsSystem
	}
	return true
}

func (r *fakeRepository) FindByID(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) (*taxonomy.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items[kind] {
		if r.items[kind][i].ID == id {
			item := r.items[kind][i]
			return &item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRepository) FindForScope(ctx context.Context, kind taxonomy.Kind, scope taxonomy.Scope) ([]taxonomy.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []taxonomy.Item
	for i := range r.items[kind] {
		if r.matches(&r.items[kind][i], scope) {
			out = append(out, r.items[kind][i])
		}
	}
	if kind.HasOrdering() {
		sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	}
	return out, nil
}

func (r *fakeRepository) ExistsForScope(ctx context.Context, kind taxonomy.Kind, scope taxonomy.Scope) (bool, error) {
	items, err := r.FindForScope(ctx, kind, scope)
	return len(items) > 0, err
}

func (r *fakeRepository) ExistsByValue(ctx context.Context, kind taxonomy.Kind, scope taxonomy.Scope, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items[kind] {
		item := &r.items[kind][i]
		if scopeEqual(item.Scope(), scope) && item.Value == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) Create(ctx context.Context, kind taxonomy.Kind, item *taxonomy.Item) error {
	if err, ok := r.failCreateValues[item.Value]; ok {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items[kind] {
		existing := &r.items[kind][i]
		if scopeEqual(existing.Scope(), item.Scope()) && existing.Value == item.Value {
			return taxonomy.ErrDuplicateValue
		}
	}
	r.seq++
	r.items[kind] = append(r.items[kind], *item)
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items[kind] {
		if r.items[kind][i].ID == id {
			r.items[kind] = append(r.items[kind][:i], r.items[kind][i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeRepository) UpdateSortOrder(ctx context.Context, kind taxonomy.Kind, id uuid.UUID, order int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items[kind] {
		item := &r.items[kind][i]
		if item.ID == id && !item.IsSystem {
			item.SetSortOrder(order)
			return true, nil
		}
	}
	return false, nil
}

var _ taxonomy.Repository = (*fakeRepository)(nil)

// seedGlobalDefaults loads the registry defaults as system records
func seedGlobalDefaults(r *fakeRepository) {
	registry := taxonomy.DefaultRegistry()
	for _, kind := range taxonomy.Kinds() {
		for _, seed := range registry.Defaults(kind) {
			item := taxonomy.NewSystemItem(kind, seed)
			_ = r.Create(context.Background(), kind, item)
		}
	}
}
