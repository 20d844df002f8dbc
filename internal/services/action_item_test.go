package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const actionItemsTable = "test-action-items"

func setupActionItems(t *testing.T) *ActionItemService {
	t.Helper()
	tt := newTestTables(t, actionItemsTable)
	tt.seed(t, actionItemsTable,
		map[string]any{"id": 1, "title": "Send drawings", "status": "pending", "responsible_party": "Client", "meeting_id": 1},
		map[string]any{"id": 2, "title": "Set up VPN", "status": "done", "responsible_party": "Partner", "meeting_id": 1},
		map[string]any{"id": 3, "title": "Share estimates", "status": "pending", "responsible_party": "Client", "meeting_id": 2},
	)
	a := tt.adapter(actionItemsTable)
	return NewActionItemService(a, tt.sequence(a))
}

func TestActionItemService_Filters(t *testing.T) {
	svc := setupActionItems(t)
	ctx := context.Background()

	pending, err := svc.ListByStatus(ctx, "pending")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, recordIDs(pending))

	partner, err := svc.ListByResponsibleParty(ctx, "Partner")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, recordIDs(partner))

	fromMeeting, err := svc.ListByMeeting(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, recordIDs(fromMeeting))

	none, err := svc.ListByStatus(ctx, "blocked")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, recordIDs(all))
}

func TestActionItemService_Create_Defaults(t *testing.T) {
	svc := setupActionItems(t)

	created, err := svc.Create(context.Background(), map[string]any{
		"title":             "Review takeoff",
		"responsible_party": "Partner",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), created["id"])
	assert.Equal(t, DefaultActionItemStatus, created["status"])
	assert.Equal(t, DefaultActionItemPriority, created["priority"])
}

func TestActionItemService_Create_ConcurrentIDsAreUnique(t *testing.T) {
	svc := setupActionItems(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[int64]bool{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := svc.Create(context.Background(), map[string]any{"title": "parallel"})
			if !assert.NoError(t, err) {
				return
			}
			id, _ := created.ID()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	for id := range seen {
		assert.Greater(t, id, int64(3))
	}
}

func TestActionItemService_UpdateAndDelete_NotFound(t *testing.T) {
	svc := setupActionItems(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 99, map[string]any{"status": "done"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 99), ErrNotFound)
}

func TestActionItemService_Create_CounterBehindTableKeepsRecords(t *testing.T) {
	tt := newTestTables(t, actionItemsTable)
	tt.seed(t, testCounters, map[string]any{document.CounterKey: actionItemsTable, "seq": 1})
	tt.seed(t, actionItemsTable,
		map[string]any{"id": 1, "title": "one", "status": "pending", "responsible_party": "Client"},
		map[string]any{"id": 2, "title": "two", "status": "pending", "responsible_party": "Client"},
	)
	a := tt.adapter(actionItemsTable)
	svc := NewActionItemService(a, tt.sequence(a))
	ctx := context.Background()

	created, err := svc.Create(ctx, map[string]any{"title": "new", "responsible_party": "Vendor"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created["id"])

	existing, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "two", existing["title"])
}

func TestActionItemService_Create_GivesUpAfterRepeatedConflicts(t *testing.T) {
	tt := newTestTables(t, actionItemsTable)
	for id := 1; id <= 5; id++ {
		tt.seed(t, actionItemsTable, map[string]any{"id": id, "title": "seeded"})
	}
	a := tt.adapter(actionItemsTable)
	blind := document.NewSequence(tt.store, testCounters, actionItemsTable, func(ctx context.Context) (int64, error) {
		return 0, nil
	})
	svc := NewActionItemService(a, blind)

	_, err := svc.Create(context.Background(), map[string]any{"title": "new", "responsible_party": "Vendor"})

	assert.ErrorIs(t, err, document.ErrExists)
	assert.Equal(t, 5, tt.store.Len(actionItemsTable))
	for id := int64(1); id <= 5; id++ {
		record, err := svc.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "seeded", record["title"])
	}
}
