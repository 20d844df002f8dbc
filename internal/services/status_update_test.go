package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updatesTable = "test-updates"

func setupStatusUpdates(t *testing.T) *StatusUpdateService {
	t.Helper()
	tt := newTestTables(t, updatesTable)
	clock := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	a := tt.adapter(updatesTable,
		document.WithSort(document.NewestFirst(document.FieldCreatedAt)),
		document.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
	)
	return NewStatusUpdateService(a, tt.sequence(a))
}

func TestStatusUpdateService_Create(t *testing.T) {
	svc := setupStatusUpdates(t)

	created, err := svc.Create(context.Background(), NewStatusUpdate{
		Type:        "MILESTONE",
		Title:       "Demo complete",
		Content:     "Symbol detection demo went well",
		AuthorEmail: "jane.doe@portal.example",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created["id"])
	assert.Equal(t, "MILESTONE", created["type"])
	assert.Equal(t, "MILESTONE", created["update_type"])
	assert.Equal(t, "jane.doe", created["author"])
	assert.Equal(t, DefaultUpdatePriority, created["priority"])
	assert.Equal(t, []any{}, created["acknowledgements"])
	assert.Equal(t, "2026-01-10T08:01:00.000000", created["created_at"])
}

func TestStatusUpdateService_List(t *testing.T) {
	svc := setupStatusUpdates(t)
	ctx := context.Background()
	for _, typ := range []string{"MILESTONE", "BLOCKER", "MILESTONE"} {
		_, err := svc.Create(ctx, NewStatusUpdate{Type: typ, Title: typ, AuthorEmail: "a@b.c"})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, recordIDs(all))

	milestones, err := svc.List(ctx, "MILESTONE")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, recordIDs(milestones))
}

func TestStatusUpdateService_Acknowledge(t *testing.T) {
	svc := setupStatusUpdates(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, NewStatusUpdate{Type: "GENERAL", Title: "hi", AuthorEmail: "a@b.c"})
	require.NoError(t, err)
	id, _ := created.ID()

	user, already, err := svc.Acknowledge(ctx, id, "sam@client.example")
	require.NoError(t, err)
	assert.Equal(t, "sam", user)
	assert.False(t, already)

	_, already, err = svc.Acknowledge(ctx, id, "sam@client.example")
	require.NoError(t, err)
	assert.True(t, already)

	_, _, err = svc.Acknowledge(ctx, id, "kim@client.example")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"sam", "kim"}, got.Strings("acknowledgements"))
}

func TestStatusUpdateService_Acknowledge_NotFound(t *testing.T) {
	svc := setupStatusUpdates(t)

	_, _, err := svc.Acknowledge(context.Background(), 5, "sam@client.example")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusUpdateService_Delete(t *testing.T) {
	svc := setupStatusUpdates(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, NewStatusUpdate{Type: "GENERAL", AuthorEmail: "a@b.c"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotFound)
}

func TestStatusUpdateService_Acknowledge_Concurrent(t *testing.T) {
	tt := newTestTables(t, updatesTable)
	a := tt.adapter(updatesTable)
	svc := NewStatusUpdateService(a, tt.sequence(a))
	ctx := context.Background()
	created, err := svc.Create(ctx, NewStatusUpdate{Type: "GENERAL", Title: "hi", AuthorEmail: "a@b.c"})
	require.NoError(t, err)
	id, _ := created.ID()

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := svc.Acknowledge(ctx, id, fmt.Sprintf("user%d@client.example", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Strings("acknowledgements"), n)
}
