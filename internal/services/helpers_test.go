package services

import (
	"testing"

	"github.com/dimitrije/portal-api/internal/document"
	"github.com/dimitrije/portal-api/internal/document/documenttest"
	"github.com/stretchr/testify/require"
)

const testCounters = "test-counters"

type testTables struct {
	store *documenttest.Store
}

func newTestTables(t *testing.T, names ...string) *testTables {
	t.Helper()
	store := documenttest.NewStore()
	store.CreateTable(testCounters, document.CounterKey)
	for _, name := range names {
		store.CreateTable(name, document.FieldID)
	}
	return &testTables{store: store}
}

func (tt *testTables) adapter(name string, opts ...document.Option) *document.Adapter {
	return document.NewAdapter(tt.store, name, opts...)
}

func (tt *testTables) sequence(a *document.Adapter) *document.Sequence {
	return document.SequenceFor(tt.store, testCounters, a)
}

func (tt *testTables) seed(t *testing.T, name string, records ...map[string]any) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, tt.store.Seed(name, r))
	}
}

func recordIDs(records []document.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i], _ = r.ID()
	}
	return out
}
