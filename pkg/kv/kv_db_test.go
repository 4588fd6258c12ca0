package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/navigatorx-guidance/pkg"
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestStore(t *testing.T) *TurnStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTurnStore(db, zaptest.NewLogger(t))
}

func sampleTables(n int) []da.TurnTable {
	tables := make([]da.TurnTable, n)
	for i := range tables {
		tables[i] = da.TurnTable{
			ViaEdge:  da.Index(i),
			FromNode: da.Index(i + 100),
			Turns: []da.TurnRecord{
				{ToEdge: da.Index(i + 1), Angle: 0, Valid: false, TurnType: 3, Modifier: 0, Confidence: 1, Penalty: pkg.INF_WEIGHT},
				{ToEdge: da.Index(i + 2), Angle: 92.5, Valid: true, TurnType: 4, Modifier: 3, Confidence: 0.6, Penalty: 6.9},
			},
		}
	}
	return tables
}

func TestSaveAndGetTurnTables(t *testing.T) {
	store := newTestStore(t)
	tables := sampleTables(2500)

	require.NoError(t, store.SaveTurnTables(context.Background(), tables))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, len(tables), count)

	for _, i := range []int{0, 999, 1000, 2499} {
		got, err := store.GetTurnTable(da.Index(i))
		require.NoError(t, err)
		assert.Equal(t, tables[i], got)
	}
}

func TestGetTurnTableNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTurnTable(42)
	require.Error(t, err)

	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, util.ErrNotFound, uerr.Code())
}

func TestSaveTurnTablesCancelled(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.SaveTurnTables(ctx, sampleTables(10)), context.Canceled)
}

func TestTurnTableKeyOrder(t *testing.T) {
	assert.Less(t, string(turnTableKey(255)), string(turnTableKey(256)))
	assert.Len(t, turnTableKey(7), len(turnTablePrefix)+4)
}
