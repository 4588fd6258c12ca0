package kv

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"go.uber.org/zap"
)

const saveBatchSize = 1000

// TurnStore. turn table per via edge di badger, value = kelindar binary + zstd.
type TurnStore struct {
	db  *badger.DB
	log *zap.Logger
}

func NewTurnStore(db *badger.DB, log *zap.Logger) *TurnStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &TurnStore{db: db, log: log}
}

func OpenTurnStore(path string, log *zap.Logger) (*TurnStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "open turn store %s", path)
	}
	return NewTurnStore(db, log), nil
}

func (k *TurnStore) Close() error {
	return k.db.Close()
}

func (k *TurnStore) SaveTurnTables(ctx context.Context, tables []da.TurnTable) error {
	for start := 0; start < len(tables); start += saveBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+saveBatchSize, len(tables))
		if err := k.saveBatch(tables[start:end]); err != nil {
			return err
		}
	}
	k.log.Info("turn tables saved", zap.Int("count", len(tables)))
	return nil
}

func (k *TurnStore) saveBatch(tables []da.TurnTable) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, table := range tables {
		val, err := encodeTurnTable(table)
		if err != nil {
			return util.WrapErrorf(err, util.ErrInternalServerError, "encode turn table of edge %d", table.ViaEdge)
		}
		if err := batch.Set(turnTableKey(table.ViaEdge), val); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		k.log.Error("error saving turn tables", zap.Error(err))
		return err
	}
	return nil
}

// GetTurnTable returns util.ErrNotFound (as the error code) if the via edge was never preprocessed.
func (k *TurnStore) GetTurnTable(viaEdge da.Index) (da.TurnTable, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(turnTableKey(viaEdge))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return da.TurnTable{}, util.WrapErrorf(err, util.ErrNotFound, "turn table of edge %d not found", viaEdge)
	}
	if err != nil {
		return da.TurnTable{}, util.WrapErrorf(err, util.ErrInternalServerError, "get turn table of edge %d", viaEdge)
	}

	table, err := decodeTurnTable(val)
	if err != nil {
		return da.TurnTable{}, util.WrapErrorf(err, util.ErrInternalServerError, "decode turn table of edge %d", viaEdge)
	}
	return table, nil
}

// Count. jumlah turn table yang tersimpan.
func (k *TurnStore) Count() (int, error) {
	count := 0
	err := k.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(turnTablePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
