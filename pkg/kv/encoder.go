package kv

import (
	"encoding/binary"

	"github.com/DataDog/zstd"
	kbinary "github.com/kelindar/binary"
	da "github.com/lintang-b-s/navigatorx-guidance/pkg/datastructure"
)

const turnTablePrefix = "turn:"

// turnTableKey. prefix + via edge id big endian, supaya iterasi prefix urut berdasarkan edge id.
func turnTableKey(viaEdge da.Index) []byte {
	key := make([]byte, len(turnTablePrefix)+4)
	copy(key, turnTablePrefix)
	binary.BigEndian.PutUint32(key[len(turnTablePrefix):], uint32(viaEdge))
	return key
}

func encodeTurnTable(table da.TurnTable) ([]byte, error) {
	bb, err := kbinary.Marshal(table)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeTurnTable(bbCompressed []byte) (da.TurnTable, error) {
	var table da.TurnTable
	bb, err := decompress(bbCompressed)
	if err != nil {
		return table, err
	}
	err = kbinary.Unmarshal(bb, &table)
	return table, err
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}
