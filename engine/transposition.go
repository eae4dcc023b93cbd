package engine

import (
	"unsafe"

	"github.com/dylhunn/dragontoothmg"
)

const (
	ttAlphaFlag uint8 = iota
	ttBetaFlag
	ttExactFlag

	ttClusterSize   = 4
	defaultTTSizeMB = 64

	// Sentinel for probes that found nothing usable.
	unusableScore int32 = -32750
)

type ttEntry struct {
	hash  uint64
	move  dragontoothmg.Move
	score int32
	depth int8
	flag  uint8
}

// transTable is a clustered transposition table owned by one tactical
// searcher instance. Replacement prefers same-hash slots, then empty slots,
// then the shallowest entry in the cluster.
type transTable struct {
	entries      []ttEntry
	clusterCount uint64
}

func newTransTable(sizeMB int) *transTable {
	entrySize := uint64(unsafe.Sizeof(ttEntry{}))
	clusterBytes := entrySize * ttClusterSize
	clusterCount := uint64(sizeMB) * 1024 * 1024 / clusterBytes
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &transTable{
		entries:      make([]ttEntry, clusterCount*ttClusterSize),
		clusterCount: clusterCount,
	}
}

func (tt *transTable) clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

func (tt *transTable) probe(hash uint64) (entry *ttEntry, found bool) {
	base := int(hash % tt.clusterCount * ttClusterSize)
	for i := 0; i < ttClusterSize; i++ {
		if tt.entries[base+i].hash == hash {
			return &tt.entries[base+i], true
		}
	}
	return nil, false
}

// usable decides whether a probed entry can answer the current node, and
// returns the bound-adjusted score when it can. Mate scores are normalized
// back from root-relative storage to the current ply.
func (tt *transTable) usable(entry *ttEntry, hash uint64, depth int8, alpha, beta int32, ply int) (bool, int32) {
	if entry == nil || entry.hash != hash || entry.depth < depth {
		return false, unusableScore
	}

	score := entry.score
	if score > Checkmate {
		score -= int32(ply)
	} else if score < -Checkmate {
		score += int32(ply)
	}

	switch entry.flag {
	case ttExactFlag:
		return true, score
	case ttAlphaFlag:
		if score <= alpha {
			return true, alpha
		}
	case ttBetaFlag:
		if score >= beta {
			return true, beta
		}
	}
	return false, unusableScore
}

func (tt *transTable) store(hash uint64, depth int8, ply int, move dragontoothmg.Move, score int32, flag uint8) {
	base := int(hash % tt.clusterCount * ttClusterSize)

	// Mate scores are stored relative to the root.
	if score > Checkmate {
		score += int32(ply)
	} else if score < -Checkmate {
		score -= int32(ply)
	}

	targetIdx := -1
	for i := 0; i < ttClusterSize; i++ {
		if tt.entries[base+i].hash == hash {
			targetIdx = base + i
			break
		}
	}
	if targetIdx == -1 {
		for i := 0; i < ttClusterSize; i++ {
			if tt.entries[base+i].hash == 0 {
				targetIdx = base + i
				break
			}
		}
	}
	if targetIdx == -1 {
		targetIdx = base
		minDepth := tt.entries[base].depth
		for i := 1; i < ttClusterSize; i++ {
			if tt.entries[base+i].depth < minDepth {
				minDepth = tt.entries[base+i].depth
				targetIdx = base + i
			}
		}
	}

	tt.entries[targetIdx] = ttEntry{
		hash:  hash,
		move:  move,
		score: score,
		depth: depth,
		flag:  flag,
	}
}
