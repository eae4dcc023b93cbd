package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

// maxPly bounds the search stack and all ply-indexed tables.
const maxPly = 100

type killerTable struct {
	moves [maxPly + 1][2]dragontoothmg.Move
}

func (k *killerTable) insert(mv dragontoothmg.Move, ply int) {
	if mv != k.moves[ply][0] {
		k.moves[ply][1] = k.moves[ply][0]
		k.moves[ply][0] = mv
	}
}

func (k *killerTable) isKiller(mv dragontoothmg.Move, ply int) bool {
	return mv == k.moves[ply][0] || mv == k.moves[ply][1]
}

func (k *killerTable) clear() {
	for ply := 0; ply <= maxPly; ply++ {
		k.moves[ply][0] = 0
		k.moves[ply][1] = 0
	}
}

// historyMaxVal keeps quiet-history scores below the counter-move offset so
// the ordering bands stay layered.
const historyMaxVal = 900

type historyTable struct {
	scores [2][64][64]int32
}

// increment rewards a quiet move that caused a beta cutoff.
func (h *historyTable) increment(side int, mv dragontoothmg.Move, depth int) {
	h.scores[side][mv.From()][mv.To()] += int32(depth * depth)
	if h.scores[side][mv.From()][mv.To()] >= historyMaxVal {
		h.age(side)
	}
}

// decrement punishes quiet moves that were tried before the cutoff move.
func (h *historyTable) decrement(side int, mv dragontoothmg.Move) {
	if h.scores[side][mv.From()][mv.To()] > 0 {
		h.scores[side][mv.From()][mv.To()]--
	}
}

// age halves one side's scores so recent history dominates.
func (h *historyTable) age(side int) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			h.scores[side][from][to] /= 2
		}
	}
}

func (h *historyTable) clear() {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			h.scores[0][from][to] = 0
			h.scores[1][from][to] = 0
		}
	}
}
