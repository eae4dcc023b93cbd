package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"aas-engine/engine"

	gm "github.com/dylhunn/dragontoothmg"
)

// A small suite spanning all four search phases.
var benchFens = []string{
	gm.Startpos,
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"r2q1rk1/pp2bppp/2n1bn2/2pp4/8/1P2PN2/PBPPBPPP/RN1Q1RK1 w - - 0 9",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 14",
	"8/2k5/3p4/p2P1p2/P2P1P2/8/8/4K3 w - - 0 40",
	"8/8/4k3/8/8/4K3/4P3/8 w - - 0 60",
}

func main() {
	depthFlag := flag.Int("depth", 6, "nominal search depth in plies")
	workersFlag := flag.Int("workers", 4, "concurrent orchestrators")
	repeatFlag := flag.Int("repeat", 1, "passes over the position suite per worker")
	moveTimeFlag := flag.Int("movetime", 0, "soft per-search time limit in ms (0 = none)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	if *workersFlag <= 0 {
		log.Fatalf("workers must be positive, got %d", *workersFlag)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	var totalNodes, totalSearches atomic.Uint64
	start := time.Now()

	// One orchestrator per worker: its adaptive state is single-owner.
	var g errgroup.Group
	for w := 0; w < *workersFlag; w++ {
		g.Go(func() error {
			orch := engine.NewOrchestrator(engine.DefaultConfig())
			for pass := 0; pass < *repeatFlag; pass++ {
				for _, fen := range benchFens {
					board := gm.ParseFen(fen)
					_, stats, err := orch.Search(&board, *depthFlag, *moveTimeFlag)
					if err != nil {
						return err
					}
					totalNodes.Add(stats.Nodes)
					totalSearches.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("bench failed: %v", err)
	}

	elapsed := time.Since(start)
	nodes := totalNodes.Load()
	fmt.Printf("searches:  %d\n", totalSearches.Load())
	fmt.Printf("nodes:     %d\n", nodes)
	fmt.Printf("elapsed:   %v\n", elapsed)
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Printf("nps:       %.0f\n", float64(nodes)/secs)
	}
}
