package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"aas-engine/engine"

	gm "github.com/dylhunn/dragontoothmg"
)

const defaultDepth = 8

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	uciLoop(logger)
}

func uciLoop(logger zerolog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	board := gm.ParseFen(gm.Startpos) // the game board

	cfg := engine.DefaultConfig()
	cfg.Logger = logger
	orch := engine.NewOrchestrator(cfg)

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name AAS Engine")
			fmt.Println("id author aas-engine contributors")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			board = gm.ParseFen(gm.Startpos)
			orch.ResetForNewGame()
		case "position":
			board = parsePosition(line)
		case "go":
			depth, timeMs := parseGo(line, board.Wtomove)
			res, stats, err := orch.Search(&board, depth, timeMs)
			if err != nil {
				logger.Error().Err(err).Msg("search failed")
				continue
			}
			if !res.HasMove {
				fmt.Println("bestmove 0000")
				continue
			}
			fmt.Printf("info depth %d nodes %d time %d score cp %d string phase %s entropy %.2f\n",
				stats.Depth, stats.Nodes, stats.TimeMs, int(res.Value*100), stats.Phase, stats.Entropy)
			fmt.Println("bestmove", res.Move.String())
		case "diag":
			fmt.Printf("info string %+v\n", orch.Diagnostics())
		case "quit":
			return
		}
	}
}

func parsePosition(line string) gm.Board {
	board := gm.ParseFen(gm.Startpos)

	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip the first token
	if !posScanner.Scan() {
		return board
	}
	if strings.ToLower(posScanner.Text()) == "startpos" {
		posScanner.Scan() // advance the scanner to leave it in a consistent state
	} else if strings.ToLower(posScanner.Text()) == "fen" {
		fenstr := ""
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fenstr += posScanner.Text() + " "
		}
		if fenstr == "" {
			fmt.Println("info string Invalid fen position")
			return board
		}
		board = gm.ParseFen(strings.TrimSpace(fenstr))
	} else {
		fmt.Println("info string Invalid position subcommand")
		return board
	}
	if strings.ToLower(posScanner.Text()) != "moves" {
		return board
	}
	for posScanner.Scan() { // for each move
		moveStr := strings.ToLower(posScanner.Text())
		if !applyMove(&board, moveStr) {
			fmt.Println("info string Move", moveStr, "not found for position", board.ToFen())
			break
		}
	}
	return board
}

func applyMove(board *gm.Board, moveStr string) bool {
	for _, mv := range board.GenerateLegalMoves() {
		if mv.String() == moveStr {
			board.Apply(mv)
			return true
		}
	}
	parsed, err := gm.ParseMove(moveStr)
	if err != nil {
		return false
	}
	for _, mv := range board.GenerateLegalMoves() {
		if mv.From() == parsed.From() && mv.To() == parsed.To() && mv.Promote() == parsed.Promote() {
			board.Apply(mv)
			return true
		}
	}
	return false
}

func parseGo(line string, wtomove bool) (depth int, timeMs int) {
	depth = defaultDepth

	var wTime, bTime, wInc, bInc, moveTime int
	goScanner := bufio.NewScanner(strings.NewReader(line))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip the first token
	for goScanner.Scan() {
		nextToken := strings.ToLower(goScanner.Text())
		var target *int
		switch nextToken {
		case "depth":
			target = &depth
		case "movetime":
			target = &moveTime
		case "wtime":
			target = &wTime
		case "btime":
			target = &bTime
		case "winc":
			target = &wInc
		case "binc":
			target = &bInc
		case "infinite":
			continue
		default:
			continue
		}
		if !goScanner.Scan() {
			break
		}
		if v, err := strconv.Atoi(goScanner.Text()); err == nil {
			*target = v
		}
	}

	if moveTime > 0 {
		return depth, moveTime
	}
	remaining, inc := wTime, wInc
	if !wtomove {
		remaining, inc = bTime, bInc
	}
	if remaining > 0 {
		// Budget a slice of the clock plus most of the increment.
		return depth, remaining/20 + inc/2
	}
	return depth, 0
}
