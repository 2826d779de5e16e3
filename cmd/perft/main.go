package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/fen"
	"github.com/benbeisheim/chessrules/internal/model"
)

func main() {
	start := flag.String("fen", fen.StartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check every root move against dragontoothmg")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	setup, err := fen.Parse(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse fen: %v\n", err)
		os.Exit(2)
	}
	state, err := engine.InitGame(model.PlayerInfo{}, setup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(2)
	}

	if *divide || *verify {
		began := time.Now()
		div, err := engine.Divide(state, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "divide: %v\n", err)
			os.Exit(1)
		}
		var oracle map[string]uint64
		if *verify {
			oracle = dragontoothDivide(*start, *depth)
		}

		var sum uint64
		mismatches := 0
		for _, d := range div {
			sum += d.Nodes
			if oracle == nil {
				fmt.Printf("%s: %d\n", d.Move, d.Nodes)
				continue
			}
			want, ok := oracle[d.Move]
			delete(oracle, d.Move)
			if !ok || want != d.Nodes {
				mismatches++
				fmt.Printf("%s: %d (dragontoothmg %d)\n", d.Move, d.Nodes, want)
			} else {
				fmt.Printf("%s: %d\n", d.Move, d.Nodes)
			}
		}
		missing := make([]string, 0, len(oracle))
		for m := range oracle {
			missing = append(missing, m)
		}
		sort.Strings(missing)
		for _, m := range missing {
			mismatches++
			fmt.Printf("%s: missing (dragontoothmg %d)\n", m, oracle[m])
		}
		fmt.Printf("Total: %d (%s)\n", sum, time.Since(began))
		if mismatches > 0 {
			fmt.Fprintf(os.Stderr, "%d root moves disagree with dragontoothmg\n", mismatches)
			os.Exit(1)
		}
		return
	}

	began := time.Now()
	nodes, err := engine.Perft(state, *depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(began)
	nps := float64(nodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%d \t%d \t\t%s \t%.0f\n", *depth, nodes, elapsed, nps)
}

func dragontoothDivide(fenStr string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fenStr)
	out := map[string]uint64{}
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		out[m.String()] = dragontoothPerft(&b, depth-1)
		unapply()
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}
