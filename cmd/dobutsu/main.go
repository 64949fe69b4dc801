package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dobutsushogi/solver/codec"
	"github.com/dobutsushogi/solver/config"
	"github.com/dobutsushogi/solver/negamax"
	"github.com/dobutsushogi/solver/piece"
	"github.com/dobutsushogi/solver/position"
	"github.com/dobutsushogi/solver/table"
)

const banner = "dobutsu: a dōbutsu shōgi endgame solver"

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	fmt.Println(banner)
	log.Info().Str("executable-path", filepath.Dir(ex)).Msg("starting up")

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not parse flags")
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
	log.Logger = logger

	tbl, usingTable := openTable(cfg)
	check, count, empty := cfg.Check, cfg.Count, cfg.Empty
	if !usingTable {
		if check || count || empty {
			log.Warn().Msg("no persistent hashtable: disabling -c, -n, -e")
		}
		check, count, empty = false, false, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got interrupt, unmapping table")
		cancel()
		if tbl != nil {
			if err := tbl.Close(); err != nil {
				log.Error().Err(err).Msg("error closing table")
			}
		}
		os.Exit(1)
	}()

	if check || cfg.Print {
		checkOrPrint(tbl, cfg, check)
	}

	if cfg.Depth > 0 {
		runSearch(ctx, tbl, cfg)
	}

	if count || empty {
		countOrEmpty(tbl, cfg, count, empty)
	}

	if tbl != nil {
		if err := tbl.Close(); err != nil {
			log.Error().Err(err).Msg("error closing table")
		}
	}
}

// openTable honors -f: a path means file-backed and persistent, no
// path means anonymous memory. A failure to open or map the file falls
// back to anonymous memory and reports false, so the caller disables
// -c, -n and -e, which are meaningless without persistence. If the
// anonymous mapping fails too, there is no table at all.
func openTable(cfg *config.Config) (*table.Table, bool) {
	usable := true
	if cfg.TablePath != "" {
		tbl, err := table.NewFileBacked(cfg.TablePath, codec.DomainSize)
		if err != nil {
			log.Error().Err(err).Msg("could not open file-backed table, falling back to anonymous memory")
			usable = false
		} else {
			return tbl, true
		}
	}

	if fits, total := table.RecommendedAnonymousCap(codec.DomainSize); !fits {
		log.Warn().Uint64("domain-size-bytes", codec.DomainSize).Uint64("total-memory-bytes", total).
			Msg("anonymous table exceeds total system memory; expect heavy paging")
	}
	tbl, err := table.NewAnonymous(codec.DomainSize)
	if err != nil {
		log.Error().Err(err).Msg("could not allocate anonymous table")
		return nil, false
	}
	return tbl, usable
}

// checkOrPrint iterates [start,stop) over even indices, decoding each.
// -p prints every legal position it finds; -c additionally re-encodes
// and marks the table LEGAL on a match, halting on the first mismatch
// (which would indicate a codec bug, not a legality question).
func checkOrPrint(tbl *table.Table, cfg *config.Config, check bool) {
	var n uint64
	for h := cfg.Start; h < cfg.Stop; h += 2 {
		p, ok := codec.Decode(h)
		if !ok {
			continue
		}
		n++
		if cfg.Print {
			fmt.Printf("0x%x\n%s\n", h, p.Pretty())
		}
		if check {
			reencoded, ok := codec.Encode(p)
			if !ok || reencoded != h {
				log.Error().Uint64("index", h).Uint64("reencoded", reencoded).Msg("round-trip mismatch")
				break
			}
			tbl.Set(h, tbl.Get(h)|negamax.Legal)
		}
	}
	total := (cfg.Stop - cfg.Start) / 2
	var pct float64
	if total > 0 {
		pct = 100 * float64(n) / float64(total)
	}
	fmt.Printf("%d positions (%.3g%%)\n", n, pct)
}

// runSearch deepens from ply 1 to cfg.Depth against the board cfg.Board
// describes, via Solver.IterativelyDeepen, which logs a structured
// summary line (depth, value, wins, losses, queries, matches) after
// every ply through zerolog.
func runSearch(ctx context.Context, tbl *table.Table, cfg *config.Config) {
	side := piece.Sente
	if cfg.GoteToMove {
		side = piece.Gote
	}
	root, err := position.Parse(cfg.Board, side)
	if err != nil {
		log.Fatal().Err(err).Str("board", cfg.Board).Msg("bad board string")
	}

	s := negamax.NewSolver(tbl)
	s.Verbose = cfg.Verbose
	if _, err := s.IterativelyDeepen(ctx, root, cfg.Depth); err != nil {
		log.Info().Msg("search interrupted")
	}
}

// countOrEmpty iterates [start,stop) over the table directly (no
// decode needed): it tallies LEGAL/WIN/LOSS entries, and with -e also
// clears WIN/LOSS/depth bits from every LEGAL entry it visits.
func countOrEmpty(tbl *table.Table, cfg *config.Config, count, empty bool) {
	var n, w, l uint64
	for h := cfg.Start; h < cfg.Stop; h += 2 {
		e := tbl.Get(h)
		if e&negamax.Legal == 0 {
			continue
		}
		n++
		if e&negamax.Win != 0 {
			w++
		}
		if e&negamax.Loss != 0 {
			l++
		}
		if empty && e&^negamax.Legal != 0 {
			tbl.Set(h, e&negamax.Legal)
		}
	}
	if count {
		total := (cfg.Stop - cfg.Start) / 2
		var pct float64
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		fmt.Printf("%d positions (%.3g%%), %d wins, %d losses\n", n, pct, w, l)
	}
}
