// Package config parses the solver's command-line flags into a
// Config, following the same namsral/flag-based loader the rest of
// the teacher's tooling uses.
package config

import (
	"github.com/namsral/flag"

	"github.com/dobutsushogi/solver/codec"
	"github.com/dobutsushogi/solver/position"
)

// Config mirrors the driver's command-line surface, one field per
// flag.
type Config struct {
	Board      string
	Check      bool
	Depth      int
	Empty      bool
	TablePath  string
	GoteToMove bool
	Count      bool
	Print      bool
	Start      uint64
	Stop       uint64
	Verbose    bool
}

// Load parses args into c, applying the same defaults as the original
// CLI: the standard starting board, the full index domain for
// [start,stop), and every switch off.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("dobutsu", flag.ContinueOnError)
	fs.StringVar(&c.Board, "b", position.DefaultBoardString, "initial board as 18-char ASCII (12 board + 6 hand)")
	fs.BoolVar(&c.Check, "c", false, "check: verify encode/decode round-trips over [start,stop) and set LEGAL bits")
	fs.IntVar(&c.Depth, "d", 0, "search depth (plies)")
	fs.BoolVar(&c.Empty, "e", false, "empty: clear WIN/LOSS/depth bits for LEGAL entries")
	fs.StringVar(&c.TablePath, "f", "", "backing file for the table (else anonymous memory)")
	fs.BoolVar(&c.GoteToMove, "g", false, "initial side to move is Gote")
	fs.BoolVar(&c.Count, "n", false, "count legal / won / lost positions in the table")
	fs.BoolVar(&c.Print, "p", false, "print every legal position in [start,stop)")

	var start, stop int64
	fs.Int64Var(&start, "s", 0, "start index (rounded down to even)")
	fs.Int64Var(&stop, "t", int64(codec.DomainSize), "stop index (exclusive)")
	fs.BoolVar(&c.Verbose, "v", false, "verbose tracing")

	if err := fs.Parse(args); err != nil {
		return err
	}

	c.Start = clampToDomain(start) &^ 1 // round down to even
	c.Stop = clampToDomain(stop)
	if c.Stop < c.Start {
		c.Stop = c.Start
	}
	return nil
}

func clampToDomain(v int64) uint64 {
	if v < 0 {
		return 0
	}
	if uint64(v) > codec.DomainSize {
		return codec.DomainSize
	}
	return uint64(v)
}
