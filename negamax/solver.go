// Package negamax implements the depth-first, single-threaded
// negamax search with transposition lookup that decides whether the
// side to move in a dōbutsu shōgi position wins, loses, or draws
// under a given ply budget.
package negamax

// thanks Wikipedia, by way of the teacher's own search.go comment:
/*
function search(P, depth) =
    if P.has_survived_try: return 1
    h := encode(P)
    if P.is_terminal_loss: return -1
    if query(h, depth + P.deeper): return r
    if depth + P.deeper <= 0: return 0
    best := -1
    for each child C of P:
        v := -search(C, depth - 1 + P.deeper)
        if v > best: best := v
        if best == 1: break
    enter(h, depth + P.deeper, best)
    return best
*/

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dobutsushogi/solver/codec"
	"github.com/dobutsushogi/solver/movegen"
	"github.com/dobutsushogi/solver/position"
	"github.com/dobutsushogi/solver/table"
)

// Solver runs negamax search against a shared byte-per-index table.
// It is not safe for concurrent use — the search is single-threaded
// by design, matching the table's lack of any locking.
type Solver struct {
	Table   *table.Table
	Verbose bool

	Queries int64
	Matches int64
	Wins    int64
	Losses  int64
}

func NewSolver(t *table.Table) *Solver {
	return &Solver{Table: t}
}

// Search returns the game-theoretic value of p under the given ply
// budget: +1 if the side to move wins with perfect play, -1 if it
// loses, 0 if neither can be established within depth plies (a draw
// at this horizon, not necessarily a true draw). It returns an error
// only if ctx is canceled mid-search.
//
// A completed try (the side to move's own Lion already on its own
// last rank) is checked first and unconditionally, before any table
// query: such a position is structurally a win regardless of depth,
// and it has no encodable index at all — piece.LionPairIndex excludes
// every terminal lion placement from the 39-entry table, so the usual
// encode/query path would never see it.
func (s *Solver) Search(ctx context.Context, p position.Position, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if p.HasSurvivedTry() {
		return 1, nil
	}
	if p.IsTerminalLoss() {
		return -1, nil
	}

	effective := depth + p.Deeper
	idx, encodable := codec.Encode(p)
	if encodable {
		if r, hit := s.query(idx, effective); hit {
			if s.Verbose {
				log.Debug().Str("board", p.String()).Uint64("index", idx).
					Int("depth", effective).Int("value", r).Msg("negamax-table-hit")
			}
			return r, nil
		}
		if s.Verbose {
			log.Debug().Str("board", p.String()).Uint64("index", idx).
				Int("depth", effective).Msg("negamax-table-miss")
		}
	}
	if effective <= 0 {
		return 0, nil
	}

	best := -1
	for _, m := range movegen.Generate(&p) {
		child, won := movegen.Apply(&p, m)
		var v int
		if won {
			v = 1
		} else {
			cv, err := s.Search(ctx, child, effective-1)
			if err != nil {
				return 0, err
			}
			v = -cv
		}
		if v > best {
			best = v
		}
		if s.Verbose {
			log.Debug().Int("from", m.From).Int("to", m.To).Bool("drop", m.Drop).
				Int("value", v).Int("best", best).Msg("negamax-move-considered")
		}
		if best == 1 {
			break
		}
	}

	if encodable {
		s.enter(idx, effective, best)
	}
	if s.Verbose {
		log.Debug().Str("board", p.String()).Str("side", p.SideToMove.String()).
			Int("depth", effective).Int("value", best).Msg("negamax-node-resolved")
	}
	return best, nil
}

// IterativelyDeepen runs Search at depths 1..maxDepth in increasing
// order, reusing the table between iterations so later passes hit
// many entries resolved by earlier, shallower ones. It returns the
// value found at the deepest completed iteration.
func (s *Solver) IterativelyDeepen(ctx context.Context, p position.Position, maxDepth int) (int, error) {
	var v int
	for d := 1; d <= maxDepth; d++ {
		var err error
		v, err = s.Search(ctx, p, d)
		if err != nil {
			return v, err
		}
		log.Info().Int("depth", d).Int("value", v).
			Int64("wins", s.Wins).Int64("losses", s.Losses).
			Int64("queries", s.Queries).Int64("matches", s.Matches).
			Msg("iterative-deepening")
	}
	return v, nil
}

// query reports the table's verdict for idx at depth, if any. A
// WIN/LOSS bit is always authoritative. Otherwise, a stored depth tag
// that already covers this query resolves it as a draw. A genuine
// miss still opportunistically raises the stored depth tag so a later
// query at the same or shallower depth can short-circuit.
func (s *Solver) query(idx uint64, depth int) (int, bool) {
	s.Queries++
	e := s.Table.Get(idx)
	switch {
	case e&Win != 0:
		s.Matches++
		return 1, true
	case e&Loss != 0:
		s.Matches++
		return -1, true
	}
	tag := DepthTag(e)
	if tag*2 >= depth {
		s.Matches++
		return 0, true
	}
	if tag < depth/2 {
		s.Table.Set(idx, WithDepthTag(e, depth/2))
	}
	return 0, false
}

// enter records result (-1, 0, or +1) for idx at depth, raising the
// stored depth tag to depth/2 if that's an improvement.
func (s *Solver) enter(idx uint64, depth, result int) {
	e := s.Table.Get(idx)
	switch {
	case result > 0:
		e |= Win
		s.Wins++
	case result < 0:
		e |= Loss
		s.Losses++
	}
	if tag := depth / 2; tag > DepthTag(e) {
		e = WithDepthTag(e, tag)
	}
	s.Table.Set(idx, e)
}
