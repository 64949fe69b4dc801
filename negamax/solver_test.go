package negamax

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/dobutsushogi/solver/codec"
	"github.com/dobutsushogi/solver/piece"
	"github.com/dobutsushogi/solver/position"
	"github.com/dobutsushogi/solver/table"
)

// The table must span the full index domain even in tests: an
// anonymous mapping is lazily paged, so this costs no real memory
// until a test actually touches a high index.
func newTestSolver(is *is.I) *Solver {
	tbl, err := table.NewAnonymous(codec.DomainSize)
	is.NoErr(err)
	return NewSolver(tbl)
}

func TestSearchTerminalLossReturnsMinusOne(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	// Sente to move, no Sente Lion on the board.
	var p position.Position
	p.Slots[10] = piece.New(piece.Lion, piece.Gote)
	p.SideToMove = piece.Sente

	v, err := s.Search(context.Background(), p, 5)
	is.NoErr(err)
	is.Equal(v, -1)
}

func TestSearchImmediateLionCaptureWins(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	// Sente Chick one step from capturing Gote's undefended Lion.
	var p position.Position
	p.Slots[1] = piece.New(piece.Lion, piece.Sente)
	p.Slots[4] = piece.New(piece.Chick, piece.Sente)
	p.Slots[7] = piece.New(piece.Lion, piece.Gote)
	p.SideToMove = piece.Sente

	v, err := s.Search(context.Background(), p, 1)
	is.NoErr(err)
	is.Equal(v, 1)
}

func TestSearchOwnLionOnLastRankWinsImmediately(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	// Sente Lion already on square 9, its own last rank — a completed
	// try. Deeper is set to 2 here only to show that the win is
	// unconditional and doesn't depend on depth or Deeper at all.
	var p position.Position
	p.Slots[9] = piece.New(piece.Lion, piece.Sente)
	p.Slots[0] = piece.New(piece.Lion, piece.Gote)
	p.SideToMove = piece.Sente
	p.Deeper = 2

	v, err := s.Search(context.Background(), p, 1)
	is.NoErr(err)
	is.Equal(v, 1)
}

func TestSearchOpponentCapturesSurvivedLionBeforeTryCompletes(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	// Same Sente Lion on square 9, but now it's Gote to move and
	// Gote's Giraffe on square 10 can capture it immediately. The
	// structural try-win check only ever looks at the side to move's
	// own Lion, so it must not fire here: Gote should be found to win
	// by capture instead of Sente being credited a false try-win.
	var p position.Position
	p.Slots[9] = piece.New(piece.Lion, piece.Sente)
	p.Slots[10] = piece.New(piece.Giraffe, piece.Gote)
	p.Slots[11] = piece.New(piece.Lion, piece.Gote)
	p.SideToMove = piece.Gote
	p.Deeper = 2

	v, err := s.Search(context.Background(), p, 1)
	is.NoErr(err)
	is.Equal(v, 1) // value from Gote's own perspective: Gote wins by capturing
}

func TestSearchZeroDepthIsADraw(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	p, err := position.Parse(position.DefaultBoardString, piece.Sente)
	is.NoErr(err)

	v, err := s.Search(context.Background(), p, 0)
	is.NoErr(err)
	is.Equal(v, 0)
}

func TestSearchHonorsContextCancellation(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	p, err := position.Parse(position.DefaultBoardString, piece.Sente)
	is.NoErr(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Search(ctx, p, 3)
	is.True(err != nil)
}

func TestQueryThenEnterRoundTrips(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	s.enter(42, 6, 1)
	r, hit := s.query(42, 6)
	is.True(hit)
	is.Equal(r, 1)
}

func TestQueryDrawHitRequiresDeepEnoughTag(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	s.enter(7, 4, 0) // tag becomes 4/2 = 2
	_, hit := s.query(7, 6)
	is.True(!hit) // 2*2=4 < 6, not deep enough yet; the miss raises the tag to 6/2 = 3

	_, hit = s.query(7, 4)
	is.True(hit) // 3*2=6 >= 4
}

func TestEnterRaisesDepthTagMonotonically(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	s.enter(3, 10, -1)
	is.Equal(DepthTag(s.Table.Get(3)), 5)

	s.enter(3, 4, -1) // shallower re-entry must not lower the tag
	is.Equal(DepthTag(s.Table.Get(3)), 5)
}

func TestIterativelyDeepenReturnsFinalDepthValue(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(is)
	defer s.Table.Close()

	var p position.Position
	p.Slots[1] = piece.New(piece.Lion, piece.Sente)
	p.Slots[4] = piece.New(piece.Chick, piece.Sente)
	p.Slots[7] = piece.New(piece.Lion, piece.Gote)
	p.SideToMove = piece.Sente

	v, err := s.IterativelyDeepen(context.Background(), p, 3)
	is.NoErr(err)
	is.Equal(v, 1)
}
