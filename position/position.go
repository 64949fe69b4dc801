// Package position holds the value-type board representation the rest
// of the solver operates on: a fixed array of 18 slots (12 board squares
// followed by 6 hand slots) plus whose turn it is and any pending
// try-rule depth bonus.
package position

import (
	"errors"
	"sort"

	"github.com/dobutsushogi/solver/piece"
)

// ErrBadBoardString is returned by Parse when its input cannot be
// interpreted as a board string.
var ErrBadBoardString = errors.New("position: malformed board string")

// Position is a complete game state: the contents of the 12 board
// squares and 6 hand slots, whose turn it is, and the try-rule depth
// bonus in effect for the side to move.
//
// Piece ownership is always absolute: a Sente-tagged Piece belongs to
// Sente regardless of whose turn it is. SideToMove is tracked
// separately, and movegen mirrors offsets for Gote rather than ever
// physically reorienting the board.
type Position struct {
	Slots      [piece.NumSlots]piece.Piece
	SideToMove piece.Side

	// Deeper is the number of extra plies added to the search budget of
	// this position because the side that just moved put its Lion on
	// its own last rank, so the side to move's chance to capture that
	// Lion is always searched. It is 2 immediately after
	// such a move (one ply for each side) and is never inherited
	// beyond the position where it was earned; Apply always starts a
	// fresh child at Deeper 0 unless that child's own move re-earns it.
	Deeper int
}

// Board returns the 12 board squares.
func (p *Position) Board() []piece.Piece {
	return p.Slots[:piece.NumBoardSquares]
}

// Hand returns the 6 hand slots.
func (p *Position) Hand() []piece.Piece {
	return p.Slots[piece.NumBoardSquares:]
}

// Equal reports whether p and q have identical slots, side to move, and
// Deeper. It does not canonicalize hand order first; callers comparing
// positions built independently should SortHand both first.
func (p *Position) Equal(q *Position) bool {
	if p.SideToMove != q.SideToMove || p.Deeper != q.Deeper {
		return false
	}
	return p.Slots == q.Slots
}

// Find returns the index of the first slot in [lo, hi) holding exactly
// pc, or -1 if there is none.
func (p *Position) Find(pc piece.Piece, lo, hi int) int {
	for i := lo; i < hi; i++ {
		if p.Slots[i] == pc {
			return i
		}
	}
	return -1
}

// FindLion returns the board square holding side s's Lion, or -1 if it
// has none (meaning s has already lost).
func (p *Position) FindLion(s piece.Side) int {
	want := piece.New(piece.Lion, s)
	return p.Find(want, 0, piece.NumBoardSquares)
}

// IsTerminalLoss reports whether the side to move has already lost by
// having no Lion on the board. The solver checks this before
// generating moves, rather than generating any move for a position
// that can never occur mid-search.
func (p *Position) IsTerminalLoss() bool {
	return p.FindLion(p.SideToMove) < 0
}

// HasSurvivedTry reports whether the side to move already has its own
// Lion sitting on its own last rank — a completed try. Such a
// position is a structural, depth-independent win for the side to
// move: it is unencodable (piece.LionPairIndex excludes terminal lion
// placements), so it can never be resolved by a table query, and it
// must be checked before move generation rather than discovered by
// searching children.
func (p *Position) HasSurvivedTry() bool {
	sq := p.FindLion(p.SideToMove)
	return sq >= 0 && piece.OwnLastRank(p.SideToMove, sq)
}

// SortHand rewrites p's hand slots into canonical order: Empty slots
// first, then non-Lion pieces ascending by Animal, ties broken
// Sente-before-Gote. This makes two positions that differ only in the
// order pieces were captured compare and encode identically.
func (p *Position) SortHand() {
	hand := p.Hand()
	sort.Slice(hand, func(i, j int) bool {
		a, b := hand[i], hand[j]
		if a.IsEmpty() != b.IsEmpty() {
			return a.IsEmpty()
		}
		if a.Animal() != b.Animal() {
			return a.Animal() < b.Animal()
		}
		return a.Side() < b.Side()
	})
}

// Flip returns the position seen from the other side: every piece's
// ownership is toggled, the board is rotated 180 degrees (square i
// swaps with square NumBoardSquares-1-i) so that "up" still means
// "toward the mover's own last rank", and SideToMove is toggled. Deeper
// carries through unchanged since it describes a ply budget, not an
// orientation.
//
// Flip is used only by codec, to view a Gote-to-move position from
// Sente's side before packing it and to restore odd indices after
// unpacking; it is never part of move generation or Apply, which both
// work directly against absolute ownership.
func (p *Position) Flip() Position {
	var q Position
	for i := 0; i < piece.NumBoardSquares; i++ {
		q.Slots[i] = p.Slots[piece.NumBoardSquares-1-i].FlipSide()
	}
	for i := piece.NumBoardSquares; i < piece.NumSlots; i++ {
		q.Slots[i] = p.Slots[i].FlipSide()
	}
	q.SideToMove = p.SideToMove.Opponent()
	q.Deeper = p.Deeper
	return q
}
