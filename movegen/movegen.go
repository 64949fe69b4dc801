// Package movegen enumerates and applies dōbutsu shōgi moves directly
// against the absolute-ownership Position representation: board moves
// and hand drops for whichever side is to move, in a fixed
// deterministic order, with no intermediate board re-orientation.
package movegen

import (
	"github.com/dobutsushogi/solver/piece"
	"github.com/dobutsushogi/solver/position"
)

// Move is either a board move (From a board square) or a hand drop
// (From the hand slot holding the dropped piece). To is always a board
// square.
type Move struct {
	From, To int
	Drop     bool
}

// Generate returns every legal move for p.SideToMove, in deterministic
// order: board moves first (ascending source square, ascending offset
// index for that piece's kind), then drops (ascending hand slot,
// ascending destination square).
func Generate(p *position.Position) []Move {
	var moves []Move
	mover := p.SideToMove

	for sq := 0; sq < piece.NumBoardSquares; sq++ {
		pc := p.Slots[sq]
		if pc.IsEmpty() || pc.Side() != mover {
			continue
		}
		for _, i := range piece.Offsets(pc.Animal()) {
			d, ok := piece.Destination(mover, sq, i)
			if !ok {
				continue
			}
			dst := p.Slots[d]
			if !dst.IsEmpty() && dst.Side() == mover {
				continue
			}
			moves = append(moves, Move{From: sq, To: d})
		}
	}

	hand := p.Hand()
	for slot := 0; slot < piece.NumHandSlots; slot++ {
		pc := hand[slot]
		if pc.IsEmpty() || pc.Side() != mover {
			continue
		}
		if slot > 0 && hand[slot-1].Side() == mover && hand[slot-1].Animal() == pc.Animal() {
			continue // duplicate of the previous identical hand piece
		}
		for sq := 0; sq < piece.NumBoardSquares; sq++ {
			if !p.Slots[sq].IsEmpty() {
				continue
			}
			moves = append(moves, Move{From: piece.NumBoardSquares + slot, To: sq, Drop: true})
		}
	}

	return moves
}

// Apply returns the child position reached by playing m against p, and
// whether that move captures the opponent's Lion (an immediate win for
// the mover). Apply never mutates p.
func Apply(p *position.Position, m Move) (position.Position, bool) {
	child := *p
	mover := p.SideToMove
	child.Deeper = 0

	moverPiece := p.Slots[m.From]
	won := false

	if !m.Drop {
		captured := p.Slots[m.To]
		if !captured.IsEmpty() {
			if captured.Animal() == piece.Lion {
				won = true
			}
			dropped := captured.Demote().FlipSide()
			handStart := piece.NumBoardSquares
			slot := child.Find(piece.New(piece.Empty, piece.Sente), handStart, piece.NumSlots)
			child.Slots[slot] = dropped
		}
	}

	child.Slots[m.To] = moverPiece
	child.Slots[m.From] = piece.New(piece.Empty, piece.Sente)

	if moverPiece.Animal() == piece.Chick && piece.OwnLastRank(mover, m.To) {
		child.Slots[m.To] = moverPiece.Promote()
	} else if moverPiece.Animal() == piece.Lion && piece.OwnLastRank(mover, m.To) {
		child.Deeper = 2
	}

	child.SideToMove = mover.Opponent()
	child.SortHand()
	return child, won
}
