package position

import (
	"fmt"
	"strings"

	"github.com/dobutsushogi/solver/piece"
)

// DefaultBoardString is the standard dōbutsu shōgi starting position:
// Elephant-Lion-Giraffe on Sente's back rank (squares 0..2), a Chick in
// front of the Lion, mirrored for Gote, empty hands.
const DefaultBoardString = "ELG C  c gle      "

var charToAnimal = map[byte]piece.Animal{
	'C': piece.Chick,
	'D': piece.Hen,
	'E': piece.Elephant,
	'G': piece.Giraffe,
	'L': piece.Lion,
}

func charToPiece(c byte) (piece.Piece, bool) {
	if c == ' ' {
		return piece.New(piece.Empty, piece.Sente), true
	}
	side := piece.Sente
	uc := c
	if c >= 'a' && c <= 'z' {
		side = piece.Gote
		uc = c - 'a' + 'A'
	}
	a, ok := charToAnimal[uc]
	if !ok {
		return 0, false
	}
	return piece.New(a, side), true
}

// Parse decodes an 18-character board string (spec.md §6: squares
// 0..11 then hand slots 12..17, uppercase Sente, lowercase Gote, space
// for empty) into a Position with the given side to move. Deeper is
// always 0 for a freshly parsed position — the try-rule bonus only
// ever arises as a consequence of a specific move, never as part of a
// starting position.
func Parse(s string, stm piece.Side) (Position, error) {
	if len(s) != piece.NumSlots {
		return Position{}, ErrBadBoardString
	}
	var p Position
	for i := 0; i < piece.NumSlots; i++ {
		pc, ok := charToPiece(s[i])
		if !ok {
			return Position{}, ErrBadBoardString
		}
		p.Slots[i] = pc
	}
	p.SideToMove = stm
	return p, nil
}

func pieceChar(pc piece.Piece) byte {
	return []byte(pc.String())[0]
}

// String renders p as its 18-character board string (see Parse),
// ignoring SideToMove and Deeper — callers that need those should
// print them separately.
func (p *Position) String() string {
	var b strings.Builder
	for _, pc := range p.Slots {
		b.WriteByte(pieceChar(pc))
	}
	return b.String()
}

// Pretty renders p as a human-readable 3x4 grid with the hand listed
// below, for debug output (the -p print mode).
func (p *Position) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "to move: %s\n", p.SideToMove)
	for r := piece.Rows - 1; r >= 0; r-- {
		for c := 0; c < piece.Cols; c++ {
			b.WriteByte(pieceChar(p.Slots[r*piece.Cols+c]))
		}
		b.WriteByte('\n')
	}
	b.WriteString("hand: ")
	for _, pc := range p.Hand() {
		if !pc.IsEmpty() {
			b.WriteByte(pieceChar(pc))
		}
	}
	b.WriteByte('\n')
	return b.String()
}
