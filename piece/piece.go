// Package piece defines the five animal kinds of dōbutsu shōgi, the two
// sides, their compact byte encoding, and the static board-geometry and
// move-offset tables the rest of the solver is built on.
package piece

import "fmt"

// Animal is one of the five piece kinds, or Empty.
type Animal uint8

const (
	Empty Animal = iota
	Chick
	Hen
	Elephant
	Giraffe
	Lion
)

func (a Animal) String() string {
	switch a {
	case Empty:
		return "empty"
	case Chick:
		return "chick"
	case Hen:
		return "hen"
	case Elephant:
		return "elephant"
	case Giraffe:
		return "giraffe"
	case Lion:
		return "lion"
	}
	return fmt.Sprintf("animal(%d)", uint8(a))
}

// Side identifies a player. Sente moves first.
type Side uint8

const (
	Sente Side = iota
	Gote
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == Sente {
		return "sente"
	}
	return "gote"
}

const (
	animalMask Piece = 0x0f
	goteBit    Piece = 0x10
)

// Piece packs an Animal tag into its low nibble and a Gote-ownership bit
// above it. The zero value is Empty, which has no side.
type Piece uint8

// New returns the Piece for the given animal and side. Side is ignored
// for Empty.
func New(a Animal, s Side) Piece {
	p := Piece(a)
	if s == Gote && a != Empty {
		p |= goteBit
	}
	return p
}

func (p Piece) Animal() Animal {
	return Animal(p & animalMask)
}

func (p Piece) Side() Side {
	if p&goteBit != 0 {
		return Gote
	}
	return Sente
}

func (p Piece) IsEmpty() bool {
	return p.Animal() == Empty
}

// Promote turns a Chick into a Hen, keeping its side. It panics if p is
// not a Chick — callers are expected to check first.
func (p Piece) Promote() Piece {
	if p.Animal() != Chick {
		panic("piece: Promote called on non-Chick")
	}
	return (p &^ animalMask) | Piece(Hen)
}

// Demote turns a Hen back into an un-promoted Chick. Anything else is
// returned unchanged.
func (p Piece) Demote() Piece {
	if p.Animal() != Hen {
		return p
	}
	return (p &^ animalMask) | Piece(Chick)
}

// FlipSide toggles ownership of a non-empty piece; Empty is unaffected.
func (p Piece) FlipSide() Piece {
	if p.IsEmpty() {
		return p
	}
	return p ^ goteBit
}

func (p Piece) String() string {
	letters := [...]byte{' ', 'C', 'D', 'E', 'G', 'L'}
	c := letters[p.Animal()]
	if p.Side() == Gote && c != ' ' {
		c = c - 'A' + 'a'
	}
	return string(c)
}
