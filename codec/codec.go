// Package codec implements the bijection between a 35-bit index and a
// legal, to-move dōbutsu shōgi Position. The layout packs a
// side-to-move bit, ten 2-bit square descriptors, six ownership bits,
// two promotion bits and a 39-way lion-pair index into a single
// uint64 by shift-and-mask.
package codec

import (
	"github.com/dobutsushogi/solver/piece"
	"github.com/dobutsushogi/solver/position"
)

const (
	sideShift = 0

	squareShift = 1
	squareWidth = 2
	numSquares  = piece.NumBoardSquares - 2 // excludes the two Lion squares

	ownerShift = squareShift + squareWidth*numSquares // 21
	ownerWidth = 6

	promoShift = ownerShift + ownerWidth // 27
	promoWidth = 2

	lionShift = promoShift + promoWidth // 29
	lionWidth = 6
)

// DomainSize is the total number of indices, legal or not, spanned by
// the codec: one 6-bit lion-pair slot times 2^29 for everything else.
const DomainSize = uint64(len(piece.LionPairs)) << lionShift

// squareDescriptor maps a non-Lion piece's animal to its 2-bit board
// descriptor. Ownership and promotion are encoded separately.
func squareDescriptor(a piece.Animal) uint64 {
	switch a {
	case piece.Empty:
		return 0
	case piece.Chick, piece.Hen:
		return 1
	case piece.Elephant:
		return 2
	case piece.Giraffe:
		return 3
	}
	return 0
}

// descriptorAnimal is the inverse of squareDescriptor, always returning
// the un-promoted kind (promotion is applied afterward).
func descriptorAnimal(d uint64) piece.Animal {
	switch d {
	case 1:
		return piece.Chick
	case 2:
		return piece.Elephant
	case 3:
		return piece.Giraffe
	}
	return piece.Empty
}

// handFillPriority is the order in which Decode hands out the copies
// of Chick/Elephant/Giraffe that weren't placed on the board: highest
// animal tag first, placed from the last hand slot downward.
var handFillPriority = []piece.Animal{piece.Giraffe, piece.Elephant, piece.Chick}

// Encode returns the index of p, and true if p's lion placement is
// reachable. Encode canonicalizes by flipping p to Sente's point of
// view when Gote is to move; the side-to-move bit records whether that
// flip happened. It does not itself re-validate p's invariants beyond
// what's needed to build a consistent index — callers that accept
// externally-constructed positions should round-trip through Decode
// first.
func Encode(p position.Position) (uint64, bool) {
	canonical := p
	if p.SideToMove == piece.Gote {
		canonical = p.Flip()
	}
	canonical.SortHand()

	senteLionSq := canonical.FindLion(piece.Sente)
	goteLionSq := canonical.FindLion(piece.Gote)
	if senteLionSq < 0 || goteLionSq < 0 {
		return 0, false
	}
	lionIdx, ok := piece.LionPairIndex(senteLionSq, goteLionSq)
	if !ok {
		return 0, false
	}

	var squareBits, ownerBits, promoBits uint64
	k := 0 // 0..9, non-Lion board squares in ascending order
	for sq := 0; sq < piece.NumBoardSquares; sq++ {
		if sq == senteLionSq || sq == goteLionSq {
			continue
		}
		squareBits |= squareDescriptor(canonical.Slots[sq].Animal()) << uint(squareWidth*k)
		k++
	}

	owners, promos := 0, 0
	for sq := 0; sq < piece.NumSlots; sq++ {
		if sq == senteLionSq || sq == goteLionSq {
			continue
		}
		pc := canonical.Slots[sq]
		if pc.IsEmpty() {
			continue
		}
		if pc.Side() == piece.Gote {
			ownerBits |= 1 << uint(owners)
		}
		owners++
		if pc.Animal() == piece.Chick || pc.Animal() == piece.Hen {
			if pc.Animal() == piece.Hen {
				promoBits |= 1 << uint(promos)
			}
			promos++
		}
	}
	if owners != ownerWidth || promos != promoWidth {
		return 0, false
	}

	idx := uint64(p.SideToMove) << sideShift
	idx |= squareBits << squareShift
	idx |= ownerBits << ownerShift
	idx |= promoBits << promoShift
	idx |= uint64(lionIdx) << lionShift
	return idx, true
}

// Decode returns the Position encoded by idx, and true if idx encodes
// a structurally legal position: a valid lion-pair index, animal
// counts that don't exceed two per kind, no promoted piece on hand,
// and no un-promoted Chick stranded on its owner's own last rank.
func Decode(idx uint64) (position.Position, bool) {
	lionIdx := (idx >> lionShift) & ((1 << lionWidth) - 1)
	if lionIdx >= uint64(len(piece.LionPairs)) {
		return position.Position{}, false
	}
	lp := piece.LionPairs[lionIdx]

	var canonical position.Position
	canonical.Slots[lp.Sente] = piece.New(piece.Lion, piece.Sente)
	canonical.Slots[lp.Gote] = piece.New(piece.Lion, piece.Gote)

	squareBits := (idx >> squareShift) & ((1 << uint(squareWidth*numSquares)) - 1)
	count := map[piece.Animal]int{}
	k := 0
	for sq := 0; sq < piece.NumBoardSquares; sq++ {
		if sq == lp.Sente || sq == lp.Gote {
			continue
		}
		d := (squareBits >> uint(squareWidth*k)) & ((1 << squareWidth) - 1)
		k++
		a := descriptorAnimal(d)
		if a == piece.Empty {
			continue
		}
		count[a]++
		if count[a] > 2 {
			return position.Position{}, false
		}
		canonical.Slots[sq] = piece.New(a, piece.Sente)
	}

	// Fill the hand with whichever copies didn't make it onto the
	// board, highest animal tag first, from the last hand slot down, so
	// the hand comes out in SortHand's order (empty slots first).
	handSlot := piece.NumSlots - 1
	for _, a := range handFillPriority {
		for ; count[a] < 2; count[a]++ {
			canonical.Slots[handSlot] = piece.New(a, piece.Sente)
			handSlot--
		}
	}

	ownerBits := (idx >> ownerShift) & ((1 << ownerWidth) - 1)
	owners := 0
	for sq := 0; sq < piece.NumSlots; sq++ {
		if sq == lp.Sente || sq == lp.Gote {
			continue
		}
		pc := canonical.Slots[sq]
		if pc.IsEmpty() {
			continue
		}
		if (ownerBits>>uint(owners))&1 == 1 {
			canonical.Slots[sq] = pc.FlipSide()
		}
		owners++
	}

	promoBits := (idx >> promoShift) & ((1 << promoWidth) - 1)
	promos := 0
	for sq := 0; sq < piece.NumSlots; sq++ {
		if sq == lp.Sente || sq == lp.Gote {
			continue
		}
		pc := canonical.Slots[sq]
		if pc.Animal() != piece.Chick {
			continue
		}
		if (promoBits>>uint(promos))&1 == 1 {
			if sq >= piece.NumBoardSquares {
				return position.Position{}, false
			}
			canonical.Slots[sq] = pc.Promote()
		}
		promos++
	}

	for sq := 0; sq < piece.NumBoardSquares; sq++ {
		pc := canonical.Slots[sq]
		if pc.Animal() == piece.Chick && piece.OwnLastRank(pc.Side(), sq) {
			return position.Position{}, false
		}
	}

	canonical.SideToMove = piece.Sente
	result := canonical
	if idx&1 == 1 {
		result = canonical.Flip()
	}
	return result, true
}

// RoundTrip decodes every even index in [start, stop) (an odd start is
// rounded down) and re-encodes each position that decodes as legal.
// It returns the number of indices visited and the number that both
// decoded as legal and encoded again successfully; it does not compare
// the re-encoded index with the original one.
func RoundTrip(start, stop uint64) (checked, legal uint64) {
	if start%2 != 0 {
		start--
	}
	for i := start; i < stop; i += 2 {
		checked++
		p, ok := Decode(i)
		if !ok {
			continue
		}
		if _, ok := Encode(p); ok {
			legal++
		}
	}
	return checked, legal
}
