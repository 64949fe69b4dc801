package piece

// Board geometry: 3 columns × 4 rows of board squares, row-major, row 0
// nearest Sente's starting edge, followed by 6 generic hand
// slots. Square numbering is fixed and does not depend on which side
// is to move.
const (
	Cols            = 3
	Rows            = 4
	NumBoardSquares = Cols * Rows
	NumHandSlots    = 6
	NumSlots        = NumBoardSquares + NumHandSlots
)

// LastRankStart is the first square of the row farthest from square 0,
// i.e. Sente's own last rank.
const LastRankStart = NumBoardSquares - Cols

// OwnLastRank reports whether sq is side s's own last rank: the row
// farthest from s's starting edge. Sente starts near square 0, so
// Sente's last rank is the top row (9..11); Gote starts near square 9,
// so Gote's last rank is the bottom row (0..2).
func OwnLastRank(s Side, sq int) bool {
	if s == Sente {
		return sq >= LastRankStart && sq < NumBoardSquares
	}
	return sq >= 0 && sq < Cols
}
