package piece

// LionPair is an ordered pair of board squares: (Sente Lion square,
// Gote Lion square). Only these 39 pairs are ever the lion placement of
// a legal, non-terminal, to-move position — every other combination
// either puts the Lions on adjacent squares (which would always be a
// capture on the mover's previous turn) or is otherwise unreachable
// without the game already having ended.
type LionPair struct {
	Sente, Gote int
}

// LionPairs is the precomputed table of the 39 reachable lion pairs,
// indexed by the 6-bit lion field of a position's encoded index.
var LionPairs = [39]LionPair{
	{0, 5}, {0, 6}, {0, 7}, {0, 8}, {0, 9}, {0, 10}, {0, 11},
	{1, 6}, {1, 7}, {1, 8}, {1, 9}, {1, 10}, {1, 11},
	{2, 3}, {2, 6}, {2, 7}, {2, 8}, {2, 9}, {2, 10}, {2, 11},
	{3, 5}, {3, 8}, {3, 9}, {3, 10}, {3, 11},
	{4, 9}, {4, 10}, {4, 11},
	{5, 3}, {5, 6}, {5, 9}, {5, 10}, {5, 11},
	{6, 5}, {6, 8}, {6, 11},
	{8, 3}, {8, 6}, {8, 9},
}

// lionPairIndex is the reverse map from (senteSq, goteSq) to its index
// in LionPairs, or -1 if that pair is unreachable.
var lionPairIndex [NumBoardSquares * NumBoardSquares]int8

func init() {
	for i := range lionPairIndex {
		lionPairIndex[i] = -1
	}
	for i, lp := range LionPairs {
		lionPairIndex[lp.Sente*NumBoardSquares+lp.Gote] = int8(i)
	}
}

// LionPairIndex looks up the table index for a given lion placement.
func LionPairIndex(senteSq, goteSq int) (int, bool) {
	idx := lionPairIndex[senteSq*NumBoardSquares+goteSq]
	if idx < 0 {
		return 0, false
	}
	return int(idx), true
}
