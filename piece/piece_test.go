package piece_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dobutsushogi/solver/piece"
)

func TestNewAndAccessors(t *testing.T) {
	p := piece.New(piece.Chick, piece.Gote)
	assert.Equal(t, piece.Chick, p.Animal())
	assert.Equal(t, piece.Gote, p.Side())
	assert.False(t, p.IsEmpty())

	e := piece.New(piece.Empty, piece.Sente)
	assert.True(t, e.IsEmpty())
}

func TestPromoteDemote(t *testing.T) {
	c := piece.New(piece.Chick, piece.Sente)
	h := c.Promote()
	assert.Equal(t, piece.Hen, h.Animal())
	assert.Equal(t, piece.Sente, h.Side())

	assert.Equal(t, piece.Chick, h.Demote().Animal())
	// Demote on a non-Hen is a no-op.
	assert.Equal(t, piece.Elephant, piece.New(piece.Elephant, piece.Sente).Demote().Animal())
}

func TestPromoteNonChickPanics(t *testing.T) {
	assert.Panics(t, func() {
		piece.New(piece.Elephant, piece.Sente).Promote()
	})
}

func TestFlipSide(t *testing.T) {
	p := piece.New(piece.Lion, piece.Sente)
	assert.Equal(t, piece.Gote, p.FlipSide().Side())
	assert.Equal(t, piece.Sente, p.FlipSide().FlipSide().Side())

	empty := piece.New(piece.Empty, piece.Sente)
	assert.True(t, empty.FlipSide().IsEmpty())
}

func TestString(t *testing.T) {
	assert.Equal(t, "L", piece.New(piece.Lion, piece.Sente).String())
	assert.Equal(t, "l", piece.New(piece.Lion, piece.Gote).String())
	assert.Equal(t, "D", piece.New(piece.Hen, piece.Sente).String())
	assert.Equal(t, " ", piece.New(piece.Empty, piece.Sente).String())
}

func TestOwnLastRank(t *testing.T) {
	for sq := piece.LastRankStart; sq < piece.NumBoardSquares; sq++ {
		assert.True(t, piece.OwnLastRank(piece.Sente, sq))
		assert.False(t, piece.OwnLastRank(piece.Gote, sq))
	}
	for sq := 0; sq < piece.Cols; sq++ {
		assert.True(t, piece.OwnLastRank(piece.Gote, sq))
		assert.False(t, piece.OwnLastRank(piece.Sente, sq))
	}
	assert.False(t, piece.OwnLastRank(piece.Sente, 4))
}

func TestDestinationWrapAndMirror(t *testing.T) {
	// Sente chick moves straight ahead (offset 7).
	d, ok := piece.Destination(piece.Sente, 3, 7)
	assert.True(t, ok)
	assert.Equal(t, 6, d)

	// Gote chick moves the opposite way from the same square.
	d, ok = piece.Destination(piece.Gote, 3, 7)
	assert.True(t, ok)
	assert.Equal(t, 0, d)

	// Left-file squares cannot move further left.
	_, ok = piece.Destination(piece.Sente, 0, 3)
	assert.False(t, ok)

	// Right-file squares cannot move further right.
	_, ok = piece.Destination(piece.Sente, 2, 5)
	assert.False(t, ok)

	// Off the top of the board.
	_, ok = piece.Destination(piece.Sente, 10, 7)
	assert.False(t, ok)
}

func TestLionPairIndexRoundTrip(t *testing.T) {
	for i, lp := range piece.LionPairs {
		idx, ok := piece.LionPairIndex(lp.Sente, lp.Gote)
		assert.True(t, ok)
		assert.Equal(t, i, idx)
	}

	_, ok := piece.LionPairIndex(4, 5) // adjacent squares, unreachable
	assert.False(t, ok)
}
