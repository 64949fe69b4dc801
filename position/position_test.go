package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobutsushogi/solver/piece"
	"github.com/dobutsushogi/solver/position"
)

func TestParseRoundTripsThroughString(t *testing.T) {
	p, err := position.Parse(position.DefaultBoardString, piece.Sente)
	require.NoError(t, err)
	assert.Equal(t, position.DefaultBoardString, p.String())
}

func TestParseRejectsWrongLength(t *testing.T) {
	_, err := position.Parse("too short", piece.Sente)
	assert.ErrorIs(t, err, position.ErrBadBoardString)
}

func TestParseRejectsBadCharacter(t *testing.T) {
	bad := "XLG C  c gle      "
	_, err := position.Parse(bad, piece.Sente)
	assert.ErrorIs(t, err, position.ErrBadBoardString)
}

func TestFindLion(t *testing.T) {
	p, err := position.Parse(position.DefaultBoardString, piece.Sente)
	require.NoError(t, err)
	assert.Equal(t, 1, p.FindLion(piece.Sente))
	assert.Equal(t, 10, p.FindLion(piece.Gote))
}

func TestIsTerminalLossWhenLionMissing(t *testing.T) {
	p, err := position.Parse("EG C   c gle      ", piece.Sente)
	require.NoError(t, err)
	assert.True(t, p.IsTerminalLoss())
}

func TestFlipIsInvolution(t *testing.T) {
	p, err := position.Parse(position.DefaultBoardString, piece.Gote)
	require.NoError(t, err)
	mid := p.Flip()
	q := mid.Flip()
	assert.True(t, p.Equal(&q))
}

func TestFlipTogglesSideAndReversesBoard(t *testing.T) {
	p, err := position.Parse(position.DefaultBoardString, piece.Sente)
	require.NoError(t, err)
	q := p.Flip()
	assert.Equal(t, piece.Gote, q.SideToMove)
	assert.Equal(t, piece.New(piece.Lion, piece.Gote), q.Slots[piece.NumBoardSquares-1-1])
}

func TestSortHandOrdersEmptyFirstThenByAnimal(t *testing.T) {
	p, err := position.Parse("ELG C  c gle      ", piece.Sente)
	require.NoError(t, err)
	hand := p.Hand()
	hand[0] = piece.New(piece.Giraffe, piece.Gote)
	hand[1] = piece.New(piece.Chick, piece.Sente)
	hand[2] = piece.New(piece.Empty, piece.Sente)

	p.SortHand()

	sorted := p.Hand()
	assert.True(t, sorted[0].IsEmpty())
	assert.Equal(t, piece.Chick, sorted[len(sorted)-2].Animal())
	assert.Equal(t, piece.Giraffe, sorted[len(sorted)-1].Animal())
}
