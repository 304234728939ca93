package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardOf(cells map[Position]Piece) *Board {
	board := NewBoard()
	for position, piece := range cells {
		board.Place(position, piece)
	}
	return board
}

func TestBoard_HasWon(t *testing.T) {
	for _, combo := range WinCombos {
		for _, piece := range []Piece{Cross, Dot} {
			t.Run(string(combo.Line)+"/"+string(piece), func(t *testing.T) {
				// Given: a board with one piece on exactly one line
				board := NewBoard()
				for _, position := range combo.Cells {
					board.Place(position, piece)
				}

				// When: checking both pieces for a win
				line, won := board.HasWon(piece)
				_, otherWon := board.HasWon(piece.Other())

				// Then: only that piece wins, on that line
				assert.True(t, won)
				assert.Equal(t, combo.Line, line)
				assert.False(t, otherWon)
			})
		}
	}

	t.Run("Empty board has no winner", func(t *testing.T) {
		board := NewBoard()

		_, crossWon := board.HasWon(Cross)
		_, dotWon := board.HasWon(Dot)
		_, nobodyWon := board.HasWon(NoPiece)

		assert.False(t, crossWon)
		assert.False(t, dotWon)
		assert.False(t, nobodyWon)
	})

	t.Run("Mixed board with a diagonal", func(t *testing.T) {
		// Given: cross holds the down diagonal among dots
		board := boardOf(map[Position]Piece{
			TopLeft: Cross, Top: Dot, TopRight: Dot,
			Center: Cross, Left: Dot,
			BottomRight: Cross,
		})

		// When: checking for a win
		line, won := board.HasWon(Cross)
		_, dotWon := board.HasWon(Dot)

		// Then: cross won on the down diagonal
		assert.True(t, won)
		assert.Equal(t, DownDiagonal, line)
		assert.False(t, dotWon)
	})

	t.Run("Two pieces in a line are not a win", func(t *testing.T) {
		board := boardOf(map[Position]Piece{
			BottomLeft: Dot, Center: Dot, TopRight: Cross,
		})

		_, won := board.HasWon(Dot)

		assert.False(t, won)
	})

	t.Run("First line in scan order is reported", func(t *testing.T) {
		// Given: cross holds both the top row and the left column
		board := boardOf(map[Position]Piece{
			TopLeft: Cross, Top: Cross, TopRight: Cross,
			Left: Cross, BottomLeft: Cross,
		})

		// When: checking for a win
		line, won := board.HasWon(Cross)

		// Then: the top row wins the tie-break
		require.True(t, won)
		assert.Equal(t, TopRow, line)
	})
}

func TestBoard_IsTie(t *testing.T) {
	t.Run("Full board without a line is a tie", func(t *testing.T) {
		// Given: X O X / X O O / O X X
		board := boardOf(map[Position]Piece{
			TopLeft: Cross, Top: Dot, TopRight: Cross,
			Left: Cross, Center: Dot, Right: Dot,
			BottomLeft: Dot, Bottom: Cross, BottomRight: Cross,
		})

		// Then: the board is full and tied
		assert.True(t, board.IsFull())
		assert.True(t, board.IsTie())
	})

	t.Run("Full board with a line is not a tie", func(t *testing.T) {
		// Given: X X X / O O X / X O O
		board := boardOf(map[Position]Piece{
			TopLeft: Cross, Top: Cross, TopRight: Cross,
			Left: Dot, Center: Dot, Right: Cross,
			BottomLeft: Cross, Bottom: Dot, BottomRight: Dot,
		})

		assert.True(t, board.IsFull())
		assert.False(t, board.IsTie())
	})

	t.Run("Partially filled board is not a tie", func(t *testing.T) {
		board := boardOf(map[Position]Piece{Center: Cross, TopLeft: Dot})

		assert.False(t, board.IsFull())
		assert.False(t, board.IsTie())
	})
}

func TestBoard_PlaceAndReset(t *testing.T) {
	// Given: an empty board
	board := NewBoard()

	for _, position := range Positions {
		_, occupied := board.IsOccupied(position)
		assert.False(t, occupied, position)
	}

	// When: a piece is placed
	board.Place(Bottom, Dot)

	// Then: only that cell is occupied by that piece
	piece, occupied := board.IsOccupied(Bottom)
	assert.True(t, occupied)
	assert.Equal(t, Dot, piece)

	_, occupied = board.IsOccupied(Top)
	assert.False(t, occupied)

	// When: the board is reset
	board.Reset()

	// Then: all cells are empty again
	assert.Equal(t, [9]Piece{}, board.Cells())
}

func TestPosition_IsValid(t *testing.T) {
	for _, position := range Positions {
		assert.True(t, position.IsValid(), position)
	}

	assert.False(t, Position("middle").IsValid())
	assert.False(t, Position("").IsValid())
}

func TestPiece_Other(t *testing.T) {
	assert.Equal(t, Dot, Cross.Other())
	assert.Equal(t, Cross, Dot.Other())
	assert.Equal(t, NoPiece, NoPiece.Other())
}
