package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

func playAll(t *testing.T, game *Game, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, game.MakeTurn(game.Turn, cell))
	}
}

func TestNewGame(t *testing.T) {
	t.Run("Player versus computer defaults the human to X", func(t *testing.T) {
		// When: a new game against the computer is created without a mark
		game, err := NewGame("123", ModePvC, EmptyCell)
		require.NoError(t, err)

		// Then: the round starts empty with X to move
		expected := &Game{
			ID:        "123",
			Board:     Board{},
			Turn:      MarkX,
			Status:    StatusInProgress,
			Mode:      ModePvC,
			HumanMark: MarkX,
		}
		assert.Equal(t, expected, game)
		assert.Equal(t, MarkO, game.BotMark())
		assert.False(t, game.IsBotTurn())
	})

	t.Run("Computer opens when the human takes O", func(t *testing.T) {
		game, err := NewGame("123", ModePvC, MarkO)
		require.NoError(t, err)

		assert.Equal(t, MarkX, game.BotMark())
		assert.True(t, game.IsBotTurn())
	})

	t.Run("Two player mode has no bot", func(t *testing.T) {
		game, err := NewGame("123", ModePvP, MarkO)
		require.NoError(t, err)

		assert.Equal(t, EmptyCell, game.HumanMark)
		assert.Equal(t, EmptyCell, game.BotMark())
		assert.False(t, game.IsBotTurn())
	})

	t.Run("Unknown mode", func(t *testing.T) {
		_, err := NewGame("123", Mode("solo"), MarkX)
		require.ErrorIs(t, err, apperror.ErrInvalidMode)
	})

	t.Run("Unknown mark", func(t *testing.T) {
		_, err := NewGame("123", ModePvC, Mark("Z"))
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful turn", func(t *testing.T) {
		// Given: a new two player game
		game, err := NewGame("123", ModePvP, EmptyCell)
		require.NoError(t, err)

		// When: X makes a valid turn
		require.NoError(t, game.MakeTurn(MarkX, 0))

		// Then: the board reflects the turn and O is to move
		assert.Equal(t, Board{MarkX}, game.Board)
		assert.Equal(t, MarkO, game.Turn)
		assert.Equal(t, StatusInProgress, game.Status)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		game, err := NewGame("123", ModePvP, EmptyCell)
		require.NoError(t, err)

		err = game.MakeTurn(MarkO, 1)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.True(t, game.Board.IsEmpty())
	})

	t.Run("Error on cell already occupied leaves state unchanged", func(t *testing.T) {
		game, err := NewGame("123", ModePvP, EmptyCell)
		require.NoError(t, err)
		playAll(t, game, 0)
		before := *game

		err = game.MakeTurn(MarkO, 0)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, *game)
	})

	t.Run("Win finishes the round and records the line", func(t *testing.T) {
		// Given: X is one move away from the top row
		game, err := NewGame("123", ModePvP, EmptyCell)
		require.NoError(t, err)
		playAll(t, game, 0, 3, 1, 4)

		// When: X completes the row
		require.NoError(t, game.MakeTurn(MarkX, 2))

		// Then: the round is won by X and counted once
		assert.Equal(t, StatusWonByX, game.Status)
		assert.Equal(t, MarkX, game.Winner)
		require.NotNil(t, game.WinLine)
		assert.Equal(t, Line{0, 1, 2}, *game.WinLine)
		assert.Equal(t, EmptyCell, game.Turn)
		assert.Equal(t, Score{X: 1}, game.Score)

		// And: further moves are rejected
		require.ErrorIs(t, game.MakeTurn(MarkO, 5), apperror.ErrGameFinished)
		game.UpdateGameState()
		assert.Equal(t, Score{X: 1}, game.Score)
	})

	t.Run("Draw is tallied", func(t *testing.T) {
		game, err := NewGame("123", ModePvP, EmptyCell)
		require.NoError(t, err)

		// X O X / X O O / O X X
		playAll(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		assert.Equal(t, StatusDrawn, game.Status)
		assert.Equal(t, EmptyCell, game.Winner)
		assert.Nil(t, game.WinLine)
		assert.Equal(t, Score{Draws: 1}, game.Score)
	})
}

func TestGame_Restart(t *testing.T) {
	t.Run("Keeps the tally and clears the board", func(t *testing.T) {
		// Given: a finished round won by O
		game, err := NewGame("123", ModePvP, EmptyCell)
		require.NoError(t, err)
		playAll(t, game, 0, 3, 1, 4, 8, 5)
		require.Equal(t, StatusWonByO, game.Status)

		// When: the round is restarted
		require.NoError(t, game.Restart("", EmptyCell))

		// Then: the board is empty and the score survives
		assert.True(t, game.Board.IsEmpty())
		assert.Equal(t, StatusInProgress, game.Status)
		assert.Equal(t, MarkX, game.Turn)
		assert.Nil(t, game.WinLine)
		assert.Equal(t, Score{O: 1}, game.Score)
	})

	t.Run("Switches mode and mark", func(t *testing.T) {
		game, err := NewGame("123", ModePvP, EmptyCell)
		require.NoError(t, err)

		require.NoError(t, game.Restart(ModePvC, MarkO))

		assert.Equal(t, ModePvC, game.Mode)
		assert.Equal(t, MarkO, game.HumanMark)
		assert.True(t, game.IsBotTurn())
	})
}
