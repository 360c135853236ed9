package tui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

func newSession(t *testing.T, mode entity.Mode, humanMark entity.Mark) *Session {
	t.Helper()

	bot := service.NewBotService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	session, err := NewSession(bot, mode, humanMark)
	require.NoError(t, err)

	return session
}

func TestSession_AgainstComputer(t *testing.T) {
	t.Run("Computer replies after the human", func(t *testing.T) {
		// Given: a session where the human plays X
		session := newSession(t, entity.ModePvC, entity.MarkX)
		assert.False(t, session.BotPending())

		// When: the human takes a corner
		require.NoError(t, session.Play(0))

		// Then: the computer is due and answers in the center
		require.True(t, session.BotPending())
		assert.Equal(t, "Current turn: O (computer)", session.StatusLine())

		require.NoError(t, session.PlayBot())
		assert.Equal(t, entity.MarkO, session.Game().Board[entity.CenterCell])
		assert.False(t, session.BotPending())
	})

	t.Run("Human cannot move for the computer", func(t *testing.T) {
		session := newSession(t, entity.ModePvC, entity.MarkO)

		require.ErrorIs(t, session.Play(0), apperror.ErrBotTurn)

		require.NoError(t, session.PlayBot())
		assert.Equal(t, entity.MarkX, session.Game().Board[entity.CenterCell])
	})

	t.Run("Stale reply after restart is ignored", func(t *testing.T) {
		session := newSession(t, entity.ModePvC, entity.MarkX)
		require.NoError(t, session.Play(0))
		require.NoError(t, session.Restart())

		require.NoError(t, session.PlayBot())

		assert.True(t, session.Game().Board.IsEmpty())
	})

	t.Run("Computer never loses a full session", func(t *testing.T) {
		session := newSession(t, entity.ModePvC, entity.MarkX)

		for i := 0; i < 3; i++ {
			for game := session.Game(); game.IsOngoing(); game = session.Game() {
				moves := session.Game().Board.AvailableMoves()
				require.NoError(t, session.Play(moves[len(moves)-1]))
				require.NoError(t, session.PlayBot())
			}
			require.NoError(t, session.Restart())
		}

		score := session.Game().Score
		assert.Zero(t, score.X)
		assert.Equal(t, 3, score.O+score.Draws)
	})
}

func TestSession_TwoPlayers(t *testing.T) {
	session := newSession(t, entity.ModePvP, entity.EmptyCell)
	assert.Equal(t, "Mode: two players", session.ModeLine())

	for _, cell := range []int{0, 3, 1, 4, 2} {
		require.NoError(t, session.Play(cell))
		assert.False(t, session.BotPending())
	}

	assert.Equal(t, "Winner: X", session.StatusLine())
	assert.Equal(t, "X: 1  O: 0  Draws: 0", session.ScoreLine())
	require.ErrorIs(t, session.Play(5), apperror.ErrGameFinished)
}

func TestSession_Settings(t *testing.T) {
	t.Run("Toggle mode", func(t *testing.T) {
		session := newSession(t, entity.ModePvP, entity.EmptyCell)

		require.NoError(t, session.ToggleMode())
		assert.Equal(t, "Mode: vs computer, you play X", session.ModeLine())

		require.NoError(t, session.ToggleMode())
		assert.Equal(t, "Mode: two players", session.ModeLine())
	})

	t.Run("Swap mark hands X to the computer", func(t *testing.T) {
		session := newSession(t, entity.ModePvC, entity.MarkX)

		require.NoError(t, session.SwapMark())

		assert.Equal(t, entity.MarkO, session.Game().HumanMark)
		assert.True(t, session.BotPending())
	})

	t.Run("Swap mark from two players switches to the computer", func(t *testing.T) {
		session := newSession(t, entity.ModePvP, entity.EmptyCell)

		require.NoError(t, session.SwapMark())

		assert.Equal(t, entity.ModePvC, session.Game().Mode)
		assert.Equal(t, entity.MarkX, session.Game().HumanMark)
	})
}
