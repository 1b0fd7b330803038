package tictactoe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridroom/tictactoe-backend/internal/entity"
)

// playRound drives the engine exactly the way an adapter does: check the
// move, execute it with the active symbol, then advance the rotation
// only when the round continues.
func playRound(t *testing.T, engine *Engine, moves [][2]int) {
	t.Helper()

	for _, move := range moves {
		require.True(t, engine.IsMoveAllowed(move[0], move[1]), "move (%d,%d) should be allowed", move[0], move[1])

		engine.ExecuteMove(move[0], move[1], engine.ActiveCompetitor().Symbol)

		if !engine.CheckWinner() && !engine.CheckDraw() {
			engine.SwitchCompetitor()
		}
	}
}

func TestNewDefault(t *testing.T) {
	// When: creating a default engine
	engine := NewDefault()

	// Then: it is a 3x3 board with X to move and nothing decided
	require.NotNil(t, engine)
	assert.Equal(t, 3, engine.GridSize())
	assert.Equal(t, "X", engine.ActiveCompetitor().Symbol)
	assert.False(t, engine.CheckWinner())
	assert.False(t, engine.CheckDraw())

	for _, symbol := range engine.Board() {
		assert.Equal(t, entity.EmptyCell, symbol)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Run("Too few competitors", func(t *testing.T) {
		_, err := New([]entity.Competitor{{Symbol: "X", Color: "blue"}}, 3)
		require.ErrorIs(t, err, ErrTooFewCompetitors)
	})

	t.Run("Empty symbol", func(t *testing.T) {
		_, err := New([]entity.Competitor{{Symbol: "X"}, {Symbol: ""}}, 3)
		require.ErrorIs(t, err, ErrEmptySymbol)
	})

	t.Run("Duplicate symbol", func(t *testing.T) {
		_, err := New([]entity.Competitor{{Symbol: "X"}, {Symbol: "X"}}, 3)
		require.ErrorIs(t, err, ErrDuplicateSymbol)
	})

	t.Run("Invalid grid size", func(t *testing.T) {
		_, err := New(entity.DefaultCompetitors(), 0)
		require.ErrorIs(t, err, ErrInvalidGridSize)
	})
}

func TestWinningCombinations(t *testing.T) {
	// Then: an NxN grid has N rows + N columns + 2 diagonals
	for _, gridSize := range []int{3, 4, 5, 7} {
		t.Run(fmt.Sprintf("Grid %d", gridSize), func(t *testing.T) {
			engine, err := New(entity.DefaultCompetitors(), gridSize)
			require.NoError(t, err)

			assert.Len(t, engine.combos, 2*gridSize+2)
		})
	}

	t.Run("Scan order is rows, columns, diagonal, anti diagonal", func(t *testing.T) {
		combos := winningCombinations(3)

		require.Len(t, combos, 8)
		assert.Equal(t, []int{0, 1, 2}, combos[0])
		assert.Equal(t, []int{3, 4, 5}, combos[1])
		assert.Equal(t, []int{6, 7, 8}, combos[2])
		assert.Equal(t, []int{0, 3, 6}, combos[3])
		assert.Equal(t, []int{1, 4, 7}, combos[4])
		assert.Equal(t, []int{2, 5, 8}, combos[5])
		assert.Equal(t, []int{0, 4, 8}, combos[6])
		assert.Equal(t, []int{2, 4, 6}, combos[7])
	})
}

func TestIsMoveAllowed(t *testing.T) {
	t.Run("Empty cell is allowed", func(t *testing.T) {
		engine := NewDefault()

		assert.True(t, engine.IsMoveAllowed(1, 1))
	})

	t.Run("Occupied cell is not allowed", func(t *testing.T) {
		// Given: X already claimed the center
		engine := NewDefault()
		engine.ExecuteMove(1, 1, "X")

		assert.False(t, engine.IsMoveAllowed(1, 1))
	})

	t.Run("No move is allowed after a win, even on empty cells", func(t *testing.T) {
		// Given: X completed the top row
		engine := NewDefault()
		playRound(t, engine, [][2]int{{0, 0}, {1, 1}, {0, 1}, {2, 2}, {0, 2}})
		require.True(t, engine.CheckWinner())

		// Then: even untouched cells are off limits until restart
		assert.False(t, engine.IsMoveAllowed(1, 0))
		assert.False(t, engine.IsMoveAllowed(2, 0))
	})
}

func TestExecuteMove_WinDetection(t *testing.T) {
	t.Run("Top row win with winning cells reported", func(t *testing.T) {
		// Given: a default game
		engine := NewDefault()

		// When: X takes the top row while O plays the diagonal
		playRound(t, engine, [][2]int{{0, 0}, {1, 1}, {0, 1}, {2, 2}, {0, 2}})

		// Then: X wins and the winning set is exactly the top row
		require.True(t, engine.CheckWinner())
		assert.False(t, engine.CheckDraw())
		assert.Equal(t, "X", engine.Winner())
		assert.Equal(t, []entity.Cell{
			{Row: 0, Col: 0, Symbol: "X"},
			{Row: 0, Col: 1, Symbol: "X"},
			{Row: 0, Col: 2, Symbol: "X"},
		}, engine.WinningCells())

		// Then: the rotation stayed on the winner
		assert.Equal(t, "X", engine.ActiveCompetitor().Symbol)
	})

	t.Run("Column win", func(t *testing.T) {
		engine := NewDefault()

		// When: O takes the middle column
		playRound(t, engine, [][2]int{{0, 0}, {0, 1}, {2, 2}, {1, 1}, {1, 0}, {2, 1}})

		require.True(t, engine.CheckWinner())
		assert.Equal(t, "O", engine.Winner())
		assert.Equal(t, []entity.Cell{
			{Row: 0, Col: 1, Symbol: "O"},
			{Row: 1, Col: 1, Symbol: "O"},
			{Row: 2, Col: 1, Symbol: "O"},
		}, engine.WinningCells())
	})

	t.Run("Anti diagonal win on a 4x4 grid", func(t *testing.T) {
		engine, err := New(entity.DefaultCompetitors(), 4)
		require.NoError(t, err)

		// When: X claims (0,3) (1,2) (2,1) (3,0)
		playRound(t, engine, [][2]int{{0, 3}, {0, 0}, {1, 2}, {0, 1}, {2, 1}, {1, 0}, {3, 0}})

		require.True(t, engine.CheckWinner())
		assert.Equal(t, "X", engine.Winner())
		assert.Equal(t, []entity.Cell{
			{Row: 0, Col: 3, Symbol: "X"},
			{Row: 1, Col: 2, Symbol: "X"},
			{Row: 2, Col: 1, Symbol: "X"},
			{Row: 3, Col: 0, Symbol: "X"},
		}, engine.WinningCells())
	})

	t.Run("No winner while the board is open", func(t *testing.T) {
		engine := NewDefault()

		playRound(t, engine, [][2]int{{0, 0}, {1, 1}})

		assert.False(t, engine.CheckWinner())
		assert.False(t, engine.CheckDraw())
		assert.Empty(t, engine.WinningCells())
		assert.Equal(t, entity.EmptyCell, engine.Winner())
	})
}

func TestCheckDraw(t *testing.T) {
	// Given: a full alternating board with no completed line
	//   X O X
	//   X O O
	//   O X X
	engine := NewDefault()
	playRound(t, engine, [][2]int{
		{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 1}, {1, 2}, {0, 2}, {2, 0}, {2, 2},
	})

	// Then: the round is a draw, not a win
	assert.True(t, engine.CheckDraw())
	assert.False(t, engine.CheckWinner())
}

func TestSwitchCompetitor(t *testing.T) {
	t.Run("Alternates between two competitors", func(t *testing.T) {
		engine := NewDefault()

		require.Equal(t, "X", engine.ActiveCompetitor().Symbol)

		engine.SwitchCompetitor()
		assert.Equal(t, "O", engine.ActiveCompetitor().Symbol)

		engine.SwitchCompetitor()
		assert.Equal(t, "X", engine.ActiveCompetitor().Symbol)
	})

	t.Run("A full rotation returns to the starting competitor", func(t *testing.T) {
		competitors := []entity.Competitor{
			{Symbol: "X", Color: "blue"},
			{Symbol: "O", Color: "green"},
			{Symbol: "Z", Color: "red"},
		}

		engine, err := New(competitors, 5)
		require.NoError(t, err)

		// When: the rotation wraps exactly once
		first := engine.ActiveCompetitor()
		for i := 0; i < len(competitors); i++ {
			engine.SwitchCompetitor()
		}

		// Then: the first competitor is active again, and the next
		// switch moves on to the second
		assert.Equal(t, first.Symbol, engine.ActiveCompetitor().Symbol)

		engine.SwitchCompetitor()
		assert.Equal(t, "O", engine.ActiveCompetitor().Symbol)
	})
}

func TestRestartGame(t *testing.T) {
	t.Run("Clears the board and the win state", func(t *testing.T) {
		// Given: a finished round
		engine := NewDefault()
		playRound(t, engine, [][2]int{{0, 0}, {1, 1}, {0, 1}, {2, 2}, {0, 2}})
		require.True(t, engine.CheckWinner())

		// When: the round is restarted
		engine.RestartGame()

		// Then: the board is empty and nothing is decided
		assert.False(t, engine.CheckWinner())
		assert.False(t, engine.CheckDraw())
		assert.Empty(t, engine.WinningCells())
		for _, symbol := range engine.Board() {
			assert.Equal(t, entity.EmptyCell, symbol)
		}

		// Then: every cell is playable again
		assert.True(t, engine.IsMoveAllowed(0, 0))
	})

	t.Run("Rotation position survives the restart", func(t *testing.T) {
		// Given: O is on the move after two placed symbols
		engine := NewDefault()
		playRound(t, engine, [][2]int{{0, 0}, {1, 1}, {2, 2}})
		require.Equal(t, "O", engine.ActiveCompetitor().Symbol)

		// When: the round is restarted
		engine.RestartGame()

		// Then: O still opens the next round
		assert.Equal(t, "O", engine.ActiveCompetitor().Symbol)
	})
}

func TestRestore(t *testing.T) {
	t.Run("Round trips a game in progress", func(t *testing.T) {
		// Given: a game after three moves
		original := NewDefault()
		playRound(t, original, [][2]int{{0, 0}, {1, 1}, {2, 2}})

		// When: restoring from the stored board and rotation position
		restored, err := Restore(original.Competitors(), original.GridSize(), original.Board(), original.ActiveIndex())
		require.NoError(t, err)

		// Then: the restored engine reports the same state
		assert.Equal(t, original.Board(), restored.Board())
		assert.Equal(t, original.ActiveCompetitor(), restored.ActiveCompetitor())
		assert.False(t, restored.CheckWinner())
		assert.False(t, restored.CheckDraw())
	})

	t.Run("Re-derives the win and the winning cells", func(t *testing.T) {
		// Given: a won game
		original := NewDefault()
		playRound(t, original, [][2]int{{0, 0}, {1, 1}, {0, 1}, {2, 2}, {0, 2}})
		require.True(t, original.CheckWinner())

		// When: restoring the snapshot
		restored, err := Restore(original.Competitors(), original.GridSize(), original.Board(), original.ActiveIndex())
		require.NoError(t, err)

		// Then: the win and the exact winning set come back
		assert.True(t, restored.CheckWinner())
		assert.Equal(t, original.Winner(), restored.Winner())
		assert.Equal(t, original.WinningCells(), restored.WinningCells())
	})

	t.Run("Rejects a board that does not fit the grid", func(t *testing.T) {
		_, err := Restore(entity.DefaultCompetitors(), 3, make([]string, 5), 0)
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("Rejects a rotation index out of range", func(t *testing.T) {
		_, err := Restore(entity.DefaultCompetitors(), 3, make([]string, 9), 2)
		require.ErrorIs(t, err, ErrInvalidRotation)
	})
}
