package tictactoe

import (
	"errors"
	"fmt"

	"github.com/gridroom/tictactoe-backend/internal/entity"
)

var (
	ErrTooFewCompetitors = errors.New("at least two competitors are required")
	ErrEmptySymbol       = errors.New("competitor symbol must not be empty")
	ErrDuplicateSymbol   = errors.New("competitor symbols must be distinct")
	ErrInvalidGridSize   = errors.New("grid size must be a positive integer")
	ErrInvalidSnapshot   = errors.New("snapshot does not match grid size")
	ErrInvalidRotation   = errors.New("rotation index out of range")
)

// Engine is the rules engine for a single board: grid state, the
// competitor rotation and win/draw evaluation. It performs no I/O and
// raises no errors after construction; passing coordinates outside the
// grid is a caller bug and panics.
type Engine struct {
	gridSize     int
	competitors  []entity.Competitor
	active       int
	board        []string
	combos       [][]int
	won          bool
	winningCells []int
}

// New creates an engine for the given rotation and grid size. The first
// competitor in the list moves first.
func New(competitors []entity.Competitor, gridSize int) (*Engine, error) {
	if gridSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGridSize, gridSize)
	}

	if len(competitors) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewCompetitors, len(competitors))
	}

	seen := make(map[string]struct{}, len(competitors))
	for _, competitor := range competitors {
		if competitor.Symbol == entity.EmptyCell {
			return nil, ErrEmptySymbol
		}

		if _, ok := seen[competitor.Symbol]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, competitor.Symbol)
		}
		seen[competitor.Symbol] = struct{}{}
	}

	return &Engine{
		gridSize:    gridSize,
		competitors: append([]entity.Competitor(nil), competitors...),
		board:       make([]string, gridSize*gridSize),
		combos:      winningCombinations(gridSize),
	}, nil
}

// NewDefault creates a 3x3 engine with the standard X/O rotation.
func NewDefault() *Engine {
	engine, err := New(entity.DefaultCompetitors(), entity.DefaultGridSize)
	if err != nil {
		panic(fmt.Errorf("default engine: %w", err))
	}

	return engine
}

// Restore rebuilds an engine from a stored board and rotation position.
// The won flag and winning cells are re-derived by the same ordered
// combination scan that ExecuteMove uses, so a restored engine reports
// exactly what the original one did.
func Restore(competitors []entity.Competitor, gridSize int, board []string, activeIndex int) (*Engine, error) {
	engine, err := New(competitors, gridSize)
	if err != nil {
		return nil, err
	}

	if len(board) != gridSize*gridSize {
		return nil, fmt.Errorf("%w: %d cells for grid size %d", ErrInvalidSnapshot, len(board), gridSize)
	}

	if activeIndex < 0 || activeIndex >= len(competitors) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, activeIndex)
	}

	copy(engine.board, board)
	engine.active = activeIndex

	for _, combo := range engine.combos {
		if engine.isWinning(combo) {
			engine.won = true
			engine.winningCells = combo
			break
		}
	}

	return engine, nil
}

// winningCombinations precomputes every winning line as flat row-major
// indices: all rows, then all columns, then the main diagonal, then the
// anti diagonal. For grid size N that is 2N+2 combinations.
func winningCombinations(gridSize int) [][]int {
	combos := make([][]int, 0, 2*gridSize+2)

	for row := 0; row < gridSize; row++ {
		combo := make([]int, gridSize)
		for col := 0; col < gridSize; col++ {
			combo[col] = row*gridSize + col
		}
		combos = append(combos, combo)
	}

	for col := 0; col < gridSize; col++ {
		combo := make([]int, gridSize)
		for row := 0; row < gridSize; row++ {
			combo[row] = row*gridSize + col
		}
		combos = append(combos, combo)
	}

	diagonal := make([]int, gridSize)
	antiDiagonal := make([]int, gridSize)
	for i := 0; i < gridSize; i++ {
		diagonal[i] = i*gridSize + i
		antiDiagonal[i] = i*gridSize + (gridSize - 1 - i)
	}

	return append(combos, diagonal, antiDiagonal)
}

// IsMoveAllowed reports whether a move on (row, col) is legal: no win
// recorded yet and the cell is still empty. Coordinates must be inside
// the grid.
func (that *Engine) IsMoveAllowed(row, col int) bool {
	return !that.won && that.board[that.index(row, col)] == entity.EmptyCell
}

// ExecuteMove writes symbol into (row, col) and evaluates the winning
// combinations in their fixed order, recording the first completed one.
// The caller must have checked IsMoveAllowed; there is no re-check.
func (that *Engine) ExecuteMove(row, col int, symbol string) {
	that.board[that.index(row, col)] = symbol

	for _, combo := range that.combos {
		if that.isWinning(combo) {
			that.won = true
			that.winningCells = combo
			break
		}
	}
}

// CheckWinner reports whether a winning combination has been recorded.
func (that *Engine) CheckWinner() bool {
	return that.won
}

// CheckDraw reports whether the board is full without a winner.
func (that *Engine) CheckDraw() bool {
	if that.won {
		return false
	}

	for _, symbol := range that.board {
		if symbol == entity.EmptyCell {
			return false
		}
	}

	return true
}

// SwitchCompetitor advances the rotation, wrapping after the last
// competitor.
func (that *Engine) SwitchCompetitor() {
	that.active = (that.active + 1) % len(that.competitors)
}

// RestartGame clears the board and the win state for a new round. The
// grid, the precomputed combinations and the rotation position are kept.
func (that *Engine) RestartGame() {
	for i := range that.board {
		that.board[i] = entity.EmptyCell
	}
	that.won = false
	that.winningCells = nil
}

// ActiveCompetitor returns the competitor whose turn it is.
func (that *Engine) ActiveCompetitor() entity.Competitor {
	return that.competitors[that.active]
}

// ActiveIndex returns the current position in the rotation.
func (that *Engine) ActiveIndex() int {
	return that.active
}

// Competitors returns a copy of the rotation in turn order.
func (that *Engine) Competitors() []entity.Competitor {
	return append([]entity.Competitor(nil), that.competitors...)
}

// GridSize returns the board dimension.
func (that *Engine) GridSize() int {
	return that.gridSize
}

// Board returns a row-major copy of the cell symbols.
func (that *Engine) Board() []string {
	return append([]string(nil), that.board...)
}

// Winner returns the symbol holding the recorded winning combination,
// or an empty string while nobody has won.
func (that *Engine) Winner() string {
	if !that.won {
		return entity.EmptyCell
	}

	return that.board[that.winningCells[0]]
}

// WinningCells returns the recorded winning combination as cells, in
// combination order. Empty while nobody has won.
func (that *Engine) WinningCells() []entity.Cell {
	cells := make([]entity.Cell, 0, len(that.winningCells))
	for _, idx := range that.winningCells {
		cells = append(cells, entity.Cell{
			Row:    idx / that.gridSize,
			Col:    idx % that.gridSize,
			Symbol: that.board[idx],
		})
	}

	return cells
}

func (that *Engine) index(row, col int) int {
	return row*that.gridSize + col
}

// isWinning reports whether every cell of the combination holds the same
// non-empty symbol.
func (that *Engine) isWinning(combo []int) bool {
	first := that.board[combo[0]]
	if first == entity.EmptyCell {
		return false
	}

	for _, idx := range combo[1:] {
		if that.board[idx] != first {
			return false
		}
	}

	return true
}
