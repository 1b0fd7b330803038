package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridroom/tictactoe-backend/internal/apperror"
	"github.com/gridroom/tictactoe-backend/internal/entity"
	"github.com/gridroom/tictactoe-backend/internal/pkg"
	"github.com/gridroom/tictactoe-backend/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager drives the rules engine the way the board adapter must:
// check the move, execute it with the active symbol, evaluate draw and
// win, and advance the rotation only when the round continues.
type SessionManager struct {
	logger   *slog.Logger
	sessions sessionRepo

	defaultGridSize int
}

func NewSessionManager(logger *slog.Logger, sessions sessionRepo, defaultGridSize int) *SessionManager {
	if defaultGridSize < 1 {
		defaultGridSize = entity.DefaultGridSize
	}

	return &SessionManager{
		logger:   logger,
		sessions: sessions,

		defaultGridSize: defaultGridSize,
	}
}

// NewSession creates a board and persists its initial snapshot. A zero
// grid size or an empty competitor list falls back to the defaults.
func (that *SessionManager) NewSession(ctx context.Context, gridSize int, competitors []entity.Competitor) (*entity.Session, error) {
	log := that.logger.With("method", "NewSession")

	if gridSize == 0 {
		gridSize = that.defaultGridSize
	}

	if len(competitors) == 0 {
		competitors = entity.DefaultCompetitors()
	}

	game, err := tictactoe.New(competitors, gridSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	session := snapshot(pkg.GenerateSessionID(), game)
	session.Status = entity.StatusReady

	if err = that.sessions.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("session created", "sessionID", session.ID, "gridSize", gridSize)

	return session, nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// MakeTurn places the active competitor's symbol on (row, col) and
// returns the updated session. Coordinates are validated here because
// the engine contract leaves bounds to the caller.
func (that *SessionManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Session, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", id)

	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if row < 0 || row >= session.GridSize || col < 0 || col >= session.GridSize {
		return nil, fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, row, col)
	}

	if session.IsFinished() {
		return session, apperror.ErrGameFinished
	}

	game, err := tictactoe.Restore(session.Competitors, session.GridSize, session.Board, session.ActiveIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if !game.IsMoveAllowed(row, col) {
		return session, apperror.ErrCellOccupied
	}

	game.ExecuteMove(row, col, game.ActiveCompetitor().Symbol)

	var status string
	switch {
	case game.CheckDraw():
		status = entity.StatusDraw
	case game.CheckWinner():
		status = entity.StatusWon
	default:
		game.SwitchCompetitor()
		status = entity.StatusInProgress
	}

	updated := snapshot(session.ID, game)
	updated.Status = status

	if err = that.sessions.CreateOrUpdate(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("turn made", "row", row, "col", col, "status", status)

	return updated, nil
}

// RestartSession clears the board for a new round. The rotation position
// is carried over, so whoever was on the move opens the next round.
func (that *SessionManager) RestartSession(ctx context.Context, id string) (*entity.Session, error) {
	log := that.logger.With("method", "RestartSession", "sessionID", id)

	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	game, err := tictactoe.Restore(session.Competitors, session.GridSize, session.Board, session.ActiveIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	game.RestartGame()

	updated := snapshot(session.ID, game)
	updated.Status = entity.StatusReady

	if err = that.sessions.CreateOrUpdate(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("session restarted")

	return updated, nil
}

func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	if err := that.sessions.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func snapshot(id string, game *tictactoe.Engine) *entity.Session {
	return &entity.Session{
		ID:           id,
		GridSize:     game.GridSize(),
		Competitors:  game.Competitors(),
		Board:        game.Board(),
		ActiveIndex:  game.ActiveIndex(),
		Winner:       game.Winner(),
		WinningCells: game.WinningCells(),
	}
}
