package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/gridroom/tictactoe-backend/internal/apperror"
	"github.com/gridroom/tictactoe-backend/internal/entity"
	"github.com/gridroom/tictactoe-backend/internal/repository"
)

func (that *Server) handleNewSession(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewSession")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	session, err := that.manager.NewSession(ctx, payloadReq.GridSize, payloadReq.Competitors)
	if err != nil {
		log.Error("failed to create session", "error", err)
		return that.sendError(conn, msg.Action, "failed to create a new session")
	}

	log.Info("session created", "sessionID", session.ID)

	return that.sendSession(conn, msg.Action, session)
}

func (that *Server) handleSessionState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleSessionState")

	payloadReq, err := that.sessionPayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error())
	}

	session, err := that.manager.GetSession(ctx, payloadReq.Session.ID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return that.sendError(conn, msg.Action, "session not found")
	}

	if err != nil {
		log.Error("failed to get session", "error", err)
		return that.sendError(conn, msg.Action, "failed to get the session")
	}

	return that.sendSession(conn, msg.Action, session)
}

func (that *Server) handleSessionTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleSessionTurn")

	payloadReq, err := that.sessionPayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error())
	}

	if payloadReq.Move == nil {
		log.Error("Move is missing in payload")
		return that.sendError(conn, msg.Action, "move is required")
	}

	log = log.With("sessionID", payloadReq.Session.ID)

	session, err := that.manager.MakeTurn(ctx, payloadReq.Session.ID, payloadReq.Move.Row, payloadReq.Move.Col)

	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return that.sendError(conn, msg.Action, "session not found")
	case errors.Is(err, apperror.ErrInvalidCell):
		return that.sendError(conn, msg.Action, fmt.Sprintf("cell (%d,%d) is outside the grid", payloadReq.Move.Row, payloadReq.Move.Col))
	case errors.Is(err, apperror.ErrCellOccupied):
		return that.sendError(conn, msg.Action, "cell is already occupied")
	case errors.Is(err, apperror.ErrGameFinished):
		return that.sendError(conn, msg.Action, "round is over, restart to play again")
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return that.sendError(conn, msg.Action, "failed to make the turn")
	}

	log.Info("turn made", "row", payloadReq.Move.Row, "col", payloadReq.Move.Col, "status", session.Status)

	return that.sendSession(conn, msg.Action, session)
}

func (that *Server) handleSessionRestart(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleSessionRestart")

	payloadReq, err := that.sessionPayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, err.Error())
	}

	session, err := that.manager.RestartSession(ctx, payloadReq.Session.ID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return that.sendError(conn, msg.Action, "session not found")
	}

	if err != nil {
		log.Error("failed to restart session", "error", err)
		return that.sendError(conn, msg.Action, "failed to restart the session")
	}

	log.Info("session restarted", "sessionID", session.ID)

	return that.sendSession(conn, msg.Action, session)
}

// sessionPayload unmarshals the request payload and requires a session ID.
func (that *Server) sessionPayload(msg *Message) (*Payload, error) {
	var payloadReq Payload

	if len(msg.Payload) == 0 {
		return nil, errors.New("session is required")
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session == nil || payloadReq.Session.ID == "" {
		return nil, errors.New("session is required")
	}

	return &payloadReq, nil
}

func (that *Server) sendSession(conn *websocket.Conn, action string, session *entity.Session) error {
	payload := Payload{
		Session: session,
		Message: displayMessage(session),
	}

	if err := that.sendMessage(conn, action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// displayMessage renders the status line the board shows above the grid.
func displayMessage(session *entity.Session) string {
	switch session.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Player %q wins!", session.Winner)
	case entity.StatusDraw:
		return "It's a draw!"
	case entity.StatusReady:
		return "Ready to play?"
	default:
		return fmt.Sprintf("%s's turn", session.ActiveCompetitor().Symbol)
	}
}
